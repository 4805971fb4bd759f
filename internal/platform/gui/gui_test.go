package gui

import (
	"io"
	"math"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

func TestCollectInput(t *testing.T) {
	tests := []struct {
		name     string
		pressed  []ebiten.Key
		pointer  bool
		expected []core.Action
	}{
		{"nothing", nil, false, nil},
		{"space jumps", []ebiten.Key{ebiten.KeySpace}, false, []core.Action{core.ActionJump}},
		{"click jumps", nil, true, []core.Action{core.ActionJump}},
		{"escape pauses", []ebiten.Key{ebiten.KeyEscape}, false, []core.Action{core.ActionPause}},
		{"several keys", []ebiten.Key{ebiten.KeyM, ebiten.KeyEqual}, false, []core.Action{core.ActionMute, core.ActionVolumeUp}},
		{"unbound key", []ebiten.Key{ebiten.KeyZ}, false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			justPressed := func(k ebiten.Key) bool {
				for _, p := range tt.pressed {
					if p == k {
						return true
					}
				}
				return false
			}
			in := collectInput(defaultBindings, justPressed, tt.pointer)

			if len(in.Actions) != len(tt.expected) {
				t.Errorf("got %d actions, expected %d", len(in.Actions), len(tt.expected))
			}
			for _, a := range tt.expected {
				if !in.Has(a) {
					t.Errorf("missing action %v", a)
				}
			}
		})
	}
}

func TestGeoMMatchesTransform(t *testing.T) {
	tr := core.Identity().Translated(30, 40).Rotated(0.6).Translated(-5, 2)
	m := geoM(tr)

	for _, p := range [][2]float64{{0, 0}, {10, 0}, {-3, 7}} {
		wx, wy := tr.Apply(p[0], p[1])
		gx, gy := m.Apply(p[0], p[1])
		if math.Abs(wx-gx) > 1e-9 || math.Abs(wy-gy) > 1e-9 {
			t.Errorf("point %v: geoM gives (%v, %v), expected (%v, %v)", p, gx, gy, wx, wy)
		}
	}
}

func TestPaintColor(t *testing.T) {
	c := paintColor(core.Translucent(core.ColorBlack, 0.5))
	if c.A != 128 {
		t.Errorf("got alpha %d, expected 128", c.A)
	}
	c = paintColor(core.Solid(core.ColorSky))
	sky := core.ColorSky.RGBA()
	if c.R != sky.R || c.G != sky.G || c.B != sky.B || c.A != 255 {
		t.Errorf("got %+v, expected opaque sky", c)
	}
}

func TestTextAlign(t *testing.T) {
	tests := []struct {
		in       core.Align
		expected text.Align
	}{
		{core.AlignLeft, text.AlignStart},
		{core.AlignCenter, text.AlignCenter},
		{core.AlignRight, text.AlignEnd},
	}
	for _, tt := range tests {
		if got := textAlign(tt.in); got != tt.expected {
			t.Errorf("textAlign(%v) = %v, expected %v", tt.in, got, tt.expected)
		}
	}
}

type fakeAudio struct {
	muted  bool
	volume float64
}

func (a *fakeAudio) Play(string)         {}
func (a *fakeAudio) PlayLoop(string)     {}
func (a *fakeAudio) StopAll()            {}
func (a *fakeAudio) SetMuted(m bool)     { a.muted = m }
func (a *fakeAudio) SetVolume(v float64) { a.volume = v }

func TestHandlePlatform(t *testing.T) {
	audio := &fakeAudio{}
	a := &App{
		env:    core.Env{Audio: audio},
		log:    log.New(io.Discard),
		volume: 0.5,
	}

	frame := func(actions ...core.Action) core.InputFrame {
		in := core.NewInputFrame()
		for _, act := range actions {
			in.Set(act)
		}
		return in
	}

	if a.handlePlatform(frame(core.ActionJump)) {
		t.Error("jump should not quit")
	}
	a.handlePlatform(frame(core.ActionMute))
	if !audio.muted {
		t.Error("mute should reach the sink")
	}
	a.handlePlatform(frame(core.ActionVolumeDown))
	if math.Abs(audio.volume-0.4) > 1e-9 {
		t.Errorf("got volume %v, expected 0.4", audio.volume)
	}
	if !a.handlePlatform(frame(core.ActionQuit)) {
		t.Error("quit should be reported")
	}
}

func TestStatusLine(t *testing.T) {
	a := &App{volume: 0.3}
	if got := a.statusLine(); got != "vol 30%" {
		t.Errorf("got %q, expected vol 30%%", got)
	}
	a.muted = true
	if got := a.statusLine(); got != "muted" {
		t.Errorf("got %q, expected muted", got)
	}
}
