package audio

import (
	"io"
	"math"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

func drain(s beep.Streamer) [][2]float64 {
	var out [][2]float64
	buf := make([][2]float64, 256)
	for {
		n, ok := s.Stream(buf)
		out = append(out, buf[:n]...)
		if !ok {
			return out
		}
	}
}

func TestOscillatorLengthAndRange(t *testing.T) {
	rate := beep.SampleRate(44100)
	for _, wave := range []core.Wave{core.WaveSine, core.WaveSquare, core.WaveSaw, core.WaveNoise} {
		samples := drain(newOscillator(440, 50*time.Millisecond, wave, rate))
		if len(samples) != rate.N(50*time.Millisecond) {
			t.Errorf("wave %d: got %d samples, expected %d", wave, len(samples), rate.N(50*time.Millisecond))
		}
		for i, s := range samples {
			if s[0] < -1 || s[0] > 1 || s[0] != s[1] {
				t.Fatalf("wave %d: sample %d = %v out of range or not mono", wave, i, s)
			}
		}
	}
}

func TestEnvelopeRampsFromSilence(t *testing.T) {
	rate := beep.SampleRate(44100)
	d := 40 * time.Millisecond
	env := newEnvelope(newOscillator(220, d, core.WaveSquare, rate), d, 5*time.Millisecond, 5*time.Millisecond, rate)
	samples := drain(env)

	if samples[0][0] != 0 {
		t.Errorf("first sample = %f, expected 0 at the start of the attack", samples[0][0])
	}
	mid := samples[len(samples)/2][0]
	if math.Abs(mid) != 1 {
		t.Errorf("sustain sample = %f, expected full amplitude", mid)
	}
	last := samples[len(samples)-1][0]
	if math.Abs(last) > 0.01 {
		t.Errorf("last sample = %f, expected the release to end near zero", last)
	}
}

func TestRenderLength(t *testing.T) {
	rate := beep.SampleRate(44100)
	tone := &core.Tone{
		Name: "blip",
		Wave: core.WaveSine,
		Gain: 0.5,
		Notes: []core.Note{
			{Freq: 440, Duration: 10 * time.Millisecond},
			{Freq: 0, Duration: 20 * time.Millisecond},
			{Freq: 660, Duration: 10 * time.Millisecond},
		},
	}
	buf := Render(tone, rate)

	expected := rate.N(10*time.Millisecond)*2 + rate.N(20*time.Millisecond)
	if buf.Len() != expected {
		t.Fatalf("rendered %d samples, expected %d", buf.Len(), expected)
	}

	samples := drain(buf.Streamer(0, buf.Len()))
	first := rate.N(10 * time.Millisecond)
	rest := samples[first : first+rate.N(20*time.Millisecond)]
	for i, s := range rest {
		if s[0] != 0 {
			t.Fatalf("rest sample %d = %f, expected silence", i, s[0])
		}
	}
	for i, s := range samples {
		if math.Abs(s[0]) > 0.51 {
			t.Fatalf("sample %d = %f exceeds the tone gain", i, s[0])
		}
	}
}

func TestRenderEmptyTone(t *testing.T) {
	if buf := Render(nil, SampleRate); buf.Len() != 0 {
		t.Errorf("nil tone rendered %d samples", buf.Len())
	}
}

type toneAssets map[string]*core.Tone

func (a toneAssets) Image(string) (*core.Sprite, bool) { return nil, false }
func (a toneAssets) Ready() (bool, error)              { return true, nil }
func (a toneAssets) Sound(name string) (*core.Tone, bool) {
	t, ok := a[name]
	return t, ok
}

func newTestSink() *Sink {
	assets := toneAssets{
		"flap": {Name: "flap", Wave: core.WaveSquare, Gain: 0.2, Notes: []core.Note{{Freq: 500, Duration: 20 * time.Millisecond}}},
	}
	return NewSink(assets, log.New(io.Discard))
}

func TestSinkWithoutSpeakerIsSilent(t *testing.T) {
	s := newTestSink()

	// None of these touch the speaker before Init.
	s.Play("flap")
	s.PlayLoop("flap")
	s.StopAll()
	s.Close()

	if len(s.loops) != 0 {
		t.Errorf("uninitialized sink started %d loops", len(s.loops))
	}
}

func TestSinkVolumeAndMute(t *testing.T) {
	s := newTestSink()
	if s.Volume() != DefaultVolume {
		t.Errorf("volume = %f, expected %f", s.Volume(), DefaultVolume)
	}

	tests := []struct {
		in, want float64
	}{
		{0.25, 0.25},
		{2, 1},
		{-1, 0},
	}
	for _, tc := range tests {
		s.SetVolume(tc.in)
		if s.Volume() != tc.want {
			t.Errorf("SetVolume(%f): volume = %f, expected %f", tc.in, s.Volume(), tc.want)
		}
	}
	if !s.master.Silent {
		t.Error("zero volume should silence the master stage")
	}

	s.SetVolume(0.5)
	if s.master.Silent || s.master.Volume != -1 {
		t.Errorf("master = silent %v volume %f, expected audible at -1", s.master.Silent, s.master.Volume)
	}
	s.SetMuted(true)
	if !s.Muted() || !s.master.Silent {
		t.Error("SetMuted(true) should silence the master stage")
	}
	s.SetMuted(false)
	if s.master.Silent {
		t.Error("unmuting should restore output")
	}
}

func TestSinkPrepare(t *testing.T) {
	s := newTestSink()
	missing := s.Prepare("flap", "score")
	if len(missing) != 1 || missing[0] != "score" {
		t.Errorf("missing = %v, expected [score]", missing)
	}
	if buf := s.cache["flap"]; buf == nil || buf.Len() != SampleRate.N(20*time.Millisecond) {
		t.Error("flap should be rendered and cached")
	}
}
