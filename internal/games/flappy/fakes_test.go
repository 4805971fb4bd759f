package flappy

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// recordingAudio logs every sink call as "op:name".
type recordingAudio struct {
	calls []string
}

func (a *recordingAudio) Play(name string)     { a.calls = append(a.calls, "play:"+name) }
func (a *recordingAudio) PlayLoop(name string) { a.calls = append(a.calls, "loop:"+name) }
func (a *recordingAudio) StopAll()             { a.calls = append(a.calls, "stop") }
func (a *recordingAudio) SetMuted(bool)        {}
func (a *recordingAudio) SetVolume(float64)    {}

func (a *recordingAudio) count(call string) int {
	n := 0
	for _, c := range a.calls {
		if c == call {
			n++
		}
	}
	return n
}

// countingStore counts writes to the high score.
type countingStore struct {
	score  int
	writes int
}

func (s *countingStore) HighScore() int { return s.score }

func (s *countingStore) SetHighScore(score int) {
	s.score = score
	s.writes++
}

// stubAssets reports a fixed readiness and has no images or sounds.
type stubAssets struct {
	ready bool
	err   error
}

func (a *stubAssets) Image(string) (*core.Sprite, bool) { return nil, false }
func (a *stubAssets) Sound(string) (*core.Tone, bool)   { return nil, false }
func (a *stubAssets) Ready() (bool, error)              { return a.ready, a.err }

// recordingSurface logs draw calls as short strings.
type recordingSurface struct {
	w, h float64
	ops  []string
}

func (s *recordingSurface) Size() (float64, float64) { return s.w, s.h }

func (s *recordingSurface) Clear(x, y, w, h float64) {
	s.ops = append(s.ops, "clear")
}

func (s *recordingSurface) FillRect(x, y, w, h float64, p core.Paint) {
	s.ops = append(s.ops, "fill:"+p.Color.String())
}

func (s *recordingSurface) StrokeRect(x, y, w, h float64, p core.Paint) {
	s.ops = append(s.ops, "stroke:"+p.Color.String())
}

func (s *recordingSurface) FillCircle(cx, cy, r float64, p core.Paint) {
	s.ops = append(s.ops, "circle:"+p.Color.String())
}

func (s *recordingSurface) StrokeCircle(cx, cy, r float64, p core.Paint) {
	s.ops = append(s.ops, "ring:"+p.Color.String())
}

func (s *recordingSurface) DrawImage(img *core.Sprite, x, y, w, h float64) {
	s.ops = append(s.ops, "image:"+img.Name)
}

func (s *recordingSurface) DrawText(text string, x, y float64, st core.TextStyle) {
	s.ops = append(s.ops, "text:"+text)
}

func (s *recordingSurface) Save()                    { s.ops = append(s.ops, "save") }
func (s *recordingSurface) Restore()                 { s.ops = append(s.ops, "restore") }
func (s *recordingSurface) Translate(dx, dy float64) {}
func (s *recordingSurface) Rotate(rad float64)       {}

func (s *recordingSurface) index(op string) int {
	for i, o := range s.ops {
		if o == op {
			return i
		}
	}
	return -1
}

func silentLogger() *log.Logger {
	return log.New(io.Discard)
}

const frame = 1.0 / 60

func tick() core.Tick {
	return core.Tick{Delta: frame, FPS: 60}
}

func input(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

// newTestGame returns a game in the Start state with recording collaborators.
func newTestGame(seed int64) (*Game, *recordingAudio, *countingStore) {
	audio := &recordingAudio{}
	store := &countingStore{}
	g := New()
	g.Attach(core.Env{Log: silentLogger(), Audio: audio, Scores: store})
	g.Reset(core.RuntimeConfig{TickRate: 60, Seed: seed})
	return g, audio, store
}
