package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// ScoreTracker counts points for the current run and keeps the durable
// best score in a HighScoreStore.
type ScoreTracker struct {
	store     core.HighScoreStore
	current   int
	high      int
	finalized bool

	animDuration float64
	animScale    float64
	animTimer    float64
}

// NewScoreTracker loads the stored high score.
func NewScoreTracker(store core.HighScoreStore, fx config.FlappyEffects) *ScoreTracker {
	return &ScoreTracker{
		store:        store,
		high:         max(store.HighScore(), 0),
		animDuration: fx.ScoreAnimDuration,
		animScale:    fx.ScoreAnimScale,
	}
}

// Add increments the current score by n and restarts the emphasis
// animation. It reports false and does nothing when n <= 0.
func (s *ScoreTracker) Add(n int) bool {
	if n <= 0 {
		return false
	}
	s.current += n
	s.animTimer = s.animDuration
	return true
}

// Current returns the score of the running round.
func (s *ScoreTracker) Current() int {
	return s.current
}

// High returns the best score seen across runs.
func (s *ScoreTracker) High() int {
	return s.high
}

// Finalize closes the run. If the current score beats the high score it is
// written to the store and Finalize reports true. Only the first call per
// run has any effect.
func (s *ScoreTracker) Finalize() bool {
	if s.finalized {
		return false
	}
	s.finalized = true
	s.refresh()
	if s.current <= s.high {
		return false
	}
	s.high = s.current
	s.store.SetHighScore(s.high)
	return true
}

// Reset starts a new run. The high score is kept and picks up any better
// score another writer stored meanwhile.
func (s *ScoreTracker) Reset() {
	s.refresh()
	s.current = 0
	s.finalized = false
	s.animTimer = 0
}

// refresh raises the cached best to the stored one. The store may be
// shared with other sessions.
func (s *ScoreTracker) refresh() {
	s.high = max(s.high, s.store.HighScore())
}

// Update advances the emphasis animation by dt seconds.
func (s *ScoreTracker) Update(dt float64) {
	if s.animTimer <= 0 {
		return
	}
	s.animTimer = max(s.animTimer-dt, 0)
}

// Scale is the display scale of the score, decaying linearly from the
// configured peak to 1 over the animation duration.
func (s *ScoreTracker) Scale() float64 {
	if s.animTimer <= 0 || s.animDuration <= 0 {
		return 1
	}
	progress := 1 - s.animTimer/s.animDuration
	return s.animScale - (s.animScale-1)*progress
}
