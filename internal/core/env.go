package core

import (
	"io"

	"github.com/charmbracelet/log"
)

// AudioSink plays named sounds. Every call is fire-and-forget.
type AudioSink interface {
	Play(name string)
	PlayLoop(name string)
	StopAll()
	SetMuted(muted bool)
	SetVolume(v float64)
}

// HighScoreStore is durable storage for a single best score.
type HighScoreStore interface {
	HighScore() int
	SetHighScore(score int)
}

// TransitionObserver is called after every committed state change with a
// nil err, and for every rejected request with the reason. A rejected
// request leaves the state at from.
type TransitionObserver func(from, to string, err error)

// Env bundles the collaborators injected into a game.
// Zero fields are replaced with silent defaults by WithDefaults.
type Env struct {
	Log      *log.Logger
	Assets   AssetProvider
	Audio    AudioSink
	Scores   HighScoreStore
	Observer TransitionObserver
}

// WithDefaults fills every nil collaborator with a no-op implementation.
func (e Env) WithDefaults() Env {
	if e.Log == nil {
		e.Log = log.New(io.Discard)
	}
	if e.Assets == nil {
		e.Assets = NoAssets{}
	}
	if e.Audio == nil {
		e.Audio = NopAudio{}
	}
	if e.Scores == nil {
		e.Scores = &MemoryHighScore{}
	}
	return e
}

// NopAudio discards every call.
type NopAudio struct{}

func (NopAudio) Play(string)       {}
func (NopAudio) PlayLoop(string)   {}
func (NopAudio) StopAll()          {}
func (NopAudio) SetMuted(bool)     {}
func (NopAudio) SetVolume(float64) {}

// MemoryHighScore keeps the best score for the lifetime of the process.
type MemoryHighScore struct {
	Score int
}

func (m *MemoryHighScore) HighScore() int {
	return m.Score
}

func (m *MemoryHighScore) SetHighScore(score int) {
	m.Score = score
}
