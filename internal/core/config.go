package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in frontend units (cells or pixels)
	ScreenH  int   // Screen height in frontend units
	TickRate int   // Frames per second requested from the clock (default 60)
	Seed     int64 // RNG seed; 0 means the platform picks one from the time
	Debug    bool  // Start with the debug overlay enabled
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0,
	}
}

// GameState is a snapshot of the game reported to the platform every tick.
type GameState struct {
	Phase     string // Name of the active state-machine state
	Score     int
	HighScore int
	GameOver  bool
	Paused    bool
}

// EventKind classifies notifications emitted by a game.
type EventKind int

const (
	EventStateChanged EventKind = iota
	EventTransitionRejected
	EventScored
	EventCollision
	EventNewHighScore
)

// String returns the event name used in logs.
func (k EventKind) String() string {
	switch k {
	case EventStateChanged:
		return "state_changed"
	case EventTransitionRejected:
		return "transition_rejected"
	case EventScored:
		return "scored"
	case EventCollision:
		return "collision"
	case EventNewHighScore:
		return "new_high_score"
	default:
		return "unknown"
	}
}

// Event is a notification emitted during a tick.
type Event struct {
	Kind   EventKind
	From   string // Previous state for state events
	To     string // New (or requested) state for state events
	Detail string // Collision kind, rejection reason
	Value  int    // Points scored, final score
}

// StepResult is returned by Game.Step after each tick.
type StepResult struct {
	State  GameState
	Events []Event
}
