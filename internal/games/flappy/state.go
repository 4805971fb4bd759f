package flappy

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// ErrInvalidState is returned for a transition to an unrecognized state.
var ErrInvalidState = errors.New("flappy: invalid state")

// State is one screen of the game.
type State int

const (
	StateLoading State = iota
	StateStart
	StatePlaying
	StatePaused
	StateGameOver
	stateCount
)

var stateNames = [...]string{
	StateLoading:  "loading",
	StateStart:    "start",
	StatePlaying:  "playing",
	StatePaused:   "paused",
	StateGameOver: "gameOver",
}

// String returns the state name.
func (s State) String() string {
	if !s.Valid() {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

// Valid reports whether s is one of the known states.
func (s State) Valid() bool {
	return s >= 0 && s < stateCount
}

// ParseState resolves a state name.
func ParseState(name string) (State, error) {
	for i, n := range stateNames {
		if n == name {
			return State(i), nil
		}
	}
	return StateLoading, fmt.Errorf("%w: %q", ErrInvalidState, name)
}

// EffectKind is one step of a committed transition.
type EffectKind int

const (
	EffectExit    EffectKind = iota // Run the exit hook of the old state
	EffectCommit                    // Assign the new state
	EffectEnter                     // Run the enter hook of the new state
	EffectObserve                   // Call the observer
	EffectNotify                    // Emit a state change event
)

// Effect pairs an effect kind with the state it applies to.
type Effect struct {
	Kind  EffectKind
	State State
}

// Plan is the outcome of Transition: the resulting state and the effects
// the caller must run, in order.
type Plan struct {
	From    State
	To      State
	Effects []Effect
}

// Changed reports whether the plan moves to a different state.
func (p Plan) Changed() bool {
	return len(p.Effects) > 0
}

// Transition computes the effects of moving from cur to target. It does not
// touch any state. An unrecognized target is an error; a request for the
// current state is a successful plan with no effects.
func Transition(cur, target State) (Plan, error) {
	if !target.Valid() {
		return Plan{From: cur, To: cur}, fmt.Errorf("%w: %s", ErrInvalidState, target)
	}
	if cur == target {
		return Plan{From: cur, To: cur}, nil
	}
	return Plan{
		From: cur,
		To:   target,
		Effects: []Effect{
			{Kind: EffectExit, State: cur},
			{Kind: EffectCommit, State: target},
			{Kind: EffectEnter, State: target},
			{Kind: EffectObserve, State: target},
			{Kind: EffectNotify, State: target},
		},
	}, nil
}

// Hook is an enter or exit action.
type Hook func() error

// StateMachine holds the active state and executes transition plans.
// Hook failures, including panics, are logged and never undo a transition.
type StateMachine struct {
	current  State
	previous State
	hasPrev  bool

	enter    [stateCount]Hook
	exit     [stateCount]Hook
	observer core.TransitionObserver
	log      *log.Logger

	events []core.Event
}

// NewStateMachine creates a machine in the Loading state.
func NewStateMachine(logger *log.Logger, observer core.TransitionObserver) *StateMachine {
	return &StateMachine{
		current:  StateLoading,
		observer: observer,
		log:      logger,
	}
}

// OnEnter sets the action run after entering s.
func (m *StateMachine) OnEnter(s State, h Hook) {
	if s.Valid() {
		m.enter[s] = h
	}
}

// OnExit sets the action run before leaving s.
func (m *StateMachine) OnExit(s State, h Hook) {
	if s.Valid() {
		m.exit[s] = h
	}
}

// Current returns the active state.
func (m *StateMachine) Current() State {
	return m.current
}

// Previous returns the state active before the last committed transition.
func (m *StateMachine) Previous() (State, bool) {
	return m.previous, m.hasPrev
}

// Is reports whether s is the active state.
func (m *StateMachine) Is(s State) bool {
	return m.current == s
}

// Request moves to target. Rejected requests leave the state unchanged;
// they are logged, reported to the observer and produce a rejection event.
func (m *StateMachine) Request(target State) error {
	plan, err := Transition(m.current, target)
	if err != nil {
		return m.reject(target.String(), err)
	}
	if !plan.Changed() {
		m.log.Debug("already in state", "state", m.current)
		return nil
	}
	m.run(plan)
	return nil
}

// RequestNamed resolves name and requests that state.
func (m *StateMachine) RequestNamed(name string) error {
	s, err := ParseState(name)
	if err != nil {
		return m.reject(name, err)
	}
	return m.Request(s)
}

func (m *StateMachine) reject(target string, err error) error {
	from := m.current.String()
	m.log.Warn("transition rejected", "from", from, "to", target, "error", err)
	if m.observer != nil {
		m.guard("observer", func() error {
			m.observer(from, target, err)
			return nil
		})
	}
	m.events = append(m.events, core.Event{
		Kind:   core.EventTransitionRejected,
		From:   from,
		To:     target,
		Detail: err.Error(),
	})
	return err
}

// ReturnToPrevious moves back to the previous state, if there is one.
func (m *StateMachine) ReturnToPrevious() error {
	if !m.hasPrev {
		return nil
	}
	return m.Request(m.previous)
}

// Drain returns and clears the events emitted since the last call.
func (m *StateMachine) Drain() []core.Event {
	ev := m.events
	m.events = nil
	return ev
}

func (m *StateMachine) run(plan Plan) {
	m.log.Debug("state change", "from", plan.From, "to", plan.To)
	for _, e := range plan.Effects {
		switch e.Kind {
		case EffectExit:
			m.guard("exit "+plan.From.String(), m.exit[plan.From])
		case EffectCommit:
			m.previous = plan.From
			m.hasPrev = true
			m.current = e.State
		case EffectEnter:
			m.guard("enter "+e.State.String(), m.enter[e.State])
		case EffectObserve:
			if m.observer != nil {
				m.guard("observer", func() error {
					m.observer(plan.From.String(), plan.To.String(), nil)
					return nil
				})
			}
		case EffectNotify:
			m.events = append(m.events, core.Event{
				Kind: core.EventStateChanged,
				From: plan.From.String(),
				To:   plan.To.String(),
			})
		}
	}
}

// guard runs h, logging a returned error or a panic.
func (m *StateMachine) guard(name string, h Hook) {
	if h == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			m.log.Error("state action panicked", "action", name, "panic", r)
		}
	}()
	if err := h(); err != nil {
		m.log.Error("state action failed", "action", name, "error", err)
	}
}
