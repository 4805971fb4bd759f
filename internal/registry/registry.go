// Package registry maps mode IDs to game factories. Modes register
// themselves from init, so frontends and the CLI never import a game
// package for anything but its side effect.
package registry

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Game is what every frontend drives. Implementations hold no terminal or
// window state; input arrives as actions and output goes to a Surface.
type Game interface {
	// ID is the stable key used on the command line and in the scores database.
	ID() string

	// Title is the display name, e.g. "Flappy Bird".
	Title() string

	// Attach injects the collaborators. Called once, before Reset.
	Attach(env core.Env)

	// Reset starts over with the given seed and debug flag.
	Reset(cfg core.RuntimeConfig)

	// Step advances one frame of tick.Delta seconds.
	Step(tick core.Tick, in core.InputFrame) core.StepResult

	// Render draws the current frame in world units.
	Render(dst core.Surface)

	// Resize changes the world size.
	Resize(w, h float64)

	State() core.GameState
}

// GameInfo describes a registered mode.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a fresh game instance.
type Factory func() Game

type mode struct {
	factory Factory
	title   string
}

var (
	mu    sync.RWMutex
	modes = make(map[string]mode)
)

// Register adds a mode. It panics on an empty or duplicate ID, which can
// only come from a programming error in an init function.
func Register(id string, f Factory) {
	if id == "" {
		panic("registry: empty game id")
	}

	mu.Lock()
	defer mu.Unlock()

	if _, exists := modes[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	modes[id] = mode{factory: f, title: f().Title()}
}

// List returns every registered mode sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(modes))
	for id, m := range modes {
		result = append(result, GameInfo{ID: id, Title: m.title})
	}
	slices.SortFunc(result, func(a, b GameInfo) int {
		return strings.Compare(a.ID, b.ID)
	})
	return result
}

// Create returns a new instance of the mode.
func Create(id string) (Game, error) {
	mu.RLock()
	m, ok := modes[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return m.factory(), nil
}

// Title returns the display name of a mode without creating it.
func Title(id string) (string, bool) {
	mu.RLock()
	defer mu.RUnlock()

	m, ok := modes[id]
	return m.title, ok
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	_, ok := Title(id)
	return ok
}
