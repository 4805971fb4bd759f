package flappy

import (
	"math/rand"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// PipeManager handles spawning, movement, scoring and removal of pipes.
// Live pipes are kept in spawn order, which is also left-to-right order
// because every pipe moves at the same speed.
//
// A manager built with Unavailable has no pipes and all its operations
// are no-ops.
type PipeManager struct {
	pipes     []Pipe
	rng       *rand.Rand
	timer     float64 // Seconds since the last spawn
	spawned   int     // Pipes created since the last reset
	available bool

	cfg     config.FlappyPipes
	worldW  float64
	worldH  float64
	groundH float64
	minGapY float64
	maxGapY float64
}

// NewPipeManager creates a pipe manager for a world of the given size.
func NewPipeManager(cfg config.FlappyConfig, seed int64, worldW, worldH float64) *PipeManager {
	pm := &PipeManager{
		pipes:     make([]Pipe, 0, 8),
		available: true,
		cfg:       cfg.Pipes,
		groundH:   cfg.World.GroundHeight,
	}
	pm.Resize(worldW, worldH)
	pm.Reset(seed)
	return pm
}

// Unavailable returns a manager that never spawns anything.
func Unavailable() *PipeManager {
	return &PipeManager{}
}

// Available reports whether this manager simulates pipes at all.
func (pm *PipeManager) Available() bool {
	return pm.available
}

// Reset clears all pipes, the spawn timer and the spawn counter, and reseeds the RNG.
func (pm *PipeManager) Reset(seed int64) {
	pm.pipes = pm.pipes[:0]
	pm.timer = 0
	pm.spawned = 0
	if pm.available {
		pm.rng = rand.New(rand.NewSource(seed))
	}
}

// Resize recomputes the spawn position and the gap bounds for a new world
// size. Live pipes are kept where they are.
func (pm *PipeManager) Resize(worldW, worldH float64) {
	pm.worldW = worldW
	pm.worldH = worldH
	pm.minGapY = pm.cfg.MinGapY
	pm.maxGapY = worldH - pm.cfg.Gap - pm.groundH - pm.cfg.BottomMargin
	if pm.maxGapY < pm.minGapY {
		pm.maxGapY = pm.minGapY // World too short for the margins
	}
}

// GapRange returns the current [min, max] range for a new pipe's gap top.
func (pm *PipeManager) GapRange() (float64, float64) {
	return pm.minGapY, pm.maxGapY
}

// Update advances the spawn timer, spawns a pipe when it elapses, moves
// every pipe left and drops pipes that are fully off-screen.
//
// The timer is reset to zero on spawn rather than reduced by the interval,
// so under uneven frame times the spawn spacing drifts slightly late.
func (pm *PipeManager) Update(dt float64) {
	if !pm.available {
		return
	}

	pm.timer += dt
	if pm.timer >= pm.cfg.SpawnInterval {
		pm.spawn()
		pm.timer = 0
	}

	for i := range pm.pipes {
		pm.pipes[i].X -= pm.cfg.Speed * dt
	}

	live := pm.pipes[:0]
	for _, p := range pm.pipes {
		if !p.OffScreen() {
			live = append(live, p)
		}
	}
	pm.pipes = live
}

// spawn creates a new pipe at the right edge of the world.
func (pm *PipeManager) spawn() {
	gapY := pm.minGapY + pm.rng.Float64()*(pm.maxGapY-pm.minGapY)
	pm.spawned++

	pm.pipes = append(pm.pipes, Pipe{
		Number:    pm.spawned,
		X:         pm.worldW,
		GapY:      gapY,
		GapHeight: pm.cfg.Gap,
		Width:     pm.cfg.Width,
		Special:   pm.cfg.IsSpecial(pm.spawned),
	})
}

// CheckScoring marks every unscored pipe whose trailing edge is left of
// the bird's leading edge and returns how many were marked by this call.
// Each pipe counts at most once.
func (pm *PipeManager) CheckScoring(bird core.Bounds) int {
	scored := 0
	for i := range pm.pipes {
		p := &pm.pipes[i]
		if !p.Scored && p.Right() < bird.Left {
			p.Scored = true
			scored++
		}
	}
	return scored
}

// Pipes returns the live pipes in spawn order. The slice is owned by the
// manager and only valid until the next Update.
func (pm *PipeManager) Pipes() []Pipe {
	return pm.pipes
}

// Timer returns the seconds accumulated toward the next spawn.
func (pm *PipeManager) Timer() float64 {
	return pm.timer
}

// SpawnInterval returns the configured seconds between spawns.
func (pm *PipeManager) SpawnInterval() float64 {
	return pm.cfg.SpawnInterval
}

// Spawned returns how many pipes were created since the last reset.
func (pm *PipeManager) Spawned() int {
	return pm.spawned
}
