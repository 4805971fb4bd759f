package flappy

import (
	"math"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// CollisionKind identifies what the bird touched.
type CollisionKind int

const (
	CollisionNone CollisionKind = iota
	CollisionGround
	CollisionPipeTop
	CollisionPipeBottom
	CollisionCeiling
)

// String returns the collision name used in logs and events.
func (k CollisionKind) String() string {
	switch k {
	case CollisionNone:
		return "none"
	case CollisionGround:
		return "ground"
	case CollisionPipeTop:
		return "pipe_top"
	case CollisionPipeBottom:
		return "pipe_bottom"
	case CollisionCeiling:
		return "ceiling"
	default:
		return "unknown"
	}
}

// Fatal reports whether this kind of contact ends the run.
func (k CollisionKind) Fatal() bool {
	switch k {
	case CollisionGround, CollisionPipeTop, CollisionPipeBottom:
		return true
	default:
		return false
	}
}

// Collision describes a contact found by Detect.
type Collision struct {
	Kind  CollisionKind
	Point core.Vec // Where the effect marker is drawn
	Pipe  int      // Sequence number of the pipe hit, 0 otherwise
}

// Detect tests the bird box against the ground, every live pipe and the
// ceiling, in that order, and returns the first match. It has no side
// effects; a ceiling result is the caller's cue to clamp the bird.
func Detect(bird core.Bounds, pipes []Pipe, worldH, groundH float64) Collision {
	groundY := worldH - groundH
	if bird.Bottom > groundY {
		return Collision{
			Kind:  CollisionGround,
			Point: core.Vec{X: bird.Center().X, Y: groundY},
		}
	}

	for _, p := range pipes {
		// The upper barrier continues above the screen.
		top := p.TopBounds()
		top.Top = math.Inf(-1)
		if bird.Overlaps(top) {
			return Collision{
				Kind:  CollisionPipeTop,
				Point: core.Vec{X: max(bird.Left, top.Left), Y: top.Bottom},
				Pipe:  p.Number,
			}
		}
		bottom := p.BottomBounds(groundY)
		if bird.Overlaps(bottom) {
			return Collision{
				Kind:  CollisionPipeBottom,
				Point: core.Vec{X: max(bird.Left, bottom.Left), Y: bottom.Top},
				Pipe:  p.Number,
			}
		}
	}

	if bird.Top < 0 {
		return Collision{
			Kind:  CollisionCeiling,
			Point: core.Vec{X: bird.Center().X, Y: 0},
		}
	}

	return Collision{Kind: CollisionNone}
}

// CollisionSystem runs detection against a live bird and applies the
// ceiling clamp.
type CollisionSystem struct {
	groundH float64
}

// NewCollisionSystem creates a collision system for the given ground height.
func NewCollisionSystem(groundH float64) *CollisionSystem {
	return &CollisionSystem{groundH: groundH}
}

// GroundY returns the y-coordinate of the ground line for a world height.
func (cs *CollisionSystem) GroundY(worldH float64) float64 {
	return worldH - cs.groundH
}

// Check returns the fatal collision for this frame, or nil. Ceiling contact
// is not fatal: the bird is placed with its top exactly at 0 and its
// velocity zeroed, and nil is returned.
func (cs *CollisionSystem) Check(bird *Bird, pipes []Pipe, worldH float64) *Collision {
	c := Detect(bird.Bounds(), pipes, worldH, cs.groundH)
	switch {
	case c.Kind == CollisionCeiling:
		bird.Y = bird.Height / 2
		bird.Velocity = 0
		return nil
	case c.Kind.Fatal():
		return &c
	default:
		return nil
	}
}

// CollisionEffect is the decaying marker drawn where a fatal collision
// happened. It is idle until Start and returns to idle once its timer runs out.
type CollisionEffect struct {
	duration float64
	timer    float64
	point    core.Vec
	active   bool
}

// NewCollisionEffect creates an idle effect lasting duration seconds.
func NewCollisionEffect(duration float64) *CollisionEffect {
	return &CollisionEffect{duration: duration}
}

// Start shows the marker at p, restarting the timer.
func (e *CollisionEffect) Start(p core.Vec) {
	if e.duration <= 0 {
		return
	}
	e.point = p
	e.timer = e.duration
	e.active = true
}

// Update counts the timer down by dt seconds.
func (e *CollisionEffect) Update(dt float64) {
	if !e.active {
		return
	}
	e.timer -= dt
	if e.timer <= 0 {
		e.timer = 0
		e.active = false
	}
}

// Reset returns the effect to idle.
func (e *CollisionEffect) Reset() {
	e.active = false
	e.timer = 0
}

// Active reports whether the marker is showing.
func (e *CollisionEffect) Active() bool {
	return e.active
}

// Alpha is the remaining fraction of the effect, 1 at start and 0 at the end.
func (e *CollisionEffect) Alpha() float64 {
	if !e.active || e.duration <= 0 {
		return 0
	}
	return e.timer / e.duration
}

// Radius grows from 10 to 40 world units as the effect fades.
func (e *CollisionEffect) Radius() float64 {
	return 30*(1-e.Alpha()) + 10
}

// Point returns where the marker is centered.
func (e *CollisionEffect) Point() core.Vec {
	return e.point
}
