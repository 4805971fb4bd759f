package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Bird is the player character: a point mass with a fixed-size hitbox.
// Rotation is not stored; it is recomputed from velocity on every read.
type Bird struct {
	X, Y     float64 // Center position
	Velocity float64 // Vertical velocity, positive = down
	Width    float64
	Height   float64
	Frame    int // Current animation frame

	frames       int
	animTimer    float64
	animInterval float64

	gravity     float64
	jumpForce   float64
	rotDivisor  float64
	maxRotation float64
}

// NewBird creates a bird at (x, y) using the physics and size from cfg.
func NewBird(cfg config.FlappyConfig, x, y float64) *Bird {
	b := &Bird{
		Width:        cfg.Bird.Width,
		Height:       cfg.Bird.Height,
		frames:       cfg.Bird.Frames,
		animInterval: cfg.Bird.AnimInterval,
		gravity:      cfg.Physics.Gravity,
		jumpForce:    cfg.Physics.JumpForce,
		rotDivisor:   cfg.Physics.RotationDivisor,
		maxRotation:  cfg.Physics.MaxRotation,
	}
	b.Reset(x, y)
	return b
}

// Update integrates gravity over dt seconds and advances the wing animation.
func (b *Bird) Update(dt float64) {
	b.Velocity += b.gravity * dt
	b.Y += b.Velocity * dt

	if b.frames <= 1 || b.animInterval <= 0 {
		return
	}
	// One frame per update at most; the leftover time is dropped.
	b.animTimer += dt
	if b.animTimer >= b.animInterval {
		b.animTimer = 0
		b.Frame = (b.Frame + 1) % b.frames
	}
}

// Jump replaces the velocity with the jump impulse. It reports whether the
// impulse was applied so the caller can play a sound.
func (b *Bird) Jump() bool {
	b.Velocity = b.jumpForce
	return true
}

// Rotation returns the nose angle in radians, derived from velocity and
// clamped to ±maxRotation.
func (b *Bird) Rotation() float64 {
	if b.rotDivisor <= 0 {
		return 0
	}
	return core.ClampF(b.Velocity/b.rotDivisor, -b.maxRotation, b.maxRotation)
}

// Bounds returns the hitbox centered on the bird position.
func (b *Bird) Bounds() core.Bounds {
	return core.BoundsAround(b.X, b.Y, b.Width, b.Height)
}

// Reset moves the bird to (x, y) and clears motion and animation state.
func (b *Bird) Reset(x, y float64) {
	b.X = x
	b.Y = y
	b.Velocity = 0
	b.Frame = 0
	b.animTimer = 0
}

// ClampTo keeps the bird horizontally inside [0, w] and vertically above
// the ground line.
func (b *Bird) ClampTo(w, groundY float64) {
	b.X = core.ClampF(b.X, b.Width/2, max(b.Width/2, w-b.Width/2))
	if b.Y+b.Height/2 > groundY {
		b.Y = groundY - b.Height/2
	}
}
