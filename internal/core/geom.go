// Package core provides the engine-neutral types shared by the simulation and
// the platform frontends: geometry, the drawing surface contract, input
// actions, the frame clock and the collaborators injected into a game.
// It never imports a frontend (no Bubble Tea, no ebiten) so game logic stays
// pure and testable.
package core

import "math"

// Vec is a point or displacement in world units.
type Vec struct {
	X, Y float64
}

// Bounds is an axis-aligned box in world units.
// Top < Bottom because the y axis grows downward.
type Bounds struct {
	Left, Right, Top, Bottom float64
}

// BoundsAround returns a box of the given size centered on (cx, cy).
func BoundsAround(cx, cy, w, h float64) Bounds {
	return Bounds{
		Left:   cx - w/2,
		Right:  cx + w/2,
		Top:    cy - h/2,
		Bottom: cy + h/2,
	}
}

// Center returns the center point of the box.
func (b Bounds) Center() Vec {
	return Vec{X: (b.Left + b.Right) / 2, Y: (b.Top + b.Bottom) / 2}
}

// Overlaps reports whether two boxes intersect. Touching edges do not count.
func (b Bounds) Overlaps(o Bounds) bool {
	return b.Right > o.Left && b.Left < o.Right &&
		b.Bottom > o.Top && b.Top < o.Bottom
}

// ClampF restricts a float64 value to be within [min, max].
// NaN collapses to min.
func ClampF(val, min, max float64) float64 {
	if math.IsNaN(val) || val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
