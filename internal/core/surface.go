package core

import "math"

// Paint describes how a primitive is filled or stroked.
// Alpha below 1 asks the frontend to blend; frontends without blending
// (the terminal) treat it as "dim what is underneath".
type Paint struct {
	Color Color
	Alpha float64
	Width float64 // Stroke width in world units, ignored for fills
}

// Solid returns an opaque paint.
func Solid(c Color) Paint {
	return Paint{Color: c, Alpha: 1, Width: 1}
}

// Translucent returns a paint with the given alpha.
func Translucent(c Color, alpha float64) Paint {
	return Paint{Color: c, Alpha: ClampF(alpha, 0, 1), Width: 1}
}

// Align is horizontal text alignment relative to the anchor point.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// TextStyle controls DrawText. Size is a nominal font height in world units.
type TextStyle struct {
	Color Color
	Size  float64
	Align Align
	Bold  bool
}

// Surface is the 2D drawing context a game renders into.
// Coordinates are world units; the current transform applies to every call.
type Surface interface {
	// Size returns the drawable area in world units.
	Size() (w, h float64)

	Clear(x, y, w, h float64)
	FillRect(x, y, w, h float64, p Paint)
	StrokeRect(x, y, w, h float64, p Paint)
	FillCircle(cx, cy, r float64, p Paint)
	StrokeCircle(cx, cy, r float64, p Paint)

	// DrawImage blits a sprite stretched into the destination rect.
	DrawImage(img *Sprite, x, y, w, h float64)

	DrawText(text string, x, y float64, st TextStyle)

	// Save pushes the current transform; Restore pops it.
	Save()
	Restore()
	Translate(dx, dy float64)
	Rotate(rad float64)
}

// Transform is a 2D affine matrix:
//
//	| A C E |
//	| B D F |
type Transform struct {
	A, B, C, D, E, F float64
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{A: 1, D: 1}
}

// Apply maps a local point to world coordinates.
func (t Transform) Apply(x, y float64) (float64, float64) {
	return t.A*x + t.C*y + t.E, t.B*x + t.D*y + t.F
}

// Invert maps a world point back to local coordinates.
// A singular transform maps everything to the origin.
func (t Transform) Invert(x, y float64) (float64, float64) {
	det := t.A*t.D - t.B*t.C
	if det == 0 {
		return 0, 0
	}
	x -= t.E
	y -= t.F
	return (t.D*x - t.C*y) / det, (-t.B*x + t.A*y) / det
}

// Translated returns t followed by a local translation.
func (t Transform) Translated(dx, dy float64) Transform {
	t.E += t.A*dx + t.C*dy
	t.F += t.B*dx + t.D*dy
	return t
}

// Rotated returns t followed by a local rotation.
func (t Transform) Rotated(rad float64) Transform {
	sin, cos := math.Sincos(rad)
	return Transform{
		A: t.A*cos + t.C*sin,
		B: t.B*cos + t.D*sin,
		C: -t.A*sin + t.C*cos,
		D: -t.B*sin + t.D*cos,
		E: t.E,
		F: t.F,
	}
}

// IsIdentity reports whether t leaves points unchanged.
func (t Transform) IsIdentity() bool {
	return t == Identity()
}

// TransformStack implements the Save/Restore/Translate/Rotate part of
// Surface so frontends only have to rasterize.
type TransformStack struct {
	current Transform
	saved   []Transform
}

// NewTransformStack returns a stack holding the identity transform.
func NewTransformStack() TransformStack {
	return TransformStack{current: Identity()}
}

// Current returns the active transform.
func (s *TransformStack) Current() Transform {
	return s.current
}

// Save pushes the active transform.
func (s *TransformStack) Save() {
	s.saved = append(s.saved, s.current)
}

// Restore pops the last saved transform. Unbalanced calls reset to identity.
func (s *TransformStack) Restore() {
	if len(s.saved) == 0 {
		s.current = Identity()
		return
	}
	s.current = s.saved[len(s.saved)-1]
	s.saved = s.saved[:len(s.saved)-1]
}

// Translate appends a translation to the active transform.
func (s *TransformStack) Translate(dx, dy float64) {
	s.current = s.current.Translated(dx, dy)
}

// Rotate appends a rotation to the active transform.
func (s *TransformStack) Rotate(rad float64) {
	s.current = s.current.Rotated(rad)
}

// Reset drops all saved state.
func (s *TransformStack) Reset() {
	s.current = Identity()
	s.saved = s.saved[:0]
}
