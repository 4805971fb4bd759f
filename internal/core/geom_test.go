package core

import (
	"math"
	"testing"
)

func TestBoundsOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Bounds
		expected bool
	}{
		{
			name:     "overlapping",
			a:        Bounds{Left: 0, Right: 10, Top: 0, Bottom: 10},
			b:        Bounds{Left: 5, Right: 15, Top: 5, Bottom: 15},
			expected: true,
		},
		{
			name:     "separated horizontally",
			a:        Bounds{Left: 0, Right: 10, Top: 0, Bottom: 10},
			b:        Bounds{Left: 15, Right: 25, Top: 0, Bottom: 10},
			expected: false,
		},
		{
			name:     "separated vertically",
			a:        Bounds{Left: 0, Right: 10, Top: 0, Bottom: 10},
			b:        Bounds{Left: 0, Right: 10, Top: 15, Bottom: 25},
			expected: false,
		},
		{
			name:     "touching edges",
			a:        Bounds{Left: 0, Right: 10, Top: 0, Bottom: 10},
			b:        Bounds{Left: 10, Right: 20, Top: 0, Bottom: 10},
			expected: false,
		},
		{
			name:     "contained",
			a:        Bounds{Left: 0, Right: 20, Top: 0, Bottom: 20},
			b:        Bounds{Left: 5, Right: 6, Top: 5, Bottom: 6},
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Overlaps(tc.b); got != tc.expected {
				t.Errorf("Overlaps() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Overlaps(tc.a); got != tc.expected {
				t.Errorf("Overlaps() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestBoundsAround(t *testing.T) {
	b := BoundsAround(100, 50, 40, 30)

	if b.Left != 80 || b.Right != 120 || b.Top != 35 || b.Bottom != 65 {
		t.Errorf("BoundsAround() = %+v", b)
	}
	if c := b.Center(); c.X != 100 || c.Y != 50 {
		t.Errorf("Center() = %+v, expected (100, 50)", c)
	}
}

func TestTransformRoundTrip(t *testing.T) {
	tr := Identity().Translated(100, 50).Rotated(math.Pi / 2)

	x, y := tr.Apply(10, 0)
	if math.Abs(x-100) > 1e-9 || math.Abs(y-60) > 1e-9 {
		t.Errorf("Apply(10, 0) = (%v, %v), expected (100, 60)", x, y)
	}

	lx, ly := tr.Invert(x, y)
	if math.Abs(lx-10) > 1e-9 || math.Abs(ly) > 1e-9 {
		t.Errorf("Invert() = (%v, %v), expected (10, 0)", lx, ly)
	}
}

func TestTransformStack(t *testing.T) {
	s := NewTransformStack()
	s.Save()
	s.Translate(5, 5)
	if s.Current().IsIdentity() {
		t.Fatal("Translate should change the transform")
	}
	s.Restore()
	if !s.Current().IsIdentity() {
		t.Error("Restore should return to the saved transform")
	}

	// Unbalanced restore falls back to identity
	s.Translate(1, 1)
	s.Restore()
	if !s.Current().IsIdentity() {
		t.Error("Unbalanced Restore should reset to identity")
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
		{math.NaN(), 0.0, 10.0, 0.0},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}
