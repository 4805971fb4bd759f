package flappy

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

const (
	testWorldH  = 640.0
	testGroundH = 50.0
)

func TestDetect(t *testing.T) {
	// Gap from 200 to 360, pipe spans x 100..160.
	pipe := Pipe{Number: 4, X: 100, GapY: 200, GapHeight: 160, Width: 60}

	tests := []struct {
		name  string
		bird  core.Bounds
		pipes []Pipe
		kind  CollisionKind
		point core.Vec
	}{
		{
			name: "clear sky",
			bird: core.BoundsAround(50, 300, 40, 30),
			kind: CollisionNone,
		},
		{
			name: "inside the gap",
			bird: core.BoundsAround(130, 280, 40, 30), pipes: []Pipe{pipe},
			kind: CollisionNone,
		},
		{
			name: "ground",
			bird: core.BoundsAround(50, 580, 40, 30),
			kind: CollisionGround, point: core.Vec{X: 50, Y: 590},
		},
		{
			name: "top pipe",
			bird: core.BoundsAround(90, 205, 40, 30), pipes: []Pipe{pipe},
			kind: CollisionPipeTop, point: core.Vec{X: 100, Y: 200},
		},
		{
			name: "bottom pipe",
			bird: core.BoundsAround(130, 350, 40, 30), pipes: []Pipe{pipe},
			kind: CollisionPipeBottom, point: core.Vec{X: 110, Y: 360},
		},
		{
			name: "touching the pipe face is not overlap",
			bird: core.BoundsAround(80, 100, 40, 30), pipes: []Pipe{pipe},
			kind: CollisionNone,
		},
		{
			name: "ground beats pipe",
			bird: core.BoundsAround(130, 585, 40, 30), pipes: []Pipe{pipe},
			kind: CollisionGround, point: core.Vec{X: 130, Y: 590},
		},
		{
			name: "pipe beats ceiling",
			bird: core.BoundsAround(130, 5, 40, 30), pipes: []Pipe{pipe},
			kind: CollisionPipeTop, point: core.Vec{X: 110, Y: 200},
		},
		{
			name: "above the screen over a pipe",
			bird: core.BoundsAround(130, -40, 40, 30), pipes: []Pipe{pipe},
			kind: CollisionPipeTop, point: core.Vec{X: 110, Y: 200},
		},
		{
			name: "ceiling",
			bird: core.BoundsAround(50, 5, 40, 30),
			kind: CollisionCeiling, point: core.Vec{X: 50, Y: 0},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Detect(tc.bird, tc.pipes, testWorldH, testGroundH)
			if got.Kind != tc.kind {
				t.Fatalf("Detect() kind = %s, expected %s", got.Kind, tc.kind)
			}
			if tc.kind != CollisionNone && got.Point != tc.point {
				t.Errorf("Detect() point = %+v, expected %+v", got.Point, tc.point)
			}
		})
	}
}

func TestDetectReportsPipeNumber(t *testing.T) {
	pipes := []Pipe{
		{Number: 1, X: 300, GapY: 200, GapHeight: 160, Width: 60},
		{Number: 2, X: 100, GapY: 200, GapHeight: 160, Width: 60},
	}
	got := Detect(core.BoundsAround(130, 100, 40, 30), pipes, testWorldH, testGroundH)
	if got.Pipe != 2 {
		t.Errorf("Pipe = %d, expected 2", got.Pipe)
	}
}

func TestCollisionKindFatal(t *testing.T) {
	fatal := map[CollisionKind]bool{
		CollisionNone:       false,
		CollisionGround:     true,
		CollisionPipeTop:    true,
		CollisionPipeBottom: true,
		CollisionCeiling:    false,
	}
	for k, want := range fatal {
		if k.Fatal() != want {
			t.Errorf("%s.Fatal() = %v, expected %v", k, k.Fatal(), want)
		}
	}
}

func TestCeilingIsSoftClamp(t *testing.T) {
	cs := NewCollisionSystem(testGroundH)
	b := NewBird(config.DefaultFlappyConfig(), 50, -5)
	b.Velocity = -350

	if hit := cs.Check(b, nil, testWorldH); hit != nil {
		t.Fatalf("ceiling contact returned %+v, expected nil", *hit)
	}
	if top := b.Bounds().Top; top != 0 {
		t.Errorf("bird top = %f after clamp, expected 0", top)
	}
	if b.Velocity != 0 {
		t.Errorf("velocity = %f after clamp, expected 0", b.Velocity)
	}
}

func TestCheckReturnsFatalCollision(t *testing.T) {
	cs := NewCollisionSystem(testGroundH)
	b := NewBird(config.DefaultFlappyConfig(), 50, 600)

	hit := cs.Check(b, nil, testWorldH)
	if hit == nil || hit.Kind != CollisionGround {
		t.Fatalf("Check() = %v, expected ground", hit)
	}
	if b.Y != 600 {
		t.Error("Check must not move the bird on a fatal collision")
	}
}

func TestCollisionEffectLifecycle(t *testing.T) {
	e := NewCollisionEffect(0.3)
	if e.Active() {
		t.Fatal("new effect should be idle")
	}

	e.Start(core.Vec{X: 10, Y: 20})
	if !e.Active() || e.Alpha() != 1 || e.Radius() != 10 {
		t.Errorf("after Start: active=%v alpha=%f radius=%f", e.Active(), e.Alpha(), e.Radius())
	}

	e.Update(0.15)
	if math.Abs(e.Alpha()-0.5) > 1e-9 || math.Abs(e.Radius()-25) > 1e-9 {
		t.Errorf("halfway: alpha=%f radius=%f, expected 0.5 and 25", e.Alpha(), e.Radius())
	}
	if e.Point() != (core.Vec{X: 10, Y: 20}) {
		t.Errorf("Point() = %+v", e.Point())
	}

	e.Update(0.2)
	if e.Active() || e.Alpha() != 0 {
		t.Errorf("expired effect: active=%v alpha=%f", e.Active(), e.Alpha())
	}
}
