package flappy

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

func TestBirdJumpThenFall(t *testing.T) {
	b := NewBird(config.DefaultFlappyConfig(), 150, 320)

	if !b.Jump() {
		t.Fatal("Jump should report the impulse")
	}
	for i := 0; i < 10; i++ {
		b.Update(1.0 / 60)
	}

	// -400 + 1200 * 10/60
	if math.Abs(b.Velocity-(-200)) > 1e-9 {
		t.Errorf("velocity = %f, expected -200", b.Velocity)
	}
	if b.Y >= 320 {
		t.Errorf("bird should have risen, y = %f", b.Y)
	}
}

func TestBirdVelocityIndependentOfFrameSplit(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	steps := [][]float64{
		{0.5},
		{0.25, 0.25},
		{0.1, 0.05, 0.2, 0.15},
	}

	for _, dts := range steps {
		b := NewBird(cfg, 0, 0)
		b.Jump()
		for _, dt := range dts {
			b.Update(dt)
		}
		// -400 + 1200 * 0.5
		if math.Abs(b.Velocity-200) > 1e-9 {
			t.Errorf("steps %v: velocity = %f, expected 200", dts, b.Velocity)
		}
	}
}

func TestBirdJumpReplacesVelocity(t *testing.T) {
	b := NewBird(config.DefaultFlappyConfig(), 0, 0)
	b.Velocity = 900
	b.Jump()
	if b.Velocity != -400 {
		t.Errorf("velocity = %f, expected -400", b.Velocity)
	}
}

func TestBirdRotationSaturates(t *testing.T) {
	b := NewBird(config.DefaultFlappyConfig(), 0, 0)

	tests := []struct {
		velocity float64
		expected float64
	}{
		{0, 0},
		{300, 0.5},
		{-300, -0.5},
		{600 * math.Pi / 4, math.Pi / 4},
		{5000, math.Pi / 4},
		{-5000, -math.Pi / 4},
	}

	for _, tc := range tests {
		b.Velocity = tc.velocity
		if got := b.Rotation(); math.Abs(got-tc.expected) > 1e-12 {
			t.Errorf("Rotation() at v=%f = %f, expected %f", tc.velocity, got, tc.expected)
		}
	}
}

func TestBirdAnimationCycles(t *testing.T) {
	b := NewBird(config.DefaultFlappyConfig(), 0, 0)

	steps := []struct {
		dt    float64
		frame int
	}{
		{0.1, 0},
		{0.15, 1}, // timer restarts from 0
		{0.15, 1},
		{0.1, 2},
		{0.2, 0}, // wrapped
	}
	for i, s := range steps {
		b.Update(s.dt)
		if b.Frame != s.frame {
			t.Errorf("step %d: frame = %d, expected %d", i, b.Frame, s.frame)
		}
	}
}

func TestBirdAnimationAdvancesOncePerUpdate(t *testing.T) {
	b := NewBird(config.DefaultFlappyConfig(), 0, 0)

	b.Update(0.45)
	if b.Frame != 1 {
		t.Errorf("frame = %d after one 0.45s update, expected 1", b.Frame)
	}
	b.Update(0.19)
	if b.Frame != 1 {
		t.Errorf("frame = %d, expected the leftover time to be dropped", b.Frame)
	}
}

func TestBirdSingleFrameDoesNotAnimate(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	cfg.Bird.Frames = 1
	b := NewBird(cfg, 0, 0)
	b.Update(5)
	if b.Frame != 0 {
		t.Errorf("frame = %d, expected 0", b.Frame)
	}
}

func TestBirdBoundsAndReset(t *testing.T) {
	b := NewBird(config.DefaultFlappyConfig(), 100, 200)
	bb := b.Bounds()
	if bb.Left != 80 || bb.Right != 120 || bb.Top != 185 || bb.Bottom != 215 {
		t.Errorf("Bounds() = %+v, expected {80 120 185 215}", bb)
	}

	b.Velocity = 123
	b.Update(0.3)
	b.Reset(10, 20)
	if b.X != 10 || b.Y != 20 || b.Velocity != 0 || b.Frame != 0 || b.Rotation() != 0 {
		t.Errorf("Reset left state behind: %+v", b)
	}
}

func TestBirdClampTo(t *testing.T) {
	b := NewBird(config.DefaultFlappyConfig(), 500, 700)
	b.ClampTo(300, 590)
	if b.X != 280 {
		t.Errorf("x = %f, expected 280", b.X)
	}
	if b.Bounds().Bottom != 590 {
		t.Errorf("bottom = %f, expected 590", b.Bounds().Bottom)
	}
}
