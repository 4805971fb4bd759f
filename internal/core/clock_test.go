package core

import (
	"testing"
	"time"
)

func TestClockFirstTickIsZero(t *testing.T) {
	c := NewClock()
	start := time.Unix(1000, 0)

	if tick := c.Tick(start); tick.Delta != 0 {
		t.Errorf("first tick delta = %v, expected 0", tick.Delta)
	}

	tick := c.Tick(start.Add(16 * time.Millisecond))
	if tick.Delta < 0.0159 || tick.Delta > 0.0161 {
		t.Errorf("second tick delta = %v, expected 0.016", tick.Delta)
	}

	// Time going backwards never produces a negative delta
	if tick := c.Tick(start); tick.Delta != 0 {
		t.Errorf("backwards tick delta = %v, expected 0", tick.Delta)
	}

	c.Reset()
	if tick := c.Tick(start.Add(time.Hour)); tick.Delta != 0 {
		t.Errorf("tick after Reset delta = %v, expected 0", tick.Delta)
	}
}

func TestClockFPS(t *testing.T) {
	c := NewClock()
	now := time.Unix(0, 0)

	var tick Tick
	for i := 0; i <= 61; i++ {
		tick = c.Tick(now)
		now = now.Add(time.Second / 60)
	}

	// 62 frames over ~1.017s
	if tick.FPS < 59 || tick.FPS > 62 {
		t.Errorf("FPS = %v, expected about 60", tick.FPS)
	}
}

func TestInputFrame(t *testing.T) {
	var f InputFrame
	if f.Has(ActionJump) {
		t.Error("zero frame should have no actions")
	}
	if !f.Empty() {
		t.Error("zero frame should be empty")
	}

	f.Set(ActionJump)
	clone := f.Clone()
	f.Clear()

	if f.Has(ActionJump) {
		t.Error("Clear should remove actions")
	}
	if !clone.Has(ActionJump) {
		t.Error("Clone should not share storage with the original")
	}
	if ActionDebug.String() != "Debug" {
		t.Errorf("ActionDebug.String() = %q", ActionDebug.String())
	}
}
