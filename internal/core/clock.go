package core

import "time"

// Tick is one frame handed from the clock to a game.
type Tick struct {
	Delta float64 // Seconds since the previous tick; 0 on the first tick
	FPS   float64 // Frames per second measured over the last full second
}

// Clock turns wall-clock timestamps into Ticks.
// It is driven by the frontend (a tea.Tick message, an ebiten Update call);
// it never sleeps or spawns goroutines.
type Clock struct {
	last      time.Time
	started   bool
	frames    int
	fpsWindow time.Time
	fps       float64
}

// NewClock creates a clock whose first tick has a zero delta.
func NewClock() *Clock {
	return &Clock{}
}

// Tick records a frame at now and returns its delta and the current FPS.
// The first tick after construction or Reset has a zero delta, and a
// timestamp earlier than the previous one yields zero instead of a negative.
func (c *Clock) Tick(now time.Time) Tick {
	if !c.started {
		c.started = true
		c.last = now
		c.fpsWindow = now
		c.frames = 0
	}

	dt := now.Sub(c.last).Seconds()
	if dt < 0 {
		dt = 0
	}
	c.last = now

	c.frames++
	if elapsed := now.Sub(c.fpsWindow); elapsed >= time.Second {
		c.fps = float64(c.frames) / elapsed.Seconds()
		c.fpsWindow = now
		c.frames = 0
	}

	return Tick{Delta: dt, FPS: c.fps}
}

// Reset forgets the previous timestamp so the next tick starts fresh.
func (c *Clock) Reset() {
	c.started = false
	c.fps = 0
	c.frames = 0
}
