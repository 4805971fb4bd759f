package flappy

import "github.com/vovakirdan/tui-flappy/internal/core"

// Pipe is a top and bottom barrier pair with a vertical gap between them.
type Pipe struct {
	Number    int     // Spawn sequence number, starting at 1
	X         float64 // Left edge
	GapY      float64 // Top of the opening
	GapHeight float64
	Width     float64
	Scored    bool // Set once the bird has passed this pipe
	Special   bool // Carries a banner
}

// Right returns the x-coordinate of the trailing edge.
func (p Pipe) Right() float64 {
	return p.X + p.Width
}

// GapBottom returns the y-coordinate where the bottom barrier starts.
func (p Pipe) GapBottom() float64 {
	return p.GapY + p.GapHeight
}

// TopBounds returns the upper barrier box.
func (p Pipe) TopBounds() core.Bounds {
	return core.Bounds{Left: p.X, Right: p.Right(), Top: 0, Bottom: p.GapY}
}

// BottomBounds returns the lower barrier box down to the ground line.
func (p Pipe) BottomBounds(groundY float64) core.Bounds {
	return core.Bounds{Left: p.X, Right: p.Right(), Top: p.GapBottom(), Bottom: groundY}
}

// OffScreen reports whether the pipe has fully left the world on the left.
func (p Pipe) OffScreen() bool {
	return p.Right() < 0
}
