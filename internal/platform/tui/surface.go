package tui

import (
	"math"
	"unicode/utf8"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// shadeAlpha is the lowest alpha that still paints a color. Fainter paints
// are dropped, except black which dims whatever is underneath.
const shadeAlpha = 0.3

// CellSurface rasterizes world-unit drawing calls into a terminal Screen.
// Each cell covers cellW x cellH world units and is sampled at its center,
// so rotated primitives and sprites are drawn through the inverse transform.
type CellSurface struct {
	core.TransformStack
	screen *core.Screen
	cellW  float64
	cellH  float64
}

// NewCellSurface creates a surface drawing into screen.
func NewCellSurface(screen *core.Screen, cellW, cellH float64) *CellSurface {
	return &CellSurface{
		TransformStack: core.NewTransformStack(),
		screen:         screen,
		cellW:          cellW,
		cellH:          cellH,
	}
}

// Size returns the drawable area in world units.
func (s *CellSurface) Size() (w, h float64) {
	return float64(s.screen.Width()) * s.cellW, float64(s.screen.Height()) * s.cellH
}

// CellAt returns the cell covering a world point.
func (s *CellSurface) CellAt(x, y float64) (col, row int) {
	return int(math.Floor(x / s.cellW)), int(math.Floor(y / s.cellH))
}

// cellCenter returns the world position sampled for a cell.
func (s *CellSurface) cellCenter(col, row int) (float64, float64) {
	return (float64(col) + 0.5) * s.cellW, (float64(row) + 0.5) * s.cellH
}

// cellRange returns the cells touched by the transformed local rect,
// clipped to the screen. ok is false when nothing is visible.
func (s *CellSurface) cellRange(x, y, w, h float64) (c0, r0, c1, r1 int, ok bool) {
	t := s.Current()
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range [4][2]float64{{x, y}, {x + w, y}, {x, y + h}, {x + w, y + h}} {
		wx, wy := t.Apply(p[0], p[1])
		minX, maxX = math.Min(minX, wx), math.Max(maxX, wx)
		minY, maxY = math.Min(minY, wy), math.Max(maxY, wy)
	}

	c0, r0 = s.CellAt(minX, minY)
	c1 = int(math.Ceil(maxX/s.cellW)) - 1
	r1 = int(math.Ceil(maxY/s.cellH)) - 1
	c1, r1 = max(c1, c0), max(r1, r0)

	c0, r0 = max(c0, 0), max(r0, 0)
	c1, r1 = min(c1, s.screen.Width()-1), min(r1, s.screen.Height()-1)
	return c0, r0, c1, r1, c0 <= c1 && r0 <= r1
}

// cover calls fn for every cell whose center falls inside the local rect
// (x, y, w, h) under the current transform. When the rect is too thin to
// contain any cell center, the cell under its center is used.
func (s *CellSurface) cover(x, y, w, h float64, fn func(c *core.Cell, lx, ly float64)) {
	if w <= 0 || h <= 0 {
		return
	}
	c0, r0, c1, r1, ok := s.cellRange(x, y, w, h)
	if !ok {
		return
	}

	t := s.Current()
	hit := false
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			lx, ly := t.Invert(s.cellCenter(col, row))
			if lx < x || lx >= x+w || ly < y || ly >= y+h {
				continue
			}
			hit = true
			fn(s.screen.CellRef(col, row), lx, ly)
		}
	}

	if !hit {
		cx, cy := x+w/2, y+h/2
		col, row := s.CellAt(t.Apply(cx, cy))
		if c := s.screen.CellRef(col, row); c != nil {
			fn(c, cx, cy)
		}
	}
}

// paint applies p to a cell as a background fill.
func paint(c *core.Cell, p core.Paint) {
	switch {
	case p.Alpha <= 0:
	case p.Alpha < 1 && p.Color == core.ColorBlack:
		c.Faint = true
	case p.Alpha >= shadeAlpha:
		c.Bg = p.Color
		c.Faint = false
	}
}

func (s *CellSurface) Clear(x, y, w, h float64) {
	c0, r0 := s.CellAt(x, y)
	c1 := int(math.Ceil((x+w)/s.cellW)) - 1
	r1 := int(math.Ceil((y+h)/s.cellH)) - 1
	for row := max(r0, 0); row <= min(r1, s.screen.Height()-1); row++ {
		for col := max(c0, 0); col <= min(c1, s.screen.Width()-1); col++ {
			s.screen.SetCell(col, row, core.Cell{Rune: ' '})
		}
	}
}

func (s *CellSurface) FillRect(x, y, w, h float64, p core.Paint) {
	s.cover(x, y, w, h, func(c *core.Cell, _, _ float64) {
		paint(c, p)
	})
}

// StrokeRect outlines the cells touched by the rect with box-drawing runes.
func (s *CellSurface) StrokeRect(x, y, w, h float64, p core.Paint) {
	if p.Alpha < shadeAlpha {
		return
	}
	c0, r0, c1, r1, ok := s.cellRange(x, y, w, h)
	if !ok {
		return
	}
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			var r rune
			top, bottom := row == r0, row == r1
			left, right := col == c0, col == c1
			switch {
			case r0 == r1:
				r = '─'
			case c0 == c1:
				r = '│'
			case top && left:
				r = '┌'
			case top && right:
				r = '┐'
			case bottom && left:
				r = '└'
			case bottom && right:
				r = '┘'
			case top || bottom:
				r = '─'
			case left || right:
				r = '│'
			default:
				continue
			}
			c := s.screen.GetCell(col, row)
			c.Rune = r
			c.Fg = p.Color
			c.Faint = false
			s.screen.SetCell(col, row, c)
		}
	}
}

func (s *CellSurface) FillCircle(cx, cy, r float64, p core.Paint) {
	s.cover(cx-r, cy-r, 2*r, 2*r, func(c *core.Cell, lx, ly float64) {
		if math.Hypot(lx-cx, ly-cy) <= r || r < s.cellW {
			paint(c, p)
		}
	})
}

// StrokeCircle marks the cells within half a cell of the circle outline.
func (s *CellSurface) StrokeCircle(cx, cy, r float64, p core.Paint) {
	if p.Alpha < shadeAlpha {
		return
	}
	band := math.Max(s.cellW, s.cellH) / 2
	s.cover(cx-r-band, cy-r-band, 2*(r+band), 2*(r+band), func(c *core.Cell, lx, ly float64) {
		if math.Abs(math.Hypot(lx-cx, ly-cy)-r) <= band {
			c.Rune = '•'
			c.Fg = p.Color
		}
	})
}

// DrawImage samples the sprite at every covered cell center.
func (s *CellSurface) DrawImage(img *core.Sprite, x, y, w, h float64) {
	sw, sh := img.Size()
	if sw == 0 || sh == 0 {
		return
	}
	s.cover(x, y, w, h, func(c *core.Cell, lx, ly float64) {
		px := int((lx - x) / w * float64(sw))
		py := int((ly - y) / h * float64(sh))
		if col, ok := img.At(min(px, sw-1), min(py, sh-1)); ok {
			c.Bg = col
			c.Faint = false
		}
	})
}

// DrawText writes text on the row under the anchor point. Size is ignored;
// text of 30 units or more is drawn bold.
func (s *CellSurface) DrawText(text string, x, y float64, st core.TextStyle) {
	col, row := s.CellAt(s.Current().Apply(x, y))
	n := utf8.RuneCountInString(text)
	switch st.Align {
	case core.AlignCenter:
		col -= n / 2
	case core.AlignRight:
		col -= n
	}
	bold := st.Bold || st.Size >= 30

	i := 0
	for _, r := range text {
		if s.screen.InBounds(col+i, row) {
			c := s.screen.GetCell(col+i, row)
			c.Rune = r
			c.Fg = st.Color
			c.Bold = bold
			c.Faint = false
			s.screen.SetCell(col+i, row, c)
		}
		i++
	}
}

var _ core.Surface = (*CellSurface)(nil)
