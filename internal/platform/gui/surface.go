// Package gui provides the desktop frontend built on Ebitengine: a drawing
// surface over *ebiten.Image, pointer and keyboard input, and the game loop.
// One world unit is one logical pixel.
package gui

import (
	"bytes"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Surface draws world-unit primitives onto an ebiten image. Rects and
// sprites honor the full transform through GeoM; circles are rotation
// invariant and only need their center moved.
type Surface struct {
	core.TransformStack
	dst     *ebiten.Image
	w, h    float64
	pixel   *ebiten.Image
	sprites map[*core.Sprite]*ebiten.Image
	fonts   *text.GoTextFaceSource
	faces   map[float64]*text.GoTextFace
}

// NewSurface creates a surface of w x h world units. Bind must be called
// with the frame's target before drawing.
func NewSurface(w, h float64) (*Surface, error) {
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, err
	}
	pixel := ebiten.NewImage(1, 1)
	pixel.Fill(color.White)

	return &Surface{
		TransformStack: core.NewTransformStack(),
		w:              w,
		h:              h,
		pixel:          pixel,
		sprites:        make(map[*core.Sprite]*ebiten.Image),
		fonts:          src,
		faces:          make(map[float64]*text.GoTextFace),
	}, nil
}

// Bind sets the image drawn into and resets the transform stack.
func (s *Surface) Bind(dst *ebiten.Image) {
	s.dst = dst
	s.Reset()
}

// Resize changes the reported drawable area.
func (s *Surface) Resize(w, h float64) {
	s.w, s.h = w, h
}

func (s *Surface) Size() (w, h float64) {
	return s.w, s.h
}

// paintColor applies the paint alpha to the palette color.
func paintColor(p core.Paint) color.NRGBA {
	c := p.Color.RGBA()
	a := uint8(math.Round(float64(c.A) * core.ClampF(p.Alpha, 0, 1)))
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: a}
}

// geoM converts a surface transform to an ebiten matrix.
func geoM(t core.Transform) ebiten.GeoM {
	var m ebiten.GeoM
	m.SetElement(0, 0, t.A)
	m.SetElement(0, 1, t.C)
	m.SetElement(0, 2, t.E)
	m.SetElement(1, 0, t.B)
	m.SetElement(1, 1, t.D)
	m.SetElement(1, 2, t.F)
	return m
}

// fill stretches the white pixel over the local rect under the transform.
func (s *Surface) fill(x, y, w, h float64, c color.Color) {
	if s.dst == nil || w <= 0 || h <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.GeoM.Concat(geoM(s.Current()))
	op.ColorScale.ScaleWithColor(c)
	s.dst.DrawImage(s.pixel, op)
}

// Clear paints the area with the clear color; the window has no
// transparent background to reveal.
func (s *Surface) Clear(x, y, w, h float64) {
	if s.dst == nil {
		return
	}
	vector.DrawFilledRect(s.dst, float32(x), float32(y), float32(w), float32(h), color.Black, false)
}

func (s *Surface) FillRect(x, y, w, h float64, p core.Paint) {
	if p.Alpha <= 0 {
		return
	}
	s.fill(x, y, w, h, paintColor(p))
}

// StrokeRect draws the outline as four thin rects inside the edge.
func (s *Surface) StrokeRect(x, y, w, h float64, p core.Paint) {
	if p.Alpha <= 0 {
		return
	}
	sw := math.Min(math.Max(p.Width, 1), math.Min(w, h)/2)
	c := paintColor(p)
	s.fill(x, y, w, sw, c)
	s.fill(x, y+h-sw, w, sw, c)
	s.fill(x, y+sw, sw, h-2*sw, c)
	s.fill(x+w-sw, y+sw, sw, h-2*sw, c)
}

func (s *Surface) FillCircle(cx, cy, r float64, p core.Paint) {
	if s.dst == nil || p.Alpha <= 0 || r <= 0 {
		return
	}
	wx, wy := s.Current().Apply(cx, cy)
	vector.DrawFilledCircle(s.dst, float32(wx), float32(wy), float32(r), paintColor(p), true)
}

func (s *Surface) StrokeCircle(cx, cy, r float64, p core.Paint) {
	if s.dst == nil || p.Alpha <= 0 || r <= 0 {
		return
	}
	wx, wy := s.Current().Apply(cx, cy)
	vector.StrokeCircle(s.dst, float32(wx), float32(wy), float32(r), float32(math.Max(p.Width, 1)), paintColor(p), true)
}

// DrawImage rasterizes the sprite once and blits it scaled into the rect.
func (s *Surface) DrawImage(img *core.Sprite, x, y, w, h float64) {
	if s.dst == nil {
		return
	}
	sw, sh := img.Size()
	if sw == 0 || sh == 0 {
		return
	}
	src := s.spriteImage(img, sw, sh)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w/float64(sw), h/float64(sh))
	op.GeoM.Translate(x, y)
	op.GeoM.Concat(geoM(s.Current()))
	s.dst.DrawImage(src, op)
}

func (s *Surface) spriteImage(img *core.Sprite, sw, sh int) *ebiten.Image {
	if cached, ok := s.sprites[img]; ok {
		return cached
	}
	pix := make([]byte, 4*sw*sh)
	for py := range sh {
		for px := range sw {
			c, ok := img.At(px, py)
			if !ok {
				continue
			}
			rgba := c.RGBA()
			i := 4 * (py*sw + px)
			pix[i], pix[i+1], pix[i+2], pix[i+3] = rgba.R, rgba.G, rgba.B, rgba.A
		}
	}
	out := ebiten.NewImage(sw, sh)
	out.WritePixels(pix)
	s.sprites[img] = out
	return out
}

// DrawText draws with the built-in Go font. The anchor is the text's
// vertical center; the default color is white.
func (s *Surface) DrawText(str string, x, y float64, st core.TextStyle) {
	if s.dst == nil || str == "" {
		return
	}
	face := s.face(st.Size)
	fg := st.Color
	if fg == core.ColorDefault {
		fg = core.ColorWhite
	}

	op := &text.DrawOptions{}
	op.PrimaryAlign = textAlign(st.Align)
	op.SecondaryAlign = text.AlignCenter
	op.GeoM.Translate(x, y)
	op.GeoM.Concat(geoM(s.Current()))
	op.ColorScale.ScaleWithColor(fg.RGBA())
	text.Draw(s.dst, str, face, op)
	if st.Bold {
		op.GeoM.Translate(1, 0)
		text.Draw(s.dst, str, face, op)
	}
}

func (s *Surface) face(size float64) *text.GoTextFace {
	if size <= 0 {
		size = 16
	}
	if f, ok := s.faces[size]; ok {
		return f
	}
	f := &text.GoTextFace{Source: s.fonts, Size: size, Direction: text.DirectionLeftToRight}
	s.faces[size] = f
	return f
}

func textAlign(a core.Align) text.Align {
	switch a {
	case core.AlignCenter:
		return text.AlignCenter
	case core.AlignRight:
		return text.AlignEnd
	default:
		return text.AlignStart
	}
}

var _ core.Surface = (*Surface)(nil)
