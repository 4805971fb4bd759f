package flappy

import (
	"fmt"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Image names looked up in the asset provider. Bird frames are
// "bird_0", "bird_1", ...
const (
	ImageBackground = "background"
	ImageGround     = "ground"
	ImagePipe       = "pipe"
	ImageBanner     = "banner"
	imageBirdPrefix = "bird_"
)

// Render draws the current frame back to front: background, pipes, ground,
// bird, debug layers, collision marker, then the screen overlay for the
// active state.
func (g *Game) Render(dst core.Surface) {
	if g.sm == nil {
		return
	}
	dst.Clear(0, 0, g.worldW, g.worldH)

	if g.sm.Is(StateLoading) {
		g.drawLoading(dst)
		return
	}

	g.drawBackground(dst)
	g.drawPipes(dst)
	g.drawGround(dst)
	g.drawBird(dst)

	if g.debug {
		g.drawDebugInfo(dst)
		g.drawColliders(dst)
	}
	g.drawCollisionEffect(dst)

	switch g.sm.Current() {
	case StateStart:
		g.drawStart(dst)
	case StatePlaying:
		g.drawScore(dst)
	case StatePaused:
		g.drawScore(dst)
		g.drawPaused(dst)
	case StateGameOver:
		g.drawGameOver(dst)
	}
}

func (g *Game) drawLoading(dst core.Surface) {
	dst.FillRect(0, 0, g.worldW, g.worldH, core.Solid(core.ColorSky))
	if g.loadErr != nil {
		dst.DrawText("Failed to load assets", g.worldW/2, g.worldH/2-20,
			core.TextStyle{Color: core.ColorRed, Size: 24, Align: core.AlignCenter, Bold: true})
		dst.DrawText(g.loadErr.Error(), g.worldW/2, g.worldH/2+20,
			core.TextStyle{Color: core.ColorWhite, Size: 14, Align: core.AlignCenter})
		return
	}
	dst.DrawText("Loading...", g.worldW/2, g.worldH/2,
		core.TextStyle{Color: core.ColorWhite, Size: 24, Align: core.AlignCenter})
}

func (g *Game) drawBackground(dst core.Surface) {
	if img, ok := g.env.Assets.Image(ImageBackground); ok {
		dst.DrawImage(img, 0, 0, g.worldW, g.worldH)
		return
	}
	dst.FillRect(0, 0, g.worldW, g.worldH, core.Solid(core.ColorSky))
}

func (g *Game) drawGround(dst core.Surface) {
	groundY := g.collisions.GroundY(g.worldH)
	if img, ok := g.env.Assets.Image(ImageGround); ok {
		dst.DrawImage(img, 0, groundY, g.worldW, g.cfg.World.GroundHeight)
		return
	}
	dst.FillRect(0, groundY, g.worldW, g.cfg.World.GroundHeight, core.Solid(core.ColorGrass))
}

func (g *Game) drawPipes(dst core.Surface) {
	groundY := g.collisions.GroundY(g.worldH)
	img, hasImg := g.env.Assets.Image(ImagePipe)

	for _, p := range g.pipes.Pipes() {
		top, bottom := p.TopBounds(), p.BottomBounds(groundY)
		if hasImg {
			dst.DrawImage(img, top.Left, top.Top, top.Width(), top.Height())
			dst.DrawImage(img, bottom.Left, bottom.Top, bottom.Width(), bottom.Height())
		} else {
			dst.FillRect(top.Left, top.Top, top.Width(), top.Height(), core.Solid(core.ColorPipe))
			dst.FillRect(bottom.Left, bottom.Top, bottom.Width(), bottom.Height(), core.Solid(core.ColorPipe))

			// Caps overhang the body slightly.
			capH := min(20, p.GapHeight/4)
			dst.FillRect(p.X-3, p.GapY-capH, p.Width+6, capH, core.Solid(core.ColorPipeDark))
			dst.FillRect(p.X-3, p.GapBottom(), p.Width+6, capH, core.Solid(core.ColorPipeDark))
		}

		if p.Special {
			g.drawBanner(dst, p)
		}
	}
}

// drawBanner centers the banner of a special pipe in its gap.
func (g *Game) drawBanner(dst core.Surface, p Pipe) {
	w, h := p.Width*1.5, p.GapHeight*0.75
	x := p.X + (p.Width-w)/2
	y := p.GapY + (p.GapHeight-h)/2

	if img, ok := g.env.Assets.Image(ImageBanner); ok {
		dst.DrawImage(img, x, y, w, h)
	} else {
		dst.FillRect(x, y, w, h, core.Solid(core.ColorBanner))
	}
	if g.debug {
		dst.DrawText(fmt.Sprintf("#%d", p.Number), p.X+p.Width/2, y-4,
			core.TextStyle{Color: core.ColorWhite, Size: 12, Align: core.AlignCenter})
	}
}

func (g *Game) drawBird(dst core.Surface) {
	b := g.bird
	img, ok := g.env.Assets.Image(fmt.Sprintf("%s%d", imageBirdPrefix, b.Frame))
	if !ok {
		img, ok = g.env.Assets.Image(imageBirdPrefix + "0")
	}

	dst.Save()
	dst.Translate(b.X, b.Y)
	dst.Rotate(b.Rotation())
	if ok {
		dst.DrawImage(img, -b.Width/2, -b.Height/2, b.Width, b.Height)
	} else {
		dst.FillCircle(0, 0, b.Width/2, core.Solid(core.ColorYellow))
	}
	dst.Restore()
}

func (g *Game) drawScore(dst core.Surface) {
	dst.DrawText(fmt.Sprintf("%d", g.score.Current()), g.worldW/2, 50, core.TextStyle{
		Color: core.ColorWhite,
		Size:  32 * g.score.Scale(),
		Align: core.AlignCenter,
		Bold:  true,
	})
}

func (g *Game) drawStart(dst core.Surface) {
	dst.DrawText(g.title, g.worldW/2, 80,
		core.TextStyle{Color: core.ColorTitle, Size: 40, Align: core.AlignCenter, Bold: true})
	if hs := g.score.High(); hs > 0 {
		dst.DrawText(fmt.Sprintf("Best: %d", hs), g.worldW/2, 130,
			core.TextStyle{Color: core.ColorWhite, Size: 18, Align: core.AlignCenter})
	}
	dst.DrawText("Press Space to flap", g.worldW/2, g.worldH/2+60,
		core.TextStyle{Color: core.ColorWhite, Size: 18, Align: core.AlignCenter})
}

func (g *Game) drawPaused(dst core.Surface) {
	dst.FillRect(0, 0, g.worldW, g.worldH, core.Translucent(core.ColorBlack, 0.5))
	dst.DrawText("PAUSED", g.worldW/2, g.worldH/2,
		core.TextStyle{Color: core.ColorWhite, Size: 36, Align: core.AlignCenter, Bold: true})
	dst.DrawText("Press P to resume", g.worldW/2, g.worldH/2+40,
		core.TextStyle{Color: core.ColorWhite, Size: 18, Align: core.AlignCenter})
}

func (g *Game) drawGameOver(dst core.Surface) {
	cx, cy := g.worldW/2, g.worldH/2
	panelW, panelH := min(g.worldW*0.8, 300), 180.0
	dst.FillRect(cx-panelW/2, cy-panelH/2, panelW, panelH, core.Translucent(core.ColorBlack, 0.6))
	dst.StrokeRect(cx-panelW/2, cy-panelH/2, panelW, panelH, core.Solid(core.ColorWhite))

	dst.DrawText("GAME OVER", cx, cy-50,
		core.TextStyle{Color: core.ColorRed, Size: 36, Align: core.AlignCenter, Bold: true})
	dst.DrawText(fmt.Sprintf("Score: %d", g.score.Current()), cx, cy-5,
		core.TextStyle{Color: core.ColorWhite, Size: 20, Align: core.AlignCenter})

	best := fmt.Sprintf("Best: %d", g.score.High())
	if g.newHigh {
		best = "NEW BEST!"
	}
	dst.DrawText(best, cx, cy+25,
		core.TextStyle{Color: core.ColorYellow, Size: 20, Align: core.AlignCenter})
	dst.DrawText("Space or R to retry", cx, cy+60,
		core.TextStyle{Color: core.ColorWhite, Size: 14, Align: core.AlignCenter})
}

func (g *Game) drawCollisionEffect(dst core.Surface) {
	if !g.effect.Active() {
		return
	}
	p, a := g.effect.Point(), g.effect.Alpha()
	dst.FillCircle(p.X, p.Y, g.effect.Radius(), core.Translucent(core.ColorRed, 0.5*a))
	dst.FillCircle(p.X, p.Y, 5, core.Translucent(core.ColorWhite, 0.8*a))
}

func (g *Game) debugLines() []string {
	b := g.bird
	return []string{
		fmt.Sprintf("Bird Position: (%.0f, %.0f)", b.X, b.Y),
		fmt.Sprintf("Bird Velocity: %.0f", b.Velocity),
		fmt.Sprintf("Bird Rotation: %.2f", b.Rotation()),
		fmt.Sprintf("Score: %d", g.score.Current()),
		fmt.Sprintf("High Score: %d", g.score.High()),
		fmt.Sprintf("Pipes: %d", len(g.pipes.Pipes())),
		fmt.Sprintf("Pipe Timer: %.2f/%.2f", g.pipes.Timer(), g.pipes.SpawnInterval()),
		fmt.Sprintf("FPS: %.2f", g.fps),
	}
}

func (g *Game) drawDebugInfo(dst core.Surface) {
	lines := g.debugLines()
	dst.FillRect(10, 30, 220, float64(20*len(lines)+10), core.Translucent(core.ColorBlack, 0.5))
	st := core.TextStyle{Color: core.ColorWhite, Size: 12}
	for i, line := range lines {
		dst.DrawText(line, 20, float64(45+i*20), st)
	}
}

func (g *Game) drawColliders(dst core.Surface) {
	groundY := g.collisions.GroundY(g.worldH)

	bb := g.bird.Bounds()
	dst.StrokeRect(bb.Left, bb.Top, bb.Width(), bb.Height(), core.Translucent(core.ColorTitle, 0.8))
	dst.StrokeRect(0, groundY, g.worldW, g.cfg.World.GroundHeight, core.Translucent(core.ColorDirt, 0.8))
	dst.StrokeRect(0, 0, g.worldW, 1, core.Translucent(core.ColorSky, 0.8))

	for _, p := range g.pipes.Pipes() {
		top, bottom := p.TopBounds(), p.BottomBounds(groundY)
		dst.StrokeRect(top.Left, top.Top, top.Width(), top.Height(), core.Translucent(core.ColorRed, 0.8))
		dst.StrokeRect(bottom.Left, bottom.Top, bottom.Width(), bottom.Height(), core.Translucent(core.ColorRed, 0.8))
	}
}
