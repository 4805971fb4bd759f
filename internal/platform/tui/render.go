package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// ansiColors maps palette entries to ANSI 256-color codes.
var ansiColors = map[core.Color]string{
	core.ColorBlack:    "16",
	core.ColorWhite:    "231",
	core.ColorRed:      "196",
	core.ColorYellow:   "226",
	core.ColorGray:     "245",
	core.ColorSky:      "117",
	core.ColorGrass:    "108",
	core.ColorDirt:     "186",
	core.ColorPipe:     "71",
	core.ColorPipeDark: "28",
	core.ColorBird:     "220",
	core.ColorBeak:     "208",
	core.ColorTitle:    "77",
	core.ColorBanner:   "230",
}

// cellStyle identifies one lipgloss style; adjacent cells sharing it are
// rendered as a single run.
type cellStyle struct {
	fg, bg      core.Color
	bold, faint bool
}

func styleOf(c core.Cell) cellStyle {
	return cellStyle{fg: c.Fg, bg: c.Bg, bold: c.Bold, faint: c.Faint}
}

func (cs cellStyle) lipgloss() lipgloss.Style {
	st := lipgloss.NewStyle()
	if code, ok := ansiColors[cs.fg]; ok {
		st = st.Foreground(lipgloss.Color(code))
	}
	if code, ok := ansiColors[cs.bg]; ok {
		st = st.Background(lipgloss.Color(code))
	}
	return st.Bold(cs.bold).Faint(cs.faint)
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same style to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	styles := make(map[cellStyle]lipgloss.Style)
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := styleOf(s.GetCell(x, y))

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if styleOf(cell) != start {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			st, ok := styles[start]
			if !ok {
				st = start.lipgloss()
				styles[start] = st
			}
			sb.WriteString(st.Render(run.String()))
		}
	}
	return sb.String()
}
