package core

import (
	"fmt"
	"image/color"
	"strings"
)

// Color is a palette entry. Frontends map it to whatever their output
// supports: ANSI 256-color codes in the terminal, RGBA in a window.
type Color uint8

// Palette used by the game and the asset catalog.
const (
	ColorDefault Color = iota
	ColorBlack
	ColorWhite
	ColorRed
	ColorYellow
	ColorGray
	ColorSky
	ColorGrass
	ColorDirt
	ColorPipe
	ColorPipeDark
	ColorBird
	ColorBeak
	ColorTitle
	ColorBanner
)

var colorNames = map[Color]string{
	ColorDefault:  "default",
	ColorBlack:    "black",
	ColorWhite:    "white",
	ColorRed:      "red",
	ColorYellow:   "yellow",
	ColorGray:     "gray",
	ColorSky:      "sky",
	ColorGrass:    "grass",
	ColorDirt:     "dirt",
	ColorPipe:     "pipe",
	ColorPipeDark: "pipe_dark",
	ColorBird:     "bird",
	ColorBeak:     "beak",
	ColorTitle:    "title",
	ColorBanner:   "banner",
}

var colorRGBA = map[Color]color.RGBA{
	ColorDefault:  {0, 0, 0, 0},
	ColorBlack:    {0, 0, 0, 255},
	ColorWhite:    {255, 255, 255, 255},
	ColorRed:      {230, 40, 40, 255},
	ColorYellow:   {255, 235, 59, 255},
	ColorGray:     {150, 150, 150, 255},
	ColorSky:      {135, 206, 235, 255},
	ColorGrass:    {143, 188, 143, 255},
	ColorDirt:     {222, 216, 149, 255},
	ColorPipe:     {117, 184, 85, 255},
	ColorPipeDark: {78, 140, 52, 255},
	ColorBird:     {255, 215, 0, 255},
	ColorBeak:     {255, 140, 0, 255},
	ColorTitle:    {76, 175, 80, 255},
	ColorBanner:   {245, 245, 220, 255},
}

// String returns the palette name used in YAML catalogs.
func (c Color) String() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return fmt.Sprintf("color(%d)", uint8(c))
}

// RGBA returns the color used by pixel frontends.
func (c Color) RGBA() color.RGBA {
	return colorRGBA[c]
}

// ParseColor resolves a palette name.
func ParseColor(name string) (Color, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for c, n := range colorNames {
		if n == name {
			return c, nil
		}
	}
	return ColorDefault, fmt.Errorf("core: unknown color %q", name)
}
