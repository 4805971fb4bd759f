package core

import (
	"errors"
	"time"
)

// ErrAssetsFailed is reported when no asset at all could be loaded.
var ErrAssetsFailed = errors.New("core: asset loading failed")

// Sprite is a small palette image. Each rune of Rows is one pixel; runes
// missing from Palette are transparent.
type Sprite struct {
	Name    string
	Rows    []string
	Palette map[rune]Color
}

// Size returns the sprite dimensions in pixels.
func (s *Sprite) Size() (w, h int) {
	if s == nil || len(s.Rows) == 0 {
		return 0, 0
	}
	return len([]rune(s.Rows[0])), len(s.Rows)
}

// At returns the color of pixel (x, y) and whether it is opaque.
func (s *Sprite) At(x, y int) (Color, bool) {
	if s == nil || y < 0 || y >= len(s.Rows) {
		return ColorDefault, false
	}
	row := []rune(s.Rows[y])
	if x < 0 || x >= len(row) {
		return ColorDefault, false
	}
	c, ok := s.Palette[row[x]]
	return c, ok
}

// Wave is an oscillator shape.
type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// Note is one step of a tone: a frequency held for a duration.
// A zero frequency is a rest.
type Note struct {
	Freq     float64
	Duration time.Duration
}

// Tone is a synthesized sound: a sequence of notes on one waveform.
type Tone struct {
	Name  string
	Wave  Wave
	Gain  float64
	Notes []Note
}

// Duration returns the total length of the tone.
func (t *Tone) Duration() time.Duration {
	var d time.Duration
	for _, n := range t.Notes {
		d += n.Duration
	}
	return d
}

// AssetProvider resolves named images and sounds.
// Missing names return false; callers fall back to primitives or skip playback.
type AssetProvider interface {
	Image(name string) (*Sprite, bool)
	Sound(name string) (*Tone, bool)

	// Ready reports loading progress: (false, nil) while loading,
	// (true, nil) once done (individual failures are logged by the provider),
	// (false, err) when loading failed as a whole.
	Ready() (bool, error)
}

// NoAssets is a provider with nothing in it; it is always ready.
type NoAssets struct{}

func (NoAssets) Image(string) (*Sprite, bool) { return nil, false }
func (NoAssets) Sound(string) (*Tone, bool)   { return nil, false }
func (NoAssets) Ready() (bool, error)         { return true, nil }
