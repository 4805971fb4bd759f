// Package assets provides the named sprites and tones the game draws and
// plays. The built-in catalog is embedded; extra YAML files may override or
// add entries. Loading is best-effort: every broken entry is reported and
// skipped, and only a catalog with nothing usable counts as failed.
package assets

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// ErrNotFound is returned for a catalog file or a required asset that does
// not exist.
var ErrNotFound = errors.New("assets: not found")

//go:embed catalog.yaml
var builtinCatalog []byte

// Required lists the names the game looks up on every frame or cue.
// A catalog missing any of them still loads; the game falls back to
// primitives or silence.
var Required = []string{"bird_0", "flap", "score", "hit", "bgMusic"}

// File is the YAML layout of a catalog.
type File struct {
	Version string                `yaml:"version"`
	Sprites map[string]SpriteSpec `yaml:"sprites"`
	Tones   map[string]ToneSpec   `yaml:"tones"`
}

// SpriteSpec is one sprite entry.
type SpriteSpec struct {
	Palette map[string]string `yaml:"palette"` // Rune -> color name
	Rows    []string          `yaml:"rows"`
}

// ToneSpec is one tone entry.
type ToneSpec struct {
	Wave  string     `yaml:"wave"`
	Gain  float64    `yaml:"gain"`
	Notes []NoteSpec `yaml:"notes"`
}

// NoteSpec is one note of a tone.
type NoteSpec struct {
	Freq float64 `yaml:"freq"`
	Ms   int     `yaml:"ms"`
}

// Catalog holds decoded assets. It is safe for concurrent use; loading may
// run in the background while the game polls Ready.
type Catalog struct {
	mu       sync.RWMutex
	sprites  map[string]*core.Sprite
	tones    map[string]*core.Tone
	failures []error
	loaded   bool
	err      error
	log      *log.Logger
}

// NewCatalog creates an empty, not yet loaded catalog.
func NewCatalog(logger *log.Logger) *Catalog {
	return &Catalog{
		sprites: make(map[string]*core.Sprite),
		tones:   make(map[string]*core.Tone),
		log:     logger,
	}
}

// Load decodes the built-in catalog and then every extra file in order, so
// later files override earlier entries. Individual failures are collected
// in Failures. The returned error is non-nil only when nothing could be
// loaded at all.
func (c *Catalog) Load(extra ...string) error {
	sprites := make(map[string]*core.Sprite)
	tones := make(map[string]*core.Tone)
	var failures []error

	sources := []struct {
		name string
		data []byte
	}{{"builtin", builtinCatalog}}
	for _, path := range extra {
		data, err := os.ReadFile(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				err = fmt.Errorf("%w: %s", ErrNotFound, path)
			} else {
				err = fmt.Errorf("assets: failed to read %s: %w", path, err)
			}
			failures = append(failures, err)
			continue
		}
		sources = append(sources, struct {
			name string
			data []byte
		}{path, data})
	}

	for _, src := range sources {
		failures = append(failures, decodeInto(src.name, src.data, sprites, tones)...)
	}

	for _, name := range Required {
		_, isSprite := sprites[name]
		_, isTone := tones[name]
		if !isSprite && !isTone {
			failures = append(failures, fmt.Errorf("%w: %q", ErrNotFound, name))
		}
	}

	var err error
	if len(sprites) == 0 && len(tones) == 0 {
		err = fmt.Errorf("%w: %w", core.ErrAssetsFailed, errors.Join(failures...))
	}

	c.mu.Lock()
	c.sprites = sprites
	c.tones = tones
	c.failures = failures
	c.loaded = true
	c.err = err
	c.mu.Unlock()

	for _, f := range failures {
		c.log.Warn("asset skipped", "error", f)
	}
	c.log.Debug("assets loaded", "sprites", len(sprites), "tones", len(tones), "failures", len(failures))
	return err
}

// LoadInBackground runs Load on a new goroutine. Ready reports progress.
func (c *Catalog) LoadInBackground(extra ...string) {
	go func() {
		_ = c.Load(extra...)
	}()
}

// decodeInto parses one catalog document and merges the valid entries.
func decodeInto(source string, data []byte, sprites map[string]*core.Sprite, tones map[string]*core.Tone) []error {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return []error{fmt.Errorf("assets: cannot parse %s: %w", source, err)}
	}

	var failures []error
	for _, name := range sortedKeys(f.Sprites) {
		s, err := buildSprite(name, f.Sprites[name])
		if err != nil {
			failures = append(failures, fmt.Errorf("assets: %s: sprite %q: %w", source, name, err))
			continue
		}
		sprites[name] = s
	}
	for _, name := range sortedKeys(f.Tones) {
		t, err := buildTone(name, f.Tones[name])
		if err != nil {
			failures = append(failures, fmt.Errorf("assets: %s: tone %q: %w", source, name, err))
			continue
		}
		tones[name] = t
	}
	return failures
}

func buildSprite(name string, spec SpriteSpec) (*core.Sprite, error) {
	if len(spec.Rows) == 0 {
		return nil, errors.New("no rows")
	}
	width := len([]rune(spec.Rows[0]))
	for i, row := range spec.Rows {
		if len([]rune(row)) != width {
			return nil, fmt.Errorf("row %d has width %d, expected %d", i, len([]rune(row)), width)
		}
	}

	palette := make(map[rune]core.Color, len(spec.Palette))
	for key, colorName := range spec.Palette {
		runes := []rune(key)
		if len(runes) != 1 {
			return nil, fmt.Errorf("palette key %q must be a single character", key)
		}
		col, err := core.ParseColor(colorName)
		if err != nil {
			return nil, err
		}
		palette[runes[0]] = col
	}

	return &core.Sprite{Name: name, Rows: spec.Rows, Palette: palette}, nil
}

func buildTone(name string, spec ToneSpec) (*core.Tone, error) {
	wave, err := ParseWave(spec.Wave)
	if err != nil {
		return nil, err
	}
	if len(spec.Notes) == 0 {
		return nil, errors.New("no notes")
	}
	gain := spec.Gain
	if gain <= 0 || gain > 1 {
		return nil, fmt.Errorf("gain %v outside (0, 1]", gain)
	}

	notes := make([]core.Note, 0, len(spec.Notes))
	for i, n := range spec.Notes {
		if n.Ms <= 0 || n.Freq < 0 {
			return nil, fmt.Errorf("note %d: invalid freq %v / duration %dms", i, n.Freq, n.Ms)
		}
		notes = append(notes, core.Note{Freq: n.Freq, Duration: time.Duration(n.Ms) * time.Millisecond})
	}

	return &core.Tone{Name: name, Wave: wave, Gain: gain, Notes: notes}, nil
}

// ParseWave resolves a waveform name.
func ParseWave(name string) (core.Wave, error) {
	switch strings.ToLower(name) {
	case "sine", "":
		return core.WaveSine, nil
	case "square":
		return core.WaveSquare, nil
	case "saw":
		return core.WaveSaw, nil
	case "noise":
		return core.WaveNoise, nil
	default:
		return core.WaveSine, fmt.Errorf("unknown wave %q", name)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Image returns the sprite with the given name.
func (c *Catalog) Image(name string) (*core.Sprite, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.sprites[name]
	return s, ok
}

// Sound returns the tone with the given name.
func (c *Catalog) Sound(name string) (*core.Tone, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.tones[name]
	return t, ok
}

// Ready reports whether Load has finished and whether it failed as a whole.
func (c *Catalog) Ready() (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.err != nil {
		return false, c.err
	}
	return c.loaded, nil
}

// Failures returns the individual problems found by the last Load.
func (c *Catalog) Failures() []error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]error, len(c.failures))
	copy(out, c.failures)
	return out
}

// Names returns the loaded sprite and tone names, sorted.
func (c *Catalog) Names() (sprites, tones []string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return sortedKeys(c.sprites), sortedKeys(c.tones)
}
