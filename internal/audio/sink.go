package audio

import (
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// DefaultVolume is the master volume before preferences are applied.
const DefaultVolume = 0.5

// Sink plays catalog tones through the system speaker. Calls made before
// Init, or after Init failed, are accepted and ignored, so the game keeps
// running without an audio device.
type Sink struct {
	mu          sync.Mutex
	assets      core.AssetProvider
	log         *log.Logger
	rate        beep.SampleRate
	mixer       *beep.Mixer
	master      *effects.Volume
	cache       map[string]*beep.Buffer
	loops       map[string]*beep.Ctrl
	muted       bool
	volume      float64
	initialized bool
}

// NewSink creates a sink resolving sound names through assets.
func NewSink(assets core.AssetProvider, logger *log.Logger) *Sink {
	mixer := &beep.Mixer{}
	s := &Sink{
		assets: assets,
		log:    logger,
		rate:   SampleRate,
		mixer:  mixer,
		master: newVolume(mixer, DefaultVolume),
		cache:  make(map[string]*beep.Buffer),
		loops:  make(map[string]*beep.Ctrl),
		volume: DefaultVolume,
	}
	return s
}

// Init opens the speaker. On error the sink stays silent.
func (s *Sink) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := speaker.Init(s.rate, s.rate.N(100*time.Millisecond)); err != nil {
		s.log.Warn("audio unavailable, continuing silently", "error", err)
		return err
	}
	speaker.Play(s.master)
	s.initialized = true
	return nil
}

// Prepare renders the named tones ahead of time and returns the names that
// could not be found.
func (s *Sink) Prepare(names ...string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var missing []string
	for _, name := range names {
		if s.buffer(name) == nil {
			missing = append(missing, name)
		}
	}
	return missing
}

// buffer returns the rendered tone, rendering it on first use.
// Callers hold s.mu.
func (s *Sink) buffer(name string) *beep.Buffer {
	if buf, ok := s.cache[name]; ok {
		return buf
	}
	tone, ok := s.assets.Sound(name)
	if !ok {
		s.log.Debug("unknown sound", "name", name)
		return nil
	}
	buf := Render(tone, s.rate)
	s.cache[name] = buf
	return buf
}

// Play starts a one-shot sound.
func (s *Sink) Play(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	buf := s.buffer(name)
	if buf == nil || buf.Len() == 0 {
		return
	}
	speaker.Lock()
	s.mixer.Add(buf.Streamer(0, buf.Len()))
	speaker.Unlock()
}

// PlayLoop starts a looping sound. A loop already running is left alone.
func (s *Sink) PlayLoop(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	if ctrl, ok := s.loops[name]; ok && !ctrl.Paused {
		return
	}
	buf := s.buffer(name)
	if buf == nil || buf.Len() == 0 {
		return
	}
	ctrl := &beep.Ctrl{Streamer: beep.Loop(-1, buf.Streamer(0, buf.Len()))}
	s.loops[name] = ctrl
	speaker.Lock()
	s.mixer.Add(ctrl)
	speaker.Unlock()
}

// StopAll silences every playing sound, loops included.
func (s *Sink) StopAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		clear(s.loops)
		return
	}
	speaker.Lock()
	for _, ctrl := range s.loops {
		ctrl.Paused = true
	}
	s.mixer.Clear()
	speaker.Unlock()
	clear(s.loops)
}

// SetMuted toggles output without touching the volume level.
func (s *Sink) SetMuted(muted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.muted = muted
	s.applyMaster()
}

// SetVolume sets the master volume, clamped to [0, 1].
func (s *Sink) SetVolume(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.volume = math.Max(0, math.Min(1, v))
	s.applyMaster()
}

// applyMaster pushes muted and volume into the master stage.
// Callers hold s.mu.
func (s *Sink) applyMaster() {
	if s.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	s.master.Silent = s.muted || s.volume <= 0
	if s.volume > 0 {
		s.master.Volume = math.Log2(s.volume)
	} else {
		s.master.Volume = 0
	}
}

// Muted reports whether output is muted.
func (s *Sink) Muted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.muted
}

// Volume returns the master volume.
func (s *Sink) Volume() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.volume
}

// Close stops playback and releases the speaker.
func (s *Sink) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	s.mixer.Clear()
	clear(s.loops)
	s.initialized = false
}
