// Package audio turns catalog tones into sound through the beep speaker.
package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// SampleRate is the rate every tone is rendered at.
const SampleRate = beep.SampleRate(44100)

// Attack and release applied to every note to avoid clicks.
const (
	noteAttack  = 4 * time.Millisecond
	noteRelease = 12 * time.Millisecond
)

// oscillator generates one raw waveform for a fixed number of samples.
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     core.Wave
	rate     beep.SampleRate
	rng      *rand.Rand
}

func newOscillator(freq float64, duration time.Duration, wave core.Wave, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      rand.New(rand.NewSource(int64(freq*1000) + int64(duration))),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case core.WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case core.WaveSquare:
			if o.phase < 0.5 {
				val = 1
			} else {
				val = -1
			}
		case core.WaveSaw:
			val = 2 * (o.phase - 0.5)
		case core.WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and release to a stream.
type envelope struct {
	streamer beep.Streamer
	position int
	attack   int
	release  int
	total    int
}

func newEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := min(rate.N(attack), total/2)
	rel := min(rate.N(release), total-att)
	return &envelope{streamer: s, attack: att, release: rel, total: total}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.total {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attack {
			vol = float64(e.position) / float64(e.attack)
		}
		if remaining := e.total - e.position; remaining <= e.release && e.release > 0 {
			vol = math.Min(vol, float64(remaining)/float64(e.release))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales a stream linearly. Log2(0) is -Inf, so zero is silent.
func newVolume(s beep.Streamer, vol float64) *effects.Volume {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// noteStreamer builds the stream for one note.
func noteStreamer(n core.Note, wave core.Wave, rate beep.SampleRate) beep.Streamer {
	samples := rate.N(n.Duration)
	if n.Freq <= 0 {
		return beep.Silence(samples)
	}

	var raw beep.Streamer
	if wave == core.WaveSine {
		if sine, err := generators.SineTone(rate, n.Freq); err == nil {
			raw = beep.Take(samples, sine)
		}
	}
	if raw == nil {
		raw = newOscillator(n.Freq, n.Duration, wave, rate)
	}
	return newEnvelope(raw, n.Duration, noteAttack, noteRelease, rate)
}

// Render synthesizes a tone into a replayable buffer.
func Render(t *core.Tone, rate beep.SampleRate) *beep.Buffer {
	buf := beep.NewBuffer(beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2})
	if t == nil || len(t.Notes) == 0 {
		return buf
	}

	parts := make([]beep.Streamer, 0, len(t.Notes))
	for _, n := range t.Notes {
		parts = append(parts, noteStreamer(n, t.Wave, rate))
	}
	buf.Append(newVolume(beep.Seq(parts...), t.Gain))
	return buf
}
