// Package audio synthesises short sound effects for game events.
package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/vovakirdan/tui-runner/internal/core"
)

// SampleRate is the rate every effect is rendered at.
const SampleRate = beep.SampleRate(44100)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a fixed-length raw wave.
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a streamer playing freq for duration.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			val = 1
			if o.phase >= 0.5 {
				val = -1
			}
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
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

// envelope fades a stream in over attack and out over release.
type envelope struct {
	streamer     beep.Streamer
	position     int
	attack       int
	release      int
	releaseStart int
	total        int
}

// NewEnvelope shapes s with a linear attack and release.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	return &envelope{
		streamer:     s,
		attack:       att,
		release:      rel,
		releaseStart: core.Max(att, total-rel),
		total:        total,
	}
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
		if e.position >= e.releaseStart && e.release > 0 {
			vol = math.Max(0, float64(e.total-e.position)/float64(e.release))
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly; vol <= 0 is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// tone is one enveloped note.
func tone(freq float64, d time.Duration, wave WaveType) beep.Streamer {
	osc := NewOscillator(freq, d, wave, SampleRate)
	return NewEnvelope(osc, d, 5*time.Millisecond, d/2, SampleRate)
}

// Sound returns the effect for an event kind at volume in [0, 1].
// Kinds without a sound report false.
func Sound(kind core.EventKind, volume float64) (beep.Streamer, bool) {
	var s beep.Streamer
	switch kind {
	case core.EventJump:
		s = beep.Seq(
			tone(392, 40*time.Millisecond, WaveSquare),
			tone(587, 60*time.Millisecond, WaveSquare),
		)
		volume *= 0.25
	case core.EventLand:
		s = tone(90, 60*time.Millisecond, WaveSaw)
		volume *= 0.3
	case core.EventCoin:
		s = beep.Seq(
			tone(988, 70*time.Millisecond, WaveSine),
			tone(1319, 180*time.Millisecond, WaveSine),
		)
		volume *= 0.5
	case core.EventCrash:
		noise := NewEnvelope(NewOscillator(0, 400*time.Millisecond, WaveNoise, SampleRate),
			400*time.Millisecond, 2*time.Millisecond, 350*time.Millisecond, SampleRate)
		s = beep.Take(SampleRate.N(400*time.Millisecond), beep.Mix(
			newVolume(noise, 0.5),
			newVolume(tone(70, 400*time.Millisecond, WaveSaw), 0.5),
		))
		volume *= 0.6
	case core.EventNewHighScore:
		s = beep.Seq(
			tone(523, 90*time.Millisecond, WaveSquare),
			tone(659, 90*time.Millisecond, WaveSquare),
			tone(784, 90*time.Millisecond, WaveSquare),
			tone(1047, 220*time.Millisecond, WaveSquare),
		)
		volume *= 0.3
	default:
		return nil, false
	}
	return newVolume(s, volume), true
}
