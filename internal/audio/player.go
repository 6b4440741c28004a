package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-runner/internal/core"
)

// Player turns game events into sound.
type Player interface {
	Play(ev core.Event)
	Close() error
}

// NopPlayer discards every event.
type NopPlayer struct{}

// Play does nothing.
func (NopPlayer) Play(core.Event) {}

// Close does nothing.
func (NopPlayer) Close() error { return nil }

// SpeakerPlayer mixes effects into the system audio device.
type SpeakerPlayer struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	volume float64
	closed bool
}

// NewSpeakerPlayer opens the audio device. volume is clamped to [0, 1].
func NewSpeakerPlayer(volume float64) (*SpeakerPlayer, error) {
	if err := speaker.Init(SampleRate, SampleRate.N(50*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("audio: cannot open speaker: %w", err)
	}

	p := &SpeakerPlayer{
		mixer:  &beep.Mixer{},
		volume: core.ClampF(volume, 0, 1),
	}
	speaker.Play(p.mixer)
	return p, nil
}

// Play starts the event's sound, if it has one, without blocking.
func (p *SpeakerPlayer) Play(ev core.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}

	s, ok := Sound(ev.Kind, p.volume)
	if !ok {
		return
	}
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Close silences the mixer and releases the device.
func (p *SpeakerPlayer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true

	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	return nil
}

// PlayAll plays every event in order.
func PlayAll(p Player, events []core.Event) {
	for _, ev := range events {
		p.Play(ev)
	}
}
