package tui

import (
	"errors"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-runner/internal/audio"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/registry"
	"github.com/vovakirdan/tui-runner/internal/spectate"
)

// EventSink receives the result of every simulation step.
type EventSink interface {
	Consume(game registry.Game, res core.StepResult)
}

// SinkFunc adapts a function to EventSink.
type SinkFunc func(game registry.Game, res core.StepResult)

// Consume calls f.
func (f SinkFunc) Consume(game registry.Game, res core.StepResult) {
	f(game, res)
}

// SoundSink plays the sound for each event.
func SoundSink(p audio.Player) EventSink {
	return SinkFunc(func(_ registry.Game, res core.StepResult) {
		audio.PlayAll(p, res.Events)
	})
}

// speedometer is implemented by games that report a scroll speed.
type speedometer interface {
	Speed() float64
}

// SpectateSink renders every Nth step into its own screen and publishes
// it to a spectator hub.
type SpectateSink struct {
	hub    *spectate.Hub
	screen *core.Screen
	every  int
	steps  int
	over   bool
	logger *log.Logger
}

// NewSpectateSink creates a sink publishing width x height frames.
// every <= 0 publishes every step.
func NewSpectateSink(hub *spectate.Hub, width, height, every int, logger *log.Logger) *SpectateSink {
	if every <= 0 {
		every = 1
	}
	if logger == nil {
		logger = log.Default()
	}
	return &SpectateSink{
		hub:    hub,
		screen: core.NewScreen(width, height),
		every:  every,
		logger: logger,
	}
}

// Consume publishes a frame when one is due. A change of the game over
// flag is always published so viewers see the crash and the restart.
func (s *SpectateSink) Consume(game registry.Game, res core.StepResult) {
	s.steps++
	changed := res.State.GameOver != s.over
	s.over = res.State.GameOver
	if s.steps%s.every != 0 && !changed {
		return
	}

	speed := 0.0
	if sp, ok := game.(speedometer); ok {
		speed = sp.Speed()
	}

	game.Render(s.screen)
	frame := spectate.NewFrame(game.ID(), s.steps, speed, res.State, s.screen)
	if err := s.hub.Publish(frame); err != nil && !errors.Is(err, spectate.ErrClosed) {
		s.logger.Warn("frame not published", "error", err)
	}
}
