package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-runner/internal/audio"
	"github.com/vovakirdan/tui-runner/internal/platform/tui"
	"github.com/vovakirdan/tui-runner/internal/spectate"
)

var (
	flagSound    bool
	flagVolume   float64
	flagSpectate string
)

// spectateSize is the frame size sent to viewers, independent of the
// player's terminal.
const (
	spectateW     = 100
	spectateH     = 30
	spectateEvery = 2
)

// sessionSinks starts the optional sound player and spectator feed.
// The returned func stops both.
func sessionSinks(ctx context.Context, logger *log.Logger) ([]tui.EventSink, func()) {
	var sinks []tui.EventSink
	var stops []func()

	if flagSound {
		player, err := audio.NewSpeakerPlayer(flagVolume)
		if err != nil {
			logger.Warn("sound disabled", "error", err)
			fmt.Fprintf(os.Stderr, "Warning: sound disabled: %v\n", err)
		} else {
			sinks = append(sinks, tui.SoundSink(player))
			stops = append(stops, func() {
				if err := player.Close(); err != nil {
					logger.Warn("closing speaker", "error", err)
				}
			})
		}
	}

	if flagSpectate != "" {
		hub := spectate.NewHub(logger.WithPrefix("spectate"), 0)
		ctx, cancel := context.WithCancel(ctx)
		done := make(chan struct{})
		go func() {
			defer close(done)
			if err := hub.ListenAndServe(ctx, flagSpectate); err != nil {
				logger.Error("spectator feed stopped", "addr", flagSpectate, "error", err)
			}
		}()
		sinks = append(sinks, tui.NewSpectateSink(hub, spectateW, spectateH, spectateEvery, logger))
		stops = append(stops, func() {
			cancel()
			<-done
		})
	}

	return sinks, func() {
		for _, stop := range stops {
			stop()
		}
	}
}
