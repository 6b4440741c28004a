package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-runner/internal/autopilot"
	"github.com/vovakirdan/tui-runner/internal/core"
	"github.com/vovakirdan/tui-runner/internal/games/runner"
	"github.com/vovakirdan/tui-runner/internal/loop"
	"github.com/vovakirdan/tui-runner/internal/registry"
)

var flagTicks int

var demoCmd = &cobra.Command{
	Use:   "demo [variant]",
	Short: "Watch the autopilot play",
	Long: `Run the given variant headless with the autopilot at the keys.
Crashed runs restart on a new course. Bot runs never reach the
leaderboard or the highscore.

Pair it with --spectate to watch over a websocket.

Examples:
  runner demo --ticks 3600
  runner demo runner_classic --spectate :8080
  runner demo --fps 240 --ticks 100000`,
	Args: cobra.MaximumNArgs(1),
	Run:  runDemo,
}

func init() {
	demoCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	demoCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	demoCmd.Flags().StringVar(&flagSprites, "sprites", "", "Directory with a sprites.yaml overriding the built-in art")
	demoCmd.Flags().IntVar(&flagTicks, "ticks", 0, "Stop after this many steps (0 = until interrupted)")
	demoCmd.Flags().StringVar(&flagSpectate, "spectate", "", "Serve a live spectator feed on this address (e.g. :8080)")
}

// demoStats summarises a demo session.
type demoStats struct {
	Steps int
	Runs  int
	Best  int
}

func runDemo(_ *cobra.Command, args []string) {
	logger := setupLogger(false)
	gameID := variantArg(args)
	applyGameFlags()

	created, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	game, ok := created.(*runner.Game)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: the autopilot cannot play %q\n", gameID)
		os.Exit(1)
	}
	game.SetHighScores(core.NewMemoryHighScores())
	game.SetSprites(spriteLibrary(logger))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sinks, stopSinks := sessionSinks(ctx, logger)
	defer stopSinks()

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rc := core.RuntimeConfig{ScreenW: spectateW, ScreenH: spectateH, TickRate: flagFPS, Seed: seed}
	game.Reset(rc)

	pilot := autopilot.New()
	stats := demoStats{Runs: 1}

	sched := loop.NewScheduler(flagFPS, func(time.Time) bool {
		in := pilot.Decide(game.World())
		if in.Has(core.ActionRestart) && game.State().GameOver {
			rc.Seed++
			game.Reset(rc)
			stats.Runs++
			return true
		}

		res := game.Step(in)
		stats.Steps++
		for _, sink := range sinks {
			sink.Consume(game, res)
		}
		for _, ev := range res.Events {
			if ev.Kind == core.EventCrash {
				stats.Best = core.Max(stats.Best, ev.Value)
				logger.Info("run ended", "run", stats.Runs, "score", ev.Value, "steps", game.World().Ticks)
			}
		}

		return flagTicks <= 0 || stats.Steps < flagTicks
	})

	logger.Info("demo started", "variant", gameID, "seed", seed, "fps", flagFPS)
	if err := sched.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error running demo: %v\n", err)
		os.Exit(1)
	}

	stats.Best = core.Max(stats.Best, game.State().Score)
	fmt.Printf("Demo finished: %d steps, %d runs, best score %d\n", stats.Steps, stats.Runs, stats.Best)
}
