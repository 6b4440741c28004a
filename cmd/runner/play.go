package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-runner/internal/platform/tui"
	"github.com/vovakirdan/tui-runner/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing the given variant (default: runner).

Controls:
  Space/Up/W - Jump
  P/Esc      - Pause
  R          - Restart (after game over)
  Ctrl+S     - Save a screenshot to ~/.runner/screenshots
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Slower start, gentle speed-up, sparse spawns
  normal - The config as written
  hard   - Faster start and denser spawns
  fixed  - No speed-up, steady spawn rate

Examples:
  runner play
  runner play runner_classic
  runner play --difficulty hard
  runner play --config ./my-runner.yaml
  runner play --sound
  runner play --sprites ./my-art
  runner play --spectate :8080`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagSprites, "sprites", "", "Directory with a sprites.yaml overriding the built-in art")
	playCmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound effects")
	playCmd.Flags().Float64Var(&flagVolume, "volume", 0.5, "Sound volume from 0 to 1")
	playCmd.Flags().StringVar(&flagSpectate, "spectate", "", "Serve a live spectator feed on this address (e.g. :8080)")
}

func runPlay(_ *cobra.Command, args []string) {
	logger := setupLogger(true)
	gameID := variantArg(args)
	applyGameFlags()

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	applySprites(game, spriteLibrary(logger))

	store := openStore(logger)
	opts := tui.StoreOptions(store, logger)

	ctx, cancel := context.WithCancel(context.Background())
	sinks, stopSinks := sessionSinks(ctx, logger)
	opts.Sinks = sinks

	runErr := tui.Run(game, terminalConfig(), opts)

	cancel()
	stopSinks()
	closeStore(store, logger)

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
