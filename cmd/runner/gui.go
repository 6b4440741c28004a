package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-runner/internal/audio"
	"github.com/vovakirdan/tui-runner/internal/games/runner"
	"github.com/vovakirdan/tui-runner/internal/platform/gui"
	"github.com/vovakirdan/tui-runner/internal/registry"
)

var flagScale float64

var guiCmd = &cobra.Command{
	Use:   "gui [variant]",
	Short: "Play a variant in a desktop window",
	Long: `Open a window and play the given variant (default: runner).

Controls:
  Space/Up/W - Jump
  P          - Pause
  R          - Restart (after game over)
  Esc/Q      - Quit

Examples:
  runner gui
  runner gui runner_classic --scale 2
  runner gui --sound`,
	Args: cobra.MaximumNArgs(1),
	Run:  runGUI,
}

func init() {
	guiCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	guiCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	guiCmd.Flags().StringVar(&flagSprites, "sprites", "", "Directory with a sprites.yaml overriding the built-in art")
	guiCmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound effects")
	guiCmd.Flags().Float64Var(&flagVolume, "volume", 0.5, "Sound volume from 0 to 1")
	guiCmd.Flags().Float64Var(&flagScale, "scale", 1, "Window size multiplier")
}

func runGUI(_ *cobra.Command, args []string) {
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
		fmt.Fprintf(os.Stderr, "Error: %q cannot be shown in a window\n", gameID)
		os.Exit(1)
	}

	store := openStore(logger)
	opts := gui.Options{
		Logger:  logger,
		Seed:    flagSeed,
		Scale:   flagScale,
		Sprites: spriteLibrary(logger),
	}
	if store != nil {
		opts.Scores = store
		opts.HighScores = store
	}

	var player audio.Player = audio.NopPlayer{}
	if flagSound {
		sp, err := audio.NewSpeakerPlayer(flagVolume)
		if err != nil {
			logger.Warn("sound disabled", "error", err)
		} else {
			player = sp
		}
	}
	opts.Sound = player

	runErr := gui.Run(game, opts)

	if err := player.Close(); err != nil {
		logger.Warn("closing speaker", "error", err)
	}
	closeStore(store, logger)

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
