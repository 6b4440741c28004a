package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-runner/internal/config"
	"github.com/vovakirdan/tui-runner/internal/games/runner"
	"github.com/vovakirdan/tui-runner/internal/registry"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the game config",
	Long: `Print the built-in default config or the effective config of a variant.

Save the default to ~/.runner/configs/runner.yaml to change the rules for
every run, or pass --config to play with a one-off file.

Examples:
  runner config dump > ~/.runner/configs/runner.yaml
  runner config show runner_classic --difficulty hard`,
}

var configDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the default config YAML",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		os.Stdout.Write(config.DefaultYAML())
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show [variant]",
	Short: "Print the effective config of a variant",
	Args:  cobra.MaximumNArgs(1),
	Run:   runConfigShow,
}

func init() {
	configShowCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom runner config YAML")
	configShowCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")

	configCmd.AddCommand(configDumpCmd)
	configCmd.AddCommand(configShowCmd)
}

func runConfigShow(_ *cobra.Command, args []string) {
	setupLogger(false)
	gameID := variantArg(args)
	applyGameFlags()

	created, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	game, ok := created.(*runner.Game)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: %q has no runner config\n", gameID)
		os.Exit(1)
	}

	out, err := yaml.Marshal(game.Config())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding config: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(out)
}
