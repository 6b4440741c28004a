// runner is a side-scrolling platform runner for the terminal.
//
// Usage:
//
//	runner list              - List available variants
//	runner play [variant]    - Play a variant in the terminal
//	runner menu              - Pick a variant interactively
//	runner gui [variant]     - Play in a desktop window
//	runner demo [variant]    - Watch the autopilot play
//	runner serve             - Start SSH server for remote play
//	runner scores <variant>  - Show the leaderboard for a variant
//	runner config dump       - Print the default config
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.runner/scores.db)
//	--log-file <path>    - Write logs to a file
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import the runner to register its variants
	_ "github.com/vovakirdan/tui-runner/internal/games/runner"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogFile  string
	flagLogLevel string
)

func main() {
	defer closeLogFile()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "runner",
	Short: "Sky Runner - jump, land and collect coins in your terminal",
	Long: `Sky Runner is a side-scrolling platform runner. Jump over obstacles
and flyers, land on platforms and collect coins while the world speeds up.

Available commands:
  list     - Show all variants
  play     - Play a variant directly
  menu     - Interactive variant picker
  gui      - Play in a desktop window
  demo     - Watch the autopilot play
  serve    - Start SSH server for remote play
  scores   - View the leaderboard
  config   - Inspect the game config

Examples:
  runner list
  runner play
  runner play runner_classic --difficulty hard
  runner menu
  runner demo --spectate :8080
  runner serve --ssh :2222
  runner scores runner`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (simulation steps per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.runner/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(guiCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}
