// runner is Pocket Runner, a tilt-steered lane runner, played in the terminal.
//
// Usage:
//
//	runner play              - Play (keyboard emulates tilt, knob and button)
//	runner scores            - Show the high-score board
//	runner reset             - Erase the high-score board
//	runner history           - List finished runs
//	runner config            - Print the effective configuration
//
// Global flags:
//
//	--config <path>     - Custom configuration YAML
//	--nvm <path>        - High-score image (default from config)
//	--db <path>         - Run history database (default from config)
//	--log-file <path>   - Write logs to a file
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig   string
	flagNVMPath  string
	flagDBPath   string
	flagLogFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "runner",
	Short: "Pocket Runner - dodge, collect, survive 50 seconds",
	Long: `Pocket Runner is a three-lane reflex game. Tilt to switch lanes and
lean to move, grab coins, avoid obstacles and outlast the clock.
The top three scores are kept in a fixed-size high-score image.

Available commands:
  play     - Play the game
  scores   - Show the high-score board
  reset    - Erase the high-score board
  history  - List finished runs
  config   - Print the effective configuration

Examples:
  runner play
  runner play --difficulty hard --seed 42
  runner scores
  runner history --tui`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom configuration YAML")
	rootCmd.PersistentFlags().StringVar(&flagNVMPath, "nvm", "", "Path to the high-score image (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to the run history database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
}
