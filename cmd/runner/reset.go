package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var flagResetHistory bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase the high-score board",
	Long: `Rewrite every high-score record with the default entry (AAA, 0).
With --history the run history is cleared too.

Examples:
  runner reset
  runner reset --history`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&flagResetHistory, "history", false, "Also clear the run history")
}

func runReset(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog()

	if _, err := formatBoard(cfg); err != nil {
		return fmt.Errorf("cannot reset high scores: %w", err)
	}
	logger.Info("high scores reset", "nvm", cfg.Storage.NVMPath)

	if !flagResetHistory {
		return nil
	}
	history, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer history.Close()
	if err := history.ClearRuns(); err != nil {
		return err
	}
	logger.Info("run history cleared", "db", cfg.Storage.HistoryPath)
	return nil
}
