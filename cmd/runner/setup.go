package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pocket-runner/internal/config"
	"github.com/vovakirdan/pocket-runner/internal/highscore"
	"github.com/vovakirdan/pocket-runner/internal/storage"
)

// loadConfig loads the configuration and applies the path flags.
func loadConfig() (config.RunnerConfig, error) {
	cfg, err := config.LoadRunner(flagConfig)
	if err != nil {
		return config.RunnerConfig{}, err
	}
	if flagNVMPath != "" {
		cfg.Storage.NVMPath = flagNVMPath
	}
	if flagDBPath != "" {
		cfg.Storage.HistoryPath = flagDBPath
	}
	return cfg, nil
}

// newLogger creates the logger. Without --log-file it writes to fallback,
// which is io.Discard while the game owns the terminal.
// The returned closer must be called when done.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	w := fallback
	closer := func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closer = func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "runner",
		Level:           level,
	})
	return logger, closer, nil
}

// openBoard opens the high-score board on its image file.
func openBoard(cfg config.RunnerConfig) (*highscore.Store, error) {
	region, err := highscore.OpenFileRegion(cfg.Storage.NVMPath, highscore.DefaultRegionSize)
	if err != nil {
		return nil, err
	}
	return highscore.Open(region, highscore.DefaultEntries)
}

// formatBoard rewrites the board with defaults without reading it, so an
// unreadable image can still be reset.
func formatBoard(cfg config.RunnerConfig) (*highscore.Store, error) {
	region, err := highscore.OpenFileRegion(cfg.Storage.NVMPath, highscore.DefaultRegionSize)
	if err != nil {
		return nil, err
	}
	return highscore.Format(region, highscore.DefaultEntries)
}

// openHistory opens the run history. Failure is not fatal to callers that
// can run without it.
func openHistory(cfg config.RunnerConfig) (*storage.Store, error) {
	return storage.Open(cfg.Storage.HistoryPath)
}
