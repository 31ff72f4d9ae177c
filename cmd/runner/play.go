package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pocket-runner/internal/config"
	"github.com/vovakirdan/pocket-runner/internal/flow"
	"github.com/vovakirdan/pocket-runner/internal/platform/tui"
)

var (
	flagDifficulty string
	flagSeed       int64
	flagFPS        int
	flagNoBoot     bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Pocket Runner",
	Long: `Start the game on the emulated device.

Controls:
  Up/Down, W/S     - Tilt toward the upper or lower lane (one step per press)
  Left/Right, A/D  - Lean to move the runner
  X                - Put the device flat again
  [ and ]          - Turn the knob
  Space/Enter      - Press the button
  Ctrl+S           - Save a screenshot
  Q/Ctrl+C         - Quit

Examples:
  runner play
  runner play --difficulty medium
  runner play --seed 42 --log-file runner.log --log-level debug`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Preselect a difficulty: easy, medium, hard")
	playCmd.Flags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	playCmd.Flags().IntVar(&flagFPS, "fps", 0, "Frames per second (default from config)")
	playCmd.Flags().BoolVar(&flagNoBoot, "no-boot", false, "Skip the boot animation")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagFPS > 0 {
		cfg.Timing.TickRate = flagFPS
	}

	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	board, err := openBoard(cfg)
	if err != nil {
		return fmt.Errorf("cannot open high scores: %w", err)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	opts := []flow.Option{flow.WithLogger(logger), flow.WithSeed(seed)}

	if flagDifficulty != "" {
		d, err := config.ParseDifficulty(flagDifficulty)
		if err != nil {
			return err
		}
		opts = append(opts, flow.WithDifficulty(d))
	}

	history, err := openHistory(cfg)
	if err != nil {
		// Continue without history - the game still works
		logger.Warn("could not open run history", "error", err)
	} else {
		defer history.Close()
		opts = append(opts, flow.WithRecorder(history))
	}

	host := tui.NewHost()
	machine, err := flow.New(cfg, host.Devices(), board, opts...)
	if err != nil {
		return err
	}

	boot := time.Second
	if flagNoBoot {
		boot = 0
	}

	logger.Info("starting", "seed", seed, "fps", cfg.Timing.TickRate, "nvm", cfg.Storage.NVMPath)
	return tui.Run(machine, host, tui.Options{
		TickRate: cfg.Timing.TickRate,
		Boot:     boot,
		Logger:   logger,
	})
}
