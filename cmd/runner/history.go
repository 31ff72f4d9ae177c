package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/pocket-runner/internal/config"
	"github.com/vovakirdan/pocket-runner/internal/platform/tui"
	"github.com/vovakirdan/pocket-runner/internal/storage"
)

var (
	flagHistoryLimit int
	flagHistoryTUI   bool
)

var historyCmd = &cobra.Command{
	Use:   "history [difficulty]",
	Short: "List finished runs",
	Long: `Show runs recorded in the history database, newest first.
With a difficulty argument the best runs of that difficulty are listed
with aggregate statistics.

Examples:
  runner history
  runner history hard --limit 5
  runner history --tui`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Maximum number of runs")
	historyCmd.Flags().BoolVar(&flagHistoryTUI, "tui", false, "Browse the history interactively")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := openHistory(cfg)
	if err != nil {
		return fmt.Errorf("cannot open run history: %w", err)
	}
	defer store.Close()

	if flagHistoryTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		return tui.RunHistory(store, flagHistoryLimit, width, height)
	}

	out := cmd.OutOrStdout()
	if len(args) == 0 {
		runs, err := store.RecentRuns(flagHistoryLimit)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, "Recent runs")
		printRuns(cmd, runs)
		return nil
	}

	d, err := config.ParseDifficulty(args[0])
	if err != nil {
		return err
	}
	runs, err := store.TopRuns(string(d), flagHistoryLimit)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Best runs - %s\n", d.Title())
	printRuns(cmd, runs)

	stats, err := store.Stats(string(d))
	if err != nil {
		return err
	}
	if stats.Runs > 0 {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Runs: %d  Wins: %d  Best: %d  Avg: %.1f  Max level: %d\n",
			stats.Runs, stats.Wins, stats.BestScore, stats.AvgScore, stats.MaxLevel)
	}
	return nil
}

func printRuns(cmd *cobra.Command, runs []storage.Run) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out)
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Play 'runner play' to record the first one!")
		return
	}

	fmt.Fprintf(out, "  %-5s  %-6s  %-5s  %-3s  %-9s  %-4s  %s\n", "ID", "Mode", "Score", "Lv", "Result", "Name", "Date")
	fmt.Fprintf(out, "  %-5s  %-6s  %-5s  %-3s  %-9s  %-4s  %s\n", "--", "----", "-----", "--", "------", "----", "----")
	for _, r := range runs {
		fmt.Fprintf(out, "  %-5d  %-6s  %-5d  %-3d  %-9s  %-4s  %s\n",
			r.ID, config.Difficulty(r.Difficulty).Title(), r.Score, r.Level, r.Outcome, r.Name,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}
}
