package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the high-score board",
	Long: `Display the records stored in the high-score image.

Examples:
  runner scores
  runner scores --nvm ./nvm.bin`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func runScores(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	board, err := openBoard(cfg)
	if err != nil {
		return fmt.Errorf("cannot open high scores: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "TOP SCORES")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %-4s  %-4s  %s\n", "Rank", "Name", "Score")
	fmt.Fprintf(out, "  %-4s  %-4s  %s\n", "----", "----", "-----")
	for i, e := range board.Scores() {
		fmt.Fprintf(out, "  %-4d  %-4s  %d\n", i+1, e.Name, e.Score)
	}
	return nil
}
