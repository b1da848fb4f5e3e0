package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-platformer/internal/registry"
	"github.com/vovakirdan/tui-platformer/internal/storage"
)

var flagShowRuns bool

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show high scores for a game",
	Long: `Display the top 10 high scores for the specified game.
With --runs, list the most recent recorded runs instead.

Examples:
  platformer scores penguin
  platformer scores crates --runs`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagShowRuns, "runs", false, "Show recorded runs instead of high scores")
}

func runScores(cmd *cobra.Command, args []string) error {
	gameID := args[0]
	out := cmd.OutOrStdout()

	game, err := registry.Create(gameID)
	if err != nil {
		if errors.Is(err, registry.ErrUnknownGame) {
			return fmt.Errorf("%w (run 'platformer list' to see available games)", err)
		}
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagShowRuns {
		return printRuns(cmd, store, gameID, game.Title())
	}

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Fprintf(out, "High Scores - %s\n\n", game.Title())
	if len(scores) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Play 'platformer play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Fprintf(out, "  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Fprintf(out, "  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Fprintln(out)
	if best, err := store.HighScore(gameID); err == nil {
		fmt.Fprintf(out, "Best: %d\n", best)
	}
	return nil
}

func printRuns(cmd *cobra.Command, store *storage.Store, gameID, title string) error {
	out := cmd.OutOrStdout()

	runs, err := store.RecentRuns(gameID, 10)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	fmt.Fprintf(out, "Recent Runs - %s\n\n", title)
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		return nil
	}

	fmt.Fprintf(out, "  %-16s  %-7s  %-8s  %-6s  %-10s  %-16s  %s\n", "Date", "Score", "Ticks", "Bodies", "Outcome", "Hash", "Seed")
	for _, r := range runs {
		fmt.Fprintf(out, "  %-16s  %-7d  %-8d  %-6d  %-10s  %016x  %d\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.Score, r.Ticks, r.BodiesRemaining, r.Outcome, r.StateHash, r.Seed)
	}
	return nil
}
