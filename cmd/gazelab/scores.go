package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gazelab/internal/registry"
	"github.com/vovakirdan/gazelab/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores <program>",
	Short: "Show best results for a program",
	Long: `Display the top 10 results for the specified program.
For spotdiff the per-level click accuracy follows.

Examples:
  gazelab scores dotsweep
  gazelab scores spotdiff`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func runScores(_ *cobra.Command, args []string) {
	gameID := args[0]
	checkProgram(gameID)

	game, err := registry.Create(gameID)
	if err != nil {
		fatal("cannot create program", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatal("cannot open results database", err)
	}
	defer store.Close()

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		store.Close()
		fatal("cannot read scores", err)
	}

	fmt.Printf("Best results - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No results recorded yet.")
		fmt.Println()
		fmt.Printf("Run 'gazelab play %s' to record the first one.\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	stats, err := store.ClickStats(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot read click stats: %v\n", err)
		return
	}
	if len(stats) == 0 {
		return
	}
	fmt.Println()
	fmt.Printf("  %-5s  %-7s  %-7s  %s\n", "Level", "Clicks", "Correct", "Accuracy")
	for _, l := range stats {
		fmt.Printf("  %-5d  %-7d  %-7d  %.0f%%\n", l.Level, l.Clicks, l.Correct, 100*l.Accuracy())
	}
}
