package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gazelab/internal/storage"
)

var flagRunsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show recent calibration runs",
	Long: `List the most recent calibration runs with their recording sessions.

Examples:
  gazelab runs
  gazelab runs --limit 50`,
	Args: cobra.NoArgs,
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "Number of runs to show")
}

func runRuns(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatal("cannot open results database", err)
	}
	defer store.Close()

	runs, err := store.RecentRuns(flagRunsLimit)
	if err != nil {
		store.Close()
		fatal("cannot read runs", err)
	}

	if len(runs) == 0 {
		fmt.Println("No calibration runs recorded yet.")
		return
	}

	fmt.Printf("  %-16s  %-6s  %-8s  %-8s  %s\n", "Started", "Sweeps", "Status", "Time", "Recording")
	for _, r := range runs {
		fmt.Printf("  %-16s  %-6d  %-8s  %-8s  %s\n",
			r.StartedAt.Local().Format("2006-01-02 15:04"),
			r.Sweeps,
			runStatus(r),
			r.Duration().Round(time.Second),
			orDash(r.RecordingLocation),
		)
		if r.Error != "" {
			fmt.Printf("  %16s  error: %s\n", "", r.Error)
		}
	}
}

func runStatus(r storage.Run) string {
	switch {
	case r.Error != "":
		return "error"
	case !r.Completed:
		return "quit"
	}
	return "complete"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
