// gazelab runs visual stimulus programs for eye-tracking sessions.
//
// Usage:
//
//	gazelab list              - List available programs
//	gazelab play <program>    - Run a program in the terminal
//	gazelab desktop <program> - Run a program in a desktop window
//	gazelab menu              - Pick programs interactively
//	gazelab serve             - Start SSH server for remote sessions
//	gazelab scores <program>  - Show best results for a program
//	gazelab runs              - Show recent calibration runs
//
// Global flags:
//
//	--fps <rate>        - Override the program's tick rate
//	--db <path>         - Set database path (default: ~/.gazelab/scores.db)
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import programs to register them
	_ "github.com/vovakirdan/gazelab/internal/games/dotsweep"
	_ "github.com/vovakirdan/gazelab/internal/games/spotdiff"
)

var (
	// Global flags
	flagFPS      int
	flagDBPath   string
	flagLogLevel string

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "gazelab",
	})
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gazelab",
	Short: "Gazelab - stimulus programs for eye-tracking sessions",
	Long: `Gazelab runs visual stimulus programs for eye-tracking experiments:
a moving-dot calibration sweep and a find-the-differences task.

Available commands:
  list     - Show all available programs
  play     - Run a program in the terminal
  desktop  - Run a program in a desktop window
  menu     - Interactive program picker
  serve    - Start SSH server for remote sessions
  scores   - View best results
  runs     - View recent calibration runs

Examples:
  gazelab list
  gazelab play dotsweep --record
  gazelab desktop spotdiff --levels "./Simple Images"
  gazelab menu
  gazelab serve --ssh :2222
  gazelab scores spotdiff`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level: %w", err)
		}
		logger.SetLevel(level)
		log.SetDefault(logger)
		return nil
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate override (0 = use the program config)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.gazelab/scores.db", "Path to results database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(desktopCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(runsCmd)
}
