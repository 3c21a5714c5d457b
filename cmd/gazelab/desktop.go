package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gazelab/internal/games/dotsweep"
	"github.com/vovakirdan/gazelab/internal/games/spotdiff"
	"github.com/vovakirdan/gazelab/internal/platform/desktop"
	"github.com/vovakirdan/gazelab/internal/storage"
)

var flagWindowed bool

var desktopCmd = &cobra.Command{
	Use:   "desktop <program>",
	Short: "Run a program in a desktop window",
	Long: `Run the specified program in a native window. Each program's config
chooses full screen with display.fullscreen; --windowed overrides it.

Controls:
  Mouse      - Click (spotdiff)
  P/Space    - Pause or resume
  R          - Restart from the beginning
  Q/Esc      - Quit

Examples:
  gazelab desktop dotsweep --record
  gazelab desktop dotsweep --windowed
  gazelab desktop spotdiff --levels "./Simple Images"`,
	Args: cobra.ExactArgs(1),
	Run:  runDesktop,
}

func init() {
	addProgramFlags(desktopCmd)
	desktopCmd.Flags().BoolVar(&flagWindowed, "windowed", false, "Run in a window even if the config asks for full screen")
}

func runDesktop(_ *cobra.Command, args []string) {
	gameID := args[0]
	checkProgram(gameID)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := openStore()
	err := desktopProgram(ctx, gameID, store)
	if store != nil {
		store.Close()
	}
	if err != nil {
		fatal("run failed", err)
	}
}

func desktopProgram(ctx context.Context, gameID string, store *storage.Store) error {
	switch gameID {
	case dotsweep.ID:
		cfg, err := loadDotSweep()
		if err != nil {
			return err
		}
		opts := desktop.Options{
			Title:      "Gaze Calibration",
			Fullscreen: cfg.Display.Fullscreen && !flagWindowed,
			TickRate:   cfg.Motion.TickRate,
		}
		if store != nil {
			opts.Sink = store
		}
		return runCalibration(ctx, cfg, store, func() (sweepOutcome, error) {
			res, err := desktop.RunSweep(cfg, opts)
			if res.Score > 0 && store != nil {
				if _, saveErr := store.SaveScore(dotsweep.ID, res.Score); saveErr != nil {
					logger.Warn("score not saved", "error", saveErr)
				}
			}
			return sweepOutcome{sweeps: res.Score, quit: res.Quit}, err
		})

	case spotdiff.ID:
		cfg, err := loadSpotDiff()
		if err != nil {
			return err
		}
		sink, closeLog, err := spotDiffSink(cfg, store)
		if err != nil {
			return err
		}
		defer closeLog()

		res, err := desktop.RunSpotDiff(cfg, desktop.Options{
			Title:      "Find The Differences",
			Fullscreen: cfg.Display.Fullscreen && !flagWindowed,
			TickRate:   cfg.TickRate,
			Sink:       sink,
		})
		if err != nil {
			return err
		}
		if res.SinkErr != nil {
			logger.Warn("events not recorded", "error", res.SinkErr)
		}
		if res.Score > 0 && store != nil {
			if _, saveErr := store.SaveScore(spotdiff.ID, res.Score); saveErr != nil {
				logger.Warn("score not saved", "error", saveErr)
			}
		}
		logger.Info("spotdiff finished", "found", res.Score, "quit", res.Quit)
		return nil
	}
	return fmt.Errorf("no desktop frontend for %q", gameID)
}
