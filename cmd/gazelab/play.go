package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gazelab/internal/config"
	"github.com/vovakirdan/gazelab/internal/core"
	"github.com/vovakirdan/gazelab/internal/games/dotsweep"
	"github.com/vovakirdan/gazelab/internal/games/spotdiff"
	"github.com/vovakirdan/gazelab/internal/platform/tui"
	"github.com/vovakirdan/gazelab/internal/registry"
	"github.com/vovakirdan/gazelab/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play <program>",
	Short: "Run a program in the terminal",
	Long: `Run the specified program in the terminal.

Controls:
  Mouse      - Click (spotdiff)
  P/Space    - Pause or resume
  R          - Restart from the beginning
  Ctrl+S     - Save a screenshot
  Q/Esc      - Quit

Examples:
  gazelab play dotsweep
  gazelab play dotsweep --record-cmd "eyerec --out {output}"
  gazelab play spotdiff --levels "./Simple Images" --log clicks.csv
  gazelab play dotsweep --config ./my-sweep.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	addProgramFlags(playCmd)
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := args[0]
	checkProgram(gameID)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	if err := playProgram(ctx, gameID, store, terminalConfig()); err != nil {
		if store != nil {
			store.Close()
		}
		fatal("run failed", err)
	}
}

// playProgram loads the program's config and runs it once in the terminal.
func playProgram(ctx context.Context, gameID string, store *storage.Store, cfg core.RuntimeConfig) error {
	switch gameID {
	case dotsweep.ID:
		sweepCfg, err := loadDotSweep()
		if err != nil {
			return err
		}
		cfg.TickRate = sweepCfg.Motion.TickRate
		return runCalibration(ctx, sweepCfg, store, func() (sweepOutcome, error) {
			res, err := runTerminal(gameID, tui.RunOptions{Store: store}, cfg)
			return sweepOutcome{sweeps: res.State.Score, quit: res.Quit}, err
		})

	case spotdiff.ID:
		spotCfg, err := loadSpotDiff()
		if err != nil {
			return err
		}
		return playSpotDiff(spotCfg, store, cfg)
	}

	_, err := runTerminal(gameID, tui.RunOptions{Store: store}, cfg)
	return err
}

func playSpotDiff(spotCfg config.SpotDiffConfig, store *storage.Store, cfg core.RuntimeConfig) error {
	sink, closeLog, err := spotDiffSink(spotCfg, store)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg.TickRate = spotCfg.TickRate
	res, err := runTerminal(spotdiff.ID, tui.RunOptions{Store: store, Sink: sink}, cfg)
	if err != nil {
		return err
	}
	logger.Info("spotdiff finished", "found", res.State.Score, "quit", res.Quit)
	return nil
}

// runTerminal creates a registered program and runs it with Bubble Tea.
func runTerminal(gameID string, opts tui.RunOptions, cfg core.RuntimeConfig) (tui.RunResult, error) {
	game, err := registry.Create(gameID)
	if err != nil {
		return tui.RunResult{}, err
	}
	res, err := tui.Run(game, opts, cfg)
	if err != nil {
		return res, err
	}
	if res.SinkErr != nil {
		logger.Warn("events not recorded", "program", gameID, "error", res.SinkErr)
	}
	if f, ok := game.(registry.Failer); ok && f.Err() != nil {
		return res, f.Err()
	}
	return res, nil
}
