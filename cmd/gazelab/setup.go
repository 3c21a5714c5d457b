package main

import (
	"context"
	"fmt"
	"os"
	"time"

	shlex "github.com/anmitsu/go-shlex"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/gazelab/internal/calibration"
	"github.com/vovakirdan/gazelab/internal/clicklog"
	"github.com/vovakirdan/gazelab/internal/config"
	"github.com/vovakirdan/gazelab/internal/core"
	"github.com/vovakirdan/gazelab/internal/games/dotsweep"
	"github.com/vovakirdan/gazelab/internal/games/spotdiff"
	"github.com/vovakirdan/gazelab/internal/recording"
	"github.com/vovakirdan/gazelab/internal/registry"
	"github.com/vovakirdan/gazelab/internal/storage"
)

// Program flags shared by play, desktop and menu.
var (
	flagConfig    string
	flagLevels    string
	flagClickLog  string
	flagRecord    bool
	flagRecordCmd string
)

func addProgramFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom program config YAML")
	cmd.Flags().StringVar(&flagLevels, "levels", "", "Directory with spotdiff level files")
	cmd.Flags().StringVar(&flagClickLog, "log", "", "Click log CSV path for spotdiff")
	cmd.Flags().BoolVar(&flagRecord, "record", false, "Bracket calibration runs with a recording session")
	cmd.Flags().StringVar(&flagRecordCmd, "record-cmd", "", "Recorder command line (implies --record)")
}

// fatal logs a setup failure and exits.
func fatal(msg string, err error) {
	logger.Error(msg, "error", err)
	os.Exit(1)
}

// checkProgram exits when no program with the id is registered.
func checkProgram(id string) {
	if !registry.Exists(id) {
		logger.Error("unknown program", "program", id)
		fmt.Fprintln(os.Stderr, "Run 'gazelab list' to see available programs.")
		os.Exit(1)
	}
}

// terminalConfig returns a runtime config sized to the terminal.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
	}
}

// openStore opens the results database. Programs run without it on failure.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open results database", "error", err)
		return nil
	}
	return store
}

// loadDotSweep loads the sweep config and applies the recording flags.
func loadDotSweep() (config.DotSweepConfig, error) {
	cfg, err := config.LoadDotSweep(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagRecordCmd != "" {
		argv, err := shlex.Split(flagRecordCmd, true)
		if err != nil {
			return cfg, fmt.Errorf("invalid --record-cmd: %w", err)
		}
		cfg.Recording.Command = argv
		flagRecord = true
	}
	if flagRecord {
		cfg.Recording.Enabled = true
	}
	if flagFPS > 0 {
		cfg.Motion.TickRate = flagFPS
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	dotsweep.SetConfig(cfg)
	return cfg, nil
}

// loadSpotDiff loads the spotdiff config, applies the level flags and
// checks that the first level can be loaded.
func loadSpotDiff() (config.SpotDiffConfig, error) {
	cfg, err := config.LoadSpotDiff(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagLevels != "" {
		cfg.Levels.Dir = flagLevels
	}
	if flagClickLog != "" {
		cfg.LogPath = flagClickLog
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	if err := spotdiff.NewSession(cfg).Start(cfg.Levels.First); err != nil {
		return cfg, err
	}
	logger.Info("levels found", "dir", cfg.Levels.Dir, "first", cfg.Levels.First)
	spotdiff.SetConfig(cfg)
	return cfg, nil
}

// spotDiffSink opens the click log and combines it with the store.
// The returned close function closes the click log.
func spotDiffSink(cfg config.SpotDiffConfig, store *storage.Store) (core.Sink, func(), error) {
	clog, err := clicklog.Open(cfg.LogPath)
	if err != nil {
		return nil, nil, err
	}
	sinks := core.Sinks{clog}
	if store != nil {
		sinks = append(sinks, store)
	}
	closeLog := func() {
		if err := clog.Close(); err != nil {
			logger.Warn("click log not closed cleanly", "path", clog.Path(), "error", err)
		}
	}
	return sinks, closeLog, nil
}

// sweepOutcome is what a calibration frontend reports back.
type sweepOutcome struct {
	sweeps int
	quit   bool
}

// runCalibration runs fn, inside a recording session when recording is
// enabled, and saves the run.
func runCalibration(ctx context.Context, cfg config.DotSweepConfig, store *storage.Store, fn func() (sweepOutcome, error)) error {
	run := storage.Run{
		ID:        uuid.NewString(),
		GameID:    dotsweep.ID,
		StartedAt: time.Now(),
	}

	var out sweepOutcome
	var err error
	if cfg.Recording.Enabled {
		dir, dirErr := config.ExpandHome(cfg.Recording.OutputDir)
		if dirErr != nil {
			return dirErr
		}
		rec := recording.NewExec(cfg.Recording.Command, cfg.Recording.ConnectedMarker, dir, logger)
		var res recording.Result
		res, err = recording.Bracket(ctx, rec, recording.OptionsFromConfig(cfg.Recording, logger),
			func(*recording.Session) error {
				var runErr error
				out, runErr = fn()
				return runErr
			})
		if res.Session != nil {
			run.RecordingID = res.Session.ID
		}
		run.RecordingLocation = res.Location
		if res.EndErr != nil {
			run.Error = res.EndErr.Error()
		}
	} else {
		out, err = fn()
	}

	run.FinishedAt = time.Now()
	run.Sweeps = out.sweeps
	run.Completed = err == nil && !out.quit && out.sweeps == len(calibration.Sequence)
	if err != nil {
		run.Error = err.Error()
	}

	logger.Info("calibration run finished",
		"run", run.ID,
		"sweeps", run.Sweeps,
		"completed", run.Completed,
		"duration", run.Duration().Round(time.Millisecond),
	)
	if store != nil {
		if saveErr := store.SaveRun(run); saveErr != nil {
			logger.Warn("run not saved", "run", run.ID, "error", saveErr)
		}
	}
	return err
}
