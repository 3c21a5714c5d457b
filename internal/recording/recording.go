// Package recording brackets a stimulus run with an external recording
// session, such as a wearable eye-tracker capture.
package recording

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/gazelab/internal/config"
)

// ErrNotConnected is returned when the recorder does not report a device
// connection before the connect timeout.
var ErrNotConnected = errors.New("recording: device not connected")

// Session is one recording session.
type Session struct {
	ID      string
	Started time.Time

	proc *process // set by Exec
}

func newSession() *Session {
	return &Session{
		ID:      uuid.NewString(),
		Started: time.Now(),
	}
}

// Recorder starts and stops recording sessions.
type Recorder interface {
	// Begin starts a session. The device may connect later.
	Begin(ctx context.Context) (*Session, error)
	// Connected reports whether the device is connected. It does not block.
	Connected(s *Session) bool
	// End stops the session and returns where the recorded data was written.
	End(ctx context.Context, s *Session) (string, error)
}

// Nop is a recorder that is always connected and records nothing.
type Nop struct{}

// Begin returns a new session.
func (Nop) Begin(context.Context) (*Session, error) {
	return newSession(), nil
}

// Connected always returns true.
func (Nop) Connected(*Session) bool {
	return true
}

// End returns an empty location.
func (Nop) End(context.Context, *Session) (string, error) {
	return "", nil
}

// Options controls Bracket.
type Options struct {
	PollInterval   time.Duration
	ConnectTimeout time.Duration
	StopTimeout    time.Duration
	Logger         *log.Logger
}

// OptionsFromConfig returns bracket options for a recording config.
func OptionsFromConfig(cfg config.RecordingConfig, logger *log.Logger) Options {
	return Options{
		PollInterval:   cfg.PollInterval,
		ConnectTimeout: cfg.ConnectTimeout,
		StopTimeout:    cfg.StopTimeout,
		Logger:         logger,
	}
}

// Result describes a bracketed session after it ended.
type Result struct {
	Session  *Session
	Location string
	EndErr   error // failure stopping the recorder, logged but not fatal
}

// Bracket begins a session, waits for the device to connect, calls run and
// ends the session. A connect failure is returned before run is called.
// Ending happens even if run fails or ctx is cancelled; an end failure is
// reported in the Result and never replaces run's error.
func Bracket(ctx context.Context, rec Recorder, opts Options, run func(*Session) error) (Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	sess, err := rec.Begin(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("recording: begin: %w", err)
	}
	res := Result{Session: sess}
	logger.Info("recording started", "session", sess.ID)

	if err := waitConnected(ctx, rec, sess, opts); err != nil {
		// Stop whatever was started; the connect error is what matters
		if _, endErr := end(ctx, rec, sess, opts); endErr != nil {
			logger.Warn("recording did not stop cleanly", "session", sess.ID, "error", endErr)
		}
		return res, err
	}
	logger.Info("recording connected", "session", sess.ID, "after", time.Since(sess.Started).Round(time.Millisecond))

	runErr := run(sess)

	res.Location, res.EndErr = end(ctx, rec, sess, opts)
	if res.EndErr != nil {
		logger.Error("recording failed to stop", "session", sess.ID, "error", res.EndErr)
	} else {
		logger.Info("recording stopped", "session", sess.ID, "location", res.Location)
	}
	return res, runErr
}

func waitConnected(ctx context.Context, rec Recorder, sess *Session, opts Options) error {
	if rec.Connected(sess) {
		return nil
	}

	interval := opts.PollInterval
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var timeout <-chan time.Time
	if opts.ConnectTimeout > 0 {
		timer := time.NewTimer(opts.ConnectTimeout)
		defer timer.Stop()
		timeout = timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("recording: waiting for connection: %w", ctx.Err())
		case <-timeout:
			return fmt.Errorf("%w after %s", ErrNotConnected, opts.ConnectTimeout)
		case <-ticker.C:
			if rec.Connected(sess) {
				return nil
			}
		}
	}
}

// end stops the session on a context detached from ctx, so a cancelled run
// still stops its recorder.
func end(ctx context.Context, rec Recorder, sess *Session, opts Options) (string, error) {
	stopCtx := context.WithoutCancel(ctx)
	if opts.StopTimeout > 0 {
		var cancel context.CancelFunc
		stopCtx, cancel = context.WithTimeout(stopCtx, opts.StopTimeout)
		defer cancel()
	}
	return rec.End(stopCtx, sess)
}
