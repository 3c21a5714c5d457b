package recording

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

// OutputPlaceholder in a command argument is replaced by the session's
// output directory.
const OutputPlaceholder = "{output}"

// Exec records by running an external command for the length of a session.
// The command signals a device connection by printing a line containing
// Marker on stdout, and is stopped with an interrupt.
//
// The command also receives GAZELAB_SESSION_ID and GAZELAB_OUTPUT_DIR in
// its environment.
type Exec struct {
	Command   []string
	Marker    string
	OutputDir string // parent directory; each session writes to OutputDir/<id>
	Logger    *log.Logger
}

// NewExec creates an Exec recorder from config.
func NewExec(command []string, marker, outputDir string, logger *log.Logger) *Exec {
	return &Exec{
		Command:   command,
		Marker:    marker,
		OutputDir: outputDir,
		Logger:    logger,
	}
}

type process struct {
	cmd       *exec.Cmd
	output    string
	connected atomic.Bool
	done      chan struct{}
	waitErr   error
	stopping  atomic.Bool
}

// Begin creates the session output directory and starts the command.
func (e *Exec) Begin(ctx context.Context) (*Session, error) {
	if len(e.Command) == 0 {
		return nil, errors.New("recording: no command configured")
	}

	sess := newSession()
	output := filepath.Join(e.OutputDir, sess.ID)
	if err := os.MkdirAll(output, 0o755); err != nil {
		return nil, fmt.Errorf("recording: create output dir: %w", err)
	}

	args := make([]string, len(e.Command))
	for i, a := range e.Command {
		args[i] = strings.ReplaceAll(a, OutputPlaceholder, output)
	}

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Env = append(os.Environ(),
		"GAZELAB_SESSION_ID="+sess.ID,
		"GAZELAB_OUTPUT_DIR="+output,
	)
	cmd.Stderr = os.Stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("recording: stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("recording: start %s: %w", args[0], err)
	}

	p := &process{cmd: cmd, output: output, done: make(chan struct{})}
	sess.proc = p
	go e.watch(p, stdout)

	return sess, nil
}

// watch scans the command's output until it exits.
func (e *Exec) watch(p *process, stdout io.Reader) {
	logger := e.logger()
	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		line := scanner.Text()
		logger.Debug("recorder", "line", line)
		if e.Marker != "" && strings.Contains(line, e.Marker) && !p.connected.Swap(true) {
			logger.Debug("recorder reported connection")
		}
	}
	p.waitErr = p.cmd.Wait()
	close(p.done)
}

// Connected reports whether the command has printed the marker and is still running.
func (e *Exec) Connected(s *Session) bool {
	if s == nil || s.proc == nil {
		return false
	}
	select {
	case <-s.proc.done:
		return false
	default:
		return s.proc.connected.Load()
	}
}

// End interrupts the command and waits for it to exit. If ctx ends first
// the command is killed.
func (e *Exec) End(ctx context.Context, s *Session) (string, error) {
	if s == nil || s.proc == nil {
		return "", errors.New("recording: session was not started by this recorder")
	}
	p := s.proc

	select {
	case <-p.done:
	default:
		p.stopping.Store(true)
		if err := interrupt(p.cmd.Process); err != nil && !errors.Is(err, os.ErrProcessDone) {
			e.logger().Warn("could not interrupt recorder", "error", err)
		}
		select {
		case <-p.done:
		case <-ctx.Done():
			//nolint:errcheck // Process may already be gone
			p.cmd.Process.Kill()
			<-p.done
			return p.output, fmt.Errorf("recording: stop timed out: %w", ctx.Err())
		}
	}

	if err := p.waitErr; err != nil {
		var exitErr *exec.ExitError
		// Exiting on our interrupt is the normal way out
		if errors.As(err, &exitErr) && p.stopping.Load() && !exitErr.Exited() {
			return p.output, nil
		}
		return p.output, fmt.Errorf("recording: recorder exited: %w", err)
	}
	return p.output, nil
}

func (e *Exec) logger() *log.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return log.Default()
}

func interrupt(p *os.Process) error {
	if runtime.GOOS == "windows" {
		return p.Kill()
	}
	return p.Signal(os.Interrupt)
}
