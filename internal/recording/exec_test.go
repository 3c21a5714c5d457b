package recording

import (
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func shellRecorder(t *testing.T, script string) *Exec {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	return NewExec([]string{"sh", "-c", script}, "connected", t.TempDir(), log.New(io.Discard))
}

func TestExecConnectsAndStops(t *testing.T) {
	// exec so the interrupt reaches sleep directly
	rec := shellRecorder(t, `echo "$GAZELAB_SESSION_ID" > "$GAZELAB_OUTPUT_DIR/id"; echo "device connected"; exec sleep 30`)

	opts := quietOptions()
	opts.ConnectTimeout = 5 * time.Second
	opts.StopTimeout = 5 * time.Second

	var id string
	res, err := Bracket(context.Background(), rec, opts, func(s *Session) error {
		id = s.ID
		if !rec.Connected(s) {
			t.Error("recorder should be connected during run")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Bracket() failed: %v", err)
	}
	if res.EndErr != nil {
		t.Errorf("End() failed: %v", res.EndErr)
	}
	if res.Location != filepath.Join(rec.OutputDir, id) {
		t.Errorf("Location = %q", res.Location)
	}

	data, err := os.ReadFile(filepath.Join(res.Location, "id"))
	if err != nil {
		t.Fatalf("recorder output missing: %v", err)
	}
	if strings.TrimSpace(string(data)) != id {
		t.Errorf("recorder saw session %q, expected %q", data, id)
	}
}

func TestExecNeverConnects(t *testing.T) {
	rec := shellRecorder(t, `echo waiting; exec sleep 30`)

	opts := quietOptions()
	opts.ConnectTimeout = 100 * time.Millisecond
	opts.StopTimeout = 5 * time.Second

	_, err := Bracket(context.Background(), rec, opts, func(*Session) error {
		t.Error("run called without a connection")
		return nil
	})
	if err == nil || !strings.Contains(err.Error(), "not connected") {
		t.Errorf("error = %v, expected not connected", err)
	}
}

func TestExecExitedRecorderIsNotConnected(t *testing.T) {
	rec := shellRecorder(t, `echo connected; exit 3`)

	sess, err := rec.Begin(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	<-sess.proc.done
	if rec.Connected(sess) {
		t.Error("exited recorder reported connected")
	}
	if _, err := rec.End(context.Background(), sess); err == nil {
		t.Error("non-zero exit should be reported")
	}
}

func TestExecPlaceholder(t *testing.T) {
	rec := shellRecorder(t, `echo connected > "$1/marker"; exec sleep 30`)
	rec.Command = append(rec.Command, "sh", OutputPlaceholder)

	sess, err := rec.Begin(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	// The interrupt may land before the script writes; only the directory is checked
	out, _ := rec.End(context.Background(), sess)
	if _, err := os.Stat(out); err != nil {
		t.Errorf("output dir missing: %v", err)
	}
	if !strings.HasPrefix(out, rec.OutputDir) {
		t.Errorf("output %q not under %q", out, rec.OutputDir)
	}
}

func TestExecNoCommand(t *testing.T) {
	rec := NewExec(nil, "connected", t.TempDir(), log.New(io.Discard))
	if _, err := rec.Begin(context.Background()); err == nil {
		t.Error("expected an error for an empty command")
	}
}
