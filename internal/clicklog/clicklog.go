// Package clicklog appends scored clicks to a CSV file.
package clicklog

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/vovakirdan/gazelab/internal/core"
)

// Header is the first row of a new log.
var Header = []string{"timestamp", "level", "global_x", "global_y", "correct", "difference_id"}

// TimeLayout formats the timestamp column.
const TimeLayout = "2006-01-02 15:04:05.000000"

// Log is an append-only click log. It is safe for concurrent use.
type Log struct {
	mu   sync.Mutex
	path string
	f    *os.File
	w    *csv.Writer
}

// Open opens or creates the log at path. The header is written only when
// the file is empty, so rows from earlier runs are kept.
func Open(path string) (*Log, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("clicklog: open %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("clicklog: stat %s: %w", path, err)
	}

	l := &Log{path: path, f: f, w: csv.NewWriter(f)}
	if info.Size() == 0 {
		if err := l.write(Header); err != nil {
			f.Close()
			return nil, err
		}
	}
	return l, nil
}

// Path returns the file path.
func (l *Log) Path() string {
	return l.path
}

// Record writes a row for a click event and ignores other events.
// Rows are flushed immediately so a crash loses nothing already clicked.
func (l *Log) Record(at time.Time, _ string, ev core.Event) error {
	click, ok := ev.(core.ClickEvent)
	if !ok {
		return nil
	}

	id := "-"
	if click.Region >= 0 {
		id = strconv.Itoa(click.Region)
	}
	return l.write([]string{
		at.Format(TimeLayout),
		strconv.Itoa(click.Level),
		strconv.Itoa(click.X),
		strconv.Itoa(click.Y),
		strconv.FormatBool(click.Correct),
		id,
	})
}

func (l *Log) write(row []string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.w.Write(row); err != nil {
		return fmt.Errorf("clicklog: write: %w", err)
	}
	l.w.Flush()
	if err := l.w.Error(); err != nil {
		return fmt.Errorf("clicklog: flush: %w", err)
	}
	return nil
}

// Close closes the file.
func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Flush()
	return l.f.Close()
}
