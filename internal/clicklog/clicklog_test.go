package clicklog

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/gazelab/internal/core"
)

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	return rows
}

func TestRecordWritesRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "click_log.csv")
	l, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	at := time.Date(2025, 3, 4, 10, 20, 30, 123456000, time.UTC)
	events := []core.Event{
		core.ClickEvent{Level: 1, X: 350, Y: 350, Correct: true, Region: 2},
		core.ClickEvent{Level: 1, X: 700, Y: 20, Region: -1},
		core.LevelEvent{Level: 1, Found: 3},
		core.SweepEvent{Index: 0},
	}
	for _, ev := range events {
		if err := l.Record(at, "spotdiff", ev); err != nil {
			t.Fatalf("Record() failed: %v", err)
		}
	}
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}

	rows := readRows(t, path)
	want := [][]string{
		Header,
		{"2025-03-04 10:20:30.123456", "1", "350", "350", "true", "2"},
		{"2025-03-04 10:20:30.123456", "1", "700", "20", "false", "-"},
	}
	if len(rows) != len(want) {
		t.Fatalf("got %d rows, expected %d: %v", len(rows), len(want), rows)
	}
	for i := range want {
		if strings.Join(rows[i], ",") != strings.Join(want[i], ",") {
			t.Errorf("row %d = %v, expected %v", i, rows[i], want[i])
		}
	}
}

func TestOpenAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "click_log.csv")

	for run := 0; run < 2; run++ {
		l, err := Open(path)
		if err != nil {
			t.Fatal(err)
		}
		ev := core.ClickEvent{Level: run + 1, X: 1, Y: 2, Region: -1}
		if err := l.Record(time.Now(), "spotdiff", ev); err != nil {
			t.Fatal(err)
		}
		l.Close()
	}

	rows := readRows(t, path)
	if len(rows) != 3 {
		t.Fatalf("got %d rows, expected header and two clicks", len(rows))
	}
	if rows[0][0] != "timestamp" || rows[1][1] != "1" || rows[2][1] != "2" {
		t.Errorf("rows = %v", rows)
	}
}

func TestOpenFails(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "missing", "log.csv")); err == nil {
		t.Error("expected error for missing directory")
	}
}
