package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/gazelab/internal/core"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenCreatesNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.SaveScore("spotdiff", 7); err != nil {
		t.Fatal(err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()
	if high, _ := store.HighScore("spotdiff"); high != 7 {
		t.Errorf("HighScore after reopen = %d, expected 7", high)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{5, 2, 9} {
		if _, err := store.SaveScore("spotdiff", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("dotsweep", 8); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("spotdiff", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	if scores[0].Score != 9 || scores[1].Score != 5 || scores[2].Score != 2 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
	if scores[0].CreatedAt.IsZero() {
		t.Error("CreatedAt was not parsed")
	}

	limited, err := store.TopScores("spotdiff", 2)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("Expected 2 scores with limit, got %d", len(limited))
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("spotdiff")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("spotdiff", 4)
	store.SaveScore("spotdiff", 11)
	store.SaveScore("spotdiff", 6)

	high, err = store.HighScore("spotdiff")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 11 {
		t.Errorf("Expected high score of 11, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("spotdiff", 1)
	store.SaveScore("dotsweep", 8)

	if err := store.ClearScores("spotdiff"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if s, _ := store.TopScores("spotdiff", 10); len(s) != 0 {
		t.Errorf("Expected 0 spotdiff scores after clear, got %d", len(s))
	}
	if s, _ := store.TopScores("dotsweep", 10); len(s) != 1 {
		t.Error("dotsweep scores should not be affected by clearing spotdiff")
	}
}

func TestStoreRuns(t *testing.T) {
	store := openTestStore(t)

	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	runs := []Run{
		{ID: "a", GameID: "dotsweep", Sweeps: 8, Completed: true, StartedAt: base, FinishedAt: base.Add(40 * time.Second)},
		{ID: "b", GameID: "dotsweep", RecordingID: "rec-1", RecordingLocation: "/data/rec-1", Sweeps: 3,
			StartedAt: base.Add(time.Hour), FinishedAt: base.Add(time.Hour + 10*time.Second)},
	}
	for _, r := range runs {
		if err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	got, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d runs, expected 2", len(got))
	}
	if got[0].ID != "b" || got[1].ID != "a" {
		t.Errorf("runs not newest first: %s, %s", got[0].ID, got[1].ID)
	}
	if got[0].RecordingLocation != "/data/rec-1" || got[0].Completed || got[0].Sweeps != 3 {
		t.Errorf("run b = %+v", got[0])
	}
	if !got[1].Completed || !got[1].StartedAt.Equal(base) || got[1].Duration() != 40*time.Second {
		t.Errorf("run a = %+v", got[1])
	}

	// Saving again replaces
	runs[1].Error = "recording failed to stop"
	if err := store.SaveRun(runs[1]); err != nil {
		t.Fatal(err)
	}
	got, _ = store.RecentRuns(1)
	if len(got) != 1 || got[0].Error != "recording failed to stop" {
		t.Errorf("replaced run = %+v", got)
	}
}

func TestStoreClicks(t *testing.T) {
	store := openTestStore(t)
	now := time.Now()

	events := []core.Event{
		core.ClickEvent{Level: 1, X: 100, Y: 100, Correct: true, Region: 0},
		core.ClickEvent{Level: 1, X: 200, Y: 100, Region: -1},
		core.ClickEvent{Level: 2, X: 300, Y: 300, Correct: true, Region: 1},
		core.LevelEvent{Level: 1, Found: 1, Misses: 1},
	}
	var sink core.Sink = store
	for _, ev := range events {
		if err := sink.Record(now, "spotdiff", ev); err != nil {
			t.Fatalf("Record() failed: %v", err)
		}
	}

	stats, err := store.ClickStats("spotdiff")
	if err != nil {
		t.Fatalf("ClickStats() failed: %v", err)
	}
	want := []LevelStats{
		{Level: 1, Clicks: 2, Correct: 1},
		{Level: 2, Clicks: 1, Correct: 1},
	}
	if len(stats) != len(want) {
		t.Fatalf("stats = %+v", stats)
	}
	for i := range want {
		if stats[i] != want[i] {
			t.Errorf("level %d stats = %+v, expected %+v", i, stats[i], want[i])
		}
	}
	if stats[0].Accuracy() != 0.5 {
		t.Errorf("Accuracy = %v, expected 0.5", stats[0].Accuracy())
	}

	if other, _ := store.ClickStats("dotsweep"); len(other) != 0 {
		t.Errorf("dotsweep has click stats: %+v", other)
	}
}
