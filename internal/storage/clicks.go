package storage

import (
	"fmt"
	"time"

	"github.com/vovakirdan/gazelab/internal/core"
)

// LevelStats aggregates the clicks made on one level.
type LevelStats struct {
	Level   int
	Clicks  int
	Correct int
}

// Accuracy returns the share of clicks that found a difference.
func (l LevelStats) Accuracy() float64 {
	if l.Clicks == 0 {
		return 0
	}
	return float64(l.Correct) / float64(l.Clicks)
}

// SaveClick records a scored click.
func (s *Store) SaveClick(at time.Time, gameID string, c core.ClickEvent) error {
	_, err := s.db.Exec(
		`INSERT INTO clicks (game_id, level, x, y, correct, region, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		gameID, c.Level, c.X, c.Y, c.Correct, c.Region, formatTime(at),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save click: %w", err)
	}
	return nil
}

// ClickStats returns per-level click totals for a game, ordered by level.
func (s *Store) ClickStats(gameID string) ([]LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level, COUNT(*), COALESCE(SUM(correct), 0)
		 FROM clicks
		 WHERE game_id = ?
		 GROUP BY level
		 ORDER BY level`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query clicks: %w", err)
	}
	defer rows.Close()

	var stats []LevelStats
	for rows.Next() {
		var l LevelStats
		if err := rows.Scan(&l.Level, &l.Clicks, &l.Correct); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		stats = append(stats, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// Record implements core.Sink. Clicks are stored; other events are ignored.
func (s *Store) Record(at time.Time, gameID string, ev core.Event) error {
	if c, ok := ev.(core.ClickEvent); ok {
		return s.SaveClick(at, gameID, c)
	}
	return nil
}

var _ core.Sink = (*Store)(nil)
