package storage

import (
	"fmt"
	"time"
)

// Run is one calibration run.
type Run struct {
	ID                string
	GameID            string
	RecordingID       string // empty without a recorder
	RecordingLocation string
	Sweeps            int
	Completed         bool   // false when the run was quit early
	Error             string // recording or run failure, if any
	StartedAt         time.Time
	FinishedAt        time.Time
}

// Duration returns how long the run took.
func (r Run) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// SaveRun records a finished run. Saving a run with an existing ID replaces it.
func (s *Store) SaveRun(r Run) error {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO runs
		 (id, game_id, recording_id, recording_location, sweeps, completed, error, started_at, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.GameID, r.RecordingID, r.RecordingLocation, r.Sweeps, r.Completed, r.Error,
		formatTime(r.StartedAt), formatTime(r.FinishedAt),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save run: %w", err)
	}
	return nil
}

// RecentRuns returns the most recently started runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, recording_id, recording_location, sweeps, completed, error, started_at, finished_at
		 FROM runs
		 ORDER BY started_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var started, finished any
		if err := rows.Scan(
			&r.ID, &r.GameID, &r.RecordingID, &r.RecordingLocation,
			&r.Sweeps, &r.Completed, &r.Error, &started, &finished,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.StartedAt = parseTime(started)
		r.FinishedAt = parseTime(finished)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}
