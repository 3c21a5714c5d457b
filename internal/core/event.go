package core

import (
	"errors"
	"time"
)

// Event is something a game reports from a Step for the platform to record.
// The set is closed; sinks switch on the concrete type.
type Event interface {
	event()
}

// ClickEvent is a pointer click scored against a level's targets.
type ClickEvent struct {
	Level   int
	X, Y    int  // Click position in game coordinates
	Correct bool // Whether the click found a new target
	Region  int  // Index of the matched region, -1 if none
}

// LevelEvent reports that a level was completed.
type LevelEvent struct {
	Level  int
	Found  int // Regions found in the level
	Misses int // Clicks that matched nothing
}

// SweepEvent reports that a calibration sweep returned to center.
type SweepEvent struct {
	Index  int // Position in the direction sequence
	DX, DY int // Direction of the sweep
	Last   bool
}

func (ClickEvent) event() {}
func (LevelEvent) event() {}
func (SweepEvent) event() {}

// Sink records events reported by games.
type Sink interface {
	Record(at time.Time, gameID string, ev Event) error
}

// Sinks records each event to every sink in order. Nil entries are skipped.
type Sinks []Sink

// Record implements Sink. All sinks see the event even if one fails.
func (s Sinks) Record(at time.Time, gameID string, ev Event) error {
	var errs []error
	for _, sink := range s {
		if sink == nil {
			continue
		}
		if err := sink.Record(at, gameID, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
