package spotdiff

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/gazelab/internal/config"
	"github.com/vovakirdan/gazelab/internal/core"
)

// Session plays the levels of a directory in order, starting at the
// configured first level. It works in display coordinates and counts time
// in ticks; it does no drawing.
type Session struct {
	dir    string
	layout Layout
	delay  int // ticks between completing a level and loading the next

	level     *Level
	board     *Board
	advanceIn int
	done      bool
	total     int
}

// NewSession creates a session for the given config. Call Start to load the
// first level.
func NewSession(cfg config.SpotDiffConfig) *Session {
	return &Session{
		dir:    cfg.Levels.Dir,
		layout: LayoutFromConfig(cfg),
		delay:  DelayTicks(cfg.AdvanceDelay, cfg.TickRate),
	}
}

// DelayTicks converts a duration to a whole number of ticks, rounding up.
// The result is at least one so the completed level is shown for a frame.
func DelayTicks(d time.Duration, tickRate int) int {
	ticks := int((d*time.Duration(tickRate) + time.Second - 1) / time.Second)
	return max(ticks, 1)
}

// Start loads level n. ErrNoMoreLevels means the directory has no level n.
func (s *Session) Start(n int) error {
	s.total = 0
	s.done = false
	return s.load(n)
}

func (s *Session) load(n int) error {
	lvl, err := LoadLevel(s.dir, n, s.layout.Left.W, s.layout.Left.H)
	if err != nil {
		return err
	}
	s.level = lvl
	s.board = NewBoard(lvl.Regions)
	s.advanceIn = 0
	if s.board.Complete() {
		s.advanceIn = s.delay
	}
	return nil
}

// Click scores a click at display position (x, y). Clicks while the
// completed level is still shown count as misses against it.
func (s *Session) Click(x, y int) []core.Event {
	if s.done || s.board == nil {
		return nil
	}

	ev := core.ClickEvent{Level: s.level.Number, X: x, Y: y, Region: -1}
	lx, ly, ok := s.layout.Locate(x, y)
	if !ok {
		s.board.Miss()
		return []core.Event{ev}
	}

	wasComplete := s.board.Complete()
	ev.Region = s.board.Hit(lx, ly)
	ev.Correct = ev.Region >= 0
	events := []core.Event{ev}
	if ev.Correct {
		s.total++
	}

	if !wasComplete && s.board.Complete() {
		s.advanceIn = s.delay
		events = append(events, core.LevelEvent{
			Level:  s.level.Number,
			Found:  s.board.Found(),
			Misses: s.board.Misses(),
		})
	}
	return events
}

// Tick advances the level timer. When the pause after a completed level
// runs out, the next level is loaded; running out of levels ends the
// session. Any other load error is returned and also ends it.
func (s *Session) Tick() error {
	if s.done || s.advanceIn == 0 {
		return nil
	}
	s.advanceIn--
	if s.advanceIn > 0 {
		return nil
	}

	next := s.level.Number + 1
	if err := s.load(next); err != nil {
		s.done = true
		if errors.Is(err, ErrNoMoreLevels) {
			return nil
		}
		return fmt.Errorf("load level %d: %w", next, err)
	}
	return nil
}

// Layout returns the display layout.
func (s *Session) Layout() Layout {
	return s.layout
}

// Level returns the current level, nil before Start.
func (s *Session) Level() *Level {
	return s.level
}

// Board returns the current level's board, nil before Start.
func (s *Session) Board() *Board {
	return s.board
}

// Advancing reports whether the completed level is being shown before the
// next one loads.
func (s *Session) Advancing() bool {
	return s.advanceIn > 0
}

// Done reports whether every level has been played.
func (s *Session) Done() bool {
	return s.done
}

// TotalFound returns the number of differences found since Start.
func (s *Session) TotalFound() int {
	return s.total
}

// HUD returns the status line for the current level.
func (s *Session) HUD() string {
	if s.level == nil {
		return ""
	}
	return fmt.Sprintf("Level %d   Found: %d/%d", s.level.Number, s.board.Found(), s.board.Total())
}
