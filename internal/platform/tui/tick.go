// Package tui provides the Bubble Tea integration for the stimulus programs.
// It handles the terminal frame loop, input mapping, event recording and
// the menu, history and SSH surfaces.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
// Each run loop tags its ticks so a loop that was left for the menu cannot
// feed ticks into the next one.
type TickMsg struct {
	Time time.Time
	loop uint64
}

var loopIDs atomic.Uint64

func nextLoopID() uint64 {
	return loopIDs.Add(1)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int, loop uint64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, loop: loop}
	})
}
