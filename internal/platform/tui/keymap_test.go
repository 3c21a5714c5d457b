package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gazelab/internal/core"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		key    string
		action core.Action
		quit   bool
	}{
		{"q", core.ActionQuit, true},
		{"esc", core.ActionQuit, true},
		{"ctrl+c", core.ActionQuit, true},
		{"p", core.ActionPause, false},
		{" ", core.ActionPause, false},
		{"r", core.ActionRestart, false},
		{"up", core.ActionNone, false},
		{"enter", core.ActionNone, false},
		{"x", core.ActionNone, false},
	}
	for _, tc := range tests {
		action, quit := km.MapKey(keyMsg(tc.key))
		if action != tc.action || quit != tc.quit {
			t.Errorf("MapKey(%q) = (%v, %v), expected (%v, %v)", tc.key, action, quit, tc.action, tc.quit)
		}
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		key  string
		want MenuAction
	}{
		{"q", MenuActionQuit},
		{"esc", MenuActionBack},
		{"k", MenuActionUp},
		{"j", MenuActionDown},
		{"enter", MenuActionSelect},
		{" ", MenuActionSelect},
		{"z", MenuActionNone},
	}
	for _, tc := range tests {
		if got := km.MapKeyToMenuAction(keyMsg(tc.key)); got != tc.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tc.key, got, tc.want)
		}
	}
}

func TestMapMouseToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	press := tea.MouseMsg{X: 12, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	if !km.MapMouseToFrame(press, &frame) {
		t.Error("left press should be a click")
	}
	release := tea.MouseMsg{X: 12, Y: 5, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
	if km.MapMouseToFrame(release, &frame) {
		t.Error("release should not be a click")
	}
	right := tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonRight}
	if km.MapMouseToFrame(right, &frame) {
		t.Error("right press should not be a click")
	}

	if len(frame.Clicks) != 1 || frame.Clicks[0] != (core.Point{X: 12, Y: 5}) {
		t.Errorf("clicks = %v", frame.Clicks)
	}
}

func TestMapKeyToFrameSkipsQuit(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	if !km.MapKeyToFrame(keyMsg("q"), &frame) {
		t.Error("q should quit")
	}
	if frame.Has(core.ActionQuit) {
		t.Error("quit should not be sent to the game")
	}
	km.MapKeyToFrame(keyMsg("r"), &frame)
	if !frame.Has(core.ActionRestart) {
		t.Error("r should set restart")
	}
}
