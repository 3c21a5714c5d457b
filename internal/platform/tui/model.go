package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gazelab/internal/core"
	"github.com/vovakirdan/gazelab/internal/registry"
	"github.com/vovakirdan/gazelab/internal/storage"
)

// RunOptions configures a terminal run.
type RunOptions struct {
	Store *storage.Store // score persistence, may be nil
	Sink  core.Sink      // receives every game event, may be nil

	// Renderer styles cells, for programs whose output is not stdout
	// (SSH sessions). Nil uses the default renderer.
	Renderer *lipgloss.Renderer
}

// RunResult describes how a run ended.
type RunResult struct {
	State   core.GameState
	Quit    bool // user quit before the game finished
	Ticks   int
	SinkErr error // first event recording failure
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	sink       core.Sink
	config     core.RuntimeConfig
	keys       *KeyMapper
	styles     *styleCache
	loop       uint64
	inputFrame core.InputFrame
	gameState  core.GameState
	started    bool // first tick has run; later resizes no longer reset
	paused     bool
	quitting   bool
	finished   bool
	scoreSaved bool // Whether score has been saved for the current run
	ticks      int
	sinkErr    error
}

// NewModel creates a new Bubble Tea model for the given game.
// A zero tick rate in cfg falls back to the game's own rate.
func NewModel(game registry.Game, opts RunOptions, cfg core.RuntimeConfig) Model {
	if tr, ok := game.(registry.TickRater); ok && cfg.TickRate <= 0 {
		cfg.TickRate = tr.TickRate()
	}
	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      opts.Store,
		sink:       opts.Sink,
		config:     cfg,
		keys:       NewKeyMapper(),
		styles:     newStyleCache(opts.Renderer),
		loop:       nextLoopID(),
		inputFrame: core.NewInputFrame(),
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate, m.loop)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.keys.MapMouseToFrame(msg, &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.loop != m.loop {
			return m, nil
		}
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	// The initial size arrives before the first tick; games sized from it
	// start over. After that only games that can follow a resize are told.
	if !m.started {
		m.game.Reset(m.config)
	} else if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(m.config)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.finished || m.quitting {
		return m, nil
	}

	// Restart begins the game again from its first state, unpaused
	if m.inputFrame.Has(core.ActionRestart) {
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.paused = false
		m.scoreSaved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate, m.loop)
	}

	if m.inputFrame.Has(core.ActionPause) {
		m.paused = !m.paused
	}
	if m.paused {
		// Clicks made while paused are dropped
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate, m.loop)
	}

	result := m.game.Step(m.inputFrame)
	m.started = true
	m.ticks++
	m.gameState = result.State
	m.record(result.Events)

	if m.gameState.Done && !m.scoreSaved {
		if m.store != nil && m.gameState.Score > 0 {
			//nolint:errcheck // Best-effort save, game continues regardless
			m.store.SaveScore(m.game.ID(), m.gameState.Score)
		}
		m.scoreSaved = true
	}

	m.inputFrame.Clear()

	if m.gameState.Done {
		m.finished = true
		return m, tea.Quit
	}
	return m, tickCmd(m.config.TickRate, m.loop)
}

// record sends events to the sink, keeping the first failure.
func (m *Model) record(events []core.Event) {
	if m.sink == nil || len(events) == 0 {
		return
	}
	now := time.Now()
	for _, ev := range events {
		if err := m.sink.Record(now, m.game.ID(), ev); err != nil && m.sinkErr == nil {
			m.sinkErr = err
		}
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".gazelab", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.finished {
		return ""
	}

	m.game.Render(m.screen)
	if m.paused {
		m.screen.DrawTextCentered(m.screen.Height()/2, " Paused - P to resume, R to restart ")
	}
	return renderScreen(m.screen, m.styles)
}

// Paused reports whether the run is paused.
func (m Model) Paused() bool {
	return m.paused
}

// Result summarizes the run so far.
func (m Model) Result() RunResult {
	return RunResult{
		State:   m.gameState,
		Quit:    m.quitting,
		Ticks:   m.ticks,
		SinkErr: m.sinkErr,
	}
}

// Run starts the Bubble Tea program for the game and blocks until the game
// finishes or the user quits.
func Run(game registry.Game, opts RunOptions, cfg core.RuntimeConfig) (RunResult, error) {
	model := NewModel(game, opts, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()
	if err != nil {
		return RunResult{}, err
	}
	if m, ok := final.(Model); ok {
		return m.Result(), nil
	}
	return RunResult{}, nil
}
