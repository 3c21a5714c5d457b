package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gazelab/internal/registry"
	"github.com/vovakirdan/gazelab/internal/storage"
)

// History layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show page list sidebar
	sidebarWidth       = 24  // Width of page list sidebar
	maxRows            = 100 // Max rows to load per page
)

// RunsPageID is the page ID of the calibration run list.
const RunsPageID = "runs"

// HistoryKeyMap defines the key bindings for the history screen.
type HistoryKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextPage, k.PrevPage, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextPage, k.PrevPage},
		{k.Back, k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev page"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// historyPage is one entry of the sidebar: a program's scores or the run list.
type historyPage struct {
	id    string
	title string
}

// HistoryModel is the Bubble Tea model for the history screen.
type HistoryModel struct {
	pages       []historyPage
	pageCursor  int
	store       *storage.Store
	rowCount    int
	footer      []string // per-level click accuracy on spotdiff pages
	table       table.Model
	help        help.Model
	keys        HistoryKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool // True if user pressed back (not quit)
	showSidebar bool
}

// NewHistoryModel creates a history model opened on the given page.
// An unknown page opens the first one.
func NewHistoryModel(store *storage.Store, width, height int, pageID string) HistoryModel {
	var pages []historyPage
	for _, g := range registry.List() {
		pages = append(pages, historyPage{id: g.ID, title: g.Title})
	}
	pages = append(pages, historyPage{id: RunsPageID, title: "Calibration runs"})

	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		pages:       pages,
		store:       store,
		keys:        DefaultHistoryKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	for i, p := range pages {
		if p.id == pageID {
			m.pageCursor = i
		}
	}
	m.load()
	return m
}

func (m HistoryModel) current() historyPage {
	return m.pages[m.pageCursor]
}

// load rebuilds the table for the current page.
func (m *HistoryModel) load() {
	page := m.current()
	var columns []table.Column
	var rows []table.Row
	m.footer = nil

	if page.id == RunsPageID {
		columns = []table.Column{
			{Title: "Started", Width: 14},
			{Title: "Sweeps", Width: 7},
			{Title: "Status", Width: 10},
			{Title: "Time", Width: 7},
			{Title: "Recording", Width: 24},
		}
		rows = m.runRows()
	} else {
		columns = []table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Score", Width: 10},
			{Title: "Date", Width: 18},
		}
		rows = m.scoreRows(page.id)
		m.footer = m.clickFooter(page.id)
	}

	m.rowCount = len(rows)
	m.table = m.createTable(columns)
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// createTable creates a table sized for the current window.
func (m *HistoryModel) createTable(columns []table.Column) table.Model {
	tableWidth := m.width - 4 // Margins
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3 // Sidebar + border + gap
	}

	// Last column takes what is left, up to a limit
	used := 0
	for _, c := range columns[:len(columns)-1] {
		used += c.Width + 2
	}
	if rest := tableWidth - used - 2; rest > columns[len(columns)-1].Width {
		columns[len(columns)-1].Width = min(rest, 40)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10-len(m.footer), 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m *HistoryModel) scoreRows(gameID string) []table.Row {
	if m.store == nil {
		return nil
	}
	scores, err := m.store.TopScores(gameID, maxRows)
	if err != nil {
		return nil
	}
	rows := make([]table.Row, len(scores))
	for i, s := range scores {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", s.Score),
			s.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	return rows
}

func (m *HistoryModel) runRows() []table.Row {
	if m.store == nil {
		return nil
	}
	runs, err := m.store.RecentRuns(maxRows)
	if err != nil {
		return nil
	}
	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		status := "complete"
		switch {
		case r.Error != "":
			status = "error"
		case !r.Completed:
			status = "quit"
		}
		recording := r.RecordingLocation
		if recording == "" {
			recording = "-"
		}
		rows[i] = table.Row{
			r.StartedAt.Local().Format("Jan 02 15:04"),
			fmt.Sprintf("%d", r.Sweeps),
			status,
			r.Duration().Round(time.Second).String(),
			recording,
		}
	}
	return rows
}

func (m *HistoryModel) clickFooter(gameID string) []string {
	if m.store == nil {
		return nil
	}
	stats, err := m.store.ClickStats(gameID)
	if err != nil {
		return nil
	}
	lines := make([]string, 0, len(stats))
	for _, l := range stats {
		lines = append(lines, fmt.Sprintf("Level %d: %d/%d clicks correct (%.0f%%)",
			l.Level, l.Correct, l.Clicks, 100*l.Accuracy()))
	}
	return lines
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextPage):
			m.pageCursor = (m.pageCursor + 1) % len(m.pages)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.PrevPage):
			m.pageCursor = (m.pageCursor + len(m.pages) - 1) % len(m.pages)
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.help.Width = msg.Width
		m.load()
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history screen.
func (m HistoryModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	title := "HISTORY - " + m.current().title
	b.WriteString(centerStyled(titleStyle, title, m.width))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	if len(m.footer) > 0 {
		b.WriteString("\n")
		for _, line := range m.footer {
			b.WriteString(dimStyle.Render(line))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the table with a sidebar for page selection.
func (m HistoryModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Pages\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, p := range m.pages {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.pageCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}

		name := p.title
		if maxLen := sidebarWidth - 6; len(name) > maxLen {
			name = name[:maxLen-1] + "."
		}
		sidebar.WriteString(style.Render(cursor + name))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()), "  ", tableStyle.Render(m.renderTableContent()))
}

// renderNarrowLayout renders the current page name with arrows above the table.
func (m HistoryModel) renderNarrowLayout() string {
	var b strings.Builder

	b.WriteString(centerText(fmt.Sprintf("< %s >", m.current().title), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	b.WriteString(tableStyle.Render(m.renderTableContent()))
	return b.String()
}

// renderTableContent renders the table or empty message.
func (m HistoryModel) renderTableContent() string {
	if m.rowCount == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		if m.current().id == RunsPageID {
			return emptyStyle.Render("No calibration runs recorded yet.")
		}
		return emptyStyle.Render("No scores recorded yet.")
	}

	return m.table.View()
}

// Rows returns the number of rows on the current page.
func (m HistoryModel) Rows() int {
	return m.rowCount
}

// Page returns the current page ID.
func (m HistoryModel) Page() string {
	return m.current().id
}

// Footer returns the lines shown under the table.
func (m HistoryModel) Footer() []string {
	return m.footer
}

// IsGoingBack returns true if user wants to go back to menu.
func (m HistoryModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m HistoryModel) IsQuitting() bool {
	return m.quitting
}

// RunHistory runs the history screen opened on pageID.
// Returns true if user wants to go back to menu, false if quitting.
func RunHistory(store *storage.Store, width, height int, pageID string) (goBack bool, err error) {
	p := tea.NewProgram(
		NewHistoryModel(store, width, height, pageID),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(HistoryModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
