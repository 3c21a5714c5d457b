package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gazelab/internal/core"
)

type colorPair struct {
	fg, bg core.Color
}

// styleCache maps cell colors to lipgloss styles. It is not safe for
// concurrent use; each program keeps its own.
type styleCache struct {
	renderer *lipgloss.Renderer // nil for the default renderer
	styles   map[colorPair]lipgloss.Style
}

func newStyleCache(r *lipgloss.Renderer) *styleCache {
	return &styleCache{renderer: r, styles: make(map[colorPair]lipgloss.Style)}
}

func (c *styleCache) style(p colorPair) lipgloss.Style {
	if s, ok := c.styles[p]; ok {
		return s
	}
	var s lipgloss.Style
	if c.renderer != nil {
		s = c.renderer.NewStyle()
	} else {
		s = lipgloss.NewStyle()
	}
	if p.fg != core.ColorDefault {
		s = s.Foreground(lipgloss.Color(p.fg.Hex()))
	}
	if p.bg != core.ColorDefault {
		s = s.Background(lipgloss.Color(p.bg.Hex()))
	}
	if len(c.styles) < 4096 {
		c.styles[p] = s
	}
	return s
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	return renderScreen(s, newStyleCache(nil))
}

func renderScreen(s *core.Screen, cache *styleCache) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			start := colorPair{cell.Fg, cell.Bg}

			run.Reset()
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if (colorPair{cell.Fg, cell.Bg}) != start {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(cache.style(start).Render(run.String()))
		}
	}
	return sb.String()
}
