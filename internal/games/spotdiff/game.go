// Package spotdiff implements the find the differences task.
//
// Levels are played on a fixed display layout (1400×700 by default). The
// terminal frontend maps that layout onto the half-block pixel grid and
// terminal cell clicks back onto it.
package spotdiff

import (
	"errors"

	"github.com/vovakirdan/gazelab/internal/config"
	"github.com/vovakirdan/gazelab/internal/core"
	"github.com/vovakirdan/gazelab/internal/registry"
)

// ID is the registry identifier.
const ID = "spotdiff"

var spotConfig = config.DefaultSpotDiffConfig()

// SetConfig sets the configuration for games created after this call.
func SetConfig(cfg config.SpotDiffConfig) {
	spotConfig = cfg
}

// SetLevelsDir overrides the levels directory for games created after this call.
func SetLevelsDir(dir string) {
	spotConfig.Levels.Dir = dir
}

// Game implements spot the difference for the terminal.
type Game struct {
	cfg     config.SpotDiffConfig
	session *Session
	runtime core.RuntimeConfig
	err     error

	bg, ring, text core.Color
}

// New creates a game using the package configuration.
func New() *Game {
	return NewWithConfig(spotConfig)
}

// NewWithConfig creates a game with an explicit configuration.
func NewWithConfig(cfg config.SpotDiffConfig) *Game {
	return &Game{
		cfg:  cfg,
		bg:   parseColor(cfg.Highlight.Background, core.RGB(220, 220, 220)),
		ring: parseColor(cfg.Highlight.Color, core.RGB(0, 255, 0)),
		text: core.RGB(0, 0, 0),
	}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Find The Differences"
}

// Description returns a one-line summary.
func (g *Game) Description() string {
	return "Click the differences between two images"
}

// TickRate returns the configured frames per second.
func (g *Game) TickRate() int {
	return g.cfg.TickRate
}

// Reset starts again from the first level.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.runtime = cfg
	g.session = NewSession(g.cfg)
	g.err = g.session.Start(g.cfg.Levels.First)
}

// Resize keeps click mapping in step with the terminal size.
func (g *Game) Resize(cfg core.RuntimeConfig) {
	g.runtime = cfg
}

// Step scores this frame's clicks and advances the level timer.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	if g.err != nil || g.session.Done() {
		return core.StepResult{State: g.State()}
	}

	var events []core.Event
	for _, c := range input.Clicks {
		x, y := g.toDisplay(c)
		events = append(events, g.session.Click(x, y)...)
	}
	if err := g.session.Tick(); err != nil {
		g.err = err
	}

	return core.StepResult{State: g.State(), Events: events}
}

// toDisplay maps a terminal cell to the display position at its center.
func (g *Game) toDisplay(c core.Point) (int, int) {
	l := g.session.Layout()
	if g.runtime.ScreenW <= 0 || g.runtime.ScreenH <= 0 {
		return c.X, c.Y
	}
	x := (float64(c.X) + 0.5) * float64(l.Width) / float64(g.runtime.ScreenW)
	y := (float64(c.Y) + 0.5) * float64(l.Height) / float64(g.runtime.ScreenH)
	return int(x), int(y)
}

// Render draws both images, the rings of found regions and the HUD line.
func (g *Game) Render(dst *core.Screen) {
	dst.ClearTo(g.bg)
	if g.session == nil || g.session.Level() == nil {
		if g.err != nil {
			dst.DrawTextCentered(dst.Height()/2, "No levels found")
		}
		return
	}

	l := g.session.Layout()
	w, ph := dst.Width(), dst.PixelHeight()
	if w == 0 || ph == 0 {
		return
	}
	sx := float64(l.Width) / float64(w)
	sy := float64(l.Height) / float64(ph)

	// Rings thinner than a terminal pixel would vanish between samples
	ringWidth := max(float64(g.cfg.Highlight.RingWidth), sx, sy)

	for py := 0; py < ph; py++ {
		for x := 0; x < w; x++ {
			if c, ok := g.sample((float64(x)+0.5)*sx, (float64(py)+0.5)*sy, ringWidth); ok {
				dst.Plot(x, py, c)
			}
		}
	}

	cellH := float64(l.Height) / float64(dst.Height())
	hx := int(float64(l.HUD.X) / sx)
	hy := min(int(float64(l.HUD.Y)/cellH), dst.Height()-1)
	dst.DrawTextColored(hx, hy, g.session.HUD(), g.text, g.bg)
}

// sample returns the color at a display position, or false for background.
func (g *Game) sample(x, y, ringWidth float64) (core.Color, bool) {
	l := g.session.Layout()
	lvl := g.session.Level()
	board := g.session.Board()

	ix, iy := int(x), int(y)
	for i, r := range [...]core.Rect{l.Left, l.Right} {
		if !r.Contains(ix, iy) {
			continue
		}
		lx, ly := x-float64(r.X), y-float64(r.Y)
		for j, region := range board.Regions() {
			if board.IsFound(j) && region.OnRing(lx, ly, ringWidth) {
				return g.ring, true
			}
		}

		img := lvl.Left
		if i == 1 {
			img = lvl.Right
		}
		px := img.RGBAAt(int(lx), int(ly))
		return core.RGB(px.R, px.G, px.B), true
	}
	return 0, false
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	state := core.GameState{Done: g.err != nil}
	if g.session != nil {
		state.Score = g.session.TotalFound()
		state.Done = state.Done || g.session.Done()
	}
	return state
}

// Session returns the underlying level session.
func (g *Game) Session() *Session {
	return g.session
}

// Err returns the error that stopped the game, if any. Running out of
// levels after the first is not an error.
func (g *Game) Err() error {
	return g.err
}

// NoLevels reports whether the game stopped because the first level is missing.
func (g *Game) NoLevels() bool {
	return errors.Is(g.err, ErrNoMoreLevels)
}

func parseColor(s string, fallback core.Color) core.Color {
	c, err := core.ParseHex(s)
	if err != nil {
		return fallback
	}
	return c
}

func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}
