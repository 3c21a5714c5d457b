// Package dotsweep runs the calibration sweep as a platform game.
// The dot moves in display units; each terminal half-block pixel covers
// PixelSize × PixelSize units, so a terminal of W×H cells is a display of
// W·p × 2H·p units.
package dotsweep

import (
	"github.com/vovakirdan/gazelab/internal/calibration"
	"github.com/vovakirdan/gazelab/internal/config"
	"github.com/vovakirdan/gazelab/internal/core"
	"github.com/vovakirdan/gazelab/internal/registry"
)

// ID is the registry identifier.
const ID = "dotsweep"

// sweepConfig is the configuration used by registry-created games.
var sweepConfig = config.DefaultDotSweepConfig()

// SetConfig sets the configuration for games created after this call.
func SetConfig(cfg config.DotSweepConfig) {
	sweepConfig = cfg
}

// Game implements the calibration sweep.
type Game struct {
	cfg     config.DotSweepConfig
	params  calibration.Params
	state   calibration.State
	runtime core.RuntimeConfig
	dot     core.Color
	bg      core.Color
	ticks   int
	err     error
}

// New creates a sweep using the package configuration.
func New() *Game {
	return NewWithConfig(sweepConfig)
}

// NewWithConfig creates a sweep with an explicit configuration.
func NewWithConfig(cfg config.DotSweepConfig) *Game {
	g := &Game{cfg: cfg}
	g.dot = parseColor(cfg.Display.DotColor, core.RGB(255, 0, 0))
	g.bg = parseColor(cfg.Display.Background, core.RGB(0, 0, 0))
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Gaze Calibration"
}

// Description returns a one-line summary.
func (g *Game) Description() string {
	return "Dot sweeps through eight directions for eye-tracker calibration"
}

// TickRate returns the configured frames per second.
func (g *Game) TickRate() int {
	return g.cfg.Motion.TickRate
}

// Params returns the controller parameters for a terminal of the given size.
func Params(cfg config.DotSweepConfig, screenW, screenH int) (calibration.Params, error) {
	arrival, err := calibration.ParseArrival(cfg.Arrival.Mode)
	if err != nil {
		return calibration.Params{}, err
	}
	px := cfg.Display.PixelSize
	p := calibration.Params{
		Width:   screenW * px,
		Height:  screenH * 2 * px,
		Speed:   cfg.Motion.Speed,
		Radius:  cfg.Motion.Radius,
		Arrival: arrival,
		Epsilon: cfg.Arrival.Epsilon,
	}
	if err := p.Validate(); err != nil {
		return calibration.Params{}, err
	}
	return p, nil
}

// Reset starts a new sweep sized to the screen. Invalid parameters stop
// the game; Err reports why.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.runtime = cfg
	g.ticks = 0
	g.params, g.err = Params(g.cfg, cfg.ScreenW, cfg.ScreenH)
	g.state = calibration.NewState(g.params)
}

// Step advances the dot by one frame.
func (g *Game) Step(_ core.InputFrame) core.StepResult {
	if g.err != nil || g.state.Done() {
		return core.StepResult{State: g.State()}
	}

	g.ticks++
	before := g.state
	g.state = calibration.Step(g.state, g.params)

	return core.StepResult{State: g.State(), Events: SweepEvents(before, g.state)}
}

// SweepEvents returns the event for a step from before to after: a
// SweepEvent when the step completed a sweep, nothing otherwise.
func SweepEvents(before, after calibration.State) []core.Event {
	if after.Sweeps <= before.Sweeps {
		return nil
	}
	d := before.Direction()
	return []core.Event{core.SweepEvent{
		Index: before.Index,
		DX:    d.DX,
		DY:    d.DY,
		Last:  after.Done(),
	}}
}

// Render draws the dot on a plain background.
func (g *Game) Render(dst *core.Screen) {
	dst.ClearTo(g.bg)
	if g.err != nil {
		dst.DrawTextColored(0, dst.Height()/2, "Invalid sweep parameters: "+g.err.Error(), g.dot, g.bg)
		return
	}

	px := float64(g.cfg.Display.PixelSize)
	if px <= 0 {
		return
	}
	pos := g.state.Pos
	r := g.params.Radius

	// Only scan the pixels under the dot's bounding box
	x0 := int((pos.X - r) / px)
	x1 := int((pos.X + r) / px)
	y0 := int((pos.Y - r) / px)
	y1 := int((pos.Y + r) / px)

	for py := y0; py <= y1; py++ {
		for x := x0; x <= x1; x++ {
			center := core.V((float64(x)+0.5)*px, (float64(py)+0.5)*px)
			if center.Dist(pos) <= r {
				dst.Plot(x, py, g.dot)
			}
		}
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score: g.state.Sweeps,
		Done:  g.err != nil || g.state.Done(),
	}
}

// Err returns the parameter error that stopped the sweep, if any.
func (g *Game) Err() error {
	return g.err
}

// Controller returns the controller snapshot.
func (g *Game) Controller() calibration.State {
	return g.state
}

// Ticks returns the number of frames stepped since Reset.
func (g *Game) Ticks() int {
	return g.ticks
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
