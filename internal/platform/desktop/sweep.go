package desktop

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/gazelab/internal/calibration"
	"github.com/vovakirdan/gazelab/internal/config"
	"github.com/vovakirdan/gazelab/internal/core"
	"github.com/vovakirdan/gazelab/internal/games/dotsweep"
)

// sweep draws the calibration dot on a plain background.
type sweep struct {
	params   calibration.Params
	state    calibration.State
	dot, bg  color.RGBA
	events   events
	controls controls
	ticks    int
	quit     bool
}

func (s *sweep) Update() error {
	if quitPressed() {
		s.quit = true
		return ebiten.Termination
	}
	if s.state.Done() {
		return ebiten.Termination
	}
	if s.controls.update() {
		s.state = calibration.NewState(s.params)
	}
	if s.controls.paused {
		return nil
	}

	before := s.state
	s.state = calibration.Step(s.state, s.params)
	s.ticks++
	s.events.record(dotsweep.SweepEvents(before, s.state))
	return nil
}

func (s *sweep) Draw(screen *ebiten.Image) {
	screen.Fill(s.bg)
	vector.DrawFilledCircle(screen,
		float32(s.state.Pos.X), float32(s.state.Pos.Y), float32(s.params.Radius),
		s.dot, true)
	if s.controls.paused {
		ebitenutil.DebugPrintAt(screen, pausedBanner, 8, 8)
	}
}

func (s *sweep) Layout(_, _ int) (int, int) {
	return s.params.Width, s.params.Height
}

func (s *sweep) result() Result {
	return Result{
		Quit:    s.quit && !s.state.Done(),
		Ticks:   s.ticks,
		Score:   s.state.Sweeps,
		SinkErr: s.events.err,
	}
}

// RunSweep runs the calibration sweep in a window until the last sweep
// returns to center or the user quits.
func RunSweep(cfg config.DotSweepConfig, opts Options) (Result, error) {
	arrival, err := calibration.ParseArrival(cfg.Arrival.Mode)
	if err != nil {
		return Result{}, err
	}
	w, h := DisplaySize(opts.Fullscreen)
	params := calibration.Params{
		Width:   w,
		Height:  h,
		Speed:   cfg.Motion.Speed,
		Radius:  cfg.Motion.Radius,
		Arrival: arrival,
		Epsilon: cfg.Arrival.Epsilon,
	}
	if err := params.Validate(); err != nil {
		return Result{}, err
	}
	if opts.TickRate <= 0 {
		opts.TickRate = cfg.Motion.TickRate
	}

	s := &sweep{
		params: params,
		state:  calibration.NewState(params),
		dot:    parseColor(cfg.Display.DotColor, core.RGB(255, 0, 0)),
		bg:     parseColor(cfg.Display.Background, core.RGB(0, 0, 0)),
		events: events{sink: opts.Sink, id: dotsweep.ID},
	}
	return run(s, w, h, opts)
}
