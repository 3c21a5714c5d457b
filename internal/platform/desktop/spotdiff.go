package desktop

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/gazelab/internal/config"
	"github.com/vovakirdan/gazelab/internal/core"
	"github.com/vovakirdan/gazelab/internal/games/spotdiff"
)

// spotDiff shows a level's two images side by side and scores clicks.
type spotDiff struct {
	session  *spotdiff.Session
	first    int
	bg, ring color.RGBA
	ringW    float32
	events   events
	controls controls
	ticks    int
	quit     bool

	// GPU copies of the current level's images
	loaded      int
	left, right *ebiten.Image
}

func (g *spotDiff) Update() error {
	if quitPressed() {
		g.quit = true
		return ebiten.Termination
	}
	if g.session.Done() {
		return ebiten.Termination
	}
	if g.controls.update() {
		if err := g.session.Start(g.first); err != nil {
			return err
		}
	}
	if g.controls.paused {
		return nil
	}

	g.ticks++
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.events.record(g.session.Click(x, y))
	}
	if err := g.session.Tick(); err != nil {
		return err
	}
	return nil
}

func (g *spotDiff) Draw(screen *ebiten.Image) {
	screen.Fill(g.bg)
	lvl := g.session.Level()
	if lvl == nil {
		return
	}
	if g.loaded != lvl.Number || g.left == nil {
		g.left = ebiten.NewImageFromImage(lvl.Left)
		g.right = ebiten.NewImageFromImage(lvl.Right)
		g.loaded = lvl.Number
	}

	l := g.session.Layout()
	board := g.session.Board()
	for _, side := range []struct {
		img  *ebiten.Image
		rect core.Rect
	}{{g.left, l.Left}, {g.right, l.Right}} {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(side.rect.X), float64(side.rect.Y))
		screen.DrawImage(side.img, op)

		for i, r := range board.Regions() {
			if !board.IsFound(i) {
				continue
			}
			// Rings sit inside the region outline, as in the terminal.
			vector.StrokeCircle(screen,
				float32(side.rect.X+r.X), float32(side.rect.Y+r.Y), float32(r.R)-g.ringW/2,
				g.ringW, g.ring, true)
		}
	}

	// DebugPrint is white on the grey background; a dark plate keeps it legible.
	hud := g.session.HUD()
	vector.DrawFilledRect(screen, float32(l.HUD.X-4), float32(l.HUD.Y-2),
		float32(len(hud)*6+8), 20, color.RGBA{A: 0xc0}, false)
	ebitenutil.DebugPrintAt(screen, hud, l.HUD.X, l.HUD.Y)
	if g.controls.paused {
		ebitenutil.DebugPrintAt(screen, pausedBanner, l.HUD.X, l.HUD.Y-24)
	}
}

func (g *spotDiff) Layout(_, _ int) (int, int) {
	l := g.session.Layout()
	return l.Width, l.Height
}

func (g *spotDiff) result() Result {
	return Result{
		Quit:    g.quit && !g.session.Done(),
		Ticks:   g.ticks,
		Score:   g.session.TotalFound(),
		SinkErr: g.events.err,
	}
}

// RunSpotDiff plays levels from the first configured level until the
// levels run out or the user quits. The window uses the configured layout
// size and is scaled to full screen when asked.
func RunSpotDiff(cfg config.SpotDiffConfig, opts Options) (Result, error) {
	session := spotdiff.NewSession(cfg)
	if err := session.Start(cfg.Levels.First); err != nil {
		return Result{}, fmt.Errorf("desktop: %w", err)
	}
	if opts.TickRate <= 0 {
		opts.TickRate = cfg.TickRate
	}

	g := &spotDiff{
		session: session,
		first:   cfg.Levels.First,
		bg:      parseColor(cfg.Highlight.Background, core.RGB(220, 220, 220)),
		ring:    parseColor(cfg.Highlight.Color, core.RGB(0, 255, 0)),
		ringW:   float32(max(cfg.Highlight.RingWidth, 1)),
		events:  events{sink: opts.Sink, id: spotdiff.ID},
	}
	l := session.Layout()
	return run(g, l.Width, l.Height, opts)
}
