// Package desktop runs the stimulus programs in a native window with Ebiten.
//
// Programs are drawn at their logical resolution and Ebiten scales them to
// the window, so pointer positions arrive in logical coordinates.
package desktop

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/gazelab/internal/core"
)

// Window sizes used when not running full screen.
const (
	DefaultWidth  = 1400
	DefaultHeight = 700
)

// Options configures a desktop run.
type Options struct {
	Title      string
	Fullscreen bool
	TickRate   int
	Sink       core.Sink // receives every event, may be nil
}

// Result describes how a desktop run ended.
type Result struct {
	Quit    bool // user quit before the program finished
	Ticks   int
	Score   int
	SinkErr error
}

// program is an ebiten.Game that reports how it ended.
type program interface {
	ebiten.Game
	result() Result
}

// DisplaySize returns the logical size of the display for a run: the
// monitor in full screen, the default window otherwise.
func DisplaySize(fullscreen bool) (int, int) {
	if fullscreen {
		if m := ebiten.Monitor(); m != nil {
			if w, h := m.Size(); w > 0 && h > 0 {
				return w, h
			}
		}
	}
	return DefaultWidth, DefaultHeight
}

func run(p program, w, h int, opts Options) (Result, error) {
	tps := opts.TickRate
	if tps <= 0 {
		tps = 60
	}
	ebiten.SetTPS(tps)
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowSize(w, h)
	ebiten.SetFullscreen(opts.Fullscreen)

	if err := ebiten.RunGame(p); err != nil && !errors.Is(err, ebiten.Termination) {
		return p.result(), fmt.Errorf("desktop: %w", err)
	}
	return p.result(), nil
}

// quitPressed reports whether a quit key went down this frame.
func quitPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyEscape) ||
		inpututil.IsKeyJustPressed(ebiten.KeyQ) ||
		(ebiten.IsKeyPressed(ebiten.KeyControl) && inpututil.IsKeyJustPressed(ebiten.KeyC))
}

// controls tracks the pause and restart keys.
type controls struct {
	paused bool
}

// update reads this frame's keys and reports whether a restart was asked
// for. A restart also resumes.
func (c *controls) update() bool {
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		c.paused = false
		return true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		c.paused = !c.paused
	}
	return false
}

const pausedBanner = "Paused - P to resume, R to restart"

// events forwards events to a sink and keeps the first failure.
type events struct {
	sink core.Sink
	id   string
	err  error
}

func (e *events) record(evs []core.Event) {
	if e.sink == nil || len(evs) == 0 {
		return
	}
	now := time.Now()
	for _, ev := range evs {
		if err := e.sink.Record(now, e.id, ev); err != nil && e.err == nil {
			e.err = err
		}
	}
}

func rgba(c core.Color) color.RGBA {
	r, g, b := c.RGBA()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

func parseColor(s string, fallback core.Color) color.RGBA {
	c, err := core.ParseHex(s)
	if err != nil {
		return rgba(fallback)
	}
	return rgba(c)
}
