package spotdiff

import (
	"github.com/vovakirdan/gazelab/internal/config"
	"github.com/vovakirdan/gazelab/internal/core"
)

// Layout places the two images and the HUD on the display.
type Layout struct {
	Width, Height int
	Left, Right   core.Rect
	HUD           core.Point
}

// LayoutFromConfig builds the layout from config.
func LayoutFromConfig(cfg config.SpotDiffConfig) Layout {
	w, h := cfg.Images.Width, cfg.Images.Height
	return Layout{
		Width:  cfg.Screen.Width,
		Height: cfg.Screen.Height,
		Left:   core.NewRect(cfg.Images.Left.X, cfg.Images.Left.Y, w, h),
		Right:  core.NewRect(cfg.Images.Right.X, cfg.Images.Right.Y, w, h),
		HUD:    core.Point{X: cfg.HUD.X, Y: cfg.HUD.Y},
	}
}

// Locate converts a display position to coordinates local to the image
// under it. Both edges of each image count as inside; the left image wins
// if they overlap.
func (l Layout) Locate(x, y int) (lx, ly int, ok bool) {
	for _, r := range [...]core.Rect{l.Left, l.Right} {
		if r.ContainsInclusive(x, y) {
			return x - r.X, y - r.Y, true
		}
	}
	return 0, 0, false
}

// Board tracks which regions of one level have been found.
type Board struct {
	regions []core.Circle
	found   []bool
	count   int
	misses  int
}

// NewBoard creates a board with nothing found.
func NewBoard(regions []core.Circle) *Board {
	return &Board{
		regions: regions,
		found:   make([]bool, len(regions)),
	}
}

// Hit scores a click at image-local coordinates. The first region not yet
// found that contains the point is marked found and its index returned.
// Otherwise the click is counted as a miss and -1 returned.
func (b *Board) Hit(lx, ly int) int {
	for i, r := range b.regions {
		if b.found[i] {
			continue
		}
		if r.Contains(lx, ly) {
			b.found[i] = true
			b.count++
			return i
		}
	}
	b.misses++
	return -1
}

// Miss counts a click that landed outside both images.
func (b *Board) Miss() {
	b.misses++
}

// Regions returns the difference regions.
func (b *Board) Regions() []core.Circle {
	return b.regions
}

// IsFound reports whether region i has been found.
func (b *Board) IsFound(i int) bool {
	return i >= 0 && i < len(b.found) && b.found[i]
}

// Found returns the number of regions found.
func (b *Board) Found() int {
	return b.count
}

// Total returns the number of regions.
func (b *Board) Total() int {
	return len(b.regions)
}

// Misses returns the number of clicks that found nothing.
func (b *Board) Misses() int {
	return b.misses
}

// Complete reports whether every region has been found.
func (b *Board) Complete() bool {
	return b.count == len(b.regions)
}
