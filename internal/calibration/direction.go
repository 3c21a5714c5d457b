// Package calibration implements the moving-dot calibration sweep.
//
// A dot starts at the center of the display and travels along each of eight
// fixed directions in turn. Axis-aligned sweeps bounce straight back to the
// center; diagonal sweeps first relay through the midpoint of the edge
// opposite their direction of travel. The run ends after the last sweep.
//
// The package is pure: State is a value and Step computes the next one.
package calibration

import "github.com/vovakirdan/gazelab/internal/core"

// Direction is a unit travel direction with integer components.
type Direction struct {
	DX, DY int
}

// Sequence is the fixed order of sweep directions.
var Sequence = [...]Direction{
	{1, 0},
	{-1, 0},
	{0, 1},
	{0, -1},
	{1, 1},
	{-1, 1},
	{1, -1},
	{-1, -1},
}

// LastIndex is the index of the final sweep.
const LastIndex = len(Sequence) - 1

// Vec returns the direction as a displacement.
func (d Direction) Vec() core.Vec {
	return core.V(float64(d.DX), float64(d.DY))
}

// IsAxisAligned reports whether exactly one component is zero.
func (d Direction) IsAxisAligned() bool {
	return d.DX == 0 || d.DY == 0
}

// String returns a compass-style label like "E" or "SW".
func (d Direction) String() string {
	ns := ""
	switch d.DY {
	case -1:
		ns = "N"
	case 1:
		ns = "S"
	}
	ew := ""
	switch d.DX {
	case -1:
		ew = "W"
	case 1:
		ew = "E"
	}
	return ns + ew
}

// OppositeEdge returns the edge midpoint a diagonal sweep relays through.
// The pairing is a fixed table, not derived from the direction.
// Returns false for axis-aligned directions.
func OppositeEdge(d Direction, w, h int) (core.Point, bool) {
	switch d {
	case Direction{1, 1}:
		return core.Point{X: 0, Y: h / 2}, true
	case Direction{-1, 1}:
		return core.Point{X: w / 2, Y: 0}, true
	case Direction{1, -1}:
		return core.Point{X: w / 2, Y: h}, true
	case Direction{-1, -1}:
		return core.Point{X: w, Y: h / 2}, true
	}
	return core.Point{}, false
}
