package calibration

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/gazelab/internal/core"
)

// ErrInvalidParams is returned by Params.Validate.
var ErrInvalidParams = errors.New("calibration: invalid parameters")

// Mode is the controller state.
type Mode int

const (
	ModeMoving         Mode = iota // Travelling along the current direction
	ModeToEdge                     // Relaying to the opposite edge midpoint (diagonals)
	ModeReturnToCenter             // Heading back to the display center
	ModeDone                       // Last sweep finished
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeMoving:
		return "MOVING"
	case ModeToEdge:
		return "TO_EDGE"
	case ModeReturnToCenter:
		return "RETURN_TO_CENTER"
	case ModeDone:
		return "DONE"
	default:
		return "UNKNOWN"
	}
}

// Arrival selects how reaching a target is detected.
type Arrival int

const (
	// ArrivalEpsilon treats any position within Epsilon of the target as
	// arrived and snaps onto it.
	ArrivalEpsilon Arrival = iota
	// ArrivalTruncate compares integer-truncated coordinates with the target.
	ArrivalTruncate
)

// ParseArrival maps a config string to an Arrival.
func ParseArrival(s string) (Arrival, error) {
	switch s {
	case "", "epsilon":
		return ArrivalEpsilon, nil
	case "truncate":
		return ArrivalTruncate, nil
	}
	return ArrivalEpsilon, fmt.Errorf("%w: unknown arrival mode %q", ErrInvalidParams, s)
}

// Params are the fixed inputs of a run.
type Params struct {
	Width, Height int     // Display bounds
	Speed         float64 // Distance moved per step
	Radius        float64 // Visual dot radius used for boundary contact
	Arrival       Arrival
	Epsilon       float64 // Arrival distance for ArrivalEpsilon
}

// Validate checks that a run with these params terminates.
func (p Params) Validate() error {
	switch {
	case p.Width <= 0 || p.Height <= 0:
		return fmt.Errorf("%w: bounds %dx%d", ErrInvalidParams, p.Width, p.Height)
	case p.Speed <= 0 || math.IsNaN(p.Speed) || math.IsInf(p.Speed, 0):
		return fmt.Errorf("%w: speed %v", ErrInvalidParams, p.Speed)
	case p.Radius < 0:
		return fmt.Errorf("%w: radius %v", ErrInvalidParams, p.Radius)
	case p.Epsilon < 0:
		return fmt.Errorf("%w: epsilon %v", ErrInvalidParams, p.Epsilon)
	}
	return nil
}

// Center returns the display center using integer division.
func (p Params) Center() core.Point {
	return core.Point{X: p.Width / 2, Y: p.Height / 2}
}

// State is a snapshot of the controller.
type State struct {
	Pos    core.Vec
	Mode   Mode
	Index  int        // Position in Sequence
	Target core.Point // Meaningful in ModeToEdge and ModeReturnToCenter
	Sweeps int        // Completed sweeps
}

// NewState returns the initial state: at center, moving along Sequence[0].
func NewState(p Params) State {
	return State{
		Pos:  p.Center().Vec(),
		Mode: ModeMoving,
	}
}

// Direction returns the direction of the current sweep.
func (s State) Direction() Direction {
	return Sequence[s.Index]
}

// Done reports whether the run has finished.
func (s State) Done() bool {
	return s.Mode == ModeDone
}

// Step advances the controller by one frame.
func Step(s State, p Params) State {
	switch s.Mode {
	case ModeMoving:
		s.Pos = s.Pos.Add(s.Direction().Vec().Scale(p.Speed))
		if !touchesBoundary(s.Pos, p) {
			return s
		}
		if edge, ok := OppositeEdge(s.Direction(), p.Width, p.Height); ok {
			s.Target = edge
			s.Mode = ModeToEdge
		} else {
			s.Target = p.Center()
			s.Mode = ModeReturnToCenter
		}

	case ModeToEdge:
		var arrived bool
		s.Pos, arrived = advance(s.Pos, s.Target, p)
		if arrived {
			s.Target = p.Center()
			s.Mode = ModeReturnToCenter
		}

	case ModeReturnToCenter:
		var arrived bool
		s.Pos, arrived = advance(s.Pos, p.Center(), p)
		if !arrived {
			return s
		}
		s.Sweeps++
		if s.Index == LastIndex {
			s.Mode = ModeDone
			return s
		}
		s.Index++
		s.Mode = ModeMoving
	}
	return s
}

// Run steps from the initial state until the run is done or visit returns
// false, and returns the final state.
func Run(p Params, visit func(State) bool) State {
	s := NewState(p)
	for !s.Done() {
		s = Step(s, p)
		if visit != nil && !visit(s) {
			break
		}
	}
	return s
}

func touchesBoundary(pos core.Vec, p Params) bool {
	return pos.X-p.Radius <= 0 ||
		pos.X+p.Radius >= float64(p.Width) ||
		pos.Y-p.Radius <= 0 ||
		pos.Y+p.Radius >= float64(p.Height)
}

func advance(pos core.Vec, target core.Point, p Params) (core.Vec, bool) {
	t := target.Vec()
	pos = MoveTowards(pos, t, p.Speed)

	if p.Arrival == ArrivalTruncate {
		return pos, pos.Trunc() == target
	}
	if pos.Dist(t) <= p.Epsilon {
		return t, true
	}
	return pos, false
}

// MoveTowards moves pos up to v units toward target without overshooting.
// When the target is within v it returns the target exactly.
func MoveTowards(pos, target core.Vec, v float64) core.Vec {
	d := target.Sub(pos)
	dist2 := d.Len2()
	if dist2 <= v*v {
		return target
	}
	dist := math.Sqrt(dist2)
	return pos.Add(d.Scale(v / dist))
}
