// Package core provides fundamental types and utilities shared by the games
// and the platform layers. It has no external dependencies (no Bubble Tea,
// no Ebiten) so game logic stays pure and testable.
package core

import "math"

// Rect is an axis-aligned rectangle in integer coordinates.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
// The right and bottom edges are exclusive.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// ContainsInclusive is Contains with the right and bottom edges included.
func (r Rect) ContainsInclusive(x, y int) bool {
	return x >= r.X && x <= r.Right() && y >= r.Y && y <= r.Bottom()
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Point is an integer 2D coordinate.
type Point struct {
	X, Y int
}

// Vec is a floating-point 2D coordinate or displacement.
type Vec struct {
	X, Y float64
}

// V is shorthand for Vec{x, y}.
func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v * k.
func (v Vec) Scale(k float64) Vec {
	return Vec{X: v.X * k, Y: v.Y * k}
}

// Len2 returns the squared length of v.
func (v Vec) Len2() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Len returns the length of v.
func (v Vec) Len() float64 {
	return math.Sqrt(v.Len2())
}

// Dist returns the distance between v and o.
func (v Vec) Dist(o Vec) float64 {
	return v.Sub(o).Len()
}

// Trunc truncates both components toward zero.
func (v Vec) Trunc() Point {
	return Point{X: int(v.X), Y: int(v.Y)}
}

// Vec converts p to floating point.
func (p Point) Vec() Vec {
	return Vec{X: float64(p.X), Y: float64(p.Y)}
}

// Circle is a disc in integer coordinates.
type Circle struct {
	X, Y, R int
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c Circle) Contains(x, y int) bool {
	dx := float64(x - c.X)
	dy := float64(y - c.Y)
	return math.Sqrt(dx*dx+dy*dy) <= float64(c.R)
}

// OnRing reports whether (x, y) lies on the circle outline of the given width,
// measured inward from the radius.
func (c Circle) OnRing(x, y float64, width float64) bool {
	d := V(x, y).Dist(V(float64(c.X), float64(c.Y)))
	return d <= float64(c.R) && d >= float64(c.R)-width
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// ClampF restricts a float64 value to be within [lo, hi].
func ClampF(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
