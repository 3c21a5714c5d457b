package core

import (
	"math"
	"testing"
)

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name      string
		x, y      int
		exclusive bool
		inclusive bool
	}{
		{"inside", 15, 15, true, true},
		{"top-left corner", 10, 10, true, true},
		{"bottom-right corner", 30, 25, false, true},
		{"right edge", 30, 12, false, true},
		{"outside left", 5, 15, false, false},
		{"outside right", 35, 15, false, false},
		{"outside top", 15, 5, false, false},
		{"outside bottom", 15, 30, false, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.exclusive {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.exclusive)
			}
			if got := r.ContainsInclusive(tc.x, tc.y); got != tc.inclusive {
				t.Errorf("ContainsInclusive(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.inclusive)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}

	cx, cy := r.Center()
	if cx != 15 || cy != 17 {
		t.Errorf("Center() = (%d, %d), expected (15, 17)", cx, cy)
	}
}

func TestVecOps(t *testing.T) {
	a := V(3, 4)
	b := V(1, 1)

	if got := a.Add(b); got != V(4, 5) {
		t.Errorf("Add = %v", got)
	}
	if got := a.Sub(b); got != V(2, 3) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Scale(2); got != V(6, 8) {
		t.Errorf("Scale = %v", got)
	}
	if a.Len2() != 25 || a.Len() != 5 {
		t.Errorf("Len2 = %f, Len = %f", a.Len2(), a.Len())
	}
	if got := V(0, 0).Dist(a); got != 5 {
		t.Errorf("Dist = %f", got)
	}
}

func TestVecTrunc(t *testing.T) {
	tests := []struct {
		in       Vec
		expected Point
	}{
		{V(1.9, 2.1), Point{1, 2}},
		{V(699.999, 350), Point{699, 350}},
		{V(-0.5, -1.5), Point{0, -1}}, // toward zero
	}

	for _, tc := range tests {
		if got := tc.in.Trunc(); got != tc.expected {
			t.Errorf("Trunc(%v) = %v, expected %v", tc.in, got, tc.expected)
		}
	}
}

func TestCircleContains(t *testing.T) {
	c := Circle{X: 100, Y: 100, R: 10}

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"center", 100, 100, true},
		{"on edge", 110, 100, true},
		{"just outside", 111, 100, false},
		{"diagonal inside", 107, 107, true},
		{"diagonal outside", 108, 108, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := c.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestCircleOnRing(t *testing.T) {
	c := Circle{X: 0, Y: 0, R: 10}

	if !c.OnRing(9, 0, 3) {
		t.Error("point 1 inside the radius should be on a ring of width 3")
	}
	if c.OnRing(5, 0, 3) {
		t.Error("point 5 inside the radius should not be on a ring of width 3")
	}
	if c.OnRing(10.5, 0, 3) {
		t.Error("point outside the radius should not be on the ring")
	}
	if !c.OnRing(10*math.Cos(1), 10*math.Sin(1)-0.5, 3) {
		t.Error("point just inside the circle should be on the ring")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.lo, tc.hi); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.lo, tc.hi, got, tc.expected)
		}
	}

	if got := ClampF(-5.5, 0, 10); got != 0 {
		t.Errorf("ClampF = %f, expected 0", got)
	}
}
