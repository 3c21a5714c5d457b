package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}
	if s.PixelHeight() != 48 {
		t.Errorf("PixelHeight() = %d, expected 48", s.PixelHeight())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if s.Get(x, y) != ' ' {
				t.Fatalf("New screen should be filled with spaces, got %q at (%d, %d)", s.Get(x, y), x, y)
			}
		}
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.Set(5, 5, 'X')
	if s.Get(5, 5) != 'X' {
		t.Errorf("Get(5, 5) = %q, expected 'X'", s.Get(5, 5))
	}

	// Out of bounds should be silent
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.Get(-1, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
	if s.Get(100, 0) != ' ' {
		t.Error("Out of bounds Get should return space")
	}
}

func TestScreenClearTo(t *testing.T) {
	s := NewScreen(4, 2)
	s.Set(1, 1, 'X')
	s.ClearTo(ColorGray)

	for y := 0; y < 2; y++ {
		for x := 0; x < 4; x++ {
			c := s.GetCell(x, y)
			if c.Rune != ' ' || c.Bg != ColorGray {
				t.Errorf("cell (%d, %d) = %+v, expected blank on gray", x, y, c)
			}
		}
	}
}

func TestScreenPlot(t *testing.T) {
	s := NewScreen(3, 2)
	s.ClearTo(ColorBlue)

	s.Plot(1, 0, ColorRed)   // top half of row 0
	s.Plot(2, 3, ColorGreen) // bottom half of row 1

	top := s.GetCell(1, 0)
	if top.Rune != HalfBlock || top.Fg != ColorRed || top.Bg != ColorBlue {
		t.Errorf("top pixel cell = %+v", top)
	}

	bottom := s.GetCell(2, 1)
	if bottom.Rune != HalfBlock || bottom.Fg != ColorBlue || bottom.Bg != ColorGreen {
		t.Errorf("bottom pixel cell = %+v", bottom)
	}

	// Painting the other half keeps the first one
	s.Plot(1, 1, ColorYellow)
	both := s.GetCell(1, 0)
	if both.Fg != ColorRed || both.Bg != ColorYellow {
		t.Errorf("both halves = %+v, expected red over yellow", both)
	}

	// Out of range rows are ignored
	s.Plot(0, -1, ColorRed)
	s.Plot(0, 4, ColorRed)
	if s.Get(0, 0) != ' ' || s.Get(0, 1) != ' ' {
		t.Error("out of range Plot should not touch the screen")
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawText(2, 1, "Hello")

	if got := s.String(); !strings.Contains(strings.Split(got, "\n")[1], "Hello") {
		t.Errorf("row 1 = %q, expected to contain Hello", strings.Split(got, "\n")[1])
	}

	// Clipping at the right edge
	s.DrawText(17, 2, "World")
	if s.Get(19, 2) != 'r' {
		t.Errorf("Get(19, 2) = %q, expected 'r'", s.Get(19, 2))
	}
}

func TestScreenDrawTextColored(t *testing.T) {
	s := NewScreen(10, 1)
	s.DrawTextColored(0, 0, "ok", ColorWhite, ColorBlack())

	c := s.GetCell(1, 0)
	if c.Rune != 'k' || c.Fg != ColorWhite || c.Bg != ColorBlack() {
		t.Errorf("cell = %+v", c)
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(11, 1)
	s.DrawTextCentered(0, "abc")

	if s.Get(4, 0) != 'a' || s.Get(6, 0) != 'c' {
		t.Errorf("centered text = %q", s.String())
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(5, 4)
	s.DrawBox(NewRect(0, 0, 5, 4))

	expected := "┌───┐\n│   │\n│   │\n└───┘"
	if s.String() != expected {
		t.Errorf("DrawBox =\n%s\nexpected\n%s", s.String(), expected)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(5, 5)
	s.Set(1, 1, 'X')
	s.Resize(8, 3)

	if s.Width() != 8 || s.Height() != 3 {
		t.Errorf("size = %dx%d, expected 8x3", s.Width(), s.Height())
	}
	if s.Get(1, 1) != ' ' {
		t.Error("Resize should clear content")
	}
}

// ColorBlack is true black, used to check RGB colors survive a round trip.
func ColorBlack() Color {
	return RGB(0, 0, 0)
}

func TestColorRGB(t *testing.T) {
	c := RGB(0x12, 0xab, 0xff)
	if !c.IsRGB() {
		t.Fatal("RGB color should report IsRGB")
	}
	r, g, b := c.RGBA()
	if r != 0x12 || g != 0xab || b != 0xff {
		t.Errorf("RGBA() = %x %x %x", r, g, b)
	}
	if c.Hex() != "#12abff" {
		t.Errorf("Hex() = %q", c.Hex())
	}
	if ColorRed.IsRGB() {
		t.Error("palette color should not report IsRGB")
	}
	if ColorRed.Hex() != "1" {
		t.Errorf("palette Hex() = %q, expected \"1\"", ColorRed.Hex())
	}

	parsed, err := ParseHex("#12abff")
	if err != nil || parsed != c {
		t.Errorf("ParseHex = %v, %v", parsed, err)
	}
	if _, err := ParseHex("12abff"); err == nil {
		t.Error("ParseHex should reject missing #")
	}
}
