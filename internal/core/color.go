package core

import "fmt"

// Color represents a screen cell color.
// Values below rgbFlag are ANSI 256-color codes; values with rgbFlag set
// carry a 24-bit RGB triple for true-color terminals and pixel output.
type Color uint32

const rgbFlag Color = 1 << 24

// Predefined palette colors.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// RGB returns a true-color value.
func RGB(r, g, b uint8) Color {
	return rgbFlag | Color(r)<<16 | Color(g)<<8 | Color(b)
}

// IsRGB reports whether c carries an RGB triple.
func (c Color) IsRGB() bool {
	return c&rgbFlag != 0
}

// RGBA returns the 8-bit channels of an RGB color.
// Palette colors return zeros.
func (c Color) RGBA() (r, g, b uint8) {
	if !c.IsRGB() {
		return 0, 0, 0
	}
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// Hex returns the color as "#rrggbb" for RGB colors, or the ANSI code
// as a decimal string for palette colors.
func (c Color) Hex() string {
	if c.IsRGB() {
		r, g, b := c.RGBA()
		return fmt.Sprintf("#%02x%02x%02x", r, g, b)
	}
	return fmt.Sprintf("%d", uint32(c))
}

// ParseHex parses "#rrggbb" into an RGB color.
func ParseHex(s string) (Color, error) {
	var r, g, b uint8
	if len(s) != 7 || s[0] != '#' {
		return ColorDefault, fmt.Errorf("core: invalid hex color %q", s)
	}
	if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return ColorDefault, fmt.Errorf("core: invalid hex color %q: %w", s, err)
	}
	return RGB(r, g, b), nil
}
