package imaging

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseHex parses a "#rrggbb" colour.
func ParseHex(s string) (color.Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return nil, err
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// HexOr parses s, falling back to fallback when s is empty or invalid.
// fallback itself must be a valid colour.
func HexOr(s, fallback string) color.Color {
	if c, err := ParseHex(s); err == nil {
		return c
	}
	c, _ := ParseHex(fallback)
	return c
}
