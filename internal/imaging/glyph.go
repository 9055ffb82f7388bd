package imaging

import (
	"image"
	"image/color"

	"golang.org/x/image/vector"
)

// Button glyph canvas size.
const (
	GlyphWidth  = 110
	GlyphHeight = 64
)

// Glyph names understood by ButtonGlyph.
const (
	GlyphPlay  = "play"
	GlyphPause = "pause"
	GlyphStop  = "stop"
)

type point struct{ x, y float32 }

// glyphShapes holds the white polygons drawn for each glyph.
var glyphShapes = map[string][][]point{
	GlyphPlay: {
		{{20, 10}, {90, 32}, {20, 54}},
	},
	GlyphPause: {
		rect(20, 10, 40, 54),
		rect(60, 10, 80, 54),
	},
	GlyphStop: {
		rect(25, 15, 85, 55),
	},
}

func rect(x0, y0, x1, y1 float32) []point {
	return []point{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}
}

// GlyphNames lists the glyphs ButtonGlyph can draw.
func GlyphNames() []string {
	return []string{GlyphPlay, GlyphPause, GlyphStop}
}

// ButtonGlyph draws the default skin for a transport button: white shapes on the
// placeholder colour. It returns false for unknown names.
func ButtonGlyph(name string) (*image.RGBA, bool) {
	shapes, ok := glyphShapes[name]
	if !ok {
		return nil, false
	}

	dst := Placeholder(GlyphWidth, GlyphHeight)
	z := vector.NewRasterizer(GlyphWidth, GlyphHeight)
	for _, poly := range shapes {
		z.MoveTo(poly[0].x, poly[0].y)
		for _, p := range poly[1:] {
			z.LineTo(p.x, p.y)
		}
		z.ClosePath()
	}
	z.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{})

	return dst, true
}
