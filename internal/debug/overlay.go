package debug

import (
	"image"
	"image/color"
	"strconv"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// drawSegment draws one detected segment onto dst with a per-index color
// and a small index label at the midpoint.
func drawSegment(dst *image.RGBA, from, to image.Point, index int) {
	c := segmentColor(index)
	drawLine(dst, from, to, c)

	mid := image.Pt((from.X+to.X)/2, (from.Y+to.Y)/2)
	drawLabel(dst, mid.X+3, mid.Y-3, strconv.Itoa(index), c)
}

// segmentColor returns a distinct, stable color per segment index.
// Index 0 is green, matching the classic overlay convention; later indexes
// rotate the hue so adjacent segments stay distinguishable.
func segmentColor(index int) color.RGBA {
	hue := float64((120 + 47*index) % 360)
	r, g, b := colorful.Hsv(hue, 0.9, 0.9).RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// drawLine draws a 1-pixel line between two points using Bresenham's
// algorithm. Points outside dst are skipped.
func drawLine(dst *image.RGBA, p1, p2 image.Point, c color.Color) {
	dx := abs(p2.X - p1.X)
	dy := -abs(p2.Y - p1.Y)
	sx := 1
	if p1.X > p2.X {
		sx = -1
	}
	sy := 1
	if p1.Y > p2.Y {
		sy = -1
	}
	err := dx + dy

	x, y := p1.X, p1.Y
	for {
		if image.Pt(x, y).In(dst.Bounds()) {
			dst.Set(x, y, c)
		}
		if x == p2.X && y == p2.Y {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

// drawLabel renders text at (x, y) using the basic 7x13 face.
func drawLabel(dst *image.RGBA, x, y int, text string, c color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
