package imaging

import (
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/blur"
	"github.com/disintegration/imaging"
)

// EdgeParams holds the two intensity thresholds for Canny hysteresis.
//
// Both are on the 0-255 scale of 8-bit luminance. Pixels whose gradient
// magnitude exceeds High are strong edges and always kept; pixels between
// Low and High are kept only when connected to a strong edge.
type EdgeParams struct {
	Low  int
	High int
}

// DefaultEdgeParams returns the thresholds used for aerial road imagery.
// High-contrast roads against terrain tolerate an aggressive lower bound.
func DefaultEdgeParams() EdgeParams {
	return EdgeParams{Low: 200, High: 255}
}

// EdgeMap is a binary edge image produced by EdgeDetect.
//
// The mask uses image convention: (0,0) top-left, X rightward, Y downward.
// An EdgeMap is immutable once returned.
type EdgeMap struct {
	Width  int
	Height int
	mask   [][]bool
}

// At reports whether the pixel at (x, y) is an edge.
// Out-of-range coordinates are not edges.
func (m *EdgeMap) At(x, y int) bool {
	if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		return false
	}
	return m.mask[y][x]
}

// Count returns the number of edge pixels in the map.
func (m *EdgeMap) Count() int {
	n := 0
	for _, row := range m.mask {
		for _, on := range row {
			if on {
				n++
			}
		}
	}
	return n
}

// Gray renders the edge map as a grayscale image, edges in white.
// Used by the debug sink; the detection stage reads the mask directly.
func (m *EdgeMap) Gray() *image.Gray {
	out := image.NewGray(image.Rect(0, 0, m.Width, m.Height))
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.mask[y][x] {
				out.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return out
}

// EdgeDetect runs Canny edge detection over an image.
//
// Pipeline: grayscale conversion, Gaussian smoothing, Sobel gradients,
// non-maximum suppression, double-threshold hysteresis. The result has the
// same dimensions as the input regardless of the input's color model.
func EdgeDetect(img image.Image, p EdgeParams) *EdgeMap {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	// Grayscale then smooth; sigma ~1.4 matches a standard 5x5 Canny kernel.
	grayImg := imaging.Grayscale(img)
	smoothed := blur.Gaussian(grayImg, 1.4)

	gray := make([][]float64, height)
	for y := 0; y < height; y++ {
		gray[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			// Channels are equal after Grayscale; red carries the luminance.
			i := smoothed.PixOffset(x, y)
			gray[y][x] = float64(smoothed.Pix[i]) / 255.0
		}
	}

	magnitude := make([][]float64, height)
	direction := make([][]float64, height)

	sobelX := [3][3]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	sobelY := [3][3]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}

	for y := 0; y < height; y++ {
		magnitude[y] = make([]float64, width)
		direction[y] = make([]float64, width)

		for x := 0; x < width; x++ {
			var gx, gy float64
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					py := clamp(y+ky, 0, height-1)
					px := clamp(x+kx, 0, width-1)
					gx += gray[py][px] * sobelX[ky+1][kx+1]
					gy += gray[py][px] * sobelY[ky+1][kx+1]
				}
			}
			magnitude[y][x] = math.Sqrt(gx*gx + gy*gy)
			direction[y][x] = math.Atan2(gy, gx)
		}
	}

	// Non-maximum suppression: keep only local maxima along the gradient.
	suppressed := make([][]float64, height)
	for y := 0; y < height; y++ {
		suppressed[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			if y == 0 || y == height-1 || x == 0 || x == width-1 {
				continue
			}

			angle := direction[y][x]
			mag := magnitude[y][x]

			var n1, n2 float64
			if (angle >= -math.Pi/8 && angle < math.Pi/8) || (angle >= 7*math.Pi/8 || angle < -7*math.Pi/8) {
				n1 = magnitude[y][x-1]
				n2 = magnitude[y][x+1]
			} else if (angle >= math.Pi/8 && angle < 3*math.Pi/8) || (angle >= -7*math.Pi/8 && angle < -5*math.Pi/8) {
				n1 = magnitude[y-1][x+1]
				n2 = magnitude[y+1][x-1]
			} else if (angle >= 3*math.Pi/8 && angle < 5*math.Pi/8) || (angle >= -5*math.Pi/8 && angle < -3*math.Pi/8) {
				n1 = magnitude[y-1][x]
				n2 = magnitude[y+1][x]
			} else {
				n1 = magnitude[y-1][x-1]
				n2 = magnitude[y+1][x+1]
			}

			if mag >= n1 && mag >= n2 {
				suppressed[y][x] = mag
			}
		}
	}

	// Hysteresis. Sobel magnitude can exceed 1.0, so strong edges survive
	// even with High at the top of the intensity scale.
	mask := make([][]bool, height)
	lowThresh := float64(p.Low) / 255.0
	highThresh := float64(p.High) / 255.0

	for y := 0; y < height; y++ {
		mask[y] = make([]bool, width)
		for x := 0; x < width; x++ {
			val := suppressed[y][x]
			if val >= highThresh {
				mask[y][x] = true
			} else if val >= lowThresh {
				for ky := -1; ky <= 1 && !mask[y][x]; ky++ {
					for kx := -1; kx <= 1 && !mask[y][x]; kx++ {
						py := clamp(y+ky, 0, height-1)
						px := clamp(x+kx, 0, width-1)
						if suppressed[py][px] >= highThresh {
							mask[y][x] = true
						}
					}
				}
			}
		}
	}

	return &EdgeMap{Width: width, Height: height, mask: mask}
}

// clamp constrains v to the range [min, max].
func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
