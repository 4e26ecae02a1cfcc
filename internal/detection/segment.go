package detection

import (
	"fmt"
	"image"
	"math"
)

// Segment is a detected line segment between two pixel coordinates.
//
// Segments are immutable values with no identity beyond their endpoints;
// duplicates are not deduplicated. Endpoint order follows the projection
// along the detected line and carries no meaning.
type Segment struct {
	Start image.Point `json:"start"`
	End   image.Point `json:"end"`
}

// Length returns the Euclidean length of the segment in pixels.
func (s Segment) Length() float64 {
	dx := float64(s.End.X - s.Start.X)
	dy := float64(s.End.Y - s.Start.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// Angle returns the segment orientation in degrees, in (-180, 180].
func (s Segment) Angle() float64 {
	dy := float64(s.End.Y - s.Start.Y)
	dx := float64(s.End.X - s.Start.X)
	return math.Atan2(dy, dx) * 180 / math.Pi
}

func (s Segment) String() string {
	return fmt.Sprintf("((%d, %d), (%d, %d))", s.Start.X, s.Start.Y, s.End.X, s.End.Y)
}

// Params configures the Hough line transform.
type Params struct {
	// Rho is the distance resolution of the accumulator in pixels.
	Rho float64

	// Theta is the angle resolution of the accumulator in radians.
	Theta float64

	// Threshold is the minimum accumulator vote count for a line.
	Threshold int
}

// DefaultParams returns the stock Hough parameters. The coarse Theta keeps
// only near-horizontal and near-vertical candidates, which suits gridded
// road networks; use the CLI overrides for anything else.
func DefaultParams() Params {
	return Params{
		Rho:       1.0,
		Theta:     math.Pi / 2,
		Threshold: 80,
	}
}
