package detection

import (
	"fmt"
	"image"
	"image/draw"

	"geovision/internal/debug"
	"geovision/internal/imaging"
)

// Detector runs the two-stage road pipeline on a single image: Canny edge
// detection followed by Hough line detection.
//
// Parameter fields may be adjusted between construction and Detect; a
// Detector is not safe for concurrent use.
type Detector struct {
	cache *imaging.ImageCache
	sink  debug.Sink

	// Edges holds the Canny thresholds.
	Edges imaging.EdgeParams

	// Hough holds the line transform resolutions and vote threshold.
	Hough Params
}

// NewDetector creates a detector with default parameters. A nil sink
// disables all debug output.
func NewDetector(cache *imaging.ImageCache, sink debug.Sink) *Detector {
	if sink == nil {
		sink = debug.Nop{}
	}
	return &Detector{
		cache: cache,
		sink:  sink,
		Edges: imaging.DefaultEdgeParams(),
		Hough: DefaultParams(),
	}
}

// Detect loads the image at path and returns the detected road segments.
//
// An unreadable or undecodable image is an error; an image in which no line
// clears the vote threshold is not, and yields an empty slice. Callers can
// rely on that distinction to still produce well-formed output for blank
// imagery.
func (d *Detector) Detect(path string) ([]Segment, error) {
	if d.Hough.Rho <= 0 {
		return nil, fmt.Errorf("hough rho must be positive, got %v", d.Hough.Rho)
	}
	if d.Hough.Theta <= 0 {
		return nil, fmt.Errorf("hough theta must be positive, got %v", d.Hough.Theta)
	}

	img, err := d.cache.Load(path)
	if err != nil {
		return nil, err
	}

	edges := imaging.EdgeDetect(img, d.Edges)
	d.sink.Image(edges.Gray(), "edges")

	segments := DetectLines(edges, d.Hough)
	if len(segments) == 0 {
		d.sink.Log("No lines found")
		return segments, nil
	}

	if d.sink.Visual() {
		b := img.Bounds()
		overlay := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(overlay, overlay.Bounds(), img, b.Min, draw.Src)
		for i, seg := range segments {
			d.sink.Line(overlay, seg.Start, seg.End, i)
		}
		d.sink.Image(overlay, "lines")
	}

	for _, seg := range segments {
		d.sink.Log(seg.String(), "length", fmt.Sprintf("%.1f", seg.Length()),
			"angle", fmt.Sprintf("%.1f", seg.Angle()))
	}

	return segments, nil
}
