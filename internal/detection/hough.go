package detection

import (
	"image"
	"math"
	"sort"

	"geovision/internal/imaging"
)

// DetectLines finds straight line segments in a binary edge map using a
// Hough transform at the resolutions given in p.
//
// Edge pixels vote for every (rho, theta) bin they lie on; bins that reach
// p.Threshold votes and are local maxima in the accumulator become line
// candidates. Each candidate is traced back over the edge map to recover
// concrete endpoints. The result order follows vote count and is not part
// of the contract.
//
// The transform is fully deterministic: the same edge map and parameters
// always produce the same segments.
func DetectLines(edges *imaging.EdgeMap, p Params) []Segment {
	width := edges.Width
	height := edges.Height
	if width == 0 || height == 0 {
		return nil
	}

	numAngles := int(math.Round(math.Pi / p.Theta))
	if numAngles < 1 {
		numAngles = 1
	}
	maxDist := int(math.Ceil(math.Hypot(float64(width), float64(height))))
	rhoBins := int(math.Ceil(float64(2*maxDist)/p.Rho)) + 1

	accumulator := make([][]int, rhoBins)
	for i := range accumulator {
		accumulator[i] = make([]int, numAngles)
	}

	// Vote in Hough space.
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !edges.At(x, y) {
				continue
			}
			for t := 0; t < numAngles; t++ {
				angle := float64(t) * p.Theta
				rho := float64(x)*math.Cos(angle) + float64(y)*math.Sin(angle)
				idx := int(math.Round((rho + float64(maxDist)) / p.Rho))
				if idx >= 0 && idx < rhoBins {
					accumulator[idx][t]++
				}
			}
		}
	}

	type peak struct {
		rhoIdx int
		theta  int
		votes  int
	}
	peaks := make([]peak, 0)

	for idx := 0; idx < rhoBins; idx++ {
		for t := 0; t < numAngles; t++ {
			votes := accumulator[idx][t]
			if votes < p.Threshold {
				continue
			}
			// Keep only local maxima so one physical line yields one peak.
			isMax := true
			for dr := -2; dr <= 2 && isMax; dr++ {
				for dt := -2; dt <= 2 && isMax; dt++ {
					if dr == 0 && dt == 0 {
						continue
					}
					nr := idx + dr
					nt := ((t+dt)%numAngles + numAngles) % numAngles
					if nr >= 0 && nr < rhoBins && accumulator[nr][nt] > votes {
						isMax = false
					}
				}
			}
			if isMax {
				peaks = append(peaks, peak{rhoIdx: idx, theta: t, votes: votes})
			}
		}
	}

	sort.Slice(peaks, func(i, j int) bool {
		if peaks[i].votes != peaks[j].votes {
			return peaks[i].votes > peaks[j].votes
		}
		if peaks[i].rhoIdx != peaks[j].rhoIdx {
			return peaks[i].rhoIdx < peaks[j].rhoIdx
		}
		return peaks[i].theta < peaks[j].theta
	})

	tolerance := p.Rho
	if tolerance < 1.0 {
		tolerance = 1.0
	}

	segments := make([]Segment, 0, len(peaks))
	seen := make(map[Segment]bool)

	for _, pk := range peaks {
		angle := float64(pk.theta) * p.Theta
		rho := float64(pk.rhoIdx)*p.Rho - float64(maxDist)
		cosA := math.Cos(angle)
		sinA := math.Sin(angle)

		// Trace endpoints: project the edge pixels near this line onto the
		// line direction and take the extremes.
		var start, end image.Point
		minProj := math.MaxFloat64
		maxProj := -math.MaxFloat64
		count := 0

		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				if !edges.At(x, y) {
					continue
				}
				dist := math.Abs(float64(x)*cosA + float64(y)*sinA - rho)
				if dist >= tolerance {
					continue
				}
				proj := -float64(x)*sinA + float64(y)*cosA
				if proj < minProj {
					minProj = proj
					start = image.Pt(x, y)
				}
				if proj > maxProj {
					maxProj = proj
					end = image.Pt(x, y)
				}
				count++
			}
		}

		if count < p.Threshold {
			continue
		}

		seg := Segment{Start: start, End: end}
		if seg.Length() == 0 || seen[seg] {
			continue
		}
		seen[seg] = true
		segments = append(segments, seg)
	}

	return segments
}
