// Package geo serializes detected road segments as GeoJSON.
//
// Pixel coordinates pass through as (longitude, latitude) pairs with no
// coordinate-reference transform. That is a deliberate placeholder for real
// georeferencing, so no validation of geographic sanity is done here.
package geo

import (
	"encoding/json"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"geovision/internal/debug"
	"geovision/internal/detection"
)

// FeatureCollection is the export envelope. Features hold bare
// GeometryCollections rather than Feature objects; consumers of geo.json
// depend on that shape.
type FeatureCollection struct {
	Type     string                `json:"type"`
	Features []*GeometryCollection `json:"features"`
}

// GeometryCollection groups the line geometries of one detection run.
type GeometryCollection struct {
	Type       string              `json:"type"`
	Geometries []*geojson.Geometry `json:"geometries"`
}

// Exporter accumulates detection runs and serializes the whole session as
// one GeoJSON FeatureCollection. Each Add call contributes one
// GeometryCollection; the CLI performs exactly one per invocation.
type Exporter struct {
	sink     debug.Sink
	features []*GeometryCollection
}

// NewExporter creates an exporter. A nil sink disables debug output.
func NewExporter(sink debug.Sink) *Exporter {
	if sink == nil {
		sink = debug.Nop{}
	}
	return &Exporter{sink: sink}
}

// Add converts segments into two-point LineStrings and records them as one
// geometry collection. An empty slice still records an empty collection so
// a no-result run exports valid, empty geometry.
func (e *Exporter) Add(segments []detection.Segment) {
	geometries := make([]*geojson.Geometry, 0, len(segments))
	for _, seg := range segments {
		e.sink.Log(seg.String())
		line := orb.LineString{
			orb.Point{float64(seg.Start.X), float64(seg.Start.Y)},
			orb.Point{float64(seg.End.X), float64(seg.End.Y)},
		}
		geometries = append(geometries, geojson.NewGeometry(line))
	}
	e.features = append(e.features, &GeometryCollection{
		Type:       "GeometryCollection",
		Geometries: geometries,
	})
}

// Collection returns the accumulated feature collection. The features slice
// is never nil, so serialization always yields a "features" array.
func (e *Exporter) Collection() FeatureCollection {
	features := e.features
	if features == nil {
		features = []*GeometryCollection{}
	}
	return FeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
	}
}

// JSON serializes everything added so far to a GeoJSON string.
func (e *Exporter) JSON() (string, error) {
	data, err := json.Marshal(e.Collection())
	if err != nil {
		return "", fmt.Errorf("marshal feature collection: %w", err)
	}
	e.sink.Log(string(data))
	return string(data), nil
}
