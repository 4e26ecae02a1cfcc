package geo

import (
	"encoding/json"
	"image"
	"testing"

	"github.com/paulmach/orb"

	"geovision/internal/detection"
)

func TestExporter_RoundTrip(t *testing.T) {
	segments := []detection.Segment{
		{Start: image.Pt(0, 0), End: image.Pt(10, 0)},
		{Start: image.Pt(5, 5), End: image.Pt(5, 15)},
	}

	exporter := NewExporter(nil)
	exporter.Add(segments)

	doc, err := exporter.JSON()
	if err != nil {
		t.Fatalf("JSON failed: %v", err)
	}

	var fc FeatureCollection
	if err := json.Unmarshal([]byte(doc), &fc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if fc.Type != "FeatureCollection" {
		t.Errorf("type: got %q, want %q", fc.Type, "FeatureCollection")
	}
	if len(fc.Features) != 1 {
		t.Fatalf("features: got %d, want 1", len(fc.Features))
	}

	col := fc.Features[0]
	if col.Type != "GeometryCollection" {
		t.Errorf("feature type: got %q, want %q", col.Type, "GeometryCollection")
	}
	if len(col.Geometries) != 2 {
		t.Fatalf("geometries: got %d, want 2", len(col.Geometries))
	}

	want := []orb.LineString{
		{{0, 0}, {10, 0}},
		{{5, 5}, {5, 15}},
	}
	for i, g := range col.Geometries {
		line, ok := g.Geometry().(orb.LineString)
		if !ok {
			t.Fatalf("geometry %d: got %T, want LineString", i, g.Geometry())
		}
		if !line.Equal(want[i]) {
			t.Errorf("geometry %d: got %v, want %v", i, line, want[i])
		}
	}
}

func TestExporter_ExactEnvelope(t *testing.T) {
	exporter := NewExporter(nil)
	exporter.Add([]detection.Segment{
		{Start: image.Pt(0, 0), End: image.Pt(10, 0)},
	})

	doc, err := exporter.JSON()
	if err != nil {
		t.Fatalf("JSON failed: %v", err)
	}

	// Decode generically: features must be bare geometry objects, not
	// Feature wrappers with a "geometry" key.
	var raw map[string]any
	if err := json.Unmarshal([]byte(doc), &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	features, ok := raw["features"].([]any)
	if !ok || len(features) != 1 {
		t.Fatalf("features: got %v", raw["features"])
	}
	feature, ok := features[0].(map[string]any)
	if !ok {
		t.Fatalf("feature is not an object: %v", features[0])
	}
	if feature["type"] != "GeometryCollection" {
		t.Errorf("feature type: got %v, want GeometryCollection", feature["type"])
	}
	if _, hasGeometry := feature["geometry"]; hasGeometry {
		t.Error("feature must not carry a \"geometry\" member")
	}

	geometries, ok := feature["geometries"].([]any)
	if !ok || len(geometries) != 1 {
		t.Fatalf("geometries: got %v", feature["geometries"])
	}
	lineString, ok := geometries[0].(map[string]any)
	if !ok || lineString["type"] != "LineString" {
		t.Fatalf("geometry: got %v, want a LineString object", geometries[0])
	}
}

func TestExporter_EmptySegments(t *testing.T) {
	exporter := NewExporter(nil)
	exporter.Add(nil)

	doc, err := exporter.JSON()
	if err != nil {
		t.Fatalf("JSON failed: %v", err)
	}

	var fc FeatureCollection
	if err := json.Unmarshal([]byte(doc), &fc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(fc.Features) != 1 {
		t.Fatalf("features: got %d, want 1", len(fc.Features))
	}
	if len(fc.Features[0].Geometries) != 0 {
		t.Errorf("geometries: got %d, want 0", len(fc.Features[0].Geometries))
	}

	// The empty geometries array must be present in the serialized text.
	var raw map[string]any
	if err := json.Unmarshal([]byte(doc), &raw); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	feature := raw["features"].([]any)[0].(map[string]any)
	if _, ok := feature["geometries"]; !ok {
		t.Error("empty collection lost its \"geometries\" member")
	}
}

func TestExporter_NoAdds(t *testing.T) {
	doc, err := NewExporter(nil).JSON()
	if err != nil {
		t.Fatalf("JSON failed: %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(doc), &raw); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	features, ok := raw["features"].([]any)
	if !ok {
		t.Fatalf("missing features array in %s", doc)
	}
	if len(features) != 0 {
		t.Errorf("features: got %d, want 0", len(features))
	}
}

func TestExporter_MultipleAdds(t *testing.T) {
	exporter := NewExporter(nil)
	exporter.Add([]detection.Segment{{Start: image.Pt(0, 0), End: image.Pt(1, 1)}})
	exporter.Add([]detection.Segment{{Start: image.Pt(2, 2), End: image.Pt(3, 3)}})

	fc := exporter.Collection()
	if len(fc.Features) != 2 {
		t.Errorf("features after two adds: got %d, want 2", len(fc.Features))
	}
}
