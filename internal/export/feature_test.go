package export

import (
	"encoding/json"
	"testing"

	"github.com/paulmach/orb"

	"github.com/ConsultoriaImpulso/ZBE/internal/datex"
)

func TestFeatureFlatPolygon(t *testing.T) {
	zone := datex.Zone{
		ID:    "Z1",
		Name:  "Centro",
		Rings: [][]orb.Point{{{0, 0}, {1, 1}, {1, 0}, {0, 1}}},
	}

	f, ok := Feature(zone, "madrid", datex.ModeFlat, true)
	if !ok {
		t.Fatal("expected a feature")
	}

	polygon, isPolygon := f.Geometry.(orb.Polygon)
	if !isPolygon {
		t.Fatalf("geometry type=%T, want orb.Polygon", f.Geometry)
	}
	if len(polygon) != 1 {
		t.Fatalf("polygon has %d rings, want 1", len(polygon))
	}

	ring := polygon[0]
	if len(ring) != 5 {
		t.Fatalf("ring has %d points, want 5 (4 ordered + closing)", len(ring))
	}
	if ring[0] != ring[len(ring)-1] {
		t.Fatal("ring is not closed")
	}

	if got := f.Properties[PropertyName]; got != "Centro" {
		t.Errorf("ZONAS=%v, want Centro", got)
	}
	if got := f.Properties[PropertyID]; got != "Z1" {
		t.Errorf("ZBE_ID=%v, want Z1", got)
	}
	if got := f.Properties[PropertyCity]; got != "madrid" {
		t.Errorf("CITY=%v, want madrid", got)
	}
}

func TestFeatureGroupedMultiPolygon(t *testing.T) {
	zone := datex.Zone{
		ID:   "Z2",
		Name: "Distrito",
		Rings: [][]orb.Point{
			{{0, 0}, {1, 0}, {0, 1}},
			{{5, 5}, {6, 5}, {5, 6}},
		},
	}

	f, ok := Feature(zone, "madrid", datex.ModeGrouped, true)
	if !ok {
		t.Fatal("expected a feature")
	}

	mp, isMulti := f.Geometry.(orb.MultiPolygon)
	if !isMulti {
		t.Fatalf("geometry type=%T, want orb.MultiPolygon", f.Geometry)
	}
	if len(mp) != 2 {
		t.Fatalf("multipolygon has %d polygons, want 2", len(mp))
	}
	for i, polygon := range mp {
		if len(polygon) != 1 {
			t.Fatalf("polygon %d has %d rings, want 1", i, len(polygon))
		}
		if len(polygon[0]) != 4 {
			t.Fatalf("polygon %d ring has %d points, want 4", i, len(polygon[0]))
		}
	}
}

func TestFeatureDropsShortRings(t *testing.T) {
	zone := datex.Zone{
		ID:    "Z3",
		Name:  "Dos puntos",
		Rings: [][]orb.Point{{{0, 0}, {1, 1}}},
	}

	if _, ok := Feature(zone, "madrid", datex.ModeFlat, true); ok {
		t.Fatal("zone with a 2 point ring must not produce a feature")
	}
}

func TestFeatureKeepsValidRingsOnly(t *testing.T) {
	zone := datex.Zone{
		ID:   "Z4",
		Name: "Mixto",
		Rings: [][]orb.Point{
			{{0, 0}, {1, 1}},
			{{0, 0}, {1, 0}, {0, 1}},
		},
	}

	f, ok := Feature(zone, "madrid", datex.ModeGrouped, true)
	if !ok {
		t.Fatal("expected a feature from the surviving ring")
	}

	mp := f.Geometry.(orb.MultiPolygon)
	if len(mp) != 1 {
		t.Fatalf("multipolygon has %d polygons, want 1", len(mp))
	}
}

func TestFeatureCoordinateNesting(t *testing.T) {
	rings := [][]orb.Point{{{0, 0}, {1, 0}, {0, 1}}}

	flat, _ := Feature(datex.Zone{ID: "a", Name: "a", Rings: rings}, "madrid", datex.ModeFlat, true)
	grouped, _ := Feature(datex.Zone{ID: "a", Name: "a", Rings: rings}, "madrid", datex.ModeGrouped, true)

	if depth := coordinateDepth(t, flat); depth != 3 {
		t.Errorf("Polygon coordinates nest %d levels, want 3", depth)
	}
	if depth := coordinateDepth(t, grouped); depth != 4 {
		t.Errorf("MultiPolygon coordinates nest %d levels, want 4", depth)
	}
}

func coordinateDepth(t *testing.T, f any) int {
	t.Helper()

	data, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("marshal feature: %v", err)
	}

	var parsed struct {
		Geometry struct {
			Coordinates any `json:"coordinates"`
		} `json:"geometry"`
	}
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("unmarshal feature: %v", err)
	}

	depth := 0
	value := parsed.Geometry.Coordinates
	for {
		arr, isArr := value.([]any)
		if !isArr || len(arr) == 0 {
			return depth
		}
		depth++
		value = arr[0]
	}
}
