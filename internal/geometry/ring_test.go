package geometry

import (
	"testing"

	"github.com/paulmach/orb"
)

func TestOrderByCentroidAngle(t *testing.T) {
	// Document order deliberately crosses edges.
	points := []orb.Point{{0, 0}, {1, 1}, {1, 0}, {0, 1}}

	ordered := OrderByCentroidAngle(points)

	want := []orb.Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	if len(ordered) != len(want) {
		t.Fatalf("ordered len=%d, want %d", len(ordered), len(want))
	}
	for i := range want {
		if ordered[i] != want[i] {
			t.Fatalf("ordered[%d]=%v, want %v", i, ordered[i], want[i])
		}
	}
}

func TestOrderByCentroidAngleDoesNotMutateInput(t *testing.T) {
	points := []orb.Point{{0, 0}, {1, 1}, {1, 0}}
	OrderByCentroidAngle(points)

	if points[1] != (orb.Point{1, 1}) {
		t.Fatalf("input slice was mutated: %v", points)
	}
}

func TestCloseAppendsFirstPoint(t *testing.T) {
	ring := Close([]orb.Point{{0, 0}, {1, 0}, {1, 1}})

	if len(ring) != 4 {
		t.Fatalf("ring len=%d, want 4", len(ring))
	}
	if ring[0] != ring[len(ring)-1] {
		t.Fatalf("ring not closed: first=%v last=%v", ring[0], ring[len(ring)-1])
	}
}

func TestCloseAlreadyClosed(t *testing.T) {
	ring := Close([]orb.Point{{0, 0}, {1, 0}, {1, 1}, {0, 0}})

	if len(ring) != 4 {
		t.Fatalf("ring len=%d, want 4 (closing point must not be duplicated)", len(ring))
	}
}

func TestBuildRing(t *testing.T) {
	ring, ok := BuildRing([]orb.Point{{0, 0}, {1, 1}, {1, 0}, {0, 1}}, true)
	if !ok {
		t.Fatal("BuildRing rejected a 4 point run")
	}

	if len(ring) < 4 {
		t.Fatalf("ring len=%d, want >= 4", len(ring))
	}
	if ring[0] != ring[len(ring)-1] {
		t.Fatalf("ring not closed: first=%v last=%v", ring[0], ring[len(ring)-1])
	}
}

func TestBuildRingTooFewPoints(t *testing.T) {
	if _, ok := BuildRing([]orb.Point{{0, 0}, {1, 1}}, true); ok {
		t.Fatal("BuildRing accepted a 2 point run")
	}
}

func TestBuildRingWithoutReorder(t *testing.T) {
	points := []orb.Point{{0, 0}, {1, 1}, {1, 0}}
	ring, ok := BuildRing(points, false)
	if !ok {
		t.Fatal("BuildRing rejected a 3 point run")
	}

	for i, p := range points {
		if ring[i] != p {
			t.Fatalf("ring[%d]=%v, want document order %v", i, ring[i], p)
		}
	}
}
