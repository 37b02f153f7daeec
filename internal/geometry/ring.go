// Package geometry turns raw coordinate runs into valid GeoJSON polygon
// rings.
package geometry

import (
	"math"
	"sort"

	"github.com/paulmach/orb"
)

// MinRingPoints is the smallest number of distinct points a polygon ring
// can be built from.
const MinRingPoints = 3

// OrderByCentroidAngle returns the points sorted by their angle around the
// arithmetic-mean centroid. This untangles the edge crossings that come
// from feeds listing corners in arbitrary order, but it is only correct
// for star-shaped rings: a non-star-shaped boundary can not be recovered
// from its vertex set this way and would need the underlying road-segment
// topology instead. Downstream consumers rely on the current output, so
// the heuristic stays.
func OrderByCentroidAngle(points []orb.Point) []orb.Point {
	if len(points) == 0 {
		return nil
	}

	var cx, cy float64
	for _, p := range points {
		cx += p[0]
		cy += p[1]
	}
	cx /= float64(len(points))
	cy /= float64(len(points))

	ordered := make([]orb.Point, len(points))
	copy(ordered, points)
	sort.SliceStable(ordered, func(i, j int) bool {
		ai := math.Atan2(ordered[i][1]-cy, ordered[i][0]-cx)
		aj := math.Atan2(ordered[j][1]-cy, ordered[j][0]-cx)
		return ai < aj
	})

	return ordered
}

// Close appends a copy of the first point when the ring is not already
// closed.
func Close(points []orb.Point) orb.Ring {
	ring := make(orb.Ring, len(points))
	copy(ring, points)

	if len(ring) > 0 && ring[0] != ring[len(ring)-1] {
		ring = append(ring, ring[0])
	}

	return ring
}

// BuildRing normalizes a raw coordinate run into a closed GeoJSON ring:
// optionally reordered around the centroid, then closed. Runs with fewer
// than MinRingPoints points are rejected (ok=false). A returned ring
// always has at least 4 points with ring[0] == ring[len-1].
func BuildRing(points []orb.Point, order bool) (orb.Ring, bool) {
	if len(points) < MinRingPoints {
		return nil, false
	}

	if order {
		points = OrderByCentroidAngle(points)
	}

	return Close(points), true
}
