// Package geo provides geospatial helpers shared by route analysis stages.
// This is part of the platform layer and contains no business logic.
package geo

import (
	"math"
	"sort"
)

// Point is a single (latitude, longitude) coordinate pair.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// BoundingBox is an axis-aligned geographic rectangle.
type BoundingBox struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// Contains reports whether p falls within the box, borders included.
func (b BoundingBox) Contains(p Point) bool {
	return p.Lat >= b.MinLat && p.Lat <= b.MaxLat &&
		p.Lon >= b.MinLon && p.Lon <= b.MaxLon
}

// Intersects reports whether any point of the polyline falls within the box.
func (b BoundingBox) Intersects(polyline []Point) bool {
	for _, p := range polyline {
		if b.Contains(p) {
			return true
		}
	}
	return false
}

// HaversineKm computes the great-circle distance in kilometers between two
// WGS84 points.
func HaversineKm(a, b Point) float64 {
	const earthRadiusKm = 6371.0
	const deg2rad = math.Pi / 180.0

	dLat := (b.Lat - a.Lat) * deg2rad
	dLon := (b.Lon - a.Lon) * deg2rad
	lat1r := a.Lat * deg2rad
	lat2r := b.Lat * deg2rad

	sinDLat := math.Sin(dLat / 2)
	sinDLon := math.Sin(dLon / 2)
	h := sinDLat*sinDLat + math.Cos(lat1r)*math.Cos(lat2r)*sinDLon*sinDLon
	c := 2 * math.Asin(math.Sqrt(h))
	return earthRadiusKm * c
}

// PolylineLengthKm sums the haversine distances between consecutive points.
func PolylineLengthKm(polyline []Point) float64 {
	var total float64
	for i := 1; i < len(polyline); i++ {
		total += HaversineKm(polyline[i-1], polyline[i])
	}
	return total
}

// SampleIndices builds a bounded, sorted, deduplicated set of polyline
// indices: the first and last point, count-2 evenly spaced interior points,
// and the points nearest the 25%, 50% and 75% positions. Quartile points are
// forced in so that a short segment (e.g. a brief border crossing) between
// two evenly spaced samples is less likely to be missed.
func SampleIndices(pointCount, count int) []int {
	if pointCount <= 0 {
		return nil
	}
	if count < 2 {
		count = 2
	}

	seen := make(map[int]bool)
	indices := make([]int, 0, count+3)

	add := func(idx int) {
		if idx < 0 {
			idx = 0
		}
		if idx > pointCount-1 {
			idx = pointCount - 1
		}
		if !seen[idx] {
			seen[idx] = true
			indices = append(indices, idx)
		}
	}

	add(0)
	add(pointCount - 1)

	if interior := count - 2; interior > 0 {
		step := float64(pointCount-1) / float64(interior+1)
		for i := 1; i <= interior; i++ {
			add(int(math.Round(step * float64(i))))
		}
	}

	for _, fraction := range []float64{0.25, 0.5, 0.75} {
		add(int(math.Round(fraction * float64(pointCount-1))))
	}

	sort.Ints(indices)
	return indices
}

// PositionIndex returns the index nearest the given relative position in
// [0, 1] along a polyline of pointCount points.
func PositionIndex(pointCount int, fraction float64) int {
	if pointCount <= 0 {
		return 0
	}
	idx := int(math.Round(fraction * float64(pointCount-1)))
	if idx < 0 {
		return 0
	}
	if idx > pointCount-1 {
		return pointCount - 1
	}
	return idx
}
