package geo

import (
	"math"
	"testing"
)

func TestHaversineKmKnownDistance(t *testing.T) {
	cluj := Point{Lat: 46.7712, Lon: 23.6236}
	bucuresti := Point{Lat: 44.4268, Lon: 26.1025}

	got := HaversineKm(cluj, bucuresti)

	// Great-circle distance is roughly 324 km.
	if math.Abs(got-324) > 5 {
		t.Errorf("unexpected distance: %v km", got)
	}
}

func TestHaversineKmZeroForSamePoint(t *testing.T) {
	p := Point{Lat: 45.5, Lon: 24.5}
	if got := HaversineKm(p, p); got != 0 {
		t.Errorf("expected 0, got %v", got)
	}
}

func TestPolylineLengthKmSumsSegments(t *testing.T) {
	line := []Point{
		{Lat: 46.0, Lon: 23.0},
		{Lat: 46.0, Lon: 24.0},
		{Lat: 46.0, Lon: 25.0},
	}

	total := PolylineLengthKm(line)
	direct := HaversineKm(line[0], line[2])

	if math.Abs(total-2*HaversineKm(line[0], line[1])) > 0.001 {
		t.Errorf("length must sum consecutive segments, got %v", total)
	}
	if total < direct {
		t.Errorf("polyline length %v cannot be under the direct distance %v", total, direct)
	}
}

func TestBoundingBoxContains(t *testing.T) {
	box := BoundingBox{MinLat: 44.20, MaxLat: 44.50, MinLon: 27.80, MaxLon: 28.10}

	if !box.Contains(Point{Lat: 44.34, Lon: 27.95}) {
		t.Error("interior point must be contained")
	}
	if !box.Contains(Point{Lat: 44.20, Lon: 27.80}) {
		t.Error("border points count as contained")
	}
	if box.Contains(Point{Lat: 44.19, Lon: 27.95}) {
		t.Error("point outside the box must not be contained")
	}
}

func TestBoundingBoxIntersects(t *testing.T) {
	box := BoundingBox{MinLat: 44.20, MaxLat: 44.50, MinLon: 27.80, MaxLon: 28.10}

	crossing := []Point{{Lat: 44.44, Lon: 26.10}, {Lat: 44.34, Lon: 27.95}, {Lat: 44.17, Lon: 28.63}}
	if !box.Intersects(crossing) {
		t.Error("a polyline with a point in the box must intersect")
	}

	avoiding := []Point{{Lat: 46.77, Lon: 23.59}, {Lat: 47.05, Lon: 21.93}}
	if box.Intersects(avoiding) {
		t.Error("a distant polyline must not intersect")
	}
}

func TestSampleIndicesIncludesEndpointsAndQuartiles(t *testing.T) {
	indices := SampleIndices(101, 10)

	has := func(idx int) bool {
		for _, i := range indices {
			if i == idx {
				return true
			}
		}
		return false
	}

	for _, required := range []int{0, 100, 25, 50, 75} {
		if !has(required) {
			t.Errorf("index %d must always be sampled, got %v", required, indices)
		}
	}
}

func TestSampleIndicesSortedAndUnique(t *testing.T) {
	indices := SampleIndices(500, 25)

	for i := 1; i < len(indices); i++ {
		if indices[i] <= indices[i-1] {
			t.Fatalf("indices must be strictly increasing: %v", indices)
		}
	}
}

func TestSampleIndicesTinyPolyline(t *testing.T) {
	indices := SampleIndices(1, 10)

	if len(indices) != 1 || indices[0] != 0 {
		t.Errorf("a single-point polyline has exactly one sample, got %v", indices)
	}
}

func TestPositionIndexClamps(t *testing.T) {
	if got := PositionIndex(100, 0.5); got != 50 {
		t.Errorf("expected midpoint index 50, got %d", got)
	}
	if got := PositionIndex(100, 1.5); got != 99 {
		t.Errorf("fractions above 1 clamp to the last index, got %d", got)
	}
	if got := PositionIndex(100, -0.5); got != 0 {
		t.Errorf("negative fractions clamp to 0, got %d", got)
	}
}
