package poi

import (
	"context"
	"errors"
	"testing"

	"traseu_backend/internal/models"
	"traseu_backend/platform/geo"
	"traseu_backend/platform/logger"
	"traseu_backend/platform/ratelimit"
)

type mockFinder struct {
	perCall [][]overpassElement
	fail    map[int]bool
	calls   int
}

func (m *mockFinder) Nearby(_ context.Context, _ geo.Point) ([]overpassElement, error) {
	idx := m.calls
	m.calls++
	if m.fail[idx] {
		return nil, errors.New("overpass timeout")
	}
	if idx < len(m.perCall) {
		return m.perCall[idx], nil
	}
	return nil, nil
}

func newTestPOIService(finder AmenityFinder) *Service {
	return NewService(finder, ratelimit.NewIntervalLimiter(0), logger.New("development"))
}

// longPolyline is a straight route with enough points for enrichment.
func longPolyline(points int) []geo.Point {
	line := make([]geo.Point, points)
	for i := range line {
		line[i] = geo.Point{Lat: 45.0, Lon: 23.0 + float64(i)*0.02}
	}
	return line
}

func fuelNode(name string) overpassElement {
	return overpassElement{Lat: 45.0, Lon: 23.5, Tags: overpassTags{Amenity: "fuel", Name: name}}
}

func foodNode(name string) overpassElement {
	return overpassElement{Lat: 45.0, Lon: 23.5, Tags: overpassTags{Amenity: "restaurant", Name: name}}
}

func restNode(name string) overpassElement {
	return overpassElement{Lat: 45.0, Lon: 23.5, Tags: overpassTags{Highway: "rest_area", Name: name}}
}

func TestFindPOIsShortPolylineReturnsEmpty(t *testing.T) {
	finder := &mockFinder{}
	svc := newTestPOIService(finder)

	pois, failed := svc.FindPOIs(context.Background(), longPolyline(9))

	if len(pois) != 0 || failed != 0 {
		t.Errorf("expected no enrichment for short routes, got %v (failed %d)", pois, failed)
	}
	if finder.calls != 0 {
		t.Errorf("short routes must not query the POI service, got %d calls", finder.calls)
	}
}

func TestFindPOIsQueriesFiveSamples(t *testing.T) {
	finder := &mockFinder{}
	svc := newTestPOIService(finder)

	svc.FindPOIs(context.Background(), longPolyline(100))

	if finder.calls != 5 {
		t.Errorf("expected 5 sample queries, got %d", finder.calls)
	}
}

func TestFindPOIsTakesFirstPerCategoryPerSample(t *testing.T) {
	finder := &mockFinder{perCall: [][]overpassElement{
		{fuelNode("OMV Gilău"), fuelNode("Petrom Gilău"), foodNode("Hanul Drumețului"), restNode("Parcare A3")},
	}}
	svc := newTestPOIService(finder)

	pois, failed := svc.FindPOIs(context.Background(), longPolyline(100))

	if failed != 0 {
		t.Fatalf("unexpected failures: %d", failed)
	}
	if len(pois) != 3 {
		t.Fatalf("expected one POI per category from a single sample, got %d: %+v", len(pois), pois)
	}
	if pois[0].Name != "OMV Gilău" {
		t.Errorf("the first fuel POI of the sample must be taken, got %q", pois[0].Name)
	}
}

func TestFindPOIsRespectsCategoryCaps(t *testing.T) {
	perCall := make([][]overpassElement, 5)
	for i := range perCall {
		perCall[i] = []overpassElement{
			fuelNode("Stație " + string(rune('A'+i))),
			restNode("Parcare " + string(rune('A'+i))),
		}
	}
	finder := &mockFinder{perCall: perCall}
	svc := newTestPOIService(finder)

	pois, _ := svc.FindPOIs(context.Background(), longPolyline(100))

	counts := map[string]int{}
	for _, p := range pois {
		counts[p.Type]++
	}
	if counts[models.POIFuel] != 3 {
		t.Errorf("expected 3 fuel POIs, got %d", counts[models.POIFuel])
	}
	if counts[models.POIRest] != 2 {
		t.Errorf("expected 2 rest POIs, got %d", counts[models.POIRest])
	}
}

func TestFindPOIsSkipsDuplicatesAcrossSamples(t *testing.T) {
	finder := &mockFinder{perCall: [][]overpassElement{
		{fuelNode("OMV Turda")},
		{fuelNode("OMV Turda"), fuelNode("MOL Aiud")},
	}}
	svc := newTestPOIService(finder)

	pois, _ := svc.FindPOIs(context.Background(), longPolyline(100))

	names := map[string]int{}
	for _, p := range pois {
		names[p.Name]++
	}
	if names["OMV Turda"] != 1 {
		t.Errorf("a POI visible from two samples must be captured once, got %d", names["OMV Turda"])
	}
	if names["MOL Aiud"] != 1 {
		t.Errorf("the next unseen fuel POI should be captured, got %d", names["MOL Aiud"])
	}
}

func TestFindPOIsSwallowsFailedSamples(t *testing.T) {
	finder := &mockFinder{
		perCall: [][]overpassElement{
			{fuelNode("OMV Sebeș")},
			nil,
			nil,
			nil,
			{foodNode("La Popasul Mare")},
		},
		fail: map[int]bool{1: true, 2: true},
	}
	svc := newTestPOIService(finder)

	pois, failed := svc.FindPOIs(context.Background(), longPolyline(100))

	if failed != 2 {
		t.Errorf("expected 2 failed samples, got %d", failed)
	}
	if len(pois) != 2 {
		t.Errorf("surviving samples must still contribute, got %+v", pois)
	}
}

func TestFindPOIsSortedByDistanceFromStart(t *testing.T) {
	finder := &mockFinder{perCall: [][]overpassElement{
		{fuelNode("Prima")},
		{foodNode("A Doua")},
		{restNode("A Treia")},
	}}
	svc := newTestPOIService(finder)

	pois, _ := svc.FindPOIs(context.Background(), longPolyline(200))

	for i := 1; i < len(pois); i++ {
		if pois[i].DistanceFromStartKm < pois[i-1].DistanceFromStartKm {
			t.Fatalf("POIs out of distance order: %+v", pois)
		}
	}
	if len(pois) > 0 && pois[0].DistanceFromStartKm <= 0 {
		t.Errorf("distance labels must be positive fractions of the route length: %+v", pois[0])
	}
}

func TestFindPOIsIgnoresNamelessAmenities(t *testing.T) {
	finder := &mockFinder{perCall: [][]overpassElement{
		{fuelNode(""), fuelNode("Rompetrol Deva")},
	}}
	svc := newTestPOIService(finder)

	pois, _ := svc.FindPOIs(context.Background(), longPolyline(100))

	if len(pois) != 1 || pois[0].Name != "Rompetrol Deva" {
		t.Errorf("nameless amenities are useless as suggestions: %+v", pois)
	}
}
