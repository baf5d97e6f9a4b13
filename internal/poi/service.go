// Package poi enriches a computed route with fuel, food and rest stops
// sampled at fixed positions along the polyline.
package poi

import (
	"context"
	"math"
	"sort"

	"traseu_backend/internal/models"
	"traseu_backend/platform/geo"
	"traseu_backend/platform/logger"
	"traseu_backend/platform/ratelimit"
	"traseu_backend/platform/textnorm"
)

// minPolylinePoints gates enrichment; shorter routes are local trips that
// do not need stop suggestions.
const minPolylinePoints = 10

// samplePositions are the relative positions along the route that get a
// POI lookup.
var samplePositions = []float64{0.15, 0.35, 0.50, 0.65, 0.85}

// categoryCaps bounds the aggregated list per category.
var categoryCaps = map[string]int{
	models.POIFuel: 3,
	models.POIFood: 3,
	models.POIRest: 2,
}

// AmenityFinder is the external POI service.
type AmenityFinder interface {
	Nearby(ctx context.Context, point geo.Point) ([]overpassElement, error)
}

// Service aggregates POIs along a route under the shared service's rate
// limit.
type Service struct {
	finder  AmenityFinder
	limiter ratelimit.Limiter
	log     *logger.Logger
}

func NewService(finder AmenityFinder, limiter ratelimit.Limiter, log *logger.Logger) *Service {
	return &Service{finder: finder, limiter: limiter, log: log}
}

// FindPOIs samples the polyline at fixed positions and aggregates up to the
// per-category caps, sorted by distance from the route start. The second
// return value counts failed sample queries; a failed sample is skipped.
func (s *Service) FindPOIs(ctx context.Context, polyline []geo.Point) ([]models.RoutePOI, int) {
	if len(polyline) < minPolylinePoints {
		return []models.RoutePOI{}, 0
	}

	totalKm := geo.PolylineLengthKm(polyline)

	counts := make(map[string]int, len(categoryCaps))
	captured := make(map[string]bool)
	pois := []models.RoutePOI{}
	failed := 0

	for _, fraction := range samplePositions {
		if err := s.limiter.Wait(ctx); err != nil {
			return pois, failed + remainingSamples(fraction)
		}

		point := polyline[geo.PositionIndex(len(polyline), fraction)]
		elements, err := s.finder.Nearby(ctx, point)
		if err != nil {
			failed++
			continue
		}

		distanceKm := math.Round(fraction*totalKm*10) / 10
		pois = append(pois, pickPerCategory(elements, distanceKm, counts, captured)...)
	}

	sort.SliceStable(pois, func(i, j int) bool {
		return pois[i].DistanceFromStartKm < pois[j].DistanceFromStartKm
	})

	return pois, failed
}

// pickPerCategory takes the first not-yet-captured POI of each category from
// one sample's results, respecting the per-category caps.
func pickPerCategory(elements []overpassElement, distanceKm float64, counts map[string]int, captured map[string]bool) []models.RoutePOI {
	taken := make(map[string]bool, len(categoryCaps))
	var picked []models.RoutePOI

	for _, element := range elements {
		category := categorize(element.Tags)
		if category == "" || taken[category] {
			continue
		}
		if counts[category] >= categoryCaps[category] {
			continue
		}
		if element.Tags.Name == "" {
			continue
		}

		key := category + "|" + textnorm.Fold(element.Tags.Name)
		if captured[key] {
			continue
		}

		captured[key] = true
		taken[category] = true
		counts[category]++
		picked = append(picked, models.RoutePOI{
			Type:                category,
			Name:                element.Tags.Name,
			DistanceFromStartKm: distanceKm,
			Coordinates:         geo.Point{Lat: element.Lat, Lon: element.Lon},
		})
	}

	return picked
}

func categorize(tags overpassTags) string {
	switch {
	case tags.Amenity == "fuel":
		return models.POIFuel
	case tags.Amenity == "restaurant" || tags.Amenity == "fast_food":
		return models.POIFood
	case tags.Highway == "rest_area" || tags.Highway == "services":
		return models.POIRest
	default:
		return ""
	}
}

func remainingSamples(current float64) int {
	remaining := 0
	for _, fraction := range samplePositions {
		if fraction >= current {
			remaining++
		}
	}
	return remaining
}
