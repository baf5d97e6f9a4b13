package routing

import (
	"context"

	"traseu_backend/internal/models"
	"traseu_backend/platform/geo"

	"golang.org/x/sync/errgroup"
)

// SummaryRequest carries the polyline of an already-computed route.
type SummaryRequest struct {
	Coordinates []geo.Point `json:"coordinates" binding:"required,min=2"`
}

// SummaryResponse aggregates the independent enrichment results. Each
// section may be empty when its stage failed; the route itself is never
// blocked on enrichment.
type SummaryResponse struct {
	Countries     []string             `json:"countries"`
	Advisories    []models.TravelAlert `json:"advisories"`
	POIs          []models.RoutePOI    `json:"pois"`
	FailedLookups int                  `json:"failedLookups"`
	FailedSamples int                  `json:"failedSamples"`
}

// CountryDetector resolves the ordered country sequence along a polyline.
// The second return value counts failed point lookups.
type CountryDetector interface {
	DetectCountries(ctx context.Context, polyline []geo.Point) ([]string, int)
}

// Advisor maps a country sequence and polyline to travel alerts.
type Advisor interface {
	BuildAdvisories(countries []string, polyline []geo.Point) []models.TravelAlert
}

// POIFinder collects points of interest along a polyline. The second
// return value counts failed sample queries.
type POIFinder interface {
	FindPOIs(ctx context.Context, polyline []geo.Point) ([]models.RoutePOI, int)
}

// SetEnrichers attaches the downstream analysis stages. They are optional;
// an absent stage contributes an empty section.
func (s *Service) SetEnrichers(detector CountryDetector, advisor Advisor, pois POIFinder) {
	s.detector = detector
	s.advisor = advisor
	s.pois = pois
}

// Summarize runs country detection plus advisories and POI enrichment in
// parallel. The two branches are independent and each serializes its own
// rate-limited external calls internally.
func (s *Service) Summarize(ctx context.Context, polyline []geo.Point) *SummaryResponse {
	summary := &SummaryResponse{
		Countries:  []string{},
		Advisories: []models.TravelAlert{},
		POIs:       []models.RoutePOI{},
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if s.detector == nil {
			return nil
		}
		countries, failed := s.detector.DetectCountries(gctx, polyline)
		summary.Countries = countries
		summary.FailedLookups = failed
		if s.advisor != nil {
			summary.Advisories = s.advisor.BuildAdvisories(countries, polyline)
		}
		return nil
	})

	g.Go(func() error {
		if s.pois == nil {
			return nil
		}
		pois, failed := s.pois.FindPOIs(gctx, polyline)
		summary.POIs = pois
		summary.FailedSamples = failed
		return nil
	})

	// Branches never return errors; partial results beat none.
	_ = g.Wait()

	return summary
}
