package routing

import (
	"context"
	"fmt"
	"math"

	"traseu_backend/internal/events"
	"traseu_backend/internal/models"
	"traseu_backend/internal/routecache"
	"traseu_backend/platform/apperr"
	"traseu_backend/platform/config"
	"traseu_backend/platform/geo"
	"traseu_backend/platform/logger"
	"traseu_backend/platform/validator"
)

const maxAlternatives = 3

// RouteCache is the subset of the route cache the engine depends on.
type RouteCache interface {
	GetRoute(from, to string) (models.CachedRoute, bool)
	PutRoute(from, to string, route models.RouteResult, alternatives []models.AlternativeRoute)
	GetRecent(n int) []models.RecentRoute
	Snapshot() routecache.Stats
	FlushRoutes()
}

// Router is the external routing service.
type Router interface {
	Route(ctx context.Context, from, to geo.Point) ([]osrmRoute, error)
}

// Service computes primary and alternative routes between two endpoints.
type Service struct {
	cache  RouteCache
	router Router
	bus    events.Bus
	cfg    config.RoutingConfig
	val    *validator.Validator
	log    *logger.Logger

	// Enrichment stages, attached after construction to keep module
	// initialization order simple.
	detector CountryDetector
	advisor  Advisor
	pois     POIFinder
}

func NewService(cache RouteCache, router Router, bus events.Bus, cfg config.RoutingConfig, val *validator.Validator, log *logger.Logger) *Service {
	return &Service{cache: cache, router: router, bus: bus, cfg: cfg, val: val, log: log}
}

// ComputeRoute returns the cached route for the endpoint pair, or computes
// and caches a fresh one. An unreachable pair surfaces as a not-found error,
// never as an internal failure.
func (s *Service) ComputeRoute(ctx context.Context, from, to PlanEndpoint) (*PlanResponse, error) {
	if err := s.validateEndpoints(from, to); err != nil {
		return nil, err
	}

	if cached, ok := s.cache.GetRoute(from.Name, to.Name); ok {
		return &PlanResponse{
			Route:        cached.Route,
			Alternatives: cached.Alternatives,
			Cached:       true,
		}, nil
	}

	result, err := s.compute(ctx, from, to)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, events.RouteComputed{
		BaseEvent:   events.NewBaseEvent(),
		FromName:    from.Name,
		ToName:      to.Name,
		DistanceKm:  result.Route.DistanceKm,
		DurationMin: result.Route.DurationMin,
		FuelCost:    result.Route.FuelCost,
	})

	return result, nil
}

// WarmRoute recomputes and re-caches the endpoint pair unconditionally. It
// skips the cache lookup so a still-valid entry gets its TTL restarted, and
// publishes no event: a warmup is not a user view and must not inflate the
// pair's statistics.
func (s *Service) WarmRoute(ctx context.Context, from, to PlanEndpoint) error {
	if err := s.validateEndpoints(from, to); err != nil {
		return err
	}

	_, err := s.compute(ctx, from, to)
	return err
}

// validateEndpoints checks both endpoints; they can arrive from outside the
// HTTP binding path (warmup tasks), so the service validates them itself.
func (s *Service) validateEndpoints(from, to PlanEndpoint) error {
	if err := s.val.Struct(from); err != nil {
		return apperr.Validation("invalid origin endpoint")
	}
	if err := s.val.Struct(to); err != nil {
		return apperr.Validation("invalid destination endpoint")
	}
	return nil
}

// compute asks the routing service for routes, ranks the alternatives and
// writes the result through to the cache.
func (s *Service) compute(ctx context.Context, from, to PlanEndpoint) (*PlanResponse, error) {
	routes, err := s.router.Route(ctx,
		geo.Point{Lat: from.Latitude, Lon: from.Longitude},
		geo.Point{Lat: to.Latitude, Lon: to.Longitude},
	)
	if err != nil {
		s.log.Warn("route computation failed", "from", from.Name, "to", to.Name, "error", err)
		return nil, apperr.NotFound(fmt.Sprintf("no route found between %s and %s", from.Name, to.Name))
	}

	primary := s.buildResult(routes[0])

	var alternatives []models.AlternativeRoute
	for i, raw := range routes[1:] {
		if i >= maxAlternatives {
			break
		}
		alt := s.buildResult(raw)
		savings := models.Savings{
			TimeMin:    primary.DurationMin - alt.DurationMin,
			DistanceKm: primary.DistanceKm - alt.DistanceKm,
			FuelCost:   roundMoney(primary.FuelCost - alt.FuelCost),
		}
		alternatives = append(alternatives, models.AlternativeRoute{
			RouteResult: alt,
			Name:        fmt.Sprintf("Alternative route %d", i+1),
			Description: describeAlternative(savings),
			Savings:     savings,
		})
	}

	s.cache.PutRoute(from.Name, to.Name, primary, alternatives)

	return &PlanResponse{Route: primary, Alternatives: alternatives}, nil
}

// RecentRoutes returns the most recently cached routes, newest first.
func (s *Service) RecentRoutes(n int) []models.RecentRoute {
	return s.cache.GetRecent(n)
}

// CacheStats exposes cache occupancy for the admin endpoint.
func (s *Service) CacheStats() routecache.Stats {
	return s.cache.Snapshot()
}

// FlushRouteCache drops all cached routes, keeping search results.
func (s *Service) FlushRouteCache() {
	s.cache.FlushRoutes()
}

// buildResult derives a RouteResult from a raw route: rounded distance and
// duration, fuel cost, (lat, lon) polyline and parsed steps.
func (s *Service) buildResult(raw osrmRoute) models.RouteResult {
	distanceKm := int(math.Round(raw.Distance / 1000))
	durationMin := int(math.Round(raw.Duration / 60))

	return models.RouteResult{
		DistanceKm:  distanceKm,
		DurationMin: durationMin,
		Coordinates: toLatLon(raw.Geometry.Coordinates),
		Steps:       parseSteps(raw.Legs),
		FuelCost:    fuelCost(distanceKm, s.cfg.GetFuelConsumptionPer100Km(), s.cfg.GetFuelPricePerLiter()),
		TollCost:    0,
	}
}

// fuelCost estimates the fuel expense for a route, rounded to 2 decimals.
func fuelCost(distanceKm int, consumptionPer100Km, pricePerLiter float64) float64 {
	return roundMoney(float64(distanceKm) * consumptionPer100Km / 100 * pricePerLiter)
}

func roundMoney(value float64) float64 {
	return math.Round(value*100) / 100
}

// toLatLon converts GeoJSON (lon, lat) pairs to (lat, lon) points.
func toLatLon(coordinates [][]float64) []geo.Point {
	points := make([]geo.Point, 0, len(coordinates))
	for _, pair := range coordinates {
		if len(pair) < 2 {
			continue
		}
		points = append(points, geo.Point{Lat: pair[1], Lon: pair[0]})
	}
	return points
}

func describeAlternative(savings models.Savings) string {
	switch {
	case savings.TimeMin > 0:
		return fmt.Sprintf("Cu %d min mai rapid decât traseul principal", savings.TimeMin)
	case savings.TimeMin < 0:
		return fmt.Sprintf("Cu %d min mai lent decât traseul principal", -savings.TimeMin)
	default:
		return "Durată similară cu traseul principal"
	}
}
