package routing

import (
	"context"
	"testing"

	"traseu_backend/internal/events"
	"traseu_backend/internal/models"
	"traseu_backend/internal/routecache"
	"traseu_backend/platform/apperr"
	"traseu_backend/platform/geo"
	"traseu_backend/platform/logger"
	"traseu_backend/platform/validator"
)

type testRoutingConfig struct {
	consumption float64
	price       float64
}

func (c testRoutingConfig) GetOSRMBaseURL() string              { return "http://osrm.test" }
func (c testRoutingConfig) GetUserAgent() string                { return "test/1.0" }
func (c testRoutingConfig) GetFuelConsumptionPer100Km() float64 { return c.consumption }
func (c testRoutingConfig) GetFuelPricePerLiter() float64       { return c.price }

type mockRouteCache struct {
	stored   map[string]models.CachedRoute
	gets     int
	puts     int
	lastFrom string
	lastTo   string
}

func newMockRouteCache() *mockRouteCache {
	return &mockRouteCache{stored: make(map[string]models.CachedRoute)}
}

func (m *mockRouteCache) GetRoute(from, to string) (models.CachedRoute, bool) {
	m.gets++
	cached, ok := m.stored[from+"|"+to]
	return cached, ok
}

func (m *mockRouteCache) PutRoute(from, to string, route models.RouteResult, alternatives []models.AlternativeRoute) {
	m.puts++
	m.lastFrom = from
	m.lastTo = to
	m.stored[from+"|"+to] = models.CachedRoute{From: from, To: to, Route: route, Alternatives: alternatives}
}

func (m *mockRouteCache) GetRecent(n int) []models.RecentRoute { return nil }
func (m *mockRouteCache) Snapshot() routecache.Stats           { return routecache.Stats{Routes: len(m.stored)} }
func (m *mockRouteCache) FlushRoutes()                         { m.stored = make(map[string]models.CachedRoute) }

type mockRouter struct {
	routes []osrmRoute
	err    error
	calls  int
}

func (m *mockRouter) Route(_ context.Context, _, _ geo.Point) ([]osrmRoute, error) {
	m.calls++
	return m.routes, m.err
}

type mockBus struct {
	published []events.Event
}

func (m *mockBus) Publish(_ context.Context, event events.Event) {
	m.published = append(m.published, event)
}

func (m *mockBus) PublishSync(_ context.Context, _ events.Event) error { return nil }
func (m *mockBus) Subscribe(_ string, _ events.Handler)                {}

func rawRoute(distanceMeters, durationSeconds float64) osrmRoute {
	return osrmRoute{
		Distance: distanceMeters,
		Duration: durationSeconds,
		Geometry: osrmGeometry{Coordinates: [][]float64{{23.59, 46.77}, {21.93, 47.05}}},
	}
}

func endpoints() (PlanEndpoint, PlanEndpoint) {
	from := PlanEndpoint{Name: "Cluj-Napoca", Latitude: 46.77, Longitude: 23.59}
	to := PlanEndpoint{Name: "Oradea", Latitude: 47.05, Longitude: 21.93}
	return from, to
}

func newTestRoutingService(cache RouteCache, router Router, bus events.Bus) *Service {
	return NewService(cache, router, bus, testRoutingConfig{consumption: 7, price: 7.25}, validator.New(), logger.New("development"))
}

func TestComputeRouteReturnsCachedDataWithoutCallingRouter(t *testing.T) {
	cache := newMockRouteCache()
	cache.stored["Cluj-Napoca|Oradea"] = models.CachedRoute{
		Route: models.RouteResult{DistanceKm: 152, DurationMin: 148, FuelCost: 77.14},
	}
	router := &mockRouter{}
	svc := newTestRoutingService(cache, router, &mockBus{})

	from, to := endpoints()
	result, err := svc.ComputeRoute(context.Background(), from, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Cached {
		t.Error("expected the result to be marked as cached")
	}
	if result.Route.DistanceKm != 152 || result.Route.FuelCost != 77.14 {
		t.Errorf("cached data must be returned verbatim: %+v", result.Route)
	}
	if router.calls != 0 {
		t.Errorf("cache hit must not call the routing service, got %d calls", router.calls)
	}
}

func TestComputeRouteFuelCost(t *testing.T) {
	cache := newMockRouteCache()
	router := &mockRouter{routes: []osrmRoute{rawRoute(200000, 7200)}}
	svc := newTestRoutingService(cache, router, &mockBus{})

	from, to := endpoints()
	result, err := svc.ComputeRoute(context.Background(), from, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 200 km at 7 l/100km and 7.25 per liter.
	if result.Route.FuelCost != 101.50 {
		t.Errorf("expected fuel cost 101.50, got %v", result.Route.FuelCost)
	}
	if result.Route.DistanceKm != 200 || result.Route.DurationMin != 120 {
		t.Errorf("unexpected rounding: %+v", result.Route)
	}
	if result.Route.TollCost != 0 {
		t.Errorf("toll cost must be zero, got %v", result.Route.TollCost)
	}
}

func TestComputeRouteConvertsPolylineToLatLon(t *testing.T) {
	router := &mockRouter{routes: []osrmRoute{rawRoute(152000, 8880)}}
	svc := newTestRoutingService(newMockRouteCache(), router, &mockBus{})

	from, to := endpoints()
	result, err := svc.ComputeRoute(context.Background(), from, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first := result.Route.Coordinates[0]
	if first.Lat != 46.77 || first.Lon != 23.59 {
		t.Errorf("polyline must be in (lat, lon) order, got %+v", first)
	}
}

func TestComputeRouteAlternativeSavings(t *testing.T) {
	router := &mockRouter{routes: []osrmRoute{
		rawRoute(200000, 7200), // primary: 120 min
		rawRoute(210000, 6000), // alternative: 100 min
	}}
	svc := newTestRoutingService(newMockRouteCache(), router, &mockBus{})

	from, to := endpoints()
	result, err := svc.ComputeRoute(context.Background(), from, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Alternatives) != 1 {
		t.Fatalf("expected 1 alternative, got %d", len(result.Alternatives))
	}
	alt := result.Alternatives[0]
	if alt.Name != "Alternative route 1" {
		t.Errorf("unexpected label: %q", alt.Name)
	}
	if alt.Savings.TimeMin != 20 {
		t.Errorf("expected time savings 20, got %d", alt.Savings.TimeMin)
	}
	if alt.Savings.DistanceKm != -10 {
		t.Errorf("expected distance savings -10, got %d", alt.Savings.DistanceKm)
	}
}

func TestComputeRouteNegativeSavings(t *testing.T) {
	router := &mockRouter{routes: []osrmRoute{
		rawRoute(200000, 6000), // primary: 100 min
		rawRoute(200000, 7200), // alternative: 120 min
	}}
	svc := newTestRoutingService(newMockRouteCache(), router, &mockBus{})

	from, to := endpoints()
	result, err := svc.ComputeRoute(context.Background(), from, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := result.Alternatives[0].Savings.TimeMin; got != -20 {
		t.Errorf("expected time savings -20, got %d", got)
	}
}

func TestComputeRouteCapsAlternativesAtThree(t *testing.T) {
	router := &mockRouter{routes: []osrmRoute{
		rawRoute(200000, 7200),
		rawRoute(201000, 7300),
		rawRoute(202000, 7400),
		rawRoute(203000, 7500),
		rawRoute(204000, 7600),
	}}
	svc := newTestRoutingService(newMockRouteCache(), router, &mockBus{})

	from, to := endpoints()
	result, err := svc.ComputeRoute(context.Background(), from, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Alternatives) != 3 {
		t.Errorf("expected at most 3 alternatives, got %d", len(result.Alternatives))
	}
}

func TestComputeRouteRejectsInvalidCoordinates(t *testing.T) {
	router := &mockRouter{routes: []osrmRoute{rawRoute(200000, 7200)}}
	svc := newTestRoutingService(newMockRouteCache(), router, &mockBus{})

	from := PlanEndpoint{Name: "Nicăieri", Latitude: 95, Longitude: 23.59}
	_, to := endpoints()

	_, err := svc.ComputeRoute(context.Background(), from, to)

	if apperr.GetKind(err) != apperr.KindValidation {
		t.Errorf("expected a validation error, got %v", err)
	}
	if router.calls != 0 {
		t.Error("invalid endpoints must not reach the routing service")
	}
}

func TestComputeRouteSurfacesNoRouteAsNotFound(t *testing.T) {
	router := &mockRouter{err: ErrNoRoute}
	cache := newMockRouteCache()
	svc := newTestRoutingService(cache, router, &mockBus{})

	from, to := endpoints()
	_, err := svc.ComputeRoute(context.Background(), from, to)

	if apperr.GetKind(err) != apperr.KindNotFound {
		t.Errorf("expected a not-found error, got %v", err)
	}
	if cache.puts != 0 {
		t.Error("failed computations must not be cached")
	}
}

func TestComputeRoutePublishesEventOnFreshComputationOnly(t *testing.T) {
	bus := &mockBus{}
	router := &mockRouter{routes: []osrmRoute{rawRoute(200000, 7200)}}
	cache := newMockRouteCache()
	svc := newTestRoutingService(cache, router, bus)

	from, to := endpoints()
	if _, err := svc.ComputeRoute(context.Background(), from, to); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bus.published) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(bus.published))
	}
	event, ok := bus.published[0].(events.RouteComputed)
	if !ok || event.FromName != "Cluj-Napoca" || event.DistanceKm != 200 {
		t.Errorf("unexpected event: %+v", bus.published[0])
	}

	// Second call hits the cache and must stay silent.
	if _, err := svc.ComputeRoute(context.Background(), from, to); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bus.published) != 1 {
		t.Errorf("cache hits must not publish events, got %d", len(bus.published))
	}
}

func TestWarmRouteRefreshesCacheWithoutRecordingView(t *testing.T) {
	bus := &mockBus{}
	cache := newMockRouteCache()
	cache.stored["Cluj-Napoca|Oradea"] = models.CachedRoute{
		Route: models.RouteResult{DistanceKm: 152},
	}
	router := &mockRouter{routes: []osrmRoute{rawRoute(152000, 8880)}}
	svc := newTestRoutingService(cache, router, bus)

	from, to := endpoints()
	if err := svc.WarmRoute(context.Background(), from, to); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if router.calls != 1 {
		t.Errorf("warmup must recompute even while the entry is still cached, got %d calls", router.calls)
	}
	if cache.puts != 1 {
		t.Errorf("warmup must rewrite the cache entry, got %d writes", cache.puts)
	}
	if len(bus.published) != 0 {
		t.Errorf("warmups are not user views and must not publish events, got %d", len(bus.published))
	}
}

func TestComputeRouteAcceptsZeroCoordinate(t *testing.T) {
	router := &mockRouter{routes: []osrmRoute{rawRoute(200000, 7200)}}
	svc := newTestRoutingService(newMockRouteCache(), router, &mockBus{})

	// The equator and the prime meridian are valid positions.
	from := PlanEndpoint{Name: "São Tomé", Latitude: 0, Longitude: 6.73}
	to := PlanEndpoint{Name: "Greenwich", Latitude: 51.48, Longitude: 0}

	if _, err := svc.ComputeRoute(context.Background(), from, to); err != nil {
		t.Fatalf("zero is a legitimate coordinate value, got %v", err)
	}
	if router.calls != 1 {
		t.Errorf("expected the route to be computed, got %d calls", router.calls)
	}
}
