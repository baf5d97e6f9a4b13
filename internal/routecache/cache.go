// Package routecache provides the in-memory, TTL-based store for computed
// routes and geocode search results. Entries are evicted lazily on lookup;
// a capacity bound evicts oldest entries on insert.
package routecache

import (
	"context"
	"sync"
	"time"

	"traseu_backend/internal/models"
	"traseu_backend/platform/config"
	"traseu_backend/platform/textnorm"
)

type routeEntry struct {
	cached   models.CachedRoute
	storedAt time.Time
}

type searchEntry struct {
	results  []models.GeoLocation
	storedAt time.Time
}

// Stats is a snapshot of cache occupancy for the admin endpoint.
type Stats struct {
	Routes   int `json:"routes"`
	Searches int `json:"searches"`
	Recent   int `json:"recent"`
}

// Cache is the process-wide route and search-result cache. All access goes
// through one mutex; overlapping HTTP requests would otherwise race.
type Cache struct {
	mu sync.Mutex

	routes      map[string]routeEntry
	routeOrder  []string
	searches    map[string]searchEntry
	searchOrder []string
	recent      []models.RecentRoute

	routeTTL  time.Duration
	searchTTL time.Duration
	capacity  int
	recentCap int

	now func() time.Time
}

// New creates a cache with the configured TTLs and bounds.
func New(cfg config.CacheConfig) *Cache {
	capacity := cfg.GetRouteCacheCapacity()
	if capacity < 1 {
		capacity = 1
	}
	recentCap := cfg.GetRecentRoutesCap()
	if recentCap < 1 {
		recentCap = 1
	}

	return &Cache{
		routes:    make(map[string]routeEntry),
		searches:  make(map[string]searchEntry),
		routeTTL:  cfg.GetRouteCacheTTL(),
		searchTTL: cfg.GetSearchCacheTTL(),
		capacity:  capacity,
		recentCap: recentCap,
		now:       time.Now,
	}
}

// routeKey builds the order-sensitive key for a (from, to) pair.
func routeKey(from, to string) string {
	return textnorm.Fold(from) + "|" + textnorm.Fold(to)
}

// GetRoute returns the cached route for the endpoint pair, or false when
// absent or expired. Hits return the stored data verbatim.
func (c *Cache) GetRoute(from, to string) (models.CachedRoute, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := routeKey(from, to)
	entry, ok := c.routes[key]
	if !ok {
		return models.CachedRoute{}, false
	}
	if c.expired(entry.storedAt, c.routeTTL) {
		delete(c.routes, key)
		c.routeOrder = removeKey(c.routeOrder, key)
		return models.CachedRoute{}, false
	}
	return entry.cached, true
}

// PutRoute stores a route and its alternatives, overwriting any entry for
// the same key, and pushes a summary onto the recent list.
func (c *Cache) PutRoute(from, to string, route models.RouteResult, alternatives []models.AlternativeRoute) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := routeKey(from, to)
	storedAt := c.now()

	if _, exists := c.routes[key]; exists {
		c.routeOrder = removeKey(c.routeOrder, key)
	} else if len(c.routes) >= c.capacity {
		c.evictOldestRouteLocked()
	}

	c.routes[key] = routeEntry{
		cached: models.CachedRoute{
			From:         from,
			To:           to,
			Route:        route,
			Alternatives: alternatives,
			CachedAt:     storedAt,
		},
		storedAt: storedAt,
	}
	c.routeOrder = append(c.routeOrder, key)

	c.pushRecentLocked(models.RecentRoute{
		From:        from,
		To:          to,
		DistanceKm:  route.DistanceKm,
		DurationMin: route.DurationMin,
		CachedAt:    storedAt,
	})
}

// GetRecent returns up to n most recently cached routes, most recent first.
func (c *Cache) GetRecent(n int) []models.RecentRoute {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n > len(c.recent) {
		n = len(c.recent)
	}
	out := make([]models.RecentRoute, n)
	copy(out, c.recent[:n])
	return out
}

// GetSearchResults returns the cached candidate list for a normalized query.
func (c *Cache) GetSearchResults(_ context.Context, normalizedQuery string) ([]models.GeoLocation, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.searches[normalizedQuery]
	if !ok {
		return nil, false
	}
	if c.expired(entry.storedAt, c.searchTTL) {
		delete(c.searches, normalizedQuery)
		c.searchOrder = removeKey(c.searchOrder, normalizedQuery)
		return nil, false
	}
	return entry.results, true
}

// PutSearchResults stores a candidate list under its normalized query key.
func (c *Cache) PutSearchResults(_ context.Context, normalizedQuery string, results []models.GeoLocation) {
	if len(results) == 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.searches[normalizedQuery]; exists {
		c.searchOrder = removeKey(c.searchOrder, normalizedQuery)
	} else if len(c.searches) >= c.capacity {
		c.evictOldestSearchLocked()
	}

	c.searches[normalizedQuery] = searchEntry{results: results, storedAt: c.now()}
	c.searchOrder = append(c.searchOrder, normalizedQuery)
}

// FlushRoutes drops all route entries and the recent list.
func (c *Cache) FlushRoutes() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.routes = make(map[string]routeEntry)
	c.routeOrder = nil
	c.recent = nil
}

// Snapshot returns current occupancy counts.
func (c *Cache) Snapshot() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Stats{
		Routes:   len(c.routes),
		Searches: len(c.searches),
		Recent:   len(c.recent),
	}
}

func (c *Cache) expired(storedAt time.Time, ttl time.Duration) bool {
	if ttl <= 0 {
		return false
	}
	return c.now().Sub(storedAt) > ttl
}

func (c *Cache) evictOldestRouteLocked() {
	if len(c.routeOrder) == 0 {
		return
	}
	oldest := c.routeOrder[0]
	c.routeOrder = c.routeOrder[1:]
	delete(c.routes, oldest)
}

func (c *Cache) evictOldestSearchLocked() {
	if len(c.searchOrder) == 0 {
		return
	}
	oldest := c.searchOrder[0]
	c.searchOrder = c.searchOrder[1:]
	delete(c.searches, oldest)
}

func (c *Cache) pushRecentLocked(entry models.RecentRoute) {
	// Re-caching the same pair moves it to the front instead of duplicating.
	key := routeKey(entry.From, entry.To)
	for i, existing := range c.recent {
		if routeKey(existing.From, existing.To) == key {
			c.recent = append(c.recent[:i], c.recent[i+1:]...)
			break
		}
	}

	c.recent = append([]models.RecentRoute{entry}, c.recent...)
	if len(c.recent) > c.recentCap {
		c.recent = c.recent[:c.recentCap]
	}
}

func removeKey(order []string, key string) []string {
	for i, k := range order {
		if k == key {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}
