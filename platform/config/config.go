// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// JWTConfig provides JWT validation settings for the admin middleware.
type JWTConfig interface {
	GetJWTAdminSecret() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// RoutingConfig provides settings for the route computation engine.
type RoutingConfig interface {
	GetOSRMBaseURL() string
	GetUserAgent() string
	GetFuelConsumptionPer100Km() float64
	GetFuelPricePerLiter() float64
}

// GeocodeConfig provides settings for the geocode resolver.
type GeocodeConfig interface {
	GetNominatimSearchURL() string
	GetUserAgent() string
}

// ReverseGeocodeConfig provides settings for the country-crossing detector.
type ReverseGeocodeConfig interface {
	GetNominatimReverseURL() string
	GetReverseGeocodeInterval() time.Duration
	GetUserAgent() string
}

// OverpassConfig provides settings for POI enrichment.
type OverpassConfig interface {
	GetOverpassURL() string
	GetOverpassInterval() time.Duration
	GetUserAgent() string
}

// CacheConfig provides settings for the route and search caches.
type CacheConfig interface {
	GetRouteCacheTTL() time.Duration
	GetSearchCacheTTL() time.Duration
	GetRouteCacheCapacity() int
	GetRecentRoutesCap() int
}

// RedisConfig provides settings for the optional Redis search cache.
type RedisConfig interface {
	GetRedisURL() string
	GetSearchCacheTTL() time.Duration
}

// SchedulerConfig provides settings for the cache warmup scheduler.
type SchedulerConfig interface {
	GetRedisURL() string
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
	GetWarmupInterval() time.Duration
	GetWarmupTopN() int
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                     string
	HTTPAddr                string
	DatabaseURL             string
	RedisURL                string
	JWTAdminSecret          string
	CORSAllowAll            bool
	CORSOrigins             []string
	CORSAllowCreds          bool
	OSRMBaseURL             string
	NominatimSearchURL      string
	NominatimReverseURL     string
	OverpassURL             string
	UserAgent               string
	FuelConsumptionPer100Km float64
	FuelPricePerLiter       float64
	RouteCacheTTL           time.Duration
	SearchCacheTTL          time.Duration
	RouteCacheCapacity      int
	RecentRoutesCap         int
	ReverseGeocodeInterval  time.Duration
	OverpassInterval        time.Duration
	AsynqQueueName          string
	AsynqConcurrency        int
	WarmupInterval          time.Duration
	WarmupTopN              int
}

// =============================================================================
// Interface Implementations
// =============================================================================

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

// JWTConfig implementation
func (c *Config) GetJWTAdminSecret() string { return c.JWTAdminSecret }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// RoutingConfig implementation
func (c *Config) GetOSRMBaseURL() string                { return c.OSRMBaseURL }
func (c *Config) GetFuelConsumptionPer100Km() float64   { return c.FuelConsumptionPer100Km }
func (c *Config) GetFuelPricePerLiter() float64         { return c.FuelPricePerLiter }

// GeocodeConfig / ReverseGeocodeConfig / OverpassConfig implementation
func (c *Config) GetNominatimSearchURL() string              { return c.NominatimSearchURL }
func (c *Config) GetNominatimReverseURL() string             { return c.NominatimReverseURL }
func (c *Config) GetReverseGeocodeInterval() time.Duration   { return c.ReverseGeocodeInterval }
func (c *Config) GetOverpassURL() string                     { return c.OverpassURL }
func (c *Config) GetOverpassInterval() time.Duration         { return c.OverpassInterval }
func (c *Config) GetUserAgent() string                       { return c.UserAgent }

// CacheConfig implementation
func (c *Config) GetRouteCacheTTL() time.Duration  { return c.RouteCacheTTL }
func (c *Config) GetSearchCacheTTL() time.Duration { return c.SearchCacheTTL }
func (c *Config) GetRouteCacheCapacity() int       { return c.RouteCacheCapacity }
func (c *Config) GetRecentRoutesCap() int          { return c.RecentRoutesCap }

// RedisConfig / SchedulerConfig implementation
func (c *Config) GetRedisURL() string               { return c.RedisURL }
func (c *Config) GetAsynqQueueName() string         { return c.AsynqQueueName }
func (c *Config) GetAsynqConcurrency() int          { return c.AsynqConcurrency }
func (c *Config) GetWarmupInterval() time.Duration  { return c.WarmupInterval }
func (c *Config) GetWarmupTopN() int                { return c.WarmupTopN }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:                     getEnv("APP_ENV", "development"),
		HTTPAddr:                getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:             getEnv("DATABASE_URL", ""),
		RedisURL:                getEnv("REDIS_URL", ""),
		JWTAdminSecret:          getEnv("JWT_ADMIN_SECRET", ""),
		CORSAllowAll:            corsAllowAll,
		CORSOrigins:             corsOrigins,
		CORSAllowCreds:          strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		OSRMBaseURL:             getEnv("OSRM_BASE_URL", "https://router.project-osrm.org"),
		NominatimSearchURL:      getEnv("NOMINATIM_SEARCH_URL", "https://nominatim.openstreetmap.org/search"),
		NominatimReverseURL:     getEnv("NOMINATIM_REVERSE_URL", "https://nominatim.openstreetmap.org/reverse"),
		OverpassURL:             getEnv("OVERPASS_URL", "https://overpass-api.de/api/interpreter"),
		UserAgent:               getEnv("HTTP_USER_AGENT", "TraseuApp/1.0"),
		FuelConsumptionPer100Km: mustFloat(getEnv("FUEL_CONSUMPTION_PER_100KM", "7")),
		FuelPricePerLiter:       mustFloat(getEnv("FUEL_PRICE_PER_LITER", "7.25")),
		RouteCacheTTL:           mustDuration(getEnv("ROUTE_CACHE_TTL", "6h")),
		SearchCacheTTL:          mustDuration(getEnv("SEARCH_CACHE_TTL", "24h")),
		RouteCacheCapacity:      mustInt(getEnv("ROUTE_CACHE_CAPACITY", "500")),
		RecentRoutesCap:         mustInt(getEnv("RECENT_ROUTES_CAP", "10")),
		ReverseGeocodeInterval:  mustDuration(getEnv("REVERSE_GEOCODE_INTERVAL", "100ms")),
		OverpassInterval:        mustDuration(getEnv("OVERPASS_INTERVAL", "200ms")),
		AsynqQueueName:          getEnv("ASYNQ_QUEUE", "default"),
		AsynqConcurrency:        mustInt(getEnv("ASYNQ_CONCURRENCY", "10")),
		WarmupInterval:          mustDuration(getEnv("WARMUP_INTERVAL", "6h")),
		WarmupTopN:              mustInt(getEnv("WARMUP_TOP_N", "5")),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTAdminSecret == "" {
		return nil, fmt.Errorf("JWT_ADMIN_SECRET is required")
	}
	if cfg.FuelConsumptionPer100Km <= 0 || cfg.FuelPricePerLiter <= 0 {
		return nil, fmt.Errorf("fuel consumption and price must be positive")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return result
}

func mustFloat(value string) float64 {
	result, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
