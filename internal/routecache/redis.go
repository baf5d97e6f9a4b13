package routecache

import (
	"context"
	"encoding/json"
	"time"

	"traseu_backend/internal/models"
	"traseu_backend/platform/config"
	"traseu_backend/platform/logger"

	"github.com/redis/go-redis/v9"
)

const searchKeyPrefix = "traseu:search:"

// RedisSearchStore is a Redis-backed search-result cache for multi-instance
// deployments where an in-process map would cause duplicate Nominatim calls.
// Route entries stay in memory regardless; they are large and instance-local
// staleness is acceptable within the TTL.
type RedisSearchStore struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// NewRedisSearchStore connects to Redis using the configured URL.
func NewRedisSearchStore(cfg config.RedisConfig, log *logger.Logger) (*RedisSearchStore, error) {
	opt, err := redis.ParseURL(cfg.GetRedisURL())
	if err != nil {
		return nil, err
	}

	return &RedisSearchStore{
		client: redis.NewClient(opt),
		ttl:    cfg.GetSearchCacheTTL(),
		log:    log,
	}, nil
}

// Close releases the Redis connection.
func (s *RedisSearchStore) Close() error {
	return s.client.Close()
}

// GetSearchResults returns the cached candidate list for a normalized query.
// Redis failures degrade to a cache miss.
func (s *RedisSearchStore) GetSearchResults(ctx context.Context, normalizedQuery string) ([]models.GeoLocation, bool) {
	data, err := s.client.Get(ctx, searchKeyPrefix+normalizedQuery).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.log.Warn("redis search cache read failed", "error", err)
		}
		return nil, false
	}

	var results []models.GeoLocation
	if err := json.Unmarshal(data, &results); err != nil {
		s.log.Warn("redis search cache entry corrupt", "error", err)
		return nil, false
	}
	return results, true
}

// PutSearchResults stores a candidate list under its normalized query key.
// Redis failures are logged and otherwise ignored; caching is best-effort.
func (s *RedisSearchStore) PutSearchResults(ctx context.Context, normalizedQuery string, results []models.GeoLocation) {
	if len(results) == 0 {
		return
	}

	data, err := json.Marshal(results)
	if err != nil {
		s.log.Warn("redis search cache marshal failed", "error", err)
		return
	}

	if err := s.client.Set(ctx, searchKeyPrefix+normalizedQuery, data, s.ttl).Err(); err != nil {
		s.log.Warn("redis search cache write failed", "error", err)
	}
}
