package routecache

import (
	"context"
	"testing"
	"time"

	"traseu_backend/internal/models"
	"traseu_backend/platform/logger"

	"github.com/alicebob/miniredis/v2"
)

type testRedisConfig struct {
	url string
	ttl time.Duration
}

func (c testRedisConfig) GetRedisURL() string              { return c.url }
func (c testRedisConfig) GetSearchCacheTTL() time.Duration { return c.ttl }

func newTestRedisStore(t *testing.T) (*RedisSearchStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	store, err := NewRedisSearchStore(testRedisConfig{url: "redis://" + mr.Addr(), ttl: time.Hour}, logger.New("development"))
	if err != nil {
		t.Fatalf("failed to create redis store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	return store, mr
}

func TestRedisSearchStoreRoundTrip(t *testing.T) {
	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	results := []models.GeoLocation{
		{Name: "Oradea", County: "Bihor", Latitude: 47.05, Longitude: 21.93, IsLocal: true},
	}
	store.PutSearchResults(ctx, "oradea", results)

	got, ok := store.GetSearchResults(ctx, "oradea")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if len(got) != 1 || got[0].Name != "Oradea" || !got[0].IsLocal {
		t.Errorf("unexpected results: %+v", got)
	}
}

func TestRedisSearchStoreMiss(t *testing.T) {
	store, _ := newTestRedisStore(t)

	if _, ok := store.GetSearchResults(context.Background(), "unknown"); ok {
		t.Error("expected cache miss for unknown key")
	}
}

func TestRedisSearchStoreExpiry(t *testing.T) {
	store, mr := newTestRedisStore(t)
	ctx := context.Background()

	store.PutSearchResults(ctx, "sibiu", []models.GeoLocation{{Name: "Sibiu", Latitude: 45.79, Longitude: 24.15}})

	mr.FastForward(2 * time.Hour)

	if _, ok := store.GetSearchResults(ctx, "sibiu"); ok {
		t.Error("entry should have expired")
	}
}

func TestRedisSearchStoreSkipsEmptyLists(t *testing.T) {
	store, _ := newTestRedisStore(t)
	ctx := context.Background()

	store.PutSearchResults(ctx, "empty", nil)

	if _, ok := store.GetSearchResults(ctx, "empty"); ok {
		t.Error("empty result lists must not be cached")
	}
}
