package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RoutePair is one aggregated endpoint pair with its view count.
type RoutePair struct {
	FromName    string    `json:"fromName"`
	ToName      string    `json:"toName"`
	ViewCount   int64     `json:"viewCount"`
	DistanceKm  int       `json:"distanceKm"`
	DurationMin int       `json:"durationMin"`
	FuelCost    float64   `json:"fuelCost"`
	LastViewed  time.Time `json:"lastViewed"`
}

// Repository persists per-pair route view counters.
type Repository interface {
	RecordView(ctx context.Context, fromName, toName string, distanceKm, durationMin int, fuelCost float64) error
	TopRoutes(ctx context.Context, limit int) ([]RoutePair, error)
}

// PostgresRepository implements Repository on the route_stats table.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// RecordView upserts the counter row for an endpoint pair. The pair is
// stored direction-insensitive so A→B and B→A share one counter.
func (r *PostgresRepository) RecordView(ctx context.Context, fromName, toName string, distanceKm, durationMin int, fuelCost float64) error {
	query := `
		INSERT INTO route_stats (name_a, name_b, view_count, distance_km, duration_min, fuel_cost, last_viewed_at)
		VALUES (LEAST($1, $2), GREATEST($1, $2), 1, $3, $4, $5, now())
		ON CONFLICT (name_a, name_b) DO UPDATE SET
			view_count = route_stats.view_count + 1,
			distance_km = EXCLUDED.distance_km,
			duration_min = EXCLUDED.duration_min,
			fuel_cost = EXCLUDED.fuel_cost,
			last_viewed_at = now()`

	if _, err := r.pool.Exec(ctx, query, fromName, toName, distanceKm, durationMin, fuelCost); err != nil {
		return fmt.Errorf("record route view: %w", err)
	}
	return nil
}

// TopRoutes returns the most viewed endpoint pairs.
func (r *PostgresRepository) TopRoutes(ctx context.Context, limit int) ([]RoutePair, error) {
	query := `
		SELECT name_a, name_b, view_count, distance_km, duration_min, fuel_cost, last_viewed_at
		FROM route_stats
		ORDER BY view_count DESC, last_viewed_at DESC
		LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query top routes: %w", err)
	}
	defer rows.Close()

	var pairs []RoutePair
	for rows.Next() {
		var pair RoutePair
		if err := rows.Scan(&pair.FromName, &pair.ToName, &pair.ViewCount, &pair.DistanceKm, &pair.DurationMin, &pair.FuelCost, &pair.LastViewed); err != nil {
			return nil, fmt.Errorf("scan route pair: %w", err)
		}
		pairs = append(pairs, pair)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate route pairs: %w", err)
	}

	return pairs, nil
}

var _ Repository = (*PostgresRepository)(nil)
