package geocode

import (
	"context"
	"fmt"

	"traseu_backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides read access to the local gazetteer.
type Repository interface {
	// SearchLocalities matches the original spelling (diacritic-sensitive).
	SearchLocalities(ctx context.Context, prefix string, limit int) ([]models.GeoLocation, error)
	// SearchASCIILocalities matches the lower-confidence ASCII-folded table.
	SearchASCIILocalities(ctx context.Context, foldedPrefix string, limit int) ([]models.GeoLocation, error)
}

// PostgresRepository implements Repository on the localities tables.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

const localityColumns = `name, county, latitude, longitude, locality_type, population`

func (r *PostgresRepository) SearchLocalities(ctx context.Context, prefix string, limit int) ([]models.GeoLocation, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM localities
		WHERE name ILIKE $1 || '%%'
		ORDER BY population DESC NULLS LAST, name ASC
		LIMIT $2`, localityColumns)

	return r.queryLocalities(ctx, query, prefix, limit)
}

func (r *PostgresRepository) SearchASCIILocalities(ctx context.Context, foldedPrefix string, limit int) ([]models.GeoLocation, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM localities_ascii
		WHERE name_ascii LIKE $1 || '%%'
		ORDER BY population DESC NULLS LAST, name ASC
		LIMIT $2`, localityColumns)

	return r.queryLocalities(ctx, query, foldedPrefix, limit)
}

func (r *PostgresRepository) queryLocalities(ctx context.Context, query, prefix string, limit int) ([]models.GeoLocation, error) {
	rows, err := r.pool.Query(ctx, query, prefix, limit)
	if err != nil {
		return nil, fmt.Errorf("query localities: %w", err)
	}
	defer rows.Close()

	var results []models.GeoLocation
	for rows.Next() {
		var loc models.GeoLocation
		if err := rows.Scan(&loc.Name, &loc.County, &loc.Latitude, &loc.Longitude, &loc.Type, &loc.Population); err != nil {
			return nil, fmt.Errorf("scan locality: %w", err)
		}
		loc.Country = localCountryName
		loc.IsLocal = true
		results = append(results, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate localities: %w", err)
	}

	return results, nil
}

var _ Repository = (*PostgresRepository)(nil)
