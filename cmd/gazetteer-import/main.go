// Command gazetteer-import loads a locality CSV into the gazetteer tables.
// Expected columns: name, county, latitude, longitude, type, population
// (population may be empty). The ASCII table is derived during import.
package main

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"traseu_backend/platform/config"
	"traseu_backend/platform/db"
	"traseu_backend/platform/logger"
	"traseu_backend/platform/textnorm"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type locality struct {
	name       string
	county     string
	latitude   float64
	longitude  float64
	kind       string
	population *int64
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)

	if len(os.Args) < 2 {
		log.Error("usage: gazetteer-import <localities.csv>")
		os.Exit(1)
	}
	path := os.Args[1]

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	file, err := os.Open(path)
	if err != nil {
		log.Error("failed to open csv", "path", path, "error", err)
		os.Exit(1)
	}
	defer func() {
		_ = file.Close()
	}()

	imported, skipped, err := importCSV(ctx, pool, file, log)
	if err != nil {
		log.Error("import failed", "error", err)
		os.Exit(1)
	}

	log.Info("gazetteer import complete", "imported", imported, "skipped", skipped)
}

func importCSV(ctx context.Context, pool *pgxpool.Pool, r io.Reader, log *logger.Logger) (int, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	imported := 0
	skipped := 0
	line := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return imported, skipped, err
		}
		line++

		// Header row
		if line == 1 && strings.EqualFold(record[0], "name") {
			continue
		}

		loc, ok := parseRecord(record)
		if !ok {
			log.Warn("skipping malformed row", "line", line)
			skipped++
			continue
		}

		if err := insertLocality(ctx, pool, loc); err != nil {
			return imported, skipped, err
		}
		imported++
	}

	return imported, skipped, nil
}

func parseRecord(record []string) (locality, bool) {
	if len(record) < 4 {
		return locality{}, false
	}

	name := strings.TrimSpace(record[0])
	if name == "" {
		return locality{}, false
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(record[2]), 64)
	if err != nil {
		return locality{}, false
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(record[3]), 64)
	if err != nil {
		return locality{}, false
	}

	loc := locality{
		name:      name,
		county:    strings.TrimSpace(record[1]),
		latitude:  lat,
		longitude: lon,
	}
	if len(record) > 4 {
		loc.kind = strings.TrimSpace(record[4])
	}
	if len(record) > 5 {
		if pop, err := strconv.ParseInt(strings.TrimSpace(record[5]), 10, 64); err == nil {
			loc.population = &pop
		}
	}

	return loc, true
}

func insertLocality(ctx context.Context, pool *pgxpool.Pool, loc locality) error {
	batch := &pgx.Batch{}
	batch.Queue(`
		INSERT INTO localities (name, county, latitude, longitude, locality_type, population)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		loc.name, loc.county, loc.latitude, loc.longitude, loc.kind, loc.population)
	batch.Queue(`
		INSERT INTO localities_ascii (name, name_ascii, county, latitude, longitude, locality_type, population)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		loc.name, textnorm.Fold(loc.name), loc.county, loc.latitude, loc.longitude, loc.kind, loc.population)

	results := pool.SendBatch(ctx, batch)
	defer func() {
		_ = results.Close()
	}()

	for i := 0; i < 2; i++ {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}
	return nil
}
