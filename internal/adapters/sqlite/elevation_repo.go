// Package sqlite provides a file-backed elevation sample store for
// single-user tools such as the CLI.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/samirrijal/routegrade/internal/core/domain"
	"github.com/samirrijal/routegrade/internal/pkg/geospatial"
)

const schema = `
CREATE TABLE IF NOT EXISTS elevation_samples (
	lat         REAL NOT NULL,
	lon         REAL NOT NULL,
	elevation_m REAL NOT NULL,
	updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (lat, lon)
);
CREATE INDEX IF NOT EXISTS idx_elevation_samples_updated_at ON elevation_samples(updated_at);
`

// ElevationSampleRepo implements ports.ElevationSampleStore on SQLite.
type ElevationSampleRepo struct {
	db *sql.DB
}

// Open opens (creating if needed) the sample database at path.
func Open(path string) (*ElevationSampleRepo, error) {
	db, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &ElevationSampleRepo{db: db}, nil
}

func (r *ElevationSampleRepo) Close() error {
	return r.db.Close()
}

func key(p domain.GeoPoint) (float64, float64) {
	return geospatial.RoundCoord(p.Lat, 5), geospatial.RoundCoord(p.Lon, 5)
}

// GetMany returns stored elevations keyed by the caller's points.
func (r *ElevationSampleRepo) GetMany(ctx context.Context, points []domain.GeoPoint) (map[domain.GeoPoint]float64, error) {
	out := make(map[domain.GeoPoint]float64)
	if len(points) == 0 {
		return out, nil
	}

	stmt, err := r.db.PrepareContext(ctx, `SELECT elevation_m FROM elevation_samples WHERE lat = ? AND lon = ?`)
	if err != nil {
		return nil, fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, p := range points {
		lat, lon := key(p)
		var elev float64
		err := stmt.QueryRowContext(ctx, lat, lon).Scan(&elev)
		switch {
		case err == sql.ErrNoRows:
			continue
		case err != nil:
			return nil, fmt.Errorf("query sample: %w", err)
		}
		out[p] = elev
	}
	return out, nil
}

// UpsertBatch stores samples in a single transaction.
func (r *ElevationSampleRepo) UpsertBatch(ctx context.Context, samples map[domain.GeoPoint]float64) error {
	if len(samples) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO elevation_samples (lat, lon, elevation_m, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (lat, lon) DO UPDATE
		SET elevation_m = excluded.elevation_m, updated_at = excluded.updated_at
	`)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for p, elev := range samples {
		lat, lon := key(p)
		if _, err := stmt.ExecContext(ctx, lat, lon, elev, now); err != nil {
			return fmt.Errorf("upsert sample: %w", err)
		}
	}
	return tx.Commit()
}

// Prune deletes samples not refreshed since cutoff.
func (r *ElevationSampleRepo) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM elevation_samples WHERE updated_at < ?`, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("prune samples: %w", err)
	}
	return res.RowsAffected()
}
