package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/samirrijal/routegrade/internal/core/domain"
	"github.com/samirrijal/routegrade/internal/pkg/geospatial"
)

// samplePrecision is the number of decimals coordinates are keyed by
// (about 1 m at the equator).
const samplePrecision = 5

// ElevationSampleRepo implements ports.ElevationSampleStore with pgx.
type ElevationSampleRepo struct {
	db *DB
}

func NewElevationSampleRepo(db *DB) *ElevationSampleRepo {
	return &ElevationSampleRepo{db: db}
}

func sampleKey(p domain.GeoPoint) domain.GeoPoint {
	return domain.GeoPoint{
		Lat: geospatial.RoundCoord(p.Lat, samplePrecision),
		Lon: geospatial.RoundCoord(p.Lon, samplePrecision),
	}
}

// GetMany returns stored elevations keyed by the caller's points.
func (r *ElevationSampleRepo) GetMany(ctx context.Context, points []domain.GeoPoint) (map[domain.GeoPoint]float64, error) {
	out := make(map[domain.GeoPoint]float64)
	if len(points) == 0 {
		return out, nil
	}

	// several input points may share a rounded key
	byKey := make(map[domain.GeoPoint][]domain.GeoPoint, len(points))
	lats := make([]float64, 0, len(points))
	lons := make([]float64, 0, len(points))
	for _, p := range points {
		k := sampleKey(p)
		if _, seen := byKey[k]; !seen {
			lats = append(lats, k.Lat)
			lons = append(lons, k.Lon)
		}
		byKey[k] = append(byKey[k], p)
	}

	rows, err := r.db.Pool.Query(ctx, `
		SELECT s.lat, s.lon, s.elevation_m
		FROM elevation_samples s
		JOIN unnest($1::float8[], $2::float8[]) AS q(lat, lon)
		  ON s.lat = q.lat AND s.lon = q.lon
	`, lats, lons)
	if err != nil {
		return nil, fmt.Errorf("query samples: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var k domain.GeoPoint
		var elev float64
		if err := rows.Scan(&k.Lat, &k.Lon, &elev); err != nil {
			return nil, fmt.Errorf("scan sample: %w", err)
		}
		for _, p := range byKey[k] {
			out[p] = elev
		}
	}
	return out, rows.Err()
}

// UpsertBatch stores samples using pgx.Batch.
func (r *ElevationSampleRepo) UpsertBatch(ctx context.Context, samples map[domain.GeoPoint]float64) error {
	if len(samples) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for p, elev := range samples {
		k := sampleKey(p)
		batch.Queue(`
			INSERT INTO elevation_samples (lat, lon, elevation_m)
			VALUES ($1, $2, $3)
			ON CONFLICT (lat, lon) DO UPDATE
			SET elevation_m = EXCLUDED.elevation_m, updated_at = NOW()
		`, k.Lat, k.Lon, elev)
	}

	br := r.db.Pool.SendBatch(ctx, batch)
	defer br.Close()
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("batch exec: %w", err)
		}
	}
	return nil
}

// Prune deletes samples not refreshed since cutoff.
func (r *ElevationSampleRepo) Prune(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM elevation_samples WHERE updated_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune samples: %w", err)
	}
	return tag.RowsAffected(), nil
}
