package ports

import (
	"context"
	"time"

	"github.com/samirrijal/routegrade/internal/core/domain"
)

// ElevationSampleStore persists raw elevation samples per coordinate.
type ElevationSampleStore interface {
	// GetMany returns the stored elevations for the given points, keyed by
	// the input point. Points with no stored sample are absent from the map.
	GetMany(ctx context.Context, points []domain.GeoPoint) (map[domain.GeoPoint]float64, error)
	// UpsertBatch stores elevations for points.
	UpsertBatch(ctx context.Context, samples map[domain.GeoPoint]float64) error
	// Prune deletes samples last written before cutoff and returns how many
	// were removed.
	Prune(ctx context.Context, cutoff time.Time) (int64, error)
}
