package ports

import (
	"context"

	"github.com/samirrijal/routegrade/internal/core/domain"
)

// RouteProvider fetches a cycling route geometry between two points.
type RouteProvider interface {
	// FetchRoute returns the route as an encoded polyline. Failures wrap
	// domain.ErrRouteUnavailable.
	FetchRoute(ctx context.Context, start, end domain.GeoPoint) (string, error)
}

// ElevationProvider annotates a route geometry with per-point slope.
type ElevationProvider interface {
	// FetchElevationProfile returns the ordered, slope-annotated points of the
	// geometry. Failures wrap domain.ErrElevationUnavailable.
	FetchElevationProfile(ctx context.Context, geometry string) ([]domain.ElevationPoint, error)
}

// ElevationLookup resolves raw elevations in meters for a batch of points.
// The result has one entry per input point; nil marks an unknown elevation.
type ElevationLookup interface {
	Lookup(ctx context.Context, points []domain.GeoPoint) ([]*float64, error)
}

// EventPublisher publishes domain events to a message broker.
type EventPublisher interface {
	PublishRouteComputed(ctx context.Context, event *domain.RouteComputed) error
}

// CacheService provides read-through caching.
type CacheService interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttlSeconds int) error
	Delete(ctx context.Context, key string) error
}
