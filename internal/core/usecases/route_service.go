package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/samirrijal/routegrade/internal/core/domain"
	"github.com/samirrijal/routegrade/internal/core/grade"
	"github.com/samirrijal/routegrade/internal/core/ports"
	"github.com/samirrijal/routegrade/internal/pkg/geospatial"
	"github.com/samirrijal/routegrade/internal/pkg/logging"
	"github.com/samirrijal/routegrade/internal/pkg/metrics"
	"github.com/samirrijal/routegrade/internal/pkg/telemetry"
)

// PlanCacheTTL is how long a computed plan is served from cache, in seconds.
const PlanCacheTTL = 600

// RouteService runs the route pipeline: fetch geometry, annotate it with
// slopes, aggregate the profile.
type RouteService struct {
	routes    ports.RouteProvider
	elevation ports.ElevationProvider
	cache     ports.CacheService   // optional
	publisher ports.EventPublisher // optional
	now       func() time.Time
}

// NewRouteService creates a new RouteService. cache and publisher may be nil.
func NewRouteService(
	routes ports.RouteProvider,
	elevation ports.ElevationProvider,
	cache ports.CacheService,
	publisher ports.EventPublisher,
) *RouteService {
	return &RouteService{
		routes:    routes,
		elevation: elevation,
		cache:     cache,
		publisher: publisher,
		now:       time.Now,
	}
}

// PlanCacheKey returns the cache key of the plan between two points.
// Coordinates are rounded to 5 decimals.
func PlanCacheKey(start, end domain.GeoPoint) string {
	return fmt.Sprintf("plan:%.5f,%.5f:%.5f,%.5f",
		geospatial.RoundCoord(start.Lat, 5), geospatial.RoundCoord(start.Lon, 5),
		geospatial.RoundCoord(end.Lat, 5), geospatial.RoundCoord(end.Lon, 5))
}

// Plan computes the graded route between start and end. Stages run in order
// and the first failure aborts the plan.
func (s *RouteService) Plan(ctx context.Context, start, end domain.GeoPoint) (*domain.RoutePlan, error) {
	ctx, span := telemetry.Tracer().Start(ctx, telemetry.SpanPlanRoute, trace.WithAttributes(
		attribute.String("route.start", start.String()),
		attribute.String("route.end", end.String()),
	))
	defer span.End()

	if !start.Valid() || !end.Valid() {
		return nil, fmt.Errorf("%w: coordinates out of range", domain.ErrInvalidInput)
	}

	key := PlanCacheKey(start, end)
	if plan, ok := s.cached(ctx, key); ok {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		metrics.RoutePlans.WithLabelValues("cached").Inc()
		return plan, nil
	}

	geometry, err := s.fetchRoute(ctx, start, end)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "route stage failed")
		metrics.RoutePlans.WithLabelValues("route_error").Inc()
		return nil, err
	}

	points, err := s.fetchElevation(ctx, geometry)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "elevation stage failed")
		metrics.RoutePlans.WithLabelValues("elevation_error").Inc()
		return nil, err
	}

	profile := s.Profile(ctx, points)

	plan := &domain.RoutePlan{
		Start:      start,
		End:        end,
		Geometry:   geometry,
		Points:     points,
		Profile:    profile,
		ComputedAt: s.now().UTC(),
	}

	metrics.RoutePlans.WithLabelValues("ok").Inc()
	metrics.RouteDifficulty.WithLabelValues(string(profile.Stats.Difficulty)).Inc()
	metrics.RouteSegments.Observe(float64(len(profile.Segments)))
	span.SetAttributes(
		attribute.Int("route.segments", len(profile.Segments)),
		attribute.String("route.difficulty", string(profile.Stats.Difficulty)),
	)

	s.store(ctx, key, plan)
	s.publish(ctx, plan)

	return plan, nil
}

// Profile aggregates an annotated point sequence into segments and stats.
func (s *RouteService) Profile(ctx context.Context, points []domain.ElevationPoint) domain.Profile {
	_, span := telemetry.Tracer().Start(ctx, telemetry.SpanComputeProfile,
		trace.WithAttributes(attribute.Int("route.points", len(points))))
	defer span.End()
	return grade.ComputeProfile(points)
}

func (s *RouteService) fetchRoute(ctx context.Context, start, end domain.GeoPoint) (string, error) {
	ctx, span := telemetry.Tracer().Start(ctx, telemetry.SpanFetchRoute)
	defer span.End()

	t0 := time.Now()
	geometry, err := s.routes.FetchRoute(ctx, start, end)
	metrics.ObserveUpstream(metrics.StageRoute, t0, err)
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("fetch route: %w", err)
	}
	return geometry, nil
}

func (s *RouteService) fetchElevation(ctx context.Context, geometry string) ([]domain.ElevationPoint, error) {
	ctx, span := telemetry.Tracer().Start(ctx, telemetry.SpanFetchElevation)
	defer span.End()

	t0 := time.Now()
	points, err := s.elevation.FetchElevationProfile(ctx, geometry)
	metrics.ObserveUpstream(metrics.StageElevation, t0, err)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("fetch elevation: %w", err)
	}
	return points, nil
}

func (s *RouteService) cached(ctx context.Context, key string) (*domain.RoutePlan, bool) {
	if s.cache == nil {
		return nil, false
	}
	data, err := s.cache.Get(ctx, key)
	if err != nil || len(data) == 0 {
		metrics.CacheMisses.WithLabelValues("route_plan").Inc()
		return nil, false
	}
	var plan domain.RoutePlan
	if err := json.Unmarshal(data, &plan); err != nil {
		logging.LoggerFromCtx(ctx).Warn("discarding undecodable cached plan", "key", key, "error", err)
		metrics.CacheMisses.WithLabelValues("route_plan").Inc()
		return nil, false
	}
	metrics.CacheHits.WithLabelValues("route_plan").Inc()
	return &plan, true
}

func (s *RouteService) store(ctx context.Context, key string, plan *domain.RoutePlan) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(plan)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, PlanCacheTTL); err != nil {
		logging.LoggerFromCtx(ctx).Debug("plan cache write failed", "key", key, "error", err)
	}
}

func (s *RouteService) publish(ctx context.Context, plan *domain.RoutePlan) {
	if s.publisher == nil {
		return
	}
	event := &domain.RouteComputed{
		Start:      plan.Start,
		End:        plan.End,
		Segments:   len(plan.Profile.Segments),
		Stats:      plan.Profile.Stats,
		ComputedAt: plan.ComputedAt,
	}
	if err := s.publisher.PublishRouteComputed(ctx, event); err != nil {
		logging.LoggerFromCtx(ctx).Warn("publish route computed", "error", err)
	}
}
