package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samirrijal/routegrade/internal/core/domain"
	"github.com/samirrijal/routegrade/internal/core/ports"
	"github.com/samirrijal/routegrade/internal/pkg/geospatial"
	"github.com/samirrijal/routegrade/internal/pkg/logging"
	"github.com/samirrijal/routegrade/internal/pkg/metrics"
	"github.com/samirrijal/routegrade/internal/pkg/telemetry"
	"github.com/samirrijal/routegrade/internal/pkg/terrain"
)

// ElevationService annotates an encoded polyline with elevations, chunked
// slopes and a difficulty rating.
type ElevationService struct {
	lookup  ports.ElevationLookup
	samples ports.ElevationSampleStore // optional
	window  int
	opts    terrain.Options
}

// NewElevationService creates a new ElevationService. samples may be nil.
func NewElevationService(
	lookup ports.ElevationLookup,
	samples ports.ElevationSampleStore,
	window int,
	opts terrain.Options,
) *ElevationService {
	return &ElevationService{lookup: lookup, samples: samples, window: window, opts: opts}
}

// Annotate decodes poly and returns its elevation summary.
func (s *ElevationService) Annotate(ctx context.Context, poly string) (*domain.ElevationSummary, error) {
	ctx, span := telemetry.Tracer().Start(ctx, telemetry.SpanAnnotatePath)
	defer span.End()

	path, err := geospatial.DecodePolyline(poly)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("path.points", len(path)))

	raw, err := s.elevations(ctx, path)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	smoothed := terrain.Smooth(raw, s.window)
	res := terrain.Annotate(path, raw, smoothed, s.opts)

	return &domain.ElevationSummary{
		TotalAscentM:  res.TotalAscentM,
		TotalDescentM: res.TotalDescentM,
		MaxSlopePct:   res.MaxSlopePct,
		AvgSlopePct:   res.AvgSlopePct,
		Difficulty:    terrain.Rate(res.TotalAscentM, terrain.MaxUphill(res.Points)),
		Points:        res.Points,
	}, nil
}

// elevations resolves one raw elevation per path point, reading stored
// samples first and asking the lookup only for the rest.
func (s *ElevationService) elevations(ctx context.Context, path []domain.GeoPoint) ([]*float64, error) {
	out := make([]*float64, len(path))

	var stored map[domain.GeoPoint]float64
	if s.samples != nil {
		var err error
		stored, err = s.samples.GetMany(ctx, path)
		if err != nil {
			logging.LoggerFromCtx(ctx).Warn("elevation sample read failed", "error", err)
			stored = nil
		}
	}

	var missing []int
	for i, p := range path {
		if v, ok := stored[p]; ok {
			out[i] = &v
			continue
		}
		missing = append(missing, i)
	}
	if s.samples != nil {
		metrics.CacheHits.WithLabelValues("elevation_sample").Add(float64(len(path) - len(missing)))
		metrics.CacheMisses.WithLabelValues("elevation_sample").Add(float64(len(missing)))
	}
	if len(missing) == 0 {
		return out, nil
	}

	query := make([]domain.GeoPoint, len(missing))
	for j, i := range missing {
		query[j] = path[i]
	}

	vals, err := s.lookupElevations(ctx, query)
	if err != nil {
		return nil, err
	}

	fresh := make(map[domain.GeoPoint]float64)
	for j, i := range missing {
		if j < len(vals) && vals[j] != nil {
			out[i] = vals[j]
			fresh[path[i]] = *vals[j]
		}
	}

	if s.samples != nil && len(fresh) > 0 {
		if err := s.samples.UpsertBatch(ctx, fresh); err != nil {
			logging.LoggerFromCtx(ctx).Warn("elevation sample write failed", "error", err)
		}
	}
	return out, nil
}

func (s *ElevationService) lookupElevations(ctx context.Context, points []domain.GeoPoint) ([]*float64, error) {
	ctx, span := telemetry.Tracer().Start(ctx, telemetry.SpanElevationLookup,
		trace.WithAttributes(attribute.Int("lookup.points", len(points))))
	defer span.End()

	t0 := time.Now()
	vals, err := s.lookup.Lookup(ctx, points)
	metrics.ObserveUpstream(metrics.StageElevationLookup, t0, err)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("elevation lookup: %w", err)
	}
	return vals, nil
}

// LocalElevationProvider satisfies ports.ElevationProvider with the
// in-process ElevationService instead of a remote annotator.
type LocalElevationProvider struct {
	svc *ElevationService
}

func NewLocalElevationProvider(svc *ElevationService) *LocalElevationProvider {
	return &LocalElevationProvider{svc: svc}
}

// FetchElevationProfile annotates geometry and converts the result into
// slope-carrying elevation points.
func (p *LocalElevationProvider) FetchElevationProfile(ctx context.Context, geometry string) ([]domain.ElevationPoint, error) {
	summary, err := p.svc.Annotate(ctx, geometry)
	if err != nil {
		if errors.Is(err, domain.ErrElevationUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrElevationUnavailable, err)
	}

	points := make([]domain.ElevationPoint, len(summary.Points))
	for i, ap := range summary.Points {
		slope := ap.SlopePct
		points[i] = domain.ElevationPoint{
			GeoPoint:  domain.GeoPoint{Lat: ap.Lat, Lon: ap.Lon},
			Slope:     &slope,
			Elevation: ap.ElevM,
		}
	}
	return points, nil
}

// PruneSamples drops stored samples older than retention. It is a no-op
// without a sample store.
func (s *ElevationService) PruneSamples(ctx context.Context, retention time.Duration) (int64, error) {
	if s.samples == nil || retention <= 0 {
		return 0, nil
	}
	n, err := s.samples.Prune(ctx, time.Now().Add(-retention))
	if err != nil {
		return 0, fmt.Errorf("prune samples: %w", err)
	}
	return n, nil
}
