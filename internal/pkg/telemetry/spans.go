package telemetry

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Span names used for instrumentation.
const (
	SpanPlanRoute       = "route.plan"
	SpanFetchRoute      = "route.fetch_geometry"
	SpanFetchElevation  = "route.fetch_elevation"
	SpanComputeProfile  = "route.compute_profile"
	SpanAnnotatePath    = "elevation.annotate"
	SpanElevationLookup = "elevation.lookup"
)

// Tracer returns the service tracer. Until InitTracer runs the global
// provider is a no-op, so spans cost nothing in tests.
func Tracer() trace.Tracer {
	return otel.Tracer("github.com/samirrijal/routegrade")
}
