package http

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/trace"

	"github.com/samirrijal/routegrade/internal/pkg/logging"
)

// RequestIDLogMiddleware stores a logger tagged with the request ID (and the
// trace ID when a span is active) in the user context, and echoes the ID so
// clients can quote it in bug reports.
func RequestIDLogMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid, _ := c.Locals("requestid").(string)
		if rid == "" {
			return c.Next()
		}

		attrs := []any{slog.String("request_id", rid)}
		if sc := trace.SpanContextFromContext(c.UserContext()); sc.HasTraceID() {
			attrs = append(attrs, slog.String("trace_id", sc.TraceID().String()))
		}

		ctx := logging.ContextWithLogger(c.UserContext(), slog.Default().With(attrs...))
		c.SetUserContext(ctx)
		return c.Next()
	}
}
