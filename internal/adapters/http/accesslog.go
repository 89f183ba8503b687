package http

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/routegrade/internal/pkg/logging"
)

// probePaths are polled by orchestrators and scrapers; they log at debug.
var probePaths = map[string]bool{
	"/metrics":   true,
	"/v1/health": true,
	"/v1/ready":  true,
}

// AccessLogMiddleware logs one line per request through the request-scoped
// logger, so the request ID set by RequestIDLogMiddleware is attached.
func AccessLogMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()

		err := c.Next()

		status := c.Response().StatusCode()
		level := slog.LevelInfo
		switch {
		case err != nil || status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		case probePaths[path]:
			level = slog.LevelDebug
		}

		log := logging.LoggerFromCtx(c.UserContext())
		if !log.Enabled(c.UserContext(), level) {
			return err
		}

		attrs := []slog.Attr{
			slog.String("method", c.Method()),
			slog.String("path", path),
			slog.String("route", c.Route().Path),
			slog.Int("status", status),
			slog.Duration("latency", time.Since(start)),
			slog.Int("bytes_out", len(c.Response().Body())),
		}
		if err != nil {
			attrs = append(attrs, slog.String("error", err.Error()))
		}

		log.LogAttrs(c.UserContext(), level, "http request", attrs...)
		return err
	}
}
