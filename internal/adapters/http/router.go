package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/middleware/timeout"
	"github.com/gofiber/websocket/v2"

	"github.com/samirrijal/routegrade/api"
	"github.com/samirrijal/routegrade/internal/pkg/metrics"
)

// SetupRoutes registers middleware and every REST, GraphQL and WebSocket route.
func SetupRoutes(app *fiber.App, deps *Dependencies) {
	app.Use(metrics.Middleware())
	app.Get("/metrics", metrics.Handler())

	app.Use(
		compress.New(compress.Config{Level: compress.LevelBestSpeed}),
		requestid.New(),
		RequestIDLogMiddleware(),
		AccessLogMiddleware(),
		rateLimiter(deps.rateLimit()),
		securityHeaders,
		DeprecationMiddleware(legacyRoutes),
		ETagMiddleware(),
		CachingMiddleware(),
	)

	// Probes skip the request timeout.
	app.Get("/v1/health", HealthHandler(deps))
	app.Get("/v1/ready", ReadyHandler(deps))

	// Every handler below may wait on both upstreams.
	bounded := func(h fiber.Handler) fiber.Handler {
		return timeout.NewWithContext(h, deps.requestTimeout())
	}

	v1 := app.Group("/v1")
	v1.Get("/route", bounded(RouteHandler(deps)))
	v1.Post("/profile", bounded(ProfileHandler(deps)))
	v1.Get("/elevation", bounded(ElevationHandler(deps)))

	for _, d := range legacyRoutes {
		if d.Alternative == "/v1/elevation" {
			app.Get(d.Path, bounded(ElevationHandler(deps)))
		}
	}

	app.Post("/graphql", bounded(GraphQLHandler(deps)))

	SetupDocs(app, api.OpenAPI)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if deps.NATS == nil {
			return errUnavailable(c, "event stream is not configured")
		}
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(WebSocketHandler(deps.NATS)))
}

// rateLimiter allows max requests per minute per client IP.
func rateLimiter(max int) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		Next: func(c *fiber.Ctx) bool {
			return probePaths[c.Path()]
		},
		LimitReached: func(c *fiber.Ctx) error {
			return newError(c, fiber.StatusTooManyRequests, "rate_limited", "too many requests, please try again later")
		},
	})
}

func securityHeaders(c *fiber.Ctx) error {
	c.Set("X-Content-Type-Options", "nosniff")
	c.Set("X-Frame-Options", "DENY")
	c.Set("Referrer-Policy", "strict-origin-when-cross-origin")
	c.Set("X-API-Version", "1.0.0")
	return c.Next()
}
