package http

import (
	"time"

	"github.com/nats-io/nats.go"
	"github.com/samirrijal/routegrade/internal/adapters/postgres"
	"github.com/samirrijal/routegrade/internal/adapters/valkey"
	"github.com/samirrijal/routegrade/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers.
// Infrastructure fields are optional; nil means not configured.
type Dependencies struct {
	Routes    *usecases.RouteService
	Elevation *usecases.ElevationService
	NATS      *nats.Conn
	DB        *postgres.DB
	Cache     *valkey.Cache

	// RequestTimeout bounds route and elevation requests. Defaults to 45s.
	RequestTimeout time.Duration
	// RateLimit is the per-IP request budget per minute. Defaults to 60.
	RateLimit int
}

func (d *Dependencies) requestTimeout() time.Duration {
	if d.RequestTimeout <= 0 {
		return 45 * time.Second
	}
	return d.RequestTimeout
}

func (d *Dependencies) rateLimit() int {
	if d.RateLimit <= 0 {
		return 60
	}
	return d.RateLimit
}
