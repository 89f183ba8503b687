package http

import (
	"context"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"
)

// HealthHandler returns a basic liveness check.
func HealthHandler(deps *Dependencies) fiber.Handler {
	startedAt := time.Now()

	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"uptime":    time.Since(startedAt).String(),
			"version":   "dev",
			"elevation": deps.Elevation != nil,
		})
	}
}

// backendProbe checks one optional backend. A nil probe means the backend
// is not configured.
type backendProbe struct {
	name  string
	probe func(ctx context.Context) error
}

func (deps *Dependencies) probes() []backendProbe {
	probes := []backendProbe{{name: "database"}, {name: "nats"}, {name: "cache"}}
	if deps.DB != nil {
		probes[0].probe = deps.DB.Ping
	}
	if deps.NATS != nil {
		nc := deps.NATS
		probes[1].probe = func(context.Context) error {
			if !nc.IsConnected() {
				return errDisconnected
			}
			return nil
		}
	}
	if deps.Cache != nil {
		probes[2].probe = deps.Cache.Ping
	}
	return probes
}

// ReadyHandler probes every configured backend concurrently. Backends that
// are not configured are reported but do not fail readiness.
func ReadyHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 3*time.Second)
		defer cancel()

		var mu sync.Mutex
		checks := make(map[string]string)
		allOK := true

		var g errgroup.Group
		for _, p := range deps.probes() {
			p := p
			if p.probe == nil {
				mu.Lock()
				checks[p.name] = "not configured"
				mu.Unlock()
				continue
			}
			g.Go(func() error {
				err := p.probe(ctx)
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					checks[p.name] = "error: " + err.Error()
					allOK = false
				} else {
					checks[p.name] = "ok"
				}
				return nil
			})
		}
		_ = g.Wait()

		status := "ready"
		code := fiber.StatusOK
		if !allOK {
			status = "not ready"
			code = fiber.StatusServiceUnavailable
		}

		return c.Status(code).JSON(fiber.Map{
			"status": status,
			"checks": checks,
		})
	}
}
