package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/samirrijal/routegrade/internal/adapters/elevationapi"
	"github.com/samirrijal/routegrade/internal/adapters/http"
	natsadapter "github.com/samirrijal/routegrade/internal/adapters/nats"
	"github.com/samirrijal/routegrade/internal/adapters/openelevation"
	"github.com/samirrijal/routegrade/internal/adapters/osrm"
	"github.com/samirrijal/routegrade/internal/adapters/postgres"
	"github.com/samirrijal/routegrade/internal/adapters/valkey"
	"github.com/samirrijal/routegrade/internal/core/ports"
	"github.com/samirrijal/routegrade/internal/core/usecases"
	"github.com/samirrijal/routegrade/internal/pkg/config"
	"github.com/samirrijal/routegrade/internal/pkg/logging"
	"github.com/samirrijal/routegrade/internal/pkg/telemetry"
	"github.com/samirrijal/routegrade/internal/pkg/terrain"
)

func main() {
	cfg, err := config.Load("routegrade-api")
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.TempoAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	deps := &http.Dependencies{
		RequestTimeout: cfg.RoutingTimeout() + cfg.ElevationTimeout(),
		RateLimit:      cfg.Server.RateLimit,
	}

	// Database (elevation sample store, optional)
	var samples ports.ElevationSampleStore
	if cfg.Elevation.SampleStore {
		db, err := postgres.New(ctx, cfg.Database.DSN(), cfg.Database.MaxConns)
		if err != nil {
			slog.Warn("sample store unavailable, elevations will not be persisted", "error", err)
		} else {
			defer db.Close()
			deps.DB = db
			samples = postgres.NewElevationSampleRepo(db)
		}
	}

	// Cache
	var cache ports.CacheService
	if c, err := valkey.New(cfg.Valkey.Addr, "routegrade:"); err != nil {
		slog.Warn("valkey unavailable, plans will not be cached", "error", err)
	} else {
		defer c.Close()
		deps.Cache = c
		cache = c
	}

	// NATS
	var publisher ports.EventPublisher
	if p, err := natsadapter.NewPublisher(cfg.NATS.URL); err != nil {
		slog.Warn("nats unavailable, route events disabled", "error", err)
	} else {
		defer p.Close()
		publisher = p
		deps.NATS = p.Conn()
	}

	// Elevation: annotate locally or delegate to a remote annotator.
	var elevation ports.ElevationProvider
	switch cfg.Elevation.Mode {
	case config.ElevationModeLocal:
		lookup := openelevation.NewClient(cfg.Elevation.LookupURL, cfg.ElevationTimeout())
		deps.Elevation = usecases.NewElevationService(lookup, samples, cfg.Elevation.SmoothingWindow, terrain.Options{
			MinSegmentM: cfg.Elevation.MinSegmentM,
			ChunkM:      cfg.Elevation.ChunkM,
		})
		elevation = usecases.NewLocalElevationProvider(deps.Elevation)
	case config.ElevationModeRemote:
		elevation = elevationapi.NewClient(cfg.Elevation.BaseURL, cfg.ElevationTimeout())
	}

	routes := osrm.NewClient(cfg.Routing.BaseURL, cfg.RoutingTimeout())
	deps.Routes = usecases.NewRouteService(routes, elevation, cache, publisher)

	slog.Info("route pipeline ready",
		"routing", cfg.Routing.BaseURL,
		"elevation_mode", cfg.Elevation.Mode,
		"sample_store", samples != nil,
	)

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    4 * 1024 * 1024, // profile bodies carry whole point lists
		AppName:      "routegrade API",
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowOrigins,
		AllowMethods:     "GET,POST,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowCredentials: false,
		MaxAge:           3600,
	}))

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr)
		if err := app.Listen(addr); err != nil {
			slog.Error("listen", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}
