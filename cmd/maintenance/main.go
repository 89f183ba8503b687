package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/samirrijal/routegrade/internal/adapters/postgres"
	"github.com/samirrijal/routegrade/internal/core/usecases"
	"github.com/samirrijal/routegrade/internal/pkg/config"
	"github.com/samirrijal/routegrade/internal/pkg/logging"
	"github.com/samirrijal/routegrade/internal/pkg/terrain"
)

// Maintenance worker: prunes stale elevation samples on a cron schedule.
func main() {
	once := flag.Bool("once", false, "prune once and exit")
	flag.Parse()

	cfg, err := config.Load("routegrade-maintenance")
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	if cfg.Retention() <= 0 {
		slog.Info("sample retention disabled, nothing to do")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := postgres.New(ctx, cfg.Database.DSN(), cfg.Database.MaxConns)
	if err != nil {
		slog.Error("db", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Pruning never looks elevations up.
	svc := usecases.NewElevationService(nil, postgres.NewElevationSampleRepo(db), 0, terrain.DefaultOptions)

	prune := func() {
		pctx, pcancel := context.WithTimeout(ctx, 5*time.Minute)
		defer pcancel()

		start := time.Now()
		n, err := svc.PruneSamples(pctx, cfg.Retention())
		if err != nil {
			slog.Error("prune failed", "error", err)
			return
		}
		slog.Info("pruned elevation samples", "deleted", n, "took", time.Since(start).String())
	}

	if *once {
		prune()
		return
	}

	c := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(slog.NewLogLogger(slog.Default().Handler(), slog.LevelDebug))))
	if _, err := c.AddFunc(cfg.Elevation.PruneSchedule, prune); err != nil {
		slog.Error("schedule prune job", "schedule", cfg.Elevation.PruneSchedule, "error", err)
		os.Exit(1)
	}
	c.Start()

	slog.Info("maintenance worker started",
		"schedule", cfg.Elevation.PruneSchedule,
		"retention", cfg.Retention().String(),
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("received signal, shutting down maintenance worker", "signal", sig.String())
	cancel()
	<-c.Stop().Done()
}
