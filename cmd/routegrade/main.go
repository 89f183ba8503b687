// Command routegrade plans graded cycling routes from the terminal.
//
// With -from and -to it plans one route and exits. Otherwise it reads
// commands from stdin: a "lat,lon" pair picks a point, and "reset", "raw"
// and "quit" do what they say.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mattn/go-isatty"

	"github.com/samirrijal/routegrade/internal/adapters/elevationapi"
	"github.com/samirrijal/routegrade/internal/adapters/openelevation"
	"github.com/samirrijal/routegrade/internal/adapters/osrm"
	"github.com/samirrijal/routegrade/internal/adapters/sqlite"
	"github.com/samirrijal/routegrade/internal/adapters/terminal"
	"github.com/samirrijal/routegrade/internal/core/domain"
	"github.com/samirrijal/routegrade/internal/core/ports"
	"github.com/samirrijal/routegrade/internal/core/session"
	"github.com/samirrijal/routegrade/internal/core/usecases"
	"github.com/samirrijal/routegrade/internal/pkg/config"
	"github.com/samirrijal/routegrade/internal/pkg/logging"
	"github.com/samirrijal/routegrade/internal/pkg/terrain"
)

func main() {
	from := flag.String("from", "", "start point as lat,lon")
	to := flag.String("to", "", "end point as lat,lon")
	raw := flag.Bool("raw", false, "print the slope-annotated points")
	noColor := flag.Bool("no-color", false, "disable colored output")
	flag.Parse()

	cfg, err := config.Load("routegrade-cli")
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	// Logs go to stderr so they never mix with the rendered route.
	slog.SetDefault(logging.New(os.Stderr, cfg.Log.Level, "text"))

	planner, closeFn, err := buildPlanner(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closeFn()

	color := !*noColor && isatty.IsTerminal(os.Stdout.Fd())
	ctrl := session.NewController(planner, terminal.NewPresenter(os.Stdout, color))
	if *raw {
		ctrl.ToggleRaw()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *from != "" || *to != "" {
		if err := planOnce(ctx, ctrl, *from, *to); err != nil {
			os.Exit(1)
		}
		return
	}

	interactive(ctx, ctrl, os.Stdin, os.Stdout)
}

// buildPlanner wires the route pipeline the same way the API does, minus
// the shared cache and event stream.
func buildPlanner(cfg *config.Config) (*usecases.RouteService, func(), error) {
	closeFn := func() {}

	var elevation ports.ElevationProvider
	switch cfg.Elevation.Mode {
	case config.ElevationModeRemote:
		elevation = elevationapi.NewClient(cfg.Elevation.BaseURL, cfg.ElevationTimeout())
	default:
		var samples ports.ElevationSampleStore
		if cfg.Elevation.LocalSampleDB != "" {
			store, err := sqlite.Open(cfg.Elevation.LocalSampleDB)
			if err != nil {
				return nil, nil, fmt.Errorf("open sample db: %w", err)
			}
			samples = store
			closeFn = func() { _ = store.Close() }
		}
		lookup := openelevation.NewClient(cfg.Elevation.LookupURL, cfg.ElevationTimeout())
		svc := usecases.NewElevationService(lookup, samples, cfg.Elevation.SmoothingWindow, terrain.Options{
			MinSegmentM: cfg.Elevation.MinSegmentM,
			ChunkM:      cfg.Elevation.ChunkM,
		})
		elevation = usecases.NewLocalElevationProvider(svc)
	}

	routes := osrm.NewClient(cfg.Routing.BaseURL, cfg.RoutingTimeout())
	return usecases.NewRouteService(routes, elevation, nil, nil), closeFn, nil
}

func planOnce(ctx context.Context, ctrl *session.Controller, from, to string) error {
	start, err := parsePoint(from)
	if err != nil {
		fmt.Fprintln(os.Stderr, "-from:", err)
		return err
	}
	end, err := parsePoint(to)
	if err != nil {
		fmt.Fprintln(os.Stderr, "-to:", err)
		return err
	}
	if _, err := ctrl.Select(ctx, start); err != nil {
		return err
	}
	_, err = ctrl.Select(ctx, end)
	return err
}

// interactive reads commands until EOF or quit. Planning runs in the
// background so reset can cancel a slow request.
func interactive(ctx context.Context, ctrl *session.Controller, in io.Reader, out io.Writer) {
	fmt.Fprintln(out, `Pick two points as "lat,lon". Commands: reset, raw, quit.`)

	done := make(chan struct{}, 1)
	done <- struct{}{}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "quit", "exit":
			ctrl.Reset()
			<-done
			return
		case "reset":
			ctrl.Reset()
			continue
		case "raw":
			if ctrl.ToggleRaw() {
				fmt.Fprintln(out, "raw points: on")
			} else {
				fmt.Fprintln(out, "raw points: off")
			}
			continue
		}

		p, err := parsePoint(line)
		if err != nil {
			fmt.Fprintln(out, "Error:", err)
			continue
		}

		// A pick while a plan is in flight abandons that plan.
		select {
		case <-done:
		default:
			ctrl.Reset()
			<-done
		}

		st := ctrl.State()
		if st.Start == nil || st.Complete() {
			if _, err := ctrl.Select(ctx, p); err == nil {
				fmt.Fprintf(out, "Start: %s, pick the end point.\n", p)
			}
			done <- struct{}{}
			continue
		}

		go func() {
			defer func() { done <- struct{}{} }()
			if _, err := ctrl.Select(ctx, p); err != nil && !errors.Is(err, domain.ErrStaleResult) {
				slog.Debug("plan failed", "error", err)
			}
		}()
	}

	// Piped input ends before the last plan does.
	<-done
}
