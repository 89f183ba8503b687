package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Server:  ServerConfig{Port: 8080, ReadTimeout: 10, WriteTimeout: 60},
		Routing: RoutingConfig{BaseURL: "http://osrm", Timeout: 15},
		Elevation: ElevationConfig{
			Mode:            ElevationModeLocal,
			LookupURL:       "http://lookup",
			Timeout:         30,
			SmoothingWindow: 3,
			MinSegmentM:     20,
			ChunkM:          50,
			RetentionDays:   90,
			PruneSchedule:   "@daily",
		},
		Database: DatabaseConfig{Port: 5432, MaxConns: 10},
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("routegrade-test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Elevation.Mode != ElevationModeLocal {
		t.Errorf("expected local elevation mode, got %q", cfg.Elevation.Mode)
	}
	if cfg.Elevation.ChunkM != 50 || cfg.Elevation.MinSegmentM != 20 {
		t.Errorf("unexpected slope options: %+v", cfg.Elevation)
	}
	if cfg.Telemetry.ServiceName != "routegrade-test" {
		t.Errorf("expected service name default, got %q", cfg.Telemetry.ServiceName)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("ROUTEGRADE_ROUTING_BASE_URL", "http://osrm.internal:5000")
	t.Setenv("ROUTEGRADE_ELEVATION_MODE", "remote")

	cfg, err := Load("routegrade-test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Routing.BaseURL != "http://osrm.internal:5000" {
		t.Errorf("env override not applied, got %q", cfg.Routing.BaseURL)
	}
	if cfg.Elevation.Mode != ElevationModeRemote {
		t.Errorf("expected remote mode, got %q", cfg.Elevation.Mode)
	}
}

func TestValidate_OK(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = 0
	cfg.Routing.BaseURL = ""
	cfg.Elevation.Mode = "satellite"
	cfg.Elevation.ChunkM = 0

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"server.port", "routing.base_url", "elevation.mode", "elevation.chunk_m"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in error, got: %v", want, err)
		}
	}
}

func TestValidate_RemoteNeedsBaseURL(t *testing.T) {
	cfg := validConfig()
	cfg.Elevation.Mode = ElevationModeRemote
	cfg.Elevation.BaseURL = ""

	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "elevation.base_url") {
		t.Fatalf("expected base_url error, got %v", err)
	}
}

func TestTimeouts(t *testing.T) {
	cfg := validConfig()
	if cfg.RoutingTimeout() != 15*time.Second {
		t.Errorf("routing timeout: got %s", cfg.RoutingTimeout())
	}
	if cfg.ElevationTimeout() != 30*time.Second {
		t.Errorf("elevation timeout: got %s", cfg.ElevationTimeout())
	}
}

func TestValidate_PruneSchedule(t *testing.T) {
	cfg := validConfig()
	cfg.Elevation.PruneSchedule = "every tuesday"
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "elevation.prune_schedule") {
		t.Fatalf("expected prune_schedule error, got %v", err)
	}

	cfg.Elevation.RetentionDays = 0
	if err := cfg.Validate(); err != nil {
		t.Fatalf("schedule is unused without retention: %v", err)
	}
}

func TestRetention(t *testing.T) {
	cfg := validConfig()
	if cfg.Retention() != 90*24*time.Hour {
		t.Errorf("unexpected retention %s", cfg.Retention())
	}
}

func TestLoad_RateLimitOverride(t *testing.T) {
	t.Setenv("ROUTEGRADE_SERVER_RATE_LIMIT", "120")

	cfg, err := Load("routegrade-test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.RateLimit != 120 {
		t.Errorf("expected rate limit 120, got %d", cfg.Server.RateLimit)
	}
	if cfg.Database.MaxConns != 10 {
		t.Errorf("expected max_conns default 10, got %d", cfg.Database.MaxConns)
	}
}
