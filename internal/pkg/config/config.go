package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

// Elevation modes.
const (
	ElevationModeLocal  = "local"
	ElevationModeRemote = "remote"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Routing   RoutingConfig   `mapstructure:"routing"`
	Elevation ElevationConfig `mapstructure:"elevation"`
	Database  DatabaseConfig  `mapstructure:"database"`
	NATS      NATSConfig      `mapstructure:"nats"`
	Valkey    ValkeyConfig    `mapstructure:"valkey"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"`
	AllowOrigins string `mapstructure:"allow_origins"`
	RateLimit    int    `mapstructure:"rate_limit"` // requests per minute per IP
}

// RoutingConfig points at an OSRM-compatible routing service.
type RoutingConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Timeout int    `mapstructure:"timeout"` // seconds
}

// ElevationConfig controls where slope annotations come from.
// In local mode the service annotates polylines itself using LookupURL;
// in remote mode it calls another annotator at BaseURL.
type ElevationConfig struct {
	Mode            string  `mapstructure:"mode"`
	BaseURL         string  `mapstructure:"base_url"`
	LookupURL       string  `mapstructure:"lookup_url"`
	Timeout         int     `mapstructure:"timeout"` // seconds
	SmoothingWindow int     `mapstructure:"smoothing_window"`
	MinSegmentM     float64 `mapstructure:"min_segment_m"`
	ChunkM          float64 `mapstructure:"chunk_m"`
	SampleStore     bool    `mapstructure:"sample_store"`
	// RetentionDays bounds how long unrefreshed samples are kept; 0 keeps them forever.
	RetentionDays   int     `mapstructure:"retention_days"`
	PruneSchedule   string  `mapstructure:"prune_schedule"`
	// LocalSampleDB is the SQLite file the CLI caches samples in; empty disables it.
	LocalSampleDB   string  `mapstructure:"local_sample_db"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxConns int    `mapstructure:"max_conns"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type NATSConfig struct {
	URL string `mapstructure:"url"`
}

type ValkeyConfig struct {
	Addr string `mapstructure:"addr"`
}

type TelemetryConfig struct {
	ServiceName string `mapstructure:"service_name"`
	TempoAddr   string `mapstructure:"tempo_addr"`
	Enabled     bool   `mapstructure:"enabled"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// RoutingTimeout returns the routing client timeout.
func (c *Config) RoutingTimeout() time.Duration {
	return time.Duration(c.Routing.Timeout) * time.Second
}

// ElevationTimeout returns the elevation client timeout.
func (c *Config) ElevationTimeout() time.Duration {
	return time.Duration(c.Elevation.Timeout) * time.Second
}

// Retention returns how long elevation samples are kept, or 0 for forever.
func (c *Config) Retention() time.Duration {
	return time.Duration(c.Elevation.RetentionDays) * 24 * time.Hour
}

// Load reads configuration from .env, file and environment variables.
func Load(service string) (*Config, error) {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v, service)

	// Config file (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	_ = v.ReadInConfig() // OK if missing

	// Environment variables: ROUTEGRADE_ROUTING_BASE_URL → routing.base_url
	v.SetEnvPrefix("ROUTEGRADE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper, service string) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 60)
	v.SetDefault("server.allow_origins", "*")
	v.SetDefault("server.rate_limit", 60)
	v.SetDefault("routing.base_url", "https://router.project-osrm.org")
	v.SetDefault("routing.timeout", 15)
	v.SetDefault("elevation.mode", ElevationModeLocal)
	v.SetDefault("elevation.base_url", "https://route-elevation-maps.onrender.com/route-elevation/")
	v.SetDefault("elevation.lookup_url", "https://api.open-elevation.com/api/v1/lookup")
	v.SetDefault("elevation.timeout", 30)
	v.SetDefault("elevation.smoothing_window", 3)
	v.SetDefault("elevation.min_segment_m", 20.0)
	v.SetDefault("elevation.chunk_m", 50.0)
	v.SetDefault("elevation.sample_store", true)
	v.SetDefault("elevation.retention_days", 90)
	v.SetDefault("elevation.prune_schedule", "@daily")
	v.SetDefault("elevation.local_sample_db", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "routegrade")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "routegrade")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("nats.url", "nats://localhost:4222")
	v.SetDefault("valkey.addr", "localhost:6379")
	v.SetDefault("telemetry.service_name", service)
	v.SetDefault("telemetry.tempo_addr", "tempo:4317")
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// Validate checks that required configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, "server.read_timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, "server.write_timeout must be positive")
	}
	if c.Routing.BaseURL == "" {
		errs = append(errs, "routing.base_url is required")
	}
	if c.Routing.Timeout <= 0 {
		errs = append(errs, "routing.timeout must be positive")
	}

	switch c.Elevation.Mode {
	case ElevationModeLocal:
		if c.Elevation.LookupURL == "" {
			errs = append(errs, "elevation.lookup_url is required in local mode")
		}
	case ElevationModeRemote:
		if c.Elevation.BaseURL == "" {
			errs = append(errs, "elevation.base_url is required in remote mode")
		}
	default:
		errs = append(errs, fmt.Sprintf("elevation.mode must be %q or %q, got %q",
			ElevationModeLocal, ElevationModeRemote, c.Elevation.Mode))
	}
	if c.Elevation.Timeout <= 0 {
		errs = append(errs, "elevation.timeout must be positive")
	}
	if c.Elevation.SmoothingWindow < 0 {
		errs = append(errs, "elevation.smoothing_window must not be negative")
	}
	if c.Elevation.MinSegmentM < 0 {
		errs = append(errs, "elevation.min_segment_m must not be negative")
	}
	if c.Elevation.ChunkM <= 0 {
		errs = append(errs, "elevation.chunk_m must be positive")
	}
	if c.Elevation.RetentionDays < 0 {
		errs = append(errs, "elevation.retention_days must not be negative")
	}
	if c.Elevation.RetentionDays > 0 {
		if _, err := cron.ParseStandard(c.Elevation.PruneSchedule); err != nil {
			errs = append(errs, fmt.Sprintf("elevation.prune_schedule is invalid: %v", err))
		}
	}

	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		errs = append(errs, fmt.Sprintf("database.port must be 1-65535, got %d", c.Database.Port))
	}
	if c.Database.MaxConns <= 0 {
		errs = append(errs, "database.max_conns must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
