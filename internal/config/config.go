package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	Host string
	Port int
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// storage backend: postgres | memory
	Storage  string
	SeedDemo bool `toml:"seed_demo"`
	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	PostgresUser   string `toml:"postgres_user"`
	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`
	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`
	// analytics
	Timezone                   string
	HistoryEntriesLimit        int      `toml:"history_entries_limit"`
	VolumeCacheSizeMB          int      `toml:"volume_cache_size_mb"`
	VolumeCacheTTLSeconds      int      `toml:"volume_cache_ttl_seconds"`
	OneRepMaxCacheTTLSeconds   int      `toml:"one_rep_max_cache_ttl_seconds"`
	AnalyticsRateLimitPerMin   int      `toml:"analytics_rate_limit_per_min"`
	AllowedOrigins             []string `toml:"allowed_origins"`
	GracefulShutdownMaxSeconds int      `toml:"graceful_shutdown_max_seconds"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	var cfg *Config
	switch strings.ToLower(env) {
	case "dev", "development":
		cfg = t.Development
	case "prod", "production":
		cfg = t.Production
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
	if cfg == nil {
		return nil, fmt.Errorf("no config section for env: %s", env)
	}
	cfg.setDefaults()
	return cfg, cfg.validate()
}

func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file [%s]: %w", path, err)
	}
	return t.Get(env)
}

func (c *Config) setDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 9000
	}
	if c.Storage == "" {
		c.Storage = StoragePostgres
	}
	if c.PostgresUser == "" {
		c.PostgresUser = "postgres"
	}
	if c.Timezone == "" {
		c.Timezone = "UTC"
	}
	if c.HistoryEntriesLimit <= 0 {
		c.HistoryEntriesLimit = 500
	}
	if c.VolumeCacheSizeMB <= 0 {
		c.VolumeCacheSizeMB = 10
	}
	if c.VolumeCacheTTLSeconds <= 0 {
		c.VolumeCacheTTLSeconds = 60
	}
	if c.OneRepMaxCacheTTLSeconds <= 0 {
		c.OneRepMaxCacheTTLSeconds = 300
	}
	if c.AnalyticsRateLimitPerMin <= 0 {
		c.AnalyticsRateLimitPerMin = 120
	}
	if c.GracefulShutdownMaxSeconds <= 0 {
		c.GracefulShutdownMaxSeconds = 15
	}
}

func (c *Config) validate() error {
	switch c.Storage {
	case StoragePostgres, StorageMemory:
	default:
		return fmt.Errorf("unsupported storage: %s", c.Storage)
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone [%s]: %w", c.Timezone, err)
	}
	return nil
}

// Location is the timezone analytics buckets days in. Validated on load.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) VolumeCacheTTL() time.Duration {
	return time.Duration(c.VolumeCacheTTLSeconds) * time.Second
}

func (c *Config) OneRepMaxCacheTTL() time.Duration {
	return time.Duration(c.OneRepMaxCacheTTLSeconds) * time.Second
}

func (c *Config) GracefulShutdownMax() time.Duration {
	return time.Duration(c.GracefulShutdownMaxSeconds) * time.Second
}
