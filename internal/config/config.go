package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string
	Host        string
	Port        int
	MetricsPort int `toml:"metrics_port"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	SentryEnabled bool   `toml:"sentry_enabled"`

	// postgres
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`

	// redis
	RedisHost string `toml:"redis_host"`
	RedisPort string `toml:"redis_port"`

	// stats engine feature flags
	DerivedKpisEnabled     bool `toml:"derived_kpis_enabled"`
	IncludeBodyweightLoads bool `toml:"include_bodyweight_loads"`
	// StatsV2 makes the stats endpoints return the v2 engine output directly.
	// StatsShadow keeps returning v1 but runs the v2 engine in the background
	// and reports parity mismatches. StatsV2 wins when both are set.
	StatsV2     bool `toml:"stats_v2"`
	StatsShadow bool `toml:"stats_shadow"`

	// stats response cache
	StatsCacheSizeBytes  int `toml:"stats_cache_size_bytes"`
	StatsCacheTTLSeconds int `toml:"stats_cache_ttl_seconds"`

	// rate limiting (per minute, stats endpoints)
	StatsRateLimitPerMin int `toml:"stats_rate_limit_per_min"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func Load(env, path string) (*Config, error) {
	var tomlConfig Toml
	if _, err := toml.DecodeFile(path, &tomlConfig); err != nil {
		return nil, fmt.Errorf("decode config file %s: %w", path, err)
	}

	cfg, err := tomlConfig.Get(env)
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		if t.Development == nil {
			return nil, fmt.Errorf("development config section missing")
		}
		t.Development.Environment = "development"
		return t.Development, nil
	case "prod", "production":
		if t.Production == nil {
			return nil, fmt.Errorf("production config section missing")
		}
		t.Production.Environment = "production"
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

func (c *Config) applyDefaults() {
	if c.StatsCacheSizeBytes == 0 {
		c.StatsCacheSizeBytes = 10 * 1024 * 1024
	}
	if c.StatsCacheTTLSeconds == 0 {
		c.StatsCacheTTLSeconds = 60
	}
	if c.StatsRateLimitPerMin == 0 {
		c.StatsRateLimitPerMin = 120
	}
	if c.MetricsPort == 0 {
		c.MetricsPort = 2112
	}
}
