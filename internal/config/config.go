// Package config loads service settings from defaults, an optional YAML file and the
// environment, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"datenight/internal/logging"
	"datenight/internal/planner/fitness"
	"datenight/internal/planner/genetic"
	"datenight/internal/planner/heuristic"
)

type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Logging   logging.Config  `koanf:"logging"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
	Auth      AuthConfig      `koanf:"auth"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Knowledge KnowledgeConfig `koanf:"knowledge"`
	Planner   PlannerConfig   `koanf:"planner"`
}

type ServerConfig struct {
	Port int `koanf:"port"`
	// Mode is the gin mode: debug, release or test.
	Mode           string        `koanf:"mode"`
	CORSOrigins    []string      `koanf:"cors_origins"`
	RequestTimeout time.Duration `koanf:"request_timeout"`
}

type DatabaseConfig struct {
	DSN             string        `koanf:"dsn"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
}

type RateLimitConfig struct {
	Enabled bool    `koanf:"enabled"`
	RPS     float64 `koanf:"rps"`
	Burst   int     `koanf:"burst"`
}

type AuthConfig struct {
	JWTSecret string        `koanf:"jwt_secret"`
	TokenTTL  time.Duration `koanf:"token_ttl"`
}

// CatalogConfig tunes the circuit breaker around catalog loads.
type CatalogConfig struct {
	BreakerMaxRequests  uint32        `koanf:"breaker_max_requests"`
	BreakerInterval     time.Duration `koanf:"breaker_interval"`
	BreakerTimeout      time.Duration `koanf:"breaker_timeout"`
	BreakerFailureRatio float64       `koanf:"breaker_failure_ratio"`
	BreakerMinRequests  uint32        `koanf:"breaker_min_requests"`
	// MaxVenues caps a single catalog load.
	MaxVenues int `koanf:"max_venues"`
}

type KnowledgeConfig struct {
	CacheTTL time.Duration `koanf:"cache_ttl"`
}

type PlannerConfig struct {
	DefaultAlgorithm string           `koanf:"default_algorithm"`
	Timeout          time.Duration    `koanf:"timeout"`
	Fitness          fitness.Weights  `koanf:"fitness"`
	Heuristic        heuristic.Config `koanf:"heuristic"`
	Genetic          genetic.Config   `koanf:"genetic"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           8080,
			Mode:           "release",
			CORSOrigins:    []string{"*"},
			RequestTimeout: 30 * time.Second,
		},
		Database: DatabaseConfig{
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Logging: logging.Config{Level: "info", Format: "json"},
		RateLimit: RateLimitConfig{
			Enabled: true,
			RPS:     10,
			Burst:   20,
		},
		Auth: AuthConfig{TokenTTL: time.Hour},
		Catalog: CatalogConfig{
			BreakerMaxRequests:  3,
			BreakerInterval:     time.Minute,
			BreakerTimeout:      30 * time.Second,
			BreakerFailureRatio: 0.6,
			BreakerMinRequests:  5,
			MaxVenues:           5000,
		},
		Knowledge: KnowledgeConfig{CacheTTL: 30 * time.Minute},
		Planner: PlannerConfig{
			DefaultAlgorithm: heuristic.Algorithm,
			Timeout:          10 * time.Second,
			Fitness:          fitness.DefaultWeights(),
			Heuristic:        heuristic.DefaultConfig(),
			Genetic:          genetic.DefaultConfig(),
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port must be in [1, 65535], got %d", c.Server.Port))
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		errs = append(errs, fmt.Errorf("server.mode must be debug, release or test, got %q", c.Server.Mode))
	}
	if c.Server.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("server.request_timeout must be positive, got %s", c.Server.RequestTimeout))
	}
	if c.Database.MaxOpenConns < 1 {
		errs = append(errs, fmt.Errorf("database.max_open_conns must be positive, got %d", c.Database.MaxOpenConns))
	}
	if c.Database.MaxIdleConns < 0 || c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		errs = append(errs, fmt.Errorf("database.max_idle_conns must be in [0, max_open_conns], got %d", c.Database.MaxIdleConns))
	}
	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst < 1) {
		errs = append(errs, fmt.Errorf("rate_limit.rps and rate_limit.burst must be positive, got %g and %d", c.RateLimit.RPS, c.RateLimit.Burst))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, fmt.Errorf("auth.token_ttl must be positive, got %s", c.Auth.TokenTTL))
	}
	if c.Catalog.BreakerFailureRatio <= 0 || c.Catalog.BreakerFailureRatio > 1 {
		errs = append(errs, fmt.Errorf("catalog.breaker_failure_ratio must be in (0, 1], got %g", c.Catalog.BreakerFailureRatio))
	}
	if c.Catalog.MaxVenues < 1 {
		errs = append(errs, fmt.Errorf("catalog.max_venues must be positive, got %d", c.Catalog.MaxVenues))
	}
	if c.Knowledge.CacheTTL <= 0 {
		errs = append(errs, fmt.Errorf("knowledge.cache_ttl must be positive, got %s", c.Knowledge.CacheTTL))
	}
	switch strings.ToLower(c.Planner.DefaultAlgorithm) {
	case heuristic.Algorithm, genetic.Algorithm:
	default:
		errs = append(errs, fmt.Errorf("planner.default_algorithm must be %s or %s, got %q",
			heuristic.Algorithm, genetic.Algorithm, c.Planner.DefaultAlgorithm))
	}
	if c.Planner.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("planner.timeout must be positive, got %s", c.Planner.Timeout))
	}
	if err := c.Planner.Genetic.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("planner.%w", err))
	}
	return errors.Join(errs...)
}
