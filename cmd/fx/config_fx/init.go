package config_fx

import (
	"go.uber.org/fx"

	"datenight/internal/config"
	"datenight/internal/logging"
)

var Module = fx.Provide(
	provideConfig,
	provideServerConfig,
	provideDatabaseConfig,
	provideRateLimitConfig,
	provideCatalogConfig,
	providePlannerConfig,
)

// provideConfig loads configuration and switches the global logger to it before
// anything else is constructed.
func provideConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logging.Init(cfg.Logging)
	return cfg, nil
}

func provideServerConfig(cfg *config.Config) config.ServerConfig {
	return cfg.Server
}

func provideDatabaseConfig(cfg *config.Config) config.DatabaseConfig {
	return cfg.Database
}

func provideRateLimitConfig(cfg *config.Config) config.RateLimitConfig {
	return cfg.RateLimit
}

func provideCatalogConfig(cfg *config.Config) config.CatalogConfig {
	return cfg.Catalog
}

func providePlannerConfig(cfg *config.Config) config.PlannerConfig {
	return cfg.Planner
}
