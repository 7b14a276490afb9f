package auth_fx

import (
	"go.uber.org/fx"

	"datenight/internal/config"
	"datenight/pkg/utils"
)

var Module = fx.Provide(provideTokenManager)

func provideTokenManager(cfg *config.Config) *utils.TokenManager {
	return utils.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
}
