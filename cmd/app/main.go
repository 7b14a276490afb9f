package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"datenight/cmd/fx/auth_fx"
	"datenight/cmd/fx/config_fx"
	"datenight/cmd/fx/controllers_fx"
	"datenight/cmd/fx/db_fx"
	"datenight/cmd/fx/evaluation_fx"
	"datenight/cmd/fx/knowledge_fx"
	"datenight/cmd/fx/memcache_fx"
	"datenight/cmd/fx/planning_fx"
	"datenight/cmd/fx/rating_fx"
	"datenight/cmd/fx/venue_fx"
	"datenight/internal/api"
	"datenight/internal/config"
	"datenight/internal/logging"
	"datenight/pkg/utils"
)

func main() {
	app := fx.New(
		fx.NopLogger,
		config_fx.Module,
		db_fx.Module,
		memcache_fx.Module,
		auth_fx.Module,
		venue_fx.Module,
		knowledge_fx.Module,
		planning_fx.Module,
		evaluation_fx.Module,
		rating_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func ProvideRouter(cfg *config.Config, tokens *utils.TokenManager, ctrl api.Controllers) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)
	return api.NewRouter(cfg.Server, cfg.RateLimit, tokens, ctrl)
}

func StartServer(lc fx.Lifecycle, cfg config.ServerConfig, engine *gin.Engine) {
	srv := &http.Server{
		Addr:              net.JoinHostPort("", strconv.Itoa(cfg.Port)),
		Handler:           engine,
		ReadHeaderTimeout: cfg.RequestTimeout,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			go func() {
				logging.Info().Str("addr", srv.Addr).Msg("starting HTTP server")
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logging.Fatal().Err(err).Msg("HTTP server stopped")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logging.Info().Msg("stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}
