package db_fx

import (
	"context"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"datenight/internal/config"
	"datenight/internal/infra"
)

var Module = fx.Provide(
	provideDB)

func provideDB(lc fx.Lifecycle, cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := infra.InitPostgresql(cfg)
	if err != nil {
		return nil, err
	}
	if err := infra.Migrate(db); err != nil {
		infra.ClosePostgresql(db)
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			infra.ClosePostgresql(db)
			return nil
		},
	})
	return db, nil
}
