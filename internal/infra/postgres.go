package infra

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"datenight/internal/config"
	"datenight/internal/logging"
	"datenight/internal/models/db_models"
)

// InitPostgresql opens the pool and applies the connection limits.
func InitPostgresql(cfg config.DatabaseConfig) (*gorm.DB, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("database.dsn is empty")
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	logging.Info().Int("max_open_conns", cfg.MaxOpenConns).Msg("connected to postgres")
	return db, nil
}

// Migrate creates or updates the catalog and rating tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&db_models.Venue{}, &db_models.PlanRating{}); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func ClosePostgresql(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		logging.Error().Err(err).Msg("error getting database instance")
		return
	}

	if err := sqlDB.Close(); err != nil {
		logging.Error().Err(err).Msg("error closing database connection")
	} else {
		logging.Info().Msg("postgres connection closed")
	}
}

func StartTransaction(db *gorm.DB) *gorm.DB {
	tx := db.Begin()
	if tx.Error != nil {
		logging.Error().Err(tx.Error).Msg("error starting transaction")
	}
	return tx
}

// ReleaseTransaction commits tx when err is nil and rolls it back otherwise.
func ReleaseTransaction(tx *gorm.DB, err error) error {
	if err != nil {
		if rollbackErr := tx.Rollback().Error; rollbackErr != nil {
			logging.Error().Err(rollbackErr).Msg("error rolling back transaction")
		}
		return err
	}
	if commitErr := tx.Commit().Error; commitErr != nil {
		return fmt.Errorf("commit transaction: %w", commitErr)
	}
	return nil
}
