package app

import (
	"context"
	"fmt"

	"github.com/urbansetu/pricewatch/config"
	"github.com/urbansetu/pricewatch/lib/models"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func NewDatabase(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		return nil, err
	}

	// Users and listings are owned by the marketplace, so references may dangle.
	db, err := gorm.Open(dialector, &gorm.Config{DisableForeignKeyConstraintWhenMigrating: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}
	log.Sugar().Infow("Database started", "driver", cfg.Database.Driver)

	log.Info("Starting migrations")
	if err := models.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrations failed: %w", err)
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})
	return db, nil
}

func dialectorFor(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "", "sqlite":
		return sqlite.Open(dsn), nil
	case "postgres":
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER: %s", driver)
	}
}
