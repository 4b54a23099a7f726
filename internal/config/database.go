package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hireflow/tracker/internal/models"
)

// trackerTables lists every model the postgres store owns.
var trackerTables = []any{
	&models.Application{},
	&models.Resume{},
}

// OpenStore connects to Postgres for STORE_DRIVER=postgres, applies the pool
// limits and brings the tracker tables up to date. The connection is
// released again if anything after the dial fails.
func OpenStore(ctx context.Context, cfg *Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.GetDatabaseDSN()), &gorm.Config{
		Logger:  logger.Default.LogMode(gormLogLevel(cfg.Server.Env)),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	applyPool(sqlDB, cfg.Database)

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("database is not reachable at %s:%s: %w", cfg.Database.Host, cfg.Database.Port, err)
	}
	logrus.WithFields(logrus.Fields{
		"host":     cfg.Database.Host,
		"database": cfg.Database.DBName,
	}).Info("✅ Database connected")

	if err := migrateTracker(ctx, db); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return db, nil
}

type poolSetter interface {
	SetMaxOpenConns(n int)
	SetMaxIdleConns(n int)
	SetConnMaxLifetime(d time.Duration)
}

func applyPool(p poolSetter, cfg DatabaseConfig) {
	if cfg.MaxOpenConns > 0 {
		p.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		idle := cfg.MaxIdleConns
		if cfg.MaxOpenConns > 0 && idle > cfg.MaxOpenConns {
			idle = cfg.MaxOpenConns
		}
		p.SetMaxIdleConns(idle)
	}
	if cfg.ConnMaxLifetime > 0 {
		p.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
}

func migrateTracker(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(trackerTables...); err != nil {
		return fmt.Errorf("failed to migrate tracker tables: %w", err)
	}
	logrus.WithField("tables", len(trackerTables)).Info("✅ Tracker tables migrated")
	return nil
}

func gormLogLevel(env string) logger.LogLevel {
	switch env {
	case "development":
		return logger.Info
	case "test":
		return logger.Silent
	default:
		return logger.Warn
	}
}
