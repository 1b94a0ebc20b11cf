// Package database opens the GORM connection shared by every persistence adapter.
package database

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config selects the dialector and pool limits.
type Config struct {
	Driver       string
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
}

// Open dials the configured database through GORM and verifies connectivity.
func Open(ctx context.Context, cfg Config) (*gorm.DB, error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, fmt.Errorf("database DSN is empty")
	}
	dialector, err := buildDialector(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return db, nil
}

func buildDialector(driver, dsn string) (gorm.Dialector, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", DriverPostgres:
		return postgres.Open(dsn), nil
	case DriverSQLite:
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (supported: postgres, sqlite)", driver)
	}
}

// ConfigFromEnv reads DB_DRIVER and DATABASE_DSN (POSTGRES_DSN is accepted for postgres).
func ConfigFromEnv() Config {
	dsn := strings.TrimSpace(os.Getenv("DATABASE_DSN"))
	if dsn == "" {
		dsn = strings.TrimSpace(os.Getenv("POSTGRES_DSN"))
	}
	return Config{
		Driver:       strings.TrimSpace(os.Getenv("DB_DRIVER")),
		DSN:          dsn,
		MaxOpenConns: 25,
		MaxIdleConns: 10,
	}
}

// Connect dials the database and returns the DB plus a cleanup function.
// When no DSN is configured or the connection fails, it logs and returns nil with a no-op cleanup.
func Connect(ctx context.Context, cfg Config, logger *slog.Logger) (*gorm.DB, func()) {
	if cfg.DSN == "" {
		if logger != nil {
			logger.Warn("DATABASE_DSN not set, falling back to in-memory repositories")
		}
		return nil, func() {}
	}
	db, err := Open(ctx, cfg)
	if err != nil {
		if logger != nil {
			logger.Warn("failed to connect to database, falling back to in-memory repositories",
				slog.String("driver", cfg.Driver), slog.String("error", err.Error()))
		}
		return nil, func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		if logger != nil {
			logger.Warn("failed to unwrap database connection, falling back to in-memory repositories", slog.String("error", err.Error()))
		}
		return nil, func() {}
	}
	if logger != nil {
		logger.Info("database connection established", slog.String("driver", db.Dialector.Name()))
	}
	return db, func() { _ = sqlDB.Close() }
}

// ConnectFromEnv is Connect with ConfigFromEnv.
func ConnectFromEnv(ctx context.Context, logger *slog.Logger) (*gorm.DB, func()) {
	return Connect(ctx, ConfigFromEnv(), logger)
}
