// Package cache connects the optional Redis instance used for report caching and registers.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config selects the Redis server.
type Config struct {
	Addr     string
	Password string
	DB       int
}

// ConfigFromEnv reads REDIS_ADDR, REDIS_PASSWORD and REDIS_DB.
func ConfigFromEnv() Config {
	cfg := Config{
		Addr:     strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		Password: os.Getenv("REDIS_PASSWORD"),
	}
	if db, err := strconv.Atoi(strings.TrimSpace(os.Getenv("REDIS_DB"))); err == nil {
		cfg.DB = db
	}
	return cfg
}

// Open creates a client and verifies it with a ping.
func Open(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("cache: redis ping: %w", err)
	}
	return client, nil
}

// Connect returns nil when Redis is not configured or unreachable so callers can fall back to memory.
func Connect(ctx context.Context, cfg Config, logger *slog.Logger) (*redis.Client, func()) {
	if cfg.Addr == "" {
		logger.Info("REDIS_ADDR not set, report cache and shared registers disabled")
		return nil, func() {}
	}
	client, err := Open(ctx, cfg)
	if err != nil {
		logger.Warn("redis unavailable, continuing without it", slog.String("addr", cfg.Addr), slog.String("error", err.Error()))
		return nil, func() {}
	}
	logger.Info("redis connected", slog.String("addr", cfg.Addr), slog.Int("db", cfg.DB))
	return client, func() { _ = client.Close() }
}
