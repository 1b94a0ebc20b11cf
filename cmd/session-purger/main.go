package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	userpostgres "github.com/Rajeshrr07/EiliyaBill/internal/domains/users/adapters/persistence/postgres"
	"github.com/Rajeshrr07/EiliyaBill/internal/platform/database"
)

func main() {
	_ = godotenv.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	db, cleanup := database.ConnectFromEnv(ctx, logger)
	defer cleanup()
	if db == nil {
		logger.Error("database not configured or unreachable; cannot purge sessions")
		os.Exit(1)
	}

	purged, err := userpostgres.NewSessionStore(db).PurgeExpired(ctx)
	if err != nil {
		logger.Error("failed to purge sessions", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("session purge completed", slog.Int64("purged", purged))
}
