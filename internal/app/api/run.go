package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	billingserver "github.com/Rajeshrr07/EiliyaBill/go"
	userports "github.com/Rajeshrr07/EiliyaBill/internal/domains/users/ports"
	platformcache "github.com/Rajeshrr07/EiliyaBill/internal/platform/cache"
	"github.com/Rajeshrr07/EiliyaBill/internal/platform/database"
	"github.com/Rajeshrr07/EiliyaBill/internal/platform/metrics"
	"github.com/Rajeshrr07/EiliyaBill/internal/platform/migrations"
	platformobservability "github.com/Rajeshrr07/EiliyaBill/internal/platform/observability"
	platformtemporal "github.com/Rajeshrr07/EiliyaBill/internal/platform/temporal"
)

const serviceName = "eiliyabill-api"

// Run boots the billing HTTP API and blocks until ctx is cancelled or the server fails.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger
	if cfg.EphemeralSecret {
		logger.Warn("SESSION_SECRET not set, using a random secret; sessions will not survive a restart")
	}

	db, closeDB := database.Connect(ctx, cfg.Database, logger)
	defer closeDB()
	if db != nil {
		if err := migrations.Run(db); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	rdb, closeRedis := platformcache.Connect(ctx, cfg.Redis, logger)
	defer closeRedis()

	httpMetrics := metrics.New()
	deps := Dependencies{
		DB:          db,
		Redis:       rdb,
		Instruments: instruments,
		Registerer:  httpMetrics.Registerer(),
	}
	if temporalClient, err := platformtemporal.Dial(cfg.Temporal, logger, instruments.Tracer("temporal-client")); err != nil {
		logger.Warn("Temporal workflows unavailable, committing orders inline", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		deps.Temporal = temporalClient
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.Temporal.Namespace))
	}

	services, err := NewServices(ctx, cfg, deps)
	if err != nil {
		return err
	}

	checks := map[string]billingserver.HealthCheck{}
	if db != nil {
		checks["database"] = func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}
	}
	if rdb != nil {
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", billingserver.IdempotencyKeyHeader},
		ExposeHeaders:    []string{"Content-Length", "Idempotent-Replayed"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(otelgin.Middleware(serviceName))
	engine.Use(httpMetrics.Middleware())
	engine.GET("/metrics", httpMetrics.Handler())
	if services.Images != nil {
		engine.Static("/uploads", services.Images.Root())
	}

	handlers := billingserver.ApiHandleFunctions{
		Sessions:   services.Users,
		AuthAPI:    billingserver.NewAuthAPI(services.Users, billingserver.CookieConfig{Secure: cfg.CookieSecure, TTL: cfg.SessionTTL}),
		ProductAPI: billingserver.NewProductAPI(services.Catalog),
		OrderAPI:   billingserver.NewOrderAPI(services.Orders, services.Workflows, cfg.ReportLocation),
		ReportAPI:  billingserver.NewReportAPI(services.Reports),
		CartAPI:    billingserver.NewCartAPI(services.Checkout),
		GroceryAPI: billingserver.NewGroceryAPI(services.Groceries),
		HealthAPI:  billingserver.NewHealthAPI(checks),
	}
	router := billingserver.NewRouterWithGinEngine(engine, handlers)

	if cfg.SessionPurgeInterval > 0 {
		go purgeSessions(ctx, services.Sessions, cfg.SessionPurgeInterval, logger)
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("billing API listening", slog.String("addr", server.Addr))
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		logger.Error("billing API server exited", slog.String("addr", server.Addr), slog.String("error", err.Error()))
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down billing API")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

// purgeSessions deletes expired sessions every interval until ctx ends.
func purgeSessions(ctx context.Context, sessions userports.SessionStore, interval time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			purged, err := sessions.PurgeExpired(ctx)
			if err != nil {
				logger.Warn("session purge failed", slog.String("error", err.Error()))
				continue
			}
			if purged > 0 {
				logger.Info("expired sessions purged", slog.Int64("count", purged))
			}
		}
	}
}
