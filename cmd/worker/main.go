package main

import (
	"context"
	"log"
	"log/slog"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Rajeshrr07/EiliyaBill/internal/app/api"
	platformcache "github.com/Rajeshrr07/EiliyaBill/internal/platform/cache"
	"github.com/Rajeshrr07/EiliyaBill/internal/platform/database"
	"github.com/Rajeshrr07/EiliyaBill/internal/platform/migrations"
	platformobservability "github.com/Rajeshrr07/EiliyaBill/internal/platform/observability"
	platformtemporal "github.com/Rajeshrr07/EiliyaBill/internal/platform/temporal"
	orderactivities "github.com/Rajeshrr07/EiliyaBill/internal/platform/temporal/activities/orders"
	orderworkflows "github.com/Rajeshrr07/EiliyaBill/internal/platform/temporal/workflows/orders"
)

func main() {
	ctx := context.Background()
	const serviceName = "eiliyabill-worker"

	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	db, closeDB := database.Connect(ctx, cfg.Database, logger)
	defer closeDB()
	if db == nil {
		logger.Warn("worker has no database; committed orders will not be visible to the API")
	} else if err := migrations.Run(db); err != nil {
		logger.Error("failed to migrate database", slog.String("error", err.Error()))
		return
	}
	rdb, closeRedis := platformcache.Connect(ctx, cfg.Redis, logger)
	defer closeRedis()

	services, err := api.NewServices(ctx, cfg, api.Dependencies{DB: db, Redis: rdb, Instruments: instruments})
	if err != nil {
		logger.Error("failed to build services", slog.String("error", err.Error()))
		return
	}
	activities := orderactivities.NewActivities(services.CommitSteps)

	temporalClient, err := platformtemporal.Dial(cfg.Temporal, logger, instruments.Tracer("temporal-worker"))
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		return
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, orderworkflows.OrderCommitTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderworkflows.OrderCommitWorkflow, workflow.RegisterOptions{Name: orderworkflows.OrderCommitWorkflowName})
	w.RegisterActivityWithOptions(activities.StageOrder, activity.RegisterOptions{Name: orderactivities.StageOrderActivityName})
	w.RegisterActivityWithOptions(activities.AppendLines, activity.RegisterOptions{Name: orderactivities.AppendLinesActivityName})
	w.RegisterActivityWithOptions(activities.FinalizeOrder, activity.RegisterOptions{Name: orderactivities.FinalizeOrderActivityName})
	w.RegisterActivityWithOptions(activities.DiscardOrder, activity.RegisterOptions{Name: orderactivities.DiscardOrderActivityName})

	logger.Info("worker listening", slog.String("taskQueue", orderworkflows.OrderCommitTaskQueue), slog.String("namespace", cfg.Temporal.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
