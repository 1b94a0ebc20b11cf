package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	ordertypes "github.com/Rajeshrr07/EiliyaBill/internal/domains/orders/application/types"
	orderactivities "github.com/Rajeshrr07/EiliyaBill/internal/platform/temporal/activities/orders"
)

// RunOrderCommitSequence stages the header, appends lines and finalizes; a failure after staging discards the order.
func RunOrderCommitSequence(ctx workflow.Context, input ordertypes.CommitOrderInput) (*ordertypes.CommitResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("order commit sequence started", "orderId", input.OrderID)
	stepOptions := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	}
	compensationOptions := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    30 * time.Second,
			MaximumAttempts:    10,
		},
	}
	stepCtx := workflow.WithActivityOptions(ctx, stepOptions)

	var staged ordertypes.StagedOrder
	if err := workflow.ExecuteActivity(stepCtx, orderactivities.StageOrderActivityName, input).Get(ctx, &staged); err != nil {
		logger.Error("order commit sequence failed to stage", "orderId", input.OrderID, "error", err)
		return nil, err
	}
	if staged.Replay != nil {
		logger.Info("order commit sequence replayed", "orderId", staged.Replay.OrderID)
		return staged.Replay, nil
	}

	compensate := func(cause error) error {
		logger.Warn("order commit sequence compensating", "orderId", input.OrderID, "error", cause)
		discardCtx, cancel := workflow.NewDisconnectedContext(ctx)
		defer cancel()
		discardCtx = workflow.WithActivityOptions(discardCtx, compensationOptions)
		if err := workflow.ExecuteActivity(discardCtx, orderactivities.DiscardOrderActivityName, staged).Get(discardCtx, nil); err != nil {
			logger.Error("order commit sequence compensation failed", "orderId", input.OrderID, "error", err)
		}
		return cause
	}

	if err := workflow.ExecuteActivity(stepCtx, orderactivities.AppendLinesActivityName, staged).Get(ctx, nil); err != nil {
		return nil, compensate(err)
	}
	var result ordertypes.CommitResult
	if err := workflow.ExecuteActivity(stepCtx, orderactivities.FinalizeOrderActivityName, staged).Get(ctx, &result); err != nil {
		return nil, compensate(err)
	}
	logger.Info("order commit sequence committed", "orderId", result.OrderID)
	return &result, nil
}
