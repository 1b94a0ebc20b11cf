package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	orderapp "github.com/Rajeshrr07/EiliyaBill/internal/domains/orders/application"
	ordertypes "github.com/Rajeshrr07/EiliyaBill/internal/domains/orders/application/types"
	orderports "github.com/Rajeshrr07/EiliyaBill/internal/domains/orders/ports"
	apierrors "github.com/Rajeshrr07/EiliyaBill/internal/shared/errors"
	"github.com/Rajeshrr07/EiliyaBill/internal/shared/identity"
)

const (
	// StageOrderActivityName validates the cart and writes a pending header.
	StageOrderActivityName = "orders.activities.StageOrder"
	// AppendLinesActivityName writes the order lines under the pending header.
	AppendLinesActivityName = "orders.activities.AppendLines"
	// FinalizeOrderActivityName flips the header to committed.
	FinalizeOrderActivityName = "orders.activities.FinalizeOrder"
	// DiscardOrderActivityName removes a partially written order.
	DiscardOrderActivityName = "orders.activities.DiscardOrder"
)

// Application error types carried across the workflow boundary.
const (
	ErrTypeInvalidInput        = "InvalidInput"
	ErrTypeIdempotencyConflict = "IdempotencyConflict"
	ErrTypeMissingOwner        = "MissingOwner"
)

// Activities runs the order commit steps on a worker.
type Activities struct {
	steps orderports.CommitSteps
}

func NewActivities(steps orderports.CommitSteps) *Activities {
	return &Activities{steps: steps}
}

func (a *Activities) StageOrder(ctx context.Context, input ordertypes.CommitOrderInput) (*ordertypes.StagedOrder, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.steps == nil {
		return nil, errors.New("order activities not initialized")
	}
	logger.Info("StageOrder activity started", "orderId", input.OrderID, "lines", len(input.Items))
	staged, err := a.steps.Stage(ctx, input)
	if err != nil {
		logger.Error("StageOrder activity failed", "orderId", input.OrderID, "error", err)
		return nil, classify(err)
	}
	if staged.Replay != nil {
		logger.Info("StageOrder resolved idempotent replay", "orderId", staged.Replay.OrderID)
	}
	return staged, nil
}

func (a *Activities) AppendLines(ctx context.Context, staged ordertypes.StagedOrder) error {
	logger := activity.GetLogger(ctx)
	if a == nil || a.steps == nil {
		return errors.New("order activities not initialized")
	}
	if err := a.steps.AppendLines(ctx, staged); err != nil {
		logger.Error("AppendLines activity failed", "orderId", stagedID(staged), "error", err)
		return classify(err)
	}
	logger.Info("AppendLines activity completed", "orderId", stagedID(staged))
	return nil
}

func (a *Activities) FinalizeOrder(ctx context.Context, staged ordertypes.StagedOrder) (*ordertypes.CommitResult, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.steps == nil {
		return nil, errors.New("order activities not initialized")
	}
	result, err := a.steps.Finalize(ctx, staged)
	if err != nil {
		logger.Error("FinalizeOrder activity failed", "orderId", stagedID(staged), "error", err)
		return nil, classify(err)
	}
	logger.Info("FinalizeOrder activity completed", "orderId", result.OrderID)
	return result, nil
}

func (a *Activities) DiscardOrder(ctx context.Context, staged ordertypes.StagedOrder) error {
	logger := activity.GetLogger(ctx)
	if a == nil || a.steps == nil {
		return errors.New("order activities not initialized")
	}
	if err := a.steps.Discard(ctx, staged); err != nil {
		logger.Error("DiscardOrder activity failed", "orderId", stagedID(staged), "error", err)
		return err
	}
	logger.Info("DiscardOrder activity completed", "orderId", stagedID(staged))
	return nil
}

// classify turns caller mistakes into non-retryable errors; the root message travels as the first detail.
func classify(err error) error {
	switch {
	case errors.Is(err, orderapp.ErrInvalidInput):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeInvalidInput, err, apierrors.RootMessage(err))
	case errors.Is(err, orderports.ErrIdempotencyConflict):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeIdempotencyConflict, err)
	case errors.Is(err, identity.ErrMissingOwner):
		return temporal.NewNonRetryableApplicationError(err.Error(), ErrTypeMissingOwner, err)
	}
	return err
}

func stagedID(staged ordertypes.StagedOrder) string {
	if staged.Order != nil {
		return staged.Order.ID
	}
	if staged.Replay != nil {
		return staged.Replay.OrderID
	}
	return ""
}
