package orders

import (
	"github.com/google/uuid"
	"go.temporal.io/sdk/workflow"

	ordertypes "github.com/Rajeshrr07/EiliyaBill/internal/domains/orders/application/types"
	"github.com/Rajeshrr07/EiliyaBill/internal/platform/temporal/sequences"
)

const (
	// OrderCommitWorkflowName is the public identifier for registering the workflow.
	OrderCommitWorkflowName = "orders.workflows.Commit"
	// OrderCommitTaskQueue is the queue consumed by the worker processing order commits.
	OrderCommitTaskQueue = "ORDER_COMMIT"
)

// OrderCommitWorkflowInput carries the checkout command.
type OrderCommitWorkflowInput struct {
	Command ordertypes.CommitOrderInput
	TraceID string
}

// OrderCommitWorkflow runs the commit saga. The order id is fixed before the first activity so retries reuse it.
func OrderCommitWorkflow(ctx workflow.Context, input OrderCommitWorkflowInput) (*ordertypes.CommitResult, error) {
	logger := workflow.GetLogger(ctx)
	command := input.Command
	if command.OrderID == "" {
		encoded := workflow.SideEffect(ctx, func(workflow.Context) interface{} { return uuid.NewString() })
		if err := encoded.Get(&command.OrderID); err != nil {
			return nil, err
		}
	}
	logger.Info("OrderCommitWorkflow started", withTraceID(input.TraceID, "orderId", command.OrderID)...)
	result, err := sequences.RunOrderCommitSequence(ctx, command)
	if err != nil {
		logger.Error("OrderCommitWorkflow failed", withTraceID(input.TraceID, "orderId", command.OrderID, "error", err)...)
		return nil, err
	}
	logger.Info("OrderCommitWorkflow completed", withTraceID(input.TraceID, "orderId", result.OrderID, "replayed", result.Replayed)...)
	return result, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
