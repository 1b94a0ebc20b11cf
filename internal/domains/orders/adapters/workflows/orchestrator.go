package workflows

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/converter"
	"go.temporal.io/sdk/temporal"

	orderapp "github.com/Rajeshrr07/EiliyaBill/internal/domains/orders/application"
	ordertypes "github.com/Rajeshrr07/EiliyaBill/internal/domains/orders/application/types"
	"github.com/Rajeshrr07/EiliyaBill/internal/domains/orders/domain"
	"github.com/Rajeshrr07/EiliyaBill/internal/domains/orders/ports"
	orderactivities "github.com/Rajeshrr07/EiliyaBill/internal/platform/temporal/activities/orders"
	orderworkflows "github.com/Rajeshrr07/EiliyaBill/internal/platform/temporal/workflows/orders"
	"github.com/Rajeshrr07/EiliyaBill/internal/shared/identity"
)

var (
	_ ports.WorkflowOrchestrator = (*TemporalOrderWorkflows)(nil)
	_ ports.WorkflowOrchestrator = (*InlineOrderWorkflows)(nil)
)

// requestHashMemo carries the commit fingerprint on keyed workflow executions.
const requestHashMemo = "requestHash"

// TemporalOrderWorkflows runs order commits as a saga on a Temporal cluster.
type TemporalOrderWorkflows struct {
	client    client.Client
	taskQueue string
}

func NewTemporalOrderWorkflows(c client.Client) *TemporalOrderWorkflows {
	return &TemporalOrderWorkflows{client: c, taskQueue: orderworkflows.OrderCommitTaskQueue}
}

// CommitOrder starts the commit workflow and waits for its result.
func (o *TemporalOrderWorkflows) CommitOrder(ctx context.Context, input ordertypes.CommitOrderInput) (*ordertypes.CommitResult, error) {
	if o == nil || o.client == nil {
		return nil, errors.New("temporal order workflows not configured")
	}
	traceComponent := workflowTraceComponent(ctx)
	workflowID := buildOrderCommitWorkflowID(input)
	options := client.StartWorkflowOptions{
		ID:        workflowID,
		TaskQueue: o.taskQueue,
	}
	keyed := strings.TrimSpace(input.IdempotencyKey) != ""
	var requestHash string
	if keyed {
		hash, err := orderapp.FingerprintCommit(input)
		if err != nil {
			return nil, err
		}
		requestHash = hash
		options.Memo = map[string]interface{}{requestHashMemo: requestHash}
		options.WorkflowExecutionErrorWhenAlreadyStarted = true
	}
	run, err := o.client.ExecuteWorkflow(
		ctx,
		options,
		orderworkflows.OrderCommitWorkflowName,
		orderworkflows.OrderCommitWorkflowInput{Command: input, TraceID: traceComponent},
	)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) && keyed {
			return o.joinRunningCommit(ctx, workflowID, alreadyStarted.RunId, requestHash)
		}
		return nil, err
	}
	var result ordertypes.CommitResult
	if err := run.Get(ctx, &result); err != nil {
		return nil, translateWorkflowError(err)
	}
	return &result, nil
}

// joinRunningCommit waits on an in-flight commit for the same key, provided it carries the same payload.
func (o *TemporalOrderWorkflows) joinRunningCommit(ctx context.Context, workflowID, runID, requestHash string) (*ordertypes.CommitResult, error) {
	running, err := o.runningRequestHash(ctx, workflowID, runID)
	if err != nil {
		return nil, err
	}
	if running != "" && running != requestHash {
		return nil, ports.ErrIdempotencyConflict
	}
	var result ordertypes.CommitResult
	if err := o.client.GetWorkflow(ctx, workflowID, runID).Get(ctx, &result); err != nil {
		return nil, translateWorkflowError(err)
	}
	result.Replayed = true
	return &result, nil
}

// runningRequestHash reads the fingerprint memo of a workflow execution; empty when none was recorded.
func (o *TemporalOrderWorkflows) runningRequestHash(ctx context.Context, workflowID, runID string) (string, error) {
	desc, err := o.client.DescribeWorkflowExecution(ctx, workflowID, runID)
	if err != nil {
		return "", fmt.Errorf("describe order commit workflow: %w", err)
	}
	payload, ok := desc.GetWorkflowExecutionInfo().GetMemo().GetFields()[requestHashMemo]
	if !ok {
		return "", nil
	}
	var hash string
	if err := converter.GetDefaultDataConverter().FromPayload(payload, &hash); err != nil {
		return "", fmt.Errorf("decode order commit memo: %w", err)
	}
	return hash, nil
}

// InlineOrderWorkflows commits through the service directly, for tests and when Temporal is unavailable.
type InlineOrderWorkflows struct {
	service ports.Service
}

func NewInlineOrderWorkflows(service ports.Service) *InlineOrderWorkflows {
	return &InlineOrderWorkflows{service: service}
}

func (o *InlineOrderWorkflows) CommitOrder(ctx context.Context, input ordertypes.CommitOrderInput) (*ordertypes.CommitResult, error) {
	if o == nil || o.service == nil {
		return nil, errors.New("inline order workflows not configured")
	}
	return o.service.Commit(ctx, input)
}

var validationErrors = []error{
	domain.ErrNoItems,
	domain.ErrEmptyOwner,
	domain.ErrEmptyProductName,
	domain.ErrInvalidQuantity,
	domain.ErrNegativeAmount,
	domain.ErrInvalidStatus,
	domain.ErrInvalidPayment,
	domain.ErrTotalMismatch,
	domain.ErrNothingToUpdate,
}

// translateWorkflowError restores the application sentinels that were flattened by the activity boundary.
func translateWorkflowError(err error) error {
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) {
		return err
	}
	switch appErr.Type() {
	case orderactivities.ErrTypeInvalidInput:
		var root string
		if appErr.HasDetails() {
			_ = appErr.Details(&root)
		}
		for _, sentinel := range validationErrors {
			if sentinel.Error() == root {
				return fmt.Errorf("%w: %w", orderapp.ErrInvalidInput, sentinel)
			}
		}
		if root == "" {
			root = appErr.Message()
		}
		return fmt.Errorf("%w: %w", orderapp.ErrInvalidInput, errors.New(root))
	case orderactivities.ErrTypeIdempotencyConflict:
		return ports.ErrIdempotencyConflict
	case orderactivities.ErrTypeMissingOwner:
		return identity.ErrMissingOwner
	}
	return err
}

// buildOrderCommitWorkflowID makes retries with the same key land on the same workflow execution.
func buildOrderCommitWorkflowID(input ordertypes.CommitOrderInput) string {
	if key := strings.TrimSpace(input.IdempotencyKey); key != "" {
		return fmt.Sprintf("order-commit-idem-%s", hashIdempotencyKey(input.OwnerID, key))
	}
	if input.OrderID != "" {
		return "order-commit-" + input.OrderID
	}
	return "order-commit-" + uuid.NewString()
}

func hashIdempotencyKey(ownerID, key string) string {
	sum := sha256.Sum256([]byte(ownerID + "\x00" + key))
	return hex.EncodeToString(sum[:8])
}

func workflowTraceComponent(ctx context.Context) string {
	if traceComponent := workflowTraceID(ctx); traceComponent != "" {
		return traceComponent
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	spanCtx := oteltrace.SpanFromContext(ctx).SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	return spanCtx.TraceID().String()
}
