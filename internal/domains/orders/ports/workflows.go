package ports

import (
	"context"

	"github.com/Rajeshrr07/EiliyaBill/internal/domains/orders/application/types"
)

// WorkflowOrchestrator runs order commits either durably or inline.
type WorkflowOrchestrator interface {
	CommitOrder(ctx context.Context, input types.CommitOrderInput) (*types.CommitResult, error)
}
