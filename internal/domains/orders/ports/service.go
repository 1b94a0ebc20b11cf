package ports

import (
	"context"

	"github.com/Rajeshrr07/EiliyaBill/internal/domains/orders/application/types"
	"github.com/Rajeshrr07/EiliyaBill/internal/domains/orders/domain"
)

// Service exposes order use cases to adapters.
type Service interface {
	Commit(ctx context.Context, input types.CommitOrderInput) (*types.CommitResult, error)
	Patch(ctx context.Context, ownerID, orderID string, input types.PatchOrderInput) (*domain.Order, error)
	Delete(ctx context.Context, ownerID, orderID string) error
	List(ctx context.Context, ownerID string, input types.ListOrdersInput) ([]*domain.Order, error)
}

// CommitSteps splits Commit into the stage, append, finalize saga used by durable workflows.
type CommitSteps interface {
	Stage(ctx context.Context, input types.CommitOrderInput) (*types.StagedOrder, error)
	AppendLines(ctx context.Context, staged types.StagedOrder) error
	Finalize(ctx context.Context, staged types.StagedOrder) (*types.CommitResult, error)
	Discard(ctx context.Context, staged types.StagedOrder) error
}
