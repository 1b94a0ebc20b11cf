package ports

import (
	"context"

	"github.com/Rajeshrr07/EiliyaBill/internal/domains/catalog/application/types"
)

// Service exposes catalog use cases to adapters. Every call is scoped to ownerID.
type Service interface {
	List(ctx context.Context, ownerID string) ([]*types.ProductProjection, error)
	Get(ctx context.Context, ownerID, id string) (*types.ProductProjection, error)
	Create(ctx context.Context, ownerID string, input types.ProductInput) (*types.ProductProjection, error)
	Update(ctx context.Context, ownerID, id string, input types.ProductInput) (*types.ProductProjection, error)
	Delete(ctx context.Context, ownerID, id string) error
	UploadImage(ctx context.Context, input types.UploadImageInput) (*types.ProductProjection, error)
}
