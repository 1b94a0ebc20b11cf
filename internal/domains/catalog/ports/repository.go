package ports

import (
	"context"
	"errors"

	"github.com/Rajeshrr07/EiliyaBill/internal/domains/catalog/application/types"
	"github.com/Rajeshrr07/EiliyaBill/internal/domains/catalog/domain"
)

var ErrNotFound = errors.New("product not found")

// Repository persists catalog products.
type Repository interface {
	// Save inserts or replaces a product keyed by its id.
	Save(ctx context.Context, product *domain.Product) (*types.ProductProjection, error)
	GetByID(ctx context.Context, id string) (*types.ProductProjection, error)
	// ListByOwner returns the owner's products newest-first.
	ListByOwner(ctx context.Context, ownerID string) ([]*types.ProductProjection, error)
	Delete(ctx context.Context, id string) error
}
