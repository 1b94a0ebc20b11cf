package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/Rajeshrr07/EiliyaBill/internal/domains/catalog/application/types"
	"github.com/Rajeshrr07/EiliyaBill/internal/domains/catalog/domain"
	"github.com/Rajeshrr07/EiliyaBill/internal/domains/catalog/ports"
	"github.com/Rajeshrr07/EiliyaBill/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory product persistence adapter.
type Repository struct {
	mu       sync.RWMutex
	products map[string]entry
	now      func() time.Time
}

type entry struct {
	product domain.Product
	meta    projection.Metadata
}

func NewRepository() *Repository {
	return &Repository{products: map[string]entry{}, now: time.Now}
}

// WithClock overrides the time source for deterministic testing.
func (r *Repository) WithClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

func (r *Repository) Save(_ context.Context, product *domain.Product) (*types.ProductProjection, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now().UTC()
	meta := projection.Metadata{CreatedAt: now, UpdatedAt: now}
	if existing, ok := r.products[product.ID]; ok {
		meta.CreatedAt = existing.meta.CreatedAt
	}
	r.products[product.ID] = entry{product: *product, meta: meta}
	return project(r.products[product.ID]), nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*types.ProductProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.products[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return project(e), nil
}

func (r *Repository) ListByOwner(_ context.Context, ownerID string) ([]*types.ProductProjection, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*types.ProductProjection, 0)
	for _, e := range r.products {
		if e.product.OwnerID == ownerID {
			list = append(list, project(e))
		}
	}
	sort.SliceStable(list, func(i, j int) bool {
		return projection.Newer(list[i].Metadata, list[j].Metadata)
	})
	return list, nil
}

func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

func project(e entry) *types.ProductProjection {
	clone := e.product
	return types.NewProductProjection(&clone, e.meta)
}
