package ports

import (
	"context"
	"errors"
	"time"

	"github.com/Rajeshrr07/EiliyaBill/internal/domains/groceries/application/types"
	"github.com/Rajeshrr07/EiliyaBill/internal/domains/groceries/domain"
)

var ErrNotFound = errors.New("grocery entry not found")

// Repository persists grocery entries.
type Repository interface {
	// Insert stores every entry or none of them.
	Insert(ctx context.Context, entries ...*domain.Entry) error
	Update(ctx context.Context, entry *domain.Entry) error
	GetByID(ctx context.Context, id string) (*domain.Entry, error)
	// ListByOwner returns entries added in [from, to), newest first; zero bounds are open.
	ListByOwner(ctx context.Context, ownerID string, from, to time.Time) ([]*domain.Entry, error)
	Delete(ctx context.Context, id string) error
}

type Service interface {
	List(ctx context.Context, ownerID string, input types.ListInput) ([]*domain.Entry, error)
	Create(ctx context.Context, ownerID string, inputs []types.CreateInput) ([]*domain.Entry, error)
	Update(ctx context.Context, ownerID, id string, input types.UpdateInput) (*domain.Entry, error)
	Delete(ctx context.Context, ownerID, id string) error
	Summary(ctx context.Context, ownerID string, query types.SummaryQuery) (*types.Summary, error)
}
