package ports

import (
	"context"
	"errors"
	"time"

	"github.com/Rajeshrr07/EiliyaBill/internal/domains/orders/domain"
)

var ErrNotFound = errors.New("order not found")

// ListFilter scopes order reads. From is inclusive, To exclusive; zero values are open.
type ListFilter struct {
	OwnerID string
	From    time.Time
	To      time.Time
}

// Repository persists order headers and their lines.
type Repository interface {
	// Commit writes the header and every line in one transaction and marks the order committed.
	Commit(ctx context.Context, order *domain.Order) (*domain.Order, error)
	// StageHeader inserts a pending header; repeating it for the same id is a no-op.
	StageHeader(ctx context.Context, order *domain.Order) error
	// AppendLines replaces the lines of a staged order.
	AppendLines(ctx context.Context, orderID string, lines []domain.Line) error
	SetState(ctx context.Context, orderID string, state domain.CommitState) error
	// GetByID returns the order with its lines regardless of commit state.
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	// UpdateHeader persists total, status and payment method of an order owned by order.OwnerID.
	UpdateHeader(ctx context.Context, order *domain.Order) (*domain.Order, error)
	// Delete removes the lines first and then the header; a failed line delete leaves both intact.
	Delete(ctx context.Context, ownerID, id string) error
	// List returns committed orders with their lines, newest first.
	List(ctx context.Context, filter ListFilter) ([]*domain.Order, error)
}
