package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/Rajeshrr07/EiliyaBill/internal/domains/orders/domain"
	"github.com/Rajeshrr07/EiliyaBill/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory order persistence adapter. Every write holds the lock, so it is atomic.
type Repository struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order
}

func NewRepository() *Repository {
	return &Repository{orders: map[string]*domain.Order{}}
}

func (r *Repository) Commit(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	clone := order.Clone()
	if err := clone.MarkCommitted(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.orders[clone.ID]; exists {
		return nil, errors.New("order already exists")
	}
	r.orders[clone.ID] = clone
	return clone.Clone(), nil
}

func (r *Repository) StageHeader(_ context.Context, order *domain.Order) error {
	if order == nil {
		return errors.New("order is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.orders[order.ID]; exists {
		return nil
	}
	header := order.Clone()
	header.Lines = nil
	header.State = domain.CommitPending
	r.orders[header.ID] = header
	return nil
}

func (r *Repository) AppendLines(_ context.Context, orderID string, lines []domain.Line) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[orderID]
	if !ok {
		return ports.ErrNotFound
	}
	order.Lines = append([]domain.Line(nil), lines...)
	return nil
}

func (r *Repository) SetState(_ context.Context, orderID string, state domain.CommitState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[orderID]
	if !ok {
		return ports.ErrNotFound
	}
	order.State = state
	return nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return order.Clone(), nil
}

func (r *Repository) UpdateHeader(_ context.Context, order *domain.Order) (*domain.Order, error) {
	if order == nil {
		return nil, errors.New("order is nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.orders[order.ID]
	if !ok || stored.OwnerID != order.OwnerID {
		return nil, ports.ErrNotFound
	}
	stored.Total = order.Total
	stored.Status = order.Status
	stored.PaymentMethod = order.PaymentMethod
	return stored.Clone(), nil
}

func (r *Repository) Delete(_ context.Context, ownerID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if stored, ok := r.orders[id]; !ok || stored.OwnerID != ownerID {
		return ports.ErrNotFound
	}
	delete(r.orders, id)
	return nil
}

func (r *Repository) List(_ context.Context, filter ports.ListFilter) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Order, 0)
	for _, order := range r.orders {
		if order.OwnerID != filter.OwnerID || order.State != domain.CommitCommitted {
			continue
		}
		if !filter.From.IsZero() && order.CreatedAt.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && !order.CreatedAt.Before(filter.To) {
			continue
		}
		list = append(list, order.Clone())
	}
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID > list[j].ID
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}
