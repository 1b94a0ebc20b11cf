package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/Rajeshrr07/EiliyaBill/internal/domains/groceries/domain"
	"github.com/Rajeshrr07/EiliyaBill/internal/domains/groceries/ports"
)

type Repository struct {
	mu      sync.RWMutex
	entries map[string]domain.Entry
}

func NewRepository() *Repository {
	return &Repository{entries: map[string]domain.Entry{}}
}

func (r *Repository) Insert(_ context.Context, entries ...*domain.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range entries {
		if e == nil {
			return errors.New("grocery entry is nil")
		}
		if _, exists := r.entries[e.ID]; exists {
			return errors.New("grocery entry already exists")
		}
	}
	for _, e := range entries {
		r.entries[e.ID] = *e
	}
	return nil
}

func (r *Repository) Update(_ context.Context, entry *domain.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[entry.ID]; !ok {
		return ports.ErrNotFound
	}
	r.entries[entry.ID] = *entry
	return nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return &e, nil
}

func (r *Repository) ListByOwner(_ context.Context, ownerID string, from, to time.Time) ([]*domain.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*domain.Entry, 0)
	for _, e := range r.entries {
		if e.OwnerID != ownerID {
			continue
		}
		if !from.IsZero() && e.AddedAt.Before(from) {
			continue
		}
		if !to.IsZero() && !e.AddedAt.Before(to) {
			continue
		}
		entry := e
		result = append(result, &entry)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].AddedAt.Equal(result[j].AddedAt) {
			return result[i].ID > result[j].ID
		}
		return result[i].AddedAt.After(result[j].AddedAt)
	})
	return result, nil
}

func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[id]; !ok {
		return ports.ErrNotFound
	}
	delete(r.entries, id)
	return nil
}

var _ ports.Repository = (*Repository)(nil)
