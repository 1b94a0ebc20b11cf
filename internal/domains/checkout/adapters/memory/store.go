package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Rajeshrr07/EiliyaBill/internal/domains/checkout/domain"
	"github.com/Rajeshrr07/EiliyaBill/internal/domains/checkout/ports"
)

type cartKey struct {
	owner    string
	register string
}

// Store keeps carts in process memory. Each cart is stored as a detached state copy.
type Store struct {
	mu    sync.Mutex
	carts map[cartKey]domain.State
	now   func() time.Time
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func NewStore(opts ...Option) *Store {
	s := &Store{carts: make(map[cartKey]domain.State), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Load(_ context.Context, ownerID, register string) (*domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ownerID, register)
}

func (s *Store) Update(_ context.Context, ownerID, register string, mutate func(*domain.Cart) error) (*domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.load(ownerID, register)
	if err != nil {
		return nil, err
	}
	if err := mutate(cart); err != nil {
		return nil, err
	}
	cart.UpdatedAt = s.now().UTC()
	s.carts[cartKey{ownerID, register}] = cart.State()
	return domain.Restore(cart.State())
}

func (s *Store) Delete(_ context.Context, ownerID, register string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, cartKey{ownerID, register})
	return nil
}

func (s *Store) load(ownerID, register string) (*domain.Cart, error) {
	state, ok := s.carts[cartKey{ownerID, register}]
	if !ok {
		return domain.NewCart(uuid.NewString(), ownerID, register)
	}
	return domain.Restore(state)
}

var _ ports.Store = (*Store)(nil)
