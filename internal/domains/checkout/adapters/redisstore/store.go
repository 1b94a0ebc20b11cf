// Package redisstore keeps register carts in Redis so every API replica sees the same tickets.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/Rajeshrr07/EiliyaBill/internal/domains/checkout/domain"
	"github.com/Rajeshrr07/EiliyaBill/internal/domains/checkout/ports"
)

// DefaultTTL drops registers that were left untouched for a day.
const DefaultTTL = 24 * time.Hour

const maxAttempts = 5

// getter is satisfied by both the client and a WATCH transaction.
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

type Store struct {
	rdb redis.UniversalClient
	ttl time.Duration
	now func() time.Time
}

type Option func(*Store)

func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func NewStore(rdb redis.UniversalClient, opts ...Option) *Store {
	s := &Store{rdb: rdb, ttl: DefaultTTL, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type lineRecord struct {
	ProductID     string          `json:"productId"`
	ProductName   string          `json:"productName"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	Quantity      int             `json:"quantity"`
	PaymentMethod string          `json:"paymentMethod"`
}

type cartRecord struct {
	ID        string       `json:"id"`
	Revision  int          `json:"revision"`
	UpdatedAt time.Time    `json:"updatedAt"`
	Lines     []lineRecord `json:"lines"`
}

func (s *Store) Load(ctx context.Context, ownerID, register string) (*domain.Cart, error) {
	return s.get(ctx, s.rdb, ownerID, register)
}

// Update runs mutate inside an optimistic WATCH transaction and retries when the key changed.
func (s *Store) Update(ctx context.Context, ownerID, register string, mutate func(*domain.Cart) error) (*domain.Cart, error) {
	key := cartKey(ownerID, register)
	var result *domain.Cart
	txf := func(tx *redis.Tx) error {
		cart, err := s.get(ctx, tx, ownerID, register)
		if err != nil {
			return err
		}
		if err := mutate(cart); err != nil {
			return err
		}
		cart.UpdatedAt = s.now().UTC()
		payload, err := json.Marshal(toRecord(cart))
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, s.ttl)
			return nil
		})
		if err != nil {
			return err
		}
		result = cart
		return nil
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		err := s.rdb.Watch(ctx, txf, key)
		if err == nil {
			return result, nil
		}
		if !errors.Is(err, redis.TxFailedErr) {
			return nil, err
		}
	}
	return nil, ports.ErrConcurrentUpdate
}

func (s *Store) Delete(ctx context.Context, ownerID, register string) error {
	return s.rdb.Del(ctx, cartKey(ownerID, register)).Err()
}

func (s *Store) get(ctx context.Context, r getter, ownerID, register string) (*domain.Cart, error) {
	raw, err := r.Get(ctx, cartKey(ownerID, register)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.NewCart(uuid.NewString(), ownerID, register)
	}
	if err != nil {
		return nil, err
	}
	var rec cartRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode cart %s/%s: %w", ownerID, register, err)
	}
	return fromRecord(ownerID, register, rec)
}

func toRecord(c *domain.Cart) cartRecord {
	lines := c.Lines()
	rec := cartRecord{ID: c.ID, Revision: c.Revision, UpdatedAt: c.UpdatedAt, Lines: make([]lineRecord, 0, len(lines))}
	for _, l := range lines {
		rec.Lines = append(rec.Lines, lineRecord{
			ProductID:     l.ProductID,
			ProductName:   l.ProductName,
			UnitPrice:     l.UnitPrice,
			Quantity:      l.Quantity,
			PaymentMethod: l.PaymentMethod,
		})
	}
	return rec
}

func fromRecord(ownerID, register string, rec cartRecord) (*domain.Cart, error) {
	state := domain.State{
		ID:        rec.ID,
		OwnerID:   ownerID,
		Register:  register,
		Revision:  rec.Revision,
		UpdatedAt: rec.UpdatedAt,
		Lines:     make([]domain.Line, 0, len(rec.Lines)),
	}
	for _, l := range rec.Lines {
		state.Lines = append(state.Lines, domain.Line(l))
	}
	return domain.Restore(state)
}

func cartKey(ownerID, register string) string {
	return fmt.Sprintf("carts:%s:%s", ownerID, register)
}

var _ ports.Store = (*Store)(nil)
