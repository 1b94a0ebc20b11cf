package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Rajeshrr07/EiliyaBill/internal/domains/orders/application/types"
	"github.com/Rajeshrr07/EiliyaBill/internal/domains/orders/domain"
	"github.com/Rajeshrr07/EiliyaBill/internal/domains/orders/ports"
	"github.com/Rajeshrr07/EiliyaBill/internal/shared/identity"
)

// Service orchestrates the orders bounded context use cases.
type Service struct {
	repo        ports.Repository
	idempotency ports.IdempotencyStore
	notifier    ports.ChangeNotifier
	now         func() time.Time
	newID       func() string
}

type Option func(*Service)

// WithIdempotencyStore enables Idempotency-Key replays on checkout.
func WithIdempotencyStore(store ports.IdempotencyStore) Option {
	return func(s *Service) { s.idempotency = store }
}

// WithNotifier registers a listener for order changes.
func WithNotifier(notifier ports.ChangeNotifier) Option {
	return func(s *Service) { s.notifier = notifier }
}

// WithClock overrides the time source for deterministic testing.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides order and line id generation.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

// NewService wires the orders service with its dependencies.
func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{repo: repo, now: time.Now, newID: uuid.NewString}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Commit validates the cart and writes header and lines in one transaction.
func (s *Service) Commit(ctx context.Context, input types.CommitOrderInput) (*types.CommitResult, error) {
	staged, err := s.prepare(ctx, input)
	if err != nil {
		return nil, err
	}
	if staged.Replay != nil {
		return staged.Replay, nil
	}
	committed, err := s.repo.Commit(ctx, staged.Order)
	if err != nil {
		return nil, mapError(err)
	}
	return s.complete(ctx, *staged, committed)
}

// Patch changes the supplied header fields of an owned, committed order.
func (s *Service) Patch(ctx context.Context, ownerID, orderID string, input types.PatchOrderInput) (*domain.Order, error) {
	if err := identity.Require(ownerID); err != nil {
		return nil, err
	}
	patch, err := toPatch(input)
	if err != nil {
		return nil, mapError(err)
	}
	if err := patch.Validate(); err != nil {
		return nil, mapError(err)
	}
	order, err := s.loadOwned(ctx, ownerID, orderID)
	if err != nil {
		return nil, err
	}
	if order.State != domain.CommitCommitted {
		return nil, ports.ErrNotFound
	}
	if err := order.Apply(patch); err != nil {
		return nil, mapError(err)
	}
	updated, err := s.repo.UpdateHeader(ctx, order)
	if err != nil {
		return nil, mapError(err)
	}
	s.notify(ctx, ownerID)
	return updated, nil
}

// Delete removes an owned order, lines first.
func (s *Service) Delete(ctx context.Context, ownerID, orderID string) error {
	if err := identity.Require(ownerID); err != nil {
		return err
	}
	if _, err := s.loadOwned(ctx, ownerID, orderID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, ownerID, orderID); err != nil {
		return mapError(err)
	}
	s.notify(ctx, ownerID)
	return nil
}

// List returns the owner's committed orders newest-first.
func (s *Service) List(ctx context.Context, ownerID string, input types.ListOrdersInput) ([]*domain.Order, error) {
	if err := identity.Require(ownerID); err != nil {
		return nil, err
	}
	orders, err := s.repo.List(ctx, ports.ListFilter{OwnerID: ownerID, From: input.From, To: input.To})
	if err != nil {
		return nil, mapError(err)
	}
	if orders == nil {
		orders = []*domain.Order{}
	}
	return orders, nil
}

// prepare resolves idempotency replays and builds the pending order.
func (s *Service) prepare(ctx context.Context, input types.CommitOrderInput) (*types.StagedOrder, error) {
	if err := identity.Require(input.OwnerID); err != nil {
		return nil, err
	}
	staged := &types.StagedOrder{IdempotencyKey: strings.TrimSpace(input.IdempotencyKey)}
	if staged.IdempotencyKey != "" && s.idempotency != nil {
		hash, err := FingerprintCommit(input)
		if err != nil {
			return nil, err
		}
		staged.RequestHash = hash
		record, err := s.idempotency.Get(ctx, input.OwnerID, staged.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		if record != nil {
			if record.RequestHash != hash {
				return nil, ports.ErrIdempotencyConflict
			}
			staged.Replay = s.replay(ctx, record.OrderID)
			return staged, nil
		}
	}
	order, err := s.buildOrder(input)
	if err != nil {
		return nil, mapError(err)
	}
	staged.Order = order
	return staged, nil
}

func (s *Service) buildOrder(input types.CommitOrderInput) (*domain.Order, error) {
	orderID := strings.TrimSpace(input.OrderID)
	if orderID == "" {
		orderID = s.newID()
	}
	lines := make([]domain.Line, 0, len(input.Items))
	for _, item := range input.Items {
		method, err := domain.ParsePaymentMethod(item.PaymentMethod)
		if err != nil {
			return nil, err
		}
		line, err := domain.NewLine(s.newID(), item.ProductID, item.ProductName, item.UnitPrice, item.Quantity, method)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return domain.NewOrder(orderID, input.OwnerID, lines, input.Total, domain.Status(input.Status), s.now().UTC())
}

// complete records the idempotency key and notifies listeners once the order is committed.
func (s *Service) complete(ctx context.Context, staged types.StagedOrder, committed *domain.Order) (*types.CommitResult, error) {
	if staged.IdempotencyKey != "" && s.idempotency != nil {
		stored, err := s.idempotency.Save(ctx, ports.IdempotencyRecord{
			Key:         staged.IdempotencyKey,
			OwnerID:     committed.OwnerID,
			RequestHash: staged.RequestHash,
			OrderID:     committed.ID,
		})
		if err != nil {
			if !errors.Is(err, ports.ErrIdempotencyConflict) || stored == nil {
				return nil, err
			}
			// A concurrent request won the key; drop this duplicate.
			if delErr := s.repo.Delete(ctx, committed.OwnerID, committed.ID); delErr != nil && !errors.Is(delErr, ports.ErrNotFound) {
				return nil, delErr
			}
			if stored.RequestHash != staged.RequestHash {
				return nil, ports.ErrIdempotencyConflict
			}
			return s.replay(ctx, stored.OrderID), nil
		}
	}
	s.notify(ctx, committed.OwnerID)
	return &types.CommitResult{OrderID: committed.ID, Total: committed.Total, State: committed.State}, nil
}

func (s *Service) replay(ctx context.Context, orderID string) *types.CommitResult {
	result := &types.CommitResult{OrderID: orderID, State: domain.CommitCommitted, Replayed: true}
	if order, err := s.repo.GetByID(ctx, orderID); err == nil {
		result.Total = order.Total
		result.State = order.State
	}
	return result
}

func (s *Service) loadOwned(ctx context.Context, ownerID, orderID string) (*domain.Order, error) {
	order, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, mapError(err)
	}
	if !order.OwnedBy(ownerID) {
		return nil, ErrForbidden
	}
	return order, nil
}

func (s *Service) notify(ctx context.Context, ownerID string) {
	if s.notifier != nil {
		s.notifier.OrdersChanged(ctx, ownerID)
	}
}

func toPatch(input types.PatchOrderInput) (domain.Patch, error) {
	var patch domain.Patch
	if input.Total != nil {
		total := *input.Total
		patch.Total = &total
	}
	if input.Status != nil && strings.TrimSpace(*input.Status) != "" {
		status, err := domain.ParseStatus(*input.Status)
		if err != nil {
			return domain.Patch{}, err
		}
		patch.Status = &status
	}
	if input.PaymentMethod != nil && strings.TrimSpace(*input.PaymentMethod) != "" {
		method, err := domain.ParsePaymentMethod(*input.PaymentMethod)
		if err != nil {
			return domain.Patch{}, err
		}
		patch.PaymentMethod = &method
	}
	return patch, nil
}

var _ ports.Service = (*Service)(nil)
