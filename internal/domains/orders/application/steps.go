package application

import (
	"context"
	"errors"

	"github.com/Rajeshrr07/EiliyaBill/internal/domains/orders/application/types"
	"github.com/Rajeshrr07/EiliyaBill/internal/domains/orders/domain"
	"github.com/Rajeshrr07/EiliyaBill/internal/domains/orders/ports"
)

var errNothingStaged = errors.New("staged order is missing")

// Stage validates the cart and writes a pending header without lines.
func (s *Service) Stage(ctx context.Context, input types.CommitOrderInput) (*types.StagedOrder, error) {
	staged, err := s.prepare(ctx, input)
	if err != nil {
		return nil, err
	}
	if staged.Replay != nil {
		return staged, nil
	}
	if err := s.repo.StageHeader(ctx, staged.Order); err != nil {
		return nil, mapError(err)
	}
	return staged, nil
}

// AppendLines writes the staged lines under the pending header.
func (s *Service) AppendLines(ctx context.Context, staged types.StagedOrder) error {
	if staged.Replay != nil {
		return nil
	}
	if staged.Order == nil {
		return errNothingStaged
	}
	return s.repo.AppendLines(ctx, staged.Order.ID, staged.Order.Lines)
}

// Finalize flips the header to committed and records the idempotency key.
func (s *Service) Finalize(ctx context.Context, staged types.StagedOrder) (*types.CommitResult, error) {
	if staged.Replay != nil {
		return staged.Replay, nil
	}
	if staged.Order == nil {
		return nil, errNothingStaged
	}
	if err := s.repo.SetState(ctx, staged.Order.ID, domain.CommitCommitted); err != nil {
		return nil, mapError(err)
	}
	committed := staged.Order.Clone()
	if err := committed.MarkCommitted(); err != nil {
		return nil, err
	}
	return s.complete(ctx, staged, committed)
}

// Discard is the compensation for a failed commit: lines then header are removed.
func (s *Service) Discard(ctx context.Context, staged types.StagedOrder) error {
	if staged.Order == nil || staged.Replay != nil {
		return nil
	}
	if err := s.repo.SetState(ctx, staged.Order.ID, domain.CommitFailed); err != nil && !errors.Is(err, ports.ErrNotFound) {
		return err
	}
	if err := s.repo.Delete(ctx, staged.Order.OwnerID, staged.Order.ID); err != nil && !errors.Is(err, ports.ErrNotFound) {
		return err
	}
	return nil
}

var _ ports.CommitSteps = (*Service)(nil)
