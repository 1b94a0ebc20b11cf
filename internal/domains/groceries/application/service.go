package application

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Rajeshrr07/EiliyaBill/internal/domains/groceries/application/types"
	"github.com/Rajeshrr07/EiliyaBill/internal/domains/groceries/domain"
	"github.com/Rajeshrr07/EiliyaBill/internal/domains/groceries/ports"
	reporting "github.com/Rajeshrr07/EiliyaBill/internal/domains/reporting/domain"
	"github.com/Rajeshrr07/EiliyaBill/internal/shared/identity"
)

const maxSummaryDays = 366

// Service orchestrates the grocery expense use cases.
type Service struct {
	repo  ports.Repository
	loc   *time.Location
	now   func() time.Time
	newID func() string
}

type Option func(*Service)

// WithLocation sets the calendar used for months and daily buckets.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithClock overrides the time source for deterministic testing.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		if newID != nil {
			s.newID = newID
		}
	}
}

func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{repo: repo, loc: time.UTC, now: time.Now, newID: uuid.NewString}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// List returns the owner's entries newest first, optionally for one month.
func (s *Service) List(ctx context.Context, ownerID string, input types.ListInput) ([]*domain.Entry, error) {
	if err := identity.Require(ownerID); err != nil {
		return nil, err
	}
	var from, to time.Time
	if input.Month != "" {
		start, err := s.parseMonth(input.Month)
		if err != nil {
			return nil, mapError(err)
		}
		from, to = start, start.AddDate(0, 1, 0)
	}
	entries, err := s.repo.ListByOwner(ctx, ownerID, from, to)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []*domain.Entry{}
	}
	return entries, nil
}

// Create validates every input before storing any of them.
func (s *Service) Create(ctx context.Context, ownerID string, inputs []types.CreateInput) ([]*domain.Entry, error) {
	if err := identity.Require(ownerID); err != nil {
		return nil, err
	}
	if len(inputs) == 0 {
		return nil, mapError(errNoEntries)
	}
	now := s.now().UTC()
	entries := make([]*domain.Entry, 0, len(inputs))
	for _, in := range inputs {
		entry, err := domain.NewEntry(s.newID(), ownerID, in.ProductName, in.Price, now)
		if err != nil {
			return nil, mapError(err)
		}
		entries = append(entries, entry)
	}
	if err := s.repo.Insert(ctx, entries...); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *Service) Update(ctx context.Context, ownerID, id string, input types.UpdateInput) (*domain.Entry, error) {
	if err := identity.Require(ownerID); err != nil {
		return nil, err
	}
	if input.ProductName == nil && input.Price == nil {
		return nil, mapError(errNothingToUpdate)
	}
	entry, err := s.loadOwned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}
	if input.ProductName != nil {
		if err := entry.Rename(*input.ProductName); err != nil {
			return nil, mapError(err)
		}
	}
	if input.Price != nil {
		if err := entry.Reprice(*input.Price); err != nil {
			return nil, mapError(err)
		}
	}
	entry.UpdatedAt = s.now().UTC()
	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (s *Service) Delete(ctx context.Context, ownerID, id string) error {
	if err := identity.Require(ownerID); err != nil {
		return err
	}
	if _, err := s.loadOwned(ctx, ownerID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// Summary totals spending per day over a month or a trailing window; every day is present.
func (s *Service) Summary(ctx context.Context, ownerID string, query types.SummaryQuery) (*types.Summary, error) {
	if err := identity.Require(ownerID); err != nil {
		return nil, err
	}
	first, last, err := s.summaryRange(query)
	if err != nil {
		return nil, mapError(err)
	}
	entries, err := s.repo.ListByOwner(ctx, ownerID, first, last.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	points := make([]reporting.Point, 0, len(entries))
	for _, e := range entries {
		points = append(points, reporting.Point{At: e.AddedAt, Amount: e.Price})
	}
	series := reporting.DailySeries(points, reporting.DailyOptions{
		Location: s.loc,
		Fill:     &reporting.DateRange{From: first, To: last},
	})
	return &types.Summary{
		From:   first.Format(reporting.DateLayout),
		To:     last.Format(reporting.DateLayout),
		Series: series,
		Total:  reporting.SumPoints(series),
		Count:  len(entries),
	}, nil
}

// summaryRange returns the first and last calendar day, both at midnight in s.loc.
func (s *Service) summaryRange(query types.SummaryQuery) (time.Time, time.Time, error) {
	today := s.now().In(s.loc)
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, s.loc)
	switch {
	case query.Month != "":
		start, err := s.parseMonth(query.Month)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		return start, start.AddDate(0, 1, -1), nil
	case query.Days != 0:
		if query.Days < 1 || query.Days > maxSummaryDays {
			return time.Time{}, time.Time{}, errInvalidDays
		}
		return today.AddDate(0, 0, 1-query.Days), today, nil
	default:
		start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, s.loc)
		return start, start.AddDate(0, 1, -1), nil
	}
}

func (s *Service) parseMonth(raw string) (time.Time, error) {
	start, err := time.ParseInLocation("2006-01", raw, s.loc)
	if err != nil {
		return time.Time{}, errInvalidMonth
	}
	return start, nil
}

func (s *Service) loadOwned(ctx context.Context, ownerID, id string) (*domain.Entry, error) {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !entry.OwnedBy(ownerID) {
		return nil, ErrForbidden
	}
	return entry, nil
}

var _ ports.Service = (*Service)(nil)
