package application

import (
	"context"
	"time"

	"github.com/Rajeshrr07/EiliyaBill/internal/domains/reporting/application/types"
	"github.com/Rajeshrr07/EiliyaBill/internal/domains/reporting/domain"
	"github.com/Rajeshrr07/EiliyaBill/internal/domains/reporting/ports"
	"github.com/Rajeshrr07/EiliyaBill/internal/shared/identity"
)

const maxRangeDays = 366

// Service runs the sales aggregations over a SalesSource.
type Service struct {
	source     ports.SalesSource
	categories ports.CategoryLookup
	loc        *time.Location
	now        func() time.Time
}

type Option func(*Service)

// WithCategoryLookup enables the categories report.
func WithCategoryLookup(lookup ports.CategoryLookup) Option {
	return func(s *Service) { s.categories = lookup }
}

// WithLocation sets the zone whose calendar days and hours the reports use.
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

func NewService(source ports.SalesSource, opts ...Option) *Service {
	s := &Service{source: source, loc: time.UTC, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Location is the zone used for calendar days.
func (s *Service) Location() *time.Location {
	return s.loc
}

func (s *Service) Daily(ctx context.Context, ownerID string, query types.DailyQuery) ([]domain.DayPoint, error) {
	if err := identity.Require(ownerID); err != nil {
		return nil, err
	}
	from, to, err := s.bounds(query.From, query.To)
	if err != nil {
		return nil, err
	}
	sales, err := s.source.Sales(ctx, ownerID, from, to)
	if err != nil {
		return nil, err
	}
	opts := domain.DailyOptions{Location: s.loc}
	if query.From != nil && query.To != nil {
		opts.Fill = &domain.DateRange{From: s.day(*query.From), To: s.day(*query.To)}
	}
	return domain.DailySeries(domain.SalePoints(sales), opts), nil
}

func (s *Service) TopProducts(ctx context.Context, ownerID string, query types.TopProductsQuery) ([]domain.ProductRank, error) {
	if err := identity.Require(ownerID); err != nil {
		return nil, err
	}
	if query.Limit < 0 {
		return nil, invalid(errNegativeLimit)
	}
	from, to, err := s.monthBounds(query.Month, query.Year)
	if err != nil {
		return nil, err
	}
	sales, err := s.source.Sales(ctx, ownerID, from, to)
	if err != nil {
		return nil, err
	}
	return domain.TopProducts(sales, query.Limit), nil
}

func (s *Service) Summary(ctx context.Context, ownerID string, query types.RangeQuery) (*domain.Summary, error) {
	if err := identity.Require(ownerID); err != nil {
		return nil, err
	}
	from, to, err := s.bounds(query.From, query.To)
	if err != nil {
		return nil, err
	}
	sales, err := s.source.Sales(ctx, ownerID, from, to)
	if err != nil {
		return nil, err
	}
	summary := domain.Summarize(sales)
	return &summary, nil
}

func (s *Service) Hourly(ctx context.Context, ownerID string, query types.DayQuery) ([]domain.HourBucket, error) {
	if err := identity.Require(ownerID); err != nil {
		return nil, err
	}
	day := s.now().In(s.loc)
	if query.Date != nil {
		day = *query.Date
	}
	from, to, err := s.bounds(&day, &day)
	if err != nil {
		return nil, err
	}
	sales, err := s.source.Sales(ctx, ownerID, from, to)
	if err != nil {
		return nil, err
	}
	return domain.HourlySeries(sales, s.loc), nil
}

func (s *Service) Categories(ctx context.Context, ownerID string, query types.RangeQuery) ([]domain.CategoryRevenue, error) {
	if err := identity.Require(ownerID); err != nil {
		return nil, err
	}
	from, to, err := s.bounds(query.From, query.To)
	if err != nil {
		return nil, err
	}
	sales, err := s.source.Sales(ctx, ownerID, from, to)
	if err != nil {
		return nil, err
	}
	categoryOf := map[string]string{}
	if s.categories != nil {
		if categoryOf, err = s.categories.ProductCategories(ctx, ownerID); err != nil {
			return nil, err
		}
	}
	return domain.Categories(sales, categoryOf), nil
}

// bounds turns inclusive calendar days into a half-open instant range in the report zone.
func (s *Service) bounds(fromDay, toDay *time.Time) (time.Time, time.Time, error) {
	var from, to time.Time
	if fromDay != nil {
		from = s.day(*fromDay)
	}
	if toDay != nil {
		to = s.day(*toDay).AddDate(0, 0, 1)
	}
	if fromDay != nil && toDay != nil {
		if !from.Before(to) {
			return time.Time{}, time.Time{}, invalid(errRangeReversed)
		}
		if to.Sub(from) > maxRangeDays*24*time.Hour+time.Hour {
			return time.Time{}, time.Time{}, invalid(errRangeTooLarge)
		}
	}
	return from, to, nil
}

func (s *Service) monthBounds(month, year int) (time.Time, time.Time, error) {
	if month < 0 || month > 12 {
		return time.Time{}, time.Time{}, invalid(errMonthOutOfRange)
	}
	if year < 0 || year > 9999 {
		return time.Time{}, time.Time{}, invalid(errYearOutOfRange)
	}
	if month == 0 && year == 0 {
		return time.Time{}, time.Time{}, nil
	}
	if year == 0 {
		year = s.now().In(s.loc).Year()
	}
	if month == 0 {
		from := time.Date(year, time.January, 1, 0, 0, 0, 0, s.loc)
		return from, from.AddDate(1, 0, 0), nil
	}
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, s.loc)
	return from, from.AddDate(0, 1, 0), nil
}

// day reads the calendar date of t as a day in the report zone.
func (s *Service) day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, s.loc)
}

var _ ports.Service = (*Service)(nil)
