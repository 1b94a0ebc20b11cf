package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rajeshrr07/EiliyaBill/internal/domains/reporting/application/types"
	"github.com/Rajeshrr07/EiliyaBill/internal/domains/reporting/domain"
	"github.com/Rajeshrr07/EiliyaBill/internal/shared/identity"
)

type fakeSource struct {
	sales    []domain.Sale
	err      error
	from, to time.Time
	calls    int
}

func (f *fakeSource) Sales(_ context.Context, _ string, from, to time.Time) ([]domain.Sale, error) {
	f.calls++
	f.from, f.to = from, to
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.Sale
	for _, s := range f.sales {
		if !from.IsZero() && s.CreatedAt.Before(from) {
			continue
		}
		if !to.IsZero() && !s.CreatedAt.Before(to) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

type fakeCategories map[string]string

func (f fakeCategories) ProductCategories(context.Context, string) (map[string]string, error) {
	return f, nil
}

func day(v string) *time.Time {
	t, err := time.Parse(time.DateOnly, v)
	if err != nil {
		panic(err)
	}
	return &t
}

func sale(created string, total string, status string) domain.Sale {
	t, err := time.Parse(time.RFC3339, created)
	if err != nil {
		panic(err)
	}
	return domain.Sale{
		OrderID:       created,
		CreatedAt:     t,
		Total:         decimal.RequireFromString(total),
		Status:        status,
		PaymentMethod: domain.MethodOffline,
		Lines:         []domain.SaleLine{{ProductID: "p-1", ProductName: "Tea", Quantity: 1, Revenue: decimal.RequireFromString(total)}},
	}
}

func TestService_DailyWithoutRangeIsSparse(t *testing.T) {
	source := &fakeSource{sales: []domain.Sale{
		sale("2025-01-01T10:00:00Z", "100", "paid"),
		sale("2025-01-01T12:00:00Z", "50", "paid"),
		sale("2025-01-03T09:00:00Z", "30", "pending"),
	}}
	svc := NewService(source)

	series, err := svc.Daily(context.Background(), "owner-1", types.DailyQuery{})
	require.NoError(t, err)
	require.Len(t, series, 2)
	assert.Equal(t, "2025-01-01", series[0].Date)
	assert.True(t, decimal.NewFromInt(150).Equal(series[0].Sales))
	assert.True(t, source.from.IsZero())
	assert.True(t, source.to.IsZero())
}

func TestService_DailyWithRangeZeroFills(t *testing.T) {
	source := &fakeSource{sales: []domain.Sale{sale("2025-01-02T10:00:00Z", "30", "paid")}}
	svc := NewService(source)

	series, err := svc.Daily(context.Background(), "owner-1", types.DailyQuery{From: day("2025-01-01"), To: day("2025-01-03")})
	require.NoError(t, err)
	require.Len(t, series, 3)
	assert.True(t, series[0].Sales.IsZero())
	assert.True(t, decimal.NewFromInt(30).Equal(series[1].Sales))
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), source.from)
	assert.Equal(t, time.Date(2025, 1, 4, 0, 0, 0, 0, time.UTC), source.to)
}

func TestService_RangeValidation(t *testing.T) {
	svc := NewService(&fakeSource{})
	ctx := context.Background()

	_, err := svc.Daily(ctx, "owner-1", types.DailyQuery{From: day("2025-02-01"), To: day("2025-01-01")})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Summary(ctx, "owner-1", types.RangeQuery{From: day("2023-01-01"), To: day("2025-01-01")})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.TopProducts(ctx, "owner-1", types.TopProductsQuery{Month: 13})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.TopProducts(ctx, "owner-1", types.TopProductsQuery{Limit: -1})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Daily(ctx, "", types.DailyQuery{})
	require.ErrorIs(t, err, identity.ErrMissingOwner)
}

func TestService_TopProductsMonthFilter(t *testing.T) {
	source := &fakeSource{sales: []domain.Sale{
		sale("2025-01-31T23:00:00Z", "10", "paid"),
		sale("2025-02-01T00:00:00Z", "20", "paid"),
	}}
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	svc := NewService(source, WithClock(func() time.Time { return now }))

	ranks, err := svc.TopProducts(context.Background(), "owner-1", types.TopProductsQuery{Month: 2})
	require.NoError(t, err)
	require.Len(t, ranks, 1)
	assert.True(t, decimal.NewFromInt(20).Equal(ranks[0].Revenue))
	assert.Equal(t, "100.0%", ranks[0].Share)
	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), source.from)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), source.to)

	_, err = svc.TopProducts(context.Background(), "owner-1", types.TopProductsQuery{Year: 2024})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), source.to)
}

func TestService_SummaryAndHourly(t *testing.T) {
	source := &fakeSource{sales: []domain.Sale{
		sale("2025-01-01T10:00:00Z", "100", "paid"),
		sale("2025-01-01T10:30:00Z", "40", "pending"),
	}}
	svc := NewService(source, WithClock(func() time.Time { return time.Date(2025, 1, 1, 18, 0, 0, 0, time.UTC) }))
	ctx := context.Background()

	summary, err := svc.Summary(ctx, "owner-1", types.RangeQuery{})
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Orders)
	assert.True(t, decimal.NewFromInt(50).Equal(summary.AverageTicket))

	buckets, err := svc.Hourly(ctx, "owner-1", types.DayQuery{})
	require.NoError(t, err)
	require.Len(t, buckets, 24)
	assert.Equal(t, 2, buckets[10].Orders)
	assert.True(t, decimal.NewFromInt(40).Equal(buckets[10].Pending))
}

func TestService_CategoriesUsesLookup(t *testing.T) {
	source := &fakeSource{sales: []domain.Sale{sale("2025-01-01T10:00:00Z", "100", "paid")}}
	svc := NewService(source, WithCategoryLookup(fakeCategories{"p-1": "Drinks"}))

	result, err := svc.Categories(context.Background(), "owner-1", types.RangeQuery{})
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "Drinks", result[0].Category)

	bare := NewService(source)
	result, err = bare.Categories(context.Background(), "owner-1", types.RangeQuery{})
	require.NoError(t, err)
	assert.Equal(t, domain.UncategorizedLabel, result[0].Category)
}

func TestService_SourceFailureSurfaces(t *testing.T) {
	boom := errors.New("datastore down")
	svc := NewService(&fakeSource{err: boom})
	_, err := svc.Summary(context.Background(), "owner-1", types.RangeQuery{})
	require.ErrorIs(t, err, boom)
}

func TestService_ReportLocation(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	source := &fakeSource{sales: []domain.Sale{sale("2025-01-01T20:00:00Z", "10", "paid")}}
	svc := NewService(source, WithLocation(ist))

	series, err := svc.Daily(context.Background(), "owner-1", types.DailyQuery{})
	require.NoError(t, err)
	require.Len(t, series, 1)
	assert.Equal(t, "2025-01-02", series[0].Date)
	assert.Equal(t, ist, svc.Location())
}
