package application_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rajeshrr07/EiliyaBill/internal/domains/groceries/adapters/memory"
	"github.com/Rajeshrr07/EiliyaBill/internal/domains/groceries/application"
	"github.com/Rajeshrr07/EiliyaBill/internal/domains/groceries/application/types"
	"github.com/Rajeshrr07/EiliyaBill/internal/domains/groceries/ports"
	"github.com/Rajeshrr07/EiliyaBill/internal/shared/identity"
)

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func newTestService(t *testing.T, start time.Time, opts ...application.Option) (*application.Service, *clock) {
	t.Helper()
	clk := &clock{now: start}
	n := 0
	base := []application.Option{
		application.WithClock(clk.Now),
		application.WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("g-%03d", n)
		}),
	}
	return application.NewService(memory.NewRepository(), append(base, opts...)...), clk
}

func price(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func ptr[T any](v T) *T { return &v }

func TestService_CreateValidatesWholeBatch(t *testing.T) {
	svc, _ := newTestService(t, time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC))
	ctx := context.Background()

	_, err := svc.Create(ctx, "owner-1", []types.CreateInput{
		{ProductName: "Milk", Price: price("42")},
		{ProductName: "", Price: price("10")},
	})
	require.ErrorIs(t, err, application.ErrInvalidInput)

	list, err := svc.List(ctx, "owner-1", types.ListInput{})
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = svc.Create(ctx, "owner-1", nil)
	assert.ErrorIs(t, err, application.ErrInvalidInput)

	_, err = svc.Create(ctx, "", []types.CreateInput{{ProductName: "Milk", Price: price("1")}})
	assert.ErrorIs(t, err, identity.ErrMissingOwner)

	created, err := svc.Create(ctx, "owner-1", []types.CreateInput{
		{ProductName: "Milk", Price: price("42")},
		{ProductName: "Rice", Price: price("120.5")},
	})
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.Equal(t, "g-003", created[0].ID)
}

func TestService_UpdateAndDeleteAreOwnerScoped(t *testing.T) {
	svc, clk := newTestService(t, time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC))
	ctx := context.Background()
	created, err := svc.Create(ctx, "owner-1", []types.CreateInput{{ProductName: "Milk", Price: price("42")}})
	require.NoError(t, err)
	id := created[0].ID

	_, err = svc.Update(ctx, "owner-1", id, types.UpdateInput{})
	assert.ErrorIs(t, err, application.ErrInvalidInput)

	_, err = svc.Update(ctx, "owner-2", id, types.UpdateInput{ProductName: ptr("Stolen")})
	assert.ErrorIs(t, err, application.ErrForbidden)

	_, err = svc.Update(ctx, "owner-1", "missing", types.UpdateInput{ProductName: ptr("x")})
	assert.ErrorIs(t, err, ports.ErrNotFound)

	clk.now = clk.now.Add(time.Hour)
	updated, err := svc.Update(ctx, "owner-1", id, types.UpdateInput{Price: ptr(price("45"))})
	require.NoError(t, err)
	assert.Equal(t, "Milk", updated.ProductName)
	assert.Equal(t, "45.00", updated.Price.StringFixed(2))
	assert.True(t, clk.now.Equal(updated.UpdatedAt))

	assert.ErrorIs(t, svc.Delete(ctx, "owner-2", id), application.ErrForbidden)
	require.NoError(t, svc.Delete(ctx, "owner-1", id))
	assert.ErrorIs(t, svc.Delete(ctx, "owner-1", id), ports.ErrNotFound)
}

func TestService_ListByMonth(t *testing.T) {
	svc, clk := newTestService(t, time.Date(2025, 1, 31, 20, 0, 0, 0, time.UTC))
	ctx := context.Background()
	_, err := svc.Create(ctx, "owner-1", []types.CreateInput{{ProductName: "Milk", Price: price("42")}})
	require.NoError(t, err)
	clk.now = time.Date(2025, 2, 1, 6, 0, 0, 0, time.UTC)
	_, err = svc.Create(ctx, "owner-1", []types.CreateInput{{ProductName: "Rice", Price: price("120")}})
	require.NoError(t, err)

	feb, err := svc.List(ctx, "owner-1", types.ListInput{Month: "2025-02"})
	require.NoError(t, err)
	require.Len(t, feb, 1)
	assert.Equal(t, "Rice", feb[0].ProductName)

	all, err := svc.List(ctx, "owner-1", types.ListInput{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Rice", all[0].ProductName)

	_, err = svc.List(ctx, "owner-1", types.ListInput{Month: "Feb 2025"})
	assert.ErrorIs(t, err, application.ErrInvalidInput)
}

func TestService_MonthSummaryFillsEveryDay(t *testing.T) {
	svc, clk := newTestService(t, time.Date(2025, 2, 3, 10, 0, 0, 0, time.UTC))
	ctx := context.Background()
	_, err := svc.Create(ctx, "owner-1", []types.CreateInput{
		{ProductName: "Milk", Price: price("42")},
		{ProductName: "Bread", Price: price("30")},
	})
	require.NoError(t, err)
	clk.now = time.Date(2025, 2, 20, 10, 0, 0, 0, time.UTC)
	_, err = svc.Create(ctx, "owner-1", []types.CreateInput{{ProductName: "Rice", Price: price("120")}})
	require.NoError(t, err)

	summary, err := svc.Summary(ctx, "owner-1", types.SummaryQuery{Month: "2025-02"})
	require.NoError(t, err)
	assert.Equal(t, "2025-02-01", summary.From)
	assert.Equal(t, "2025-02-28", summary.To)
	require.Len(t, summary.Series, 28)
	assert.Equal(t, "2025-02-03", summary.Series[2].Date)
	assert.Equal(t, "72", summary.Series[2].Sales.String())
	assert.True(t, summary.Series[0].Sales.IsZero())
	assert.Equal(t, "192", summary.Total.String())
	assert.Equal(t, 3, summary.Count)
}

func TestService_TrailingDaysSummary(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	svc, clk := newTestService(t, time.Date(2025, 3, 9, 20, 0, 0, 0, time.UTC), application.WithLocation(ist))
	ctx := context.Background()
	// 20:00 UTC on the 9th is already the 10th in IST.
	_, err := svc.Create(ctx, "owner-1", []types.CreateInput{{ProductName: "Milk", Price: price("42")}})
	require.NoError(t, err)
	clk.now = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	summary, err := svc.Summary(ctx, "owner-1", types.SummaryQuery{Days: 7})
	require.NoError(t, err)
	require.Len(t, summary.Series, 7)
	assert.Equal(t, "2025-03-04", summary.From)
	assert.Equal(t, "2025-03-10", summary.To)
	assert.Equal(t, "42", summary.Series[6].Sales.String())

	_, err = svc.Summary(ctx, "owner-1", types.SummaryQuery{Days: 400})
	assert.ErrorIs(t, err, application.ErrInvalidInput)
}

func TestService_DefaultSummaryIsCurrentMonth(t *testing.T) {
	svc, _ := newTestService(t, time.Date(2024, 2, 10, 10, 0, 0, 0, time.UTC))
	summary, err := svc.Summary(context.Background(), "owner-1", types.SummaryQuery{})
	require.NoError(t, err)
	assert.Len(t, summary.Series, 29)
	assert.True(t, summary.Total.IsZero())
}
