package sources

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogmemory "github.com/Rajeshrr07/EiliyaBill/internal/domains/catalog/adapters/memory"
	catalogdomain "github.com/Rajeshrr07/EiliyaBill/internal/domains/catalog/domain"
	ordermemory "github.com/Rajeshrr07/EiliyaBill/internal/domains/orders/adapters/memory"
	orderdomain "github.com/Rajeshrr07/EiliyaBill/internal/domains/orders/domain"
)

func TestOrderSales_MapsCommittedOrders(t *testing.T) {
	repo := ordermemory.NewRepository()
	ctx := context.Background()
	line, err := orderdomain.NewLine("l-1", "p-1", "Tea", decimal.NewFromInt(80), 2, orderdomain.PaymentOnline)
	require.NoError(t, err)
	created := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	order, err := orderdomain.NewOrder("o-1", "owner-1", []orderdomain.Line{line}, decimal.NewFromInt(160), orderdomain.StatusPaid, created)
	require.NoError(t, err)
	_, err = repo.Commit(ctx, order)
	require.NoError(t, err)

	sales, err := NewOrderSales(repo).Sales(ctx, "owner-1", time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, "o-1", sales[0].OrderID)
	assert.Equal(t, "paid", sales[0].Status)
	assert.Equal(t, "Online", sales[0].PaymentMethod)
	require.Len(t, sales[0].Lines, 1)
	assert.True(t, decimal.NewFromInt(160).Equal(sales[0].Lines[0].Revenue))

	none, err := NewOrderSales(repo).Sales(ctx, "owner-1", created.Add(time.Hour), time.Time{})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCatalogCategories(t *testing.T) {
	repo := catalogmemory.NewRepository()
	ctx := context.Background()
	product, err := catalogdomain.NewProduct("p-1", "owner-1", "Tea", "Drinks")
	require.NoError(t, err)
	_, err = repo.Save(ctx, product)
	require.NoError(t, err)

	categories, err := NewCatalogCategories(repo).ProductCategories(ctx, "owner-1")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"p-1": "Drinks"}, categories)
}
