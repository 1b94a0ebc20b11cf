package domain

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id, price string) ProductSnapshot {
	return ProductSnapshot{ID: id, Name: "Product " + id, Price: decimal.RequireFromString(price)}
}

func newCart(t *testing.T) *Cart {
	t.Helper()
	c, err := NewCart("cart-1", "owner-1", "front")
	require.NoError(t, err)
	return c
}

func TestNewCart_Validation(t *testing.T) {
	_, err := NewCart("c", "", "front")
	assert.ErrorIs(t, err, ErrEmptyOwner)
	_, err = NewCart("c", "owner-1", "")
	assert.ErrorIs(t, err, ErrInvalidRegister)
	_, err = NewCart("c", "owner-1", "till 1")
	assert.ErrorIs(t, err, ErrInvalidRegister)
	_, err = NewCart("c", "owner-1", "till_1")
	assert.NoError(t, err)
}

func TestCart_AddItemGroupsByProduct(t *testing.T) {
	c := newCart(t)
	require.NoError(t, c.AddItem(product("tea", "80")))
	require.NoError(t, c.AddItem(product("cake", "120")))
	require.NoError(t, c.AddItem(product("tea", "80")))

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "tea", lines[0].ProductID)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, MethodOffline, lines[0].PaymentMethod)
	assert.True(t, decimal.NewFromInt(280).Equal(c.Total()))
	assert.Equal(t, 3, c.ItemCount())
}

func TestCart_AddItemRejectsBadProducts(t *testing.T) {
	c := newCart(t)
	assert.ErrorIs(t, c.AddItem(ProductSnapshot{Price: decimal.NewFromInt(1)}), ErrInvalidProduct)
	assert.ErrorIs(t, c.AddItem(product("x", "-1")), ErrNegativePrice)
	assert.True(t, c.IsEmpty())
	assert.Zero(t, c.Revision)
}

func TestCart_UpdateQuantityToZeroRemovesLine(t *testing.T) {
	c := newCart(t)
	require.NoError(t, c.AddItem(product("tea", "80")))
	require.NoError(t, c.UpdateQuantity("tea", 5))
	assert.True(t, decimal.NewFromInt(400).Equal(c.Total()))

	require.NoError(t, c.UpdateQuantity("tea", 0))
	_, ok := c.Line("tea")
	assert.False(t, ok)
	assert.True(t, c.IsEmpty())
	assert.True(t, c.Total().IsZero())

	assert.ErrorIs(t, c.UpdateQuantity("tea", 1), ErrLineNotFound)
}

func TestCart_PaymentMethodDoesNotChangeTotal(t *testing.T) {
	c := newCart(t)
	require.NoError(t, c.AddItem(product("tea", "80")))
	before := c.Total()

	require.NoError(t, c.UpdatePaymentMethod("tea", "online"))
	line, _ := c.Line("tea")
	assert.Equal(t, MethodOnline, line.PaymentMethod)
	assert.True(t, before.Equal(c.Total()))

	assert.ErrorIs(t, c.UpdatePaymentMethod("tea", "Mixed"), ErrInvalidPaymentMethod)
	assert.ErrorIs(t, c.UpdatePaymentMethod("cake", "Online"), ErrLineNotFound)
}

func TestCart_RemoveAndClear(t *testing.T) {
	c := newCart(t)
	require.NoError(t, c.AddItem(product("a", "1.10")))
	require.NoError(t, c.AddItem(product("b", "2.20")))
	require.NoError(t, c.AddItem(product("c", "3.30")))

	require.NoError(t, c.RemoveItem("b"))
	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "a", lines[0].ProductID)
	assert.Equal(t, "c", lines[1].ProductID)
	assert.True(t, decimal.RequireFromString("4.40").Equal(c.Total()))
	assert.ErrorIs(t, c.RemoveItem("b"), ErrLineNotFound)

	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.True(t, c.Total().IsZero())
}

func TestCart_TotalNeverDrifts(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	prices := []string{"0.10", "0.20", "0.30", "19.99", "80", "120", "0.01"}
	c := newCart(t)

	for i := 0; i < 1000; i++ {
		id := fmt.Sprintf("p%d", rng.IntN(len(prices)))
		switch rng.IntN(5) {
		case 0, 1:
			idx := int(id[1] - '0')
			require.NoError(t, c.AddItem(product(id, prices[idx])))
		case 2:
			err := c.UpdateQuantity(id, rng.IntN(6)-1)
			if err != nil {
				require.ErrorIs(t, err, ErrLineNotFound)
			}
		case 3:
			err := c.RemoveItem(id)
			if err != nil {
				require.ErrorIs(t, err, ErrLineNotFound)
			}
		case 4:
			err := c.UpdatePaymentMethod(id, lineMethods[rng.IntN(len(lineMethods))])
			if err != nil {
				require.ErrorIs(t, err, ErrLineNotFound)
			}
		}

		expected := decimal.Zero
		for _, line := range c.Lines() {
			require.GreaterOrEqual(t, line.Quantity, 1)
			expected = expected.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
		}
		require.Truef(t, expected.Equal(c.Total()), "step %d: total %s, lines sum %s", i, c.Total(), expected)
	}
}

func TestRestore_RecomputesTotal(t *testing.T) {
	c := newCart(t)
	require.NoError(t, c.AddItem(product("tea", "80")))
	require.NoError(t, c.AddItem(product("tea", "80")))
	require.NoError(t, c.AddItem(product("cake", "120")))

	state := c.State()
	state.Lines = append(state.Lines, Line{ProductID: "ghost", UnitPrice: decimal.NewFromInt(5), Quantity: 0})

	restored, err := Restore(state)
	require.NoError(t, err)
	assert.Equal(t, c.Lines(), restored.Lines())
	assert.True(t, c.Total().Equal(restored.Total()))
	assert.Equal(t, c.Revision, restored.Revision)
}
