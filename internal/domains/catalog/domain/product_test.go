package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct_RequiresNameAndCategory(t *testing.T) {
	_, err := NewProduct("p1", "owner", " ", "Drinks")
	assert.ErrorIs(t, err, ErrEmptyName)

	_, err = NewProduct("p1", "owner", "Tea", "")
	assert.ErrorIs(t, err, ErrEmptyCategory)

	_, err = NewProduct("p1", "", "Tea", "Drinks")
	assert.ErrorIs(t, err, ErrEmptyOwner)

	p, err := NewProduct("p1", "owner", " Tea ", "Drinks")
	require.NoError(t, err)
	assert.Equal(t, "Tea", p.Name)
	assert.Equal(t, StatusActive, p.Status)
	assert.True(t, p.OwnedBy("owner"))
	assert.False(t, p.OwnedBy("someone-else"))
	assert.False(t, p.OwnedBy(""))
}

func TestProduct_RejectsNegativeValues(t *testing.T) {
	p, err := NewProduct("p1", "owner", "Tea", "Drinks")
	require.NoError(t, err)

	assert.ErrorIs(t, p.Reprice(decimal.NewFromInt(-1)), ErrNegativePrice)
	assert.ErrorIs(t, p.SetCost(decimal.NewFromInt(-1)), ErrNegativeCost)
	assert.ErrorIs(t, p.SetStock(-3), ErrNegativeStock)

	require.NoError(t, p.Reprice(decimal.RequireFromString("12.50")))
	assert.Equal(t, "12.5", p.Price.String())
}

func TestParseStatus(t *testing.T) {
	cases := map[string]Status{
		"":          StatusActive,
		"Active":    StatusActive,
		"inactive":  StatusInactive,
		"Low stock": StatusLowStock,
		"Low-stock": StatusLowStock,
		"low stock": StatusLowStock,
	}
	for raw, want := range cases {
		got, err := ParseStatus(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}
	_, err := ParseStatus("archived")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
