package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLine(t *testing.T, id, name, price string, qty int, method PaymentMethod) Line {
	t.Helper()
	line, err := NewLine(id, "prod-"+id, name, decimal.RequireFromString(price), qty, method)
	require.NoError(t, err)
	return line
}

func TestNewOrder_ReconcilesTotalsWithLines(t *testing.T) {
	lines := []Line{
		mustLine(t, "l1", "Burger", "80", 2, PaymentOffline),
		mustLine(t, "l2", "Fries", "120", 1, PaymentOffline),
	}
	order, err := NewOrder("o1", "owner", lines, decimal.NewFromInt(280), "", time.Unix(0, 0))
	require.NoError(t, err)

	assert.True(t, order.Total.Equal(decimal.NewFromInt(280)))
	require.Len(t, order.Lines, 2)
	assert.True(t, order.Lines[0].LineTotal.Equal(decimal.NewFromInt(160)))
	assert.True(t, order.Lines[1].LineTotal.Equal(decimal.NewFromInt(120)))
	assert.True(t, SumLines(order.Lines).Equal(order.Total))
	assert.Equal(t, "o1", order.Lines[0].OrderID)
	assert.Equal(t, StatusPaid, order.Status)
	assert.Equal(t, PaymentOffline, order.PaymentMethod)
	assert.Equal(t, CommitPending, order.State)
	assert.Empty(t, lines[0].OrderID, "input lines are not mutated")
}

func TestNewOrder_Rejections(t *testing.T) {
	lines := []Line{mustLine(t, "l1", "Tea", "10", 1, PaymentOnline)}

	_, err := NewOrder("o1", "owner", nil, decimal.Zero, "", time.Now())
	assert.ErrorIs(t, err, ErrNoItems)

	_, err = NewOrder("o1", "", lines, decimal.NewFromInt(10), "", time.Now())
	assert.ErrorIs(t, err, ErrEmptyOwner)

	_, err = NewOrder("o1", "owner", lines, decimal.NewFromInt(11), "", time.Now())
	assert.ErrorIs(t, err, ErrTotalMismatch)

	_, err = NewOrder("o1", "owner", lines, decimal.NewFromInt(10), "refunded", time.Now())
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestNewOrder_ToleratesFloatNoiseInClaimedTotal(t *testing.T) {
	lines := []Line{
		mustLine(t, "l1", "A", "0.1", 1, PaymentOffline),
		mustLine(t, "l2", "B", "0.2", 1, PaymentOffline),
	}
	a, b := 0.1, 0.2
	order, err := NewOrder("o1", "owner", lines, decimal.NewFromFloat(a+b), "", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "0.3", order.Total.String())
}

func TestNewLine_Validation(t *testing.T) {
	_, err := NewLine("l", "p", " ", decimal.NewFromInt(1), 1, PaymentOffline)
	assert.ErrorIs(t, err, ErrEmptyProductName)

	_, err = NewLine("l", "p", "Tea", decimal.NewFromInt(1), 0, PaymentOffline)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = NewLine("l", "p", "Tea", decimal.NewFromInt(-1), 1, PaymentOffline)
	assert.ErrorIs(t, err, ErrNegativeAmount)

	_, err = NewLine("l", "p", "Tea", decimal.NewFromInt(1), 1, PaymentMixed)
	assert.ErrorIs(t, err, ErrInvalidPayment)

	line, err := NewLine("l", "p", "Tea", decimal.RequireFromString("12.5"), 3, "")
	require.NoError(t, err)
	assert.Equal(t, PaymentOffline, line.PaymentMethod)
	assert.Equal(t, "37.5", line.LineTotal.String())
}

func TestRepresentativeMethod(t *testing.T) {
	same := []Line{{PaymentMethod: PaymentOnline}, {PaymentMethod: PaymentOnline}}
	assert.Equal(t, PaymentOnline, RepresentativeMethod(same))

	mixed := []Line{{PaymentMethod: PaymentOnline}, {PaymentMethod: PaymentOffline}}
	assert.Equal(t, PaymentMixed, RepresentativeMethod(mixed))

	assert.Equal(t, PaymentOffline, RepresentativeMethod(nil))
}

func TestCommitStateTransitions(t *testing.T) {
	order := &Order{State: CommitPending}
	require.NoError(t, order.MarkCommitted())
	assert.Equal(t, CommitCommitted, order.State)
	assert.ErrorIs(t, order.MarkFailed(), ErrInvalidTransition)

	failed := &Order{State: CommitPending}
	require.NoError(t, failed.MarkFailed())
	assert.ErrorIs(t, failed.MarkCommitted(), ErrInvalidTransition)
}

func TestPatch(t *testing.T) {
	order := &Order{Total: decimal.NewFromInt(100), Status: StatusPaid, PaymentMethod: PaymentOffline}

	assert.ErrorIs(t, order.Apply(Patch{}), ErrNothingToUpdate)

	bad := Status("lost")
	assert.ErrorIs(t, order.Apply(Patch{Status: &bad}), ErrInvalidStatus)
	assert.Equal(t, StatusPaid, order.Status)

	pending := StatusPending
	require.NoError(t, order.Apply(Patch{Status: &pending}))
	assert.Equal(t, StatusPending, order.Status)
	assert.True(t, order.Total.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, PaymentOffline, order.PaymentMethod)
}

func TestReceipt(t *testing.T) {
	assert.Equal(t, "#ORD-3F2A9C", Receipt("3f2a9c41-0000-4000-8000-000000000000"))
	assert.Equal(t, "#ORD-AB", Receipt("ab"))
}

func TestParsePaymentMethod(t *testing.T) {
	m, err := ParsePaymentMethod("zomato")
	require.NoError(t, err)
	assert.Equal(t, PaymentZomoto, m)

	m, err = ParsePaymentMethod("")
	require.NoError(t, err)
	assert.Equal(t, PaymentOffline, m)

	_, err = ParsePaymentMethod("barter")
	assert.ErrorIs(t, err, ErrInvalidPayment)
}
