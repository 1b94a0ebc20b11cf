package types

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Rajeshrr07/EiliyaBill/internal/domains/orders/domain"
)

// LineInput is one cart line as submitted at checkout.
type LineInput struct {
	ProductID     string
	ProductName   string
	UnitPrice     decimal.Decimal
	Quantity      int
	PaymentMethod string
}

// CommitOrderInput turns a cart into an order.
type CommitOrderInput struct {
	OwnerID string
	// OrderID is optional; durable workflows assign it up front so retries reuse it.
	OrderID        string
	Items          []LineInput
	Total          decimal.Decimal
	Status         string
	IdempotencyKey string
}

// CommitResult is returned once an order is committed (or replayed).
type CommitResult struct {
	OrderID  string
	Total    decimal.Decimal
	State    domain.CommitState
	Replayed bool
}

// StagedOrder carries a validated order between the durable commit steps.
type StagedOrder struct {
	Order          *domain.Order
	IdempotencyKey string
	RequestHash    string
	// Replay is set when the idempotency key already resolved to a committed order.
	Replay *CommitResult
}

// PatchOrderInput lists the header fields to change; nil fields are untouched.
type PatchOrderInput struct {
	Total         *decimal.Decimal
	Status        *string
	PaymentMethod *string
}

// ListOrdersInput bounds the order listing by creation time; zero values are open.
type ListOrdersInput struct {
	From time.Time
	To   time.Time
}
