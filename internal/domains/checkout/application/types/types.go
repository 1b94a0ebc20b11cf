package types

import "github.com/shopspring/decimal"

// UpdateItemInput changes one line; nil fields are untouched.
type UpdateItemInput struct {
	Quantity      *int
	PaymentMethod *string
}

type CheckoutInput struct {
	Status string
	// IdempotencyKey overrides the key derived from the cart revision.
	IdempotencyKey string
}

type CheckoutResult struct {
	OrderID  string
	Total    decimal.Decimal
	Replayed bool
}
