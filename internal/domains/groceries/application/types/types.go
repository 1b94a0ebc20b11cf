package types

import (
	"github.com/shopspring/decimal"

	reporting "github.com/Rajeshrr07/EiliyaBill/internal/domains/reporting/domain"
)

type CreateInput struct {
	ProductName string
	Price       decimal.Decimal
}

// UpdateInput lists the fields to change; nil fields are untouched.
type UpdateInput struct {
	ProductName *string
	Price       *decimal.Decimal
}

// ListInput optionally narrows the list to one calendar month ("YYYY-MM").
type ListInput struct {
	Month string
}

// SummaryQuery selects a calendar month ("YYYY-MM") or the last Days days ending today.
// When both are empty the current month is used.
type SummaryQuery struct {
	Month string
	Days  int
}

type Summary struct {
	From   string
	To     string
	Series []reporting.DayPoint
	Total  decimal.Decimal
	Count  int
}
