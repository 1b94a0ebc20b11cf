// Package domain holds the pure sales aggregations behind the dashboard and reports.
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusPaid = "paid"

	MethodOffline = "Offline"
	MethodOnline  = "Online"
	MethodZomoto  = "Zomoto"
	MethodMixed   = "Mixed"

	// UncategorizedLabel groups lines whose product is gone or has no category.
	UncategorizedLabel = "Uncategorized"
)

// Methods lists the payment buckets reported on the KPI tiles, in display order.
var Methods = []string{MethodOffline, MethodOnline, MethodZomoto, MethodMixed}

// Sale is a committed order as seen by reporting.
type Sale struct {
	OrderID       string
	CreatedAt     time.Time
	Total         decimal.Decimal
	Status        string
	PaymentMethod string
	Lines         []SaleLine
}

// SaleLine carries the name and price snapshot taken at commit time.
type SaleLine struct {
	ProductID   string
	ProductName string
	Quantity    int
	Revenue     decimal.Decimal
}

// Paid reports whether the sale counts towards paid revenue.
func (s Sale) Paid() bool {
	return s.Status == StatusPaid
}

// Point is one dated amount fed into a daily series.
type Point struct {
	At     time.Time
	Amount decimal.Decimal
}

// SalePoints turns sales into series points using their order totals.
func SalePoints(sales []Sale) []Point {
	points := make([]Point, 0, len(sales))
	for _, s := range sales {
		points = append(points, Point{At: s.CreatedAt, Amount: s.Total})
	}
	return points
}
