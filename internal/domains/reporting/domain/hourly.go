package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// HourBucket aggregates one hour of the day.
type HourBucket struct {
	Hour    int
	Paid    decimal.Decimal
	Pending decimal.Decimal
	Orders  int
}

// HourlySeries always returns 24 buckets keyed by the local hour of each sale.
func HourlySeries(sales []Sale, loc *time.Location) []HourBucket {
	if loc == nil {
		loc = time.UTC
	}
	buckets := make([]HourBucket, 24)
	for h := range buckets {
		buckets[h] = HourBucket{Hour: h, Paid: decimal.Zero, Pending: decimal.Zero}
	}
	for _, s := range sales {
		b := &buckets[s.CreatedAt.In(loc).Hour()]
		if s.Paid() {
			b.Paid = b.Paid.Add(s.Total)
		} else {
			b.Pending = b.Pending.Add(s.Total)
		}
		b.Orders++
	}
	return buckets
}
