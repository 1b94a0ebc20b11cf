package domain

import "github.com/shopspring/decimal"

// Summary holds the KPI tiles for a set of orders.
type Summary struct {
	Revenue       decimal.Decimal
	ByMethod      map[string]decimal.Decimal
	Orders        int
	AverageTicket decimal.Decimal
}

// Summarize counts every order but only paid orders contribute revenue.
// The average ticket is paid revenue over all orders rounded to a whole amount, 0 when there are none.
func Summarize(sales []Sale) Summary {
	summary := Summary{
		Revenue:  decimal.Zero,
		ByMethod: make(map[string]decimal.Decimal, len(Methods)),
		Orders:   len(sales),
	}
	for _, m := range Methods {
		summary.ByMethod[m] = decimal.Zero
	}
	for _, s := range sales {
		if !s.Paid() {
			continue
		}
		summary.Revenue = summary.Revenue.Add(s.Total)
		if _, known := summary.ByMethod[s.PaymentMethod]; known {
			summary.ByMethod[s.PaymentMethod] = summary.ByMethod[s.PaymentMethod].Add(s.Total)
		}
	}
	summary.AverageTicket = decimal.Zero
	if summary.Orders > 0 {
		summary.AverageTicket = summary.Revenue.Div(decimal.NewFromInt(int64(summary.Orders))).Round(0)
	}
	return summary
}
