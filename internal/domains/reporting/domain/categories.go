package domain

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// CategoryRevenue splits line revenue of one product category by order status.
type CategoryRevenue struct {
	Category string
	Paid     decimal.Decimal
	Pending  decimal.Decimal
	Total    decimal.Decimal
}

// Categories attributes every line to the current category of its product.
// Lines of deleted or uncategorised products land in UncategorizedLabel. Highest total first.
func Categories(sales []Sale, categoryOf map[string]string) []CategoryRevenue {
	byCategory := make(map[string]*CategoryRevenue)
	for _, s := range sales {
		for _, line := range s.Lines {
			name := strings.TrimSpace(categoryOf[line.ProductID])
			if name == "" {
				name = UncategorizedLabel
			}
			c, ok := byCategory[name]
			if !ok {
				c = &CategoryRevenue{Category: name}
				byCategory[name] = c
			}
			if s.Paid() {
				c.Paid = c.Paid.Add(line.Revenue)
			} else {
				c.Pending = c.Pending.Add(line.Revenue)
			}
			c.Total = c.Total.Add(line.Revenue)
		}
	}
	result := make([]CategoryRevenue, 0, len(byCategory))
	for _, c := range byCategory {
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool {
		if c := result[i].Total.Cmp(result[j].Total); c != 0 {
			return c > 0
		}
		return result[i].Category < result[j].Category
	})
	return result
}
