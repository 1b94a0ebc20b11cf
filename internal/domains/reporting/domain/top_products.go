package domain

import (
	"sort"

	"github.com/shopspring/decimal"
)

// ProductRank is one row of the top products table.
type ProductRank struct {
	Product string
	QtySold int
	Revenue decimal.Decimal
	Share   string
}

var hundred = decimal.NewFromInt(100)

// TopProducts groups lines by product name snapshot, highest revenue first.
// Ties sort by name; limit <= 0 keeps every product.
func TopProducts(sales []Sale, limit int) []ProductRank {
	byName := make(map[string]*ProductRank)
	total := decimal.Zero
	for _, s := range sales {
		for _, line := range s.Lines {
			rank, ok := byName[line.ProductName]
			if !ok {
				rank = &ProductRank{Product: line.ProductName}
				byName[line.ProductName] = rank
			}
			rank.QtySold += line.Quantity
			rank.Revenue = rank.Revenue.Add(line.Revenue)
			total = total.Add(line.Revenue)
		}
	}

	ranks := make([]ProductRank, 0, len(byName))
	for _, rank := range byName {
		rank.Share = FormatShare(rank.Revenue, total)
		ranks = append(ranks, *rank)
	}
	sort.Slice(ranks, func(i, j int) bool {
		if c := ranks[i].Revenue.Cmp(ranks[j].Revenue); c != 0 {
			return c > 0
		}
		return ranks[i].Product < ranks[j].Product
	})
	if limit > 0 && len(ranks) > limit {
		ranks = ranks[:limit]
	}
	return ranks
}

// FormatShare renders part/total as a percentage with one decimal, or "0%" when total is not positive.
func FormatShare(part, total decimal.Decimal) string {
	if !total.IsPositive() {
		return "0%"
	}
	return part.Div(total).Mul(hundred).StringFixed(1) + "%"
}
