package mapper

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	reportapp "github.com/Rajeshrr07/EiliyaBill/internal/domains/reporting/application"
	"github.com/Rajeshrr07/EiliyaBill/internal/domains/reporting/domain"
	apierrors "github.com/Rajeshrr07/EiliyaBill/internal/shared/errors"
)

type DayPoint struct {
	Date  string  `json:"date"`
	Sales float64 `json:"sales"`
}

type ProductRank struct {
	Product string  `json:"product"`
	QtySold int     `json:"qtySold"`
	Revenue float64 `json:"revenue"`
	Share   string  `json:"share"`
}

// Summary feeds the dashboard KPI tiles.
type Summary struct {
	Revenue        float64 `json:"revenue"`
	OfflineRevenue float64 `json:"offlineRevenue"`
	OnlineRevenue  float64 `json:"onlineRevenue"`
	ZomotoRevenue  float64 `json:"zomotoRevenue"`
	MixedRevenue   float64 `json:"mixedRevenue"`
	Orders         int     `json:"orders"`
	AvgTicket      float64 `json:"avgTicket"`
}

type HourBucket struct {
	Hour    int     `json:"hour"`
	Label   string  `json:"label"`
	Paid    float64 `json:"paid"`
	Pending float64 `json:"pending"`
	Orders  int     `json:"orders"`
}

type CategoryRevenue struct {
	Category string  `json:"category"`
	Paid     float64 `json:"paid"`
	Pending  float64 `json:"pending"`
	Total    float64 `json:"total"`
}

func FromDaily(points []domain.DayPoint) []DayPoint {
	out := make([]DayPoint, 0, len(points))
	for _, p := range points {
		out = append(out, DayPoint{Date: p.Date, Sales: money(p.Sales)})
	}
	return out
}

func FromTopProducts(ranks []domain.ProductRank) []ProductRank {
	out := make([]ProductRank, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, ProductRank{Product: r.Product, QtySold: r.QtySold, Revenue: money(r.Revenue), Share: r.Share})
	}
	return out
}

func FromSummary(s *domain.Summary) Summary {
	if s == nil {
		return Summary{}
	}
	return Summary{
		Revenue:        money(s.Revenue),
		OfflineRevenue: money(s.ByMethod[domain.MethodOffline]),
		OnlineRevenue:  money(s.ByMethod[domain.MethodOnline]),
		ZomotoRevenue:  money(s.ByMethod[domain.MethodZomoto]),
		MixedRevenue:   money(s.ByMethod[domain.MethodMixed]),
		Orders:         s.Orders,
		AvgTicket:      money(s.AverageTicket),
	}
}

func FromHourly(buckets []domain.HourBucket) []HourBucket {
	out := make([]HourBucket, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, HourBucket{
			Hour:    b.Hour,
			Label:   hourLabel(b.Hour),
			Paid:    money(b.Paid),
			Pending: money(b.Pending),
			Orders:  b.Orders,
		})
	}
	return out
}

func FromCategories(rows []domain.CategoryRevenue) []CategoryRevenue {
	out := make([]CategoryRevenue, 0, len(rows))
	for _, r := range rows {
		out = append(out, CategoryRevenue{Category: r.Category, Paid: money(r.Paid), Pending: money(r.Pending), Total: money(r.Total)})
	}
	return out
}

// hourLabel renders 0..23 as 12am..11pm.
func hourLabel(hour int) string {
	suffix := "am"
	if hour >= 12 {
		suffix = "pm"
	}
	h := hour % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d%s", h, suffix)
}

func money(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

// ProblemFor maps reporting errors onto problem details.
func ProblemFor(err error) (apierrors.ProblemDetail, bool) {
	if errors.Is(err, reportapp.ErrInvalidInput) {
		return apierrors.ErrValidation.WithDetail(apierrors.RootMessage(err)), true
	}
	return apierrors.ProblemDetail{}, false
}
