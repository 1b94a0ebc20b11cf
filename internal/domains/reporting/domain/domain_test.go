package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func at(day string, hour int) time.Time {
	t, err := time.Parse(DateLayout, day)
	if err != nil {
		panic(err)
	}
	return t.Add(time.Duration(hour) * time.Hour)
}

func TestDailySeries_GroupsByDateAscending(t *testing.T) {
	points := []Point{
		{At: at("2025-01-02", 9), Amount: d("30")},
		{At: at("2025-01-01", 10), Amount: d("100")},
		{At: at("2025-01-01", 18), Amount: d("50")},
	}
	series := DailySeries(points, DailyOptions{})
	require.Len(t, series, 2)
	assert.Equal(t, "2025-01-01", series[0].Date)
	assert.True(t, d("150").Equal(series[0].Sales))
	assert.Equal(t, "2025-01-02", series[1].Date)
	assert.True(t, d("30").Equal(series[1].Sales))
}

func TestDailySeries_UsesReportLocation(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	points := []Point{{At: at("2025-01-01", 20), Amount: d("10")}}
	series := DailySeries(points, DailyOptions{Location: ist})
	require.Len(t, series, 1)
	assert.Equal(t, "2025-01-02", series[0].Date)
}

func TestDailySeries_FillsOnlyWhenAsked(t *testing.T) {
	points := []Point{
		{At: at("2025-02-01", 9), Amount: d("5")},
		{At: at("2025-02-03", 9), Amount: d("7")},
		{At: at("2025-03-01", 9), Amount: d("99")},
	}
	sparse := DailySeries(points, DailyOptions{})
	assert.Len(t, sparse, 3)

	filled := DailySeries(points, DailyOptions{Fill: &DateRange{From: at("2025-02-01", 0), To: at("2025-02-04", 0)}})
	require.Len(t, filled, 4)
	assert.Equal(t, []string{"2025-02-01", "2025-02-02", "2025-02-03", "2025-02-04"},
		[]string{filled[0].Date, filled[1].Date, filled[2].Date, filled[3].Date})
	assert.True(t, filled[1].Sales.IsZero())
	assert.True(t, d("12").Equal(SumPoints(filled)))
}

func TestDateRange_Days(t *testing.T) {
	assert.Nil(t, DateRange{From: at("2025-02-02", 0), To: at("2025-02-01", 0)}.Days(time.UTC))
	days := DateRange{From: at("2024-02-27", 0), To: at("2024-03-01", 0)}.Days(time.UTC)
	assert.Equal(t, []string{"2024-02-27", "2024-02-28", "2024-02-29", "2024-03-01"}, days)
}

func TestTopProducts_SharesAndOrdering(t *testing.T) {
	sales := []Sale{
		{Lines: []SaleLine{{ProductName: "B", Quantity: 1, Revenue: d("100")}}},
		{Lines: []SaleLine{{ProductName: "A", Quantity: 2, Revenue: d("200")}}},
	}
	ranks := TopProducts(sales, 0)
	require.Len(t, ranks, 2)
	assert.Equal(t, "A", ranks[0].Product)
	assert.Equal(t, 2, ranks[0].QtySold)
	assert.Equal(t, "66.7%", ranks[0].Share)
	assert.Equal(t, "B", ranks[1].Product)
	assert.Equal(t, "33.3%", ranks[1].Share)
}

func TestTopProducts_TiesAndLimit(t *testing.T) {
	sales := []Sale{{Lines: []SaleLine{
		{ProductName: "Tea", Quantity: 1, Revenue: d("50")},
		{ProductName: "Coffee", Quantity: 1, Revenue: d("50")},
		{ProductName: "Tea", Quantity: 3, Revenue: d("0")},
		{ProductName: "Water", Quantity: 1, Revenue: d("10")},
	}}}
	ranks := TopProducts(sales, 2)
	require.Len(t, ranks, 2)
	assert.Equal(t, "Coffee", ranks[0].Product)
	assert.Equal(t, "Tea", ranks[1].Product)
	assert.Equal(t, 4, ranks[1].QtySold)
}

func TestTopProducts_ZeroRevenue(t *testing.T) {
	ranks := TopProducts([]Sale{{Lines: []SaleLine{{ProductName: "Free", Quantity: 1, Revenue: decimal.Zero}}}}, 0)
	require.Len(t, ranks, 1)
	assert.Equal(t, "0%", ranks[0].Share)
	assert.Empty(t, TopProducts(nil, 5))
}

func TestSummarize(t *testing.T) {
	sales := []Sale{
		{Total: d("100"), Status: "paid", PaymentMethod: MethodOffline},
		{Total: d("50"), Status: "paid", PaymentMethod: MethodOnline},
		{Total: d("25"), Status: "paid", PaymentMethod: MethodMixed},
		{Total: d("999"), Status: "pending", PaymentMethod: MethodZomoto},
	}
	s := Summarize(sales)
	assert.True(t, d("175").Equal(s.Revenue))
	assert.Equal(t, 4, s.Orders)
	assert.True(t, d("44").Equal(s.AverageTicket))
	assert.True(t, d("100").Equal(s.ByMethod[MethodOffline]))
	assert.True(t, d("50").Equal(s.ByMethod[MethodOnline]))
	assert.True(t, s.ByMethod[MethodZomoto].IsZero())
	assert.True(t, d("25").Equal(s.ByMethod[MethodMixed]))
}

func TestSummarize_NoOrders(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, 0, s.Orders)
	assert.True(t, s.AverageTicket.IsZero())
	assert.True(t, s.Revenue.IsZero())
	assert.Len(t, s.ByMethod, len(Methods))
}

func TestHourlySeries(t *testing.T) {
	sales := []Sale{
		{CreatedAt: at("2025-01-01", 9), Total: d("10"), Status: "paid"},
		{CreatedAt: at("2025-01-01", 9), Total: d("5"), Status: "pending"},
		{CreatedAt: at("2025-01-01", 23), Total: d("1"), Status: "paid"},
	}
	buckets := HourlySeries(sales, nil)
	require.Len(t, buckets, 24)
	assert.True(t, d("10").Equal(buckets[9].Paid))
	assert.True(t, d("5").Equal(buckets[9].Pending))
	assert.Equal(t, 2, buckets[9].Orders)
	assert.Equal(t, 1, buckets[23].Orders)
	assert.Equal(t, 0, buckets[0].Orders)
}

func TestCategories(t *testing.T) {
	sales := []Sale{
		{Status: "paid", Lines: []SaleLine{
			{ProductID: "p-tea", Revenue: d("40")},
			{ProductID: "p-soap", Revenue: d("10")},
		}},
		{Status: "pending", Lines: []SaleLine{
			{ProductID: "p-tea", Revenue: d("20")},
			{ProductID: "p-gone", Revenue: d("5")},
		}},
	}
	result := Categories(sales, map[string]string{"p-tea": "Drinks", "p-soap": "Home"})
	require.Len(t, result, 3)
	assert.Equal(t, "Drinks", result[0].Category)
	assert.True(t, d("40").Equal(result[0].Paid))
	assert.True(t, d("20").Equal(result[0].Pending))
	assert.True(t, d("60").Equal(result[0].Total))
	assert.Equal(t, "Home", result[1].Category)
	assert.Equal(t, UncategorizedLabel, result[2].Category)
}
