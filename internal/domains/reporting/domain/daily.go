package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format used by every series.
const DateLayout = time.DateOnly

// DayPoint is one entry of a daily series.
type DayPoint struct {
	Date  string
	Sales decimal.Decimal
}

// DateRange is an inclusive span of calendar days.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Days enumerates every calendar day in the range, in loc.
func (r DateRange) Days(loc *time.Location) []string {
	from := startOfDay(r.From, loc)
	to := startOfDay(r.To, loc)
	if to.Before(from) {
		return nil
	}
	var days []string
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		days = append(days, d.Format(DateLayout))
	}
	return days
}

// DailyOptions controls grouping. Fill is nil unless a fixed range was explicitly requested.
type DailyOptions struct {
	Location *time.Location
	Fill     *DateRange
}

// DailySeries sums amounts per calendar day, ascending by date.
// With Fill set, every day of the range is present (zero when empty) and points outside it are dropped.
func DailySeries(points []Point, opts DailyOptions) []DayPoint {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	sums := make(map[string]decimal.Decimal)
	for _, p := range points {
		day := p.At.In(loc).Format(DateLayout)
		sums[day] = sums[day].Add(p.Amount)
	}

	if opts.Fill != nil {
		days := opts.Fill.Days(loc)
		series := make([]DayPoint, 0, len(days))
		for _, day := range days {
			series = append(series, DayPoint{Date: day, Sales: sums[day]})
		}
		return series
	}

	series := make([]DayPoint, 0, len(sums))
	for day, total := range sums {
		series = append(series, DayPoint{Date: day, Sales: total})
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date < series[j].Date })
	return series
}

// SumPoints adds every amount.
func SumPoints(points []DayPoint) decimal.Decimal {
	total := decimal.Zero
	for _, p := range points {
		total = total.Add(p.Sales)
	}
	return total
}

func startOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
