package types

import "time"

// DailyQuery bounds the daily series by calendar day, both ends inclusive.
// Days without sales are zero-filled only when both ends are given.
type DailyQuery struct {
	From *time.Time
	To   *time.Time
}

// TopProductsQuery filters by calendar month; Month 0 means every month of Year (or all time when Year is 0).
type TopProductsQuery struct {
	Month int
	Year  int
	Limit int
}

// RangeQuery is an optional inclusive range of calendar days.
type RangeQuery struct {
	From *time.Time
	To   *time.Time
}

// DayQuery selects a single calendar day; nil means today.
type DayQuery struct {
	Date *time.Time
}
