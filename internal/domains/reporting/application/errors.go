package application

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput signals a malformed report query.
	ErrInvalidInput = errors.New("invalid report query")

	errMonthOutOfRange = errors.New("month must be between 1 and 12")
	errYearOutOfRange  = errors.New("year is out of range")
	errNegativeLimit   = errors.New("limit must not be negative")
	errRangeReversed   = errors.New("from must not be after to")
	errRangeTooLarge   = errors.New("date range must not exceed 366 days")
)

func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}
