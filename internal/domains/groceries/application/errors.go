package application

import (
	"errors"
	"fmt"

	"github.com/Rajeshrr07/EiliyaBill/internal/domains/groceries/domain"
)

var (
	// ErrInvalidInput signals the request violated a grocery invariant.
	ErrInvalidInput = errors.New("invalid grocery input")
	// ErrForbidden is returned when the entry belongs to another owner.
	ErrForbidden = errors.New("grocery entry belongs to another owner")

	errNoEntries       = errors.New("at least one grocery entry is required")
	errNothingToUpdate = errors.New("nothing to update")
	errInvalidMonth    = errors.New("month must be formatted as YYYY-MM")
	errInvalidDays     = errors.New("days must be between 1 and 366")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyOwner) ||
		errors.Is(err, domain.ErrEmptyProductName) ||
		errors.Is(err, domain.ErrNonPositivePrice) ||
		errors.Is(err, errNoEntries) ||
		errors.Is(err, errNothingToUpdate) ||
		errors.Is(err, errInvalidMonth) ||
		errors.Is(err, errInvalidDays) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
