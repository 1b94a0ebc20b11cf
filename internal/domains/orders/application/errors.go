package application

import (
	"errors"
	"fmt"

	"github.com/Rajeshrr07/EiliyaBill/internal/domains/orders/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid order input")
	// ErrForbidden is returned when the order belongs to another owner.
	ErrForbidden = errors.New("order belongs to another owner")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrNoItems) ||
		errors.Is(err, domain.ErrEmptyOwner) ||
		errors.Is(err, domain.ErrEmptyProductName) ||
		errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, domain.ErrNegativeAmount) ||
		errors.Is(err, domain.ErrInvalidStatus) ||
		errors.Is(err, domain.ErrInvalidPayment) ||
		errors.Is(err, domain.ErrTotalMismatch) ||
		errors.Is(err, domain.ErrNothingToUpdate) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
