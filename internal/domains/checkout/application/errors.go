package application

import (
	"errors"
	"fmt"

	"github.com/Rajeshrr07/EiliyaBill/internal/domains/checkout/domain"
)

var (
	// ErrInvalidInput signals the request violated a cart invariant.
	ErrInvalidInput = errors.New("invalid cart input")
	ErrEmptyCart    = errors.New("cart is empty")
	// ErrProductUnavailable is returned for inactive catalog products.
	ErrProductUnavailable = errors.New("product is not available for sale")
	ErrNothingToUpdate    = errors.New("nothing to update")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyOwner) ||
		errors.Is(err, domain.ErrInvalidRegister) ||
		errors.Is(err, domain.ErrInvalidProduct) ||
		errors.Is(err, domain.ErrNegativePrice) ||
		errors.Is(err, domain.ErrInvalidPaymentMethod) ||
		errors.Is(err, ErrNothingToUpdate) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
