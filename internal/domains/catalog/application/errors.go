package application

import (
	"errors"
	"fmt"

	"github.com/Rajeshrr07/EiliyaBill/internal/domains/catalog/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid product input")
	// ErrForbidden is returned when the product belongs to another owner.
	ErrForbidden = errors.New("product belongs to another owner")
	// ErrImageStorageDisabled is returned when no image store is configured.
	ErrImageStorageDisabled = errors.New("image storage is not configured")
	ErrInvalidImage         = errors.New("upload must be an image")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrEmptyCategory) ||
		errors.Is(err, domain.ErrEmptyOwner) ||
		errors.Is(err, domain.ErrNegativePrice) ||
		errors.Is(err, domain.ErrNegativeCost) ||
		errors.Is(err, domain.ErrNegativeStock) ||
		errors.Is(err, domain.ErrInvalidStatus) ||
		errors.Is(err, ErrInvalidImage) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
