package application

import (
	"errors"
	"fmt"

	"github.com/Rajeshrr07/EiliyaBill/internal/domains/users/domain"
	"github.com/Rajeshrr07/EiliyaBill/internal/domains/users/ports"
	"github.com/Rajeshrr07/EiliyaBill/internal/shared/identity"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid user input")
	// ErrAuthentication wraps authentication failures.
	ErrAuthentication = errors.New("authentication failed")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyFirstName) ||
		errors.Is(err, domain.ErrEmptyLastName) ||
		errors.Is(err, domain.ErrEmptyStoreName) ||
		errors.Is(err, domain.ErrEmptyEmail) ||
		errors.Is(err, domain.ErrInvalidEmail) ||
		errors.Is(err, domain.ErrEmptyPassword) ||
		errors.Is(err, domain.ErrWeakPassword) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if errors.Is(err, ports.ErrInvalidCredentials) ||
		errors.Is(err, ports.ErrInvalidToken) ||
		errors.Is(err, ports.ErrSessionNotFound) ||
		errors.Is(err, identity.ErrMissingOwner) {
		return fmt.Errorf("%w: %w", ErrAuthentication, err)
	}
	return err
}
