package ports

import (
	"context"
	"errors"

	"github.com/Rajeshrr07/EiliyaBill/internal/domains/users/domain"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Repository persists shop owner accounts.
type Repository interface {
	// Create inserts a new user, returning ErrEmailTaken when the email exists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}
