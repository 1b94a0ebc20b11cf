package ports

import (
	"context"

	"github.com/Rajeshrr07/EiliyaBill/internal/domains/users/domain"
)

// SignupInput carries the registration form.
type SignupInput struct {
	FirstName string
	LastName  string
	StoreName string
	Email     string
	Password  string
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	User    *domain.User
	Session domain.Session
	Token   string
}

// Service exposes identity use cases to adapters.
type Service interface {
	Signup(ctx context.Context, input SignupInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, token string) error
	Profile(ctx context.Context, userID string) (*domain.User, error)
	ResetPassword(ctx context.Context, email, newPassword string) error
	// Resolve verifies an auth token and returns the owning user and session ids.
	Resolve(ctx context.Context, token string) (TokenClaims, error)
}
