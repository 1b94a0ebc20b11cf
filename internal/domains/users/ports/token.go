package ports

import (
	"errors"
	"time"
)

var ErrInvalidToken = errors.New("auth token is invalid or expired")

// TokenClaims is what a verified auth token asserts.
type TokenClaims struct {
	SessionID string
	UserID    string
	ExpiresAt time.Time
}

// TokenCodec signs and verifies the opaque auth_token cookie value.
type TokenCodec interface {
	Issue(claims TokenClaims) (string, error)
	Parse(token string) (TokenClaims, error)
}
