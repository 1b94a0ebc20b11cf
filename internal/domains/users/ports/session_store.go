package ports

import (
	"context"
	"errors"

	"github.com/Rajeshrr07/EiliyaBill/internal/domains/users/domain"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionStore abstracts session persistence.
type SessionStore interface {
	Save(ctx context.Context, session domain.Session) error
	Get(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID string) error
	PurgeExpired(ctx context.Context) (int64, error)
}
