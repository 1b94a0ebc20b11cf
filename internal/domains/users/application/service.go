package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Rajeshrr07/EiliyaBill/internal/domains/users/domain"
	"github.com/Rajeshrr07/EiliyaBill/internal/domains/users/ports"
	"github.com/Rajeshrr07/EiliyaBill/internal/shared/identity"
)

// DefaultSessionTTL matches the cookie lifetime handed to browsers.
const DefaultSessionTTL = 7 * 24 * time.Hour

// Service exposes the identity bounded context use cases.
type Service struct {
	repo       ports.Repository
	sessions   ports.SessionStore
	tokens     ports.TokenCodec
	sessionTTL time.Duration
	now        func() time.Time
	newID      func() string
}

type Option func(*Service)

// WithSessionTTL overrides how long a login stays valid.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.sessionTTL = ttl
		}
	}
}

// WithClock overrides the time source for deterministic testing.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(repo ports.Repository, sessions ports.SessionStore, tokens ports.TokenCodec, opts ...Option) *Service {
	s := &Service{
		repo:       repo,
		sessions:   sessions,
		tokens:     tokens,
		sessionTTL: DefaultSessionTTL,
		now:        time.Now,
		newID:      func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// SessionTTL reports the configured login lifetime.
func (s *Service) SessionTTL() time.Duration {
	return s.sessionTTL
}

func (s *Service) Signup(ctx context.Context, input ports.SignupInput) (*domain.User, error) {
	user, err := domain.NewUser(s.newID(), input.FirstName, input.LastName, input.StoreName, input.Email, input.Password)
	if err != nil {
		return nil, mapError(err)
	}
	user.CreatedAt = s.now().UTC()
	return s.repo.Create(ctx, user)
}

func (s *Service) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, mapError(ports.ErrInvalidCredentials)
	}
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, mapError(ports.ErrInvalidCredentials)
		}
		return nil, err
	}
	if !user.CheckPassword(password) {
		return nil, mapError(ports.ErrInvalidCredentials)
	}
	now := s.now().UTC()
	session := domain.Session{
		ID:        s.newID(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	token, err := s.tokens.Issue(ports.TokenClaims{SessionID: session.ID, UserID: user.ID, ExpiresAt: session.ExpiresAt})
	if err != nil {
		return nil, err
	}
	return &ports.LoginResult{User: user, Session: session, Token: token}, nil
}

// Logout revokes the session behind token. Unknown or expired tokens are not an error.
func (s *Service) Logout(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return nil
	}
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil
	}
	return s.sessions.Delete(ctx, claims.SessionID)
}

func (s *Service) Profile(ctx context.Context, userID string) (*domain.User, error) {
	if err := identity.Require(userID); err != nil {
		return nil, mapError(err)
	}
	return s.repo.GetByID(ctx, userID)
}

// ResetPassword replaces the password for email and revokes every session of that user.
func (s *Service) ResetPassword(ctx context.Context, email, newPassword string) error {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return mapError(domain.ErrEmptyEmail)
	}
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if err := user.SetPassword(newPassword); err != nil {
		return mapError(err)
	}
	if err := s.repo.UpdatePassword(ctx, user.ID, user.PasswordHash); err != nil {
		return err
	}
	return s.sessions.DeleteByUser(ctx, user.ID)
}

// Resolve is the session identity resolver: a valid signature alone is not
// enough, the referenced session must still exist and be unexpired.
func (s *Service) Resolve(ctx context.Context, token string) (ports.TokenClaims, error) {
	if strings.TrimSpace(token) == "" {
		return ports.TokenClaims{}, mapError(identity.ErrMissingOwner)
	}
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return ports.TokenClaims{}, mapError(err)
	}
	session, err := s.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		return ports.TokenClaims{}, mapError(err)
	}
	if session.UserID != claims.UserID || session.Expired(s.now()) {
		return ports.TokenClaims{}, mapError(ports.ErrInvalidToken)
	}
	return claims, nil
}

var _ ports.Service = (*Service)(nil)
