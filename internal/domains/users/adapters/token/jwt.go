// Package token signs auth_token cookie values as HS256 JWTs.
package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Rajeshrr07/EiliyaBill/internal/domains/users/ports"
)

const issuer = "eiliyabill"

var _ ports.TokenCodec = (*JWTCodec)(nil)

type claims struct {
	jwt.RegisteredClaims
}

// JWTCodec issues and verifies session tokens with a shared secret.
type JWTCodec struct {
	secret []byte
	now    func() time.Time
}

func NewJWTCodec(secret string) (*JWTCodec, error) {
	if len(strings.TrimSpace(secret)) < 16 {
		return nil, errors.New("session secret must be at least 16 characters")
	}
	return &JWTCodec{secret: []byte(secret), now: time.Now}, nil
}

// WithClock overrides the verification clock.
func (c *JWTCodec) WithClock(now func() time.Time) *JWTCodec {
	if now != nil {
		c.now = now
	}
	return c
}

func (c *JWTCodec) Issue(in ports.TokenClaims) (string, error) {
	if in.SessionID == "" || in.UserID == "" {
		return "", errors.New("session id and user id are required")
	}
	registered := jwt.RegisteredClaims{
		ID:       in.SessionID,
		Subject:  in.UserID,
		Issuer:   issuer,
		IssuedAt: jwt.NewNumericDate(c.now()),
	}
	if !in.ExpiresAt.IsZero() {
		registered.ExpiresAt = jwt.NewNumericDate(in.ExpiresAt)
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims{RegisteredClaims: registered}).SignedString(c.secret)
}

func (c *JWTCodec) Parse(raw string) (ports.TokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(raw, &claims{}, func(tok *jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return ports.TokenClaims{}, fmt.Errorf("%w: %v", ports.ErrInvalidToken, err)
	}
	out, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid || out.ID == "" || out.Subject == "" {
		return ports.TokenClaims{}, ports.ErrInvalidToken
	}
	result := ports.TokenClaims{SessionID: out.ID, UserID: out.Subject}
	if out.ExpiresAt != nil {
		result.ExpiresAt = out.ExpiresAt.Time
	}
	return result, nil
}
