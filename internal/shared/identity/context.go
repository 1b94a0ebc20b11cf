// Package identity carries the resolved session owner through a request.
package identity

import (
	"context"
	"errors"
	"strings"
)

// ErrMissingOwner is returned by scoped operations invoked without an owner.
var ErrMissingOwner = errors.New("authentication required")

type contextKey struct{}

// Owner is the identity resolved from the session cookie.
type Owner struct {
	UserID    string
	SessionID string
}

func WithOwner(ctx context.Context, owner Owner) context.Context {
	return context.WithValue(ctx, contextKey{}, owner)
}

func FromContext(ctx context.Context) (Owner, bool) {
	owner, ok := ctx.Value(contextKey{}).(Owner)
	if !ok || owner.UserID == "" {
		return Owner{}, false
	}
	return owner, true
}

// UserID returns the owner id stored in ctx, or "" when the request is anonymous.
func UserID(ctx context.Context) string {
	owner, ok := FromContext(ctx)
	if !ok {
		return ""
	}
	return owner.UserID
}

// Require fails closed when no owner was resolved.
func Require(ownerID string) error {
	if strings.TrimSpace(ownerID) == "" {
		return ErrMissingOwner
	}
	return nil
}
