package billingserver

import (
	"context"

	"github.com/gin-gonic/gin"

	userports "github.com/Rajeshrr07/EiliyaBill/internal/domains/users/ports"
	"github.com/Rajeshrr07/EiliyaBill/internal/shared/identity"
)

const (
	// AuthCookieName carries the signed session token.
	AuthCookieName = "auth_token"
	// UserCookieName carries the owner id for the browser UI.
	UserCookieName = "user_id"
)

// SessionResolver turns an auth token into the owning user and session.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (userports.TokenClaims, error)
}

// RequireOwner resolves the session cookie and stores the owner on the request
// context. Requests without a live session are rejected with 401.
func RequireOwner(sessions SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(AuthCookieName)
		if err != nil || token == "" || sessions == nil {
			respondUnauthenticated(c)
			return
		}
		claims, err := sessions.Resolve(c.Request.Context(), token)
		if err != nil {
			respondServiceError(c, err)
			c.Abort()
			return
		}
		if cookieUser, err := c.Cookie(UserCookieName); err == nil && cookieUser != "" && cookieUser != claims.UserID {
			respondUnauthenticated(c)
			return
		}
		ctx := identity.WithOwner(c.Request.Context(), identity.Owner{UserID: claims.UserID, SessionID: claims.SessionID})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// ownerID returns the owner resolved by RequireOwner, or "" for anonymous requests.
func ownerID(c *gin.Context) string {
	return identity.UserID(c.Request.Context())
}
