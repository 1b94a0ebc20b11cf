package billingserver

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	userhttpmapper "github.com/Rajeshrr07/EiliyaBill/internal/domains/users/adapters/http/mapper"
	userports "github.com/Rajeshrr07/EiliyaBill/internal/domains/users/ports"
)

// DefaultCookieTTL is how long the browser keeps the session cookies.
const DefaultCookieTTL = 7 * 24 * time.Hour

// CookieConfig controls the session cookies issued at login.
type CookieConfig struct {
	Secure bool
	TTL    time.Duration
}

// AuthAPI serves signup, login and session management.
type AuthAPI struct {
	service userports.Service
	cookies CookieConfig
}

// NewAuthAPI creates an AuthAPI backed by the users service.
func NewAuthAPI(service userports.Service, cookies CookieConfig) AuthAPI {
	if cookies.TTL <= 0 {
		cookies.TTL = DefaultCookieTTL
	}
	return AuthAPI{service: service, cookies: cookies}
}

type loginUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	StoreName string `json:"storeName"`
}

// Post /auth/signup
func (api *AuthAPI) Signup(c *gin.Context) {
	var payload userhttpmapper.SignupRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	user, err := api.service.Signup(c.Request.Context(), userhttpmapper.ToSignupInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "userId": user.ID})
}

// Post /auth/login
// Issues the auth_token and user_id cookies.
func (api *AuthAPI) Login(c *gin.Context) {
	var payload userhttpmapper.LoginRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	result, err := api.service.Login(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	maxAge := int(api.cookies.TTL / time.Second)
	api.setCookie(c, AuthCookieName, result.Token, maxAge)
	api.setCookie(c, UserCookieName, result.User.ID, maxAge)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"user":    loginUser{ID: result.User.ID, Email: result.User.Email, StoreName: result.User.StoreName},
	})
}

// Post /auth/logout
func (api *AuthAPI) Logout(c *gin.Context) {
	if token, err := c.Cookie(AuthCookieName); err == nil {
		if err := api.service.Logout(c.Request.Context(), token); err != nil {
			respondServiceError(c, err)
			return
		}
	}
	api.setCookie(c, AuthCookieName, "", -1)
	api.setCookie(c, UserCookieName, "", -1)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out successfully"})
}

// Post /auth/forgot-password
func (api *AuthAPI) ForgotPassword(c *gin.Context) {
	var payload userhttpmapper.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	if payload.Email == "" || payload.NewPassword == "" {
		respondBadRequest(c, "Email and new password are required")
		return
	}
	if err := api.service.ResetPassword(c.Request.Context(), payload.Email, payload.NewPassword); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password updated successfully"})
}

// Get /auth/profile
func (api *AuthAPI) Profile(c *gin.Context) {
	user, err := api.service.Profile(c.Request.Context(), ownerID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, userhttpmapper.FromDomainUser(user))
}

func (api *AuthAPI) setCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", api.cookies.Secure, true)
}
