package mapper

import (
	"errors"
	"time"

	userapp "github.com/Rajeshrr07/EiliyaBill/internal/domains/users/application"
	userdomain "github.com/Rajeshrr07/EiliyaBill/internal/domains/users/domain"
	userports "github.com/Rajeshrr07/EiliyaBill/internal/domains/users/ports"
	apierrors "github.com/Rajeshrr07/EiliyaBill/internal/shared/errors"
)

// SignupRequest is the registration payload.
type SignupRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	StoreName string `json:"storeName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// LoginRequest is the credentials payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ForgotPasswordRequest resets a password by email.
type ForgotPasswordRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"newPassword"`
}

// Profile is the public shape of a user.
type Profile struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	StoreName string    `json:"storeName"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func ToSignupInput(req SignupRequest) userports.SignupInput {
	return userports.SignupInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		StoreName: req.StoreName,
		Email:     req.Email,
		Password:  req.Password,
	}
}

// FromDomainUser never exposes the password hash.
func FromDomainUser(user *userdomain.User) Profile {
	if user == nil {
		return Profile{}
	}
	return Profile{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		StoreName: user.StoreName,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

// ProblemFor maps identity errors onto problem details.
func ProblemFor(err error) (apierrors.ProblemDetail, bool) {
	switch {
	case errors.Is(err, userapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithDetail(apierrors.RootMessage(err)), true
	case errors.Is(err, userports.ErrInvalidCredentials):
		return apierrors.ErrUnauthorized.WithDetail("Invalid email or password"), true
	case errors.Is(err, userapp.ErrAuthentication):
		return apierrors.ErrUnauthorized.WithDetail("Not authenticated"), true
	case errors.Is(err, userports.ErrEmailTaken):
		return apierrors.ErrConflict.WithDetail("Email already exists"), true
	case errors.Is(err, userports.ErrNotFound):
		return apierrors.ErrNotFound.WithDetail("User not found"), true
	}
	return apierrors.ProblemDetail{}, false
}
