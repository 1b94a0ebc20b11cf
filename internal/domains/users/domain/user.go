package domain

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmptyFirstName = errors.New("first name is required")
	ErrEmptyLastName  = errors.New("last name is required")
	ErrEmptyStoreName = errors.New("store name is required")
	ErrEmptyEmail     = errors.New("email is required")
	ErrInvalidEmail   = errors.New("email address is invalid")
	ErrEmptyPassword  = errors.New("password is required")
	ErrWeakPassword   = errors.New("password must be at least 6 characters")
)

const minPasswordLength = 6

// User is a shop owner account. Every product, order and grocery entry is
// scoped to a user id.
type User struct {
	ID           string
	FirstName    string
	LastName     string
	StoreName    string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// NewUser builds a user with a hashed password.
func NewUser(id, firstName, lastName, storeName, email, password string) (*User, error) {
	user := &User{ID: id}
	if err := user.UpdateProfile(firstName, lastName, storeName); err != nil {
		return nil, err
	}
	if err := user.SetEmail(email); err != nil {
		return nil, err
	}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}
	return user, nil
}

// NormalizeEmail lower-cases and trims an address so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SetEmail validates and stores the normalized email.
func (u *User) SetEmail(email string) error {
	email = NormalizeEmail(email)
	if email == "" {
		return ErrEmptyEmail
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ErrInvalidEmail
	}
	u.Email = email
	return nil
}

// UpdateProfile sets the display fields.
func (u *User) UpdateProfile(firstName, lastName, storeName string) error {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	storeName = strings.TrimSpace(storeName)
	switch {
	case firstName == "":
		return ErrEmptyFirstName
	case lastName == "":
		return ErrEmptyLastName
	case storeName == "":
		return ErrEmptyStoreName
	}
	u.FirstName = firstName
	u.LastName = lastName
	u.StoreName = storeName
	return nil
}

// SetPassword hashes the plain password with bcrypt.
func (u *User) SetPassword(password string) error {
	if strings.TrimSpace(password) == "" {
		return ErrEmptyPassword
	}
	if len(password) < minPasswordLength {
		return ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword compares the stored hash with the supplied password.
func (u *User) CheckPassword(password string) bool {
	if u.PasswordHash == "" || password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}
