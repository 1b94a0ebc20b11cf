package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser_HashesPasswordAndNormalizesEmail(t *testing.T) {
	user, err := NewUser("u-1", " Asha ", "Rao", "Corner Store", " Asha@Example.COM ", "secret1")
	require.NoError(t, err)

	assert.Equal(t, "Asha", user.FirstName)
	assert.Equal(t, "asha@example.com", user.Email)
	assert.NotEqual(t, "secret1", user.PasswordHash)
	assert.True(t, user.CheckPassword("secret1"))
	assert.False(t, user.CheckPassword("secret2"))
	assert.False(t, user.CheckPassword(""))
}

func TestNewUser_RequiresEveryField(t *testing.T) {
	cases := []struct {
		name                                string
		first, last, store, email, password string
		want                                error
	}{
		{"first", "", "Rao", "Shop", "a@b.co", "secret1", ErrEmptyFirstName},
		{"last", "Asha", "", "Shop", "a@b.co", "secret1", ErrEmptyLastName},
		{"store", "Asha", "Rao", "", "a@b.co", "secret1", ErrEmptyStoreName},
		{"email", "Asha", "Rao", "Shop", "", "secret1", ErrEmptyEmail},
		{"bad email", "Asha", "Rao", "Shop", "not-an-email", "secret1", ErrInvalidEmail},
		{"password", "Asha", "Rao", "Shop", "a@b.co", "", ErrEmptyPassword},
		{"weak", "Asha", "Rao", "Shop", "a@b.co", "abc", ErrWeakPassword},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewUser("u-1", tc.first, tc.last, tc.store, tc.email, tc.password)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestSessionExpired(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	s := Session{ExpiresAt: now.Add(time.Hour)}
	assert.False(t, s.Expired(now))
	assert.True(t, s.Expired(now.Add(time.Hour)))
	assert.False(t, Session{}.Expired(now))
}
