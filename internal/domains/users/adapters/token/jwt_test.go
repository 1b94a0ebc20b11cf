package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rajeshrr07/EiliyaBill/internal/domains/users/ports"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestJWTCodec_IssueAndParse(t *testing.T) {
	codec, err := NewJWTCodec(testSecret)
	require.NoError(t, err)

	expires := time.Now().Add(time.Hour).Truncate(time.Second)
	raw, err := codec.Issue(ports.TokenClaims{SessionID: "s-1", UserID: "u-1", ExpiresAt: expires})
	require.NoError(t, err)

	claims, err := codec.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "s-1", claims.SessionID)
	assert.Equal(t, "u-1", claims.UserID)
	assert.True(t, expires.Equal(claims.ExpiresAt))
}

func TestJWTCodec_RejectsExpiredToken(t *testing.T) {
	codec, err := NewJWTCodec(testSecret)
	require.NoError(t, err)

	raw, err := codec.Issue(ports.TokenClaims{SessionID: "s-1", UserID: "u-1", ExpiresAt: time.Now().Add(-time.Minute)})
	require.NoError(t, err)

	_, err = codec.Parse(raw)
	require.ErrorIs(t, err, ports.ErrInvalidToken)
}

func TestJWTCodec_RejectsForeignSignature(t *testing.T) {
	issuerCodec, err := NewJWTCodec(testSecret)
	require.NoError(t, err)
	otherCodec, err := NewJWTCodec("another-secret-that-is-long-enough")
	require.NoError(t, err)

	raw, err := issuerCodec.Issue(ports.TokenClaims{SessionID: "s-1", UserID: "u-1", ExpiresAt: time.Now().Add(time.Hour)})
	require.NoError(t, err)

	_, err = otherCodec.Parse(raw)
	require.ErrorIs(t, err, ports.ErrInvalidToken)

	_, err = issuerCodec.Parse("not-a-token")
	require.ErrorIs(t, err, ports.ErrInvalidToken)
}

func TestNewJWTCodec_RequiresLongSecret(t *testing.T) {
	_, err := NewJWTCodec("short")
	require.Error(t, err)
}
