package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func TestRoundTrip(t *testing.T) {
	token, err := GenerateToken(secret, "user-1", "admin@bereschoon.nl", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID())
	assert.Equal(t, "admin@bereschoon.nl", claims.Email)
}

func TestRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken(secret, "user-1", "", time.Hour)
	require.NoError(t, err)

	_, err = ValidateToken([]byte("other"), token)
	assert.Error(t, err)
}

func TestRejectsExpired(t *testing.T) {
	token, err := GenerateToken(secret, "user-1", "", -time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken(secret, token)
	assert.Error(t, err)
}

func TestRejectsMissingSubject(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{}).SignedString(secret)
	require.NoError(t, err)

	_, err = ValidateToken(secret, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRejectsWithoutSecret(t *testing.T) {
	_, err := ValidateToken(nil, "whatever")
	assert.Error(t, err)
}
