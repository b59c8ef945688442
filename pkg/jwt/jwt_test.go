package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_GenerateAndValidate(t *testing.T) {
	tm := NewTokenManager("test-secret", "mentorhub-api", 48)

	token, err := tm.GenerateToken(7, "alice@example.com", "Alice", "MENTEE")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := tm.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "Alice", claims.Name)
	assert.Equal(t, "MENTEE", claims.Role)
	assert.Equal(t, "mentorhub-api", claims.Issuer)
	assert.Equal(t, "7", claims.Subject)

	// Expiry should be 48 hours out
	assert.WithinDuration(t, time.Now().Add(48*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestTokenManager_ValidateToken_Expired(t *testing.T) {
	tm := NewTokenManager("test-secret", "mentorhub-api", -1)

	token, err := tm.GenerateToken(7, "alice@example.com", "Alice", "MENTEE")
	require.NoError(t, err)

	_, err = tm.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenManager_ValidateToken_WrongSecret(t *testing.T) {
	signer := NewTokenManager("secret-a", "mentorhub-api", 48)
	verifier := NewTokenManager("secret-b", "mentorhub-api", 48)

	token, err := signer.GenerateToken(7, "alice@example.com", "Alice", "MENTEE")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_ValidateToken_Garbage(t *testing.T) {
	tm := NewTokenManager("test-secret", "mentorhub-api", 48)

	_, err := tm.ValidateToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTimingSafeCompare(t *testing.T) {
	assert.True(t, TimingSafeCompare("token", "token"))
	assert.False(t, TimingSafeCompare("token", "other"))
	assert.False(t, TimingSafeCompare("token", ""))
}