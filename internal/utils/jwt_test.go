package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	token, err := GenerateSessionToken(42, "maria@example.com", "test-secret", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateSessionToken(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, 42, claims.AccountID)
	assert.Equal(t, "maria@example.com", claims.Email)
	assert.Equal(t, "beautyhub", claims.Issuer)
}

func TestValidateSessionTokenWrongSecret(t *testing.T) {
	token, err := GenerateSessionToken(42, "maria@example.com", "test-secret", time.Hour)
	require.NoError(t, err)

	_, err = ValidateSessionToken(token, "other-secret")
	assert.Error(t, err)
}

func TestValidateSessionTokenExpired(t *testing.T) {
	token, err := GenerateSessionToken(42, "maria@example.com", "test-secret", -time.Minute)
	require.NoError(t, err)

	_, err = ValidateSessionToken(token, "test-secret")
	assert.Error(t, err)
}
