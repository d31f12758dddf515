package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndVerify(t *testing.T) {
	userID := uuid.New()

	token, err := GenerateAccessToken(userID, "test-secret", time.Minute)
	require.NoError(t, err)

	claims, err := VerifyToken(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
}

func TestVerifyWrongSecret(t *testing.T) {
	token, err := GenerateAccessToken(uuid.New(), "test-secret", time.Minute)
	require.NoError(t, err)

	_, err = VerifyToken(token, "other-secret")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyExpired(t *testing.T) {
	token, err := GenerateAccessToken(uuid.New(), "test-secret", -time.Minute)
	require.NoError(t, err)

	_, err = VerifyToken(token, "test-secret")
	assert.ErrorIs(t, err, ErrExpiredToken)
}
