package utils

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/rosenook/internal/models"
)

func TestTokenRoundTrip(t *testing.T) {
	secret := "test-secret"
	userID := uuid.New()

	token, err := GenerateToken(secret, userID, models.RoleDelivery, time.Hour)
	require.NoError(t, err)

	parsedID, role, err := ParseToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, userID, parsedID)
	assert.Equal(t, models.RoleDelivery, role)
}

func TestParseToken_Failures(t *testing.T) {
	secret := "test-secret"
	userID := uuid.New()

	t.Run("wrong secret", func(t *testing.T) {
		token, err := GenerateToken(secret, userID, models.RoleCustomer, time.Hour)
		require.NoError(t, err)

		_, _, err = ParseToken("another-secret", token)
		assert.Error(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := GenerateToken(secret, userID, models.RoleCustomer, -time.Minute)
		require.NoError(t, err)

		_, _, err = ParseToken(secret, token)
		assert.Error(t, err)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, _, err := ParseToken(secret, "not.a.jwt")
		assert.Error(t, err)
	})
}
