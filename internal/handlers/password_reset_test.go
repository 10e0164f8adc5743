package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/rosenook/internal/models"
)

func TestCheckResetToken(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("valid token passes", func(t *testing.T) {
		record := &models.PasswordReset{ExpiresAt: now.Add(time.Hour), Used: false}
		assert.NoError(t, checkResetToken(record, now))
	})

	t.Run("expired token rejected", func(t *testing.T) {
		record := &models.PasswordReset{ExpiresAt: now.Add(-time.Minute), Used: false}
		assert.ErrorIs(t, checkResetToken(record, now), errResetTokenExpired)
	})

	t.Run("used token rejected", func(t *testing.T) {
		record := &models.PasswordReset{ExpiresAt: now.Add(time.Hour), Used: true}
		assert.ErrorIs(t, checkResetToken(record, now), errResetTokenUsed)
	})

	t.Run("expiry wins over used", func(t *testing.T) {
		record := &models.PasswordReset{ExpiresAt: now.Add(-time.Minute), Used: true}
		assert.ErrorIs(t, checkResetToken(record, now), errResetTokenExpired)
	})

	t.Run("exact expiry instant still valid", func(t *testing.T) {
		record := &models.PasswordReset{ExpiresAt: now, Used: false}
		assert.NoError(t, checkResetToken(record, now))
	})
}

func TestGenerateResetToken(t *testing.T) {
	token, err := generateResetToken()
	require.NoError(t, err)
	assert.Len(t, token, 64)
	assert.Regexp(t, "^[0-9a-f]{64}$", token)

	other, err := generateResetToken()
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
}
