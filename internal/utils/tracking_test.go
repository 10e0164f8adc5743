package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOrderNumber(t *testing.T) {
	t.Run("matches RN format", func(t *testing.T) {
		number := GenerateOrderNumber()
		assert.Regexp(t, `^RN\d{13}\d{3}$`, number)
	})

	t.Run("random suffix varies", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 50; i++ {
			seen[GenerateOrderNumber()] = true
		}
		// Collisions need the same millisecond and the same 3-digit draw.
		assert.Greater(t, len(seen), 1)
	})
}

func TestTrackingHash(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		a := TrackingHash("RN1700000000123001", "user@example.com", "salt")
		b := TrackingHash("RN1700000000123001", "user@example.com", "salt")
		assert.Equal(t, a, b)
		require.Len(t, a, 64)
	})

	t.Run("salt and email both matter", func(t *testing.T) {
		base := TrackingHash("RN1700000000123001", "user@example.com", "salt")
		assert.NotEqual(t, base, TrackingHash("RN1700000000123001", "user@example.com", "other"))
		assert.NotEqual(t, base, TrackingHash("RN1700000000123001", "other@example.com", "salt"))
	})
}

func TestQRCodeDataURL(t *testing.T) {
	dataURL, err := QRCodeDataURL("https://shop.example.com", "RN1700000000123001")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(dataURL, "data:image/png;base64,"))
	assert.Greater(t, len(dataURL), len("data:image/png;base64,"))
}

func TestTrackingURL(t *testing.T) {
	assert.Equal(t,
		"https://shop.example.com/track/RN1700000000123001",
		TrackingURL("https://shop.example.com", "RN1700000000123001"))
}
