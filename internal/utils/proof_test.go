package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignatureHashing(t *testing.T) {
	t.Run("round trip verifies", func(t *testing.T) {
		for _, data := range []string{"", "a", "recipient: J. Doe", "длинная подпись", "multi\nline\nstroke data"} {
			assert.True(t, VerifySignature(data, HashSignature(data)))
		}
	})

	t.Run("tampered data fails", func(t *testing.T) {
		hash := HashSignature("recipient: J. Doe")
		assert.False(t, VerifySignature("recipient: J. Doe"+"x", hash))
	})

	t.Run("digest is hex sha256", func(t *testing.T) {
		hash := HashSignature("anything")
		require.Len(t, hash, 64)
		assert.Regexp(t, "^[0-9a-f]{64}$", hash)
	})
}

func TestHashGPSLocation(t *testing.T) {
	t.Run("stable beyond fourth decimal", func(t *testing.T) {
		base := HashGPSLocation(41.311021, 69.240512, 4)
		assert.Equal(t, base, HashGPSLocation(41.311029, 69.240518, 4))
		assert.Equal(t, base, HashGPSLocation(41.3110200001, 69.2405100001, 4))
	})

	t.Run("differs at fourth decimal", func(t *testing.T) {
		assert.NotEqual(t,
			HashGPSLocation(41.3110, 69.2405, 4),
			HashGPSLocation(41.3111, 69.2405, 4))
	})

	t.Run("coordinate order matters", func(t *testing.T) {
		assert.NotEqual(t,
			HashGPSLocation(41.3110, 69.2405, 4),
			HashGPSLocation(69.2405, 41.3110, 4))
	})
}

func TestGenerateDeliveryToken(t *testing.T) {
	at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("deterministic for same inputs", func(t *testing.T) {
		a := GenerateDeliveryToken("RN1700000000123001", "courier-1", at)
		b := GenerateDeliveryToken("RN1700000000123001", "courier-1", at)
		assert.Equal(t, a, b)
	})

	t.Run("16 hex chars", func(t *testing.T) {
		token := GenerateDeliveryToken("RN1700000000123001", "courier-1", at)
		require.Len(t, token, 16)
		assert.Regexp(t, "^[0-9a-f]{16}$", token)
	})

	t.Run("varies with inputs", func(t *testing.T) {
		base := GenerateDeliveryToken("RN1700000000123001", "courier-1", at)
		assert.NotEqual(t, base, GenerateDeliveryToken("RN1700000000123002", "courier-1", at))
		assert.NotEqual(t, base, GenerateDeliveryToken("RN1700000000123001", "courier-2", at))
		assert.NotEqual(t, base, GenerateDeliveryToken("RN1700000000123001", "courier-1", at.Add(time.Millisecond)))
	})
}
