package utils

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"time"
)

// HashSignature returns the SHA-256 hex digest of a captured recipient
// signature. Only the digest is ever stored.
func HashSignature(data string) string {
	sum := sha256.Sum256([]byte(data))
	return hex.EncodeToString(sum[:])
}

// VerifySignature recomputes the digest and compares it to the stored one.
func VerifySignature(data, hash string) bool {
	computed := HashSignature(data)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(hash)) == 1
}

// HashGPSLocation hashes a coordinate pair after rounding both values to
// `precision` decimal places. At precision 4 that is roughly 11 m of
// granularity, enough to prove the courier was at the address without
// recording the exact fix.
func HashGPSLocation(lat, lng float64, precision int) string {
	rounded := fmt.Sprintf("%.*f,%.*f", precision, lat, precision, lng)
	sum := sha256.Sum256([]byte(rounded))
	return hex.EncodeToString(sum[:])
}

// GenerateDeliveryToken derives a compact 16-character correlation token for a
// completed delivery. It is not unforgeable, just unique enough to tie a proof
// record to an order and courier.
func GenerateDeliveryToken(orderNumber, deliveryPersonID string, at time.Time) string {
	input := fmt.Sprintf("%s-%s-%d", orderNumber, deliveryPersonID, at.UnixMilli())
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])[:16]
}
