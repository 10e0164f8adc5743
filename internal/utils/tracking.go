package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"math/big"
	"time"

	qrcode "github.com/skip2/go-qrcode"
)

// GenerateOrderNumber builds an order number in the form
// RN<millisecond timestamp><3-digit random suffix>. Uniqueness is enforced by
// the database index on order_number; a same-millisecond collision with a
// matching suffix surfaces as a conflict to the caller.
func GenerateOrderNumber() string {
	suffix, err := rand.Int(rand.Reader, big.NewInt(1000))
	if err != nil {
		suffix = big.NewInt(time.Now().UnixNano() % 1000)
	}
	return fmt.Sprintf("RN%d%03d", time.Now().UnixMilli(), suffix.Int64())
}

// TrackingHash derives the non-guessable receipt verification token for an
// order from the order number, the customer's email, and the server salt.
func TrackingHash(orderNumber, email, salt string) string {
	sum := sha256.Sum256([]byte(orderNumber + "-" + email + "-" + salt))
	return hex.EncodeToString(sum[:])
}

// TrackingURL is the public tracking link encoded into the order's QR code.
func TrackingURL(baseURL, orderNumber string) string {
	return baseURL + "/track/" + orderNumber
}

// QRCodeDataURL encodes the order's tracking URL into a PNG data URL at
// error-correction level M.
func QRCodeDataURL(baseURL, orderNumber string) (string, error) {
	png, err := qrcode.Encode(TrackingURL(baseURL, orderNumber), qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
