package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func signPayload(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	const (
		orderID   = "order_MkA1zBCDe23fgH"
		paymentID = "pay_NxB2yCDEf34ghI"
		secret    = "test_secret_key"
	)

	t.Run("Valid Signature", func(t *testing.T) {
		signature := signPayload(orderID, paymentID, secret)
		assert.True(t, verifySignature(orderID, paymentID, signature, secret))
	})

	t.Run("Tampered Payment ID", func(t *testing.T) {
		signature := signPayload(orderID, paymentID, secret)
		assert.False(t, verifySignature(orderID, "pay_other", signature, secret))
	})

	t.Run("Tampered Signature", func(t *testing.T) {
		signature := signPayload(orderID, paymentID, secret)
		tampered := "0" + signature[1:]
		if tampered == signature {
			tampered = "1" + signature[1:]
		}
		assert.False(t, verifySignature(orderID, paymentID, tampered, secret))
	})

	t.Run("Wrong Secret", func(t *testing.T) {
		signature := signPayload(orderID, paymentID, "other_secret")
		assert.False(t, verifySignature(orderID, paymentID, signature, secret))
	})

	t.Run("Empty Signature", func(t *testing.T) {
		assert.False(t, verifySignature(orderID, paymentID, "", secret))
	})
}
