package payment

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// HMACSigner computes and checks payment signatures.
// The signed message is gatewayOrderID + "|" + gatewayPaymentID, encoded as lowercase hex.
type HMACSigner struct {
	secret []byte
}

// NewHMACSigner creates a signer for the given shared secret
func NewHMACSigner(secret string) *HMACSigner {
	return &HMACSigner{secret: []byte(secret)}
}

// Sign returns the expected signature for the pair
func (s *HMACSigner) Sign(gatewayOrderID, gatewayPaymentID string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(gatewayOrderID + "|" + gatewayPaymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify compares the provided signature with the expected lowercase hex string in constant time
func (s *HMACSigner) Verify(gatewayOrderID, gatewayPaymentID, signature string) bool {
	if len(s.secret) == 0 || signature == "" {
		return false
	}
	expected := s.Sign(gatewayOrderID, gatewayPaymentID)
	return hmac.Equal([]byte(expected), []byte(signature))
}
