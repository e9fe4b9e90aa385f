package pay

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"vastra/globals"
	"vastra/utils"
)

// Intent is a payment order registered with the gateway. The client completes
// the payment against GatewayOrderID and the gateway calls back with a signed
// payment id.
type Intent struct {
	GatewayOrderID string            `json:"id"`
	Amount         int64             `json:"amount"`
	Currency       string            `json:"currency"`
	KeyID          string            `json:"key_id"`
	Notes          map[string]string `json:"notes,omitempty"`
}

// CreateIntent registers a payment order for the given amount in minor units.
func CreateIntent(amount int64, currency string, notes map[string]string) (Intent, error) {
	var intent Intent
	intent.GatewayOrderID = "order_" + utils.GenerateRandomString(14)
	intent.Amount = amount
	intent.Currency = currency
	intent.KeyID = globals.PaymentKeyID
	intent.Notes = notes
	return intent, nil
}

// Signature computes the hex HMAC-SHA256 the gateway attaches to a callback:
// keyed over "gatewayOrderID|paymentID" with the shared secret.
func Signature(gatewayOrderID, paymentID, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(gatewayOrderID + "|" + paymentID))
	return hex.EncodeToString(h.Sum(nil))
}

// VerifySignature recomputes the callback signature and compares it in
// constant time.
func VerifySignature(gatewayOrderID, paymentID, signature, secret string) bool {
	if gatewayOrderID == "" || paymentID == "" || signature == "" {
		return false
	}
	expected := Signature(gatewayOrderID, paymentID, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}
