package usecase

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// signPayload computes the webhook signature the gateway and this service
// share: hex HMAC-SHA256 over "transactionId|merchantId|amount".
func signPayload(secret, transactionID, merchantID string, amount int64) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%s|%s|%d", transactionID, merchantID, amount)
	return hex.EncodeToString(mac.Sum(nil))
}

func signatureMatches(expected, supplied string) bool {
	return hmac.Equal([]byte(expected), []byte(supplied))
}

func jsonQuote(s string) string {
	quoted, _ := json.Marshal(s)
	return string(quoted)
}
