package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// ValidSignature checks the gateway's base64 HMAC-SHA256 header against the
// raw request body using a constant-time compare.
func ValidSignature(secret, body []byte, header string) bool {
	if len(secret) == 0 || header == "" {
		return false
	}

	got, err := base64.StdEncoding.DecodeString(header)
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, secret)
	mac.Write(body)

	return hmac.Equal(mac.Sum(nil), got)
}
