package provider

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"

	"github.com/PrecisionBh/melo-escrow-service/internal/domain"
)

// VerifySignature checks the provider's HMAC-SHA256 signature over the raw
// webhook body. Comparison is constant-time; an unverified payload is never
// processed.
func VerifySignature(secret string, body []byte, signatureHex string) error {
	if signatureHex == "" {
		return domain.ErrInvalidSignature
	}
	given, err := hex.DecodeString(signatureHex)
	if err != nil {
		return domain.ErrInvalidSignature
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := mac.Sum(nil)

	if !hmac.Equal(given, expected) {
		return domain.ErrInvalidSignature
	}
	return nil
}

// SignPayload produces the signature the provider would send; used by tests
// and the local webhook replayer.
func SignPayload(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
