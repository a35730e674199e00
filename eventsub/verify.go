package eventsub

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// signaturePrefix names the hash scheme in the signature header.
const signaturePrefix = "sha256="

// ComputeSignature returns the signature Twitch sends for a message:
// "sha256=" followed by the hex HMAC-SHA256 of id, timestamp and body,
// keyed with secret. body must be the raw bytes as received.
func ComputeSignature(secret, id, timestamp string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(id))
	mac.Write([]byte(timestamp))
	mac.Write(body)
	return signaturePrefix + hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature reports whether signature authenticates the message.
// The comparison runs in constant time. Malformed input simply fails.
func VerifySignature(secret, id, timestamp string, body []byte, signature string) bool {
	expected := ComputeSignature(secret, id, timestamp, body)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// Verify is VerifySignature returning a *SignatureVerificationError on
// mismatch.
func Verify(secret, id, timestamp string, body []byte, signature string) error {
	if secret == "" {
		return &SignatureVerificationError{Reason: "no secret configured"}
	}
	if !VerifySignature(secret, id, timestamp, body, signature) {
		return &SignatureVerificationError{Reason: "signature mismatch"}
	}
	return nil
}
