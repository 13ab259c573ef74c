package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// HMAC hashes remember tokens before they are stored, so a leaked database
// does not hand out valid session tokens.
type HMAC struct {
	key []byte
}

// NewHMAC returns an HMAC using the provided secret key.
func NewHMAC(key string) HMAC {
	return HMAC{
		key: []byte(key),
	}
}

// Hash hashes the input string using HMAC with the secret key
// provided when the HMAC object was created. A fresh hash state is built
// per call, so Hash is safe for concurrent use.
func (h HMAC) Hash(input string) string {
	mac := hmac.New(sha256.New, h.key)
	mac.Write([]byte(input))
	b := mac.Sum(nil)
	return base64.URLEncoding.EncodeToString(b)
}
