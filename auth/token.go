package auth

import (
	"crypto/rand"
	"encoding/base64"
)

// RememberTokenBytes is the entropy of a remember token, before encoding.
const RememberTokenBytes = 32

// randBytes generates n random bytes or returns an error.
func randBytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, err
	}
	return b, nil
}

// randString generates a base64 URL encoded string built from n random bytes.
func randString(n int) (string, error) {
	b, err := randBytes(n)
	if err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// MakeRememberToken generates a new remember token for a user session.
func MakeRememberToken() (string, error) {
	return randString(RememberTokenBytes)
}

// NBytes returns the number of bytes encoded in a base64 token string.
func NBytes(base64String string) (int, error) {
	b, err := base64.URLEncoding.DecodeString(base64String)
	if err != nil {
		return -1, err
	}
	return len(b), nil
}
