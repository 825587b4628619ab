package utils

import (
	"crypto/rand"
	"encoding/base64"
)

// GenerateRandomKey returns a URL-safe random key built from length random
// bytes.
func GenerateRandomKey(length int) (string, error) {
	b := make([]byte, length)
	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}

	return base64.URLEncoding.EncodeToString(b), nil
}
