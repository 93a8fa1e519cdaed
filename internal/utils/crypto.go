// internal/utils/crypto.go
package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateResetToken returns a 64-character hex token for password recovery.
func GenerateResetToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
