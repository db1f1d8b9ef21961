package invites

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// tokenBytes yields 64 hex characters, 256 bits of entropy.
const tokenBytes = 32

// NewToken returns a cryptographically random invitation token.
func NewToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("invites: generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
