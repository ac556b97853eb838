package domain

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// NewID returns a globally unique, URL-safe submission identifier:
// 16 cryptographically random bytes encoded as unpadded base64url
// (22 characters). IDs carry no ordering, timing, or counter information.
func NewID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate id: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
