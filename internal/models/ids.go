package models

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// NewID creates an entity ID in <prefix>-xxxxxxxx format (8 hex chars).
func NewID(prefix string) (string, error) {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("models: generate ID: %w", err)
	}
	return prefix + "-" + hex.EncodeToString(b), nil
}
