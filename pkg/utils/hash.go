package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// GenerateContentHash returns the hex SHA-256 of an encoded media payload.
func GenerateContentHash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
