package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashUserKey returns a stable filesystem-safe namespace for a user ID.
// Truncated to 16 bytes to keep object keys readable.
func HashUserKey(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:16])
}
