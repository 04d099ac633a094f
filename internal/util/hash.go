package util

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashKey returns the hex sha256 of parts joined by ":".
func HashKey(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, ":")))
	return hex.EncodeToString(sum[:])
}
