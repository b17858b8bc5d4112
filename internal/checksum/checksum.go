// Package checksum fingerprints persisted payloads.
package checksum

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// Sum returns the hex-encoded SHA-256 digest of data.
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Matches reports whether sum is the digest of data. An empty sum never
// matches.
func Matches(data []byte, sum string) bool {
	if sum == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(Sum(data)), []byte(sum)) == 1
}
