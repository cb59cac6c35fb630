// Package checksum provides content hashing for ETag-style post versioning.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
)

// Sum returns the hex-encoded SHA-256 checksum of data.
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// ETag returns the checksum of data in quoted ETag header form.
func ETag(data []byte) string {
	return `"` + Sum(data) + `"`
}
