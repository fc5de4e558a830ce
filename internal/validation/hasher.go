package validation

import (
	"crypto/sha256"
	"encoding/hex"
)

// ContentDigest returns the SHA-256 of the raw file bytes as lowercase hex.
// Two uploads are duplicates only if their bytes are identical; we never
// normalize content before hashing.
func ContentDigest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
