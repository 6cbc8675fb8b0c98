package intake

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash returns the lowercase hexadecimal SHA-256 digest of data. The
// outline records it so a later outline run can tell whether the notes
// changed.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
