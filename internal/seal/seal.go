// Package seal produces ceremonial seal hashes. A seal is a SHA-256 digest of
// concatenated record fields, used as cosmetic proof text only; it carries no
// security property.
package seal

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const fieldSeparator = "::"

// Compute returns the hex seal over the given fields, in order.
func Compute(fields ...string) string {
	h := sha256.Sum256([]byte(strings.Join(fields, fieldSeparator)))
	return hex.EncodeToString(h[:])
}

// Verify recomputes the seal over fields and compares it to the stored one.
func Verify(stored string, fields ...string) bool {
	return stored == Compute(fields...)
}

// Short returns the first 16 hex characters, used for display and serials.
func Short(full string) string {
	if len(full) <= 16 {
		return full
	}
	return full[:16]
}
