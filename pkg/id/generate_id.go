package id

import (
	"crypto/rand"
	"encoding/hex"
)

// NewPrincipal returns a 32-char lowercase-hex identity, the format carried
// in Ax-Principal-Id and Ax-Request-Id headers (no separators/prefixes).
func NewPrincipal() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
