package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"unicode/utf16"
)

// Digest turns a password into the checksum stored on the user record. It
// must be deterministic. Neither implementation resists offline guessing;
// the checksum only compares submitted and stored passwords.
type Digest func(text string) string

// SHA256Hex is the default digest: SHA-256 rendered as 64 lowercase hex
// characters.
func SHA256Hex(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// DJB2Hex is the fallback digest: the 32-bit djb2 rolling hash over UTF-16
// code units, rendered as 8 zero-padded hex characters. Checksums written by
// clients without SHA-256 support use this form.
func DJB2Hex(text string) string {
	var h uint32 = 5381
	for _, c := range utf16.Encode([]rune(text)) {
		h = (h << 5) + h + uint32(c)
	}
	return fmt.Sprintf("%08x", h)
}
