// Package randid mints random document identifiers.
package randid

import (
	"crypto/rand"
	"strings"
)

// Alphabet is the set of characters Generate draws from.
const Alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Generate returns n characters from Alphabet. It panics if the system's
// random source fails.
func Generate(n int) string {
	if n <= 0 {
		return ""
	}

	// Bytes at or above limit are rejected so every character is equally likely.
	limit := byte(256 - 256%len(Alphabet))

	var sb strings.Builder
	sb.Grow(n)
	buf := make([]byte, n)
	for sb.Len() < n {
		if _, err := rand.Read(buf); err != nil {
			panic("randid: " + err.Error())
		}
		for _, c := range buf {
			if c >= limit {
				continue
			}
			sb.WriteByte(Alphabet[int(c)%len(Alphabet)])
			if sb.Len() == n {
				break
			}
		}
	}
	return sb.String()
}
