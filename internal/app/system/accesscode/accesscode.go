// Package accesscode generates the shared join codes handed out by
// organization admins.
package accesscode

import (
	"crypto/rand"
	"fmt"
)

// Length is the number of characters in a generated code.
const Length = 7

// alphabet matches what students are used to typing: lowercase letters
// and digits, no ambiguity handling.
const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// New returns a random join code. Uniqueness is enforced by the sparse
// unique index on organizations.access_code, not here; callers retry on
// a duplicate-key error.
func New() (string, error) {
	buf := make([]byte, Length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("access code: %w", err)
	}
	for i, b := range buf {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}
	return string(buf), nil
}
