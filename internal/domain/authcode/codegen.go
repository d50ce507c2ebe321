package authcode

import (
	"crypto/rand"
	"strings"
)

const codeLength = 12

// codeAlphabet omits 0/O/1/I so codes survive being read over the phone
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// generateCode produces a random human-enterable code. Uniqueness is
// enforced by the database; callers retry on collision.
func generateCode() string {
	b := make([]byte, codeLength)
	_, _ = rand.Read(b)
	for i := range b {
		b[i] = codeAlphabet[int(b[i])%len(codeAlphabet)]
	}
	return string(b)
}

// Normalize upper-cases user input and strips separators people type
// when copying a code.
func Normalize(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	code = strings.ReplaceAll(code, "-", "")
	code = strings.ReplaceAll(code, " ", "")
	return code
}
