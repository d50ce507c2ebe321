package wallet

import (
	"crypto/rand"
)

const randomDigits = 8

// generateAccountNumber produces prefix + 8 random digits. Uniqueness is
// enforced by the database; callers retry on collision.
func generateAccountNumber(prefix string) string {
	const digits = "0123456789"
	b := make([]byte, randomDigits)
	_, _ = rand.Read(b)
	for i := range b {
		b[i] = digits[int(b[i])%len(digits)]
	}
	return prefix + string(b)
}
