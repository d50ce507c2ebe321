package ledger

import (
	"crypto/rand"
)

// Reference prefixes, one per movement path
const (
	PrefixDeposit    = "DEP"
	PrefixWithdrawal = "WDL"
	PrefixTransfer   = "TRF"
	PrefixWire       = "WIR"
	PrefixReversal   = "REV"
)

const referenceSuffixLength = 10

// NewReference builds a human-readable transaction reference:
// prefix + "-" + 10 random upper alphanumerics. Collision probability is
// negligible at this length; the unique index is the backstop.
func NewReference(prefix string) string {
	const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, referenceSuffixLength)
	_, _ = rand.Read(b)
	for i := range b {
		b[i] = alphabet[int(b[i])%len(alphabet)]
	}
	return prefix + "-" + string(b)
}
