package wallet

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusActive Status = "active"
	StatusFrozen Status = "frozen"
	StatusClosed Status = "closed"
)

// Wallet holds a single-currency balance in minor units (cents).
// LedgerBalance mirrors Balance on every mutation; it is reserved for a
// future hold/pending-funds split.
type Wallet struct {
	ID            uuid.UUID `db:"id" json:"id"`
	UserID        uuid.UUID `db:"user_id" json:"user_id"`
	AccountNumber string    `db:"account_number" json:"account_number"`
	Balance       int64     `db:"balance" json:"balance"`
	LedgerBalance int64     `db:"ledger_balance" json:"ledger_balance"`
	Currency      string    `db:"currency" json:"currency"`
	Status        Status    `db:"status" json:"status"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// IsActive reports whether the wallet can move money
func (w *Wallet) IsActive() bool {
	return w.Status == StatusActive
}
