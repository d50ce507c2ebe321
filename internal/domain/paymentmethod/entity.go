package paymentmethod

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Kind separates deposit methods from withdrawal methods
type Kind string

const (
	KindDeposit    Kind = "deposit"
	KindWithdrawal Kind = "withdrawal"
)

// Method is read-only configuration consumed by the deposit and
// withdrawal orchestrators. Amounts and fixed fees are minor units;
// FeePercentage is a percentage of the amount.
type Method struct {
	ID                uuid.UUID     `db:"id" json:"id"`
	Key               string        `db:"key" json:"key"`
	Name              string        `db:"name" json:"name"`
	Kind              Kind          `db:"kind" json:"kind"`
	Enabled           bool          `db:"enabled" json:"enabled"`
	MinAmount         int64         `db:"min_amount" json:"min_amount"`
	MaxAmount         sql.NullInt64 `db:"max_amount" json:"max_amount,omitempty"`
	FeeFixed          int64         `db:"fee_fixed" json:"fee_fixed"`
	FeePercentage     float64       `db:"fee_percentage" json:"fee_percentage"`
	RequiresReference bool          `db:"requires_reference" json:"requires_reference"`
	CreatedAt         time.Time     `db:"created_at" json:"created_at"`
}

// Fee computes the method fee for an amount. A configured fixed fee
// takes precedence over the percentage fee.
func (m *Method) Fee(amount int64) int64 {
	if m.FeeFixed > 0 {
		return m.FeeFixed
	}
	if m.FeePercentage > 0 {
		return int64(float64(amount) * m.FeePercentage / 100)
	}
	return 0
}
