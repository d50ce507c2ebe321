package authcode

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/ebuka-odih/site-bk-sub001/internal/domain/ledger"
)

// Code is a single-use, time-boxed authorization token issued by an
// admin. An optional fixed Amount pins the operation amount exactly.
type Code struct {
	ID            uuid.UUID      `db:"id" json:"id"`
	Code          string         `db:"code" json:"code"`
	Type          ledger.Type    `db:"type" json:"type"`
	Amount        sql.NullInt64  `db:"amount" json:"amount,omitempty"`
	ExpiresAt     time.Time      `db:"expires_at" json:"expires_at"`
	IsUsed        bool           `db:"is_used" json:"is_used"`
	UsedBy        uuid.NullUUID  `db:"used_by" json:"used_by,omitempty"`
	UsedAt        sql.NullTime   `db:"used_at" json:"used_at,omitempty"`
	TransactionID uuid.NullUUID  `db:"transaction_id" json:"transaction_id,omitempty"`
	CreatedBy     uuid.UUID      `db:"created_by" json:"created_by"`
	Notes         sql.NullString `db:"notes" json:"notes,omitempty"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
}

// HasFixedAmount reports whether the code pins the operation amount
func (c *Code) HasFixedAmount() bool {
	return c.Amount.Valid && c.Amount.Int64 > 0
}

// IsExpired reports whether the code is past its validity window
func (c *Code) IsExpired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}
