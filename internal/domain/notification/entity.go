package notification

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Type represents notification type
type Type string

const (
	TypeDepositCompleted  Type = "deposit_completed"
	TypeDepositPending    Type = "deposit_pending"
	TypeWithdrawalPending Type = "withdrawal_pending"
	TypeTransferIn        Type = "transfer_in"
	TypeTransferOut       Type = "transfer_out"
	TypeWirePending       Type = "wire_pending"
	TypeSettled           Type = "transaction_settled"
	TypeRejected          Type = "transaction_rejected"
	TypeReversed          Type = "transaction_reversed"
)

// Notification is an in-app message about a money movement
type Notification struct {
	ID        uuid.UUID       `db:"id" json:"id"`
	UserID    uuid.UUID       `db:"user_id" json:"user_id"`
	Type      Type            `db:"type" json:"type"`
	Title     string          `db:"title" json:"title"`
	Body      sql.NullString  `db:"body" json:"body,omitempty"`
	Data      json.RawMessage `db:"data" json:"data,omitempty"`
	IsRead    bool            `db:"is_read" json:"is_read"`
	ReadAt    sql.NullTime    `db:"read_at" json:"read_at,omitempty"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

// Data links a notification to the movement it describes
type Data struct {
	TransactionID *uuid.UUID `json:"transaction_id,omitempty"`
	Reference     string     `json:"reference,omitempty"`
	Amount        int64      `json:"amount,omitempty"`
}

// SetData encodes data to JSON
func (n *Notification) SetData(data *Data) {
	if data != nil {
		n.Data, _ = json.Marshal(data)
	}
}

// GetData decodes data from JSON
func (n *Notification) GetData() *Data {
	if n.Data == nil {
		return &Data{}
	}
	var d Data
	_ = json.Unmarshal(n.Data, &d)
	return &d
}
