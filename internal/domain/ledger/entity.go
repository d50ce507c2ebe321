package ledger

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeDeposit    Type = "deposit"
	TypeWithdrawal Type = "withdrawal"
	TypeTransfer   Type = "transfer"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
)

// ValidTransition reports whether a status change is legal. Completed
// entries never change status; reversal spawns a linked entry instead.
func ValidTransition(from, to Status) bool {
	if from != StatusPending {
		return false
	}
	switch to {
	case StatusCompleted, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

// Transaction is one money movement. Amount is always positive minor
// units; Fee is charged on top of Amount where applicable.
type Transaction struct {
	ID                    uuid.UUID       `db:"id" json:"id"`
	UserID                uuid.UUID       `db:"user_id" json:"user_id"`
	RecipientID           uuid.NullUUID   `db:"recipient_id" json:"recipient_id,omitempty"`
	Type                  Type            `db:"type" json:"type"`
	Amount                int64           `db:"amount" json:"amount"`
	Fee                   int64           `db:"fee" json:"fee"`
	Reference             string          `db:"reference" json:"reference"`
	Status                Status          `db:"status" json:"status"`
	Description           string          `db:"description" json:"description"`
	Metadata              json.RawMessage `db:"metadata" json:"metadata,omitempty"`
	ReversedTransactionID uuid.NullUUID   `db:"reversed_transaction_id" json:"reversed_transaction_id,omitempty"`
	CreatedAt             time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt             time.Time       `db:"updated_at" json:"updated_at"`
}

// IsReversed reports whether the entry has already spawned a reversal
func (t *Transaction) IsReversed() bool {
	return t.ReversedTransactionID.Valid
}

// Metadata is a typed per-path extension record. Exactly one branch is
// set by the orchestrator that created the entry; readers switch on the
// non-nil branch instead of digging through an open map.
type Metadata struct {
	Deposit    *DepositMetadata    `json:"deposit,omitempty"`
	Withdrawal *WithdrawalMetadata `json:"withdrawal,omitempty"`
	Wire       *WireMetadata       `json:"wire,omitempty"`
	Reversal   *ReversalMetadata   `json:"reversal,omitempty"`
	Settlement *SettlementMetadata `json:"settlement,omitempty"`
}

// DepositMetadata captures the payment-method path inputs
type DepositMetadata struct {
	MethodKey        string `json:"method_key"`
	PaymentReference string `json:"payment_reference,omitempty"`
}

// WithdrawalMetadata captures the payout method and destination
type WithdrawalMetadata struct {
	MethodKey   string `json:"method_key"`
	Destination string `json:"destination,omitempty"`
}

// WireMetadata captures the external beneficiary; the system never
// resolves it to an internal wallet.
type WireMetadata struct {
	BeneficiaryName string `json:"beneficiary_name"`
	BeneficiaryBank string `json:"beneficiary_bank"`
	AccountNumber   string `json:"account_number"`
	RoutingNumber   string `json:"routing_number,omitempty"`
	SwiftCode       string `json:"swift_code,omitempty"`
}

// ReversalMetadata links a reversal entry back to its original
type ReversalMetadata struct {
	OriginalReference string `json:"original_reference"`
	Reason            string `json:"reason"`
}

// SettlementMetadata records the admin settlement outcome
type SettlementMetadata struct {
	SettledBy uuid.UUID `json:"settled_by"`
	Outcome   string    `json:"outcome"`
	Reason    string    `json:"reason,omitempty"`
}

// SetMetadata encodes metadata to JSON
func (t *Transaction) SetMetadata(m *Metadata) {
	if m != nil {
		t.Metadata, _ = json.Marshal(m)
	}
}

// GetMetadata decodes metadata from JSON
func (t *Transaction) GetMetadata() *Metadata {
	if t.Metadata == nil {
		return &Metadata{}
	}
	var m Metadata
	_ = json.Unmarshal(t.Metadata, &m)
	return &m
}
