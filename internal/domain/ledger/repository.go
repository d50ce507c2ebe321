package ledger

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const transactionColumns = `id, user_id, recipient_id, type, amount, fee, reference, status, description, metadata, reversed_transaction_id, created_at, updated_at`

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// InsertTx appends a new entry inside the caller's transaction
func (r *Repository) InsertTx(ctx context.Context, tx *sqlx.Tx, t *Transaction) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now

	_, err := tx.ExecContext(ctx, `
		INSERT INTO transactions (id, user_id, recipient_id, type, amount, fee, reference, status, description, metadata, reversed_transaction_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, t.ID, t.UserID, t.RecipientID, t.Type, t.Amount, t.Fee, t.Reference, t.Status, t.Description, t.Metadata, t.ReversedTransactionID, t.CreatedAt, t.UpdatedAt)
	return err
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Transaction, error) {
	var t Transaction
	err := r.db.GetContext(ctx, &t, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *Repository) GetByReference(ctx context.Context, reference string) (*Transaction, error) {
	var t Transaction
	err := r.db.GetContext(ctx, &t, `SELECT `+transactionColumns+` FROM transactions WHERE reference = $1`, reference)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetForUpdateTx locks the entry row so settlement decisions serialize
func (r *Repository) GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*Transaction, error) {
	var t Transaction
	err := tx.GetContext(ctx, &t, `SELECT `+transactionColumns+` FROM transactions WHERE id = $1 FOR UPDATE`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// UpdateStatusTx applies a legal status transition. The caller holds the
// row lock; illegal transitions fail with ErrInvalidTransition.
func (r *Repository) UpdateStatusTx(ctx context.Context, tx *sqlx.Tx, t *Transaction, to Status) error {
	if !ValidTransition(t.Status, to) {
		return ErrInvalidTransition
	}

	_, err := tx.ExecContext(ctx, `
		UPDATE transactions SET status = $1, updated_at = now() WHERE id = $2
	`, to, t.ID)
	if err != nil {
		return err
	}
	t.Status = to
	return nil
}

// UpdateMetadataTx rewrites the metadata record
func (r *Repository) UpdateMetadataTx(ctx context.Context, tx *sqlx.Tx, t *Transaction) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE transactions SET metadata = $1, updated_at = now() WHERE id = $2
	`, t.Metadata, t.ID)
	return err
}

// LinkReversalTx marks the original entry as reversed by pointing it at
// the reversal entry.
func (r *Repository) LinkReversalTx(ctx context.Context, tx *sqlx.Tx, originalID, reversalID uuid.UUID) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE transactions SET reversed_transaction_id = $1, updated_at = now() WHERE id = $2
	`, reversalID, originalID)
	return err
}

// ListByUser returns movements the user initiated or received
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Transaction, error) {
	txns := []*Transaction{}
	err := r.db.SelectContext(ctx, &txns, `
		SELECT `+transactionColumns+` FROM transactions
		WHERE user_id = $1 OR recipient_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, userID, limit, offset)
	return txns, err
}

func (r *Repository) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM transactions WHERE user_id = $1 OR recipient_id = $1
	`, userID)
	return count, err
}

// ListByStatus feeds the admin settlement queue
func (r *Repository) ListByStatus(ctx context.Context, status Status, limit, offset int) ([]*Transaction, error) {
	txns := []*Transaction{}
	err := r.db.SelectContext(ctx, &txns, `
		SELECT `+transactionColumns+` FROM transactions
		WHERE status = $1
		ORDER BY created_at ASC
		LIMIT $2 OFFSET $3
	`, status, limit, offset)
	return txns, err
}

func (r *Repository) CountByStatus(ctx context.Context, status Status) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM transactions WHERE status = $1`, status)
	return count, err
}

// CountPendingBefore counts pending entries older than the cutoff
func (r *Repository) CountPendingBefore(ctx context.Context, cutoff time.Time) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM transactions WHERE status = $1 AND created_at < $2
	`, StatusPending, cutoff)
	return count, err
}
