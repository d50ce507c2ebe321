package authcode

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const codeColumns = `id, code, type, amount, expires_at, is_used, used_by, used_at, transaction_id, created_by, notes, created_at`

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// Insert stores a new code, regenerating on the rare collision
func (r *Repository) Insert(ctx context.Context, c *Code) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now()

	for attempt := 0; attempt < 5; attempt++ {
		if c.Code == "" {
			c.Code = generateCode()
		}
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO authorization_codes (id, code, type, amount, expires_at, is_used, created_by, notes, created_at)
			VALUES ($1, $2, $3, $4, $5, false, $6, $7, $8)
		`, c.ID, c.Code, c.Type, c.Amount, c.ExpiresAt, c.CreatedBy, c.Notes, c.CreatedAt)
		if err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code == "23505" {
				c.Code = ""
				continue
			}
			return err
		}
		return nil
	}
	return ErrGenerationExhausted
}

func (r *Repository) GetByCode(ctx context.Context, code string) (*Code, error) {
	var c Code
	err := r.db.GetContext(ctx, &c, `SELECT `+codeColumns+` FROM authorization_codes WHERE code = $1`, Normalize(code))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCodeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetByCodeForUpdateTx locks the code row; concurrent consumers of the
// same code serialize here and the loser sees is_used already set.
func (r *Repository) GetByCodeForUpdateTx(ctx context.Context, tx *sqlx.Tx, code string) (*Code, error) {
	var c Code
	err := tx.GetContext(ctx, &c, `SELECT `+codeColumns+` FROM authorization_codes WHERE code = $1 FOR UPDATE`, Normalize(code))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCodeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// MarkUsedTx consumes the code, recording who spent it and on which
// transaction. The caller holds the row lock.
func (r *Repository) MarkUsedTx(ctx context.Context, tx *sqlx.Tx, codeID, usedBy, transactionID uuid.UUID) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE authorization_codes
		SET is_used = true, used_by = $1, used_at = now(), transaction_id = $2
		WHERE id = $3 AND is_used = false
	`, usedBy, transactionID, codeID)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrCodeAlreadyUsed
	}
	return nil
}

func (r *Repository) List(ctx context.Context, limit, offset int) ([]*Code, error) {
	codes := []*Code{}
	err := r.db.SelectContext(ctx, &codes, `
		SELECT `+codeColumns+` FROM authorization_codes
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	return codes, err
}

func (r *Repository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM authorization_codes`)
	return count, err
}

// PurgeBefore removes spent codes and long-expired unused codes past the
// retention window. Returns the number of rows removed.
func (r *Repository) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM authorization_codes
		WHERE (is_used = true AND used_at < $1)
		   OR (is_used = false AND expires_at < $1)
	`, cutoff)
	if err != nil {
		return 0, err
	}
	rows, _ := res.RowsAffected()
	return rows, nil
}
