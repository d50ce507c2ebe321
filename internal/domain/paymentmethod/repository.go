package paymentmethod

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

const methodColumns = `id, key, name, kind, enabled, min_amount, max_amount, fee_fixed, fee_percentage, requires_reference, created_at`

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByKey(ctx context.Context, key string) (*Method, error) {
	var m Method
	err := r.db.GetContext(ctx, &m, `SELECT `+methodColumns+` FROM payment_methods WHERE key = $1`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *Repository) ListEnabled(ctx context.Context, kind Kind) ([]*Method, error) {
	methods := []*Method{}
	err := r.db.SelectContext(ctx, &methods, `
		SELECT `+methodColumns+` FROM payment_methods
		WHERE kind = $1 AND enabled = true
		ORDER BY name ASC
	`, kind)
	return methods, err
}
