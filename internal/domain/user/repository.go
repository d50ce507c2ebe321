package user

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	var u User
	err := r.db.GetContext(ctx, &u, `
		SELECT id, email, full_name, role, pin_hash, is_locked, created_at, updated_at
		FROM users WHERE id = $1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.db.GetContext(ctx, &u, `
		SELECT id, email, full_name, role, pin_hash, is_locked, created_at, updated_at
		FROM users WHERE email = $1
	`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repository) Create(ctx context.Context, u *User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, email, full_name, role, pin_hash, is_locked, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, u.ID, u.Email, u.FullName, u.Role, u.PinHash, u.IsLocked, u.CreatedAt, u.UpdatedAt)
	return err
}

func (r *Repository) SetPinHash(ctx context.Context, id uuid.UUID, pinHash string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET pin_hash = $1, updated_at = now() WHERE id = $2
	`, pinHash, id)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) SetLocked(ctx context.Context, id uuid.UUID, locked bool) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET is_locked = $1, updated_at = now() WHERE id = $2
	`, locked, id)
	if err != nil {
		return err
	}
	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}
