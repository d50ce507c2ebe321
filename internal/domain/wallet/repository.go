package wallet

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const walletColumns = `id, user_id, account_number, balance, ledger_balance, currency, status, created_at, updated_at`

// Repository owns all balance mutation. Balance writes go through
// CreditTx/DebitTx only; both lock the wallet row for the duration of the
// read-modify-write so concurrent operations on one wallet serialize.
type Repository struct {
	db            *sqlx.DB
	accountPrefix string
}

func NewRepository(db *sqlx.DB, accountPrefix string) *Repository {
	return &Repository{db: db, accountPrefix: accountPrefix}
}

// Ensure returns the user's wallet, creating it on first access.
func (r *Repository) Ensure(ctx context.Context, userID uuid.UUID, currency string) (*Wallet, error) {
	w, err := r.GetByUserID(ctx, userID)
	if err == nil {
		return w, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	// Account numbers are random; retry on the rare collision.
	for attempt := 0; attempt < 5; attempt++ {
		number := generateAccountNumber(r.accountPrefix)
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO wallets (id, user_id, account_number, balance, ledger_balance, currency, status, created_at, updated_at)
			VALUES ($1, $2, $3, 0, 0, $4, $5, now(), now())
			ON CONFLICT (user_id) DO NOTHING
		`, uuid.New(), userID, number, currency, StatusActive)
		if err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code == "23505" && strings.Contains(pqErr.Constraint, "account_number") {
				continue
			}
			return nil, err
		}
		return r.GetByUserID(ctx, userID)
	}
	return nil, ErrNumberExhausted
}

func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Wallet, error) {
	var w Wallet
	err := r.db.GetContext(ctx, &w, `SELECT `+walletColumns+` FROM wallets WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *Repository) GetByUserID(ctx context.Context, userID uuid.UUID) (*Wallet, error) {
	var w Wallet
	err := r.db.GetContext(ctx, &w, `SELECT `+walletColumns+` FROM wallets WHERE user_id = $1`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *Repository) GetByAccountNumber(ctx context.Context, accountNumber string) (*Wallet, error) {
	var w Wallet
	err := r.db.GetContext(ctx, &w, `SELECT `+walletColumns+` FROM wallets WHERE account_number = $1`, accountNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// GetForUpdateTx locks the wallet row for the rest of the transaction.
func (r *Repository) GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*Wallet, error) {
	var w Wallet
	err := tx.GetContext(ctx, &w, `SELECT `+walletColumns+` FROM wallets WHERE id = $1 FOR UPDATE`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// LockPairTx locks two wallets in ascending id order so transfers that
// cross the same pair in opposite directions cannot deadlock.
func (r *Repository) LockPairTx(ctx context.Context, tx *sqlx.Tx, aID, bID uuid.UUID) (*Wallet, *Wallet, error) {
	first, second := aID, bID
	if strings.Compare(bID.String(), aID.String()) < 0 {
		first, second = bID, aID
	}

	w1, err := r.GetForUpdateTx(ctx, tx, first)
	if err != nil {
		return nil, nil, err
	}
	w2, err := r.GetForUpdateTx(ctx, tx, second)
	if err != nil {
		return nil, nil, err
	}

	if w1.ID == aID {
		return w1, w2, nil
	}
	return w2, w1, nil
}

// CreditTx atomically increases the balance and returns the new value.
func (r *Repository) CreditTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}

	w, err := r.GetForUpdateTx(ctx, tx, id)
	if err != nil {
		return 0, err
	}

	next := w.Balance + amount
	if err := r.writeBalance(ctx, tx, id, next); err != nil {
		return 0, err
	}
	return next, nil
}

// DebitTx atomically decreases the balance only if the current balance
// covers the amount; otherwise it fails with ErrInsufficientFunds and
// changes nothing.
func (r *Repository) DebitTx(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}

	w, err := r.GetForUpdateTx(ctx, tx, id)
	if err != nil {
		return 0, err
	}

	if w.Balance < amount {
		return 0, ErrInsufficientFunds
	}

	next := w.Balance - amount
	if err := r.writeBalance(ctx, tx, id, next); err != nil {
		return 0, err
	}
	return next, nil
}

func (r *Repository) writeBalance(ctx context.Context, tx *sqlx.Tx, id uuid.UUID, balance int64) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE wallets SET balance = $1, ledger_balance = $1, updated_at = now() WHERE id = $2
	`, balance, id)
	return err
}

// Credit applies a credit in its own transaction.
func (r *Repository) Credit(ctx context.Context, id uuid.UUID, amount int64) (int64, error) {
	return r.apply(ctx, id, amount, r.CreditTx)
}

// Debit applies a debit in its own transaction.
func (r *Repository) Debit(ctx context.Context, id uuid.UUID, amount int64) (int64, error) {
	return r.apply(ctx, id, amount, r.DebitTx)
}

func (r *Repository) apply(ctx context.Context, id uuid.UUID, amount int64, op func(context.Context, *sqlx.Tx, uuid.UUID, int64) (int64, error)) (int64, error) {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	balance, err := op(ctx, tx, id, amount)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return balance, nil
}
