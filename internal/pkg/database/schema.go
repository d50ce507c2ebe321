package database

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// EnsureSchema creates the tables on a fresh database. Statements are
// idempotent so startup is safe against an already-provisioned store.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		full_name TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'customer',
		pin_hash TEXT,
		is_locked BOOLEAN NOT NULL DEFAULT false,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS wallets (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL UNIQUE REFERENCES users(id),
		account_number TEXT NOT NULL UNIQUE,
		balance BIGINT NOT NULL DEFAULT 0,
		ledger_balance BIGINT NOT NULL DEFAULT 0,
		currency TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'active',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS transactions (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id),
		recipient_id UUID REFERENCES users(id),
		type TEXT NOT NULL,
		amount BIGINT NOT NULL CHECK (amount > 0),
		fee BIGINT NOT NULL DEFAULT 0 CHECK (fee >= 0),
		reference TEXT NOT NULL UNIQUE,
		status TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		metadata JSONB,
		reversed_transaction_id UUID REFERENCES transactions(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_user ON transactions (user_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_recipient ON transactions (recipient_id) WHERE recipient_id IS NOT NULL`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_status ON transactions (status, created_at)`,

	`CREATE TABLE IF NOT EXISTS authorization_codes (
		id UUID PRIMARY KEY,
		code TEXT NOT NULL UNIQUE,
		type TEXT NOT NULL,
		amount BIGINT CHECK (amount IS NULL OR amount > 0),
		expires_at TIMESTAMPTZ NOT NULL,
		is_used BOOLEAN NOT NULL DEFAULT false,
		used_by UUID REFERENCES users(id),
		used_at TIMESTAMPTZ,
		transaction_id UUID REFERENCES transactions(id),
		created_by UUID NOT NULL REFERENCES users(id),
		notes TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_authorization_codes_expiry ON authorization_codes (expires_at) WHERE is_used = false`,

	`CREATE TABLE IF NOT EXISTS payment_methods (
		id UUID PRIMARY KEY,
		key TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		kind TEXT NOT NULL,
		enabled BOOLEAN NOT NULL DEFAULT true,
		min_amount BIGINT NOT NULL DEFAULT 0,
		max_amount BIGINT,
		fee_fixed BIGINT NOT NULL DEFAULT 0,
		fee_percentage DOUBLE PRECISION NOT NULL DEFAULT 0,
		requires_reference BOOLEAN NOT NULL DEFAULT false,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,

	`CREATE TABLE IF NOT EXISTS notifications (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id),
		type TEXT NOT NULL,
		title TEXT NOT NULL,
		body TEXT,
		data JSONB,
		is_read BOOLEAN NOT NULL DEFAULT false,
		read_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications (user_id, created_at DESC)`,

	`CREATE TABLE IF NOT EXISTS audit_logs (
		id UUID PRIMARY KEY,
		actor_id UUID,
		event TEXT NOT NULL,
		subject_type TEXT NOT NULL,
		subject_id TEXT NOT NULL,
		details JSONB,
		ip TEXT,
		user_agent TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_audit_logs_subject ON audit_logs (subject_type, subject_id)`,
}
