package user

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Role values
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// User represents an account holder
type User struct {
	ID        uuid.UUID      `db:"id" json:"id"`
	Email     string         `db:"email" json:"email"`
	FullName  string         `db:"full_name" json:"full_name"`
	Role      string         `db:"role" json:"role"`
	PinHash   sql.NullString `db:"pin_hash" json:"-"`
	IsLocked  bool           `db:"is_locked" json:"is_locked"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt time.Time      `db:"updated_at" json:"updated_at"`
}

// HasPin reports whether the user has set a transaction PIN
func (u *User) HasPin() bool {
	return u.PinHash.Valid && u.PinHash.String != ""
}
