package user

import "errors"

var (
	ErrNotFound    = errors.New("user not found")
	ErrPinNotSet   = errors.New("transaction pin not set")
	ErrPinMismatch = errors.New("transaction pin mismatch")
	ErrLocked      = errors.New("account is locked")
)
