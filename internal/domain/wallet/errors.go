package wallet

import "errors"

var (
	ErrNotFound          = errors.New("wallet not found")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInsufficientFunds = errors.New("insufficient wallet balance")
	ErrNotActive         = errors.New("wallet is not active")
	ErrNumberExhausted   = errors.New("account number generation exhausted")
)
