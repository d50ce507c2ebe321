package authcode

import "errors"

var (
	ErrCodeNotFound        = errors.New("authorization code not found")
	ErrCodeExpired         = errors.New("authorization code expired")
	ErrCodeAlreadyUsed     = errors.New("authorization code already used")
	ErrCodeTypeMismatch    = errors.New("authorization code type mismatch")
	ErrCodeAmountMismatch  = errors.New("authorization code amount mismatch")
	ErrGenerationExhausted = errors.New("code generation exhausted")
	ErrInvalidBulkCount    = errors.New("bulk count must be between 1 and 100")
)
