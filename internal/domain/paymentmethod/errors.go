package paymentmethod

import "errors"

var (
	ErrNotFound          = errors.New("payment method not found")
	ErrDisabled          = errors.New("payment method disabled")
	ErrBelowMinimum      = errors.New("amount below method minimum")
	ErrAboveMaximum      = errors.New("amount above method maximum")
	ErrReferenceRequired = errors.New("payment reference required")
)
