package ledger

import "errors"

var (
	ErrNotFound          = errors.New("transaction not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrNotPending        = errors.New("transaction is not pending")
	ErrNotCompleted      = errors.New("transaction is not completed")
	ErrAlreadyReversed   = errors.New("transaction already reversed")
)
