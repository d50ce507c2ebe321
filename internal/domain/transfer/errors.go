package transfer

import "errors"

var (
	ErrRecipientNotFound = errors.New("recipient account not found")
	ErrSelfTransfer      = errors.New("cannot transfer to own account")
)
