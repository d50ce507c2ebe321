package deposit

// CodeDepositRequest funds the wallet with an admin-issued code. Amount
// is required even for fixed-amount codes; it must match the pinned
// amount exactly.
type CodeDepositRequest struct {
	Code   string `json:"code" validate:"required,min=6,max=32"`
	Amount int64  `json:"amount" validate:"required,gt=0"`
}

// MethodDepositRequest declares an external payment awaiting admin
// confirmation. The wallet is not touched until the entry is approved.
type MethodDepositRequest struct {
	MethodKey        string `json:"method_key" validate:"required,max=64"`
	Amount           int64  `json:"amount" validate:"required,gt=0"`
	PaymentReference string `json:"payment_reference,omitempty" validate:"omitempty,max=128"`
}
