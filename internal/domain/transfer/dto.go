package transfer

// InternalRequest moves funds between two wallets in the system,
// addressed by account number.
type InternalRequest struct {
	Pin              string `json:"pin" validate:"required,pin"`
	Code             string `json:"code" validate:"required,min=6,max=32"`
	RecipientAccount string `json:"recipient_account" validate:"required,account_number"`
	Amount           int64  `json:"amount" validate:"required,gt=0"`
	Description      string `json:"description,omitempty" validate:"omitempty,max=256"`
}

// WireRequest sends funds to an external beneficiary. The beneficiary
// is recorded as metadata only and never resolved to a wallet.
type WireRequest struct {
	Pin             string `json:"pin" validate:"required,pin"`
	Code            string `json:"code" validate:"required,min=6,max=32"`
	Amount          int64  `json:"amount" validate:"required,gt=0"`
	BeneficiaryName string `json:"beneficiary_name" validate:"required,max=128"`
	BeneficiaryBank string `json:"beneficiary_bank" validate:"required,max=128"`
	AccountNumber   string `json:"account_number" validate:"required,max=64"`
	RoutingNumber   string `json:"routing_number,omitempty" validate:"omitempty,max=32"`
	SwiftCode       string `json:"swift_code,omitempty" validate:"omitempty,max=16"`
	Description     string `json:"description,omitempty" validate:"omitempty,max=256"`
}
