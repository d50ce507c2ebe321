package withdrawal

// Request is a withdrawal request. The amount plus the method fee is
// debited immediately; the entry then waits in the settlement queue.
type Request struct {
	MethodKey   string `json:"method_key" validate:"required,max=64"`
	Amount      int64  `json:"amount" validate:"required,gt=0"`
	Destination string `json:"destination,omitempty" validate:"omitempty,max=256"`
}
