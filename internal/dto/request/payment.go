package request

type PixChargeRequest struct {
	Amount  float64 `json:"amount" validate:"required,gt=0"`
	Attempt int     `json:"attempt" validate:"min=0"`
}

type CardChargeRequest struct {
	Amount          float64 `json:"amount" validate:"required,gt=0"`
	CardToken       string  `json:"card_token" validate:"required"`
	PaymentMethodID string  `json:"payment_method_id" validate:"required"`
	Installments    int     `json:"installments" validate:"min=0,max=12"`
	IssuerID        *string `json:"issuer_id,omitempty"`
	Attempt         int     `json:"attempt" validate:"min=0"`
}

type PointChargeRequest struct {
	Amount     float64 `json:"amount" validate:"required,gt=0"`
	TerminalID string  `json:"terminal_id" validate:"required"`
	CardMode   string  `json:"card_mode" validate:"required,oneof=debit credit"`
	Attempt    int     `json:"attempt" validate:"min=0"`
}

type ManualPaymentRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
	Method string  `json:"method" validate:"required,oneof=cash other"`
}
