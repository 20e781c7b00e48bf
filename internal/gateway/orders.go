package gateway

import (
	"context"
	"fmt"
	"net/http"
)

const (
	RailPix   = "pix"
	RailCard  = "card"
	RailPoint = "point"
)

type PixOrderInput struct {
	AppointmentID string
	Amount        float64
	PayerEmail    string
	PayerName     string
	PayerDocument string
	Attempt       int
}

type CardOrderInput struct {
	AppointmentID   string
	Amount          float64
	Token           string
	PaymentMethodID string
	IssuerID        string
	Installments    int
	PayerEmail      string
	PayerDocument   string
	Attempt         int
}

type PointOrderInput struct {
	AppointmentID string
	Amount        float64
	TerminalID    string
	CardMode      string // debit|credit
	Attempt       int
}

type payerPayload struct {
	Email     string `json:"email,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	Identification *struct {
		Type   string `json:"type"`
		Number string `json:"number"`
	} `json:"identification,omitempty"`
}

type transactionPayload struct {
	Payments []map[string]any `json:"payments"`
}

type createOrderRequest struct {
	Type              string              `json:"type"`
	ExternalReference string              `json:"external_reference"`
	TotalAmount       string              `json:"total_amount"`
	Payer             *payerPayload       `json:"payer,omitempty"`
	Config            map[string]any      `json:"config,omitempty"`
	Transactions      *transactionPayload `json:"transactions"`
}

// CreatePixOrder creates a bank-transfer order and returns its renderable
// code plus expiry.
func (c *Client) CreatePixOrder(ctx context.Context, input PixOrderInput) (*Order, error) {
	key := IdempotencyKey(RailPix, input.AppointmentID,
		[]string{input.PayerEmail, input.PayerDocument}, input.Amount, input.Attempt)

	req := createOrderRequest{
		Type:              "online",
		ExternalReference: input.AppointmentID,
		TotalAmount:       formatAmount(input.Amount),
		Transactions: &transactionPayload{
			Payments: []map[string]any{{
				"amount": formatAmount(input.Amount),
				"payment_method": map[string]any{
					"id":   "pix",
					"type": "bank_transfer",
				},
			}},
		},
	}

	if input.PayerEmail != "" || input.PayerName != "" || input.PayerDocument != "" {
		payer := &payerPayload{
			Email:     input.PayerEmail,
			FirstName: input.PayerName,
		}
		if input.PayerDocument != "" {
			payer.Identification = &struct {
				Type   string `json:"type"`
				Number string `json:"number"`
			}{Type: "CPF", Number: input.PayerDocument}
		}
		req.Payer = payer
	}

	return c.do(ctx, http.MethodPost, "/v1/orders", key, req)
}

// CreateCardOrder creates an online card order carrying a single-use token.
func (c *Client) CreateCardOrder(ctx context.Context, input CardOrderInput) (*Order, error) {
	key := IdempotencyKey(RailCard, input.AppointmentID,
		[]string{input.Token, input.PaymentMethodID, fmt.Sprintf("%d", input.Installments)},
		input.Amount, input.Attempt)

	installments := input.Installments
	if installments <= 0 {
		installments = 1
	}

	paymentMethod := map[string]any{
		"id":           input.PaymentMethodID,
		"type":         "credit_card",
		"token":        input.Token,
		"installments": installments,
	}
	if input.IssuerID != "" {
		paymentMethod["issuer_id"] = input.IssuerID
	}

	req := createOrderRequest{
		Type:              "online",
		ExternalReference: input.AppointmentID,
		TotalAmount:       formatAmount(input.Amount),
		Transactions: &transactionPayload{
			Payments: []map[string]any{{
				"amount":         formatAmount(input.Amount),
				"payment_method": paymentMethod,
			}},
		},
	}

	if input.PayerEmail != "" {
		req.Payer = &payerPayload{Email: input.PayerEmail}
	}

	return c.do(ctx, http.MethodPost, "/v1/orders", key, req)
}

// CreatePointOrder dispatches a charge to a physical terminal. The terminal
// handles the card interaction out-of-band; the result arrives via polling.
func (c *Client) CreatePointOrder(ctx context.Context, input PointOrderInput) (*Order, error) {
	key := IdempotencyKey(RailPoint, input.AppointmentID,
		[]string{input.TerminalID, input.CardMode}, input.Amount, input.Attempt)

	methodType := "credit_card"
	if input.CardMode == "debit" {
		methodType = "debit_card"
	}

	req := createOrderRequest{
		Type:              "point",
		ExternalReference: input.AppointmentID,
		TotalAmount:       formatAmount(input.Amount),
		Config: map[string]any{
			"point": map[string]any{
				"terminal_id": input.TerminalID,
			},
		},
		Transactions: &transactionPayload{
			Payments: []map[string]any{{
				"amount": formatAmount(input.Amount),
				"payment_method": map[string]any{
					"type": methodType,
				},
			}},
		},
	}

	return c.do(ctx, http.MethodPost, "/v1/orders", key, req)
}

// GetOrder reads the current provider state of one order.
func (c *Client) GetOrder(ctx context.Context, orderID string) (*Order, error) {
	if orderID == "" {
		return nil, newConfigError("order id is required")
	}
	return c.do(ctx, http.MethodGet, "/v1/orders/"+orderID, "", nil)
}

func formatAmount(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}
