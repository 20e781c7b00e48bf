package gateway

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Status is the provider status collapsed into the three states the rest of
// the system reasons about.
type Status string

const (
	StatusPaid    Status = "paid"
	StatusFailed  Status = "failed"
	StatusPending Status = "pending"
)

// MapProviderStatus collapses the provider's status vocabulary. Anything
// unknown (including pending/in_process) stays pending.
func MapProviderStatus(providerStatus string) Status {
	switch providerStatus {
	case "approved", "processed", "accredited", "partially_refunded":
		return StatusPaid
	case "rejected", "cancelled", "canceled", "charged_back", "failed", "refunded":
		return StatusFailed
	default:
		return StatusPending
	}
}

// Order is the canonical record extracted from a provider response.
type Order struct {
	OrderID           string
	PaymentID         string
	ExternalReference string
	ProviderStatus    string
	StatusDetail      string
	Status            Status
	Amount            float64
	TerminalID        string
	PaymentMethodID   string
	Installments      int
	TicketURL         string
	QRCode            string
	QRCodeBase64      string
	CreatedAt         time.Time
	ExpiresAt         time.Time
}

type orderPayload struct {
	ID                string `json:"id"`
	ExternalReference string `json:"external_reference"`
	Status            string `json:"status"`
	StatusDetail      string `json:"status_detail"`
	TotalAmount       string `json:"total_amount"`
	CreatedDate       string `json:"created_date"`
	Type              string `json:"type"`

	Config *struct {
		Point *struct {
			TerminalID string `json:"terminal_id"`
		} `json:"point"`
	} `json:"config"`

	Transactions *struct {
		Payments []struct {
			ID            string `json:"id"`
			Amount        string `json:"amount"`
			Status        string `json:"status"`
			StatusDetail  string `json:"status_detail"`
			PaymentMethod struct {
				ID             string `json:"id"`
				Type           string `json:"type"`
				Installments   int    `json:"installments"`
				TicketURL      string `json:"ticket_url"`
				QRCode         string `json:"qr_code"`
				QRCodeBase64   string `json:"qr_code_base64"`
				ExpirationDate string `json:"expiration_date"`
			} `json:"payment_method"`
		} `json:"payments"`
	} `json:"transactions"`
}

// decodeOrder accepts either a top-level order object or one wrapped in a
// "data" envelope and normalizes it into an Order.
func decodeOrder(body []byte) (*Order, error) {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil &&
		len(envelope.Data) > 0 && string(envelope.Data) != "null" {
		body = envelope.Data
	}

	var payload orderPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode order payload: %w", err)
	}

	if payload.ID == "" {
		return nil, fmt.Errorf("order payload has no id")
	}

	order := &Order{
		OrderID:           payload.ID,
		ExternalReference: payload.ExternalReference,
		ProviderStatus:    payload.Status,
		StatusDetail:      payload.StatusDetail,
		Status:            MapProviderStatus(payload.Status),
		Amount:            parseAmount(payload.TotalAmount),
		CreatedAt:         parseProviderTime(payload.CreatedDate),
	}

	if payload.Config != nil && payload.Config.Point != nil {
		order.TerminalID = payload.Config.Point.TerminalID
	}

	if payload.Transactions != nil && len(payload.Transactions.Payments) > 0 {
		p := payload.Transactions.Payments[0]
		order.PaymentID = p.ID
		order.PaymentMethodID = p.PaymentMethod.ID
		order.Installments = p.PaymentMethod.Installments
		order.TicketURL = p.PaymentMethod.TicketURL
		order.QRCode = p.PaymentMethod.QRCode
		order.QRCodeBase64 = p.PaymentMethod.QRCodeBase64
		order.ExpiresAt = parseProviderTime(p.PaymentMethod.ExpirationDate)

		if p.Amount != "" {
			order.Amount = parseAmount(p.Amount)
		}
		// Payment-level status is more specific when present.
		if p.Status != "" {
			order.ProviderStatus = p.Status
			order.Status = MapProviderStatus(p.Status)
		}
		if p.StatusDetail != "" {
			order.StatusDetail = p.StatusDetail
		}
	}

	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	// Transfer codes without a provider expiry default to 24h after creation.
	if order.ExpiresAt.IsZero() {
		order.ExpiresAt = order.CreatedAt.Add(24 * time.Hour)
	}

	return order, nil
}

func parseAmount(raw string) float64 {
	if raw == "" {
		return 0
	}
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return amount
}

func parseProviderTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05.000-07:00"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}
