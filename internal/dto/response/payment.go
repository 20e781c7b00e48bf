package response

import (
	"time"

	"studio-booking/internal/data/entity"
)

type PaymentResponse struct {
	ID              string               `json:"id"`
	AppointmentID   string               `json:"appointment_id"`
	Method          entity.PaymentMethod `json:"method"`
	Amount          float64              `json:"amount"`
	Status          entity.PaymentState  `json:"status"`
	ProviderRef     *string              `json:"provider_ref,omitempty"`
	ProviderOrderID *string              `json:"provider_order_id,omitempty"`
	PointTerminalID *string              `json:"point_terminal_id,omitempty"`
	CardMode        *string              `json:"card_mode,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
}

// ChargeResponse is returned right after a charge is created on a rail.
// Pix charges carry the QR payload; point charges carry the order id the
// terminal flow polls on.
type ChargeResponse struct {
	Payment       PaymentResponse      `json:"payment"`
	OrderID       string               `json:"order_id,omitempty"`
	QRCode        string               `json:"qr_code,omitempty"`
	QRCodeBase64  string               `json:"qr_code_base64,omitempty"`
	TicketURL     string               `json:"ticket_url,omitempty"`
	ExpiresAt     *time.Time           `json:"expires_at,omitempty"`
	PaymentStatus entity.PaymentStatus `json:"payment_status"`
}

type OrderStatusResponse struct {
	OrderID       string               `json:"order_id"`
	ProviderState string               `json:"provider_state"`
	Payment       PaymentResponse      `json:"payment"`
	PaymentStatus entity.PaymentStatus `json:"payment_status"`
	PaidTotal     float64              `json:"paid_total"`
	Total         float64              `json:"total"`
}

func PaymentToResponse(p *entity.Payment) PaymentResponse {
	return PaymentResponse{
		ID:              p.ID.String(),
		AppointmentID:   p.AppointmentID.String(),
		Method:          p.Method,
		Amount:          p.Amount,
		Status:          p.Status,
		ProviderRef:     p.ProviderRef,
		ProviderOrderID: p.ProviderOrderID,
		PointTerminalID: p.PointTerminalID,
		CardMode:        p.CardMode,
		CreatedAt:       p.CreatedAt,
	}
}
