package entity

import (
	"github.com/google/uuid"
)

type PaymentMethod string

const (
	PaymentMethodPix   PaymentMethod = "pix"
	PaymentMethodCard  PaymentMethod = "card"
	PaymentMethodCash  PaymentMethod = "cash"
	PaymentMethodOther PaymentMethod = "other"
)

type PaymentState string

const (
	PaymentStatePending PaymentState = "pending"
	PaymentStatePaid    PaymentState = "paid"
	PaymentStateFailed  PaymentState = "failed"
)

// Payment is one attempt/result from a payment rail. ProviderRef is the
// gateway payment id, unique per tenant, and anchors the upsert.
type Payment struct {
	Base
	TenantID        uuid.UUID     `db:"tenant_id"`
	AppointmentID   uuid.UUID     `db:"appointment_id"`
	Method          PaymentMethod `db:"method"`
	Amount          float64       `db:"amount"`
	Status          PaymentState  `db:"status"`
	ProviderRef     *string       `db:"provider_ref"`
	ProviderOrderID *string       `db:"provider_order_id"`
	PointTerminalID *string       `db:"point_terminal_id"`
	CardMode        *string       `db:"card_mode"`
	RawPayload      []byte        `db:"raw_payload"`
}
