package entity

import (
	"time"

	"github.com/google/uuid"
)

type DiscountType string

const (
	DiscountTypeValue DiscountType = "value"
	DiscountTypePct   DiscountType = "pct"
)

// Checkout is the priced, discountable representation of one appointment's
// charge. Totals are always recomputed, never entered directly.
type Checkout struct {
	Base
	TenantID       uuid.UUID     `db:"tenant_id"`
	AppointmentID  uuid.UUID     `db:"appointment_id"`
	Subtotal       float64       `db:"subtotal"`
	Total          float64       `db:"total"`
	DiscountType   *DiscountType `db:"discount_type"`
	DiscountValue  *float64      `db:"discount_value"`
	DiscountReason *string       `db:"discount_reason"`
	ConfirmedAt    *time.Time    `db:"confirmed_at"`
}
