package entity

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusPending          AppointmentStatus = "pending"
	AppointmentStatusConfirmed        AppointmentStatus = "confirmed"
	AppointmentStatusInProgress       AppointmentStatus = "in_progress"
	AppointmentStatusCompleted        AppointmentStatus = "completed"
	AppointmentStatusCanceledByClient AppointmentStatus = "canceled_by_client"
	AppointmentStatusCanceledByStudio AppointmentStatus = "canceled_by_studio"
	AppointmentStatusNoShow           AppointmentStatus = "no_show"
)

// PaymentStatus is the appointment-level aggregate, derived by the
// reconciliation reducer. Payment rows use PaymentState.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPartial  PaymentStatus = "partial"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusWaived   PaymentStatus = "waived"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

type TimerStatus string

const (
	TimerStatusIdle     TimerStatus = "idle"
	TimerStatusRunning  TimerStatus = "running"
	TimerStatusPaused   TimerStatus = "paused"
	TimerStatusFinished TimerStatus = "finished"
)

type Appointment struct {
	Base
	TenantID             uuid.UUID         `db:"tenant_id"`
	ClientID             uuid.UUID         `db:"client_id"`
	ServiceID            uuid.UUID         `db:"service_id"`
	StartAt              time.Time         `db:"start_at"`
	TotalDurationMinutes int               `db:"total_duration_minutes"`
	Status               AppointmentStatus `db:"status"`
	PaymentStatus        PaymentStatus     `db:"payment_status"`
	Price                float64           `db:"price"`
	PriceOverride        *float64          `db:"price_override"`
	IsHomeVisit          bool              `db:"is_home_visit"`
	DisplacementFee      *float64          `db:"displacement_fee"`
	DisplacementKm       *float64          `db:"displacement_km"`

	TimerStatus        TimerStatus `db:"timer_status"`
	TimerStartedAt     *time.Time  `db:"timer_started_at"`
	TimerPausedAt      *time.Time  `db:"timer_paused_at"`
	PausedTotalSeconds int         `db:"paused_total_seconds"`
	PlannedSeconds     int         `db:"planned_seconds"`
	ActualSeconds      *int        `db:"actual_seconds"`
}

// IsCanceled reports whether the appointment no longer occupies its slot.
func (a *Appointment) IsCanceled() bool {
	return a.Status == AppointmentStatusCanceledByClient || a.Status == AppointmentStatusCanceledByStudio
}

// EffectivePrice returns the override when one is set.
func (a *Appointment) EffectivePrice() float64 {
	if a.PriceOverride != nil {
		return *a.PriceOverride
	}
	return a.Price
}
