package response

import (
	"time"

	"studio-booking/internal/data/entity"
)

type AppointmentResponse struct {
	ID                   string                   `json:"id"`
	ClientID             string                   `json:"client_id"`
	ServiceID            string                   `json:"service_id"`
	StartAt              time.Time                `json:"start_at"`
	TotalDurationMinutes int                      `json:"total_duration_minutes"`
	Status               entity.AppointmentStatus `json:"status"`
	PaymentStatus        entity.PaymentStatus     `json:"payment_status"`
	Price                float64                  `json:"price"`
	PriceOverride        *float64                 `json:"price_override,omitempty"`
	IsHomeVisit          bool                     `json:"is_home_visit"`
	DisplacementFee      *float64                 `json:"displacement_fee,omitempty"`
	DisplacementKm       *float64                 `json:"displacement_km,omitempty"`
	TimerStatus          entity.TimerStatus       `json:"timer_status"`
	CreatedAt            time.Time                `json:"created_at"`
}

type AppointmentDetailResponse struct {
	AppointmentResponse
	Checkout *CheckoutResponse `json:"checkout,omitempty"`
	Payments []PaymentResponse `json:"payments"`
}

type TimerResponse struct {
	AppointmentID      string             `json:"appointment_id"`
	TimerStatus        entity.TimerStatus `json:"timer_status"`
	StartedAt          *time.Time         `json:"started_at,omitempty"`
	PausedAt           *time.Time         `json:"paused_at,omitempty"`
	PausedTotalSeconds int                `json:"paused_total_seconds"`
	PlannedSeconds     int                `json:"planned_seconds"`
	ElapsedSeconds     int                `json:"elapsed_seconds"`
	ActualSeconds      *int               `json:"actual_seconds,omitempty"`
}

func AppointmentToResponse(a *entity.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:                   a.ID.String(),
		ClientID:             a.ClientID.String(),
		ServiceID:            a.ServiceID.String(),
		StartAt:              a.StartAt,
		TotalDurationMinutes: a.TotalDurationMinutes,
		Status:               a.Status,
		PaymentStatus:        a.PaymentStatus,
		Price:                a.Price,
		PriceOverride:        a.PriceOverride,
		IsHomeVisit:          a.IsHomeVisit,
		DisplacementFee:      a.DisplacementFee,
		DisplacementKm:       a.DisplacementKm,
		TimerStatus:          a.TimerStatus,
		CreatedAt:            a.CreatedAt,
	}
}

func TimerToResponse(a *entity.Appointment, elapsed int) TimerResponse {
	return TimerResponse{
		AppointmentID:      a.ID.String(),
		TimerStatus:        a.TimerStatus,
		StartedAt:          a.TimerStartedAt,
		PausedAt:           a.TimerPausedAt,
		PausedTotalSeconds: a.PausedTotalSeconds,
		PlannedSeconds:     a.PlannedSeconds,
		ElapsedSeconds:     elapsed,
		ActualSeconds:      a.ActualSeconds,
	}
}
