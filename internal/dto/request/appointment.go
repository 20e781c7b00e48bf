package request

type CreateAppointmentRequest struct {
	ClientID        string   `json:"client_id" validate:"required,uuid4"`
	ServiceID       string   `json:"service_id" validate:"required,uuid4"`
	StartAt         string   `json:"start_at" validate:"required,datetime=2006-01-02T15:04"`
	IsHomeVisit     bool     `json:"is_home_visit"`
	PriceOverride   *float64 `json:"price_override,omitempty" validate:"omitempty,gt=0"`
	DisplacementFee *float64 `json:"displacement_fee,omitempty" validate:"omitempty,gte=0"`
	DisplacementKm  *float64 `json:"displacement_km,omitempty" validate:"omitempty,gte=0"`
}

type RescheduleAppointmentRequest struct {
	StartAt string `json:"start_at" validate:"required,datetime=2006-01-02T15:04"`
}

type CancelAppointmentRequest struct {
	By     string  `json:"by" validate:"required,oneof=client studio"`
	Reason *string `json:"reason,omitempty"`
}
