package usecase

import (
	"studio-booking/internal/data/repository"
	"studio-booking/pkg/utils"

	"go.uber.org/zap"
)

// Service groups every use case behind one wiring point.
type Service struct {
	Auth         AuthService
	Availability AvailabilityService
	Appointment  AppointmentService
	Checkout     CheckoutService
	Payment      PaymentService
	Attendance   AttendanceService
}

func NewService(repo *repository.Repository, gw PaymentGateway, config *utils.Config, log *zap.Logger) *Service {
	availability := NewAvailabilityService(repo, config, log)

	return &Service{
		Auth:         NewAuthService(repo, config, log),
		Availability: availability,
		Appointment:  NewAppointmentService(repo, availability, log),
		Checkout:     NewCheckoutService(repo, log),
		Payment:      NewPaymentService(repo, gw, log),
		Attendance:   NewAttendanceService(repo, log),
	}
}
