package repository

import (
	"studio-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Staff             StaffRepository
	Session           SessionRepository
	Client            ClientRepository
	Service           ServiceRepository
	Setting           SettingRepository
	BusinessHour      BusinessHourRepository
	Appointment       AppointmentRepository
	AvailabilityBlock AvailabilityBlockRepository
	Checkout          CheckoutRepository
	CheckoutItem      CheckoutItemRepository
	Payment           PaymentRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Staff:             NewStaffRepository(db, log),
		Session:           NewSessionRepository(db, log),
		Client:            NewClientRepository(db, log),
		Service:           NewServiceRepository(db, log),
		Setting:           NewSettingRepository(db, log),
		BusinessHour:      NewBusinessHourRepository(db, log),
		Appointment:       NewAppointmentRepository(db, log),
		AvailabilityBlock: NewAvailabilityBlockRepository(db, log),
		Checkout:          NewCheckoutRepository(db, log),
		CheckoutItem:      NewCheckoutItemRepository(db, log),
		Payment:           NewPaymentRepository(db, log),
	}
}
