package usecase

import (
	"context"
	"time"

	"studio-booking/internal/data/entity"
	"studio-booking/internal/data/repository"

	"github.com/google/uuid"
)

// In-memory fakes for the repository interfaces the services depend on.

type fakeServiceRepo struct {
	services map[uuid.UUID]*entity.Service
}

func (f *fakeServiceRepo) FindByID(_ context.Context, _ uuid.UUID, id uuid.UUID) (*entity.Service, error) {
	return f.services[id], nil
}

func (f *fakeServiceRepo) FindAllActive(_ context.Context, _ uuid.UUID) ([]*entity.Service, error) {
	out := make([]*entity.Service, 0, len(f.services))
	for _, svc := range f.services {
		if svc.Active {
			out = append(out, svc)
		}
	}
	return out, nil
}

type fakeSettingRepo struct {
	setting *entity.Setting
}

func (f *fakeSettingRepo) FindByTenant(_ context.Context, _ uuid.UUID) (*entity.Setting, error) {
	return f.setting, nil
}

type fakeBusinessHourRepo struct {
	hours map[int]*entity.BusinessHour
}

func (f *fakeBusinessHourRepo) FindByWeekday(_ context.Context, _ uuid.UUID, weekday int) (*entity.BusinessHour, error) {
	return f.hours[weekday], nil
}

func (f *fakeBusinessHourRepo) FindAll(_ context.Context, _ uuid.UUID) ([]*entity.BusinessHour, error) {
	out := make([]*entity.BusinessHour, 0, len(f.hours))
	for _, h := range f.hours {
		out = append(out, h)
	}
	return out, nil
}

type fakeAppointmentRepo struct {
	appointments map[uuid.UUID]*entity.Appointment
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appt *entity.Appointment) error {
	f.appointments[appt.ID] = appt
	return nil
}

func (f *fakeAppointmentRepo) FindByID(_ context.Context, _ uuid.UUID, id uuid.UUID) (*entity.Appointment, error) {
	return f.appointments[id], nil
}

func (f *fakeAppointmentRepo) FindAll(_ context.Context, _ uuid.UUID, _, _ int) ([]*entity.Appointment, error) {
	out := make([]*entity.Appointment, 0, len(f.appointments))
	for _, appt := range f.appointments {
		out = append(out, appt)
	}
	return out, nil
}

func (f *fakeAppointmentRepo) Count(_ context.Context, _ uuid.UUID) (int64, error) {
	return int64(len(f.appointments)), nil
}

func (f *fakeAppointmentRepo) FindActiveBetween(_ context.Context, _ uuid.UUID, from, to time.Time) ([]*entity.Appointment, error) {
	var out []*entity.Appointment
	for _, appt := range f.appointments {
		if appt.IsCanceled() {
			continue
		}
		end := appt.StartAt.Add(time.Duration(appt.TotalDurationMinutes) * time.Minute)
		if appt.StartAt.Before(to) && end.After(from) {
			out = append(out, appt)
		}
	}
	return out, nil
}

func (f *fakeAppointmentRepo) UpdateTime(_ context.Context, _ uuid.UUID, id uuid.UUID, startAt time.Time, totalDurationMinutes, plannedSeconds int) error {
	appt := f.appointments[id]
	appt.StartAt = startAt
	appt.TotalDurationMinutes = totalDurationMinutes
	appt.PlannedSeconds = plannedSeconds
	return nil
}

func (f *fakeAppointmentRepo) UpdateStatus(_ context.Context, _ uuid.UUID, id uuid.UUID, status entity.AppointmentStatus) error {
	f.appointments[id].Status = status
	return nil
}

func (f *fakeAppointmentRepo) UpdatePaymentStatus(_ context.Context, _ uuid.UUID, id uuid.UUID, status entity.PaymentStatus) error {
	f.appointments[id].PaymentStatus = status
	return nil
}

func (f *fakeAppointmentRepo) UpdateTimer(_ context.Context, appt *entity.Appointment) error {
	f.appointments[appt.ID] = appt
	return nil
}

type fakeBlockRepo struct {
	blocks []*entity.AvailabilityBlock
}

func (f *fakeBlockRepo) CreateBatch(_ context.Context, blocks []*entity.AvailabilityBlock) error {
	f.blocks = append(f.blocks, blocks...)
	return nil
}

func (f *fakeBlockRepo) FindBetween(_ context.Context, _ uuid.UUID, from, to time.Time) ([]*entity.AvailabilityBlock, error) {
	var out []*entity.AvailabilityBlock
	for _, block := range f.blocks {
		if block.StartAt.Before(to) && block.EndAt.After(from) {
			out = append(out, block)
		}
	}
	return out, nil
}

func (f *fakeBlockRepo) DeleteBetween(_ context.Context, _ uuid.UUID, from, to time.Time, blockType *string) (int64, error) {
	var kept []*entity.AvailabilityBlock
	var deleted int64
	for _, block := range f.blocks {
		inRange := block.StartAt.Before(to) && block.EndAt.After(from)
		typeMatch := blockType == nil || (block.BlockType != nil && *block.BlockType == *blockType)
		if inRange && typeMatch {
			deleted++
			continue
		}
		kept = append(kept, block)
	}
	f.blocks = kept
	return deleted, nil
}

type fakeCheckoutRepo struct {
	checkouts map[uuid.UUID]*entity.Checkout // keyed by appointment id
}

func (f *fakeCheckoutRepo) Create(_ context.Context, checkout *entity.Checkout) error {
	f.checkouts[checkout.AppointmentID] = checkout
	return nil
}

func (f *fakeCheckoutRepo) FindByAppointmentID(_ context.Context, _ uuid.UUID, appointmentID uuid.UUID) (*entity.Checkout, error) {
	return f.checkouts[appointmentID], nil
}

func (f *fakeCheckoutRepo) Update(_ context.Context, checkout *entity.Checkout) error {
	f.checkouts[checkout.AppointmentID] = checkout
	return nil
}

type fakeCheckoutItemRepo struct {
	items map[uuid.UUID][]*entity.CheckoutItem // keyed by checkout id
}

func (f *fakeCheckoutItemRepo) FindByCheckoutID(_ context.Context, _ uuid.UUID, checkoutID uuid.UUID) ([]*entity.CheckoutItem, error) {
	return f.items[checkoutID], nil
}

func (f *fakeCheckoutItemRepo) ReplaceForCheckout(_ context.Context, _ uuid.UUID, checkoutID uuid.UUID, items []*entity.CheckoutItem) error {
	f.items[checkoutID] = items
	return nil
}

type fakePaymentRepo struct {
	payments map[uuid.UUID]*entity.Payment
}

func (f *fakePaymentRepo) Create(_ context.Context, payment *entity.Payment) error {
	f.payments[payment.ID] = payment
	return nil
}

func (f *fakePaymentRepo) FindByID(_ context.Context, _ uuid.UUID, id uuid.UUID) (*entity.Payment, error) {
	return f.payments[id], nil
}

func (f *fakePaymentRepo) FindByAppointmentID(_ context.Context, _ uuid.UUID, appointmentID uuid.UUID) ([]*entity.Payment, error) {
	var out []*entity.Payment
	for _, payment := range f.payments {
		if payment.AppointmentID == appointmentID {
			out = append(out, payment)
		}
	}
	return out, nil
}

func (f *fakePaymentRepo) SumPaidByAppointment(_ context.Context, _ uuid.UUID, appointmentID uuid.UUID) (float64, error) {
	var sum float64
	for _, payment := range f.payments {
		if payment.AppointmentID == appointmentID && payment.Status == entity.PaymentStatePaid {
			sum += payment.Amount
		}
	}
	return sum, nil
}

func (f *fakePaymentRepo) Upsert(_ context.Context, payment *entity.Payment) error {
	if payment.ProviderRef != nil {
		for id, existing := range f.payments {
			if existing.ProviderRef != nil && *existing.ProviderRef == *payment.ProviderRef {
				payment.Base = existing.Base
				f.payments[id] = payment
				return nil
			}
		}
	}
	f.payments[payment.ID] = payment
	return nil
}

type fakeStaffRepo struct {
	staff map[uuid.UUID]*entity.Staff
}

func (f *fakeStaffRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Staff, error) {
	return f.staff[id], nil
}

func (f *fakeStaffRepo) FindByUsername(_ context.Context, username string) (*entity.Staff, error) {
	for _, st := range f.staff {
		if st.Username == username {
			return st, nil
		}
	}
	return nil, nil
}

type fakeSessionRepo struct {
	sessions map[uuid.UUID]*entity.Session // keyed by token
}

func (f *fakeSessionRepo) Create(_ context.Context, session *entity.Session) error {
	f.sessions[session.Token] = session
	return nil
}

func (f *fakeSessionRepo) FindValidSession(_ context.Context, token string) (*entity.Session, error) {
	parsed, err := uuid.Parse(token)
	if err != nil {
		return nil, nil
	}
	session := f.sessions[parsed]
	if session == nil || session.RevokedAt != nil || session.ExpiresAt.Before(time.Now()) {
		return nil, nil
	}
	return session, nil
}

func (f *fakeSessionRepo) Revoke(_ context.Context, token string) error {
	parsed, err := uuid.Parse(token)
	if err != nil {
		return nil
	}
	if session := f.sessions[parsed]; session != nil {
		now := time.Now()
		session.RevokedAt = &now
	}
	return nil
}

type fakeClientRepo struct {
	clients map[uuid.UUID]*entity.Client
}

func (f *fakeClientRepo) FindByID(_ context.Context, _ uuid.UUID, id uuid.UUID) (*entity.Client, error) {
	return f.clients[id], nil
}

func newTestRepo() *repository.Repository {
	return &repository.Repository{
		Staff:             &fakeStaffRepo{staff: map[uuid.UUID]*entity.Staff{}},
		Session:           &fakeSessionRepo{sessions: map[uuid.UUID]*entity.Session{}},
		Client:            &fakeClientRepo{clients: map[uuid.UUID]*entity.Client{}},
		Service:           &fakeServiceRepo{services: map[uuid.UUID]*entity.Service{}},
		Setting:           &fakeSettingRepo{},
		BusinessHour:      &fakeBusinessHourRepo{hours: map[int]*entity.BusinessHour{}},
		Appointment:       &fakeAppointmentRepo{appointments: map[uuid.UUID]*entity.Appointment{}},
		AvailabilityBlock: &fakeBlockRepo{},
		Checkout:          &fakeCheckoutRepo{checkouts: map[uuid.UUID]*entity.Checkout{}},
		CheckoutItem:      &fakeCheckoutItemRepo{items: map[uuid.UUID][]*entity.CheckoutItem{}},
		Payment:           &fakePaymentRepo{payments: map[uuid.UUID]*entity.Payment{}},
	}
}
