package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"studio-booking/internal/data/entity"
	"studio-booking/internal/data/repository"
	"studio-booking/internal/dto/request"
	"studio-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newAppointmentFixture(t *testing.T) (AppointmentService, *repository.Repository, uuid.UUID, *entity.Client, *entity.Service) {
	t.Helper()

	repo := newTestRepo()
	tenantID := uuid.New()

	client := &entity.Client{
		Base:     entity.Base{ID: uuid.New()},
		TenantID: tenantID,
		Name:     "Bruno Lima",
	}
	repo.Client.(*fakeClientRepo).clients[client.ID] = client

	svc := &entity.Service{
		Base:            entity.Base{ID: uuid.New()},
		TenantID:        tenantID,
		Name:            "Tattoo session",
		DurationMinutes: 60,
		Price:           300,
		Active:          true,
		BufferBefore:    fptr(15),
		BufferAfter:     fptr(15),
	}
	repo.Service.(*fakeServiceRepo).services[svc.ID] = svc

	hours := repo.BusinessHour.(*fakeBusinessHourRepo).hours
	for weekday := 0; weekday < 7; weekday++ {
		hours[weekday] = &entity.BusinessHour{
			TenantID: tenantID,
			Weekday:  weekday,
			OpensAt:  "08:00",
			ClosesAt: "18:00",
		}
	}

	cfg := &utils.Config{
		Booking: utils.BookingConfig{
			TimeZone:              "UTC",
			SlotStepMinutes:       30,
			FallbackBufferMinutes: 30,
		},
	}

	availability := NewAvailabilityService(repo, cfg, zap.NewNop())
	return NewAppointmentService(repo, availability, zap.NewNop()), repo, tenantID, client, svc
}

// futureSlot returns an in-hours start daysAhead days from now, as both the
// wall-clock time and the request wire format.
func futureSlot(daysAhead, hour, minute int) (time.Time, string) {
	d := time.Now().UTC().AddDate(0, 0, daysAhead)
	ts := time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, time.UTC)
	return ts, ts.Format("2006-01-02T15:04")
}

func TestCreateAppointmentSeedsCheckout(t *testing.T) {
	t.Parallel()

	appointments, repo, tenantID, client, svc := newAppointmentFixture(t)

	_, startAt := futureSlot(7, 10, 0)
	res, err := appointments.Create(context.Background(), tenantID, &request.CreateAppointmentRequest{
		ClientID:  client.ID.String(),
		ServiceID: svc.ID.String(),
		StartAt:   startAt,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if res.Status != entity.AppointmentStatusPending {
		t.Errorf("status = %s, want pending", res.Status)
	}
	if res.TotalDurationMinutes != 90 {
		t.Errorf("total duration = %d, want 60 service + 15/15 buffers", res.TotalDurationMinutes)
	}
	if res.Price != 300 {
		t.Errorf("price = %v, want 300", res.Price)
	}

	apptID, err := uuid.Parse(res.ID)
	if err != nil {
		t.Fatalf("response id: %v", err)
	}
	appt := repo.Appointment.(*fakeAppointmentRepo).appointments[apptID]
	if appt == nil {
		t.Fatal("appointment not persisted")
	}
	if appt.PlannedSeconds != 3600 {
		t.Errorf("planned seconds = %d, want 3600", appt.PlannedSeconds)
	}

	checkout := repo.Checkout.(*fakeCheckoutRepo).checkouts[apptID]
	if checkout == nil {
		t.Fatal("checkout not seeded")
	}
	if checkout.Subtotal != 300 || checkout.Total != 300 {
		t.Errorf("checkout totals = %v/%v, want 300/300", checkout.Subtotal, checkout.Total)
	}
	items := repo.CheckoutItem.(*fakeCheckoutItemRepo).items[checkout.ID]
	if len(items) != 1 {
		t.Fatalf("checkout items = %d, want 1", len(items))
	}
	if items[0].ItemType != entity.CheckoutItemTypeService || items[0].Label != svc.Name {
		t.Errorf("seeded item = %s %q", items[0].ItemType, items[0].Label)
	}
}

func TestCreateAppointmentHomeVisit(t *testing.T) {
	t.Parallel()

	appointments, repo, tenantID, client, svc := newAppointmentFixture(t)

	homeSvc := &entity.Service{
		Base:               entity.Base{ID: uuid.New()},
		TenantID:           tenantID,
		Name:               "Home session",
		DurationMinutes:    60,
		Price:              400,
		Active:             true,
		HomeVisitAvailable: true,
		HomeBufferBefore:   fptr(30),
		HomeBufferAfter:    fptr(30),
	}
	repo.Service.(*fakeServiceRepo).services[homeSvc.ID] = homeSvc

	_, startAt := futureSlot(7, 10, 0)
	res, err := appointments.Create(context.Background(), tenantID, &request.CreateAppointmentRequest{
		ClientID:        client.ID.String(),
		ServiceID:       homeSvc.ID.String(),
		StartAt:         startAt,
		IsHomeVisit:     true,
		DisplacementFee: fptr(50),
		DisplacementKm:  fptr(12),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if res.TotalDurationMinutes != 120 {
		t.Errorf("total duration = %d, want 60 service + 30/30 home buffers", res.TotalDurationMinutes)
	}

	apptID, _ := uuid.Parse(res.ID)
	checkout := repo.Checkout.(*fakeCheckoutRepo).checkouts[apptID]
	if checkout == nil {
		t.Fatal("checkout not seeded")
	}
	if checkout.Total != 450 {
		t.Errorf("checkout total = %v, want service 400 + displacement 50", checkout.Total)
	}
	items := repo.CheckoutItem.(*fakeCheckoutItemRepo).items[checkout.ID]
	if len(items) != 2 {
		t.Fatalf("checkout items = %d, want 2", len(items))
	}
	if items[1].ItemType != entity.CheckoutItemTypeFee || items[1].Label != "Taxa de deslocamento" {
		t.Errorf("fee item = %s %q", items[1].ItemType, items[1].Label)
	}

	// The studio-only service refuses home bookings outright.
	_, err = appointments.Create(context.Background(), tenantID, &request.CreateAppointmentRequest{
		ClientID:    client.ID.String(),
		ServiceID:   svc.ID.String(),
		StartAt:     startAt,
		IsHomeVisit: true,
	})
	if err == nil || !strings.Contains(err.Error(), "home visit") {
		t.Errorf("home visit on studio-only service: %v", err)
	}
}

func TestCreateAppointmentRejections(t *testing.T) {
	t.Parallel()

	appointments, _, tenantID, client, svc := newAppointmentFixture(t)
	ctx := context.Background()

	_, err := appointments.Create(ctx, tenantID, &request.CreateAppointmentRequest{
		ClientID:  client.ID.String(),
		ServiceID: svc.ID.String(),
		StartAt:   "2020-01-01T10:00",
	})
	if err == nil || !strings.Contains(err.Error(), "past") {
		t.Errorf("past booking error = %v", err)
	}

	_, err = appointments.Create(ctx, tenantID, &request.CreateAppointmentRequest{
		ClientID:  uuid.New().String(),
		ServiceID: svc.ID.String(),
		StartAt:   "2020-01-01T10:00",
	})
	if err == nil || !strings.Contains(err.Error(), "client not found") {
		t.Errorf("unknown client error = %v", err)
	}

	_, startAt := futureSlot(7, 10, 0)
	if _, err := appointments.Create(ctx, tenantID, &request.CreateAppointmentRequest{
		ClientID:  client.ID.String(),
		ServiceID: svc.ID.String(),
		StartAt:   startAt,
	}); err != nil {
		t.Fatalf("first booking: %v", err)
	}

	_, err = appointments.Create(ctx, tenantID, &request.CreateAppointmentRequest{
		ClientID:  client.ID.String(),
		ServiceID: svc.ID.String(),
		StartAt:   startAt,
	})
	if err == nil || !strings.Contains(err.Error(), "conflicts") {
		t.Errorf("double booking error = %v", err)
	}
}

func TestRescheduleExcludesOwnSlot(t *testing.T) {
	t.Parallel()

	appointments, repo, tenantID, client, svc := newAppointmentFixture(t)
	ctx := context.Background()

	_, startAt := futureSlot(7, 10, 0)
	res, err := appointments.Create(ctx, tenantID, &request.CreateAppointmentRequest{
		ClientID:  client.ID.String(),
		ServiceID: svc.ID.String(),
		StartAt:   startAt,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Moving to its own current time is a no-op, not a collision.
	if _, err := appointments.Reschedule(ctx, tenantID, res.ID, &request.RescheduleAppointmentRequest{StartAt: startAt}); err != nil {
		t.Errorf("reschedule to same time: %v", err)
	}

	newStart, newStartStr := futureSlot(7, 14, 0)
	moved, err := appointments.Reschedule(ctx, tenantID, res.ID, &request.RescheduleAppointmentRequest{StartAt: newStartStr})
	if err != nil {
		t.Fatalf("Reschedule: %v", err)
	}
	if !moved.StartAt.Equal(newStart) {
		t.Errorf("start = %v, want %v", moved.StartAt, newStart)
	}

	// Once another appointment takes the vacated 10:00 slot, moving back
	// onto it must collide.
	if _, err := appointments.Create(ctx, tenantID, &request.CreateAppointmentRequest{
		ClientID:  client.ID.String(),
		ServiceID: svc.ID.String(),
		StartAt:   startAt,
	}); err != nil {
		t.Fatalf("second booking: %v", err)
	}
	_, err = appointments.Reschedule(ctx, tenantID, res.ID, &request.RescheduleAppointmentRequest{StartAt: startAt})
	if err == nil || !strings.Contains(err.Error(), "conflicts") {
		t.Errorf("reschedule onto occupied slot: %v", err)
	}

	apptID, _ := uuid.Parse(res.ID)
	if got := repo.Appointment.(*fakeAppointmentRepo).appointments[apptID].StartAt; !got.Equal(newStart) {
		t.Errorf("persisted start = %v, want %v", got, newStart)
	}
}

func TestConfirmAndNoShowTransitions(t *testing.T) {
	t.Parallel()

	appointments, repo, tenantID, client, svc := newAppointmentFixture(t)
	ctx := context.Background()

	_, startAt := futureSlot(7, 10, 0)
	res, err := appointments.Create(ctx, tenantID, &request.CreateAppointmentRequest{
		ClientID:  client.ID.String(),
		ServiceID: svc.ID.String(),
		StartAt:   startAt,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	apptID, _ := uuid.Parse(res.ID)
	appts := repo.Appointment.(*fakeAppointmentRepo).appointments

	if err := appointments.Confirm(ctx, tenantID, res.ID); err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if appts[apptID].Status != entity.AppointmentStatusConfirmed {
		t.Errorf("status = %s, want confirmed", appts[apptID].Status)
	}
	if err := appointments.Confirm(ctx, tenantID, res.ID); err == nil || !strings.Contains(err.Error(), "already confirmed") {
		t.Errorf("double confirm error = %v", err)
	}

	if err := appointments.MarkNoShow(ctx, tenantID, res.ID); err != nil {
		t.Fatalf("MarkNoShow: %v", err)
	}
	if appts[apptID].Status != entity.AppointmentStatusNoShow {
		t.Errorf("status = %s, want no_show", appts[apptID].Status)
	}
	if err := appointments.MarkNoShow(ctx, tenantID, res.ID); err == nil {
		t.Error("no-show on a no_show appointment should fail")
	}
}

func TestCancelRules(t *testing.T) {
	t.Parallel()

	appointments, repo, tenantID, client, svc := newAppointmentFixture(t)
	ctx := context.Background()
	appts := repo.Appointment.(*fakeAppointmentRepo).appointments

	_, startAt := futureSlot(7, 10, 0)
	res, err := appointments.Create(ctx, tenantID, &request.CreateAppointmentRequest{
		ClientID:  client.ID.String(),
		ServiceID: svc.ID.String(),
		StartAt:   startAt,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := appointments.Cancel(ctx, tenantID, res.ID, &request.CancelAppointmentRequest{By: "studio"}); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	apptID, _ := uuid.Parse(res.ID)
	if appts[apptID].Status != entity.AppointmentStatusCanceledByStudio {
		t.Errorf("status = %s, want canceled_by_studio", appts[apptID].Status)
	}
	if err := appointments.Cancel(ctx, tenantID, res.ID, &request.CancelAppointmentRequest{By: "studio"}); err == nil || !strings.Contains(err.Error(), "already canceled") {
		t.Errorf("double cancel error = %v", err)
	}

	// Client cancellations respect the tenant's window; the studio's do not.
	repo.Setting.(*fakeSettingRepo).setting = &entity.Setting{
		TenantID:                tenantID,
		CancellationWindowHours: 24,
	}
	soon := &entity.Appointment{
		Base:          entity.Base{ID: uuid.New()},
		TenantID:      tenantID,
		ClientID:      client.ID,
		ServiceID:     svc.ID,
		StartAt:       time.Now().Add(2 * time.Hour),
		Status:        entity.AppointmentStatusConfirmed,
		PaymentStatus: entity.PaymentStatusPending,
		TimerStatus:   entity.TimerStatusIdle,
	}
	appts[soon.ID] = soon

	err = appointments.Cancel(ctx, tenantID, soon.ID.String(), &request.CancelAppointmentRequest{By: "client"})
	if err == nil || !strings.Contains(err.Error(), "within 24 hours") {
		t.Errorf("late client cancel error = %v", err)
	}
	if err := appointments.Cancel(ctx, tenantID, soon.ID.String(), &request.CancelAppointmentRequest{By: "studio"}); err != nil {
		t.Errorf("studio cancel inside the window: %v", err)
	}
	if appts[soon.ID].Status != entity.AppointmentStatusCanceledByStudio {
		t.Errorf("status = %s, want canceled_by_studio", appts[soon.ID].Status)
	}
}
