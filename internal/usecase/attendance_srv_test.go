package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"studio-booking/internal/data/entity"
	"studio-booking/internal/data/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func newAttendanceFixture(t *testing.T) (AttendanceService, *repository.Repository, uuid.UUID, *entity.Appointment) {
	t.Helper()

	repo := newTestRepo()
	tenantID := uuid.New()

	appt := &entity.Appointment{
		Base:           entity.Base{ID: uuid.New()},
		TenantID:       tenantID,
		ClientID:       uuid.New(),
		ServiceID:      uuid.New(),
		StartAt:        time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
		Status:         entity.AppointmentStatusConfirmed,
		PaymentStatus:  entity.PaymentStatusPending,
		Price:          300,
		TimerStatus:    entity.TimerStatusIdle,
		PlannedSeconds: 3600,
	}
	repo.Appointment.(*fakeAppointmentRepo).appointments[appt.ID] = appt

	return NewAttendanceService(repo, zap.NewNop()), repo, tenantID, appt
}

func TestTimerLifecycle(t *testing.T) {
	t.Parallel()

	attendance, _, tenantID, appt := newAttendanceFixture(t)
	ctx := context.Background()
	id := appt.ID.String()

	res, err := attendance.StartTimer(ctx, tenantID, id)
	if err != nil {
		t.Fatalf("StartTimer: %v", err)
	}
	if res.TimerStatus != entity.TimerStatusRunning {
		t.Errorf("timer status = %s, want running", res.TimerStatus)
	}
	if appt.Status != entity.AppointmentStatusInProgress {
		t.Errorf("appointment status = %s, want in_progress", appt.Status)
	}
	if appt.TimerStartedAt == nil {
		t.Fatal("started_at not set")
	}

	if _, err := attendance.StartTimer(ctx, tenantID, id); err == nil || !strings.Contains(err.Error(), "already") {
		t.Errorf("double start error = %v", err)
	}

	res, err = attendance.PauseTimer(ctx, tenantID, id)
	if err != nil {
		t.Fatalf("PauseTimer: %v", err)
	}
	if res.TimerStatus != entity.TimerStatusPaused || appt.TimerPausedAt == nil {
		t.Errorf("pause state = %s paused_at = %v", res.TimerStatus, appt.TimerPausedAt)
	}

	if _, err := attendance.PauseTimer(ctx, tenantID, id); err == nil {
		t.Error("pausing a paused timer should fail")
	}

	res, err = attendance.ResumeTimer(ctx, tenantID, id)
	if err != nil {
		t.Fatalf("ResumeTimer: %v", err)
	}
	if res.TimerStatus != entity.TimerStatusRunning || appt.TimerPausedAt != nil {
		t.Errorf("resume state = %s paused_at = %v", res.TimerStatus, appt.TimerPausedAt)
	}

	res, err = attendance.FinishTimer(ctx, tenantID, id)
	if err != nil {
		t.Fatalf("FinishTimer: %v", err)
	}
	if res.TimerStatus != entity.TimerStatusFinished {
		t.Errorf("timer status = %s, want finished", res.TimerStatus)
	}
	if appt.Status != entity.AppointmentStatusCompleted {
		t.Errorf("appointment status = %s, want completed", appt.Status)
	}
	if appt.ActualSeconds == nil {
		t.Fatal("actual_seconds not recorded")
	}

	if _, err := attendance.FinishTimer(ctx, tenantID, id); err == nil {
		t.Error("finishing a finished timer should fail")
	}
}

func TestStartTimerGuards(t *testing.T) {
	t.Parallel()

	for _, status := range []entity.AppointmentStatus{
		entity.AppointmentStatusCompleted,
		entity.AppointmentStatusNoShow,
		entity.AppointmentStatusCanceledByStudio,
	} {
		status := status
		t.Run(string(status), func(t *testing.T) {
			t.Parallel()

			attendance, _, tenantID, appt := newAttendanceFixture(t)
			appt.Status = status

			if _, err := attendance.StartTimer(context.Background(), tenantID, appt.ID.String()); err == nil {
				t.Errorf("starting a timer on a %s appointment should fail", status)
			}
		})
	}
}

func TestFinishFromPausedStopsAtPauseMoment(t *testing.T) {
	t.Parallel()

	attendance, _, tenantID, appt := newAttendanceFixture(t)

	started := time.Now().Add(-90 * time.Minute)
	paused := time.Now().Add(-30 * time.Minute)
	appt.TimerStatus = entity.TimerStatusPaused
	appt.TimerStartedAt = &started
	appt.TimerPausedAt = &paused

	res, err := attendance.FinishTimer(context.Background(), tenantID, appt.ID.String())
	if err != nil {
		t.Fatalf("FinishTimer: %v", err)
	}

	// Billable time ended at the pause, 60 minutes in; the parked half hour
	// since then does not count.
	if appt.ActualSeconds == nil || *appt.ActualSeconds != 3600 {
		t.Errorf("actual_seconds = %v, want 3600", appt.ActualSeconds)
	}
	if res.ElapsedSeconds != 3600 {
		t.Errorf("elapsed = %d, want 3600", res.ElapsedSeconds)
	}
}

func TestFinishTimerDemotesPartialPayment(t *testing.T) {
	t.Parallel()

	attendance, repo, tenantID, appt := newAttendanceFixture(t)

	started := time.Now().Add(-time.Hour)
	appt.TimerStatus = entity.TimerStatusRunning
	appt.TimerStartedAt = &started
	appt.Status = entity.AppointmentStatusInProgress
	appt.PaymentStatus = entity.PaymentStatusPartial

	payment := &entity.Payment{
		Base:          entity.Base{ID: uuid.New()},
		TenantID:      tenantID,
		AppointmentID: appt.ID,
		Method:        entity.PaymentMethodCash,
		Amount:        100,
		Status:        entity.PaymentStatePaid,
	}
	repo.Payment.(*fakePaymentRepo).payments[payment.ID] = payment

	if _, err := attendance.FinishTimer(context.Background(), tenantID, appt.ID.String()); err != nil {
		t.Fatalf("FinishTimer: %v", err)
	}

	// A partially paid appointment that completes still owes money, and the
	// outstanding balance is surfaced as pending rather than partial.
	if appt.PaymentStatus != entity.PaymentStatusPending {
		t.Errorf("payment status = %s, want pending after completion", appt.PaymentStatus)
	}
}

func TestGetTimerReturnsFrozenActual(t *testing.T) {
	t.Parallel()

	attendance, _, tenantID, appt := newAttendanceFixture(t)

	actual := 2700
	started := time.Now().Add(-5 * time.Hour)
	appt.TimerStatus = entity.TimerStatusFinished
	appt.TimerStartedAt = &started
	appt.ActualSeconds = &actual
	appt.Status = entity.AppointmentStatusCompleted

	res, err := attendance.GetTimer(context.Background(), tenantID, appt.ID.String())
	if err != nil {
		t.Fatalf("GetTimer: %v", err)
	}
	if res.ElapsedSeconds != 2700 {
		t.Errorf("elapsed = %d, want the frozen 2700, not wall-clock time", res.ElapsedSeconds)
	}
}
