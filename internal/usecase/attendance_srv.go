package usecase

import (
	"context"
	"fmt"
	"time"

	"studio-booking/internal/data/entity"
	"studio-booking/internal/data/repository"
	"studio-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AttendanceService interface {
	StartTimer(ctx context.Context, tenantID uuid.UUID, appointmentID string) (*response.TimerResponse, error)
	PauseTimer(ctx context.Context, tenantID uuid.UUID, appointmentID string) (*response.TimerResponse, error)
	ResumeTimer(ctx context.Context, tenantID uuid.UUID, appointmentID string) (*response.TimerResponse, error)
	FinishTimer(ctx context.Context, tenantID uuid.UUID, appointmentID string) (*response.TimerResponse, error)
	GetTimer(ctx context.Context, tenantID uuid.UUID, appointmentID string) (*response.TimerResponse, error)
}

type attendanceService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewAttendanceService(repo *repository.Repository, log *zap.Logger) AttendanceService {
	return &attendanceService{
		repo: repo,
		log:  log.With(zap.String("service", "attendance")),
	}
}

func (s *attendanceService) loadAppointment(ctx context.Context, tenantID uuid.UUID, appointmentID string) (*entity.Appointment, error) {
	apptID, err := uuid.Parse(appointmentID)
	if err != nil {
		return nil, fmt.Errorf("invalid appointment ID format %s: %w", appointmentID, err)
	}
	appt, err := s.repo.Appointment.FindByID(ctx, tenantID, apptID)
	if err != nil {
		return nil, fmt.Errorf("failed to load appointment: %w", err)
	}
	if appt == nil {
		return nil, fmt.Errorf("appointment not found")
	}
	return appt, nil
}

func (s *attendanceService) snapshot(appt *entity.Appointment) TimerSnapshot {
	return TimerSnapshot{
		StartedAt:          appt.TimerStartedAt,
		PausedAt:           appt.TimerPausedAt,
		PausedTotalSeconds: appt.PausedTotalSeconds,
	}
}

func (s *attendanceService) timerResponse(appt *entity.Appointment, now time.Time) *response.TimerResponse {
	elapsed := ComputeElapsedSeconds(s.snapshot(appt), now)
	res := response.TimerToResponse(appt, elapsed)
	return &res
}

func (s *attendanceService) StartTimer(ctx context.Context, tenantID uuid.UUID, appointmentID string) (*response.TimerResponse, error) {
	appt, err := s.loadAppointment(ctx, tenantID, appointmentID)
	if err != nil {
		return nil, err
	}
	if appt.IsCanceled() || appt.Status == entity.AppointmentStatusCompleted || appt.Status == entity.AppointmentStatusNoShow {
		return nil, fmt.Errorf("cannot start the timer of a %s appointment", appt.Status)
	}
	if appt.TimerStatus != entity.TimerStatusIdle {
		return nil, fmt.Errorf("timer is already %s", appt.TimerStatus)
	}

	now := time.Now()
	appt.TimerStatus = entity.TimerStatusRunning
	appt.TimerStartedAt = &now
	appt.TimerPausedAt = nil
	appt.PausedTotalSeconds = 0
	appt.Status = entity.AppointmentStatusInProgress

	if err := s.repo.Appointment.UpdateTimer(ctx, appt); err != nil {
		return nil, fmt.Errorf("failed to start timer: %w", err)
	}

	s.log.Info("Timer started", zap.String("appointment_id", appt.ID.String()))
	return s.timerResponse(appt, now), nil
}

func (s *attendanceService) PauseTimer(ctx context.Context, tenantID uuid.UUID, appointmentID string) (*response.TimerResponse, error) {
	appt, err := s.loadAppointment(ctx, tenantID, appointmentID)
	if err != nil {
		return nil, err
	}
	if appt.TimerStatus != entity.TimerStatusRunning {
		return nil, fmt.Errorf("cannot pause a timer that is %s", appt.TimerStatus)
	}

	now := time.Now()
	appt.TimerStatus = entity.TimerStatusPaused
	appt.TimerPausedAt = &now

	if err := s.repo.Appointment.UpdateTimer(ctx, appt); err != nil {
		return nil, fmt.Errorf("failed to pause timer: %w", err)
	}

	s.log.Info("Timer paused", zap.String("appointment_id", appt.ID.String()))
	return s.timerResponse(appt, now), nil
}

func (s *attendanceService) ResumeTimer(ctx context.Context, tenantID uuid.UUID, appointmentID string) (*response.TimerResponse, error) {
	appt, err := s.loadAppointment(ctx, tenantID, appointmentID)
	if err != nil {
		return nil, err
	}
	if appt.TimerStatus != entity.TimerStatusPaused || appt.TimerPausedAt == nil {
		return nil, fmt.Errorf("cannot resume a timer that is %s", appt.TimerStatus)
	}

	now := time.Now()
	appt.PausedTotalSeconds += int(now.Sub(*appt.TimerPausedAt) / time.Second)
	appt.TimerStatus = entity.TimerStatusRunning
	appt.TimerPausedAt = nil

	if err := s.repo.Appointment.UpdateTimer(ctx, appt); err != nil {
		return nil, fmt.Errorf("failed to resume timer: %w", err)
	}

	s.log.Info("Timer resumed", zap.String("appointment_id", appt.ID.String()))
	return s.timerResponse(appt, now), nil
}

func (s *attendanceService) FinishTimer(ctx context.Context, tenantID uuid.UUID, appointmentID string) (*response.TimerResponse, error) {
	appt, err := s.loadAppointment(ctx, tenantID, appointmentID)
	if err != nil {
		return nil, err
	}
	if appt.TimerStatus != entity.TimerStatusRunning && appt.TimerStatus != entity.TimerStatusPaused {
		return nil, fmt.Errorf("cannot finish a timer that is %s", appt.TimerStatus)
	}

	// When finishing from paused the pause moment is the end of the billable
	// window, so the elapsed computation uses the stored pausedAt.
	now := time.Now()
	actual := ComputeElapsedSeconds(s.snapshot(appt), now)

	appt.TimerStatus = entity.TimerStatusFinished
	appt.TimerPausedAt = nil
	appt.ActualSeconds = &actual
	appt.Status = entity.AppointmentStatusCompleted

	if err := s.repo.Appointment.UpdateTimer(ctx, appt); err != nil {
		return nil, fmt.Errorf("failed to finish timer: %w", err)
	}

	// Completion can demote a partial payment back to pending.
	if _, _, _, err := recalcAppointmentPaymentStatus(ctx, s.repo, s.log, tenantID, appt.ID); err != nil {
		return nil, err
	}

	s.log.Info("Timer finished",
		zap.String("appointment_id", appt.ID.String()),
		zap.Int("actual_seconds", actual),
		zap.Int("planned_seconds", appt.PlannedSeconds),
	)

	// The response carries the frozen billable seconds, not wall time.
	res := response.TimerToResponse(appt, actual)
	return &res, nil
}

func (s *attendanceService) GetTimer(ctx context.Context, tenantID uuid.UUID, appointmentID string) (*response.TimerResponse, error) {
	appt, err := s.loadAppointment(ctx, tenantID, appointmentID)
	if err != nil {
		return nil, err
	}

	if appt.TimerStatus == entity.TimerStatusFinished && appt.ActualSeconds != nil {
		res := response.TimerToResponse(appt, *appt.ActualSeconds)
		return &res, nil
	}
	return s.timerResponse(appt, time.Now()), nil
}
