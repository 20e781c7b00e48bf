package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"studio-booking/internal/data/entity"
	"studio-booking/internal/data/repository"
	"studio-booking/internal/dto/request"
	"studio-booking/internal/dto/response"
	"studio-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AppointmentService interface {
	Create(ctx context.Context, tenantID uuid.UUID, req *request.CreateAppointmentRequest) (*response.AppointmentResponse, error)
	GetByID(ctx context.Context, tenantID uuid.UUID, id string) (*response.AppointmentDetailResponse, error)
	List(ctx context.Context, tenantID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.AppointmentResponse], error)
	Reschedule(ctx context.Context, tenantID uuid.UUID, id string, req *request.RescheduleAppointmentRequest) (*response.AppointmentResponse, error)
	Confirm(ctx context.Context, tenantID uuid.UUID, id string) error
	Cancel(ctx context.Context, tenantID uuid.UUID, id string, req *request.CancelAppointmentRequest) error
	MarkNoShow(ctx context.Context, tenantID uuid.UUID, id string) error
}

type appointmentService struct {
	repo         *repository.Repository
	availability AvailabilityService
	log          *zap.Logger
}

func NewAppointmentService(repo *repository.Repository, availability AvailabilityService, log *zap.Logger) AppointmentService {
	return &appointmentService{
		repo:         repo,
		availability: availability,
		log:          log.With(zap.String("service", "appointment")),
	}
}

func (s *appointmentService) Create(ctx context.Context, tenantID uuid.UUID, req *request.CreateAppointmentRequest) (*response.AppointmentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create appointment validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		return nil, fmt.Errorf("invalid client ID format %s: %w", req.ClientID, err)
	}
	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("invalid service ID format %s: %w", req.ServiceID, err)
	}

	client, err := s.repo.Client.FindByID(ctx, tenantID, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load client: %w", err)
	}
	if client == nil {
		return nil, fmt.Errorf("client not found")
	}

	svc, err := s.repo.Service.FindByID(ctx, tenantID, serviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load service: %w", err)
	}
	if svc == nil || !svc.Active {
		return nil, fmt.Errorf("service not found")
	}
	if req.IsHomeVisit && !svc.HomeVisitAvailable {
		return nil, fmt.Errorf("service %s cannot be booked as a home visit", svc.Name)
	}

	startAt, err := time.ParseInLocation("2006-01-02T15:04", req.StartAt, s.availability.Location())
	if err != nil {
		return nil, fmt.Errorf("invalid start time %q, expected YYYY-MM-DDTHH:MM: %w", req.StartAt, err)
	}
	if startAt.Before(time.Now()) {
		return nil, fmt.Errorf("cannot book a time in the past")
	}

	before, after, err := s.availability.ValidateSlot(ctx, tenantID, svc, startAt, req.IsHomeVisit, uuid.Nil)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	appt := &entity.Appointment{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		TenantID:             tenantID,
		ClientID:             clientID,
		ServiceID:            serviceID,
		StartAt:              startAt,
		TotalDurationMinutes: svc.DurationMinutes + int(math.Round(before+after)),
		Status:               entity.AppointmentStatusPending,
		PaymentStatus:        entity.PaymentStatusPending,
		Price:                svc.Price,
		PriceOverride:        req.PriceOverride,
		IsHomeVisit:          req.IsHomeVisit,
		TimerStatus:          entity.TimerStatusIdle,
		PlannedSeconds:       svc.DurationMinutes * 60,
	}
	if req.IsHomeVisit {
		appt.DisplacementFee = req.DisplacementFee
		appt.DisplacementKm = req.DisplacementKm
	}

	if err := s.repo.Appointment.Create(ctx, appt); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	if err := s.seedCheckout(ctx, appt, svc); err != nil {
		return nil, err
	}

	s.log.Info("Appointment created",
		zap.String("appointment_id", appt.ID.String()),
		zap.String("service_id", serviceID.String()),
		zap.Time("start_at", startAt),
		zap.Bool("is_home_visit", req.IsHomeVisit),
	)

	res := response.AppointmentToResponse(appt)
	return &res, nil
}

// seedCheckout creates the initial checkout for a new appointment: one
// service line at the effective price, plus the displacement fee for home
// visits.
func (s *appointmentService) seedCheckout(ctx context.Context, appt *entity.Appointment, svc *entity.Service) error {
	now := time.Now()
	checkout := &entity.Checkout{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		TenantID:      appt.TenantID,
		AppointmentID: appt.ID,
	}

	items := []*entity.CheckoutItem{{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: now},
		TenantID:   appt.TenantID,
		CheckoutID: checkout.ID,
		ItemType:   entity.CheckoutItemTypeService,
		Label:      svc.Name,
		Qty:        1,
		Amount:     appt.EffectivePrice(),
		SortOrder:  0,
	}}
	if appt.IsHomeVisit && appt.DisplacementFee != nil && *appt.DisplacementFee > 0 {
		items = append(items, &entity.CheckoutItem{
			BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: now},
			TenantID:   appt.TenantID,
			CheckoutID: checkout.ID,
			ItemType:   entity.CheckoutItemTypeFee,
			Label:      "Taxa de deslocamento",
			Qty:        1,
			Amount:     *appt.DisplacementFee,
			SortOrder:  1,
		})
	}

	lines := make([]TotalLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, TotalLine{Amount: item.Amount, Qty: item.Qty})
	}
	subtotal, total := ComputeTotals(lines, nil, 0)
	checkout.Subtotal = Round2(subtotal)
	checkout.Total = Round2(total)

	if err := s.repo.Checkout.Create(ctx, checkout); err != nil {
		return fmt.Errorf("failed to create checkout: %w", err)
	}
	if err := s.repo.CheckoutItem.ReplaceForCheckout(ctx, appt.TenantID, checkout.ID, items); err != nil {
		return fmt.Errorf("failed to create checkout items: %w", err)
	}
	return nil
}

func (s *appointmentService) findAppointment(ctx context.Context, tenantID uuid.UUID, id string) (*entity.Appointment, error) {
	apptID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid appointment ID format %s: %w", id, err)
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

func (s *appointmentService) GetByID(ctx context.Context, tenantID uuid.UUID, id string) (*response.AppointmentDetailResponse, error) {
	appt, err := s.findAppointment(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	detail := &response.AppointmentDetailResponse{
		AppointmentResponse: response.AppointmentToResponse(appt),
		Payments:            []response.PaymentResponse{},
	}

	checkout, err := s.repo.Checkout.FindByAppointmentID(ctx, tenantID, appt.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load checkout: %w", err)
	}
	if checkout != nil {
		items, err := s.repo.CheckoutItem.FindByCheckoutID(ctx, tenantID, checkout.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load checkout items: %w", err)
		}
		flat := make([]entity.CheckoutItem, 0, len(items))
		for _, item := range items {
			flat = append(flat, *item)
		}
		res := response.CheckoutToResponse(checkout, flat)
		detail.Checkout = &res
	}

	payments, err := s.repo.Payment.FindByAppointmentID(ctx, tenantID, appt.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load payments: %w", err)
	}
	for _, payment := range payments {
		detail.Payments = append(detail.Payments, response.PaymentToResponse(payment))
	}

	return detail, nil
}

func (s *appointmentService) List(ctx context.Context, tenantID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.AppointmentResponse], error) {
	appointments, err := s.repo.Appointment.FindAll(ctx, tenantID, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}

	total, err := s.repo.Appointment.Count(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to count appointments: %w", err)
	}

	data := make([]response.AppointmentResponse, 0, len(appointments))
	for _, appt := range appointments {
		data = append(data, response.AppointmentToResponse(appt))
	}

	return response.NewPaginatedResponse(data, req.Page, req.Limit(), total), nil
}

func (s *appointmentService) Reschedule(ctx context.Context, tenantID uuid.UUID, id string, req *request.RescheduleAppointmentRequest) (*response.AppointmentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Reschedule validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	appt, err := s.findAppointment(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if appt.IsCanceled() || appt.Status == entity.AppointmentStatusCompleted || appt.Status == entity.AppointmentStatusInProgress {
		return nil, fmt.Errorf("cannot reschedule a %s appointment", appt.Status)
	}

	svc, err := s.repo.Service.FindByID(ctx, tenantID, appt.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load service: %w", err)
	}
	if svc == nil {
		return nil, fmt.Errorf("service not found")
	}

	startAt, err := time.ParseInLocation("2006-01-02T15:04", req.StartAt, s.availability.Location())
	if err != nil {
		return nil, fmt.Errorf("invalid start time %q, expected YYYY-MM-DDTHH:MM: %w", req.StartAt, err)
	}
	if startAt.Before(time.Now()) {
		return nil, fmt.Errorf("cannot reschedule to a time in the past")
	}

	before, after, err := s.availability.ValidateSlot(ctx, tenantID, svc, startAt, appt.IsHomeVisit, appt.ID)
	if err != nil {
		return nil, err
	}

	appt.StartAt = startAt
	appt.TotalDurationMinutes = svc.DurationMinutes + int(math.Round(before+after))
	appt.PlannedSeconds = svc.DurationMinutes * 60

	if err := s.repo.Appointment.UpdateTime(ctx, tenantID, appt.ID, appt.StartAt, appt.TotalDurationMinutes, appt.PlannedSeconds); err != nil {
		return nil, fmt.Errorf("failed to reschedule appointment: %w", err)
	}

	s.log.Info("Appointment rescheduled",
		zap.String("appointment_id", appt.ID.String()),
		zap.Time("start_at", startAt),
	)

	res := response.AppointmentToResponse(appt)
	return &res, nil
}

func (s *appointmentService) Confirm(ctx context.Context, tenantID uuid.UUID, id string) error {
	appt, err := s.findAppointment(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if appt.Status == entity.AppointmentStatusConfirmed {
		return fmt.Errorf("appointment is already confirmed")
	}
	if appt.Status != entity.AppointmentStatusPending {
		return fmt.Errorf("cannot confirm a %s appointment", appt.Status)
	}

	if err := s.repo.Appointment.UpdateStatus(ctx, tenantID, appt.ID, entity.AppointmentStatusConfirmed); err != nil {
		return fmt.Errorf("failed to confirm appointment: %w", err)
	}

	s.log.Info("Appointment confirmed", zap.String("appointment_id", appt.ID.String()))
	return nil
}

func (s *appointmentService) Cancel(ctx context.Context, tenantID uuid.UUID, id string, req *request.CancelAppointmentRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Cancel validation failed", zap.Any("errors", errs))
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	appt, err := s.findAppointment(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if appt.IsCanceled() {
		return fmt.Errorf("appointment is already canceled")
	}
	if appt.Status == entity.AppointmentStatusCompleted || appt.Status == entity.AppointmentStatusInProgress {
		return fmt.Errorf("cannot cancel a %s appointment", appt.Status)
	}

	status := entity.AppointmentStatusCanceledByStudio
	if req.By == "client" {
		status = entity.AppointmentStatusCanceledByClient

		setting, err := s.repo.Setting.FindByTenant(ctx, tenantID)
		if err != nil {
			return fmt.Errorf("failed to load settings: %w", err)
		}
		if setting != nil && setting.CancellationWindowHours > 0 {
			window := time.Duration(setting.CancellationWindowHours) * time.Hour
			if time.Until(appt.StartAt) < window {
				return fmt.Errorf("cannot cancel within %d hours of the appointment", setting.CancellationWindowHours)
			}
		}
	}

	if err := s.repo.Appointment.UpdateStatus(ctx, tenantID, appt.ID, status); err != nil {
		return fmt.Errorf("failed to cancel appointment: %w", err)
	}

	s.log.Info("Appointment canceled",
		zap.String("appointment_id", appt.ID.String()),
		zap.String("by", req.By),
	)
	return nil
}

func (s *appointmentService) MarkNoShow(ctx context.Context, tenantID uuid.UUID, id string) error {
	appt, err := s.findAppointment(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if appt.Status != entity.AppointmentStatusPending && appt.Status != entity.AppointmentStatusConfirmed {
		return fmt.Errorf("cannot mark a %s appointment as no-show", appt.Status)
	}

	if err := s.repo.Appointment.UpdateStatus(ctx, tenantID, appt.ID, entity.AppointmentStatusNoShow); err != nil {
		return fmt.Errorf("failed to mark appointment as no-show: %w", err)
	}

	s.log.Info("Appointment marked as no-show", zap.String("appointment_id", appt.ID.String()))
	return nil
}
