package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"studio-booking/internal/data/entity"
	"studio-booking/internal/data/repository"
	"studio-booking/internal/dto/request"
	"studio-booking/internal/dto/response"
	"studio-booking/internal/gateway"
	"studio-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentGateway is the provider surface the payment service depends on.
// *gateway.Client satisfies it.
type PaymentGateway interface {
	CreatePixOrder(ctx context.Context, input gateway.PixOrderInput) (*gateway.Order, error)
	CreateCardOrder(ctx context.Context, input gateway.CardOrderInput) (*gateway.Order, error)
	CreatePointOrder(ctx context.Context, input gateway.PointOrderInput) (*gateway.Order, error)
	GetOrder(ctx context.Context, orderID string) (*gateway.Order, error)
}

type PaymentService interface {
	CreatePixCharge(ctx context.Context, tenantID uuid.UUID, appointmentID string, req *request.PixChargeRequest) (*response.ChargeResponse, error)
	CreateCardCharge(ctx context.Context, tenantID uuid.UUID, appointmentID string, req *request.CardChargeRequest) (*response.ChargeResponse, error)
	CreatePointCharge(ctx context.Context, tenantID uuid.UUID, appointmentID string, req *request.PointChargeRequest) (*response.ChargeResponse, error)

	// PollOrder refreshes one provider order and folds the result into the
	// appointment's payment state. Used by the pix/point polling flows.
	PollOrder(ctx context.Context, tenantID uuid.UUID, appointmentID, orderID string) (*response.OrderStatusResponse, error)

	RecordManualPayment(ctx context.Context, tenantID uuid.UUID, appointmentID string, req *request.ManualPaymentRequest) (*response.PaymentResponse, error)
	Waive(ctx context.Context, tenantID uuid.UUID, appointmentID string) error
	Unwaive(ctx context.Context, tenantID uuid.UUID, appointmentID string) error
	Recalculate(ctx context.Context, tenantID uuid.UUID, appointmentID string) (*response.OrderStatusResponse, error)
}

type paymentService struct {
	repo *repository.Repository
	gw   PaymentGateway
	log  *zap.Logger
}

func NewPaymentService(repo *repository.Repository, gw PaymentGateway, log *zap.Logger) PaymentService {
	return &paymentService{
		repo: repo,
		gw:   gw,
		log:  log.With(zap.String("service", "payment")),
	}
}

func mapOrderState(status gateway.Status) entity.PaymentState {
	switch status {
	case gateway.StatusPaid:
		return entity.PaymentStatePaid
	case gateway.StatusFailed:
		return entity.PaymentStateFailed
	default:
		return entity.PaymentStatePending
	}
}

func (s *paymentService) loadChargeable(ctx context.Context, tenantID uuid.UUID, appointmentID string) (*entity.Appointment, error) {
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
	if appt.IsCanceled() {
		return nil, fmt.Errorf("cannot charge a canceled appointment")
	}
	if appt.PaymentStatus == entity.PaymentStatusWaived {
		return nil, fmt.Errorf("cannot charge a waived appointment")
	}
	if appt.PaymentStatus == entity.PaymentStatusPaid {
		return nil, fmt.Errorf("appointment is already paid")
	}
	return appt, nil
}

// upsertFromOrder persists the provider's view of one order as a payment
// row. The upsert is keyed by provider_ref, so replays of the same provider
// payment converge instead of duplicating.
func (s *paymentService) upsertFromOrder(ctx context.Context, appt *entity.Appointment, method entity.PaymentMethod, order *gateway.Order, terminalID, cardMode *string) (*entity.Payment, error) {
	providerRef := order.PaymentID
	if providerRef == "" {
		providerRef = order.OrderID
	}

	raw, err := json.Marshal(order)
	if err != nil {
		return nil, fmt.Errorf("failed to encode provider payload: %w", err)
	}

	now := time.Now()
	payment := &entity.Payment{
		Base:            entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		TenantID:        appt.TenantID,
		AppointmentID:   appt.ID,
		Method:          method,
		Amount:          Round2(order.Amount),
		Status:          mapOrderState(order.Status),
		ProviderRef:     &providerRef,
		PointTerminalID: terminalID,
		CardMode:        cardMode,
		RawPayload:      raw,
	}
	if order.OrderID != "" {
		orderID := order.OrderID
		payment.ProviderOrderID = &orderID
	}

	if err := s.repo.Payment.Upsert(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to persist payment: %w", err)
	}
	return payment, nil
}

func (s *paymentService) chargeResponse(ctx context.Context, appt *entity.Appointment, payment *entity.Payment, order *gateway.Order) (*response.ChargeResponse, error) {
	status, _, _, err := recalcAppointmentPaymentStatus(ctx, s.repo, s.log, appt.TenantID, appt.ID)
	if err != nil {
		return nil, err
	}

	res := &response.ChargeResponse{
		Payment:       response.PaymentToResponse(payment),
		OrderID:       order.OrderID,
		QRCode:        order.QRCode,
		QRCodeBase64:  order.QRCodeBase64,
		TicketURL:     order.TicketURL,
		PaymentStatus: status,
	}
	if !order.ExpiresAt.IsZero() {
		expires := order.ExpiresAt
		res.ExpiresAt = &expires
	}
	return res, nil
}

func (s *paymentService) CreatePixCharge(ctx context.Context, tenantID uuid.UUID, appointmentID string, req *request.PixChargeRequest) (*response.ChargeResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Pix charge validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	appt, err := s.loadChargeable(ctx, tenantID, appointmentID)
	if err != nil {
		return nil, err
	}

	client, err := s.repo.Client.FindByID(ctx, tenantID, appt.ClientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load client: %w", err)
	}
	if client == nil {
		return nil, fmt.Errorf("client not found")
	}

	input := gateway.PixOrderInput{
		AppointmentID: appt.ID.String(),
		Amount:        Round2(req.Amount),
		PayerName:     client.Name,
		Attempt:       req.Attempt,
	}
	if client.Email != nil {
		input.PayerEmail = *client.Email
	}
	if client.Document != nil {
		input.PayerDocument = *client.Document
	}

	order, err := s.gw.CreatePixOrder(ctx, input)
	if err != nil {
		s.log.Warn("Pix order failed", zap.String("appointment_id", appt.ID.String()), zap.Error(err))
		return nil, err
	}

	payment, err := s.upsertFromOrder(ctx, appt, entity.PaymentMethodPix, order, nil, nil)
	if err != nil {
		return nil, err
	}

	s.log.Info("Pix charge created",
		zap.String("appointment_id", appt.ID.String()),
		zap.String("order_id", order.OrderID),
		zap.Float64("amount", payment.Amount),
	)

	return s.chargeResponse(ctx, appt, payment, order)
}

func (s *paymentService) CreateCardCharge(ctx context.Context, tenantID uuid.UUID, appointmentID string, req *request.CardChargeRequest) (*response.ChargeResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Card charge validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	appt, err := s.loadChargeable(ctx, tenantID, appointmentID)
	if err != nil {
		return nil, err
	}

	client, err := s.repo.Client.FindByID(ctx, tenantID, appt.ClientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load client: %w", err)
	}
	if client == nil {
		return nil, fmt.Errorf("client not found")
	}

	input := gateway.CardOrderInput{
		AppointmentID:   appt.ID.String(),
		Amount:          Round2(req.Amount),
		Token:           req.CardToken,
		PaymentMethodID: req.PaymentMethodID,
		Installments:    req.Installments,
		Attempt:         req.Attempt,
	}
	if req.IssuerID != nil {
		input.IssuerID = *req.IssuerID
	}
	if client.Email != nil {
		input.PayerEmail = *client.Email
	}
	if client.Document != nil {
		input.PayerDocument = *client.Document
	}

	order, err := s.gw.CreateCardOrder(ctx, input)
	if err != nil {
		s.log.Warn("Card order failed", zap.String("appointment_id", appt.ID.String()), zap.Error(err))
		return nil, err
	}

	payment, err := s.upsertFromOrder(ctx, appt, entity.PaymentMethodCard, order, nil, nil)
	if err != nil {
		return nil, err
	}

	s.log.Info("Card charge created",
		zap.String("appointment_id", appt.ID.String()),
		zap.String("order_id", order.OrderID),
		zap.Float64("amount", payment.Amount),
	)

	return s.chargeResponse(ctx, appt, payment, order)
}

func (s *paymentService) CreatePointCharge(ctx context.Context, tenantID uuid.UUID, appointmentID string, req *request.PointChargeRequest) (*response.ChargeResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Point charge validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	appt, err := s.loadChargeable(ctx, tenantID, appointmentID)
	if err != nil {
		return nil, err
	}

	order, err := s.gw.CreatePointOrder(ctx, gateway.PointOrderInput{
		AppointmentID: appt.ID.String(),
		Amount:        Round2(req.Amount),
		TerminalID:    req.TerminalID,
		CardMode:      req.CardMode,
		Attempt:       req.Attempt,
	})
	if err != nil {
		s.log.Warn("Point order failed", zap.String("appointment_id", appt.ID.String()), zap.Error(err))
		return nil, err
	}

	terminalID := req.TerminalID
	cardMode := req.CardMode
	payment, err := s.upsertFromOrder(ctx, appt, entity.PaymentMethodCard, order, &terminalID, &cardMode)
	if err != nil {
		return nil, err
	}

	s.log.Info("Point charge dispatched",
		zap.String("appointment_id", appt.ID.String()),
		zap.String("order_id", order.OrderID),
		zap.String("terminal_id", req.TerminalID),
	)

	return s.chargeResponse(ctx, appt, payment, order)
}

func (s *paymentService) PollOrder(ctx context.Context, tenantID uuid.UUID, appointmentID, orderID string) (*response.OrderStatusResponse, error) {
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

	order, err := s.gw.GetOrder(ctx, orderID)
	if err != nil {
		s.log.Warn("Order poll failed", zap.String("order_id", orderID), zap.Error(err))
		return nil, err
	}

	// A provider order is bound to exactly one appointment. A mismatch means
	// the caller is polling someone else's order; refusing keeps a foreign
	// payment from being attached here.
	if order.ExternalReference != "" && order.ExternalReference != appt.ID.String() {
		return nil, fmt.Errorf("order conflict: order %s belongs to another appointment", orderID)
	}

	method := entity.PaymentMethodCard
	var terminalID *string
	if order.TerminalID != "" {
		t := order.TerminalID
		terminalID = &t
	} else if order.PaymentMethodID == "pix" {
		method = entity.PaymentMethodPix
	}

	payment, err := s.upsertFromOrder(ctx, appt, method, order, terminalID, nil)
	if err != nil {
		return nil, err
	}

	status, paidTotal, total, err := recalcAppointmentPaymentStatus(ctx, s.repo, s.log, tenantID, appt.ID)
	if err != nil {
		return nil, err
	}

	return &response.OrderStatusResponse{
		OrderID:       order.OrderID,
		ProviderState: order.ProviderStatus,
		Payment:       response.PaymentToResponse(payment),
		PaymentStatus: status,
		PaidTotal:     paidTotal,
		Total:         total,
	}, nil
}

func (s *paymentService) RecordManualPayment(ctx context.Context, tenantID uuid.UUID, appointmentID string, req *request.ManualPaymentRequest) (*response.PaymentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Manual payment validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	appt, err := s.loadChargeable(ctx, tenantID, appointmentID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	payment := &entity.Payment{
		Base:          entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		TenantID:      tenantID,
		AppointmentID: appt.ID,
		Method:        entity.PaymentMethod(req.Method),
		Amount:        Round2(req.Amount),
		Status:        entity.PaymentStatePaid,
	}

	if err := s.repo.Payment.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	if _, _, _, err := recalcAppointmentPaymentStatus(ctx, s.repo, s.log, tenantID, appt.ID); err != nil {
		return nil, err
	}

	s.log.Info("Manual payment recorded",
		zap.String("appointment_id", appt.ID.String()),
		zap.String("method", req.Method),
		zap.Float64("amount", payment.Amount),
	)

	res := response.PaymentToResponse(payment)
	return &res, nil
}

func (s *paymentService) Waive(ctx context.Context, tenantID uuid.UUID, appointmentID string) error {
	apptID, err := uuid.Parse(appointmentID)
	if err != nil {
		return fmt.Errorf("invalid appointment ID format %s: %w", appointmentID, err)
	}
	appt, err := s.repo.Appointment.FindByID(ctx, tenantID, apptID)
	if err != nil {
		return fmt.Errorf("failed to load appointment: %w", err)
	}
	if appt == nil {
		return fmt.Errorf("appointment not found")
	}
	if appt.PaymentStatus == entity.PaymentStatusWaived {
		return fmt.Errorf("appointment is already waived")
	}
	if appt.PaymentStatus == entity.PaymentStatusPaid {
		return fmt.Errorf("cannot waive a paid appointment")
	}

	if err := s.repo.Appointment.UpdatePaymentStatus(ctx, tenantID, apptID, entity.PaymentStatusWaived); err != nil {
		return fmt.Errorf("failed to waive appointment: %w", err)
	}

	s.log.Info("Appointment waived", zap.String("appointment_id", appointmentID))
	return nil
}

func (s *paymentService) Unwaive(ctx context.Context, tenantID uuid.UUID, appointmentID string) error {
	apptID, err := uuid.Parse(appointmentID)
	if err != nil {
		return fmt.Errorf("invalid appointment ID format %s: %w", appointmentID, err)
	}
	appt, err := s.repo.Appointment.FindByID(ctx, tenantID, apptID)
	if err != nil {
		return fmt.Errorf("failed to load appointment: %w", err)
	}
	if appt == nil {
		return fmt.Errorf("appointment not found")
	}
	if appt.PaymentStatus != entity.PaymentStatusWaived {
		return fmt.Errorf("cannot unwaive an appointment that is not waived")
	}

	// Drop the sticky waived flag first, then let the reducer re-derive the
	// real status from payments and totals.
	if err := s.repo.Appointment.UpdatePaymentStatus(ctx, tenantID, apptID, entity.PaymentStatusPending); err != nil {
		return fmt.Errorf("failed to unwaive appointment: %w", err)
	}
	if _, _, _, err := recalcAppointmentPaymentStatus(ctx, s.repo, s.log, tenantID, apptID); err != nil {
		return err
	}

	s.log.Info("Appointment unwaived", zap.String("appointment_id", appointmentID))
	return nil
}

func (s *paymentService) Recalculate(ctx context.Context, tenantID uuid.UUID, appointmentID string) (*response.OrderStatusResponse, error) {
	apptID, err := uuid.Parse(appointmentID)
	if err != nil {
		return nil, fmt.Errorf("invalid appointment ID format %s: %w", appointmentID, err)
	}

	status, paidTotal, total, err := recalcAppointmentPaymentStatus(ctx, s.repo, s.log, tenantID, apptID)
	if err != nil {
		return nil, err
	}

	return &response.OrderStatusResponse{
		PaymentStatus: status,
		PaidTotal:     paidTotal,
		Total:         total,
	}, nil
}
