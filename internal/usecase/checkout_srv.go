package usecase

import (
	"context"
	"fmt"
	"time"

	"studio-booking/internal/data/entity"
	"studio-booking/internal/data/repository"
	"studio-booking/internal/dto/request"
	"studio-booking/internal/dto/response"
	"studio-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CheckoutService interface {
	Get(ctx context.Context, tenantID uuid.UUID, appointmentID string) (*response.CheckoutResponse, error)
	SetItems(ctx context.Context, tenantID uuid.UUID, appointmentID string, req *request.SetCheckoutItemsRequest) (*response.CheckoutResponse, error)
	ApplyDiscount(ctx context.Context, tenantID uuid.UUID, appointmentID string, req *request.ApplyDiscountRequest) (*response.CheckoutResponse, error)
	RemoveDiscount(ctx context.Context, tenantID uuid.UUID, appointmentID string) (*response.CheckoutResponse, error)
	Confirm(ctx context.Context, tenantID uuid.UUID, appointmentID string) (*response.CheckoutResponse, error)
}

type checkoutService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCheckoutService(repo *repository.Repository, log *zap.Logger) CheckoutService {
	return &checkoutService{
		repo: repo,
		log:  log.With(zap.String("service", "checkout")),
	}
}

func (s *checkoutService) loadAppointment(ctx context.Context, tenantID uuid.UUID, appointmentID string) (*entity.Appointment, error) {
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

func (s *checkoutService) buildResponse(ctx context.Context, checkout *entity.Checkout) (*response.CheckoutResponse, error) {
	items, err := s.repo.CheckoutItem.FindByCheckoutID(ctx, checkout.TenantID, checkout.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load checkout items: %w", err)
	}
	flat := make([]entity.CheckoutItem, 0, len(items))
	for _, item := range items {
		flat = append(flat, *item)
	}
	res := response.CheckoutToResponse(checkout, flat)
	return &res, nil
}

// recompute rereads the items and re-derives subtotal/total under the
// checkout's current discount. Totals are never written directly.
func (s *checkoutService) recompute(ctx context.Context, checkout *entity.Checkout) error {
	items, err := s.repo.CheckoutItem.FindByCheckoutID(ctx, checkout.TenantID, checkout.ID)
	if err != nil {
		return fmt.Errorf("failed to load checkout items: %w", err)
	}

	lines := make([]TotalLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, TotalLine{Amount: item.Amount, Qty: item.Qty})
	}

	var discountValue float64
	if checkout.DiscountValue != nil {
		discountValue = *checkout.DiscountValue
	}
	subtotal, total := ComputeTotals(lines, checkout.DiscountType, discountValue)
	checkout.Subtotal = Round2(subtotal)
	checkout.Total = Round2(total)
	checkout.UpdatedAt = time.Now()

	if err := s.repo.Checkout.Update(ctx, checkout); err != nil {
		return fmt.Errorf("failed to update checkout: %w", err)
	}
	return nil
}

func (s *checkoutService) Get(ctx context.Context, tenantID uuid.UUID, appointmentID string) (*response.CheckoutResponse, error) {
	appt, err := s.loadAppointment(ctx, tenantID, appointmentID)
	if err != nil {
		return nil, err
	}

	checkout, err := s.repo.Checkout.FindByAppointmentID(ctx, tenantID, appt.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load checkout: %w", err)
	}
	if checkout == nil {
		return nil, fmt.Errorf("checkout not found")
	}

	return s.buildResponse(ctx, checkout)
}

func (s *checkoutService) SetItems(ctx context.Context, tenantID uuid.UUID, appointmentID string, req *request.SetCheckoutItemsRequest) (*response.CheckoutResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Set checkout items validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	appt, err := s.loadAppointment(ctx, tenantID, appointmentID)
	if err != nil {
		return nil, err
	}
	if appt.IsCanceled() {
		return nil, fmt.Errorf("cannot modify the checkout of a canceled appointment")
	}

	checkout, err := s.repo.Checkout.FindByAppointmentID(ctx, tenantID, appt.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load checkout: %w", err)
	}
	if checkout == nil {
		now := time.Now()
		checkout = &entity.Checkout{
			Base:          entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
			TenantID:      tenantID,
			AppointmentID: appt.ID,
		}
		if err := s.repo.Checkout.Create(ctx, checkout); err != nil {
			return nil, fmt.Errorf("failed to create checkout: %w", err)
		}
	}
	if checkout.ConfirmedAt != nil {
		return nil, fmt.Errorf("checkout is already confirmed")
	}

	now := time.Now()
	items := make([]*entity.CheckoutItem, 0, len(req.Items))
	for i, item := range req.Items {
		items = append(items, &entity.CheckoutItem{
			BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: now},
			TenantID:   tenantID,
			CheckoutID: checkout.ID,
			ItemType:   entity.CheckoutItemType(item.ItemType),
			Label:      item.Label,
			Qty:        item.Qty,
			Amount:     item.Amount,
			SortOrder:  i,
		})
	}

	if err := s.repo.CheckoutItem.ReplaceForCheckout(ctx, tenantID, checkout.ID, items); err != nil {
		return nil, fmt.Errorf("failed to replace checkout items: %w", err)
	}
	if err := s.recompute(ctx, checkout); err != nil {
		return nil, err
	}
	if _, _, _, err := recalcAppointmentPaymentStatus(ctx, s.repo, s.log, tenantID, appt.ID); err != nil {
		return nil, err
	}

	s.log.Info("Checkout items replaced",
		zap.String("appointment_id", appt.ID.String()),
		zap.Int("items", len(items)),
		zap.Float64("total", checkout.Total),
	)

	return s.buildResponse(ctx, checkout)
}

func (s *checkoutService) ApplyDiscount(ctx context.Context, tenantID uuid.UUID, appointmentID string, req *request.ApplyDiscountRequest) (*response.CheckoutResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Apply discount validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}
	if req.DiscountType == string(entity.DiscountTypePct) && req.Value > 100 {
		return nil, fmt.Errorf("validation failed: percentage discount cannot exceed 100")
	}

	appt, err := s.loadAppointment(ctx, tenantID, appointmentID)
	if err != nil {
		return nil, err
	}
	if appt.IsCanceled() {
		return nil, fmt.Errorf("cannot modify the checkout of a canceled appointment")
	}

	checkout, err := s.repo.Checkout.FindByAppointmentID(ctx, tenantID, appt.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load checkout: %w", err)
	}
	if checkout == nil {
		return nil, fmt.Errorf("checkout not found")
	}
	if checkout.ConfirmedAt != nil {
		return nil, fmt.Errorf("checkout is already confirmed")
	}

	discountType := entity.DiscountType(req.DiscountType)
	value := req.Value
	checkout.DiscountType = &discountType
	checkout.DiscountValue = &value
	checkout.DiscountReason = req.Reason

	if err := s.recompute(ctx, checkout); err != nil {
		return nil, err
	}
	if _, _, _, err := recalcAppointmentPaymentStatus(ctx, s.repo, s.log, tenantID, appt.ID); err != nil {
		return nil, err
	}

	s.log.Info("Discount applied",
		zap.String("appointment_id", appt.ID.String()),
		zap.String("discount_type", req.DiscountType),
		zap.Float64("value", req.Value),
		zap.Float64("total", checkout.Total),
	)

	return s.buildResponse(ctx, checkout)
}

func (s *checkoutService) RemoveDiscount(ctx context.Context, tenantID uuid.UUID, appointmentID string) (*response.CheckoutResponse, error) {
	appt, err := s.loadAppointment(ctx, tenantID, appointmentID)
	if err != nil {
		return nil, err
	}

	checkout, err := s.repo.Checkout.FindByAppointmentID(ctx, tenantID, appt.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load checkout: %w", err)
	}
	if checkout == nil {
		return nil, fmt.Errorf("checkout not found")
	}
	if checkout.ConfirmedAt != nil {
		return nil, fmt.Errorf("checkout is already confirmed")
	}

	checkout.DiscountType = nil
	checkout.DiscountValue = nil
	checkout.DiscountReason = nil

	if err := s.recompute(ctx, checkout); err != nil {
		return nil, err
	}
	if _, _, _, err := recalcAppointmentPaymentStatus(ctx, s.repo, s.log, tenantID, appt.ID); err != nil {
		return nil, err
	}

	s.log.Info("Discount removed", zap.String("appointment_id", appt.ID.String()))

	return s.buildResponse(ctx, checkout)
}

func (s *checkoutService) Confirm(ctx context.Context, tenantID uuid.UUID, appointmentID string) (*response.CheckoutResponse, error) {
	appt, err := s.loadAppointment(ctx, tenantID, appointmentID)
	if err != nil {
		return nil, err
	}
	if appt.IsCanceled() {
		return nil, fmt.Errorf("cannot confirm the checkout of a canceled appointment")
	}

	checkout, err := s.repo.Checkout.FindByAppointmentID(ctx, tenantID, appt.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load checkout: %w", err)
	}
	if checkout == nil {
		return nil, fmt.Errorf("checkout not found")
	}
	if checkout.ConfirmedAt != nil {
		return nil, fmt.Errorf("checkout is already confirmed")
	}

	now := time.Now()
	checkout.ConfirmedAt = &now
	checkout.UpdatedAt = now
	if err := s.repo.Checkout.Update(ctx, checkout); err != nil {
		return nil, fmt.Errorf("failed to confirm checkout: %w", err)
	}

	s.log.Info("Checkout confirmed",
		zap.String("appointment_id", appt.ID.String()),
		zap.Float64("total", checkout.Total),
	)

	return s.buildResponse(ctx, checkout)
}
