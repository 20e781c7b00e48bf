package repository

import (
	"context"
	"fmt"

	"studio-booking/internal/data/entity"
	"studio-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CheckoutRepository interface {
	Create(ctx context.Context, checkout *entity.Checkout) error
	FindByAppointmentID(ctx context.Context, tenantID, appointmentID uuid.UUID) (*entity.Checkout, error)
	Update(ctx context.Context, checkout *entity.Checkout) error
}

type checkoutRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCheckoutRepository(db database.PgxIface, log *zap.Logger) CheckoutRepository {
	return &checkoutRepository{
		db:  db,
		log: log.With(zap.String("repository", "checkout")),
	}
}

func (r *checkoutRepository) Create(ctx context.Context, checkout *entity.Checkout) error {
	query := `
		INSERT INTO checkouts (id, tenant_id, appointment_id, subtotal, total,
		                       discount_type, discount_value, discount_reason,
		                       confirmed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		checkout.ID,
		checkout.TenantID,
		checkout.AppointmentID,
		checkout.Subtotal,
		checkout.Total,
		checkout.DiscountType,
		checkout.DiscountValue,
		checkout.DiscountReason,
		checkout.ConfirmedAt,
		checkout.CreatedAt,
		checkout.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create checkout",
			zap.Error(err),
			zap.String("appointment_id", checkout.AppointmentID.String()),
		)
		return fmt.Errorf("create checkout for appointment %s: %w",
			checkout.AppointmentID.String(), err)
	}

	return nil
}

func (r *checkoutRepository) FindByAppointmentID(ctx context.Context, tenantID, appointmentID uuid.UUID) (*entity.Checkout, error) {
	query := `
		SELECT id, tenant_id, appointment_id, subtotal, total,
		       discount_type, discount_value, discount_reason,
		       confirmed_at, created_at, updated_at
		FROM checkouts
		WHERE tenant_id = $1 AND appointment_id = $2
	`

	var checkout entity.Checkout
	err := r.db.QueryRow(ctx, query, tenantID, appointmentID).Scan(
		&checkout.ID,
		&checkout.TenantID,
		&checkout.AppointmentID,
		&checkout.Subtotal,
		&checkout.Total,
		&checkout.DiscountType,
		&checkout.DiscountValue,
		&checkout.DiscountReason,
		&checkout.ConfirmedAt,
		&checkout.CreatedAt,
		&checkout.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find checkout by appointment ID",
			zap.Error(err),
			zap.String("appointment_id", appointmentID.String()),
		)
		return nil, fmt.Errorf("find checkout for appointment %s: %w",
			appointmentID.String(), err)
	}

	return &checkout, nil
}

func (r *checkoutRepository) Update(ctx context.Context, checkout *entity.Checkout) error {
	query := `
		UPDATE checkouts
		SET subtotal = $3, total = $4, discount_type = $5, discount_value = $6,
		    discount_reason = $7, confirmed_at = $8, updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2
	`

	result, err := r.db.Exec(ctx, query,
		checkout.TenantID,
		checkout.ID,
		checkout.Subtotal,
		checkout.Total,
		checkout.DiscountType,
		checkout.DiscountValue,
		checkout.DiscountReason,
		checkout.ConfirmedAt,
	)

	if err != nil {
		r.log.Error("Failed to update checkout",
			zap.Error(err),
			zap.String("checkout_id", checkout.ID.String()),
		)
		return fmt.Errorf("update checkout %s: %w", checkout.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("checkout %s not found", checkout.ID.String())
	}

	return nil
}
