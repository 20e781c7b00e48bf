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

type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*entity.Payment, error)
	FindByAppointmentID(ctx context.Context, tenantID, appointmentID uuid.UUID) ([]*entity.Payment, error)
	SumPaidByAppointment(ctx context.Context, tenantID, appointmentID uuid.UUID) (float64, error)

	// Upsert is keyed by (tenant_id, provider_ref). Re-processing the same
	// provider payment updates amount/status/payload in place; terminal id,
	// card mode and payment-method metadata are never regressed to null.
	Upsert(ctx context.Context, payment *entity.Payment) error
}

type paymentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPaymentRepository(db database.PgxIface, log *zap.Logger) PaymentRepository {
	return &paymentRepository{
		db:  db,
		log: log.With(zap.String("repository", "payment")),
	}
}

const paymentColumns = `
	id, tenant_id, appointment_id, method, amount, status, provider_ref,
	provider_order_id, point_terminal_id, card_mode, raw_payload,
	created_at, updated_at`

func scanPayment(row pgx.Row) (*entity.Payment, error) {
	var payment entity.Payment
	err := row.Scan(
		&payment.ID,
		&payment.TenantID,
		&payment.AppointmentID,
		&payment.Method,
		&payment.Amount,
		&payment.Status,
		&payment.ProviderRef,
		&payment.ProviderOrderID,
		&payment.PointTerminalID,
		&payment.CardMode,
		&payment.RawPayload,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	query := `
		INSERT INTO payments (
			id, tenant_id, appointment_id, method, amount, status, provider_ref,
			provider_order_id, point_terminal_id, card_mode, raw_payload,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.Exec(ctx, query,
		payment.ID,
		payment.TenantID,
		payment.AppointmentID,
		payment.Method,
		payment.Amount,
		payment.Status,
		payment.ProviderRef,
		payment.ProviderOrderID,
		payment.PointTerminalID,
		payment.CardMode,
		payment.RawPayload,
		payment.CreatedAt,
		payment.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create payment",
			zap.Error(err),
			zap.String("appointment_id", payment.AppointmentID.String()),
			zap.String("method", string(payment.Method)),
		)
		return fmt.Errorf("create payment for appointment %s: %w",
			payment.AppointmentID.String(), err)
	}

	return nil
}

func (r *paymentRepository) Upsert(ctx context.Context, payment *entity.Payment) error {
	query := `
		INSERT INTO payments (
			id, tenant_id, appointment_id, method, amount, status, provider_ref,
			provider_order_id, point_terminal_id, card_mode, raw_payload,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (tenant_id, provider_ref) DO UPDATE SET
			amount            = EXCLUDED.amount,
			status            = EXCLUDED.status,
			raw_payload       = EXCLUDED.raw_payload,
			provider_order_id = COALESCE(EXCLUDED.provider_order_id, payments.provider_order_id),
			point_terminal_id = COALESCE(EXCLUDED.point_terminal_id, payments.point_terminal_id),
			card_mode         = COALESCE(EXCLUDED.card_mode, payments.card_mode),
			updated_at        = NOW()
	`

	_, err := r.db.Exec(ctx, query,
		payment.ID,
		payment.TenantID,
		payment.AppointmentID,
		payment.Method,
		payment.Amount,
		payment.Status,
		payment.ProviderRef,
		payment.ProviderOrderID,
		payment.PointTerminalID,
		payment.CardMode,
		payment.RawPayload,
		payment.CreatedAt,
		payment.UpdatedAt,
	)

	if err != nil {
		ref := ""
		if payment.ProviderRef != nil {
			ref = *payment.ProviderRef
		}
		r.log.Error("Failed to upsert payment",
			zap.Error(err),
			zap.String("appointment_id", payment.AppointmentID.String()),
			zap.String("provider_ref", ref),
		)
		return fmt.Errorf("upsert payment %s: %w", ref, err)
	}

	return nil
}

func (r *paymentRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*entity.Payment, error) {
	query := `SELECT` + paymentColumns + `
		FROM payments
		WHERE tenant_id = $1 AND id = $2
	`

	payment, err := scanPayment(r.db.QueryRow(ctx, query, tenantID, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment by ID",
			zap.Error(err),
			zap.String("payment_id", id.String()),
		)
		return nil, fmt.Errorf("find payment by ID %s: %w", id.String(), err)
	}

	return payment, nil
}

func (r *paymentRepository) FindByAppointmentID(ctx context.Context, tenantID, appointmentID uuid.UUID) ([]*entity.Payment, error) {
	query := `SELECT` + paymentColumns + `
		FROM payments
		WHERE tenant_id = $1 AND appointment_id = $2
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, tenantID, appointmentID)
	if err != nil {
		r.log.Error("Failed to find payments by appointment ID",
			zap.Error(err),
			zap.String("appointment_id", appointmentID.String()),
		)
		return nil, fmt.Errorf("find payments for appointment %s: %w",
			appointmentID.String(), err)
	}
	defer rows.Close()

	var payments []*entity.Payment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		payments = append(payments, payment)
	}

	return payments, rows.Err()
}

func (r *paymentRepository) SumPaidByAppointment(ctx context.Context, tenantID, appointmentID uuid.UUID) (float64, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM payments
		WHERE tenant_id = $1 AND appointment_id = $2 AND status = 'paid'
	`

	var total float64
	if err := r.db.QueryRow(ctx, query, tenantID, appointmentID).Scan(&total); err != nil {
		r.log.Error("Failed to sum paid payments",
			zap.Error(err),
			zap.String("appointment_id", appointmentID.String()),
		)
		return 0, fmt.Errorf("sum paid payments for appointment %s: %w",
			appointmentID.String(), err)
	}

	return total, nil
}
