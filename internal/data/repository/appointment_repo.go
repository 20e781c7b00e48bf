package repository

import (
	"context"
	"fmt"
	"time"

	"studio-booking/internal/data/entity"
	"studio-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type AppointmentRepository interface {
	Create(ctx context.Context, appt *entity.Appointment) error
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*entity.Appointment, error)
	FindAll(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*entity.Appointment, error)
	Count(ctx context.Context, tenantID uuid.UUID) (int64, error)

	// FindActiveBetween returns non-canceled appointments whose interval
	// intersects [from, to).
	FindActiveBetween(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]*entity.Appointment, error)

	UpdateTime(ctx context.Context, tenantID, id uuid.UUID, startAt time.Time, totalDurationMinutes, plannedSeconds int) error
	UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, status entity.AppointmentStatus) error
	UpdatePaymentStatus(ctx context.Context, tenantID, id uuid.UUID, status entity.PaymentStatus) error
	UpdateTimer(ctx context.Context, appt *entity.Appointment) error
}

type appointmentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAppointmentRepository(db database.PgxIface, log *zap.Logger) AppointmentRepository {
	return &appointmentRepository{
		db:  db,
		log: log.With(zap.String("repository", "appointment")),
	}
}

const appointmentColumns = `
	id, tenant_id, client_id, service_id, start_at, total_duration_minutes,
	status, payment_status, price, price_override, is_home_visit,
	displacement_fee, displacement_km,
	timer_status, timer_started_at, timer_paused_at, paused_total_seconds,
	planned_seconds, actual_seconds, created_at, updated_at`

func scanAppointment(row pgx.Row) (*entity.Appointment, error) {
	var appt entity.Appointment
	err := row.Scan(
		&appt.ID,
		&appt.TenantID,
		&appt.ClientID,
		&appt.ServiceID,
		&appt.StartAt,
		&appt.TotalDurationMinutes,
		&appt.Status,
		&appt.PaymentStatus,
		&appt.Price,
		&appt.PriceOverride,
		&appt.IsHomeVisit,
		&appt.DisplacementFee,
		&appt.DisplacementKm,
		&appt.TimerStatus,
		&appt.TimerStartedAt,
		&appt.TimerPausedAt,
		&appt.PausedTotalSeconds,
		&appt.PlannedSeconds,
		&appt.ActualSeconds,
		&appt.CreatedAt,
		&appt.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

func (r *appointmentRepository) Create(ctx context.Context, appt *entity.Appointment) error {
	query := `
		INSERT INTO appointments (
			id, tenant_id, client_id, service_id, start_at, total_duration_minutes,
			status, payment_status, price, price_override, is_home_visit,
			displacement_fee, displacement_km,
			timer_status, timer_started_at, timer_paused_at, paused_total_seconds,
			planned_seconds, actual_seconds, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		        $15, $16, $17, $18, $19, $20, $21)
	`

	_, err := r.db.Exec(ctx, query,
		appt.ID,
		appt.TenantID,
		appt.ClientID,
		appt.ServiceID,
		appt.StartAt,
		appt.TotalDurationMinutes,
		appt.Status,
		appt.PaymentStatus,
		appt.Price,
		appt.PriceOverride,
		appt.IsHomeVisit,
		appt.DisplacementFee,
		appt.DisplacementKm,
		appt.TimerStatus,
		appt.TimerStartedAt,
		appt.TimerPausedAt,
		appt.PausedTotalSeconds,
		appt.PlannedSeconds,
		appt.ActualSeconds,
		appt.CreatedAt,
		appt.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create appointment",
			zap.Error(err),
			zap.String("client_id", appt.ClientID.String()),
			zap.String("service_id", appt.ServiceID.String()),
		)
		return fmt.Errorf("create appointment: %w", err)
	}

	return nil
}

func (r *appointmentRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*entity.Appointment, error) {
	query := `SELECT` + appointmentColumns + `
		FROM appointments
		WHERE tenant_id = $1 AND id = $2
	`

	appt, err := scanAppointment(r.db.QueryRow(ctx, query, tenantID, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find appointment by ID",
			zap.Error(err),
			zap.String("appointment_id", id.String()),
		)
		return nil, fmt.Errorf("find appointment by ID %s: %w", id.String(), err)
	}

	return appt, nil
}

func (r *appointmentRepository) FindAll(ctx context.Context, tenantID uuid.UUID, limit, offset int) ([]*entity.Appointment, error) {
	query := `SELECT` + appointmentColumns + `
		FROM appointments
		WHERE tenant_id = $1
		ORDER BY start_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		r.log.Error("Failed to list appointments", zap.Error(err))
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()

	var appts []*entity.Appointment
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		appts = append(appts, appt)
	}

	return appts, rows.Err()
}

func (r *appointmentRepository) Count(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM appointments WHERE tenant_id = $1`

	var total int64
	if err := r.db.QueryRow(ctx, query, tenantID).Scan(&total); err != nil {
		r.log.Error("Failed to count appointments", zap.Error(err))
		return 0, fmt.Errorf("count appointments: %w", err)
	}

	return total, nil
}

func (r *appointmentRepository) FindActiveBetween(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]*entity.Appointment, error) {
	query := `SELECT` + appointmentColumns + `
		FROM appointments
		WHERE tenant_id = $1
		  AND status NOT IN ('canceled_by_client', 'canceled_by_studio')
		  AND start_at < $3
		  AND start_at + (total_duration_minutes * interval '1 minute') > $2
		ORDER BY start_at
	`

	rows, err := r.db.Query(ctx, query, tenantID, from, to)
	if err != nil {
		r.log.Error("Failed to find appointments in range",
			zap.Error(err),
			zap.Time("from", from),
			zap.Time("to", to),
		)
		return nil, fmt.Errorf("find appointments between %s and %s: %w",
			from.Format(time.RFC3339), to.Format(time.RFC3339), err)
	}
	defer rows.Close()

	var appts []*entity.Appointment
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		appts = append(appts, appt)
	}

	return appts, rows.Err()
}

func (r *appointmentRepository) UpdateTime(ctx context.Context, tenantID, id uuid.UUID, startAt time.Time, totalDurationMinutes, plannedSeconds int) error {
	query := `
		UPDATE appointments
		SET start_at = $3, total_duration_minutes = $4, planned_seconds = $5, updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2
	`

	result, err := r.db.Exec(ctx, query, tenantID, id, startAt, totalDurationMinutes, plannedSeconds)
	if err != nil {
		r.log.Error("Failed to update appointment time",
			zap.Error(err),
			zap.String("appointment_id", id.String()),
		)
		return fmt.Errorf("update appointment %s time: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("appointment %s not found", id.String())
	}

	return nil
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, status entity.AppointmentStatus) error {
	query := `
		UPDATE appointments
		SET status = $3, updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2
	`

	result, err := r.db.Exec(ctx, query, tenantID, id, status)
	if err != nil {
		r.log.Error("Failed to update appointment status",
			zap.Error(err),
			zap.String("appointment_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update appointment %s status to %s: %w", id.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("appointment %s not found", id.String())
	}

	return nil
}

func (r *appointmentRepository) UpdatePaymentStatus(ctx context.Context, tenantID, id uuid.UUID, status entity.PaymentStatus) error {
	query := `
		UPDATE appointments
		SET payment_status = $3, updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2
	`

	result, err := r.db.Exec(ctx, query, tenantID, id, status)
	if err != nil {
		r.log.Error("Failed to update payment status",
			zap.Error(err),
			zap.String("appointment_id", id.String()),
			zap.String("payment_status", string(status)),
		)
		return fmt.Errorf("update appointment %s payment status to %s: %w", id.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("appointment %s not found", id.String())
	}

	return nil
}

func (r *appointmentRepository) UpdateTimer(ctx context.Context, appt *entity.Appointment) error {
	query := `
		UPDATE appointments
		SET timer_status = $3, timer_started_at = $4, timer_paused_at = $5,
		    paused_total_seconds = $6, actual_seconds = $7, status = $8, updated_at = NOW()
		WHERE tenant_id = $1 AND id = $2
	`

	result, err := r.db.Exec(ctx, query,
		appt.TenantID,
		appt.ID,
		appt.TimerStatus,
		appt.TimerStartedAt,
		appt.TimerPausedAt,
		appt.PausedTotalSeconds,
		appt.ActualSeconds,
		appt.Status,
	)

	if err != nil {
		r.log.Error("Failed to update appointment timer",
			zap.Error(err),
			zap.String("appointment_id", appt.ID.String()),
		)
		return fmt.Errorf("update appointment %s timer: %w", appt.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("appointment %s not found", appt.ID.String())
	}

	return nil
}
