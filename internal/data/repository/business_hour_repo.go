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

type BusinessHourRepository interface {
	FindByWeekday(ctx context.Context, tenantID uuid.UUID, weekday int) (*entity.BusinessHour, error)
	FindAll(ctx context.Context, tenantID uuid.UUID) ([]*entity.BusinessHour, error)
}

type businessHourRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBusinessHourRepository(db database.PgxIface, log *zap.Logger) BusinessHourRepository {
	return &businessHourRepository{
		db:  db,
		log: log.With(zap.String("repository", "business_hour")),
	}
}

func (r *businessHourRepository) FindByWeekday(ctx context.Context, tenantID uuid.UUID, weekday int) (*entity.BusinessHour, error) {
	query := `
		SELECT id, tenant_id, weekday, opens_at, closes_at, closed, created_at
		FROM business_hours
		WHERE tenant_id = $1 AND weekday = $2
	`

	var bh entity.BusinessHour
	err := r.db.QueryRow(ctx, query, tenantID, weekday).Scan(
		&bh.ID,
		&bh.TenantID,
		&bh.Weekday,
		&bh.OpensAt,
		&bh.ClosesAt,
		&bh.Closed,
		&bh.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find business hours",
			zap.Error(err),
			zap.Int("weekday", weekday),
		)
		return nil, fmt.Errorf("find business hours for weekday %d: %w", weekday, err)
	}

	return &bh, nil
}

func (r *businessHourRepository) FindAll(ctx context.Context, tenantID uuid.UUID) ([]*entity.BusinessHour, error) {
	query := `
		SELECT id, tenant_id, weekday, opens_at, closes_at, closed, created_at
		FROM business_hours
		WHERE tenant_id = $1
		ORDER BY weekday
	`

	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		r.log.Error("Failed to list business hours", zap.Error(err))
		return nil, fmt.Errorf("list business hours: %w", err)
	}
	defer rows.Close()

	var hours []*entity.BusinessHour
	for rows.Next() {
		var bh entity.BusinessHour
		if err := rows.Scan(
			&bh.ID,
			&bh.TenantID,
			&bh.Weekday,
			&bh.OpensAt,
			&bh.ClosesAt,
			&bh.Closed,
			&bh.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan business hour: %w", err)
		}
		hours = append(hours, &bh)
	}

	return hours, rows.Err()
}
