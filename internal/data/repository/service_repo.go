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

type ServiceRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*entity.Service, error)
	FindAllActive(ctx context.Context, tenantID uuid.UUID) ([]*entity.Service, error)
}

type serviceRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewServiceRepository(db database.PgxIface, log *zap.Logger) ServiceRepository {
	return &serviceRepository{
		db:  db,
		log: log.With(zap.String("repository", "service")),
	}
}

const serviceColumns = `
	id, tenant_id, name, duration_minutes, price, home_visit_available,
	buffer_before, buffer_after, home_buffer_before, home_buffer_after,
	custom_buffer, active, created_at, updated_at`

func scanService(row pgx.Row) (*entity.Service, error) {
	var svc entity.Service
	err := row.Scan(
		&svc.ID,
		&svc.TenantID,
		&svc.Name,
		&svc.DurationMinutes,
		&svc.Price,
		&svc.HomeVisitAvailable,
		&svc.BufferBefore,
		&svc.BufferAfter,
		&svc.HomeBufferBefore,
		&svc.HomeBufferAfter,
		&svc.CustomBuffer,
		&svc.Active,
		&svc.CreatedAt,
		&svc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *serviceRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*entity.Service, error) {
	query := `SELECT` + serviceColumns + `
		FROM services
		WHERE tenant_id = $1 AND id = $2
	`

	svc, err := scanService(r.db.QueryRow(ctx, query, tenantID, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find service by ID",
			zap.Error(err),
			zap.String("service_id", id.String()),
		)
		return nil, fmt.Errorf("find service by ID %s: %w", id.String(), err)
	}

	return svc, nil
}

func (r *serviceRepository) FindAllActive(ctx context.Context, tenantID uuid.UUID) ([]*entity.Service, error) {
	query := `SELECT` + serviceColumns + `
		FROM services
		WHERE tenant_id = $1 AND active = true
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		r.log.Error("Failed to list services", zap.Error(err))
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()

	var services []*entity.Service
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		services = append(services, svc)
	}

	return services, rows.Err()
}
