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

type SettingRepository interface {
	FindByTenant(ctx context.Context, tenantID uuid.UUID) (*entity.Setting, error)
}

type settingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSettingRepository(db database.PgxIface, log *zap.Logger) SettingRepository {
	return &settingRepository{
		db:  db,
		log: log.With(zap.String("repository", "setting")),
	}
}

func (r *settingRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) (*entity.Setting, error) {
	query := `
		SELECT id, tenant_id, buffer_before, buffer_after,
		       home_buffer_before, home_buffer_after,
		       studio_buffer_before, studio_buffer_after,
		       default_buffer, currency, cancellation_window_hours,
		       created_at, updated_at
		FROM settings
		WHERE tenant_id = $1
	`

	var setting entity.Setting
	err := r.db.QueryRow(ctx, query, tenantID).Scan(
		&setting.ID,
		&setting.TenantID,
		&setting.BufferBefore,
		&setting.BufferAfter,
		&setting.HomeBufferBefore,
		&setting.HomeBufferAfter,
		&setting.StudioBufferBefore,
		&setting.StudioBufferAfter,
		&setting.DefaultBuffer,
		&setting.Currency,
		&setting.CancellationWindowHours,
		&setting.CreatedAt,
		&setting.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find settings", zap.Error(err))
		return nil, fmt.Errorf("find settings for tenant %s: %w", tenantID.String(), err)
	}

	return &setting, nil
}
