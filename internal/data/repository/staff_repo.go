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

type StaffRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Staff, error)
	FindByUsername(ctx context.Context, username string) (*entity.Staff, error)
}

type staffRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewStaffRepository(db database.PgxIface, log *zap.Logger) StaffRepository {
	return &staffRepository{
		db:  db,
		log: log.With(zap.String("repository", "staff")),
	}
}

const staffColumns = `
	id, tenant_id, username, email, password, role, is_active, created_at, updated_at`

func scanStaff(row pgx.Row) (*entity.Staff, error) {
	var staff entity.Staff
	err := row.Scan(
		&staff.ID,
		&staff.TenantID,
		&staff.Username,
		&staff.Email,
		&staff.PasswordHash,
		&staff.Role,
		&staff.IsActive,
		&staff.CreatedAt,
		&staff.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *staffRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Staff, error) {
	query := `SELECT` + staffColumns + ` FROM staff WHERE id = $1`

	staff, err := scanStaff(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find staff by ID",
			zap.Error(err),
			zap.String("staff_id", id.String()),
		)
		return nil, fmt.Errorf("find staff by ID %s: %w", id.String(), err)
	}

	return staff, nil
}

func (r *staffRepository) FindByUsername(ctx context.Context, username string) (*entity.Staff, error) {
	query := `SELECT` + staffColumns + ` FROM staff WHERE username = $1`

	staff, err := scanStaff(r.db.QueryRow(ctx, query, username))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find staff by username",
			zap.Error(err),
			zap.String("username", username),
		)
		return nil, fmt.Errorf("find staff by username %s: %w", username, err)
	}

	return staff, nil
}
