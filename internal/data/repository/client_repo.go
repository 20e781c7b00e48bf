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

type ClientRepository interface {
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*entity.Client, error)
}

type clientRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewClientRepository(db database.PgxIface, log *zap.Logger) ClientRepository {
	return &clientRepository{
		db:  db,
		log: log.With(zap.String("repository", "client")),
	}
}

func (r *clientRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*entity.Client, error) {
	query := `
		SELECT id, tenant_id, name, phone, email, document, created_at, updated_at
		FROM clients
		WHERE tenant_id = $1 AND id = $2
	`

	var client entity.Client
	err := r.db.QueryRow(ctx, query, tenantID, id).Scan(
		&client.ID,
		&client.TenantID,
		&client.Name,
		&client.Phone,
		&client.Email,
		&client.Document,
		&client.CreatedAt,
		&client.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find client by ID",
			zap.Error(err),
			zap.String("client_id", id.String()),
		)
		return nil, fmt.Errorf("find client by ID %s: %w", id.String(), err)
	}

	return &client, nil
}
