package repository

import (
	"context"
	"fmt"
	"time"

	"studio-booking/internal/data/entity"
	"studio-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AvailabilityBlockRepository interface {
	CreateBatch(ctx context.Context, blocks []*entity.AvailabilityBlock) error
	FindBetween(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]*entity.AvailabilityBlock, error)
	DeleteBetween(ctx context.Context, tenantID uuid.UUID, from, to time.Time, blockType *string) (int64, error)
}

type availabilityBlockRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAvailabilityBlockRepository(db database.PgxIface, log *zap.Logger) AvailabilityBlockRepository {
	return &availabilityBlockRepository{
		db:  db,
		log: log.With(zap.String("repository", "availability_block")),
	}
}

func (r *availabilityBlockRepository) CreateBatch(ctx context.Context, blocks []*entity.AvailabilityBlock) error {
	if len(blocks) == 0 {
		return nil
	}

	query := `
		INSERT INTO availability_blocks (id, tenant_id, start_at, end_at, block_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	for _, block := range blocks {
		_, err := r.db.Exec(ctx, query,
			block.ID,
			block.TenantID,
			block.StartAt,
			block.EndAt,
			block.BlockType,
			block.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to create availability block",
				zap.Error(err),
				zap.Time("start_at", block.StartAt),
				zap.Time("end_at", block.EndAt),
			)
			return fmt.Errorf("create availability block at %s: %w",
				block.StartAt.Format(time.RFC3339), err)
		}
	}

	return nil
}

func (r *availabilityBlockRepository) FindBetween(ctx context.Context, tenantID uuid.UUID, from, to time.Time) ([]*entity.AvailabilityBlock, error) {
	query := `
		SELECT id, tenant_id, start_at, end_at, block_type, created_at
		FROM availability_blocks
		WHERE tenant_id = $1
		  AND start_at < $3
		  AND end_at > $2
		ORDER BY start_at
	`

	rows, err := r.db.Query(ctx, query, tenantID, from, to)
	if err != nil {
		r.log.Error("Failed to find availability blocks",
			zap.Error(err),
			zap.Time("from", from),
			zap.Time("to", to),
		)
		return nil, fmt.Errorf("find availability blocks: %w", err)
	}
	defer rows.Close()

	var blocks []*entity.AvailabilityBlock
	for rows.Next() {
		var block entity.AvailabilityBlock
		if err := rows.Scan(
			&block.ID,
			&block.TenantID,
			&block.StartAt,
			&block.EndAt,
			&block.BlockType,
			&block.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan availability block: %w", err)
		}
		blocks = append(blocks, &block)
	}

	return blocks, rows.Err()
}

func (r *availabilityBlockRepository) DeleteBetween(ctx context.Context, tenantID uuid.UUID, from, to time.Time, blockType *string) (int64, error) {
	query := `
		DELETE FROM availability_blocks
		WHERE tenant_id = $1
		  AND start_at >= $2
		  AND start_at < $3
		  AND ($4::text IS NULL OR block_type = $4)
	`

	result, err := r.db.Exec(ctx, query, tenantID, from, to, blockType)
	if err != nil {
		r.log.Error("Failed to delete availability blocks",
			zap.Error(err),
			zap.Time("from", from),
			zap.Time("to", to),
		)
		return 0, fmt.Errorf("delete availability blocks: %w", err)
	}

	return result.RowsAffected(), nil
}
