package repository

import (
	"context"
	"fmt"

	"studio-booking/internal/data/entity"
	"studio-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CheckoutItemRepository interface {
	FindByCheckoutID(ctx context.Context, tenantID, checkoutID uuid.UUID) ([]*entity.CheckoutItem, error)

	// ReplaceForCheckout swaps the full line-item set atomically; the items
	// are the authoritative decomposition of the charge.
	ReplaceForCheckout(ctx context.Context, tenantID, checkoutID uuid.UUID, items []*entity.CheckoutItem) error
}

type checkoutItemRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCheckoutItemRepository(db database.PgxIface, log *zap.Logger) CheckoutItemRepository {
	return &checkoutItemRepository{
		db:  db,
		log: log.With(zap.String("repository", "checkout_item")),
	}
}

func (r *checkoutItemRepository) FindByCheckoutID(ctx context.Context, tenantID, checkoutID uuid.UUID) ([]*entity.CheckoutItem, error) {
	query := `
		SELECT id, tenant_id, checkout_id, item_type, label, qty, amount, sort_order, created_at
		FROM checkout_items
		WHERE tenant_id = $1 AND checkout_id = $2
		ORDER BY sort_order
	`

	rows, err := r.db.Query(ctx, query, tenantID, checkoutID)
	if err != nil {
		r.log.Error("Failed to find checkout items",
			zap.Error(err),
			zap.String("checkout_id", checkoutID.String()),
		)
		return nil, fmt.Errorf("find items for checkout %s: %w", checkoutID.String(), err)
	}
	defer rows.Close()

	var items []*entity.CheckoutItem
	for rows.Next() {
		var item entity.CheckoutItem
		if err := rows.Scan(
			&item.ID,
			&item.TenantID,
			&item.CheckoutID,
			&item.ItemType,
			&item.Label,
			&item.Qty,
			&item.Amount,
			&item.SortOrder,
			&item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan checkout item: %w", err)
		}
		items = append(items, &item)
	}

	return items, rows.Err()
}

func (r *checkoutItemRepository) ReplaceForCheckout(ctx context.Context, tenantID, checkoutID uuid.UUID, items []*entity.CheckoutItem) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin replace checkout items: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM checkout_items WHERE tenant_id = $1 AND checkout_id = $2`,
		tenantID, checkoutID,
	); err != nil {
		r.log.Error("Failed to clear checkout items",
			zap.Error(err),
			zap.String("checkout_id", checkoutID.String()),
		)
		return fmt.Errorf("clear items for checkout %s: %w", checkoutID.String(), err)
	}

	insert := `
		INSERT INTO checkout_items (id, tenant_id, checkout_id, item_type, label,
		                            qty, amount, sort_order, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	for _, item := range items {
		if _, err := tx.Exec(ctx, insert,
			item.ID,
			item.TenantID,
			item.CheckoutID,
			item.ItemType,
			item.Label,
			item.Qty,
			item.Amount,
			item.SortOrder,
			item.CreatedAt,
		); err != nil {
			r.log.Error("Failed to insert checkout item",
				zap.Error(err),
				zap.String("checkout_id", checkoutID.String()),
				zap.String("label", item.Label),
			)
			return fmt.Errorf("insert item %q for checkout %s: %w",
				item.Label, checkoutID.String(), err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit replace checkout items: %w", err)
	}

	return nil
}
