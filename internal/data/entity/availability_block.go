package entity

import (
	"time"

	"github.com/google/uuid"
)

// AvailabilityBlock is a manually declared unavailable interval.
// Blocks are created and deleted in bulk by month and never merged.
type AvailabilityBlock struct {
	BaseSimple
	TenantID  uuid.UUID `db:"tenant_id"`
	StartAt   time.Time `db:"start_at"`
	EndAt     time.Time `db:"end_at"`
	BlockType *string   `db:"block_type"`
}
