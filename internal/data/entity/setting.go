package entity

import (
	"github.com/google/uuid"
)

// Setting is the per-tenant singleton row of scheduling defaults.
type Setting struct {
	Base
	TenantID uuid.UUID `db:"tenant_id"`

	// Tenant-wide buffer override, applies to every service and visit type.
	BufferBefore *float64 `db:"buffer_before"`
	BufferAfter  *float64 `db:"buffer_after"`

	// Visit-type defaults.
	HomeBufferBefore   *float64 `db:"home_buffer_before"`
	HomeBufferAfter    *float64 `db:"home_buffer_after"`
	StudioBufferBefore *float64 `db:"studio_buffer_before"`
	StudioBufferAfter  *float64 `db:"studio_buffer_after"`

	// Last resort before the configured fallback.
	DefaultBuffer *float64 `db:"default_buffer"`

	Currency                string `db:"currency"`
	CancellationWindowHours int    `db:"cancellation_window_hours"`
}
