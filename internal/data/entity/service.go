package entity

import (
	"github.com/google/uuid"
)

// Service is a bookable catalog entry. The nullable buffer columns feed the
// buffer resolution cascade: BufferBefore/After are service-specific
// overrides per visit type, CustomBuffer is the service's generic buffer.
type Service struct {
	Base
	TenantID           uuid.UUID `db:"tenant_id"`
	Name               string    `db:"name"`
	DurationMinutes    int       `db:"duration_minutes"`
	Price              float64   `db:"price"`
	HomeVisitAvailable bool      `db:"home_visit_available"`

	BufferBefore     *float64 `db:"buffer_before"`
	BufferAfter      *float64 `db:"buffer_after"`
	HomeBufferBefore *float64 `db:"home_buffer_before"`
	HomeBufferAfter  *float64 `db:"home_buffer_after"`
	CustomBuffer     *float64 `db:"custom_buffer"`

	Active bool `db:"active"`
}
