package entity

import (
	"github.com/google/uuid"
)

// BusinessHour holds one weekday's opening window. Times are wall-clock
// "HH:MM" strings in the business time zone.
type BusinessHour struct {
	BaseSimple
	TenantID uuid.UUID `db:"tenant_id"`
	Weekday  int       `db:"weekday"` // 0 = Sunday
	OpensAt  string    `db:"opens_at"`
	ClosesAt string    `db:"closes_at"`
	Closed   bool      `db:"closed"`
}
