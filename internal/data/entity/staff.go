package entity

import (
	"github.com/google/uuid"
)

type StaffRole string

const (
	RoleProfessional StaffRole = "professional"
	RoleAdmin        StaffRole = "admin"
)

type Staff struct {
	Base
	TenantID     uuid.UUID `db:"tenant_id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password"`
	Role         StaffRole `db:"role"`
	IsActive     bool      `db:"is_active"`
}
