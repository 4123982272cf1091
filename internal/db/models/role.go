package models

import "time"

// RoleSuperAdmin is the slug of the implicit super-user role. Operations
// gated on this slug (for example changing another user's role) bypass the
// fine-grained permission checks entirely.
const RoleSuperAdmin = "super-admin"

// Role represents a named, reusable bundle of permissions in the role-based
// access control (RBAC) system. Roles are assigned to users; the effective
// permission set of a user is the union across all held roles.
type Role struct {
	// ID is the unique identifier for the role.
	ID uint `gorm:"primaryKey"`
	// Name is the unique display name of the role (e.g., "Warehouse Manager").
	Name string `gorm:"unique;size:100;not null"`
	// Slug is the unique machine readable identifier of the role (e.g., "manager").
	Slug string `gorm:"unique;size:100;not null"`
	// Description provides a human-readable description of the role's purpose.
	Description string `gorm:"size:255"`
	// Active indicates whether the role participates in authorization checks.
	Active bool `gorm:"default:true"`
	// IsSystem indicates if this is a system role that cannot be deleted.
	IsSystem bool `gorm:"default:false"`
	// CreatedAt is the timestamp when the role was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the role was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Role model.
// This overrides GORM's default pluralized table naming.
func (Role) TableName() string {
	return "roles"
}
