package models

import "time"

// Permission represents an atomic named capability in the authorization system.
// Permissions are identified by a dotted slug in module.action form (for
// example "products.create") and are assigned to roles, never directly to users.
// A permission that is referenced by any role can not be deleted.
type Permission struct {
	// ID is the unique identifier for the permission.
	ID uint `gorm:"primaryKey"`
	// Name is the unique human readable permission name (e.g., "Create products").
	Name string `gorm:"unique;size:100;not null"`
	// Slug is the unique machine readable identifier in module.action form (e.g., "products.create").
	Slug string `gorm:"unique;size:100;not null"`
	// Module is the module tag this permission belongs to (e.g., "products", "system").
	Module string `gorm:"size:50"`
	// Active indicates whether the permission participates in authorization checks.
	Active bool `gorm:"default:true"`
	// CreatedAt is the timestamp when the permission was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the permission was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Permission model.
// This overrides GORM's default pluralized table naming.
func (Permission) TableName() string {
	return "permissions"
}
