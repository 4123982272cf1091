package models

import "time"

// UserRole represents the many-to-many relationship between users and roles.
// The schema supports a user holding many roles, but the admin surface models
// a single active role per user: assigning a role replaces all previous
// assignments. This is an application-level policy, not a schema limitation.
type UserRole struct {
	// UserID is the ID of the user in this assignment.
	UserID uint64 `gorm:"primaryKey;column:user_id"`
	// RoleID is the ID of the role in this assignment.
	RoleID uint `gorm:"primaryKey;column:role_id"`
	// User is the associated user (loaded via foreign key).
	// When a user is deleted, their role assignments are removed as well (CASCADE).
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	// Role is the associated role (loaded via foreign key).
	Role Role `gorm:"foreignKey:RoleID;constraint:OnDelete:CASCADE"`
	// AssignedAt is the timestamp when the role was granted.
	AssignedAt time.Time `gorm:"autoCreateTime"`
	// AssignedBy is the ID of the acting user who granted the role.
	// Nullable so assignments survive the deletion of the assigning user.
	AssignedBy *uint64
}

// TableName specifies the database table name for the UserRole model.
// This overrides GORM's default pluralized table naming.
func (UserRole) TableName() string {
	return "user_roles"
}
