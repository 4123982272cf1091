// Package role provides database operations for managing roles.
package role

import (
	"errors"

	"gorm.io/gorm"

	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/apperr"
	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/db/models"
)

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")

	// ErrRoleNotFound is returned when a role does not exist.
	ErrRoleNotFound = apperr.NotFound("role not found")
	// ErrRoleNameEmpty is returned when creating a role without a name or slug.
	ErrRoleNameEmpty = apperr.Validation("role name and slug cannot be empty")
	// ErrRoleSlugExists is returned when the role name or slug is already taken.
	ErrRoleSlugExists = apperr.Validation("role with this name or slug already exists")
	// ErrRoleIsSystem is returned when deleting a system role.
	ErrRoleIsSystem = apperr.Conflict("system roles cannot be deleted")
	// ErrRoleAssigned is returned when deleting a role that is still held by users.
	ErrRoleAssigned = apperr.Conflict("role is still assigned to users")
)

// CreateInput carries the fields for a new role.
type CreateInput struct {
	Name        string
	Slug        string
	Description string
}

// Create creates a new role. Name and slug must be unique across all roles.
// Roles created through this path are never system roles.
func Create(db *gorm.DB, in CreateInput) (*models.Role, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if in.Name == "" || in.Slug == "" {
		return nil, ErrRoleNameEmpty
	}

	var count int64
	if err := db.Model(&models.Role{}).
		Where("name = ? OR slug = ?", in.Name, in.Slug).
		Count(&count).Error; err != nil {
		return nil, apperr.Wrap(err, apperr.KindInternal, "failed to check role uniqueness")
	}

	if count > 0 {
		return nil, ErrRoleSlugExists
	}

	role := &models.Role{
		Name:        in.Name,
		Slug:        in.Slug,
		Description: in.Description,
		Active:      true,
	}

	if err := db.Create(role).Error; err != nil {
		return nil, apperr.Wrap(err, apperr.KindInternal, "failed to create role")
	}

	return role, nil
}

// Get retrieves a role by its ID.
func Get(db *gorm.DB, id uint) (*models.Role, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var role models.Role
	if err := db.First(&role, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}

		return nil, apperr.Wrap(err, apperr.KindInternal, "failed to load role")
	}

	return &role, nil
}

// GetBySlug retrieves a role by its slug.
func GetBySlug(db *gorm.DB, slug string) (*models.Role, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var role models.Role
	if err := db.Where("slug = ?", slug).First(&role).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}

		return nil, apperr.Wrap(err, apperr.KindInternal, "failed to load role")
	}

	return &role, nil
}

// List returns all roles ordered by name.
func List(db *gorm.DB) ([]models.Role, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var roles []models.Role
	if err := db.Order("name").Find(&roles).Error; err != nil {
		return nil, apperr.Wrap(err, apperr.KindInternal, "failed to list roles")
	}

	return roles, nil
}

// UpdateInput carries the mutable fields of a role. Nil fields are left
// unchanged. The slug of a role is immutable once created.
type UpdateInput struct {
	Name        *string
	Description *string
	Active      *bool
}

// Update applies the given changes to an existing role.
func Update(db *gorm.DB, id uint, in UpdateInput) (*models.Role, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	role, err := Get(db, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil && *in.Name != role.Name {
		if *in.Name == "" {
			return nil, ErrRoleNameEmpty
		}

		var count int64
		if err := db.Model(&models.Role{}).
			Where("name = ? AND id <> ?", *in.Name, id).
			Count(&count).Error; err != nil {
			return nil, apperr.Wrap(err, apperr.KindInternal, "failed to check role uniqueness")
		}

		if count > 0 {
			return nil, ErrRoleSlugExists
		}

		role.Name = *in.Name
	}

	if in.Description != nil {
		role.Description = *in.Description
	}

	if in.Active != nil {
		role.Active = *in.Active
	}

	if err := db.Save(role).Error; err != nil {
		return nil, apperr.Wrap(err, apperr.KindInternal, "failed to update role")
	}

	return role, nil
}

// Delete removes a role and its permission grants. System roles and roles
// still held by at least one user cannot be deleted.
func Delete(db *gorm.DB, id uint) error {
	if db == nil {
		return ErrDBNil
	}

	role, err := Get(db, id)
	if err != nil {
		return err
	}

	if role.IsSystem {
		return ErrRoleIsSystem
	}

	var assigned int64
	if err := db.Model(&models.UserRole{}).
		Where("role_id = ?", id).
		Count(&assigned).Error; err != nil {
		return apperr.Wrap(err, apperr.KindInternal, "failed to check role assignments")
	}

	if assigned > 0 {
		return ErrRoleAssigned
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", id).
			Delete(&models.RolePermission{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Role{}, id).Error
	})
	if err != nil {
		return apperr.Wrap(err, apperr.KindInternal, "failed to delete role")
	}

	return nil
}

// Permissions returns the permissions granted to a role, ordered by slug.
func Permissions(db *gorm.DB, id uint) ([]models.Permission, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if _, err := Get(db, id); err != nil {
		return nil, err
	}

	perms := []models.Permission{}
	err := db.Model(&models.Permission{}).
		Joins("JOIN role_permissions ON role_permissions.permission_id = permissions.id").
		Where("role_permissions.role_id = ?", id).
		Order("permissions.slug").
		Find(&perms).Error
	if err != nil {
		return nil, apperr.Wrap(err, apperr.KindInternal, "failed to list role permissions")
	}

	return perms, nil
}
