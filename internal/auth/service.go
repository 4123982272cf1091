package auth

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/db/models"
)

// Service provides the authorization resolver. It is the single canonical
// query path for permission and role checks; call sites must not re-implement
// the joins inline.
type Service struct {
	db *gorm.DB
}

// NewService creates a new auth service.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// HasPermission checks if a user has a specific permission through any of the
// roles assigned to them. Implemented as a single join query instead of
// materializing the effective set. An unknown user simply has no permissions.
// Holders of the bypass capability (super admin) pass every check regardless
// of what their roles grant.
func (s *Service) HasPermission(userID uint64, slug string) (bool, error) {
	bypass, err := s.HasCapability(userID, CapBypassPermissions)
	if err != nil {
		return false, err
	}

	if bypass {
		return true, nil
	}

	var count int64

	err = s.db.Table("permissions").
		Joins("JOIN role_permissions ON role_permissions.permission_id = permissions.id").
		Joins("JOIN roles ON roles.id = role_permissions.role_id").
		Joins("JOIN user_roles ON user_roles.role_id = roles.id").
		Where("user_roles.user_id = ? AND permissions.slug = ?", userID, slug).
		Where("permissions.active = ? AND roles.active = ?", true, true).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check permission: %w", err)
	}

	return count > 0, nil
}

// HasAnyPermission checks if a user has at least one of the given permissions.
func (s *Service) HasAnyPermission(userID uint64, permissions []string) (bool, error) {
	if len(permissions) == 0 {
		return false, nil
	}

	for _, perm := range permissions {
		has, err := s.HasPermission(userID, perm)
		if err != nil {
			return false, err
		}

		if has {
			return true, nil
		}
	}

	return false, nil
}

// HasAllPermissions checks if a user has all of the given permissions.
func (s *Service) HasAllPermissions(userID uint64, permissions []string) (bool, error) {
	if len(permissions) == 0 {
		return true, nil
	}

	for _, perm := range permissions {
		has, err := s.HasPermission(userID, perm)
		if err != nil {
			return false, err
		}

		if !has {
			return false, nil
		}
	}

	return true, nil
}

// ResolvePermissions retrieves the effective permission set for a user: the
// deduplicated union of permission slugs across all roles the user holds.
// A user without role assignments resolves to an empty set, not an error.
func (s *Service) ResolvePermissions(userID uint64) ([]string, error) {
	var permissions []string

	err := s.db.Table("permissions").
		Select("DISTINCT permissions.slug").
		Joins("JOIN role_permissions ON role_permissions.permission_id = permissions.id").
		Joins("JOIN roles ON roles.id = role_permissions.role_id").
		Joins("JOIN user_roles ON user_roles.role_id = roles.id").
		Where("user_roles.user_id = ?", userID).
		Where("permissions.active = ? AND roles.active = ?", true, true).
		Pluck("permissions.slug", &permissions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to resolve permissions: %w", err)
	}

	if permissions == nil {
		permissions = []string{}
	}

	return permissions, nil
}

// HasRole checks if a user holds the role with the given slug. This check is
// independent of the permission system; some operations gate on a named role
// rather than on a permission slug.
func (s *Service) HasRole(userID uint64, roleSlug string) (bool, error) {
	var count int64

	err := s.db.Table("roles").
		Joins("JOIN user_roles ON user_roles.role_id = roles.id").
		Where("user_roles.user_id = ? AND roles.slug = ?", userID, roleSlug).
		Where("roles.active = ?", true).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check role: %w", err)
	}

	return count > 0, nil
}

// RolesOf retrieves all roles a user holds.
func (s *Service) RolesOf(userID uint64) ([]models.Role, error) {
	var roles []models.Role

	err := s.db.Table("roles").
		Joins("JOIN user_roles ON user_roles.role_id = roles.id").
		Where("user_roles.user_id = ?", userID).
		Find(&roles).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get user roles: %w", err)
	}

	return roles, nil
}
