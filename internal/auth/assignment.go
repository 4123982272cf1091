package auth

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/db/models"
)

// ReplaceRolePermissions replaces the whole permission set of a role.
// Existing (role, permission) rows are deleted and the new set is inserted
// inside a single transaction, so a mid-sequence failure leaves the role
// with its prior permission set instead of an empty one. An empty
// permissionIDs slice is valid and means the role ends up with no
// permissions. This is deliberately a full replace, not an incremental
// add/remove, matching the role editor's save semantics.
func (s *Service) ReplaceRolePermissions(roleID uint, permissionIDs []uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var role models.Role
		if err := tx.First(&role, roleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoleNotFound
			}

			return fmt.Errorf("failed to load role: %w", err)
		}

		if len(permissionIDs) > 0 {
			var count int64
			if err := tx.Model(&models.Permission{}).
				Where("id IN ?", permissionIDs).
				Count(&count).Error; err != nil {
				return fmt.Errorf("failed to verify permissions: %w", err)
			}

			if count != int64(len(dedupe(permissionIDs))) {
				return ErrPermissionNotFound
			}
		}

		if err := tx.Where("role_id = ?", roleID).
			Delete(&models.RolePermission{}).Error; err != nil {
			return fmt.Errorf("failed to clear role permissions: %w", err)
		}

		for _, permissionID := range dedupe(permissionIDs) {
			if err := tx.Create(&models.RolePermission{
				RoleID:       roleID,
				PermissionID: permissionID,
			}).Error; err != nil {
				return fmt.Errorf("failed to add role permission: %w", err)
			}
		}

		return nil
	})
}

// ReplaceUserRole replaces all role assignments of a user with at most one.
// Passing roleID 0 clears the user's roles. The admin surface models a
// single active role per user even though the schema is many-to-many; this
// policy lives here at the operation boundary, not in the schema.
//
// Only an actor carrying CapManageUserRoles (the super-admin role) may call
// this; everyone else gets ErrMissingCapability regardless of their
// fine-grained permissions.
func (s *Service) ReplaceUserRole(actorID, userID uint64, roleID uint) error {
	allowed, err := s.HasCapability(actorID, CapManageUserRoles)
	if err != nil {
		return err
	}

	if !allowed {
		return ErrMissingCapability
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}

			return fmt.Errorf("failed to load user: %w", err)
		}

		if roleID != 0 {
			var role models.Role
			if err := tx.First(&role, roleID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrRoleNotFound
				}

				return fmt.Errorf("failed to load role: %w", err)
			}
		}

		if err := tx.Where("user_id = ?", userID).
			Delete(&models.UserRole{}).Error; err != nil {
			return fmt.Errorf("failed to clear user roles: %w", err)
		}

		if roleID != 0 {
			if err := tx.Create(&models.UserRole{
				UserID:     userID,
				RoleID:     roleID,
				AssignedAt: time.Now().UTC(),
				AssignedBy: &actorID,
			}).Error; err != nil {
				return fmt.Errorf("failed to assign role: %w", err)
			}
		}

		return nil
	})
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))

	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}

	return out
}
