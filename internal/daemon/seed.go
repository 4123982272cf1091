package daemon

import (
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/auth"
	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/config"
	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/db/models"
)

// baselineRole describes one role created on first start. Grants hold
// permission slugs; the super admin role needs none because it is matched
// by slug, not by permission.
type baselineRole struct {
	name        string
	slug        string
	description string
	isSystem    bool
	grants      []string
}

func baselineRoles() []baselineRole {
	allSlugs := make([]string, 0, len(auth.Catalog()))
	for _, entry := range auth.Catalog() {
		allSlugs = append(allSlugs, entry.Slug)
	}

	return []baselineRole{
		{
			name:        "Super Admin",
			slug:        models.RoleSuperAdmin,
			description: "Full access to every module including user role assignment",
			isSystem:    true,
			grants:      allSlugs,
		},
		{
			name:        "Administrator",
			slug:        "admin",
			description: "Manages users, roles and system settings",
			isSystem:    false,
			grants: []string{
				auth.PermUsersView, auth.PermUsersCreate, auth.PermUsersUpdate, auth.PermUsersDelete,
				auth.PermRolesView, auth.PermRolesCreate, auth.PermRolesUpdate, auth.PermRolesDelete,
				auth.PermProductsView, auth.PermProductsCreate, auth.PermProductsUpdate, auth.PermProductsDelete,
				auth.PermWarehousesView, auth.PermWarehousesCreate, auth.PermWarehousesUpdate, auth.PermWarehousesDelete,
				auth.PermSystemLogsView, auth.PermSystemSettingsManage,
				auth.PermNotificationsSend, auth.PermNotificationsViewAll,
			},
		},
		{
			name:        "Warehouse Manager",
			slug:        "manager",
			description: "Manages the product catalog and warehouse inventory",
			isSystem:    false,
			grants: []string{
				auth.PermProductsView, auth.PermProductsCreate, auth.PermProductsUpdate, auth.PermProductsDelete,
				auth.PermWarehousesView, auth.PermWarehousesCreate, auth.PermWarehousesUpdate,
				auth.PermNotificationsSend,
			},
		},
		{
			name:        "Viewer",
			slug:        "viewer",
			description: "Read-only access to products and warehouses",
			isSystem:    false,
			grants: []string{
				auth.PermProductsView,
				auth.PermWarehousesView,
			},
		},
	}
}

// seed brings the permission catalog, baseline roles and the initial admin
// account into existence. It is idempotent: existing rows are left untouched,
// so it runs on every start.
func seed(db *gorm.DB) error {
	if err := seedPermissions(db); err != nil {
		return err
	}

	if err := seedRoles(db); err != nil {
		return err
	}

	return seedAdminUser(db)
}

func seedPermissions(db *gorm.DB) error {
	for _, entry := range auth.Catalog() {
		permission := models.Permission{
			Name:   entry.Name,
			Slug:   entry.Slug,
			Module: entry.Module,
			Active: true,
		}

		err := db.Where("slug = ?", entry.Slug).FirstOrCreate(&permission).Error
		if err != nil {
			return err
		}
	}

	return nil
}

func seedRoles(db *gorm.DB) error {
	for _, baseline := range baselineRoles() {
		role := models.Role{
			Name:        baseline.name,
			Slug:        baseline.slug,
			Description: baseline.description,
			Active:      true,
			IsSystem:    baseline.isSystem,
		}

		result := db.Where("slug = ?", baseline.slug).FirstOrCreate(&role)
		if result.Error != nil {
			return result.Error
		}

		// Only grant on first creation so later edits to a role's
		// permission set survive restarts.
		if result.RowsAffected == 0 {
			continue
		}

		for _, slug := range baseline.grants {
			var permission models.Permission

			err := db.Where("slug = ?", slug).First(&permission).Error
			if err != nil {
				return err
			}

			err = db.Create(&models.RolePermission{
				RoleID:       role.ID,
				PermissionID: permission.ID,
			}).Error
			if err != nil {
				return err
			}
		}
	}

	return nil
}

// seedAdminUser creates the initial super admin account when the users table
// is empty. The password must be changed after the first login.
func seedAdminUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	admin := models.User{
		Username: "admin",
		Email:    "admin@localhost",
		Password: models.HashPassword("changeme"),
		Active:   true,
	}

	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	var superAdmin models.Role
	if err := db.Where("slug = ?", models.RoleSuperAdmin).First(&superAdmin).Error; err != nil {
		return err
	}

	err := db.Create(&models.UserRole{
		UserID: admin.ID,
		RoleID: superAdmin.ID,
	}).Error
	if err != nil {
		return err
	}

	log.Warn().Msg("created default admin user with password 'changeme', change it immediately")

	return nil
}

// Seed opens the configured database, migrates the schema and runs the
// seeding pass. It backs the standalone seed command.
func Seed(cfg *config.Config) error {
	db, err := openDB(cfg)
	if err != nil {
		return err
	}

	if err = migrate(db); err != nil {
		return err
	}

	return seed(db)
}
