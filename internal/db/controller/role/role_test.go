package role

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/db/models"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(
		&models.Role{},
		&models.Permission{},
		&models.RolePermission{},
		&models.User{},
		&models.UserRole{},
	)
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func TestCreate(t *testing.T) {
	testCases := []struct {
		name          string
		nilDB         bool
		input         CreateInput
		seed          []models.Role
		expectedError error
	}{
		{
			name:          "nil database",
			nilDB:         true,
			input:         CreateInput{Name: "Manager", Slug: "manager"},
			expectedError: ErrDBNil,
		},
		{
			name:          "empty name",
			input:         CreateInput{Slug: "manager"},
			expectedError: ErrRoleNameEmpty,
		},
		{
			name:          "empty slug",
			input:         CreateInput{Name: "Manager"},
			expectedError: ErrRoleNameEmpty,
		},
		{
			name:          "duplicate slug",
			input:         CreateInput{Name: "Other", Slug: "manager"},
			seed:          []models.Role{{Name: "Manager", Slug: "manager"}},
			expectedError: ErrRoleSlugExists,
		},
		{
			name:          "duplicate name",
			input:         CreateInput{Name: "Manager", Slug: "other"},
			seed:          []models.Role{{Name: "Manager", Slug: "manager"}},
			expectedError: ErrRoleSlugExists,
		},
		{
			name:  "successful create",
			input: CreateInput{Name: "Manager", Slug: "manager", Description: "runs the floor"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var db *gorm.DB
			if !tc.nilDB {
				db = setupTestDB(t)
				for i := range tc.seed {
					require.NoError(t, db.Create(&tc.seed[i]).Error)
				}
			}

			created, err := Create(db, tc.input)

			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				return
			}

			require.NoError(t, err)
			assert.NotZero(t, created.ID)
			assert.True(t, created.Active)
			assert.False(t, created.IsSystem)
			assert.Equal(t, tc.input.Description, created.Description)
		})
	}
}

func TestUpdate(t *testing.T) {
	db := setupTestDB(t)

	created, err := Create(db, CreateInput{Name: "Manager", Slug: "manager"})
	require.NoError(t, err)

	_, err = Create(db, CreateInput{Name: "Viewer", Slug: "viewer"})
	require.NoError(t, err)

	t.Run("rename", func(t *testing.T) {
		name := "Floor Manager"
		updated, err := Update(db, created.ID, UpdateInput{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "Floor Manager", updated.Name)
		assert.Equal(t, "manager", updated.Slug)
	})

	t.Run("rename to taken name", func(t *testing.T) {
		name := "Viewer"
		_, err := Update(db, created.ID, UpdateInput{Name: &name})
		assert.ErrorIs(t, err, ErrRoleSlugExists)
	})

	t.Run("deactivate", func(t *testing.T) {
		active := false
		updated, err := Update(db, created.ID, UpdateInput{Active: &active})
		require.NoError(t, err)
		assert.False(t, updated.Active)
	})

	t.Run("unknown role", func(t *testing.T) {
		_, err := Update(db, 999, UpdateInput{})
		assert.ErrorIs(t, err, ErrRoleNotFound)
	})
}

func TestDelete(t *testing.T) {
	t.Run("system role", func(t *testing.T) {
		db := setupTestDB(t)

		role := models.Role{Name: "Super Admin", Slug: models.RoleSuperAdmin, IsSystem: true}
		require.NoError(t, db.Create(&role).Error)

		assert.ErrorIs(t, Delete(db, role.ID), ErrRoleIsSystem)
	})

	t.Run("assigned role", func(t *testing.T) {
		db := setupTestDB(t)

		role, err := Create(db, CreateInput{Name: "Manager", Slug: "manager"})
		require.NoError(t, err)

		user := models.User{Username: "alice", Email: "alice@example.com"}
		require.NoError(t, db.Create(&user).Error)
		require.NoError(t, db.Create(&models.UserRole{UserID: user.ID, RoleID: role.ID}).Error)

		assert.ErrorIs(t, Delete(db, role.ID), ErrRoleAssigned)

		// The role must survive the rejected delete.
		_, err = Get(db, role.ID)
		assert.NoError(t, err)
	})

	t.Run("removes permission grants", func(t *testing.T) {
		db := setupTestDB(t)

		role, err := Create(db, CreateInput{Name: "Manager", Slug: "manager"})
		require.NoError(t, err)

		perm := models.Permission{Name: "Read products", Slug: "products.read", Module: "products", Active: true}
		require.NoError(t, db.Create(&perm).Error)
		require.NoError(t, db.Create(&models.RolePermission{RoleID: role.ID, PermissionID: perm.ID}).Error)

		require.NoError(t, Delete(db, role.ID))

		_, err = Get(db, role.ID)
		assert.ErrorIs(t, err, ErrRoleNotFound)

		var grants int64
		require.NoError(t, db.Model(&models.RolePermission{}).Where("role_id = ?", role.ID).Count(&grants).Error)
		assert.Zero(t, grants)

		// The permission itself is untouched.
		var perms int64
		require.NoError(t, db.Model(&models.Permission{}).Count(&perms).Error)
		assert.EqualValues(t, 1, perms)
	})

	t.Run("unknown role", func(t *testing.T) {
		db := setupTestDB(t)
		assert.ErrorIs(t, Delete(db, 42), ErrRoleNotFound)
	})
}

func TestPermissions(t *testing.T) {
	db := setupTestDB(t)

	role, err := Create(db, CreateInput{Name: "Manager", Slug: "manager"})
	require.NoError(t, err)

	for _, slug := range []string{"products.update", "products.read"} {
		perm := models.Permission{Name: slug, Slug: slug, Module: "products", Active: true}
		require.NoError(t, db.Create(&perm).Error)
		require.NoError(t, db.Create(&models.RolePermission{RoleID: role.ID, PermissionID: perm.ID}).Error)
	}

	perms, err := Permissions(db, role.ID)
	require.NoError(t, err)
	require.Len(t, perms, 2)
	assert.Equal(t, "products.read", perms[0].Slug)
	assert.Equal(t, "products.update", perms[1].Slug)

	t.Run("unknown role", func(t *testing.T) {
		_, err := Permissions(db, 999)
		assert.ErrorIs(t, err, ErrRoleNotFound)
	})

	t.Run("empty grant set", func(t *testing.T) {
		other, err := Create(db, CreateInput{Name: "Viewer", Slug: "viewer"})
		require.NoError(t, err)

		perms, err := Permissions(db, other.ID)
		require.NoError(t, err)
		assert.Empty(t, perms)
		assert.NotNil(t, perms)
	})
}
