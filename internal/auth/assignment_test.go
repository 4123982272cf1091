package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/db/models"
)

func rolePermissionCount(t *testing.T, svc *Service, roleID uint) int64 {
	t.Helper()

	var count int64
	require.NoError(t, svc.db.Model(&models.RolePermission{}).
		Where("role_id = ?", roleID).Count(&count).Error)

	return count
}

func TestReplaceRolePermissions(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	role := seedRole(t, db, "Manager", "manager")
	p1 := seedPermission(t, db, PermProductsView)
	p2 := seedPermission(t, db, PermProductsUpdate)
	p3 := seedPermission(t, db, PermProductsDelete)

	require.NoError(t, svc.ReplaceRolePermissions(role.ID, []uint{p1.ID, p2.ID}))
	assert.EqualValues(t, 2, rolePermissionCount(t, svc, role.ID))

	// replace is idempotent: running the same set again yields the same rows
	require.NoError(t, svc.ReplaceRolePermissions(role.ID, []uint{p1.ID, p2.ID}))
	assert.EqualValues(t, 2, rolePermissionCount(t, svc, role.ID))

	// duplicate ids in the input collapse to one row
	require.NoError(t, svc.ReplaceRolePermissions(role.ID, []uint{p3.ID, p3.ID}))
	assert.EqualValues(t, 1, rolePermissionCount(t, svc, role.ID))

	// empty set is a valid input meaning "no permissions"
	require.NoError(t, svc.ReplaceRolePermissions(role.ID, nil))
	assert.EqualValues(t, 0, rolePermissionCount(t, svc, role.ID))
}

func TestReplaceRolePermissionsRollsBackOnUnknownPermission(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	role := seedRole(t, db, "Manager", "manager")
	p1 := seedPermission(t, db, PermProductsView)

	require.NoError(t, svc.ReplaceRolePermissions(role.ID, []uint{p1.ID}))

	// referencing a permission that does not exist must fail and leave the
	// prior set untouched, not an emptied role
	err := svc.ReplaceRolePermissions(role.ID, []uint{p1.ID, 99999})
	require.ErrorIs(t, err, ErrPermissionNotFound)
	assert.EqualValues(t, 1, rolePermissionCount(t, svc, role.ID))
}

func TestReplaceRolePermissionsUnknownRole(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	err := svc.ReplaceRolePermissions(12345, nil)
	assert.ErrorIs(t, err, ErrRoleNotFound)
}

func TestReplaceUserRole(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	superAdmin := seedRole(t, db, "Super Admin", models.RoleSuperAdmin)
	manager := seedRole(t, db, "Manager", "manager", PermProductsView)
	viewer := seedRole(t, db, "Viewer", "viewer", PermWarehousesView)

	root := seedUser(t, db, "root", superAdmin)
	target := seedUser(t, db, "target", viewer)

	// super-admin replaces the target's role wholesale
	require.NoError(t, svc.ReplaceUserRole(root.ID, target.ID, manager.ID))

	roles, err := svc.RolesOf(target.ID)
	require.NoError(t, err)
	require.Len(t, roles, 1, "old assignments are replaced, not accumulated")
	assert.Equal(t, "manager", roles[0].Slug)

	var assignment models.UserRole
	require.NoError(t, db.Where("user_id = ?", target.ID).First(&assignment).Error)
	require.NotNil(t, assignment.AssignedBy)
	assert.Equal(t, root.ID, *assignment.AssignedBy)
	assert.False(t, assignment.AssignedAt.IsZero())

	// roleID 0 clears the user's assignments
	require.NoError(t, svc.ReplaceUserRole(root.ID, target.ID, 0))

	roles, err = svc.RolesOf(target.ID)
	require.NoError(t, err)
	assert.Empty(t, roles)
}

func TestReplaceUserRoleRequiresCapability(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	manager := seedRole(t, db, "Manager", "manager",
		PermUsersView, PermUsersCreate, PermUsersUpdate, PermUsersDelete)
	viewer := seedRole(t, db, "Viewer", "viewer")

	mgr := seedUser(t, db, "mgr", manager)
	target := seedUser(t, db, "target", viewer)

	// full user permissions are not enough; the operation gates on the
	// super-admin role, not on a permission slug
	err := svc.ReplaceUserRole(mgr.ID, target.ID, manager.ID)
	require.ErrorIs(t, err, ErrMissingCapability)

	roles, rerr := svc.RolesOf(target.ID)
	require.NoError(t, rerr)
	require.Len(t, roles, 1)
	assert.Equal(t, "viewer", roles[0].Slug, "denied calls must not mutate state")
}

func TestReplaceUserRoleUnknownTargets(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db)

	superAdmin := seedRole(t, db, "Super Admin", models.RoleSuperAdmin)
	root := seedUser(t, db, "root", superAdmin)

	err := svc.ReplaceUserRole(root.ID, 99999, superAdmin.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	err = svc.ReplaceUserRole(root.ID, root.ID, 99999)
	assert.ErrorIs(t, err, ErrRoleNotFound)
}
