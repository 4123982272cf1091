package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/db/models"
)

func TestLocalProviderAuthenticate(t *testing.T) {
	db := setupTestDB(t)
	provider := NewLocalProvider(db)

	created, err := provider.CreateUser("alice", "alice@example.com", "s3cret", "Alice", "Smith")
	require.NoError(t, err)

	testCases := []struct {
		name          string
		username      string
		password      string
		expectedError error
	}{
		{
			name:     "successful login",
			username: "alice",
			password: "s3cret",
		},
		{
			name:          "wrong password",
			username:      "alice",
			password:      "wrong",
			expectedError: ErrInvalidPassword,
		},
		{
			name:          "unknown user",
			username:      "bob",
			password:      "s3cret",
			expectedError: ErrUserNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			user, err := provider.Authenticate(tc.username, tc.password)

			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, created.ID, user.ID)
		})
	}

	t.Run("disabled account", func(t *testing.T) {
		require.NoError(t, provider.DeactivateUser(created.ID))

		_, err := provider.Authenticate("alice", "s3cret")
		assert.ErrorIs(t, err, ErrUserAccountDisabled)

		require.NoError(t, provider.ActivateUser(created.ID))
	})
}

func TestLocalProviderCreateUserDuplicate(t *testing.T) {
	db := setupTestDB(t)
	provider := NewLocalProvider(db)

	_, err := provider.CreateUser("alice", "alice@example.com", "s3cret", "", "")
	require.NoError(t, err)

	_, err = provider.CreateUser("alice", "other@example.com", "s3cret", "", "")
	assert.ErrorIs(t, err, ErrUserNameOrEmailExists)

	_, err = provider.CreateUser("other", "alice@example.com", "s3cret", "", "")
	assert.ErrorIs(t, err, ErrUserNameOrEmailExists)
}

func TestLocalProviderChangePassword(t *testing.T) {
	db := setupTestDB(t)
	provider := NewLocalProvider(db)

	user, err := provider.CreateUser("alice", "alice@example.com", "s3cret", "", "")
	require.NoError(t, err)

	assert.ErrorIs(t, provider.ChangePassword(user.ID, "wrong", "newpass"), ErrInvalidOldPassword)

	require.NoError(t, provider.ChangePassword(user.ID, "s3cret", "newpass"))

	_, err = provider.Authenticate("alice", "newpass")
	assert.NoError(t, err)
}

func TestLocalProviderDeleteUser(t *testing.T) {
	db := setupTestDB(t)
	provider := NewLocalProvider(db)

	user, err := provider.CreateUser("alice", "alice@example.com", "s3cret", "", "")
	require.NoError(t, err)

	role := seedRole(t, db, "Manager", "manager")
	require.NoError(t, db.Create(&models.UserRole{UserID: user.ID, RoleID: role.ID}).Error)

	require.NoError(t, provider.DeleteUser(user.ID))

	_, err = provider.GetUserByID(user.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	var assignments int64
	require.NoError(t, db.Model(&models.UserRole{}).Where("user_id = ?", user.ID).Count(&assignments).Error)
	assert.Zero(t, assignments)

	assert.ErrorIs(t, provider.DeleteUser(user.ID), ErrUserNotFound)
}

func TestLocalProviderDeleteUserClearsAssignedBy(t *testing.T) {
	db := setupTestDB(t)
	provider := NewLocalProvider(db)

	admin, err := provider.CreateUser("admin", "admin@example.com", "s3cret", "", "")
	require.NoError(t, err)
	worker, err := provider.CreateUser("worker", "worker@example.com", "s3cret", "", "")
	require.NoError(t, err)

	role := seedRole(t, db, "Manager", "manager")
	require.NoError(t, db.Create(&models.UserRole{
		UserID:     worker.ID,
		RoleID:     role.ID,
		AssignedBy: &admin.ID,
	}).Error)

	require.NoError(t, provider.DeleteUser(admin.ID))

	// the assignment survives, with the assigner reference cleared
	var assignment models.UserRole
	require.NoError(t, db.Where("user_id = ?", worker.ID).First(&assignment).Error)
	assert.Equal(t, role.ID, assignment.RoleID)
	assert.Nil(t, assignment.AssignedBy)
}

func TestLocalProviderListUsers(t *testing.T) {
	db := setupTestDB(t)
	provider := NewLocalProvider(db)

	for _, username := range []string{"carol", "alice", "bob"} {
		_, err := provider.CreateUser(username, username+"@example.com", "s3cret", "", "")
		require.NoError(t, err)
	}

	require.NoError(t, provider.DeactivateUser(1))

	users, total, err := provider.ListUsers(nil, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, users, 3)
	assert.Equal(t, "alice", users[0].Username)

	active := true
	users, total, err = provider.ListUsers(&active, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, users, 2)
}
