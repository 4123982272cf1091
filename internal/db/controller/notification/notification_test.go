package notification

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/db/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Notification{}))

	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()

	user := models.User{Username: username, Email: username + "@example.com", Active: true}
	require.NoError(t, db.Create(&user).Error)

	return user
}

func TestSend(t *testing.T) {
	db := setupTestDB(t)
	sender := seedUser(t, db, "sender")
	recipient := seedUser(t, db, "recipient")

	testCases := []struct {
		name        string
		senderID    *uint64
		recipientID uint64
		subject     string
		expectedErr error
	}{
		{"nil sender is system generated", nil, recipient.ID, "Stock low", nil},
		{"user sender", &sender.ID, recipient.ID, "Please review", nil},
		{"empty subject", &sender.ID, recipient.ID, "", ErrNotificationSubjectEmpty},
		{"unknown recipient", &sender.ID, 99999, "Hello", ErrNotificationRecipientUnknown},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			notif, err := Send(db, tc.senderID, tc.recipientID, tc.subject, "body")
			if tc.expectedErr != nil {
				require.ErrorIs(t, err, tc.expectedErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.senderID, notif.SenderID)
			assert.Equal(t, tc.recipientID, notif.RecipientID)
			assert.False(t, notif.Read)
		})
	}
}

func TestListAndUnreadCount(t *testing.T) {
	db := setupTestDB(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	first, err := Send(db, nil, alice.ID, "first", "")
	require.NoError(t, err)
	_, err = Send(db, nil, alice.ID, "second", "")
	require.NoError(t, err)
	_, err = Send(db, nil, bob.ID, "for bob", "")
	require.NoError(t, err)

	require.NoError(t, MarkRead(db, alice.ID, first.ID))

	all, err := ListForUser(db, alice.ID, false)
	require.NoError(t, err)
	require.Len(t, all, 2, "only the recipient's own notifications")

	unread, err := ListForUser(db, alice.ID, true)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, "second", unread[0].Subject)

	count, err := UnreadCount(db, alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestListAll(t *testing.T) {
	db := setupTestDB(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	forAlice, err := Send(db, nil, alice.ID, "for alice", "")
	require.NoError(t, err)
	_, err = Send(db, nil, bob.ID, "for bob", "")
	require.NoError(t, err)

	require.NoError(t, MarkRead(db, alice.ID, forAlice.ID))

	// crosses recipient boundaries, newest first
	all, err := ListAll(db, false)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, bob.ID, all[0].RecipientID)
	assert.Equal(t, alice.ID, all[1].RecipientID)

	unread, err := ListAll(db, true)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, "for bob", unread[0].Subject)
}

func TestMarkReadScopedToRecipient(t *testing.T) {
	db := setupTestDB(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	notif, err := Send(db, nil, alice.ID, "private", "")
	require.NoError(t, err)

	// bob cannot touch alice's notification
	err = MarkRead(db, bob.ID, notif.ID)
	require.ErrorIs(t, err, ErrNotificationNotFound)

	err = Delete(db, bob.ID, notif.ID)
	require.ErrorIs(t, err, ErrNotificationNotFound)

	require.NoError(t, MarkRead(db, alice.ID, notif.ID))
	require.NoError(t, Delete(db, alice.ID, notif.ID))

	count, err := UnreadCount(db, alice.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}
