// Package notification provides database operations for user notifications.
package notification

import (
	"errors"

	"gorm.io/gorm"

	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/apperr"
	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/db/models"
)

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")

	// ErrNotificationNotFound is returned when a notification does not exist.
	ErrNotificationNotFound = apperr.NotFound("notification not found")
	// ErrNotificationSubjectEmpty is returned when sending a notification without a subject.
	ErrNotificationSubjectEmpty = apperr.Validation("notification subject cannot be empty")
	// ErrNotificationRecipientUnknown is returned when the recipient does not exist.
	ErrNotificationRecipientUnknown = apperr.Validation("recipient does not exist")
)

// Send creates a notification for a recipient. A nil senderID marks the
// notification as system generated.
func Send(db *gorm.DB, senderID *uint64, recipientID uint64, subject, body string) (*models.Notification, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if subject == "" {
		return nil, ErrNotificationSubjectEmpty
	}

	var count int64
	if err := db.Model(&models.User{}).
		Where("id = ?", recipientID).
		Count(&count).Error; err != nil {
		return nil, apperr.Wrap(err, apperr.KindInternal, "failed to check recipient")
	}

	if count == 0 {
		return nil, ErrNotificationRecipientUnknown
	}

	notif := &models.Notification{
		SenderID:    senderID,
		RecipientID: recipientID,
		Subject:     subject,
		Body:        body,
	}

	if err := db.Create(notif).Error; err != nil {
		return nil, apperr.Wrap(err, apperr.KindInternal, "failed to create notification")
	}

	return notif, nil
}

// ListForUser returns the notifications of a recipient, newest first. When
// unreadOnly is set, read notifications are skipped.
func ListForUser(db *gorm.DB, recipientID uint64, unreadOnly bool) ([]models.Notification, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	query := db.Where("recipient_id = ?", recipientID).Order("created_at DESC, id DESC")
	if unreadOnly {
		query = query.Where("read = ?", false)
	}

	var notifs []models.Notification
	if err := query.Find(&notifs).Error; err != nil {
		return nil, apperr.Wrap(err, apperr.KindInternal, "failed to list notifications")
	}

	return notifs, nil
}

// ListAll returns the notifications of every user, newest first. Unlike
// ListForUser this is not recipient scoped; callers must hold the
// view-all permission.
func ListAll(db *gorm.DB, unreadOnly bool) ([]models.Notification, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	query := db.Order("created_at DESC, id DESC")
	if unreadOnly {
		query = query.Where("read = ?", false)
	}

	var notifs []models.Notification
	if err := query.Find(&notifs).Error; err != nil {
		return nil, apperr.Wrap(err, apperr.KindInternal, "failed to list notifications")
	}

	return notifs, nil
}

// UnreadCount returns the number of unread notifications of a recipient.
func UnreadCount(db *gorm.DB, recipientID uint64) (int64, error) {
	if db == nil {
		return 0, ErrDBNil
	}

	var count int64
	err := db.Model(&models.Notification{}).
		Where("recipient_id = ? AND read = ?", recipientID, false).
		Count(&count).Error
	if err != nil {
		return 0, apperr.Wrap(err, apperr.KindInternal, "failed to count notifications")
	}

	return count, nil
}

// MarkRead marks a notification of a recipient as read. The recipient scope
// prevents a user from touching another user's notifications.
func MarkRead(db *gorm.DB, recipientID, id uint64) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Model(&models.Notification{}).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Update("read", true)
	if result.Error != nil {
		return apperr.Wrap(result.Error, apperr.KindInternal, "failed to mark notification read")
	}

	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}

	return nil
}

// Delete removes a notification of a recipient.
func Delete(db *gorm.DB, recipientID, id uint64) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Where("id = ? AND recipient_id = ?", id, recipientID).
		Delete(&models.Notification{})
	if result.Error != nil {
		return apperr.Wrap(result.Error, apperr.KindInternal, "failed to delete notification")
	}

	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}

	return nil
}
