package models

import "time"

// Notification represents a message sent to a user by another user or the system.
type Notification struct {
	ID uint64 `gorm:"primaryKey"`
	// SenderID is nullable; system generated notifications have no sender.
	SenderID    *uint64
	RecipientID uint64 `gorm:"not null;index"`
	Recipient   User   `gorm:"foreignKey:RecipientID;constraint:OnDelete:CASCADE"`
	Subject     string `gorm:"size:255;not null"`
	Body        string `gorm:"size:2000"`
	Read        bool   `gorm:"default:false"`
	CreatedAt   time.Time
}

// TableName specifies the database table name for the Notification model.
func (Notification) TableName() string {
	return "notifications"
}
