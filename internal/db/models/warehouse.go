package models

import "time"

// Warehouse represents a physical storage location.
type Warehouse struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null"`
	Code      string `gorm:"unique;size:50;not null"`
	Address   string `gorm:"size:255"`
	Active    bool   `gorm:"default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Warehouse model.
func (Warehouse) TableName() string {
	return "warehouses"
}
