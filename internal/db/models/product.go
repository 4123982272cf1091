package models

import "time"

// Product represents an item in the catalog. Dynamic per-product fields are
// attached through ProductAttributeValue rows.
type Product struct {
	ID          uint64 `gorm:"primaryKey"`
	SKU         string `gorm:"unique;size:100;not null"`
	Name        string `gorm:"size:255;not null"`
	Description string `gorm:"size:1000"`
	Price       float64
	CategoryID  *uint
	Category    *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
	Active      bool      `gorm:"default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

// TableName specifies the database table name for the Product model.
func (Product) TableName() string {
	return "products"
}
