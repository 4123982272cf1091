package models

import "time"

// ProductAttributeOption represents one allowed enumerated choice for a
// select or multiselect attribute. Options are scoped to exactly one
// attribute definition; the (attribute, value) pair is unique.
type ProductAttributeOption struct {
	// ID is the unique identifier for the option.
	ID uint `gorm:"primaryKey"`
	// AttributeID is the owning attribute definition. The attribute's type
	// must be select or multiselect.
	AttributeID uint `gorm:"column:attribute_id;not null;uniqueIndex:idx_attribute_value"`
	// Attribute is the owning attribute (loaded via foreign key).
	Attribute ProductAttribute `gorm:"foreignKey:AttributeID;constraint:OnDelete:CASCADE"`
	// Value is the machine readable token of the option (e.g., "red").
	Value string `gorm:"size:100;not null;uniqueIndex:idx_attribute_value"`
	// Label is the display string. Defaults to Value if omitted.
	Label string `gorm:"size:255"`
	// SortOrder controls display ordering within the attribute.
	SortOrder int `gorm:"default:0"`
	// Active indicates whether the option is selectable.
	Active bool `gorm:"default:true"`
	// CreatedAt is the timestamp when the option was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the option was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the ProductAttributeOption model.
func (ProductAttributeOption) TableName() string {
	return "product_attribute_options"
}
