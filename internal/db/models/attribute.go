package models

import "time"

// AttributeType is the declared data type of a product attribute.
// Values are stored as text and interpreted according to this type at read time.
type AttributeType string

const (
	// AttributeTypeText is a free-form text attribute.
	AttributeTypeText AttributeType = "text"
	// AttributeTypeNumber is a decimal attribute, stored as a decimal string.
	AttributeTypeNumber AttributeType = "number"
	// AttributeTypeBoolean is a boolean attribute, stored as "true" or "false".
	AttributeTypeBoolean AttributeType = "boolean"
	// AttributeTypeSelect is a single choice from the attribute's option catalog.
	AttributeTypeSelect AttributeType = "select"
	// AttributeTypeMultiselect is a choice from the attribute's option catalog.
	// The (product, attribute) uniqueness of values currently limits it to a
	// single stored selection per product.
	AttributeTypeMultiselect AttributeType = "multiselect"
	// AttributeTypeDate is a date attribute, stored as an ISO date string.
	AttributeTypeDate AttributeType = "date"
)

// Valid reports whether t is one of the six supported attribute types.
func (t AttributeType) Valid() bool {
	switch t {
	case AttributeTypeText, AttributeTypeNumber, AttributeTypeBoolean,
		AttributeTypeSelect, AttributeTypeMultiselect, AttributeTypeDate:
		return true
	default:
		return false
	}
}

// IsSelectKind reports whether values of this type are chosen from the
// attribute's option catalog rather than typed freely.
func (t AttributeType) IsSelectKind() bool {
	return t == AttributeTypeSelect || t == AttributeTypeMultiselect
}

// ProductAttribute represents the schema of one dynamic product field.
// The actual per-product values live in ProductAttributeValue rows; for
// select and multiselect attributes the allowed values are enumerated in
// ProductAttributeOption rows.
type ProductAttribute struct {
	// ID is the unique identifier for the attribute definition.
	ID uint `gorm:"primaryKey"`
	// Name is the unique display name of the attribute (e.g., "Color").
	Name string `gorm:"unique;size:100;not null"`
	// Slug is the unique machine readable identifier (e.g., "color").
	Slug string `gorm:"unique;size:100;not null"`
	// Type declares how stored values are interpreted. Changing the type while
	// values exist is rejected, since it would invalidate stored data.
	Type AttributeType `gorm:"type:varchar(20);not null"`
	// Description provides a human-readable explanation of the attribute.
	Description string `gorm:"size:255"`
	// IsRequired marks the attribute as mandatory for products.
	IsRequired bool `gorm:"default:false"`
	// IsFilterable marks the attribute as usable in product list filters.
	IsFilterable bool `gorm:"default:false"`
	// IsSearchable marks the attribute as included in product search.
	IsSearchable bool `gorm:"default:false"`
	// SortOrder controls display ordering. Not unique.
	SortOrder int `gorm:"default:0"`
	// Active indicates whether the attribute is in use.
	Active bool `gorm:"default:true"`
	// CreatedAt is the timestamp when the attribute was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the attribute was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the ProductAttribute model.
func (ProductAttribute) TableName() string {
	return "product_attributes"
}
