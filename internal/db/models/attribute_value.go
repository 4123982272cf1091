package models

import "time"

// ProductAttributeValue represents the concrete value of one attribute for
// one product. A product has at most one value per attribute, enforced by
// the (product, attribute) unique index. For select kind attributes the
// value is denormalized from the chosen option and OptionID is set; for all
// other types OptionID is null and Value holds the typed raw text.
type ProductAttributeValue struct {
	// ID is the unique identifier for the value row.
	ID uint64 `gorm:"primaryKey"`
	// ProductID is the product this value belongs to.
	ProductID uint64 `gorm:"column:product_id;not null;uniqueIndex:idx_product_attribute"`
	// AttributeID is the attribute definition this value instantiates.
	AttributeID uint `gorm:"column:attribute_id;not null;uniqueIndex:idx_product_attribute"`
	// Attribute is the attribute definition (loaded via foreign key).
	Attribute ProductAttribute `gorm:"foreignKey:AttributeID;constraint:OnDelete:RESTRICT"`
	// Value is the stored text, interpreted according to the attribute's type.
	Value string `gorm:"size:1000"`
	// OptionID references the chosen option for select kind attributes.
	// Null for free-typed text, number, boolean and date attributes.
	// If set, the option must belong to the same AttributeID.
	OptionID *uint `gorm:"column:option_id"`
	// Option is the chosen option (loaded via foreign key).
	Option *ProductAttributeOption `gorm:"foreignKey:OptionID;constraint:OnDelete:RESTRICT"`
	// CreatedAt is the timestamp when the value was first set (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the value was last changed (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the ProductAttributeValue model.
func (ProductAttributeValue) TableName() string {
	return "product_attribute_values"
}
