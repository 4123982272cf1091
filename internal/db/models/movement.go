package models

import "time"

// MovementDirection is the direction of an inventory movement.
type MovementDirection string

const (
	// MovementIn records stock arriving at a warehouse.
	MovementIn MovementDirection = "in"
	// MovementOut records stock leaving a warehouse.
	MovementOut MovementDirection = "out"
)

// InventoryMovement records a single stock change of a product at a
// warehouse. Movements are plain audit records; the service does not derive
// or reserve stock levels from them.
type InventoryMovement struct {
	ID          uint64            `gorm:"primaryKey"`
	ProductID   uint64            `gorm:"not null;index"`
	Product     Product           `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	WarehouseID uint              `gorm:"not null;index"`
	Warehouse   Warehouse         `gorm:"foreignKey:WarehouseID;constraint:OnDelete:RESTRICT"`
	Direction   MovementDirection `gorm:"type:varchar(10);not null"`
	Quantity    int               `gorm:"not null"`
	Note        string            `gorm:"size:255"`
	// CreatedBy is the acting user, nullable so records survive user deletion.
	CreatedBy *uint64
	CreatedAt time.Time
}

// TableName specifies the database table name for the InventoryMovement model.
func (InventoryMovement) TableName() string {
	return "inventory_movements"
}
