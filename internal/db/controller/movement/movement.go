// Package movement provides database operations for inventory movements.
// Movements are append-only audit records; they are never updated and only
// administrators can remove them.
package movement

import (
	"errors"

	"gorm.io/gorm"

	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/apperr"
	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/db/models"
)

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")

	// ErrMovementNotFound is returned when a movement does not exist.
	ErrMovementNotFound = apperr.NotFound("movement not found")
	// ErrMovementDirectionInvalid is returned for a direction other than in or out.
	ErrMovementDirectionInvalid = apperr.Validation("movement direction must be in or out")
	// ErrMovementQuantityInvalid is returned for a zero or negative quantity.
	ErrMovementQuantityInvalid = apperr.Validation("movement quantity must be positive")
	// ErrMovementProductUnknown is returned when the referenced product does not exist.
	ErrMovementProductUnknown = apperr.Validation("referenced product does not exist")
	// ErrMovementWarehouseUnknown is returned when the referenced warehouse does not exist.
	ErrMovementWarehouseUnknown = apperr.Validation("referenced warehouse does not exist")
)

// CreateInput carries the fields for a new inventory movement.
type CreateInput struct {
	ProductID   uint64
	WarehouseID uint
	Direction   models.MovementDirection
	Quantity    int
	Note        string
	CreatedBy   *uint64
}

// Create records a new inventory movement.
func Create(db *gorm.DB, in CreateInput) (*models.InventoryMovement, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if in.Direction != models.MovementIn && in.Direction != models.MovementOut {
		return nil, ErrMovementDirectionInvalid
	}

	if in.Quantity <= 0 {
		return nil, ErrMovementQuantityInvalid
	}

	var count int64
	if err := db.Model(&models.Product{}).
		Where("id = ?", in.ProductID).
		Count(&count).Error; err != nil {
		return nil, apperr.Wrap(err, apperr.KindInternal, "failed to check product")
	}

	if count == 0 {
		return nil, ErrMovementProductUnknown
	}

	if err := db.Model(&models.Warehouse{}).
		Where("id = ?", in.WarehouseID).
		Count(&count).Error; err != nil {
		return nil, apperr.Wrap(err, apperr.KindInternal, "failed to check warehouse")
	}

	if count == 0 {
		return nil, ErrMovementWarehouseUnknown
	}

	mov := &models.InventoryMovement{
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		Direction:   in.Direction,
		Quantity:    in.Quantity,
		Note:        in.Note,
		CreatedBy:   in.CreatedBy,
	}

	if err := db.Create(mov).Error; err != nil {
		return nil, apperr.Wrap(err, apperr.KindInternal, "failed to create movement")
	}

	return mov, nil
}

// Get retrieves a movement by its ID with product and warehouse preloaded.
func Get(db *gorm.DB, id uint64) (*models.InventoryMovement, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var mov models.InventoryMovement
	err := db.Preload("Product").Preload("Warehouse").First(&mov, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMovementNotFound
		}

		return nil, apperr.Wrap(err, apperr.KindInternal, "failed to load movement")
	}

	return &mov, nil
}

// ListFilter narrows the movement listing. Zero values mean no filtering.
type ListFilter struct {
	ProductID   uint64
	WarehouseID uint
	Direction   models.MovementDirection
}

// List returns movements matching the filter, newest first.
func List(db *gorm.DB, filter ListFilter) ([]models.InventoryMovement, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	query := db.Preload("Product").Preload("Warehouse").Order("created_at DESC, id DESC")

	if filter.ProductID != 0 {
		query = query.Where("product_id = ?", filter.ProductID)
	}

	if filter.WarehouseID != 0 {
		query = query.Where("warehouse_id = ?", filter.WarehouseID)
	}

	if filter.Direction != "" {
		query = query.Where("direction = ?", filter.Direction)
	}

	var movs []models.InventoryMovement
	if err := query.Find(&movs).Error; err != nil {
		return nil, apperr.Wrap(err, apperr.KindInternal, "failed to list movements")
	}

	return movs, nil
}

// Delete removes a movement record.
func Delete(db *gorm.DB, id uint64) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Delete(&models.InventoryMovement{}, id)
	if result.Error != nil {
		return apperr.Wrap(result.Error, apperr.KindInternal, "failed to delete movement")
	}

	if result.RowsAffected == 0 {
		return ErrMovementNotFound
	}

	return nil
}
