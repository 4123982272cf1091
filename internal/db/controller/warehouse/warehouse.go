// Package warehouse provides database operations for warehouses.
package warehouse

import (
	"errors"

	"gorm.io/gorm"

	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/apperr"
	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/db/models"
)

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")

	// ErrWarehouseNotFound is returned when a warehouse does not exist.
	ErrWarehouseNotFound = apperr.NotFound("warehouse not found")
	// ErrWarehouseCodeEmpty is returned when creating a warehouse without a code or name.
	ErrWarehouseCodeEmpty = apperr.Validation("warehouse code and name cannot be empty")
	// ErrWarehouseCodeExists is returned when the warehouse code is already taken.
	ErrWarehouseCodeExists = apperr.Validation("warehouse with this code already exists")
	// ErrWarehouseInUse is returned when deleting a warehouse with movement history.
	ErrWarehouseInUse = apperr.Conflict("warehouse has inventory movements")
)

// CreateInput carries the fields for a new warehouse.
type CreateInput struct {
	Name    string
	Code    string
	Address string
}

// Create creates a new warehouse. The code must be unique.
func Create(db *gorm.DB, in CreateInput) (*models.Warehouse, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if in.Name == "" || in.Code == "" {
		return nil, ErrWarehouseCodeEmpty
	}

	var count int64
	if err := db.Model(&models.Warehouse{}).
		Where("code = ?", in.Code).
		Count(&count).Error; err != nil {
		return nil, apperr.Wrap(err, apperr.KindInternal, "failed to check warehouse uniqueness")
	}

	if count > 0 {
		return nil, ErrWarehouseCodeExists
	}

	wh := &models.Warehouse{
		Name:    in.Name,
		Code:    in.Code,
		Address: in.Address,
		Active:  true,
	}

	if err := db.Create(wh).Error; err != nil {
		return nil, apperr.Wrap(err, apperr.KindInternal, "failed to create warehouse")
	}

	return wh, nil
}

// Get retrieves a warehouse by its ID.
func Get(db *gorm.DB, id uint) (*models.Warehouse, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var wh models.Warehouse
	if err := db.First(&wh, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWarehouseNotFound
		}

		return nil, apperr.Wrap(err, apperr.KindInternal, "failed to load warehouse")
	}

	return &wh, nil
}

// List returns all warehouses ordered by code.
func List(db *gorm.DB) ([]models.Warehouse, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var whs []models.Warehouse
	if err := db.Order("code").Find(&whs).Error; err != nil {
		return nil, apperr.Wrap(err, apperr.KindInternal, "failed to list warehouses")
	}

	return whs, nil
}

// UpdateInput carries the mutable fields of a warehouse. Nil fields are left
// unchanged. The code is immutable once created.
type UpdateInput struct {
	Name    *string
	Address *string
	Active  *bool
}

// Update applies the given changes to an existing warehouse.
func Update(db *gorm.DB, id uint, in UpdateInput) (*models.Warehouse, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	wh, err := Get(db, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, ErrWarehouseCodeEmpty
		}

		wh.Name = *in.Name
	}

	if in.Address != nil {
		wh.Address = *in.Address
	}

	if in.Active != nil {
		wh.Active = *in.Active
	}

	if err := db.Save(wh).Error; err != nil {
		return nil, apperr.Wrap(err, apperr.KindInternal, "failed to update warehouse")
	}

	return wh, nil
}

// Delete removes a warehouse. Warehouses referenced by inventory movements
// cannot be deleted so the audit trail stays intact.
func Delete(db *gorm.DB, id uint) error {
	if db == nil {
		return ErrDBNil
	}

	if _, err := Get(db, id); err != nil {
		return err
	}

	var movements int64
	if err := db.Model(&models.InventoryMovement{}).
		Where("warehouse_id = ?", id).
		Count(&movements).Error; err != nil {
		return apperr.Wrap(err, apperr.KindInternal, "failed to check warehouse movements")
	}

	if movements > 0 {
		return ErrWarehouseInUse
	}

	if err := db.Delete(&models.Warehouse{}, id).Error; err != nil {
		return apperr.Wrap(err, apperr.KindInternal, "failed to delete warehouse")
	}

	return nil
}
