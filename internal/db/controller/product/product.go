// Package product provides database operations for the product catalog.
package product

import (
	"errors"

	"gorm.io/gorm"

	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/apperr"
	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/db/controller/attribute"
	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/db/models"
)

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")

	// ErrProductNotFound is returned when a product does not exist.
	ErrProductNotFound = apperr.NotFound("product not found")
	// ErrProductSKUEmpty is returned when creating a product without a SKU or name.
	ErrProductSKUEmpty = apperr.Validation("product SKU and name cannot be empty")
	// ErrProductSKUExists is returned when the SKU is already taken.
	ErrProductSKUExists = apperr.Validation("product with this SKU already exists")
	// ErrCategoryNotFound is returned when the referenced category does not exist.
	ErrCategoryNotFound = apperr.Validation("referenced category does not exist")
	// ErrProductHasMovements is returned when deleting a product with movement history.
	ErrProductHasMovements = apperr.Conflict("product has inventory movements")
)

// CreateInput carries the fields for a new product.
type CreateInput struct {
	SKU         string
	Name        string
	Description string
	Price       float64
	CategoryID  *uint
}

// Create creates a new product. The SKU must be unique and a referenced
// category must exist.
func Create(db *gorm.DB, in CreateInput) (*models.Product, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if in.SKU == "" || in.Name == "" {
		return nil, ErrProductSKUEmpty
	}

	var count int64
	if err := db.Model(&models.Product{}).
		Where("sku = ?", in.SKU).
		Count(&count).Error; err != nil {
		return nil, apperr.Wrap(err, apperr.KindInternal, "failed to check SKU uniqueness")
	}

	if count > 0 {
		return nil, ErrProductSKUExists
	}

	if err := checkCategory(db, in.CategoryID); err != nil {
		return nil, err
	}

	product := &models.Product{
		SKU:         in.SKU,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		CategoryID:  in.CategoryID,
		Active:      true,
	}

	if err := db.Create(product).Error; err != nil {
		return nil, apperr.Wrap(err, apperr.KindInternal, "failed to create product")
	}

	return product, nil
}

// Get retrieves a product by its ID, with its category preloaded.
func Get(db *gorm.DB, id uint64) (*models.Product, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var product models.Product
	if err := db.Preload("Category").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}

		return nil, apperr.Wrap(err, apperr.KindInternal, "failed to load product")
	}

	return &product, nil
}

// GetBySKU retrieves a product by its SKU.
func GetBySKU(db *gorm.DB, sku string) (*models.Product, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var product models.Product
	if err := db.Preload("Category").Where("sku = ?", sku).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}

		return nil, apperr.Wrap(err, apperr.KindInternal, "failed to load product")
	}

	return &product, nil
}

// ListFilter narrows the product listing. Zero values mean no filtering.
type ListFilter struct {
	CategoryID uint
	Search     string
	ActiveOnly bool
}

// List returns products matching the filter, ordered by name.
func List(db *gorm.DB, filter ListFilter) ([]models.Product, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	query := db.Preload("Category").Order("name")

	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR sku LIKE ?", pattern, pattern)
	}

	if filter.ActiveOnly {
		query = query.Where("active = ?", true)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, apperr.Wrap(err, apperr.KindInternal, "failed to list products")
	}

	return products, nil
}

// UpdateInput carries the mutable fields of a product. Nil fields are left
// unchanged.
type UpdateInput struct {
	SKU           *string
	Name          *string
	Description   *string
	Price         *float64
	CategoryID    *uint
	ClearCategory bool
	Active        *bool
}

// Update applies the given changes to an existing product.
func Update(db *gorm.DB, id uint64, in UpdateInput) (*models.Product, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	product, err := Get(db, id)
	if err != nil {
		return nil, err
	}

	if in.SKU != nil && *in.SKU != product.SKU {
		if *in.SKU == "" {
			return nil, ErrProductSKUEmpty
		}

		var count int64
		if err := db.Model(&models.Product{}).
			Where("sku = ? AND id <> ?", *in.SKU, id).
			Count(&count).Error; err != nil {
			return nil, apperr.Wrap(err, apperr.KindInternal, "failed to check SKU uniqueness")
		}

		if count > 0 {
			return nil, ErrProductSKUExists
		}

		product.SKU = *in.SKU
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, ErrProductSKUEmpty
		}

		product.Name = *in.Name
	}

	if in.Description != nil {
		product.Description = *in.Description
	}

	if in.Price != nil {
		product.Price = *in.Price
	}

	switch {
	case in.ClearCategory:
		product.CategoryID = nil
		product.Category = nil
	case in.CategoryID != nil:
		if err := checkCategory(db, in.CategoryID); err != nil {
			return nil, err
		}

		product.CategoryID = in.CategoryID
		product.Category = nil
	}

	if in.Active != nil {
		product.Active = *in.Active
	}

	if err := db.Save(product).Error; err != nil {
		return nil, apperr.Wrap(err, apperr.KindInternal, "failed to update product")
	}

	return Get(db, id)
}

// Delete removes a product together with its attribute values. Products with
// inventory movement history cannot be deleted so the audit trail stays
// intact.
func Delete(db *gorm.DB, id uint64) error {
	if db == nil {
		return ErrDBNil
	}

	if _, err := Get(db, id); err != nil {
		return err
	}

	var movements int64
	if err := db.Model(&models.InventoryMovement{}).
		Where("product_id = ?", id).
		Count(&movements).Error; err != nil {
		return apperr.Wrap(err, apperr.KindInternal, "failed to check product movements")
	}

	if movements > 0 {
		return ErrProductHasMovements
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := attribute.DeleteForProduct(tx, id); err != nil {
			return err
		}

		return tx.Unscoped().Delete(&models.Product{}, id).Error
	})
	if err != nil {
		return apperr.Wrap(err, apperr.KindInternal, "failed to delete product")
	}

	return nil
}

func checkCategory(db *gorm.DB, categoryID *uint) error {
	if categoryID == nil {
		return nil
	}

	var count int64
	if err := db.Model(&models.Category{}).
		Where("id = ?", *categoryID).
		Count(&count).Error; err != nil {
		return apperr.Wrap(err, apperr.KindInternal, "failed to check category")
	}

	if count == 0 {
		return ErrCategoryNotFound
	}

	return nil
}
