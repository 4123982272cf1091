// Package category provides database operations for product categories.
package category

import (
	"errors"

	"gorm.io/gorm"

	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/apperr"
	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/db/models"
)

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")

	// ErrCategoryNotFound is returned when a category does not exist.
	ErrCategoryNotFound = apperr.NotFound("category not found")
	// ErrCategoryNameEmpty is returned when creating a category without a name or slug.
	ErrCategoryNameEmpty = apperr.Validation("category name and slug cannot be empty")
	// ErrCategorySlugExists is returned when the category name or slug is already taken.
	ErrCategorySlugExists = apperr.Validation("category with this name or slug already exists")
	// ErrCategoryInUse is returned when deleting a category that still has products.
	ErrCategoryInUse = apperr.Conflict("category still has products")
)

// CreateInput carries the fields for a new category.
type CreateInput struct {
	Name        string
	Slug        string
	Description string
}

// Create creates a new category. Name and slug must be unique.
func Create(db *gorm.DB, in CreateInput) (*models.Category, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if in.Name == "" || in.Slug == "" {
		return nil, ErrCategoryNameEmpty
	}

	var count int64
	if err := db.Model(&models.Category{}).
		Where("name = ? OR slug = ?", in.Name, in.Slug).
		Count(&count).Error; err != nil {
		return nil, apperr.Wrap(err, apperr.KindInternal, "failed to check category uniqueness")
	}

	if count > 0 {
		return nil, ErrCategorySlugExists
	}

	cat := &models.Category{
		Name:        in.Name,
		Slug:        in.Slug,
		Description: in.Description,
	}

	if err := db.Create(cat).Error; err != nil {
		return nil, apperr.Wrap(err, apperr.KindInternal, "failed to create category")
	}

	return cat, nil
}

// Get retrieves a category by its ID.
func Get(db *gorm.DB, id uint) (*models.Category, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var cat models.Category
	if err := db.First(&cat, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}

		return nil, apperr.Wrap(err, apperr.KindInternal, "failed to load category")
	}

	return &cat, nil
}

// List returns all categories ordered by name.
func List(db *gorm.DB) ([]models.Category, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var cats []models.Category
	if err := db.Order("name").Find(&cats).Error; err != nil {
		return nil, apperr.Wrap(err, apperr.KindInternal, "failed to list categories")
	}

	return cats, nil
}

// UpdateInput carries the mutable fields of a category. Nil fields are left
// unchanged. The slug is immutable once created.
type UpdateInput struct {
	Name        *string
	Description *string
}

// Update applies the given changes to an existing category.
func Update(db *gorm.DB, id uint, in UpdateInput) (*models.Category, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	cat, err := Get(db, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil && *in.Name != cat.Name {
		if *in.Name == "" {
			return nil, ErrCategoryNameEmpty
		}

		var count int64
		if err := db.Model(&models.Category{}).
			Where("name = ? AND id <> ?", *in.Name, id).
			Count(&count).Error; err != nil {
			return nil, apperr.Wrap(err, apperr.KindInternal, "failed to check category uniqueness")
		}

		if count > 0 {
			return nil, ErrCategorySlugExists
		}

		cat.Name = *in.Name
	}

	if in.Description != nil {
		cat.Description = *in.Description
	}

	if err := db.Save(cat).Error; err != nil {
		return nil, apperr.Wrap(err, apperr.KindInternal, "failed to update category")
	}

	return cat, nil
}

// Delete removes a category. Categories that still have products cannot be
// deleted.
func Delete(db *gorm.DB, id uint) error {
	if db == nil {
		return ErrDBNil
	}

	if _, err := Get(db, id); err != nil {
		return err
	}

	var products int64
	if err := db.Model(&models.Product{}).
		Where("category_id = ?", id).
		Count(&products).Error; err != nil {
		return apperr.Wrap(err, apperr.KindInternal, "failed to check category products")
	}

	if products > 0 {
		return ErrCategoryInUse
	}

	if err := db.Delete(&models.Category{}, id).Error; err != nil {
		return apperr.Wrap(err, apperr.KindInternal, "failed to delete category")
	}

	return nil
}
