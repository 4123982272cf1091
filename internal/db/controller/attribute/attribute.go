// Package attribute provides the dynamic product attribute engine: attribute
// definitions, their enumerated options and the typed per-product values.
package attribute

import (
	"errors"

	"gorm.io/gorm"

	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/apperr"
	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/db/models"
)

var (
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")

	// ErrAttributeNotFound is returned when an attribute definition does not exist.
	ErrAttributeNotFound = apperr.NotFound("attribute not found")
	// ErrAttributeNameEmpty is returned when creating an attribute without a name or slug.
	ErrAttributeNameEmpty = apperr.Validation("attribute name and slug cannot be empty")
	// ErrAttributeSlugExists is returned when the attribute name or slug is already taken.
	ErrAttributeSlugExists = apperr.Validation("attribute with this name or slug already exists")
	// ErrAttributeTypeInvalid is returned for a type outside the six supported kinds.
	ErrAttributeTypeInvalid = apperr.Validation("attribute type must be one of text, number, boolean, select, multiselect, date")
	// ErrAttributeInUse is returned when deleting or retyping an attribute that has values.
	ErrAttributeInUse = apperr.Conflict("attribute is referenced by product values")
)

// CreateInput carries the fields for a new attribute definition.
type CreateInput struct {
	Name         string
	Slug         string
	Type         models.AttributeType
	Description  string
	IsRequired   bool
	IsFilterable bool
	IsSearchable bool
	SortOrder    int
}

// Create creates a new attribute definition.
// The slug and name must be unique and the type must be one of the six
// supported kinds; violations yield a validation error before any write.
func Create(db *gorm.DB, in CreateInput) (*models.ProductAttribute, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if in.Name == "" || in.Slug == "" {
		return nil, ErrAttributeNameEmpty
	}

	if !in.Type.Valid() {
		return nil, ErrAttributeTypeInvalid
	}

	var count int64
	if err := db.Model(&models.ProductAttribute{}).
		Where("name = ? OR slug = ?", in.Name, in.Slug).
		Count(&count).Error; err != nil {
		return nil, apperr.Wrap(err, apperr.KindInternal, "failed to check attribute uniqueness")
	}

	if count > 0 {
		return nil, ErrAttributeSlugExists
	}

	attr := &models.ProductAttribute{
		Name:         in.Name,
		Slug:         in.Slug,
		Type:         in.Type,
		Description:  in.Description,
		IsRequired:   in.IsRequired,
		IsFilterable: in.IsFilterable,
		IsSearchable: in.IsSearchable,
		SortOrder:    in.SortOrder,
		Active:       true,
	}

	if err := db.Create(attr).Error; err != nil {
		return nil, apperr.Wrap(err, apperr.KindInternal, "failed to create attribute")
	}

	return attr, nil
}

// Get retrieves an attribute definition by its ID.
func Get(db *gorm.DB, id uint) (*models.ProductAttribute, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var attr models.ProductAttribute
	if err := db.First(&attr, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttributeNotFound
		}

		return nil, apperr.Wrap(err, apperr.KindInternal, "failed to load attribute")
	}

	return &attr, nil
}

// GetBySlug retrieves an attribute definition by its slug.
func GetBySlug(db *gorm.DB, slug string) (*models.ProductAttribute, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var attr models.ProductAttribute
	if err := db.Where("slug = ?", slug).First(&attr).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttributeNotFound
		}

		return nil, apperr.Wrap(err, apperr.KindInternal, "failed to load attribute")
	}

	return &attr, nil
}

// List retrieves all attribute definitions ordered for display.
func List(db *gorm.DB) ([]models.ProductAttribute, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var attrs []models.ProductAttribute
	if err := db.Order("sort_order ASC, id ASC").Find(&attrs).Error; err != nil {
		return nil, apperr.Wrap(err, apperr.KindInternal, "failed to list attributes")
	}

	return attrs, nil
}

// UpdateInput carries the updatable fields of an attribute definition.
type UpdateInput struct {
	Name         string
	Type         models.AttributeType
	Description  string
	IsRequired   bool
	IsFilterable bool
	IsSearchable bool
	SortOrder    int
	Active       bool
}

// Update updates an attribute definition. Changing the type while values
// reference the attribute is rejected: stored values are interpreted
// according to the declared type, so retyping would silently invalidate them.
func Update(db *gorm.DB, id uint, in UpdateInput) (*models.ProductAttribute, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	attr, err := Get(db, id)
	if err != nil {
		return nil, err
	}

	if !in.Type.Valid() {
		return nil, ErrAttributeTypeInvalid
	}

	if in.Name != attr.Name {
		var count int64
		if err := db.Model(&models.ProductAttribute{}).
			Where("name = ? AND id <> ?", in.Name, id).
			Count(&count).Error; err != nil {
			return nil, apperr.Wrap(err, apperr.KindInternal, "failed to check attribute name")
		}

		if count > 0 {
			return nil, ErrAttributeSlugExists
		}
	}

	if in.Type != attr.Type {
		count, cerr := valueCount(db, id)
		if cerr != nil {
			return nil, cerr
		}

		if count > 0 {
			return nil, ErrAttributeInUse
		}
	}

	attr.Name = in.Name
	attr.Type = in.Type
	attr.Description = in.Description
	attr.IsRequired = in.IsRequired
	attr.IsFilterable = in.IsFilterable
	attr.IsSearchable = in.IsSearchable
	attr.SortOrder = in.SortOrder
	attr.Active = in.Active

	if err := db.Save(attr).Error; err != nil {
		return nil, apperr.Wrap(err, apperr.KindInternal, "failed to update attribute")
	}

	return attr, nil
}

// Delete removes an attribute definition and its options. The delete is
// blocked with a conflict while any product value references the attribute.
func Delete(db *gorm.DB, id uint) error {
	if db == nil {
		return ErrDBNil
	}

	if _, err := Get(db, id); err != nil {
		return err
	}

	count, err := valueCount(db, id)
	if err != nil {
		return err
	}

	if count > 0 {
		return ErrAttributeInUse
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("attribute_id = ?", id).
			Delete(&models.ProductAttributeOption{}).Error; err != nil {
			return apperr.Wrap(err, apperr.KindInternal, "failed to delete attribute options")
		}

		if err := tx.Delete(&models.ProductAttribute{}, id).Error; err != nil {
			return apperr.Wrap(err, apperr.KindInternal, "failed to delete attribute")
		}

		return nil
	})
}

func valueCount(db *gorm.DB, attributeID uint) (int64, error) {
	var count int64
	if err := db.Model(&models.ProductAttributeValue{}).
		Where("attribute_id = ?", attributeID).
		Count(&count).Error; err != nil {
		return 0, apperr.Wrap(err, apperr.KindInternal, "failed to count attribute values")
	}

	return count, nil
}
