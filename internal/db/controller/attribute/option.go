package attribute

import (
	"errors"

	"gorm.io/gorm"

	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/apperr"
	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/db/models"
)

var (
	// ErrOptionNotFound is returned when an attribute option does not exist.
	ErrOptionNotFound = apperr.NotFound("attribute option not found")
	// ErrOptionValueEmpty is returned when creating an option without a value token.
	ErrOptionValueEmpty = apperr.Validation("option value cannot be empty")
	// ErrOptionValueExists is returned when the (attribute, value) pair is already taken.
	ErrOptionValueExists = apperr.Validation("option with this value already exists for the attribute")
	// ErrOptionNotEnumerated is returned when attaching options to an
	// attribute whose type is not select or multiselect.
	ErrOptionNotEnumerated = apperr.Validation("options can only be attached to select or multiselect attributes")
	// ErrOptionInUse is returned when deleting an option still referenced by product values.
	ErrOptionInUse = apperr.Conflict("option is referenced by product values")
)

// CreateOption creates an enumerated option for a select or multiselect
// attribute. The label defaults to the value token if omitted.
func CreateOption(db *gorm.DB, attributeID uint, value, label string, sortOrder int) (*models.ProductAttributeOption, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if value == "" {
		return nil, ErrOptionValueEmpty
	}

	attr, err := Get(db, attributeID)
	if err != nil {
		return nil, err
	}

	if !attr.Type.IsSelectKind() {
		return nil, ErrOptionNotEnumerated
	}

	var count int64
	if err := db.Model(&models.ProductAttributeOption{}).
		Where("attribute_id = ? AND value = ?", attributeID, value).
		Count(&count).Error; err != nil {
		return nil, apperr.Wrap(err, apperr.KindInternal, "failed to check option uniqueness")
	}

	if count > 0 {
		return nil, ErrOptionValueExists
	}

	if label == "" {
		label = value
	}

	option := &models.ProductAttributeOption{
		AttributeID: attributeID,
		Value:       value,
		Label:       label,
		SortOrder:   sortOrder,
		Active:      true,
	}

	if err := db.Create(option).Error; err != nil {
		return nil, apperr.Wrap(err, apperr.KindInternal, "failed to create option")
	}

	return option, nil
}

// GetOption retrieves an option by its ID.
func GetOption(db *gorm.DB, id uint) (*models.ProductAttributeOption, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var option models.ProductAttributeOption
	if err := db.First(&option, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOptionNotFound
		}

		return nil, apperr.Wrap(err, apperr.KindInternal, "failed to load option")
	}

	return &option, nil
}

// ListOptions retrieves all options of one attribute ordered for display.
func ListOptions(db *gorm.DB, attributeID uint) ([]models.ProductAttributeOption, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	if _, err := Get(db, attributeID); err != nil {
		return nil, err
	}

	var options []models.ProductAttributeOption
	if err := db.Where("attribute_id = ?", attributeID).
		Order("sort_order ASC, id ASC").
		Find(&options).Error; err != nil {
		return nil, apperr.Wrap(err, apperr.KindInternal, "failed to list options")
	}

	return options, nil
}

// DeleteOption removes an option. The delete is blocked with a conflict
// while any product value references the option.
func DeleteOption(db *gorm.DB, id uint) error {
	if db == nil {
		return ErrDBNil
	}

	if _, err := GetOption(db, id); err != nil {
		return err
	}

	var count int64
	if err := db.Model(&models.ProductAttributeValue{}).
		Where("option_id = ?", id).
		Count(&count).Error; err != nil {
		return apperr.Wrap(err, apperr.KindInternal, "failed to count option references")
	}

	if count > 0 {
		return ErrOptionInUse
	}

	if err := db.Delete(&models.ProductAttributeOption{}, id).Error; err != nil {
		return apperr.Wrap(err, apperr.KindInternal, "failed to delete option")
	}

	return nil
}
