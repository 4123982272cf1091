package attribute

import (
	"errors"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/apperr"
	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/db/models"
)

var (
	// ErrValueNotFound is returned when no value row exists for the lookup.
	ErrValueNotFound = apperr.NotFound("attribute value not found")
	// ErrOptionRequired is returned when setting a select kind attribute without an option.
	ErrOptionRequired = apperr.Validation("select and multiselect attributes require an option")
	// ErrOptionForbidden is returned when an option is supplied for a non-enumerated attribute.
	ErrOptionForbidden = apperr.Validation("options are only valid for select and multiselect attributes")
	// ErrOptionWrongAttribute is returned when the option belongs to a different attribute.
	ErrOptionWrongAttribute = apperr.Validation("option does not belong to the attribute")
	// ErrValueNotNumber is returned when a number attribute receives a non-decimal value.
	ErrValueNotNumber = apperr.Validation("value must be a decimal number")
	// ErrValueNotBoolean is returned when a boolean attribute receives anything but true or false.
	ErrValueNotBoolean = apperr.Validation(`value must be "true" or "false"`)
	// ErrValueNotDate is returned when a date attribute receives a non ISO date.
	ErrValueNotDate = apperr.Validation("value must be an ISO date (YYYY-MM-DD)")
)

// SetValue stores the value of one attribute for one product with upsert
// semantics: a second write for the same (product, attribute) pair updates
// the existing row instead of creating a duplicate.
//
// For select and multiselect attributes optionID is mandatory, must belong
// to the attribute, and the stored value is denormalized from the option's
// canonical token. For all other types optionID must be zero and raw is
// validated against the declared type before anything is written.
func SetValue(db *gorm.DB, productID uint64, attributeID uint, raw string, optionID uint) (*models.ProductAttributeValue, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	attr, err := Get(db, attributeID)
	if err != nil {
		return nil, err
	}

	var (
		value    string
		optionFK *uint
	)

	if attr.Type.IsSelectKind() {
		if optionID == 0 {
			return nil, ErrOptionRequired
		}

		option, oerr := GetOption(db, optionID)
		if oerr != nil {
			return nil, oerr
		}

		if option.AttributeID != attributeID {
			return nil, ErrOptionWrongAttribute
		}

		value = option.Value
		optionFK = &option.ID
	} else {
		if optionID != 0 {
			return nil, ErrOptionForbidden
		}

		if err := checkTyped(attr.Type, raw); err != nil {
			return nil, err
		}

		value = raw
	}

	var existing models.ProductAttributeValue
	err = db.Where("product_id = ? AND attribute_id = ?", productID, attributeID).
		First(&existing).Error

	switch {
	case err == nil:
		existing.Value = value
		existing.OptionID = optionFK

		if err := db.Save(&existing).Error; err != nil {
			return nil, apperr.Wrap(err, apperr.KindInternal, "failed to update attribute value")
		}

		return &existing, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		row := models.ProductAttributeValue{
			ProductID:   productID,
			AttributeID: attributeID,
			Value:       value,
			OptionID:    optionFK,
		}

		if err := db.Create(&row).Error; err != nil {
			return nil, apperr.Wrap(err, apperr.KindInternal, "failed to create attribute value")
		}

		return &row, nil
	default:
		return nil, apperr.Wrap(err, apperr.KindInternal, "failed to load attribute value")
	}
}

// checkTyped validates a raw value against the declared scalar type.
// Text accepts anything; the stored representation is always text.
func checkTyped(t models.AttributeType, raw string) error {
	switch t {
	case models.AttributeTypeNumber:
		if _, err := strconv.ParseFloat(raw, 64); err != nil {
			return ErrValueNotNumber
		}
	case models.AttributeTypeBoolean:
		if raw != "true" && raw != "false" {
			return ErrValueNotBoolean
		}
	case models.AttributeTypeDate:
		if _, err := time.Parse("2006-01-02", raw); err != nil {
			return ErrValueNotDate
		}
	}

	return nil
}

// ValueView is the read shape of one attribute value: the stored value plus
// the display label resolved from the option catalog when the value was
// chosen from it.
type ValueView struct {
	AttributeID   uint                 `json:"attribute_id"`
	AttributeSlug string               `json:"attribute_slug"`
	AttributeName string               `json:"attribute_name"`
	Type          models.AttributeType `json:"type"`
	Value         string               `json:"value"`
	OptionID      *uint                `json:"option_id,omitempty"`
	OptionLabel   string               `json:"option_label,omitempty"`
}

// ValuesForProduct retrieves all attribute values of a product for display.
// Option backed values carry the option's label; free-typed values fall back
// to the raw stored text.
func ValuesForProduct(db *gorm.DB, productID uint64) ([]ValueView, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var rows []models.ProductAttributeValue
	if err := db.Preload("Attribute").Preload("Option").
		Where("product_id = ?", productID).
		Find(&rows).Error; err != nil {
		return nil, apperr.Wrap(err, apperr.KindInternal, "failed to load attribute values")
	}

	views := make([]ValueView, 0, len(rows))

	for _, row := range rows {
		view := ValueView{
			AttributeID:   row.AttributeID,
			AttributeSlug: row.Attribute.Slug,
			AttributeName: row.Attribute.Name,
			Type:          row.Attribute.Type,
			Value:         row.Value,
			OptionID:      row.OptionID,
		}

		if row.Option != nil {
			view.OptionLabel = row.Option.Label
		}

		views = append(views, view)
	}

	return views, nil
}

// DeleteValue removes the value of one attribute for one product.
func DeleteValue(db *gorm.DB, productID uint64, attributeID uint) error {
	if db == nil {
		return ErrDBNil
	}

	result := db.Where("product_id = ? AND attribute_id = ?", productID, attributeID).
		Delete(&models.ProductAttributeValue{})
	if result.Error != nil {
		return apperr.Wrap(result.Error, apperr.KindInternal, "failed to delete attribute value")
	}

	if result.RowsAffected == 0 {
		return ErrValueNotFound
	}

	return nil
}

// DeleteForProduct removes all attribute values of a product. Called when
// the product itself is deleted.
func DeleteForProduct(db *gorm.DB, productID uint64) error {
	if db == nil {
		return ErrDBNil
	}

	if err := db.Where("product_id = ?", productID).
		Delete(&models.ProductAttributeValue{}).Error; err != nil {
		return apperr.Wrap(err, apperr.KindInternal, "failed to delete attribute values")
	}

	return nil
}
