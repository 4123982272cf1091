package attribute

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/GoWarehouse-Admin/GoWarehouse-Admin/internal/db/models"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to create test database")

	err = db.AutoMigrate(
		&models.Product{},
		&models.ProductAttribute{},
		&models.ProductAttributeOption{},
		&models.ProductAttributeValue{},
	)
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func seedAttribute(t *testing.T, db *gorm.DB, name, slug string, typ models.AttributeType) *models.ProductAttribute {
	t.Helper()

	attr, err := Create(db, CreateInput{Name: name, Slug: slug, Type: typ})
	require.NoError(t, err)

	return attr
}

func TestCreate(t *testing.T) {
	db := setupTestDB(t)

	testCases := []struct {
		name          string
		dbParam       *gorm.DB
		input         CreateInput
		expectedError error
	}{
		{
			name:          "nil database",
			dbParam:       nil,
			input:         CreateInput{Name: "Color", Slug: "color", Type: models.AttributeTypeSelect},
			expectedError: ErrDBNil,
		},
		{
			name:          "empty name",
			dbParam:       db,
			input:         CreateInput{Slug: "color", Type: models.AttributeTypeSelect},
			expectedError: ErrAttributeNameEmpty,
		},
		{
			name:          "invalid type",
			dbParam:       db,
			input:         CreateInput{Name: "Color", Slug: "color", Type: "enum"},
			expectedError: ErrAttributeTypeInvalid,
		},
		{
			name:    "successful create",
			dbParam: db,
			input:   CreateInput{Name: "Color", Slug: "color", Type: models.AttributeTypeSelect},
		},
		{
			name:          "duplicate slug",
			dbParam:       db,
			input:         CreateInput{Name: "Colour", Slug: "color", Type: models.AttributeTypeSelect},
			expectedError: ErrAttributeSlugExists,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			attr, err := Create(tc.dbParam, tc.input)

			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				return
			}

			require.NoError(t, err)
			assert.NotZero(t, attr.ID)
			assert.True(t, attr.Active)
		})
	}
}

func TestCreateAcceptsAllSixTypes(t *testing.T) {
	db := setupTestDB(t)

	types := []models.AttributeType{
		models.AttributeTypeText,
		models.AttributeTypeNumber,
		models.AttributeTypeBoolean,
		models.AttributeTypeSelect,
		models.AttributeTypeMultiselect,
		models.AttributeTypeDate,
	}

	for _, typ := range types {
		_, err := Create(db, CreateInput{
			Name: "Attr " + string(typ),
			Slug: "attr-" + string(typ),
			Type: typ,
		})
		assert.NoError(t, err, "type %s should be accepted", typ)
	}
}

func TestUpdateRejectsRetypeWithValues(t *testing.T) {
	db := setupTestDB(t)

	attr := seedAttribute(t, db, "Weight", "weight", models.AttributeTypeNumber)

	_, err := SetValue(db, 1, attr.ID, "12.5", 0)
	require.NoError(t, err)

	// type change with live values is unsafe and rejected
	_, err = Update(db, attr.ID, UpdateInput{
		Name: "Weight", Type: models.AttributeTypeText, Active: true,
	})
	require.ErrorIs(t, err, ErrAttributeInUse)

	// same type is still editable
	updated, err := Update(db, attr.ID, UpdateInput{
		Name: "Net Weight", Type: models.AttributeTypeNumber, Active: true, SortOrder: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, "Net Weight", updated.Name)
	assert.Equal(t, 5, updated.SortOrder)
}

func TestUpdateRejectsTakenName(t *testing.T) {
	db := setupTestDB(t)

	seedAttribute(t, db, "Color", "color", models.AttributeTypeSelect)
	attr := seedAttribute(t, db, "Material", "material", models.AttributeTypeText)

	// renaming onto an existing attribute name is a validation error, not a
	// driver-level unique violation
	_, err := Update(db, attr.ID, UpdateInput{
		Name: "Color", Type: models.AttributeTypeText, Active: true,
	})
	require.ErrorIs(t, err, ErrAttributeSlugExists)

	// keeping the own name untouched still works
	updated, err := Update(db, attr.ID, UpdateInput{
		Name: "Material", Type: models.AttributeTypeText, Active: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Material", updated.Name)
}

func TestDeleteGuard(t *testing.T) {
	db := setupTestDB(t)

	attr := seedAttribute(t, db, "Material", "material", models.AttributeTypeText)

	_, err := SetValue(db, 7, attr.ID, "steel", 0)
	require.NoError(t, err)

	// delete is blocked while values reference the attribute,
	// and both the definition and the values stay untouched
	err = Delete(db, attr.ID)
	require.ErrorIs(t, err, ErrAttributeInUse)

	_, err = Get(db, attr.ID)
	require.NoError(t, err)

	views, err := ValuesForProduct(db, 7)
	require.NoError(t, err)
	require.Len(t, views, 1)

	// after the value is gone the delete succeeds
	require.NoError(t, DeleteValue(db, 7, attr.ID))
	require.NoError(t, Delete(db, attr.ID))

	_, err = Get(db, attr.ID)
	assert.ErrorIs(t, err, ErrAttributeNotFound)
}

func TestDeleteRemovesOptions(t *testing.T) {
	db := setupTestDB(t)

	attr := seedAttribute(t, db, "Size", "size", models.AttributeTypeSelect)

	_, err := CreateOption(db, attr.ID, "s", "Small", 0)
	require.NoError(t, err)
	_, err = CreateOption(db, attr.ID, "m", "Medium", 1)
	require.NoError(t, err)

	require.NoError(t, Delete(db, attr.ID))

	var count int64
	require.NoError(t, db.Model(&models.ProductAttributeOption{}).
		Where("attribute_id = ?", attr.ID).Count(&count).Error)
	assert.Zero(t, count, "options go with their attribute")
}

func TestCreateOption(t *testing.T) {
	db := setupTestDB(t)

	selectAttr := seedAttribute(t, db, "Color", "color", models.AttributeTypeSelect)
	textAttr := seedAttribute(t, db, "Notes", "notes", models.AttributeTypeText)

	testCases := []struct {
		name          string
		attributeID   uint
		value         string
		label         string
		expectedError error
		expectedLabel string
	}{
		{
			name:          "option on text attribute",
			attributeID:   textAttr.ID,
			value:         "red",
			expectedError: ErrOptionNotEnumerated,
		},
		{
			name:          "unknown attribute",
			attributeID:   99999,
			value:         "red",
			expectedError: ErrAttributeNotFound,
		},
		{
			name:          "empty value",
			attributeID:   selectAttr.ID,
			expectedError: ErrOptionValueEmpty,
		},
		{
			name:          "label defaults to value",
			attributeID:   selectAttr.ID,
			value:         "red",
			expectedLabel: "red",
		},
		{
			name:          "explicit label",
			attributeID:   selectAttr.ID,
			value:         "dark-blue",
			label:         "Dark Blue",
			expectedLabel: "Dark Blue",
		},
		{
			name:          "duplicate value for attribute",
			attributeID:   selectAttr.ID,
			value:         "red",
			expectedError: ErrOptionValueExists,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			option, err := CreateOption(db, tc.attributeID, tc.value, tc.label, 0)

			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expectedLabel, option.Label)
		})
	}
}

func TestDeleteOptionGuard(t *testing.T) {
	db := setupTestDB(t)

	attr := seedAttribute(t, db, "Color", "color", models.AttributeTypeSelect)
	option, err := CreateOption(db, attr.ID, "red", "Red", 0)
	require.NoError(t, err)

	_, err = SetValue(db, 7, attr.ID, "", option.ID)
	require.NoError(t, err)

	err = DeleteOption(db, option.ID)
	require.ErrorIs(t, err, ErrOptionInUse)

	require.NoError(t, DeleteValue(db, 7, attr.ID))
	require.NoError(t, DeleteOption(db, option.ID))

	_, err = GetOption(db, option.ID)
	assert.ErrorIs(t, err, ErrOptionNotFound)
}
