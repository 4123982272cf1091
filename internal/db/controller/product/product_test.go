package product

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
		&models.Category{},
		&models.Product{},
		&models.ProductAttribute{},
		&models.ProductAttributeOption{},
		&models.ProductAttributeValue{},
		&models.Warehouse{},
		&models.InventoryMovement{},
	)
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func seedCategory(t *testing.T, db *gorm.DB, name, slug string) models.Category {
	t.Helper()

	cat := models.Category{Name: name, Slug: slug}
	require.NoError(t, db.Create(&cat).Error)

	return cat
}

func TestCreate(t *testing.T) {
	unknownCategory := uint(999)

	testCases := []struct {
		name          string
		nilDB         bool
		withCategory  bool
		input         CreateInput
		seed          []models.Product
		expectedError error
	}{
		{
			name:          "nil database",
			nilDB:         true,
			input:         CreateInput{SKU: "WID-1", Name: "Widget"},
			expectedError: ErrDBNil,
		},
		{
			name:          "empty SKU",
			input:         CreateInput{Name: "Widget"},
			expectedError: ErrProductSKUEmpty,
		},
		{
			name:          "empty name",
			input:         CreateInput{SKU: "WID-1"},
			expectedError: ErrProductSKUEmpty,
		},
		{
			name:          "duplicate SKU",
			input:         CreateInput{SKU: "WID-1", Name: "Other widget"},
			seed:          []models.Product{{SKU: "WID-1", Name: "Widget"}},
			expectedError: ErrProductSKUExists,
		},
		{
			name:          "unknown category",
			input:         CreateInput{SKU: "WID-1", Name: "Widget", CategoryID: &unknownCategory},
			expectedError: ErrCategoryNotFound,
		},
		{
			name:  "successful create",
			input: CreateInput{SKU: "WID-1", Name: "Widget", Price: 9.99},
		},
		{
			name:         "create with category",
			withCategory: true,
			input:        CreateInput{SKU: "WID-1", Name: "Widget"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var db *gorm.DB
			if !tc.nilDB {
				db = setupTestDB(t)
				for i := range tc.seed {
					require.NoError(t, db.Create(&tc.seed[i]).Error)
				}

				if tc.withCategory {
					cat := seedCategory(t, db, "Tools", "tools")
					tc.input.CategoryID = &cat.ID
				}
			}

			created, err := Create(db, tc.input)

			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				return
			}

			require.NoError(t, err)
			assert.NotZero(t, created.ID)
			assert.True(t, created.Active)

			loaded, err := Get(db, created.ID)
			require.NoError(t, err)
			assert.Equal(t, tc.input.SKU, loaded.SKU)

			if tc.withCategory {
				require.NotNil(t, loaded.Category)
				assert.Equal(t, "Tools", loaded.Category.Name)
			}
		})
	}
}

func TestList(t *testing.T) {
	db := setupTestDB(t)

	cat := seedCategory(t, db, "Tools", "tools")

	_, err := Create(db, CreateInput{SKU: "HAM-1", Name: "Hammer", CategoryID: &cat.ID})
	require.NoError(t, err)

	screwdriver, err := Create(db, CreateInput{SKU: "SCR-1", Name: "Screwdriver"})
	require.NoError(t, err)

	active := false
	_, err = Update(db, screwdriver.ID, UpdateInput{Active: &active})
	require.NoError(t, err)

	t.Run("all", func(t *testing.T) {
		products, err := List(db, ListFilter{})
		require.NoError(t, err)
		assert.Len(t, products, 2)
	})

	t.Run("by category", func(t *testing.T) {
		products, err := List(db, ListFilter{CategoryID: cat.ID})
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "HAM-1", products[0].SKU)
	})

	t.Run("search", func(t *testing.T) {
		products, err := List(db, ListFilter{Search: "screw"})
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "SCR-1", products[0].SKU)
	})

	t.Run("active only", func(t *testing.T) {
		products, err := List(db, ListFilter{ActiveOnly: true})
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "HAM-1", products[0].SKU)
	})
}

func TestUpdate(t *testing.T) {
	db := setupTestDB(t)

	cat := seedCategory(t, db, "Tools", "tools")

	created, err := Create(db, CreateInput{SKU: "WID-1", Name: "Widget", CategoryID: &cat.ID})
	require.NoError(t, err)

	_, err = Create(db, CreateInput{SKU: "WID-2", Name: "Other"})
	require.NoError(t, err)

	t.Run("change price and name", func(t *testing.T) {
		name := "Deluxe Widget"
		price := 19.99
		updated, err := Update(db, created.ID, UpdateInput{Name: &name, Price: &price})
		require.NoError(t, err)
		assert.Equal(t, "Deluxe Widget", updated.Name)
		assert.InDelta(t, 19.99, updated.Price, 0.001)
	})

	t.Run("SKU collision", func(t *testing.T) {
		sku := "WID-2"
		_, err := Update(db, created.ID, UpdateInput{SKU: &sku})
		assert.ErrorIs(t, err, ErrProductSKUExists)
	})

	t.Run("clear category", func(t *testing.T) {
		updated, err := Update(db, created.ID, UpdateInput{ClearCategory: true})
		require.NoError(t, err)
		assert.Nil(t, updated.CategoryID)
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := Update(db, 999, UpdateInput{})
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestDelete(t *testing.T) {
	t.Run("cascades attribute values", func(t *testing.T) {
		db := setupTestDB(t)

		created, err := Create(db, CreateInput{SKU: "WID-1", Name: "Widget"})
		require.NoError(t, err)

		attr := models.ProductAttribute{Name: "Color", Slug: "color", Type: models.AttributeTypeText, Active: true}
		require.NoError(t, db.Create(&attr).Error)
		require.NoError(t, db.Create(&models.ProductAttributeValue{
			ProductID:   created.ID,
			AttributeID: attr.ID,
			Value:       "red",
		}).Error)

		require.NoError(t, Delete(db, created.ID))

		_, err = Get(db, created.ID)
		assert.ErrorIs(t, err, ErrProductNotFound)

		var values int64
		require.NoError(t, db.Model(&models.ProductAttributeValue{}).Count(&values).Error)
		assert.Zero(t, values)

		// The attribute definition is untouched.
		var attrs int64
		require.NoError(t, db.Model(&models.ProductAttribute{}).Count(&attrs).Error)
		assert.EqualValues(t, 1, attrs)
	})

	t.Run("blocked by movement history", func(t *testing.T) {
		db := setupTestDB(t)

		created, err := Create(db, CreateInput{SKU: "WID-1", Name: "Widget"})
		require.NoError(t, err)

		wh := models.Warehouse{Name: "Main", Code: "MAIN", Active: true}
		require.NoError(t, db.Create(&wh).Error)
		require.NoError(t, db.Create(&models.InventoryMovement{
			ProductID:   created.ID,
			WarehouseID: wh.ID,
			Direction:   models.MovementIn,
			Quantity:    5,
		}).Error)

		assert.ErrorIs(t, Delete(db, created.ID), ErrProductHasMovements)

		_, err = Get(db, created.ID)
		assert.NoError(t, err)
	})

	t.Run("unknown product", func(t *testing.T) {
		db := setupTestDB(t)
		assert.ErrorIs(t, Delete(db, 42), ErrProductNotFound)
	})
}
