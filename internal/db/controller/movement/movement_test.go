package movement

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
		&models.Warehouse{},
		&models.InventoryMovement{},
	)
	require.NoError(t, err, "failed to migrate test database")

	return db
}

func seedCatalog(t *testing.T, db *gorm.DB) (models.Product, models.Warehouse) {
	t.Helper()

	product := models.Product{SKU: "WID-1", Name: "Widget", Active: true}
	require.NoError(t, db.Create(&product).Error)

	wh := models.Warehouse{Name: "Main", Code: "MAIN", Active: true}
	require.NoError(t, db.Create(&wh).Error)

	return product, wh
}

func TestCreate(t *testing.T) {
	db := setupTestDB(t)
	product, wh := seedCatalog(t, db)

	actor := uint64(7)

	testCases := []struct {
		name          string
		input         CreateInput
		expectedError error
	}{
		{
			name: "invalid direction",
			input: CreateInput{
				ProductID: product.ID, WarehouseID: wh.ID,
				Direction: "sideways", Quantity: 1,
			},
			expectedError: ErrMovementDirectionInvalid,
		},
		{
			name: "zero quantity",
			input: CreateInput{
				ProductID: product.ID, WarehouseID: wh.ID,
				Direction: models.MovementIn,
			},
			expectedError: ErrMovementQuantityInvalid,
		},
		{
			name: "negative quantity",
			input: CreateInput{
				ProductID: product.ID, WarehouseID: wh.ID,
				Direction: models.MovementOut, Quantity: -3,
			},
			expectedError: ErrMovementQuantityInvalid,
		},
		{
			name: "unknown product",
			input: CreateInput{
				ProductID: 999, WarehouseID: wh.ID,
				Direction: models.MovementIn, Quantity: 1,
			},
			expectedError: ErrMovementProductUnknown,
		},
		{
			name: "unknown warehouse",
			input: CreateInput{
				ProductID: product.ID, WarehouseID: 999,
				Direction: models.MovementIn, Quantity: 1,
			},
			expectedError: ErrMovementWarehouseUnknown,
		},
		{
			name: "successful create",
			input: CreateInput{
				ProductID: product.ID, WarehouseID: wh.ID,
				Direction: models.MovementIn, Quantity: 10,
				Note: "initial stock", CreatedBy: &actor,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			created, err := Create(db, tc.input)

			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				return
			}

			require.NoError(t, err)
			assert.NotZero(t, created.ID)

			loaded, err := Get(db, created.ID)
			require.NoError(t, err)
			assert.Equal(t, "WID-1", loaded.Product.SKU)
			assert.Equal(t, "MAIN", loaded.Warehouse.Code)
			require.NotNil(t, loaded.CreatedBy)
			assert.EqualValues(t, 7, *loaded.CreatedBy)
		})
	}
}

func TestList(t *testing.T) {
	db := setupTestDB(t)
	product, wh := seedCatalog(t, db)

	other := models.Warehouse{Name: "Backup", Code: "BACK", Active: true}
	require.NoError(t, db.Create(&other).Error)

	for _, in := range []CreateInput{
		{ProductID: product.ID, WarehouseID: wh.ID, Direction: models.MovementIn, Quantity: 10},
		{ProductID: product.ID, WarehouseID: wh.ID, Direction: models.MovementOut, Quantity: 4},
		{ProductID: product.ID, WarehouseID: other.ID, Direction: models.MovementIn, Quantity: 2},
	} {
		_, err := Create(db, in)
		require.NoError(t, err)
	}

	t.Run("all newest first", func(t *testing.T) {
		movs, err := List(db, ListFilter{})
		require.NoError(t, err)
		require.Len(t, movs, 3)
		assert.Equal(t, "BACK", movs[0].Warehouse.Code)
	})

	t.Run("by warehouse", func(t *testing.T) {
		movs, err := List(db, ListFilter{WarehouseID: wh.ID})
		require.NoError(t, err)
		assert.Len(t, movs, 2)
	})

	t.Run("by direction", func(t *testing.T) {
		movs, err := List(db, ListFilter{Direction: models.MovementOut})
		require.NoError(t, err)
		require.Len(t, movs, 1)
		assert.Equal(t, 4, movs[0].Quantity)
	})
}

func TestDelete(t *testing.T) {
	db := setupTestDB(t)
	product, wh := seedCatalog(t, db)

	created, err := Create(db, CreateInput{
		ProductID: product.ID, WarehouseID: wh.ID,
		Direction: models.MovementIn, Quantity: 1,
	})
	require.NoError(t, err)

	require.NoError(t, Delete(db, created.ID))
	assert.ErrorIs(t, Delete(db, created.ID), ErrMovementNotFound)
}
