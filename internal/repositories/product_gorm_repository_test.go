package repositories_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"stockroom/internal/apperr"
	"stockroom/internal/database/dbtest"
	"stockroom/internal/models"
	"stockroom/internal/repositories"
)

type inventoryRepos struct {
	db       *gorm.DB
	aisles   *repositories.GORMAisleRepository
	products *repositories.GORMProductRepository
}

func newInventoryRepos(t *testing.T) inventoryRepos {
	t.Helper()
	db := dbtest.New(t)
	return inventoryRepos{
		db:       db,
		aisles:   repositories.NewGORMAisleRepository(db, repositories.NewIntegrityGuard()),
		products: repositories.NewGORMProductRepository(db),
	}
}

func TestGORMProductRepository_CreateAndListWithAisle(t *testing.T) {
	r := newInventoryRepos(t)
	ctx := context.Background()

	dairy := &models.Aisle{Name: "Dairy", AisleNumber: "A1"}
	bakery := &models.Aisle{Name: "Bakery", AisleNumber: "B2"}
	require.NoError(t, r.aisles.Create(ctx, dairy))
	require.NoError(t, r.aisles.Create(ctx, bakery))

	milk := &models.Product{Name: "Milk", Quantity: 10, AisleID: dairy.ID}
	bread := &models.Product{Name: "Bread", Quantity: 0, AisleID: bakery.ID}
	require.NoError(t, r.products.Create(ctx, milk))
	require.NoError(t, r.products.Create(ctx, bread))
	assert.NotZero(t, milk.ID)
	require.NotNil(t, milk.Aisle)
	assert.Equal(t, "Dairy", milk.Aisle.Name)

	list, err := r.products.ListWithAisle(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, milk.ID, list[0].ID)
	require.NotNil(t, list[0].Aisle)
	assert.Equal(t, dairy.ID, list[0].Aisle.ID)
	assert.Equal(t, "A1", list[0].Aisle.AisleNumber)

	assert.Equal(t, bread.ID, list[1].ID)
	assert.Equal(t, 0, list[1].Quantity)
	require.NotNil(t, list[1].Aisle)
	assert.Equal(t, "Bakery", list[1].Aisle.Name)
}

func TestGORMProductRepository_CreateRequiresAisle(t *testing.T) {
	r := newInventoryRepos(t)
	ctx := context.Background()

	err := r.products.Create(ctx, &models.Product{Name: "Orphan", Quantity: 1, AisleID: 77})
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Contains(t, err.Error(), "aisle with ID 77")

	list, err := r.products.ListWithAisle(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestGORMProductRepository_GetByID(t *testing.T) {
	r := newInventoryRepos(t)
	ctx := context.Background()

	aisle := &models.Aisle{Name: "Dairy", AisleNumber: "A1"}
	require.NoError(t, r.aisles.Create(ctx, aisle))
	milk := &models.Product{Name: "Milk", Quantity: 10, AisleID: aisle.ID}
	require.NoError(t, r.products.Create(ctx, milk))

	got, err := r.products.GetByID(ctx, milk.ID)
	require.NoError(t, err)
	assert.Equal(t, "Milk", got.Name)
	require.NotNil(t, got.Aisle)
	assert.Equal(t, aisle.ID, got.Aisle.ID)

	_, err = r.products.GetByID(ctx, milk.ID+100)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestGORMProductRepository_Update(t *testing.T) {
	r := newInventoryRepos(t)
	ctx := context.Background()

	dairy := &models.Aisle{Name: "Dairy", AisleNumber: "A1"}
	fridge := &models.Aisle{Name: "Fridge", AisleNumber: "F1"}
	require.NoError(t, r.aisles.Create(ctx, dairy))
	require.NoError(t, r.aisles.Create(ctx, fridge))
	milk := &models.Product{Name: "Milk", Quantity: 10, AisleID: dairy.ID}
	require.NoError(t, r.products.Create(ctx, milk))

	t.Run("moves to another aisle", func(t *testing.T) {
		p := &models.Product{ID: milk.ID, Name: "Milk 2L", Quantity: 5, AisleID: fridge.ID}
		require.NoError(t, r.products.Update(ctx, p))
		assert.Equal(t, "Milk 2L", p.Name)
		require.NotNil(t, p.Aisle)
		assert.Equal(t, "Fridge", p.Aisle.Name)

		got, err := r.products.GetByID(ctx, milk.ID)
		require.NoError(t, err)
		assert.Equal(t, 5, got.Quantity)
		assert.Equal(t, fridge.ID, got.AisleID)
	})

	t.Run("quantity can drop to zero", func(t *testing.T) {
		p := &models.Product{ID: milk.ID, Name: "Milk 2L", Quantity: 0, AisleID: fridge.ID}
		require.NoError(t, r.products.Update(ctx, p))
		got, err := r.products.GetByID(ctx, milk.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, got.Quantity)
	})

	t.Run("unknown aisle leaves product untouched", func(t *testing.T) {
		err := r.products.Update(ctx, &models.Product{ID: milk.ID, Name: "Moved", Quantity: 1, AisleID: 999})
		assert.ErrorIs(t, err, apperr.ErrNotFound)

		got, err := r.products.GetByID(ctx, milk.ID)
		require.NoError(t, err)
		assert.Equal(t, "Milk 2L", got.Name)
		assert.Equal(t, fridge.ID, got.AisleID)
	})

	t.Run("unknown product", func(t *testing.T) {
		err := r.products.Update(ctx, &models.Product{ID: 999, Name: "Ghost", Quantity: 1, AisleID: dairy.ID})
		assert.ErrorIs(t, err, apperr.ErrNotFound)
		assert.Contains(t, err.Error(), "product with ID 999")
	})
}

func TestGORMProductRepository_Delete(t *testing.T) {
	r := newInventoryRepos(t)
	ctx := context.Background()

	aisle := &models.Aisle{Name: "Dairy", AisleNumber: "A1"}
	require.NoError(t, r.aisles.Create(ctx, aisle))
	milk := &models.Product{Name: "Milk", Quantity: 10, AisleID: aisle.ID}
	require.NoError(t, r.products.Create(ctx, milk))

	require.NoError(t, r.products.Delete(ctx, milk.ID))
	assert.ErrorIs(t, r.products.Delete(ctx, milk.ID), apperr.ErrNotFound)
}

func TestInventoryScenario_AisleDeleteBlockedUntilProductRemoved(t *testing.T) {
	r := newInventoryRepos(t)
	ctx := context.Background()

	dairy := &models.Aisle{Name: "Dairy", AisleNumber: "A1"}
	require.NoError(t, r.aisles.Create(ctx, dairy))
	assert.EqualValues(t, 1, dairy.ID)

	milk := &models.Product{Name: "Milk", Quantity: 10, AisleID: 1}
	require.NoError(t, r.products.Create(ctx, milk))
	assert.EqualValues(t, 1, milk.ID)

	assert.ErrorIs(t, r.aisles.Delete(ctx, 1), apperr.ErrConflict)
	require.NoError(t, r.products.Delete(ctx, 1))
	require.NoError(t, r.aisles.Delete(ctx, 1))

	aisles, err := r.aisles.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, aisles)
}

func TestInventoryScenario_UpdateMissingProductLeavesStoreUnchanged(t *testing.T) {
	r := newInventoryRepos(t)
	ctx := context.Background()

	err := r.products.Update(ctx, &models.Product{ID: 1, Name: "Milk 2L", Quantity: 5, AisleID: 1})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	var products, aisles int64
	require.NoError(t, r.db.Model(&models.Product{}).Count(&products).Error)
	require.NoError(t, r.db.Model(&models.Aisle{}).Count(&aisles).Error)
	assert.Zero(t, products)
	assert.Zero(t, aisles)
}

func TestInventory_ConcurrentInsertAndAisleDeleteNeverOrphan(t *testing.T) {
	r := newInventoryRepos(t)
	ctx := context.Background()

	for round := 0; round < 10; round++ {
		aisle := &models.Aisle{Name: "Race", AisleNumber: "R"}
		require.NoError(t, r.aisles.Create(ctx, aisle))

		var wg sync.WaitGroup
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = r.products.Create(ctx, &models.Product{Name: "Item", Quantity: 1, AisleID: aisle.ID})
			}()
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = r.aisles.Delete(ctx, aisle.ID)
		}()
		wg.Wait()

		var aisleCount, productCount int64
		require.NoError(t, r.db.Model(&models.Aisle{}).Where("id = ?", aisle.ID).Count(&aisleCount).Error)
		require.NoError(t, r.db.Model(&models.Product{}).Where("aisle_id = ?", aisle.ID).Count(&productCount).Error)
		if aisleCount == 0 {
			assert.Zero(t, productCount, "round %d: products left pointing at a deleted aisle", round)
		}
	}
}
