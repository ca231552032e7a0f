package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/repairdesk/backend/internal/domain/inventory"
	"github.com/repairdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestItem(t *testing.T, name string, createdHour int, mutate ...func(*inventory.Details)) *inventory.Item {
	t.Helper()
	d := inventory.Details{
		Name:      name,
		Category:  inventory.CategoryBoards,
		Brand:     "Samsung",
		ModelName: "BN44-00932",
		Quantity:  10,
		Price:     decimal.NewFromInt(2500),
		Threshold: 3,
		Supplier:  "Colombo Electronics",
	}
	for _, m := range mutate {
		m(&d)
	}
	item, err := inventory.NewItem(d)
	require.NoError(t, err)
	item.CreatedAt = at(createdHour)
	item.UpdatedAt = item.CreatedAt
	return item
}

func seedItems(t *testing.T, repo *GormInventoryItemRepository, items ...*inventory.Item) {
	t.Helper()
	for _, it := range items {
		require.NoError(t, repo.Create(context.Background(), it))
	}
}

func itemNames(items []inventory.Item) []string {
	out := make([]string, len(items))
	for i := range items {
		out[i] = items[i].Name
	}
	return out
}

func TestInventoryRepository_CreateFindDelete(t *testing.T) {
	repo := NewGormInventoryItemRepository(newTestDB(t))
	ctx := context.Background()
	item := newTestItem(t, "Power board", 0, func(d *inventory.Details) {
		d.Price = decimal.RequireFromString("2499.99")
		d.Description = "Main SMPS board"
	})
	seedItems(t, repo, item)

	got, err := repo.FindByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Power board", got.Name)
	assert.Equal(t, inventory.CategoryBoards, got.Category)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("2499.99")))
	assert.Equal(t, "Main SMPS board", got.Description)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, item.ID))
	assert.ErrorIs(t, repo.Delete(ctx, item.ID), shared.ErrNotFound)

	got.Quantity = 9
	assert.ErrorIs(t, repo.Save(ctx, got), shared.ErrNotFound)
	_, err = repo.FindByID(ctx, item.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestInventoryRepository_SaveAllAndFindByIDs(t *testing.T) {
	repo := NewGormInventoryItemRepository(newTestDB(t))
	ctx := context.Background()
	a := newTestItem(t, "LED strip", 0)
	b := newTestItem(t, "Remote", 1, func(d *inventory.Details) { d.Category = inventory.CategoryRemotes })
	seedItems(t, repo, a, b)

	a.Quantity = 4
	b.Quantity = 0
	require.NoError(t, repo.SaveAll(ctx, []inventory.Item{*a, *b}))

	got, err := repo.FindByIDs(ctx, []uuid.UUID{a.ID, b.ID, uuid.New()})
	require.NoError(t, err)
	require.Len(t, got, 2)
	quantities := map[string]int{}
	for _, it := range got {
		quantities[it.Name] = it.Quantity
	}
	assert.Equal(t, map[string]int{"LED strip": 4, "Remote": 0}, quantities)

	empty, err := repo.FindByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)

	deleted, err := repo.DeleteMany(ctx, []uuid.UUID{a.ID, uuid.New()})
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	b.Quantity = 7
	assert.ErrorIs(t, repo.SaveAll(ctx, []inventory.Item{*b, *a}), shared.ErrNotFound)
	left, err := repo.FindByIDs(ctx, []uuid.UUID{a.ID, b.ID})
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, 0, left[0].Quantity)
}

func TestInventoryRepository_QuantityUpdates(t *testing.T) {
	repo := NewGormInventoryItemRepository(newTestDB(t))
	ctx := context.Background()
	item := newTestItem(t, "T-con board", 0, func(d *inventory.Details) { d.Quantity = 5 })
	seedItems(t, repo, item)

	got, err := repo.IncreaseQuantity(ctx, item.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 8, got.Quantity)

	got, err = repo.DecreaseQuantity(ctx, item.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 6, got.Quantity)

	got, err = repo.DecreaseQuantity(ctx, item.ID, 50)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Quantity, "decrease clamps at zero")

	got, err = repo.SetQuantity(ctx, item.ID, 12)
	require.NoError(t, err)
	assert.Equal(t, 12, got.Quantity)

	_, err = repo.DecreaseQuantity(ctx, uuid.New(), 1)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestInventoryRepository_FindAll(t *testing.T) {
	repo := NewGormInventoryItemRepository(newTestDB(t))
	ctx := context.Background()
	seedItems(t, repo,
		newTestItem(t, "Panel 55in", 0, func(d *inventory.Details) {
			d.Category = inventory.CategoryPanels
			d.Brand = "LG"
			d.Price = decimal.NewFromInt(42000)
		}),
		newTestItem(t, "Main board", 1, func(d *inventory.Details) { d.Price = decimal.NewFromInt(8000) }),
		newTestItem(t, "Remote", 2, func(d *inventory.Details) {
			d.Category = inventory.CategoryRemotes
			d.Brand = "Sony"
			d.Price = decimal.NewFromInt(1500)
		}),
	)

	tests := []struct {
		name   string
		filter inventory.Filter
		want   []string
	}{
		{"all newest first", inventory.Filter{}, []string{"Remote", "Main board", "Panel 55in"}},
		{"category", inventory.Filter{Category: ptr(inventory.CategoryPanels)}, []string{"Panel 55in"}},
		{"brand substring", inventory.Filter{Brand: "so"}, []string{"Remote"}},
		{"price range", inventory.Filter{MinPrice: ptr(decimal.NewFromInt(2000)), MaxPrice: ptr(decimal.NewFromInt(10000))}, []string{"Main board"}},
		{"search", inventory.Filter{Filter: shared.Filter{Search: "BOARD"}}, []string{"Main board"}},
		{"sort by price asc", inventory.Filter{Filter: shared.Filter{OrderBy: "price", OrderDir: "asc"}}, []string{"Remote", "Main board", "Panel 55in"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, total, err := repo.FindAll(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, itemNames(items))
			assert.EqualValues(t, len(tt.want), total)
		})
	}

	page, total, err := repo.FindAll(ctx, inventory.Filter{Filter: shared.Filter{Page: 2, PageSize: 2}})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Equal(t, []string{"Panel 55in"}, itemNames(page))
}

func TestInventoryRepository_StockQueries(t *testing.T) {
	repo := NewGormInventoryItemRepository(newTestDB(t))
	ctx := context.Background()
	low := newTestItem(t, "Fuse", 0, func(d *inventory.Details) {
		d.Quantity = 2
		d.Category = inventory.CategoryTools
		d.Brand = "Generic"
		d.ModelName = "F-5A"
		d.Supplier = "Pettah Parts"
	})
	out := newTestItem(t, "Backlight", 1, func(d *inventory.Details) { d.Quantity = 1 })
	ok := newTestItem(t, "Capacitor", 2, func(d *inventory.Details) { d.Price = decimal.NewFromInt(50) })
	seedItems(t, repo, low, out, ok)
	_, err := repo.SetQuantity(ctx, out.ID, 0)
	require.NoError(t, err)

	lowStock, err := repo.FindLowStock(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Backlight", "Fuse"}, itemNames(lowStock))

	outOfStock, err := repo.FindOutOfStock(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Backlight"}, itemNames(outOfStock))

	tools, err := repo.FindByCategory(ctx, inventory.CategoryTools)
	require.NoError(t, err)
	assert.Equal(t, []string{"Fuse"}, itemNames(tools))

	samsung, err := repo.FindByBrand(ctx, "sams")
	require.NoError(t, err)
	assert.Equal(t, []string{"Backlight", "Capacitor"}, itemNames(samsung))

	cheap, err := repo.FindByPriceRange(ctx, decimal.Zero, decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.Equal(t, []string{"Capacitor"}, itemNames(cheap))

	limited, err := repo.Search(ctx, "a", 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	exists, err := repo.ExistsByNameAndModel(ctx, "FUSE", "f-5a")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestInventoryRepository_DistinctValues(t *testing.T) {
	repo := NewGormInventoryItemRepository(newTestDB(t))
	ctx := context.Background()
	seedItems(t, repo,
		newTestItem(t, "A", 0, func(d *inventory.Details) { d.Supplier = "Zeta Traders" }),
		newTestItem(t, "B", 1, func(d *inventory.Details) { d.Supplier = "Alpha Supplies" }),
		newTestItem(t, "C", 2, func(d *inventory.Details) { d.Supplier = "Zeta Traders" }),
	)

	suppliers, err := repo.DistinctValues(ctx, inventory.DistinctSupplier)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha Supplies", "Zeta Traders"}, suppliers)

	modelNames, err := repo.DistinctValues(ctx, inventory.DistinctModel)
	require.NoError(t, err)
	assert.Equal(t, []string{"BN44-00932"}, modelNames)

	_, err = repo.DistinctValues(ctx, inventory.DistinctField("price"))
	assert.Error(t, err)
}
