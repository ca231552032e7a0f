package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/repairdesk/backend/internal/domain/inventory"
	"github.com/repairdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockItemRepository is a mock implementation of inventory.Repository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) Create(ctx context.Context, item *inventory.Item) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockItemRepository) Save(ctx context.Context, item *inventory.Item) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockItemRepository) SaveAll(ctx context.Context, items []inventory.Item) error {
	return m.Called(ctx, items).Error(0)
}

func (m *MockItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Item), args.Error(1)
}

func (m *MockItemRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]inventory.Item, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]inventory.Item), args.Error(1)
}

func (m *MockItemRepository) FindAll(ctx context.Context, filter inventory.Filter) ([]inventory.Item, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]inventory.Item), args.Get(1).(int64), args.Error(2)
}

func (m *MockItemRepository) List(ctx context.Context) ([]inventory.Item, error) {
	args := m.Called(ctx)
	return args.Get(0).([]inventory.Item), args.Error(1)
}

func (m *MockItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockItemRepository) DeleteMany(ctx context.Context, ids []uuid.UUID) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockItemRepository) SetQuantity(ctx context.Context, id uuid.UUID, quantity int) (*inventory.Item, error) {
	return m.itemResult(m.Called(ctx, id, quantity))
}

func (m *MockItemRepository) IncreaseQuantity(ctx context.Context, id uuid.UUID, n int) (*inventory.Item, error) {
	return m.itemResult(m.Called(ctx, id, n))
}

func (m *MockItemRepository) DecreaseQuantity(ctx context.Context, id uuid.UUID, n int) (*inventory.Item, error) {
	return m.itemResult(m.Called(ctx, id, n))
}

func (m *MockItemRepository) itemResult(args mock.Arguments) (*inventory.Item, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Item), args.Error(1)
}

func (m *MockItemRepository) FindLowStock(ctx context.Context) ([]inventory.Item, error) {
	args := m.Called(ctx)
	return args.Get(0).([]inventory.Item), args.Error(1)
}

func (m *MockItemRepository) FindOutOfStock(ctx context.Context) ([]inventory.Item, error) {
	args := m.Called(ctx)
	return args.Get(0).([]inventory.Item), args.Error(1)
}

func (m *MockItemRepository) Search(ctx context.Context, term string, limit int) ([]inventory.Item, error) {
	args := m.Called(ctx, term, limit)
	return args.Get(0).([]inventory.Item), args.Error(1)
}

func (m *MockItemRepository) FindByCategory(ctx context.Context, category inventory.Category) ([]inventory.Item, error) {
	args := m.Called(ctx, category)
	return args.Get(0).([]inventory.Item), args.Error(1)
}

func (m *MockItemRepository) FindByBrand(ctx context.Context, brand string) ([]inventory.Item, error) {
	args := m.Called(ctx, brand)
	return args.Get(0).([]inventory.Item), args.Error(1)
}

func (m *MockItemRepository) FindByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]inventory.Item, error) {
	args := m.Called(ctx, min, max)
	return args.Get(0).([]inventory.Item), args.Error(1)
}

func (m *MockItemRepository) DistinctValues(ctx context.Context, field inventory.DistinctField) ([]string, error) {
	args := m.Called(ctx, field)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockItemRepository) ExistsByNameAndModel(ctx context.Context, name, model string) (bool, error) {
	args := m.Called(ctx, name, model)
	return args.Bool(0), args.Error(1)
}

func panel(t *testing.T, qty int) *inventory.Item {
	t.Helper()
	item, err := inventory.NewItem(inventory.Details{
		Name:      "LED Panel",
		Category:  inventory.CategoryPanels,
		Brand:     "X",
		ModelName: "Y",
		Quantity:  max(qty, 1),
		Price:     decimal.NewFromInt(500),
		Threshold: 5,
		Supplier:  "S",
	})
	require.NoError(t, err)
	item.Quantity = qty
	return item
}

func TestInventoryService_CreateItem(t *testing.T) {
	ctx := context.Background()

	t.Run("creates item", func(t *testing.T) {
		repo := new(MockItemRepository)
		svc := NewInventoryService(repo, nil)
		repo.On("Create", mock.Anything, mock.AnythingOfType("*inventory.Item")).Return(nil)

		resp, err := svc.CreateItem(ctx, CreateItemRequest{
			Name: "LED Panel", Category: "panels", Brand: "X", ModelName: "Y",
			Quantity: 10, Price: decimal.NewFromInt(500), Threshold: 5, Supplier: "S", Description: "abcde",
		})

		require.NoError(t, err)
		assert.False(t, resp.IsLowStock)
		assert.True(t, decimal.NewFromInt(5000).Equal(resp.StockValue))
	})

	t.Run("zero price is rejected", func(t *testing.T) {
		repo := new(MockItemRepository)
		svc := NewInventoryService(repo, nil)

		_, err := svc.CreateItem(ctx, CreateItemRequest{
			Name: "LED Panel", Category: "panels", Brand: "X", ModelName: "Y",
			Quantity: 10, Threshold: 5, Supplier: "S",
		})

		assert.Equal(t, shared.KindValidation, shared.KindOf(err))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestInventoryService_GetItems(t *testing.T) {
	ctx := context.Background()
	repo := new(MockItemRepository)
	svc := NewInventoryService(repo, nil)
	low, healthy := panel(t, 2), panel(t, 40)

	repo.On("FindAll", mock.Anything, mock.MatchedBy(func(f inventory.Filter) bool {
		return f.Page == 1 && f.PageSize == 50 && f.LowStock && f.MinPrice != nil && f.MinPrice.Equal(decimal.NewFromInt(100))
	})).Return([]inventory.Item{*low, *healthy}, int64(2), nil)

	resp, err := svc.GetItems(ctx, ItemListFilter{LowStock: true, MinPrice: "100"})

	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 2, resp.Items[0].Quantity)
	assert.Equal(t, int64(2), resp.TotalCount)
	assert.Equal(t, 1, resp.CurrentPage)
	assert.Equal(t, 1, resp.TotalPages)
}

func TestInventoryService_GetItems_BadPrice(t *testing.T) {
	svc := NewInventoryService(new(MockItemRepository), nil)

	_, err := svc.GetItems(context.Background(), ItemListFilter{MaxPrice: "cheap"})

	assert.Equal(t, shared.KindValidation, shared.KindOf(err))
}

func TestInventoryService_QuantityOperations(t *testing.T) {
	ctx := context.Background()

	t.Run("decrease returns clamped item", func(t *testing.T) {
		repo := new(MockItemRepository)
		svc := NewInventoryService(repo, nil)
		id := uuid.New()
		repo.On("DecreaseQuantity", mock.Anything, id, 6).Return(panel(t, 4), nil)

		resp, err := svc.DecreaseQuantity(ctx, id, 6)

		require.NoError(t, err)
		assert.Equal(t, 4, resp.Quantity)
		assert.True(t, resp.IsLowStock)
	})

	t.Run("missing item returns nil", func(t *testing.T) {
		repo := new(MockItemRepository)
		svc := NewInventoryService(repo, nil)
		id := uuid.New()
		repo.On("IncreaseQuantity", mock.Anything, id, 3).Return(nil, shared.ErrNotFound)

		resp, err := svc.IncreaseQuantity(ctx, id, 3)

		require.NoError(t, err)
		assert.Nil(t, resp)
	})

	t.Run("negative amounts are rejected", func(t *testing.T) {
		svc := NewInventoryService(new(MockItemRepository), nil)

		_, err := svc.DecreaseQuantity(ctx, uuid.New(), -1)
		assert.Error(t, err)
		_, err = svc.UpdateQuantity(ctx, uuid.New(), -5)
		assert.Error(t, err)
	})
}

func TestInventoryService_UpdateItem(t *testing.T) {
	ctx := context.Background()
	repo := new(MockItemRepository)
	svc := NewInventoryService(repo, nil)
	item := panel(t, 10)
	repo.On("FindByID", mock.Anything, item.ID).Return(item, nil)
	repo.On("Save", mock.Anything, item).Return(nil)
	price := decimal.NewFromInt(650)

	resp, err := svc.UpdateItem(ctx, item.ID, UpdateItemRequest{Price: &price})

	require.NoError(t, err)
	assert.True(t, price.Equal(resp.Price))

	missing := uuid.New()
	repo.On("FindByID", mock.Anything, missing).Return(nil, shared.ErrNotFound)
	resp, err = svc.UpdateItem(ctx, missing, UpdateItemRequest{Price: &price})
	require.NoError(t, err)
	assert.Nil(t, resp)
}

func TestInventoryService_BulkUpdateItems(t *testing.T) {
	ctx := context.Background()
	qty := 7

	t.Run("saves all patched items", func(t *testing.T) {
		repo := new(MockItemRepository)
		svc := NewInventoryService(repo, nil)
		a, b := panel(t, 1), panel(t, 2)
		repo.On("FindByIDs", mock.Anything, []uuid.UUID{a.ID, b.ID}).Return([]inventory.Item{*a, *b}, nil)
		repo.On("SaveAll", mock.Anything, mock.MatchedBy(func(items []inventory.Item) bool {
			return len(items) == 2 && items[0].Quantity == 7 && items[1].Quantity == 7
		})).Return(nil)

		ok := svc.BulkUpdateItems(ctx, BulkUpdateRequest{Items: []BulkUpdateEntry{
			{ID: a.ID, UpdateItemRequest: UpdateItemRequest{Quantity: &qty}},
			{ID: b.ID, UpdateItemRequest: UpdateItemRequest{Quantity: &qty}},
		}})

		assert.True(t, ok)
	})

	t.Run("missing item fails the batch", func(t *testing.T) {
		repo := new(MockItemRepository)
		svc := NewInventoryService(repo, nil)
		missing := uuid.New()
		repo.On("FindByIDs", mock.Anything, []uuid.UUID{missing}).Return([]inventory.Item{}, nil)

		ok := svc.BulkUpdateItems(ctx, BulkUpdateRequest{Items: []BulkUpdateEntry{
			{ID: missing, UpdateItemRequest: UpdateItemRequest{Quantity: &qty}},
		}})

		assert.False(t, ok)
		repo.AssertNotCalled(t, "SaveAll", mock.Anything, mock.Anything)
	})
}

func TestInventoryService_BulkDeleteItems(t *testing.T) {
	ctx := context.Background()
	repo := new(MockItemRepository)
	svc := NewInventoryService(repo, nil)
	ids := []uuid.UUID{uuid.New()}
	failing := []uuid.UUID{uuid.New()}
	repo.On("DeleteMany", mock.Anything, ids).Return(int64(1), nil)
	repo.On("DeleteMany", mock.Anything, failing).Return(int64(0), errors.New("db down"))

	assert.True(t, svc.BulkDeleteItems(ctx, ids))
	assert.False(t, svc.BulkDeleteItems(ctx, failing))
}

func TestInventoryService_GetInventoryStats(t *testing.T) {
	ctx := context.Background()
	repo := new(MockItemRepository)
	svc := NewInventoryService(repo, nil)
	items := []inventory.Item{
		{Category: inventory.CategoryPanels, Brand: "A", Quantity: 5, Price: decimal.NewFromInt(100), Threshold: 3},
		{Category: inventory.CategoryBoards, Brand: "B", Quantity: 0, Price: decimal.NewFromInt(50), Threshold: 1},
	}
	repo.On("List", mock.Anything).Return(items, nil)

	stats, err := svc.GetInventoryStats(ctx)

	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(500).Equal(stats.TotalValue))
	assert.Equal(t, 1, stats.LowStockItems)
	assert.Equal(t, 1, stats.OutOfStockItems)
	assert.Equal(t, 1, stats.Categories["boards"])

	total, err := svc.GetTotalInventoryValue(ctx)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(500).Equal(total))
}

func TestInventoryService_GetDistinctValues(t *testing.T) {
	ctx := context.Background()
	repo := new(MockItemRepository)
	svc := NewInventoryService(repo, nil)
	repo.On("DistinctValues", mock.Anything, inventory.DistinctSupplier).Return([]string{"Acme", "Volt"}, nil)

	values, err := svc.GetDistinctValues(ctx, "supplier")
	require.NoError(t, err)
	assert.Equal(t, []string{"Acme", "Volt"}, values)

	_, err = svc.GetDistinctValues(ctx, "price")
	assert.Equal(t, shared.KindValidation, shared.KindOf(err))
}

func TestInventoryService_SearchItems_DefaultLimit(t *testing.T) {
	ctx := context.Background()
	repo := new(MockItemRepository)
	svc := NewInventoryService(repo, nil)
	repo.On("Search", mock.Anything, "panel", 20).Return([]inventory.Item{}, nil)

	_, err := svc.SearchItems(ctx, " panel ", 0)

	require.NoError(t, err)
	repo.AssertExpectations(t)
}
