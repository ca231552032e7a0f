package inventory

import (
	"context"
	"strings"

	"github.com/repairdesk/backend/internal/domain/inventory"
	"github.com/repairdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// GetLowStockItems returns items at or below their threshold
func (s *InventoryService) GetLowStockItems(ctx context.Context) ([]ItemResponse, error) {
	return s.many(s.repo.FindLowStock(ctx))
}

// GetOutOfStockItems returns items with zero quantity
func (s *InventoryService) GetOutOfStockItems(ctx context.Context) ([]ItemResponse, error) {
	return s.many(s.repo.FindOutOfStock(ctx))
}

// GetInventoryStats aggregates the whole stock
func (s *InventoryService) GetInventoryStats(ctx context.Context) (*InventoryStatsResponse, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	st := inventory.ComputeStats(items)
	resp := &InventoryStatsResponse{
		TotalItems:      st.TotalItems,
		TotalValue:      st.TotalValue,
		LowStockItems:   st.LowStockItems,
		OutOfStockItems: st.OutOfStockItems,
		Categories:      make(map[string]int, len(st.ByCategory)),
		Brands:          st.ByBrand,
	}
	for k, v := range st.ByCategory {
		resp.Categories[string(k)] = v
	}
	return resp, nil
}

// GetLowStockCount reports how many items are at or below threshold
func (s *InventoryService) GetLowStockCount(ctx context.Context) (int64, error) {
	items, err := s.repo.FindLowStock(ctx)
	if err != nil {
		return 0, err
	}
	return int64(len(items)), nil
}

// SearchItems matches name, brand, model and description; limit defaults to 20
func (s *InventoryService) SearchItems(ctx context.Context, term string, limit int) ([]ItemResponse, error) {
	if limit < 1 {
		limit = defaultSearchLimit
	}
	return s.many(s.repo.Search(ctx, strings.TrimSpace(term), limit))
}

// GetItemsByCategory returns items in one category
func (s *InventoryService) GetItemsByCategory(ctx context.Context, category string) ([]ItemResponse, error) {
	c := inventory.Category(category)
	if !c.IsValid() {
		return nil, shared.NewValidationError("INVALID_CATEGORY", "Category is not valid")
	}
	return s.many(s.repo.FindByCategory(ctx, c))
}

// GetItemsByBrand matches the brand case-insensitively as a substring
func (s *InventoryService) GetItemsByBrand(ctx context.Context, brand string) ([]ItemResponse, error) {
	return s.many(s.repo.FindByBrand(ctx, strings.TrimSpace(brand)))
}

// GetItemsByPriceRange returns items priced within [min, max]
func (s *InventoryService) GetItemsByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]ItemResponse, error) {
	if min.IsNegative() || max.LessThan(min) {
		return nil, shared.NewValidationError("INVALID_PRICE_RANGE", "Price range is not valid")
	}
	return s.many(s.repo.FindByPriceRange(ctx, min, max))
}

// GetDistinctValues lists the distinct values of a whitelisted field
func (s *InventoryService) GetDistinctValues(ctx context.Context, field string) ([]string, error) {
	f := inventory.DistinctField(field)
	if !f.IsValid() {
		return nil, shared.NewValidationError("INVALID_FIELD", "Field must be one of name, category, brand, model, supplier")
	}
	return s.repo.DistinctValues(ctx, f)
}

// ItemExists reports whether an item with the name and model exists,
// compared case-insensitively
func (s *InventoryService) ItemExists(ctx context.Context, name, model string) (bool, error) {
	return s.repo.ExistsByNameAndModel(ctx, strings.TrimSpace(name), strings.TrimSpace(model))
}

// GetTotalInventoryValue returns Σ price × quantity over all items
func (s *InventoryService) GetTotalInventoryValue(ctx context.Context) (decimal.Decimal, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return inventory.TotalValue(items), nil
}

func (s *InventoryService) many(items []inventory.Item, err error) ([]ItemResponse, error) {
	if err != nil {
		return nil, err
	}
	return ToItemResponses(items), nil
}
