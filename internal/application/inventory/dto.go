package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/repairdesk/backend/internal/domain/inventory"
	"github.com/shopspring/decimal"
)

// ItemResponse represents a stock item in API responses
type ItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Brand       string          `json:"brand"`
	ModelName   string          `json:"model_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Threshold   int             `json:"threshold"`
	Supplier    string          `json:"supplier"`
	Description string          `json:"description,omitempty"`
	IsLowStock  bool            `json:"is_low_stock"`
	StockValue  decimal.Decimal `json:"stock_value"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ItemListResponse is one page of items
type ItemListResponse struct {
	Items       []ItemResponse `json:"items"`
	TotalCount  int64          `json:"total_count"`
	CurrentPage int            `json:"current_page"`
	TotalPages  int            `json:"total_pages"`
}

// CreateItemRequest represents a request to add a stock item
type CreateItemRequest struct {
	Name        string          `json:"name" binding:"required,max=200"`
	Category    string          `json:"category" binding:"required,oneof=panels boards remotes tools"`
	Brand       string          `json:"brand" binding:"required,max=100"`
	ModelName   string          `json:"model_name" binding:"required,max=100"`
	Quantity    int             `json:"quantity" binding:"gte=1"`
	Price       decimal.Decimal `json:"price"`
	Threshold   int             `json:"threshold" binding:"gte=1"`
	Supplier    string          `json:"supplier" binding:"required,max=200"`
	Description string          `json:"description" binding:"omitempty,min=5,max=1000"`
}

// UpdateItemRequest represents a partial item update
type UpdateItemRequest struct {
	Name        *string          `json:"name" binding:"omitempty,max=200"`
	Category    *string          `json:"category" binding:"omitempty,oneof=panels boards remotes tools"`
	Brand       *string          `json:"brand" binding:"omitempty,max=100"`
	ModelName   *string          `json:"model_name" binding:"omitempty,max=100"`
	Quantity    *int             `json:"quantity" binding:"omitempty,gte=0"`
	Price       *decimal.Decimal `json:"price"`
	Threshold   *int             `json:"threshold" binding:"omitempty,gte=1"`
	Supplier    *string          `json:"supplier" binding:"omitempty,max=200"`
	Description *string          `json:"description" binding:"omitempty,max=1000"`
}

// BulkUpdateEntry pairs an item id with its patch
type BulkUpdateEntry struct {
	ID uuid.UUID `json:"id" binding:"required"`
	UpdateItemRequest
}

// BulkUpdateRequest updates several items at once
type BulkUpdateRequest struct {
	Items []BulkUpdateEntry `json:"items" binding:"required,min=1,dive"`
}

// BulkDeleteRequest deletes several items at once
type BulkDeleteRequest struct {
	IDs []uuid.UUID `json:"ids" binding:"required,min=1"`
}

// QuantityRequest carries a quantity or an adjustment amount
type QuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required,gte=0"`
}

// ItemListFilter defines filtering options for item list queries
type ItemListFilter struct {
	Category  string `form:"category"`
	Brand     string `form:"brand"`
	Search    string `form:"search"`
	MinPrice  string `form:"min_price"`
	MaxPrice  string `form:"max_price"`
	LowStock  bool   `form:"low_stock"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
}

// InventoryStatsResponse aggregates the stock position
type InventoryStatsResponse struct {
	TotalItems      int             `json:"total_items"`
	TotalValue      decimal.Decimal `json:"total_value"`
	LowStockItems   int             `json:"low_stock_items"`
	OutOfStockItems int             `json:"out_of_stock_items"`
	Categories      map[string]int  `json:"categories"`
	Brands          map[string]int  `json:"brands"`
}

// ToItemResponse converts a domain item to a response
func ToItemResponse(i *inventory.Item) ItemResponse {
	return ItemResponse{
		ID:          i.ID,
		Name:        i.Name,
		Category:    string(i.Category),
		Brand:       i.Brand,
		ModelName:   i.ModelName,
		Quantity:    i.Quantity,
		Price:       i.Price,
		Threshold:   i.Threshold,
		Supplier:    i.Supplier,
		Description: i.Description,
		IsLowStock:  i.IsLowStock(),
		StockValue:  i.StockValue(),
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

// ToItemResponses converts a slice of domain items
func ToItemResponses(items []inventory.Item) []ItemResponse {
	out := make([]ItemResponse, len(items))
	for i := range items {
		out[i] = ToItemResponse(&items[i])
	}
	return out
}

func (r UpdateItemRequest) toPatch() inventory.Patch {
	p := inventory.Patch{
		Name:        r.Name,
		Brand:       r.Brand,
		ModelName:   r.ModelName,
		Quantity:    r.Quantity,
		Price:       r.Price,
		Threshold:   r.Threshold,
		Supplier:    r.Supplier,
		Description: r.Description,
	}
	if r.Category != nil {
		c := inventory.Category(*r.Category)
		p.Category = &c
	}
	return p
}
