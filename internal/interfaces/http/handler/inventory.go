package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	inventoryapp "github.com/repairdesk/backend/internal/application/inventory"
	"github.com/repairdesk/backend/internal/interfaces/http/dto"
	"github.com/shopspring/decimal"
)

// InventoryHandler handles stock item endpoints
type InventoryHandler struct {
	BaseHandler
	inventoryService *inventoryapp.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(inventoryService *inventoryapp.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// TotalValueResponse carries the stock valuation
type TotalValueResponse struct {
	TotalValue decimal.Decimal `json:"total_value"`
}

// Create handles POST /inventory
func (h *InventoryHandler) Create(c *gin.Context) {
	var req inventoryapp.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	item, err := h.inventoryService.CreateItem(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// List handles GET /inventory
func (h *InventoryHandler) List(c *gin.Context) {
	var filter inventoryapp.ItemListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindingError(c, err)
		return
	}

	items, err := h.inventoryService.GetItems(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// GetByID handles GET /inventory/:id
func (h *InventoryHandler) GetByID(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	item, err := h.inventoryService.GetItemByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Update handles PUT /inventory/:id
func (h *InventoryHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req inventoryapp.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	item, err := h.inventoryService.UpdateItem(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// Delete handles DELETE /inventory/:id
func (h *InventoryHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	deleted, err := h.inventoryService.DeleteItem(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.DeletedResponse{Deleted: deleted})
}

// SetQuantity handles PATCH /inventory/:id/quantity
func (h *InventoryHandler) SetQuantity(c *gin.Context) {
	h.adjust(c, h.inventoryService.UpdateQuantity)
}

// IncreaseQuantity handles PATCH /inventory/:id/increase
func (h *InventoryHandler) IncreaseQuantity(c *gin.Context) {
	h.adjust(c, h.inventoryService.IncreaseQuantity)
}

// DecreaseQuantity handles PATCH /inventory/:id/decrease
func (h *InventoryHandler) DecreaseQuantity(c *gin.Context) {
	h.adjust(c, h.inventoryService.DecreaseQuantity)
}

func (h *InventoryHandler) adjust(c *gin.Context, op func(ctx context.Context, id uuid.UUID, n int) (*inventoryapp.ItemResponse, error)) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req inventoryapp.QuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	item, err := op(c.Request.Context(), id, *req.Quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// BulkUpdate handles PUT /inventory/bulk
func (h *InventoryHandler) BulkUpdate(c *gin.Context) {
	var req inventoryapp.BulkUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	h.Success(c, dto.UpdatedResponse{Updated: h.inventoryService.BulkUpdateItems(c.Request.Context(), req)})
}

// BulkDelete handles POST /inventory/bulk-delete
func (h *InventoryHandler) BulkDelete(c *gin.Context) {
	var req inventoryapp.BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	h.Success(c, dto.DeletedResponse{Deleted: h.inventoryService.BulkDeleteItems(c.Request.Context(), req.IDs)})
}

// LowStock handles GET /inventory/low-stock
func (h *InventoryHandler) LowStock(c *gin.Context) {
	items, err := h.inventoryService.GetLowStockItems(c.Request.Context())
	h.respond(c, items, err)
}

// LowStockCount handles GET /inventory/low-stock/count
func (h *InventoryHandler) LowStockCount(c *gin.Context) {
	n, err := h.inventoryService.GetLowStockCount(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.CountResponse{Count: n})
}

// OutOfStock handles GET /inventory/out-of-stock
func (h *InventoryHandler) OutOfStock(c *gin.Context) {
	items, err := h.inventoryService.GetOutOfStockItems(c.Request.Context())
	h.respond(c, items, err)
}

// Stats handles GET /inventory/stats
func (h *InventoryHandler) Stats(c *gin.Context) {
	stats, err := h.inventoryService.GetInventoryStats(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, stats)
}

// Search handles GET /inventory/search?q=&limit=
func (h *InventoryHandler) Search(c *gin.Context) {
	limit, ok := h.queryInt(c, "limit", 0)
	if !ok {
		return
	}
	items, err := h.inventoryService.SearchItems(c.Request.Context(), c.Query("q"), limit)
	h.respond(c, items, err)
}

// ByCategory handles GET /inventory/category/:category
func (h *InventoryHandler) ByCategory(c *gin.Context) {
	items, err := h.inventoryService.GetItemsByCategory(c.Request.Context(), c.Param("category"))
	h.respond(c, items, err)
}

// ByBrand handles GET /inventory/brand/:brand
func (h *InventoryHandler) ByBrand(c *gin.Context) {
	items, err := h.inventoryService.GetItemsByBrand(c.Request.Context(), c.Param("brand"))
	h.respond(c, items, err)
}

// ByPriceRange handles GET /inventory/price-range?min=&max=
func (h *InventoryHandler) ByPriceRange(c *gin.Context) {
	lo, err := decimal.NewFromString(c.Query("min"))
	if err != nil {
		h.BadRequest(c, dto.ErrCodeInvalidQuery, "min must be a number")
		return
	}
	hi, err := decimal.NewFromString(c.Query("max"))
	if err != nil {
		h.BadRequest(c, dto.ErrCodeInvalidQuery, "max must be a number")
		return
	}
	items, err := h.inventoryService.GetItemsByPriceRange(c.Request.Context(), lo, hi)
	h.respond(c, items, err)
}

// Distinct handles GET /inventory/distinct/:field
func (h *InventoryHandler) Distinct(c *gin.Context) {
	values, err := h.inventoryService.GetDistinctValues(c.Request.Context(), c.Param("field"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if values == nil {
		values = []string{}
	}
	h.Success(c, values)
}

// Exists handles GET /inventory/exists?name=&model=
func (h *InventoryHandler) Exists(c *gin.Context) {
	exists, err := h.inventoryService.ItemExists(c.Request.Context(), c.Query("name"), c.Query("model"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, dto.ExistsResponse{Exists: exists})
}

// TotalValue handles GET /inventory/total-value
func (h *InventoryHandler) TotalValue(c *gin.Context) {
	total, err := h.inventoryService.GetTotalInventoryValue(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, TotalValueResponse{TotalValue: total})
}

func (h *InventoryHandler) respond(c *gin.Context, items []inventoryapp.ItemResponse, err error) {
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if items == nil {
		items = []inventoryapp.ItemResponse{}
	}
	h.Success(c, items)
}
