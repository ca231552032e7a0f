package inventory

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/repairdesk/backend/internal/domain/inventory"
	"github.com/repairdesk/backend/internal/domain/shared"
	"github.com/repairdesk/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	defaultPage        = 1
	defaultLimit       = 50
	defaultSearchLimit = 20
)

// InventoryService provides stock item operations
type InventoryService struct {
	repo   inventory.Repository
	logger *zap.Logger
}

// NewInventoryService creates a new InventoryService
func NewInventoryService(repo inventory.Repository, logger *zap.Logger) *InventoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InventoryService{repo: repo, logger: logger}
}

// CreateItem validates and stores a new item
func (s *InventoryService) CreateItem(ctx context.Context, req CreateItemRequest) (*ItemResponse, error) {
	item, err := inventory.NewItem(inventory.Details{
		Name:        req.Name,
		Category:    inventory.Category(req.Category),
		Brand:       req.Brand,
		ModelName:   req.ModelName,
		Quantity:    req.Quantity,
		Price:       req.Price,
		Threshold:   req.Threshold,
		Supplier:    req.Supplier,
		Description: req.Description,
	})
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	s.logger.Info("Inventory item created",
		zap.String("id", item.ID.String()),
		zap.String("name", item.Name),
		zap.Int("quantity", item.Quantity))
	resp := ToItemResponse(item)
	return &resp, nil
}

// GetItems returns one page of items. The low-stock flag filters the
// fetched page only, so a page may hold fewer than limit items.
func (s *InventoryService) GetItems(ctx context.Context, req ItemListFilter) (*ItemListResponse, error) {
	filter := inventory.Filter{
		Filter: shared.Filter{
			Page:     req.Page,
			PageSize: req.Limit,
			OrderBy:  req.SortBy,
			OrderDir: req.SortOrder,
			Search:   strings.TrimSpace(req.Search),
		},
		Brand:    strings.TrimSpace(req.Brand),
		LowStock: req.LowStock,
	}
	if filter.Page < 1 {
		filter.Page = defaultPage
	}
	if filter.PageSize < 1 {
		filter.PageSize = defaultLimit
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "createdAt"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}
	if req.Category != "" {
		c := inventory.Category(req.Category)
		if !c.IsValid() {
			return nil, shared.NewValidationError("INVALID_CATEGORY", "Category is not valid")
		}
		filter.Category = &c
	}
	var err error
	if filter.MinPrice, err = parseOptionalPrice("min_price", req.MinPrice); err != nil {
		return nil, err
	}
	if filter.MaxPrice, err = parseOptionalPrice("max_price", req.MaxPrice); err != nil {
		return nil, err
	}

	items, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	if filter.LowStock {
		items = inventory.FilterLowStock(items)
	}
	return &ItemListResponse{
		Items:       ToItemResponses(items),
		TotalCount:  total,
		CurrentPage: filter.Page,
		TotalPages:  shared.TotalPages(total, filter.PageSize),
	}, nil
}

// GetItemByID returns the item, or nil when it does not exist
func (s *InventoryService) GetItemByID(ctx context.Context, id uuid.UUID) (*ItemResponse, error) {
	return s.single(s.repo.FindByID(ctx, id))
}

// UpdateItem applies a partial update, or returns nil when missing
func (s *InventoryService) UpdateItem(ctx context.Context, id uuid.UUID, req UpdateItemRequest) (*ItemResponse, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return s.single(nil, err)
	}
	if err := item.Apply(req.toPatch()); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, item); err != nil {
		return s.single(nil, err)
	}
	s.logger.Info("Inventory item updated", zap.String("id", id.String()))
	return s.single(item, nil)
}

// DeleteItem hard-deletes the item and reports whether it existed
func (s *InventoryService) DeleteItem(ctx context.Context, id uuid.UUID) (bool, error) {
	if err := s.repo.Delete(ctx, id); err != nil {
		if shared.IsNotFound(err) {
			return false, nil
		}
		return false, err
	}
	s.logger.Info("Inventory item deleted", zap.String("id", id.String()))
	return true, nil
}

// UpdateQuantity sets the quantity to q (q >= 0)
func (s *InventoryService) UpdateQuantity(ctx context.Context, id uuid.UUID, q int) (*ItemResponse, error) {
	if q < 0 {
		return nil, shared.NewValidationError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	return s.single(s.repo.SetQuantity(ctx, id, q))
}

// IncreaseQuantity atomically adds n units
func (s *InventoryService) IncreaseQuantity(ctx context.Context, id uuid.UUID, n int) (*ItemResponse, error) {
	if n < 0 {
		return nil, shared.NewValidationError("INVALID_AMOUNT", "Amount cannot be negative")
	}
	return s.single(s.repo.IncreaseQuantity(ctx, id, n))
}

// DecreaseQuantity atomically removes n units, never going below zero
func (s *InventoryService) DecreaseQuantity(ctx context.Context, id uuid.UUID, n int) (_ *ItemResponse, err error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "inventory", "decrease_quantity",
		telemetry.SpanItemID.String(id.String()),
		telemetry.SpanQuantity.Int(n))
	defer func() { telemetry.EndServiceSpan(span, err) }()

	if n < 0 {
		return nil, shared.NewValidationError("INVALID_AMOUNT", "Amount cannot be negative")
	}
	resp, err := s.single(s.repo.DecreaseQuantity(ctx, id, n))
	if resp != nil && resp.IsLowStock {
		s.logger.Warn("Inventory item low on stock",
			zap.String("id", id.String()),
			zap.String("name", resp.Name),
			zap.Int("quantity", resp.Quantity))
	}
	return resp, err
}

// BulkUpdateItems applies every patch in one transaction. Any failure
// is logged and reported as false.
func (s *InventoryService) BulkUpdateItems(ctx context.Context, req BulkUpdateRequest) bool {
	ids := make([]uuid.UUID, len(req.Items))
	for i, e := range req.Items {
		ids[i] = e.ID
	}
	items, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("Bulk update failed to load items", zap.Error(err))
		return false
	}
	byID := make(map[uuid.UUID]*inventory.Item, len(items))
	for i := range items {
		byID[items[i].ID] = &items[i]
	}
	for _, e := range req.Items {
		item, ok := byID[e.ID]
		if !ok {
			s.logger.Warn("Bulk update references a missing item", zap.String("id", e.ID.String()))
			return false
		}
		if err := item.Apply(e.toPatch()); err != nil {
			s.logger.Warn("Bulk update rejected", zap.String("id", e.ID.String()), zap.Error(err))
			return false
		}
	}
	if err := s.repo.SaveAll(ctx, items); err != nil {
		s.logger.Error("Bulk update failed", zap.Error(err))
		return false
	}
	s.logger.Info("Inventory items bulk updated", zap.Int("count", len(items)))
	return true
}

// BulkDeleteItems deletes the items and reports whether any were removed.
// Failures are logged and reported as false.
func (s *InventoryService) BulkDeleteItems(ctx context.Context, ids []uuid.UUID) bool {
	n, err := s.repo.DeleteMany(ctx, ids)
	if err != nil {
		s.logger.Error("Bulk delete failed", zap.Error(err))
		return false
	}
	s.logger.Info("Inventory items bulk deleted", zap.Int64("count", n))
	return n > 0
}

func (s *InventoryService) single(item *inventory.Item, err error) (*ItemResponse, error) {
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	resp := ToItemResponse(item)
	return &resp, nil
}

func parseOptionalPrice(field, raw string) (*decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := decimal.NewFromString(raw)
	if err != nil || v.IsNegative() {
		return nil, shared.NewValidationError("INVALID_PRICE", field+" must be a non-negative number")
	}
	return &v, nil
}
