package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/repairdesk/backend/internal/domain/inventory"
	"github.com/repairdesk/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var distinctColumns = map[inventory.DistinctField]string{
	inventory.DistinctName:     "name",
	inventory.DistinctCategory: "category",
	inventory.DistinctBrand:    "brand",
	inventory.DistinctModel:    "model_name",
	inventory.DistinctSupplier: "supplier",
}

// GormInventoryItemRepository implements inventory.Repository using GORM
type GormInventoryItemRepository struct {
	db *gorm.DB
}

// NewGormInventoryItemRepository creates a new GormInventoryItemRepository
func NewGormInventoryItemRepository(db *gorm.DB) *GormInventoryItemRepository {
	return &GormInventoryItemRepository{db: db}
}

// Create inserts an item
func (r *GormInventoryItemRepository) Create(ctx context.Context, item *inventory.Item) error {
	return translateError("create item", r.db.WithContext(ctx).Create(models.InventoryItemModelFromDomain(item)).Error)
}

// Save updates every column of an existing item
func (r *GormInventoryItemRepository) Save(ctx context.Context, item *inventory.Item) error {
	return updateRow("save item", r.db.WithContext(ctx), models.InventoryItemModelFromDomain(item))
}

// SaveAll saves the items in one transaction
func (r *GormInventoryItemRepository) SaveAll(ctx context.Context, items []inventory.Item) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range items {
			if err := updateRow("save items", tx, models.InventoryItemModelFromDomain(&items[i])); err != nil {
				return err
			}
		}
		return nil
	})
	return translateError("save items", err)
}

// FindByID finds an item by its ID
func (r *GormInventoryItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Item, error) {
	var model models.InventoryItemModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		return nil, translateError("find item", err)
	}
	return model.ToDomain(), nil
}

// FindByIDs finds the items with the given IDs; missing ids are skipped
func (r *GormInventoryItemRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]inventory.Item, error) {
	if len(ids) == 0 {
		return []inventory.Item{}, nil
	}
	return r.find(r.db.WithContext(ctx).Where("id IN ?", ids))
}

// FindAll returns one page of items matching the filter and the total
// match count. LowStock is left to the caller.
func (r *GormInventoryItemRepository) FindAll(ctx context.Context, filter inventory.Filter) ([]inventory.Item, int64, error) {
	scoped := func() *gorm.DB {
		return r.applyFilter(r.db.WithContext(ctx).Model(&models.InventoryItemModel{}), filter)
	}

	var total int64
	if err := scoped().Count(&total).Error; err != nil {
		return nil, 0, translateError("count items", err)
	}

	query := scoped().Order(orderClause(filter.OrderBy, filter.OrderDir, InventoryItemSortFields, "created_at"))
	if filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	items, err := r.find(query)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// List returns every item, newest first
func (r *GormInventoryItemRepository) List(ctx context.Context) ([]inventory.Item, error) {
	return r.find(r.db.WithContext(ctx).Order("created_at DESC"))
}

// Delete hard-deletes an item
func (r *GormInventoryItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return affected("delete item", r.db.WithContext(ctx).Delete(&models.InventoryItemModel{}, "id = ?", id))
}

// DeleteMany deletes the items and returns how many rows were removed
func (r *GormInventoryItemRepository) DeleteMany(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&models.InventoryItemModel{})
	if result.Error != nil {
		return 0, translateError("delete items", result.Error)
	}
	return result.RowsAffected, nil
}

// SetQuantity overwrites the quantity and returns the reloaded item
func (r *GormInventoryItemRepository) SetQuantity(ctx context.Context, id uuid.UUID, quantity int) (*inventory.Item, error) {
	return r.updateQuantity(ctx, id, quantity)
}

// IncreaseQuantity adds n in a single statement and returns the reloaded item
func (r *GormInventoryItemRepository) IncreaseQuantity(ctx context.Context, id uuid.UUID, n int) (*inventory.Item, error) {
	return r.updateQuantity(ctx, id, gorm.Expr("quantity + ?", n))
}

// DecreaseQuantity subtracts n in a single statement, clamping at zero,
// and returns the reloaded item
func (r *GormInventoryItemRepository) DecreaseQuantity(ctx context.Context, id uuid.UUID, n int) (*inventory.Item, error) {
	return r.updateQuantity(ctx, id, gorm.Expr("CASE WHEN quantity > ? THEN quantity - ? ELSE 0 END", n, n))
}

func (r *GormInventoryItemRepository) updateQuantity(ctx context.Context, id uuid.UUID, value any) (*inventory.Item, error) {
	result := r.db.WithContext(ctx).Model(&models.InventoryItemModel{}).
		Where("id = ?", id).
		Updates(map[string]any{"quantity": value, "updated_at": time.Now()})
	if err := affected("update quantity", result); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

// FindLowStock returns items at or below their threshold, scarcest first
func (r *GormInventoryItemRepository) FindLowStock(ctx context.Context) ([]inventory.Item, error) {
	return r.find(r.db.WithContext(ctx).Where("quantity <= threshold").Order("quantity ASC"))
}

// FindOutOfStock returns items with zero quantity
func (r *GormInventoryItemRepository) FindOutOfStock(ctx context.Context) ([]inventory.Item, error) {
	return r.find(r.db.WithContext(ctx).Where("quantity = 0").Order("name ASC"))
}

// Search matches name, brand, model and description case-insensitively
func (r *GormInventoryItemRepository) Search(ctx context.Context, term string, limit int) ([]inventory.Item, error) {
	query := r.searchScope(r.db.WithContext(ctx), term).Order("name ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	return r.find(query)
}

// FindByCategory returns items in the category
func (r *GormInventoryItemRepository) FindByCategory(ctx context.Context, category inventory.Category) ([]inventory.Item, error) {
	return r.find(r.db.WithContext(ctx).Where("category = ?", string(category)).Order("name ASC"))
}

// FindByBrand matches the brand as a case-insensitive substring
func (r *GormInventoryItemRepository) FindByBrand(ctx context.Context, brand string) ([]inventory.Item, error) {
	return r.find(r.db.WithContext(ctx).Where("LOWER(brand) LIKE LOWER(?) ESCAPE '\\'", likePattern(brand)).Order("name ASC"))
}

// FindByPriceRange returns items priced within [min, max], cheapest first
func (r *GormInventoryItemRepository) FindByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]inventory.Item, error) {
	return r.find(r.db.WithContext(ctx).Where("price >= ? AND price <= ?", min, max).Order("price ASC"))
}

// DistinctValues lists the sorted distinct values of a whitelisted column
func (r *GormInventoryItemRepository) DistinctValues(ctx context.Context, field inventory.DistinctField) ([]string, error) {
	column, ok := distinctColumns[field]
	if !ok {
		return nil, translateError("distinct values", gorm.ErrInvalidField)
	}
	var values []string
	if err := r.db.WithContext(ctx).Model(&models.InventoryItemModel{}).
		Distinct(column).
		Order(column + " ASC").
		Pluck(column, &values).Error; err != nil {
		return nil, translateError("distinct values", err)
	}
	return values, nil
}

// ExistsByNameAndModel compares name and model case-insensitively
func (r *GormInventoryItemRepository) ExistsByNameAndModel(ctx context.Context, name, model string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.InventoryItemModel{}).
		Where("LOWER(name) = LOWER(?) AND LOWER(model_name) = LOWER(?)", name, model).
		Count(&count).Error; err != nil {
		return false, translateError("check item", err)
	}
	return count > 0, nil
}

func (r *GormInventoryItemRepository) searchScope(query *gorm.DB, term string) *gorm.DB {
	pattern := likePattern(term)
	return query.Where("LOWER(name) LIKE LOWER(?) ESCAPE '\\' OR LOWER(brand) LIKE LOWER(?) ESCAPE '\\' OR LOWER(model_name) LIKE LOWER(?) ESCAPE '\\' OR LOWER(description) LIKE LOWER(?) ESCAPE '\\'",
		pattern, pattern, pattern, pattern)
}

func (r *GormInventoryItemRepository) applyFilter(query *gorm.DB, filter inventory.Filter) *gorm.DB {
	if filter.Category != nil {
		query = query.Where("category = ?", string(*filter.Category))
	}
	if filter.Brand != "" {
		query = query.Where("LOWER(brand) LIKE LOWER(?) ESCAPE '\\'", likePattern(filter.Brand))
	}
	if filter.Search != "" {
		query = r.searchScope(query, filter.Search)
	}
	if filter.MinPrice != nil {
		query = query.Where("price >= ?", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		query = query.Where("price <= ?", *filter.MaxPrice)
	}
	return query
}

func (r *GormInventoryItemRepository) find(query *gorm.DB) ([]inventory.Item, error) {
	var rows []models.InventoryItemModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, translateError("list items", err)
	}
	out := make([]inventory.Item, len(rows))
	for i := range rows {
		out[i] = *rows[i].ToDomain()
	}
	return out, nil
}

var _ inventory.Repository = (*GormInventoryItemRepository)(nil)
