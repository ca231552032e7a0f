package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/repairdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Filter defines filtering options for item queries
type Filter struct {
	shared.Filter
	Category *Category
	Brand    string // case-insensitive substring
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	// LowStock is applied to the fetched page, not pushed into the query
	LowStock bool
}

// DistinctField names the columns GetDistinctValues may read
type DistinctField string

const (
	DistinctName     DistinctField = "name"
	DistinctCategory DistinctField = "category"
	DistinctBrand    DistinctField = "brand"
	DistinctModel    DistinctField = "model"
	DistinctSupplier DistinctField = "supplier"
)

// IsValid checks if the field is on the distinct-values whitelist
func (f DistinctField) IsValid() bool {
	switch f {
	case DistinctName, DistinctCategory, DistinctBrand, DistinctModel, DistinctSupplier:
		return true
	}
	return false
}

// Repository defines the interface for inventory persistence
type Repository interface {
	Create(ctx context.Context, item *Item) error
	Save(ctx context.Context, item *Item) error
	// SaveAll saves every item in one transaction
	SaveAll(ctx context.Context, items []Item) error
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Item, error)
	FindAll(ctx context.Context, filter Filter) ([]Item, int64, error)
	List(ctx context.Context) ([]Item, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteMany(ctx context.Context, ids []uuid.UUID) (int64, error)

	// SetQuantity, IncreaseQuantity and DecreaseQuantity are single
	// statements; DecreaseQuantity clamps at zero
	SetQuantity(ctx context.Context, id uuid.UUID, quantity int) (*Item, error)
	IncreaseQuantity(ctx context.Context, id uuid.UUID, n int) (*Item, error)
	DecreaseQuantity(ctx context.Context, id uuid.UUID, n int) (*Item, error)

	FindLowStock(ctx context.Context) ([]Item, error)
	FindOutOfStock(ctx context.Context) ([]Item, error)
	Search(ctx context.Context, term string, limit int) ([]Item, error)
	FindByCategory(ctx context.Context, category Category) ([]Item, error)
	FindByBrand(ctx context.Context, brand string) ([]Item, error)
	FindByPriceRange(ctx context.Context, min, max decimal.Decimal) ([]Item, error)
	DistinctValues(ctx context.Context, field DistinctField) ([]string, error)
	ExistsByNameAndModel(ctx context.Context, name, model string) (bool, error)
}
