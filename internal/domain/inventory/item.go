package inventory

import (
	"strings"

	"github.com/repairdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Category groups stock items
type Category string

const (
	CategoryPanels  Category = "panels"
	CategoryBoards  Category = "boards"
	CategoryRemotes Category = "remotes"
	CategoryTools   Category = "tools"
)

// IsValid checks if the category is a valid Category
func (c Category) IsValid() bool {
	switch c {
	case CategoryPanels, CategoryBoards, CategoryRemotes, CategoryTools:
		return true
	}
	return false
}

// String returns the string representation of Category
func (c Category) String() string {
	return string(c)
}

// Item is a stocked part or tool
type Item struct {
	shared.BaseEntity
	Name        string          `json:"name"`
	Category    Category        `json:"category"`
	Brand       string          `json:"brand"`
	ModelName   string          `json:"model_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Threshold   int             `json:"threshold"`
	Supplier    string          `json:"supplier"`
	Description string          `json:"description"`
}

// Details holds the caller-supplied fields of a new item
type Details struct {
	Name        string
	Category    Category
	Brand       string
	ModelName   string
	Quantity    int
	Price       decimal.Decimal
	Threshold   int
	Supplier    string
	Description string
}

// NewItem creates a stock item. New items must be stocked with at least
// one unit even though a stored item may drop to zero.
func NewItem(d Details) (*Item, error) {
	if d.Quantity < 1 {
		return nil, shared.NewValidationError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	item := &Item{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        strings.TrimSpace(d.Name),
		Category:    d.Category,
		Brand:       strings.TrimSpace(d.Brand),
		ModelName:   strings.TrimSpace(d.ModelName),
		Quantity:    d.Quantity,
		Price:       d.Price,
		Threshold:   d.Threshold,
		Supplier:    strings.TrimSpace(d.Supplier),
		Description: strings.TrimSpace(d.Description),
	}
	if err := item.Validate(); err != nil {
		return nil, err
	}
	return item, nil
}

// Validate checks the stored-item constraints
func (i *Item) Validate() error {
	if err := shared.RequireText("INVALID_NAME", "Item name", i.Name, 0, 200); err != nil {
		return err
	}
	if !i.Category.IsValid() {
		return shared.NewValidationError("INVALID_CATEGORY", "Category is not valid")
	}
	if err := shared.RequireText("INVALID_BRAND", "Brand", i.Brand, 0, 100); err != nil {
		return err
	}
	if err := shared.RequireText("INVALID_MODEL", "Model", i.ModelName, 0, 100); err != nil {
		return err
	}
	if i.Quantity < 0 {
		return shared.NewValidationError("INVALID_QUANTITY", "Quantity cannot be negative")
	}
	if !i.Price.IsPositive() {
		return shared.NewValidationError("INVALID_PRICE", "Price must be greater than 0")
	}
	if shared.HasSubCent(i.Price) {
		return shared.NewValidationError("INVALID_PRICE", "Price cannot have more than two decimal places")
	}
	if i.Threshold < 1 {
		return shared.NewValidationError("INVALID_THRESHOLD", "Threshold must be at least 1")
	}
	if err := shared.RequireText("INVALID_SUPPLIER", "Supplier", i.Supplier, 0, 200); err != nil {
		return err
	}
	if i.Description != "" {
		return shared.RequireText("INVALID_DESCRIPTION", "Description", i.Description, 5, 1000)
	}
	return nil
}

// IsLowStock reports quantity <= threshold
func (i *Item) IsLowStock() bool {
	return i.Quantity <= i.Threshold
}

// IsOutOfStock reports quantity == 0
func (i *Item) IsOutOfStock() bool {
	return i.Quantity == 0
}

// StockValue returns price × quantity
func (i *Item) StockValue() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Decrease lowers the quantity by n, clamping at zero
func (i *Item) Decrease(n int) {
	i.Quantity = ClampedDecrease(i.Quantity, n)
	i.Touch()
}

// ClampedDecrease returns max(0, current - n)
func ClampedDecrease(current, n int) int {
	if n >= current {
		return 0
	}
	return current - n
}

// Patch is a partial update of an item. Nil fields are left unchanged.
type Patch struct {
	Name        *string
	Category    *Category
	Brand       *string
	ModelName   *string
	Quantity    *int
	Price       *decimal.Decimal
	Threshold   *int
	Supplier    *string
	Description *string
}

// Apply applies the patch and re-validates the item
func (i *Item) Apply(p Patch) error {
	if p.Name != nil {
		i.Name = strings.TrimSpace(*p.Name)
	}
	if p.Category != nil {
		i.Category = *p.Category
	}
	if p.Brand != nil {
		i.Brand = strings.TrimSpace(*p.Brand)
	}
	if p.ModelName != nil {
		i.ModelName = strings.TrimSpace(*p.ModelName)
	}
	if p.Quantity != nil {
		i.Quantity = *p.Quantity
	}
	if p.Price != nil {
		i.Price = *p.Price
	}
	if p.Threshold != nil {
		i.Threshold = *p.Threshold
	}
	if p.Supplier != nil {
		i.Supplier = strings.TrimSpace(*p.Supplier)
	}
	if p.Description != nil {
		i.Description = strings.TrimSpace(*p.Description)
	}
	i.Touch()
	return i.Validate()
}
