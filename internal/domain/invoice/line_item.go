package invoice

import (
	"fmt"
	"strings"

	"github.com/repairdesk/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ItemType names the source a line item was snapshotted from
type ItemType string

const (
	ItemTypeInventory ItemType = "inventory"
	ItemTypeJob       ItemType = "job"
)

// IsValid checks if the type is a valid ItemType
func (t ItemType) IsValid() bool {
	return t == ItemTypeInventory || t == ItemTypeJob
}

// LineItem is a snapshot of an inventory item or job at sale time.
// ItemID is a weak reference; name and price are copied.
type LineItem struct {
	ItemID   string          `json:"item_id"`
	ItemType ItemType        `json:"item_type"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// Validate checks the line item constraints
func (li LineItem) Validate() error {
	if strings.TrimSpace(li.ItemID) == "" {
		return shared.NewValidationError("INVALID_ITEM", "Item ID is required")
	}
	if !li.ItemType.IsValid() {
		return shared.NewValidationError("INVALID_ITEM", fmt.Sprintf("Item type %q is not valid", li.ItemType))
	}
	if strings.TrimSpace(li.Name) == "" {
		return shared.NewValidationError("INVALID_ITEM", "Item name is required")
	}
	if li.Quantity < 1 {
		return shared.NewValidationError("INVALID_ITEM", "Item quantity must be at least 1")
	}
	if li.Price.IsNegative() {
		return shared.NewValidationError("INVALID_ITEM", "Item price cannot be negative")
	}
	if shared.HasSubCent(li.Price) {
		return shared.NewValidationError("INVALID_ITEM", "Item price cannot have more than two decimal places")
	}
	return nil
}

// Amount returns price × quantity
func (li LineItem) Amount() decimal.Decimal {
	return li.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// MergeLineItems merges incoming items into existing ones by item id.
// Matching ids sum their quantities and keep the first-seen name and
// price; the result preserves order of first occurrence.
func MergeLineItems(existing, incoming []LineItem) []LineItem {
	merged := make([]LineItem, 0, len(existing)+len(incoming))
	index := make(map[string]int, len(existing)+len(incoming))
	for _, list := range [][]LineItem{existing, incoming} {
		for _, it := range list {
			if pos, ok := index[it.ItemID]; ok {
				merged[pos].Quantity += it.Quantity
				continue
			}
			index[it.ItemID] = len(merged)
			merged = append(merged, it)
		}
	}
	return merged
}
