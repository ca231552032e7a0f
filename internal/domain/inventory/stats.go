package inventory

import "github.com/shopspring/decimal"

// Stats aggregates the stock position
type Stats struct {
	TotalItems      int
	TotalValue      decimal.Decimal
	LowStockItems   int
	OutOfStockItems int
	ByCategory      map[Category]int
	ByBrand         map[string]int
}

// ComputeStats folds the full item set into Stats
func ComputeStats(items []Item) Stats {
	s := Stats{
		TotalValue: decimal.Zero,
		ByCategory: make(map[Category]int),
		ByBrand:    make(map[string]int),
	}
	for i := range items {
		it := &items[i]
		s.TotalItems++
		s.TotalValue = s.TotalValue.Add(it.StockValue())
		if it.IsLowStock() {
			s.LowStockItems++
		}
		if it.IsOutOfStock() {
			s.OutOfStockItems++
		}
		s.ByCategory[it.Category]++
		s.ByBrand[it.Brand]++
	}
	return s
}

// TotalValue returns Σ price × quantity
func TotalValue(items []Item) decimal.Decimal {
	total := decimal.Zero
	for i := range items {
		total = total.Add(items[i].StockValue())
	}
	return total
}

// FilterLowStock keeps only items at or below their threshold
func FilterLowStock(items []Item) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if it.IsLowStock() {
			out = append(out, it)
		}
	}
	return out
}
