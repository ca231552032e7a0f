package shared

import "github.com/shopspring/decimal"

// MoneyPlaces is the number of decimal places money is stored with
const MoneyPlaces int32 = 2

// RoundMoney rounds an amount half away from zero to whole cents
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// HasSubCent reports whether d carries precision below one cent
func HasSubCent(d decimal.Decimal) bool {
	return !d.Equal(RoundMoney(d))
}
