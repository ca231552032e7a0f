package persistence

import (
	"strings"
	"unicode"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// NormalizeSortField accepts camelCase or snake_case field names
// (createdAt, created_at) and validates the snake_case form
func NormalizeSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	return ValidateSortField(toSnakeCase(strings.TrimSpace(sortField)), allowedFields, defaultField)
}

func toSnakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// orderClause builds a validated "column DIR" clause
func orderClause(field, dir string, allowedFields map[string]bool, defaultField string) string {
	return NormalizeSortField(field, allowedFields, defaultField) + " " + ValidateSortOrder(dir)
}

// JobSortFields contains allowed sort fields for jobs
var JobSortFields = map[string]bool{
	"id":                     true,
	"created_at":             true,
	"updated_at":             true,
	"job_id":                 true,
	"status":                 true,
	"priority":               true,
	"customer_name":          true,
	"brand":                  true,
	"expected_delivery_date": true,
	"actual_delivery_date":   true,
	"estimated_cost":         true,
	"actual_cost":            true,
}

// InventoryItemSortFields contains allowed sort fields for inventory items
var InventoryItemSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"category":   true,
	"brand":      true,
	"model_name": true,
	"quantity":   true,
	"price":      true,
	"threshold":  true,
	"supplier":   true,
}

// PettyCashSortFields contains allowed sort fields for petty-cash transactions
var PettyCashSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"date":       true,
	"amount":     true,
	"type":       true,
	"category":   true,
}
