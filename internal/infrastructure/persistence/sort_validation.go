package persistence

import (
	"strings"
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

// ValidateSortField validates the sort field against a whitelist of allowed
// fields. Returns the defaultField if the input is invalid, empty, or not in
// the whitelist. Sort input reaches the ORDER BY clause verbatim, so every
// list query must pass through here.
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

// ProductSortFields contains the sortable product columns
var ProductSortFields = map[string]bool{
	"created_at":     true,
	"updated_at":     true,
	"name":           true,
	"slug":           true,
	"price":          true,
	"featured_price": true,
	"inventory":      true,
	"launch_date":    true,
	"discount_pct":   true,
}

// TaxSortFields contains the sortable tax columns
var TaxSortFields = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"rate":       true,
}

// TagSortFields contains the sortable tag columns
var TagSortFields = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"slug":       true,
}

// CategorySortFields contains the sortable category columns
var CategorySortFields = map[string]bool{
	"created_at":  true,
	"updated_at":  true,
	"slug":        true,
	"parent_slug": true,
}

// AddressSortFields contains the sortable shipping address columns
var AddressSortFields = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"city":       true,
	"state":      true,
	"pin_code":   true,
}

// OrderSortFields contains the sortable order columns
var OrderSortFields = map[string]bool{
	"created_at":  true,
	"updated_at":  true,
	"status":      true,
	"total":       true,
	"customer_id": true,
}

// FileUploadSortFields contains the sortable upload columns
var FileUploadSortFields = map[string]bool{
	"created_at":   true,
	"updated_at":   true,
	"size":         true,
	"content_type": true,
}
