package cart

import (
	"regexp"
	"strings"

	"github.com/lyvest/lyvest-backend/pkg/types"
	"github.com/shopspring/decimal"
)

const (
	// MaxDistinctItems bounds how many line items a cart may hold.
	MaxDistinctItems = 50
	// MaxQuantity is the per-line quantity ceiling.
	MaxQuantity = 99
	// MinQuantity is the per-line quantity floor.
	MinQuantity = 1

	maxNameLen     = 200
	maxImageRefLen = 500
	maxCategoryLen = 100
)

// maxPrice caps a single unit price, in currency units.
var maxPrice = decimal.NewFromInt(100000)

// FreeShippingThreshold is the subtotal, in currency units, at which an
// order ships free.
var FreeShippingThreshold = decimal.NewFromInt(199)

var htmlTagRe = regexp.MustCompile(`<[^>]*>`)

// LineItem is one product entry in the cart with an aggregated quantity.
type LineItem struct {
	ID            types.ProductID `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	Quantity      int             `json:"quantity"`
	ImageRef      string          `json:"imageRef,omitempty"`
	CategoryLabel string          `json:"categoryLabel,omitempty"`
}

// SanitizeLineItem normalizes free-text fields: HTML stripped from the name,
// whitespace trimmed, overlong references truncated, quantity clamped.
func SanitizeLineItem(item LineItem) LineItem {
	item.Name = truncate(strings.TrimSpace(htmlTagRe.ReplaceAllString(item.Name, "")), maxNameLen)
	item.ImageRef = truncate(strings.TrimSpace(item.ImageRef), maxImageRefLen)
	item.CategoryLabel = truncate(strings.TrimSpace(item.CategoryLabel), maxCategoryLen)
	item.Quantity = ClampQuantity(item.Quantity)
	return item
}

// ValidLineItem is the predicate shared between the engine and the storage
// slot: what the engine accepts is exactly what gets persisted.
func ValidLineItem(item LineItem) bool {
	if !item.ID.Valid() {
		return false
	}
	if item.Name == "" || len(item.Name) > maxNameLen {
		return false
	}
	if item.Price.IsNegative() || item.Price.GreaterThan(maxPrice) {
		return false
	}
	if item.Quantity < MinQuantity || item.Quantity > MaxQuantity {
		return false
	}
	if len(item.ImageRef) > maxImageRefLen || len(item.CategoryLabel) > maxCategoryLen {
		return false
	}
	return true
}

// ClampQuantity forces a quantity into the [1, 99] range.
func ClampQuantity(qty int) int {
	if qty < MinQuantity {
		return MinQuantity
	}
	if qty > MaxQuantity {
		return MaxQuantity
	}
	return qty
}

// Totals is the derived view recomputed after every mutation.
type Totals struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	Count          int             `json:"count"`
	CouponCode     string          `json:"couponCode,omitempty"`
	DiscountRate   decimal.Decimal `json:"discountRate"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	Total          decimal.Decimal `json:"total"`
	FreeShipping   bool            `json:"freeShipping"`
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}
