package catalog

import (
	"regexp"
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog record. The checkout path only ever reads it; the
// price frozen into an order is a snapshot, not a reference.
type Product struct {
	ID        string          `json:"id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Category  string          `json:"category"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type ProductInput struct {
	SKU      string          `json:"sku"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
}

// ProductUpdate carries optional fields. SKU is present only so an update
// attempt on it can be rejected; it is never written.
type ProductUpdate struct {
	SKU      *string          `json:"sku"`
	Name     *string          `json:"name"`
	Price    *decimal.Decimal `json:"price"`
	Category *string          `json:"category"`
}

type ListQuery struct {
	Name     string
	Category string
	Sort     string // "price_asc" or empty (price descending)
	Page     int
	Limit    int
}

type Pagination struct {
	Page          int   `json:"page"`
	TotalPages    int   `json:"totalPages"`
	TotalProducts int64 `json:"totalProducts"`
}

type ListResult struct {
	Products   []*Product `json:"products"`
	Pagination Pagination `json:"pagination"`
}

var idPattern = regexp.MustCompile(`^[a-fA-F0-9]{24}$`)

// IsValidID reports whether id matches the catalog identifier format
// (24 hex characters).
func IsValidID(id string) bool {
	return idPattern.MatchString(id)
}
