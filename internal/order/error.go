package order

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// NotFoundError reports the first cart line whose product is missing from
// the catalog. The whole checkout aborts; no rows survive.
type NotFoundError struct {
	ProductID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("No product found with ID %s", e.ProductID)
}

// InvariantError means the computed order total disagrees with the sum of
// its items. That is a programming defect, not bad input; the request
// fails and nothing commits.
type InvariantError struct {
	Total   decimal.Decimal
	ItemSum decimal.Decimal
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("order total %s does not equal item sum %s",
		e.Total.StringFixed(2), e.ItemSum.StringFixed(2))
}

// StoreError wraps a relational store failure. Rollback guarantees no
// residual state, so callers may safely retry.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("order store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
