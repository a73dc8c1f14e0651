package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLine is a validated, transient input line. It is never persisted;
// checkout turns it into an OrderItem carrying a frozen price.
type CartLine struct {
	ProductID string
	Quantity  int
}

// Order is immutable once committed. There is no update or delete path.
type Order struct {
	ID        string
	UserID    string
	Total     decimal.Decimal
	CreatedAt time.Time
	Items     []OrderItem
}

// OrderItem freezes the catalog price read at submission time. A later
// catalog price change never touches a committed item.
type OrderItem struct {
	ID              string
	OrderID         string
	ProductID       string
	Quantity        int
	PriceAtPurchase decimal.Decimal
}
