package report

import "github.com/shopspring/decimal"

// DailyRevenue is one row of the orders ledger rollup. Revenue is the
// sum of frozen order totals for that day.
type DailyRevenue struct {
	Date    string          `json:"date"`
	Orders  int64           `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

// CategorySales counts catalog products per category.
type CategorySales struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}
