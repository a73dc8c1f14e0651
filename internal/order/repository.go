package order

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Repository exposes the relational ledger's transaction primitives. The
// coordinator owns the transaction lifecycle; the repository only knows
// how to open one and write into it.
type Repository interface {
	Begin(ctx context.Context) (Tx, error)
}

// Tx is one checkout's unit of work. Either both inserts commit or
// neither does; Rollback after Commit is a no-op.
type Tx interface {
	InsertOrder(ctx context.Context, o *Order) error
	InsertItems(ctx context.Context, items []OrderItem) error
	Commit() error
	Rollback() error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Begin(ctx context.Context) (Tx, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, &StoreError{Op: "begin", Err: err}
	}
	return &sqlTx{tx: tx}, nil
}

type sqlTx struct {
	tx *sql.Tx
}

func (t *sqlTx) InsertOrder(ctx context.Context, o *Order) error {
	_, err := t.tx.ExecContext(ctx, `
		INSERT INTO orders (id, user_id, total, created_at)
		VALUES ($1, $2, $3, $4)
	`, o.ID, o.UserID, o.Total.StringFixed(2), o.CreatedAt)
	if err != nil {
		return &StoreError{Op: "insert order", Err: err}
	}
	return nil
}

// InsertItems writes every item in one multi-row INSERT, preserving the
// submission order of the cart.
func (t *sqlTx) InsertItems(ctx context.Context, items []OrderItem) error {
	if len(items) == 0 {
		return &StoreError{Op: "insert items", Err: fmt.Errorf("no items to insert")}
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO order_items (id, order_id, product_id, quantity, price_at_purchase) VALUES `)

	args := make([]any, 0, len(items)*5)
	for i, item := range items {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 5
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, $%d)", base+1, base+2, base+3, base+4, base+5)
		args = append(args, item.ID, item.OrderID, item.ProductID, item.Quantity, item.PriceAtPurchase.StringFixed(2))
	}

	if _, err := t.tx.ExecContext(ctx, sb.String(), args...); err != nil {
		return &StoreError{Op: "insert items", Err: err}
	}
	return nil
}

func (t *sqlTx) Commit() error {
	if err := t.tx.Commit(); err != nil {
		return &StoreError{Op: "commit", Err: err}
	}
	return nil
}

func (t *sqlTx) Rollback() error {
	if err := t.tx.Rollback(); err != nil && err != sql.ErrTxDone {
		return &StoreError{Op: "rollback", Err: err}
	}
	return nil
}
