package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront-be/internal/catalog"
	"storefront-be/internal/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service is the checkout transaction coordinator: it turns a validated
// cart and an authenticated user id into a durable Order. The catalog
// read and the relational write are independent capabilities composed
// only here; there is no distributed transaction between the two stores.
type Service interface {
	Checkout(ctx context.Context, userID string, lines []CartLine) (*Order, error)
}

type service struct {
	repo    Repository
	catalog catalog.Reader
	timeout time.Duration
}

// NewService wires the coordinator with explicit store handles. timeout
// bounds one whole unit of work, lookups included, so an open transaction
// cannot hold locks indefinitely.
func NewService(repo Repository, reader catalog.Reader, timeout time.Duration) Service {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &service{repo: repo, catalog: reader, timeout: timeout}
}

// Checkout iterates the cart in submission order, snapshots each product's
// price, and commits the Order plus all OrderItems atomically. The first
// missing product aborts everything; any failure before commit rolls back
// fully. Identical repeated requests create distinct orders.
func (s *service) Checkout(ctx context.Context, userID string, lines []CartLine) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	log := logger.FromCtx(ctx).With(
		zap.String("method", "Checkout"),
		zap.String("user_id", userID),
		zap.Int("line_count", len(lines)),
	)

	tx, err := s.repo.Begin(ctx)
	if err != nil {
		log.Error("failed to begin checkout transaction", zap.Error(err))
		return nil, err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback checkout transaction", zap.Error(rbErr))
			}
		}
	}()

	o := &Order{
		ID:        uuid.New().String(),
		UserID:    userID,
		CreatedAt: time.Now(),
	}

	total := decimal.Zero
	items := make([]OrderItem, 0, len(lines))

	for _, line := range lines {
		product, err := s.catalog.LookupByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, catalog.ErrProductNotFound) {
				// First miss aborts the whole checkout; remaining lines
				// are not evaluated.
				log.Warn("product missing from catalog", zap.String("product_id", line.ProductID))
				return nil, &NotFoundError{ProductID: line.ProductID}
			}
			return nil, fmt.Errorf("catalog lookup for %s: %w", line.ProductID, err)
		}

		// Price snapshot: two decimals, half away from zero. All
		// arithmetic stays in exact decimals; no binary floats.
		price := product.Price.Round(2)
		total = total.Add(price.Mul(decimal.NewFromInt(int64(line.Quantity))))

		items = append(items, OrderItem{
			ID:              uuid.New().String(),
			OrderID:         o.ID,
			ProductID:       line.ProductID,
			Quantity:        line.Quantity,
			PriceAtPurchase: price,
		})
	}

	o.Total = total
	o.Items = items

	if err := verifyTotal(o); err != nil {
		log.Error("order total invariant violated", zap.Error(err))
		return nil, err
	}

	if err := tx.InsertOrder(ctx, o); err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return nil, err
	}

	if err := tx.InsertItems(ctx, items); err != nil {
		log.Error("failed to insert order items", zap.Error(err))
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		// Fail closed: an uncertain commit is reported as failure.
		log.Error("failed to commit checkout transaction", zap.Error(err))
		return nil, err
	}
	committed = true

	log.Info("checkout committed",
		zap.String("order_id", o.ID),
		zap.String("total", o.Total.StringFixed(2)),
	)

	return o, nil
}

// verifyTotal re-derives the total from the items. A mismatch is a defect
// in this code, never a user error.
func verifyTotal(o *Order) error {
	sum := decimal.Zero
	for _, item := range o.Items {
		sum = sum.Add(item.PriceAtPurchase.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	if !sum.Equal(o.Total) {
		return &InvariantError{Total: o.Total, ItemSum: sum}
	}
	return nil
}
