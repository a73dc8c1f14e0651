package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront-be/internal/catalog"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Begin(ctx context.Context) (Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(Tx), args.Error(1)
}

type MockTx struct {
	mock.Mock
}

func (m *MockTx) InsertOrder(ctx context.Context, o *Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockTx) InsertItems(ctx context.Context, items []OrderItem) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

func (m *MockTx) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockTx) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

type MockReader struct {
	mock.Mock
}

func (m *MockReader) LookupByID(ctx context.Context, id string) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

const (
	userID = "5f3c1e2a-9d4b-4c6e-8a7f-1b2c3d4e5f60"
	p1     = "64a0c1e2f3a4b5c6d7e8f901"
	p2     = "64a0c1e2f3a4b5c6d7e8f902"
	pMiss  = "64a0c1e2f3a4b5c6d7e8f9ff"
)

func product(id string, price float64) *catalog.Product {
	return &catalog.Product{ID: id, Price: decimal.NewFromFloat(price)}
}

func TestCheckout_TotalIsExactDecimalSum(t *testing.T) {
	// cart=[{P1,qty 2},{P2,qty 1}], P1=1000.00, P2=50.00 -> total 2050.00
	repo := new(MockRepository)
	tx := new(MockTx)
	reader := new(MockReader)

	repo.On("Begin", mock.Anything).Return(tx, nil)
	reader.On("LookupByID", mock.Anything, p1).Return(product(p1, 1000.00), nil)
	reader.On("LookupByID", mock.Anything, p2).Return(product(p2, 50.00), nil)
	tx.On("InsertOrder", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil)
	tx.On("InsertItems", mock.Anything, mock.AnythingOfType("[]order.OrderItem")).Return(nil)
	tx.On("Commit").Return(nil)

	svc := NewService(repo, reader, time.Second)
	o, err := svc.Checkout(context.Background(), userID, []CartLine{
		{ProductID: p1, Quantity: 2},
		{ProductID: p2, Quantity: 1},
	})

	require.NoError(t, err)
	assert.Equal(t, "2050.00", o.Total.StringFixed(2))
	assert.Equal(t, userID, o.UserID)
	require.Len(t, o.Items, 2)
	assert.Equal(t, "1000.00", o.Items[0].PriceAtPurchase.StringFixed(2))
	assert.Equal(t, 2, o.Items[0].Quantity)
	assert.Equal(t, "50.00", o.Items[1].PriceAtPurchase.StringFixed(2))
	assert.Equal(t, 1, o.Items[1].Quantity)
	assert.Equal(t, o.ID, o.Items[0].OrderID)

	tx.AssertCalled(t, "Commit")
	tx.AssertNotCalled(t, "Rollback")
}

func TestCheckout_NoFloatDrift(t *testing.T) {
	// 0.1 * 3 must be exactly 0.30, not 0.30000000000000004.
	repo := new(MockRepository)
	tx := new(MockTx)
	reader := new(MockReader)

	repo.On("Begin", mock.Anything).Return(tx, nil)
	reader.On("LookupByID", mock.Anything, p1).Return(product(p1, 0.1), nil)
	tx.On("InsertOrder", mock.Anything, mock.Anything).Return(nil)
	tx.On("InsertItems", mock.Anything, mock.Anything).Return(nil)
	tx.On("Commit").Return(nil)

	svc := NewService(repo, reader, time.Second)
	o, err := svc.Checkout(context.Background(), userID, []CartLine{{ProductID: p1, Quantity: 3}})

	require.NoError(t, err)
	assert.True(t, o.Total.Equal(decimal.RequireFromString("0.30")), "got %s", o.Total)
}

func TestCheckout_PriceSnapshotRounding(t *testing.T) {
	// Captured price rounds half away from zero to two decimals.
	repo := new(MockRepository)
	tx := new(MockTx)
	reader := new(MockReader)

	repo.On("Begin", mock.Anything).Return(tx, nil)
	reader.On("LookupByID", mock.Anything, p1).Return(&catalog.Product{
		ID:    p1,
		Price: decimal.RequireFromString("10.005"),
	}, nil)
	tx.On("InsertOrder", mock.Anything, mock.Anything).Return(nil)
	tx.On("InsertItems", mock.Anything, mock.Anything).Return(nil)
	tx.On("Commit").Return(nil)

	svc := NewService(repo, reader, time.Second)
	o, err := svc.Checkout(context.Background(), userID, []CartLine{{ProductID: p1, Quantity: 1}})

	require.NoError(t, err)
	assert.Equal(t, "10.01", o.Items[0].PriceAtPurchase.StringFixed(2))
	assert.Equal(t, "10.01", o.Total.StringFixed(2))
}

func TestCheckout_FirstMissAbortsEverything(t *testing.T) {
	// cart=[{P1},{MISSING},{P2}]: 404 names MISSING, nothing persists,
	// and P2 is never looked up.
	repo := new(MockRepository)
	tx := new(MockTx)
	reader := new(MockReader)

	repo.On("Begin", mock.Anything).Return(tx, nil)
	reader.On("LookupByID", mock.Anything, p1).Return(product(p1, 5.00), nil)
	reader.On("LookupByID", mock.Anything, pMiss).Return(nil, catalog.ErrProductNotFound)
	tx.On("Rollback").Return(nil)

	svc := NewService(repo, reader, time.Second)
	o, err := svc.Checkout(context.Background(), userID, []CartLine{
		{ProductID: p1, Quantity: 1},
		{ProductID: pMiss, Quantity: 1},
		{ProductID: p2, Quantity: 1},
	})

	assert.Nil(t, o)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, pMiss, nf.ProductID)
	assert.Equal(t, "No product found with ID "+pMiss, err.Error())

	reader.AssertNotCalled(t, "LookupByID", mock.Anything, p2)
	tx.AssertNotCalled(t, "InsertOrder")
	tx.AssertNotCalled(t, "InsertItems")
	tx.AssertNotCalled(t, "Commit")
	tx.AssertCalled(t, "Rollback")
}

func TestCheckout_CatalogFailureRollsBack(t *testing.T) {
	repo := new(MockRepository)
	tx := new(MockTx)
	reader := new(MockReader)

	repo.On("Begin", mock.Anything).Return(tx, nil)
	reader.On("LookupByID", mock.Anything, p1).Return(nil, errors.New("mongo timeout"))
	tx.On("Rollback").Return(nil)

	svc := NewService(repo, reader, time.Second)
	_, err := svc.Checkout(context.Background(), userID, []CartLine{{ProductID: p1, Quantity: 1}})

	assert.Error(t, err)
	var nf *NotFoundError
	assert.False(t, errors.As(err, &nf))
	tx.AssertCalled(t, "Rollback")
}

func TestCheckout_InsertFailureRollsBack(t *testing.T) {
	repo := new(MockRepository)
	tx := new(MockTx)
	reader := new(MockReader)

	repo.On("Begin", mock.Anything).Return(tx, nil)
	reader.On("LookupByID", mock.Anything, p1).Return(product(p1, 5.00), nil)
	tx.On("InsertOrder", mock.Anything, mock.Anything).Return(&StoreError{Op: "insert order", Err: errors.New("constraint violation")})
	tx.On("Rollback").Return(nil)

	svc := NewService(repo, reader, time.Second)
	_, err := svc.Checkout(context.Background(), userID, []CartLine{{ProductID: p1, Quantity: 1}})

	var serr *StoreError
	require.ErrorAs(t, err, &serr)
	tx.AssertCalled(t, "Rollback")
	tx.AssertNotCalled(t, "Commit")
}

func TestCheckout_CommitFailureIsReported(t *testing.T) {
	// Fail closed: if the commit outcome is uncertain, report failure.
	repo := new(MockRepository)
	tx := new(MockTx)
	reader := new(MockReader)

	repo.On("Begin", mock.Anything).Return(tx, nil)
	reader.On("LookupByID", mock.Anything, p1).Return(product(p1, 5.00), nil)
	tx.On("InsertOrder", mock.Anything, mock.Anything).Return(nil)
	tx.On("InsertItems", mock.Anything, mock.Anything).Return(nil)
	tx.On("Commit").Return(&StoreError{Op: "commit", Err: errors.New("connection reset")})
	tx.On("Rollback").Return(nil)

	svc := NewService(repo, reader, time.Second)
	o, err := svc.Checkout(context.Background(), userID, []CartLine{{ProductID: p1, Quantity: 1}})

	assert.Nil(t, o)
	assert.Error(t, err)
}

func TestCheckout_BeginFailure(t *testing.T) {
	repo := new(MockRepository)
	reader := new(MockReader)

	repo.On("Begin", mock.Anything).Return(nil, &StoreError{Op: "begin", Err: errors.New("too many connections")})

	svc := NewService(repo, reader, time.Second)
	_, err := svc.Checkout(context.Background(), userID, []CartLine{{ProductID: p1, Quantity: 1}})

	var serr *StoreError
	require.ErrorAs(t, err, &serr)
	reader.AssertNotCalled(t, "LookupByID")
}

func TestCheckout_NotIdempotent(t *testing.T) {
	// Two identical calls create two distinct orders. Documented behavior.
	repo := new(MockRepository)
	tx := new(MockTx)
	reader := new(MockReader)

	repo.On("Begin", mock.Anything).Return(tx, nil)
	reader.On("LookupByID", mock.Anything, p1).Return(product(p1, 9.99), nil)
	tx.On("InsertOrder", mock.Anything, mock.Anything).Return(nil)
	tx.On("InsertItems", mock.Anything, mock.Anything).Return(nil)
	tx.On("Commit").Return(nil)

	svc := NewService(repo, reader, time.Second)
	lines := []CartLine{{ProductID: p1, Quantity: 1}}

	first, err := svc.Checkout(context.Background(), userID, lines)
	require.NoError(t, err)
	second, err := svc.Checkout(context.Background(), userID, lines)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.True(t, first.Total.Equal(second.Total))
}

func TestVerifyTotal(t *testing.T) {
	item := OrderItem{Quantity: 2, PriceAtPurchase: decimal.RequireFromString("10.00")}

	t.Run("Matches", func(t *testing.T) {
		o := &Order{Total: decimal.RequireFromString("20.00"), Items: []OrderItem{item}}
		assert.NoError(t, verifyTotal(o))
	})

	t.Run("Mismatch", func(t *testing.T) {
		o := &Order{Total: decimal.RequireFromString("19.00"), Items: []OrderItem{item}}
		err := verifyTotal(o)
		var ierr *InvariantError
		require.ErrorAs(t, err, &ierr)
		assert.Equal(t, "20.00", ierr.ItemSum.StringFixed(2))
	})
}
