package report

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) DailyRevenue(ctx context.Context, days int) ([]DailyRevenue, error) {
	args := m.Called(ctx, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]DailyRevenue), args.Error(1)
}

func (m *MockRepository) CategorySales(ctx context.Context) ([]CategorySales, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]CategorySales), args.Error(1)
}

func TestServiceDailyRevenue(t *testing.T) {
	t.Run("Defaults zero days", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("DailyRevenue", mock.Anything, defaultRevenueDays).Return([]DailyRevenue{}, nil)

		_, err := NewService(repo).DailyRevenue(context.Background(), 0)

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("Clamps oversize window", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("DailyRevenue", mock.Anything, maxRevenueDays).Return([]DailyRevenue{}, nil)

		_, err := NewService(repo).DailyRevenue(context.Background(), 400)

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("Propagates failure", func(t *testing.T) {
		repo := new(MockRepository)
		repo.On("DailyRevenue", mock.Anything, 7).Return(nil, errors.New("down"))

		_, err := NewService(repo).DailyRevenue(context.Background(), 7)

		assert.Error(t, err)
	})
}

func TestServiceCategorySales(t *testing.T) {
	repo := new(MockRepository)
	repo.On("CategorySales", mock.Anything).Return([]CategorySales{
		{Category: "electronics", Count: 12},
		{Category: "books", Count: 4},
	}, nil)

	results, err := NewService(repo).CategorySales(context.Background())

	assert.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, "electronics", results[0].Category)
	repo.AssertExpectations(t)
}
