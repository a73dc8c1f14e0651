package report

import (
	"context"

	"storefront-be/internal/logger"

	"go.uber.org/zap"
)

const (
	defaultRevenueDays = 7
	maxRevenueDays     = 90
)

type Service interface {
	DailyRevenue(ctx context.Context, days int) ([]DailyRevenue, error)
	CategorySales(ctx context.Context) ([]CategorySales, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) DailyRevenue(ctx context.Context, days int) ([]DailyRevenue, error) {
	log := logger.FromCtx(ctx)

	if days <= 0 {
		days = defaultRevenueDays
	}
	if days > maxRevenueDays {
		days = maxRevenueDays
	}

	results, err := s.repo.DailyRevenue(ctx, days)
	if err != nil {
		log.Error("daily revenue report failed", zap.Int("days", days), zap.Error(err))
		return nil, err
	}

	return results, nil
}

func (s *service) CategorySales(ctx context.Context) ([]CategorySales, error) {
	log := logger.FromCtx(ctx)

	results, err := s.repo.CategorySales(ctx)
	if err != nil {
		log.Error("category sales report failed", zap.Error(err))
		return nil, err
	}

	return results, nil
}
