package catalog

import (
	"context"
	"strings"

	"storefront-be/internal/validate"
)

type Service interface {
	CreateProduct(ctx context.Context, input ProductInput) (*Product, error)
	UpdateProduct(ctx context.Context, id string, update ProductUpdate) (*Product, error)
	DeleteProduct(ctx context.Context, id string) error
	GetProduct(ctx context.Context, id string) (*Product, error)
	ListProducts(ctx context.Context, q ListQuery) (*ListResult, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateProduct(ctx context.Context, input ProductInput) (*Product, error) {
	input.SKU = strings.TrimSpace(input.SKU)
	input.Name = strings.TrimSpace(input.Name)
	input.Category = strings.TrimSpace(input.Category)

	var c validate.Collector
	if input.Name == "" {
		c.Add("name", "Product name is required.")
	}
	if input.SKU == "" {
		c.Add("sku", "SKU is required.")
	}
	if !input.Price.IsPositive() {
		c.Add("price", "Price must be a number greater than 0.")
	}
	if input.Category == "" {
		c.Add("category", "Category is required.")
	}
	if err := c.Err(); err != nil {
		return nil, err
	}

	return s.repo.Insert(ctx, input)
}

func (s *service) UpdateProduct(ctx context.Context, id string, update ProductUpdate) (*Product, error) {
	var c validate.Collector
	if update.SKU != nil {
		c.Add("sku", "SKU cannot be updated.")
	}
	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		c.Add("name", "Product name cannot be empty.")
	}
	if update.Price != nil && !update.Price.IsPositive() {
		c.Add("price", "Price must be a number greater than 0.")
	}
	if update.Category != nil && strings.TrimSpace(*update.Category) == "" {
		c.Add("category", "Category cannot be empty.")
	}
	if err := c.Err(); err != nil {
		return nil, err
	}

	return s.repo.Update(ctx, id, update)
}

func (s *service) DeleteProduct(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) GetProduct(ctx context.Context, id string) (*Product, error) {
	return s.repo.LookupByID(ctx, id)
}

func (s *service) ListProducts(ctx context.Context, q ListQuery) (*ListResult, error) {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = 20
	}
	if q.Limit > 100 {
		q.Limit = 100
	}

	products, err := s.repo.Find(ctx, q)
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Count(ctx, q)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(q.Limit) - 1) / int64(q.Limit))

	if products == nil {
		products = []*Product{}
	}

	return &ListResult{
		Products: products,
		Pagination: Pagination{
			Page:          q.Page,
			TotalPages:    totalPages,
			TotalProducts: total,
		},
	}, nil
}
