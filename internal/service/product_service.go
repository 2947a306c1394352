// backend-go/internal/service/product_service.go
package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/optiprice/backend-go/internal/cache"
	"github.com/optiprice/backend-go/internal/domain"
	"github.com/optiprice/backend-go/internal/repository"
)

// ProductService owns catalog CRUD. Every mutation invalidates the analytics
// cache, since heatmap and inventory views are derived from the whole catalog.
type ProductService struct {
	repo           repository.CatalogRepository
	analyticsCache cache.AnalyticsCache
}

func NewProductService(repo repository.CatalogRepository, analyticsCache cache.AnalyticsCache) *ProductService {
	if analyticsCache == nil {
		analyticsCache = cache.NewNoopAnalyticsCache()
	}
	return &ProductService{repo: repo, analyticsCache: analyticsCache}
}

func (s *ProductService) Create(ctx context.Context, product *domain.Product) error {
	if err := validateProduct(product); err != nil {
		return err
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return err
	}
	s.invalidateAnalytics(ctx)
	return nil
}

func (s *ProductService) Get(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ProductService) Update(ctx context.Context, product *domain.Product) error {
	if err := validateProduct(product); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, product); err != nil {
		return err
	}
	s.invalidateAnalytics(ctx)
	return nil
}

func (s *ProductService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateAnalytics(ctx)
	return nil
}

// List returns products matching the filter, optionally narrowed by name
// substring and exact category.
func (s *ProductService) List(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	return s.repo.List(ctx, filter)
}

func (s *ProductService) invalidateAnalytics(ctx context.Context) {
	if err := s.analyticsCache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate analytics cache")
	}
}

func validateProduct(product *domain.Product) error {
	if product.Name == "" {
		return fmt.Errorf("%w: product name is required", domain.ErrInvalidProduct)
	}
	if product.CostPrice < 0 {
		return fmt.Errorf("%w: cost price cannot be negative", domain.ErrInvalidProduct)
	}
	if product.SellingPrice < 0 {
		return fmt.Errorf("%w: selling price cannot be negative", domain.ErrInvalidProduct)
	}
	if product.StockAvailable < 0 {
		return fmt.Errorf("%w: stock available cannot be negative", domain.ErrInvalidProduct)
	}
	return nil
}
