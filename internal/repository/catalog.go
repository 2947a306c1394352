package repository

import (
	"context"

	"github.com/optiprice/backend-go/internal/domain"
)

// CatalogRepository is the Catalog Store the pricing core reads product
// snapshots from. The optimized price is the only field the engine writes
// back: per record for a single optimization, transactionally for a batch
// pass so a half-written pass never becomes visible.
type CatalogRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error)
	UpdateOptimizedPrice(ctx context.Context, id int64, price float64) error
	UpdateOptimizedPrices(ctx context.Context, updates []domain.PriceUpdate) error
}
