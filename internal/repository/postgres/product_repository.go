package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/optiprice/backend-go/internal/domain"
)

type productRepository struct {
	db *DB
}

// NewProductRepository builds the postgres-backed Catalog Store.
func NewProductRepository(db *DB) *productRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (
			name, category, description, cost_price, selling_price,
			stock_available, units_sold, customer_rating, historical_demand,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	row := r.db.QueryRowxContext(ctx, query,
		product.Name,
		product.Category,
		product.Description,
		product.CostPrice,
		product.SellingPrice,
		product.StockAvailable,
		product.UnitsSold,
		product.CustomerRating,
		product.HistoricalDemand,
	)
	if err := row.Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt); err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}

	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `
		SELECT id, name, category, description, cost_price, selling_price,
			stock_available, units_sold, customer_rating, historical_demand,
			optimized_price, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	var product domain.Product
	if err := sqlx.GetContext(ctx, r.db, &product, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}

	return &product, nil
}

func (r *productRepository) Update(ctx context.Context, product *domain.Product) error {
	query := `
		UPDATE products SET
			name = $2,
			category = $3,
			description = $4,
			cost_price = $5,
			selling_price = $6,
			stock_available = $7,
			units_sold = $8,
			customer_rating = $9,
			historical_demand = $10,
			updated_at = NOW()
		WHERE id = $1
	`

	res, err := r.db.ExecContext(ctx, query,
		product.ID,
		product.Name,
		product.Category,
		product.Description,
		product.CostPrice,
		product.SellingPrice,
		product.StockAvailable,
		product.UnitsSold,
		product.CustomerRating,
		product.HistoricalDemand,
	)
	if err != nil {
		return fmt.Errorf("failed to update product %d: %w", product.ID, err)
	}

	return requireRow(res, product.ID)
}

func (r *productRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product %d: %w", id, err)
	}
	return requireRow(res, id)
}

func (r *productRepository) List(ctx context.Context, filter domain.ProductFilter) ([]*domain.Product, error) {
	limit := filter.Limit
	if limit <= 0 || limit > 500 {
		limit = 500
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT id, name, category, description, cost_price, selling_price,
			stock_available, units_sold, customer_rating, historical_demand,
			optimized_price, created_at, updated_at
		FROM products
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR category ILIKE $2)
		ORDER BY id ASC
		LIMIT $3 OFFSET $4
	`

	products := make([]*domain.Product, 0)
	if err := sqlx.SelectContext(ctx, r.db, &products, query, filter.Name, filter.Category, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return products, nil
}

// UpdateOptimizedPrice writes the engine's single persisted output back onto
// the product row. One UPDATE, atomic per record; concurrent passes race and
// the last writer wins.
func (r *productRepository) UpdateOptimizedPrice(ctx context.Context, id int64, price float64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET optimized_price = $2, updated_at = NOW() WHERE id = $1`,
		id, price)
	if err != nil {
		return fmt.Errorf("failed to update optimized price for product %d: %w", id, err)
	}
	return requireRow(res, id)
}

// UpdateOptimizedPrices applies a whole optimization pass in one transaction,
// so readers never observe a partially written batch.
func (r *productRepository) UpdateOptimizedPrices(ctx context.Context, updates []domain.PriceUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx,
			`UPDATE products SET optimized_price = $2, updated_at = NOW() WHERE id = $1`)
		if err != nil {
			return fmt.Errorf("failed to prepare optimized price update: %w", err)
		}
		defer stmt.Close()

		for _, update := range updates {
			if _, err := stmt.ExecContext(ctx, update.ProductID, update.Price); err != nil {
				return fmt.Errorf("failed to update optimized price for product %d: %w", update.ProductID, err)
			}
		}
		return nil
	})
}

func requireRow(res sql.Result, id int64) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}
