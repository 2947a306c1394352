package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optiprice/backend-go/internal/domain"
)

func TestProductValidation(t *testing.T) {
	repo := newFakeCatalog()
	svc := NewProductService(repo, nil)

	tests := []struct {
		name    string
		product domain.Product
	}{
		{"missing name", domain.Product{CostPrice: 10, SellingPrice: 20}},
		{"negative cost price", domain.Product{Name: "Lamp", CostPrice: -1, SellingPrice: 20}},
		{"negative selling price", domain.Product{Name: "Lamp", CostPrice: 10, SellingPrice: -5}},
		{"negative stock", domain.Product{Name: "Lamp", CostPrice: 10, SellingPrice: 20, StockAvailable: -3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product := tt.product
			assert.ErrorIs(t, svc.Create(context.Background(), &product), domain.ErrInvalidProduct)
			product.ID = 1
			assert.ErrorIs(t, svc.Update(context.Background(), &product), domain.ErrInvalidProduct)
		})
	}
}

func TestProductCreateAssignsID(t *testing.T) {
	repo := newFakeCatalog()
	svc := NewProductService(repo, nil)

	product := domain.Product{Name: "Lamp", CostPrice: 10, SellingPrice: 20}
	require.NoError(t, svc.Create(context.Background(), &product))
	assert.Equal(t, int64(1), product.ID)

	stored, err := svc.Get(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lamp", stored.Name)
}
