package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/optiprice/backend-go/internal/domain"
)

func ratioCatalog(n int, cost, selling float64) []domain.Product {
	catalog := make([]domain.Product, n)
	for i := range catalog {
		catalog[i] = domain.Product{CostPrice: cost, SellingPrice: selling}
	}
	return catalog
}

func TestRatioPredictorUntrainedBelowMinimum(t *testing.T) {
	p := NewRatioPredictor()
	p.Fit(ratioCatalog(9, 50, 60))

	assert.False(t, p.Trained())

	price, confidence, ok := p.Predict(domain.Product{CostPrice: 50, SellingPrice: 55})
	assert.False(t, ok)
	assert.Equal(t, 55.0, price)
	assert.Equal(t, 0.0, confidence)
}

func TestRatioPredictorLearnsMeanRatio(t *testing.T) {
	p := NewRatioPredictor()
	p.Fit(ratioCatalog(12, 50, 60))

	assert.True(t, p.Trained())

	price, confidence, ok := p.Predict(domain.Product{CostPrice: 100})
	assert.True(t, ok)
	assert.InDelta(t, 120.0, price, 1e-9)
	assert.Equal(t, 0.8, confidence)
}

func TestRatioPredictorSkipsUnusableProducts(t *testing.T) {
	catalog := append(ratioCatalog(10, 50, 60),
		domain.Product{CostPrice: 0, SellingPrice: 60},
		domain.Product{CostPrice: 50, SellingPrice: 0},
	)

	p := NewRatioPredictor()
	p.Fit(catalog)
	assert.True(t, p.Trained())

	// A product without a cost price cannot be priced off the ratio.
	price, _, ok := p.Predict(domain.Product{CostPrice: 0, SellingPrice: 40})
	assert.False(t, ok)
	assert.Equal(t, 40.0, price)
}
