package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optiprice/backend-go/internal/domain"
)

func TestRecommendWithTrainedPredictor(t *testing.T) {
	rating := 4.5
	p := domain.Product{
		ID:               1,
		Name:             "Laptop",
		Category:         "Electronics",
		CostPrice:        50,
		SellingPrice:     100,
		StockAvailable:   100,
		CustomerRating:   &rating,
		HistoricalDemand: domain.HistoricalDemand{"2022": 100, "2023": 120, "2024": 140},
	}
	catalog := ratioCatalog(12, 50, 100)

	rec := NewRecommender(nil).Recommend(p, catalog)

	// Predictor prices at cost times the catalog mean ratio of 2.0; stock of
	// 100 against an ensemble forecast of 147 is adequate, so no adjustment.
	assert.Equal(t, 100.0, rec.RecommendedPrice)
	assert.Equal(t, 100.0, rec.CurrentPrice)
	assert.Equal(t, -2.1, rec.Elasticity)
	assert.Equal(t, InventoryAdequate, rec.InventoryStatus)
	assert.Equal(t, 0.8, rec.ModelConfidence)
	assert.Len(t, rec.Strategies, 5)

	j := rec.Justification
	assert.Equal(t, "no_change", j.PriceChangeDirection)
	assert.Equal(t, 0.0, j.PriceChangePercent)
	assert.Equal(t, 0.85, j.Confidence)
	assert.Equal(t, "Recommended price of $100.00 maintains current pricing strategy.", j.Summary)

	require.Len(t, j.Factors, 4)
	assert.Equal(t, "cost_based", j.Factors[0].Name)
	assert.Equal(t, "Cost price of $50.00 sets the baseline", j.Factors[0].Impact)
	assert.Equal(t, "Demand forecast of 147 units indicates market response", j.Factors[1].Impact)
	assert.Equal(t, "Current stock of 100 units affects pricing urgency", j.Factors[2].Impact)
	assert.Equal(t, "Customer rating of 4.5/5 supports pricing level", j.Factors[3].Impact)
}

func TestRecommendHeuristicFallback(t *testing.T) {
	p := domain.Product{
		Name:             "Tent",
		Category:         "Outdoor",
		CostPrice:        50,
		SellingPrice:     60,
		StockAvailable:   10,
		HistoricalDemand: domain.HistoricalDemand{"2022": 100, "2023": 120, "2024": 140},
	}
	// Too few products to train the predictor.
	catalog := ratioCatalog(2, 50, 60)

	rec := NewRecommender(nil).Recommend(p, catalog)

	// Scarce stock (10 against 147 forecast): heuristic bumps the price 10%,
	// then the low-inventory multiplier adds 15% on top.
	assert.Equal(t, 75.9, rec.RecommendedPrice)
	assert.Equal(t, InventoryLow, rec.InventoryStatus)
	assert.Equal(t, 0.75, rec.ModelConfidence)
	assert.Equal(t, "increase", rec.Justification.PriceChangeDirection)
	assert.Equal(t, 26.5, rec.Justification.PriceChangePercent)

	// No rating, so only the three base factors.
	assert.Len(t, rec.Justification.Factors, 3)
}

func TestRecommendNoDemandHistory(t *testing.T) {
	p := domain.Product{
		Name:         "Mystery",
		Category:     "Home",
		CostPrice:    20,
		SellingPrice: 30,
	}

	rec := NewRecommender(nil).Recommend(p, nil)

	// Zero forecast falls back to the default demand assumption of 100;
	// 0 stock against 100 is low inventory.
	assert.Equal(t, InventoryLow, rec.InventoryStatus)
	assert.Positive(t, rec.RecommendedPrice)
	assert.Equal(t, "Demand forecast of 0 units indicates market response", rec.Justification.Factors[1].Impact)
}

func TestHeuristicBasePrice(t *testing.T) {
	p := domain.Product{SellingPrice: 100}

	assert.InDelta(t, 110.0, heuristicBasePrice(withStock(p, 10), 100), 1e-9)
	assert.InDelta(t, 95.0, heuristicBasePrice(withStock(p, 200), 100), 1e-9)
	assert.InDelta(t, 102.0, heuristicBasePrice(withStock(p, 80), 100), 1e-9)
}

func withStock(p domain.Product, stock int) domain.Product {
	p.StockAvailable = stock
	return p
}
