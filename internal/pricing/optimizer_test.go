package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOptimizePriceElasticDemandPushesToGridCap(t *testing.T) {
	// With elasticity -1.5 the analytic optimum sits at cost*e/(1+e) = 150,
	// beyond the grid cap of cost*1.5, so the search lands on the cap.
	res := OptimizePrice(50, OptimizeParams{CurrentPrice: 75})

	assert.Equal(t, 75.0, res.BestPrice)
	// Demand at the anchor price is the base demand, so profit is (75-50)*100.
	assert.Equal(t, 2500.0, res.BestProfit)
}

func TestOptimizePriceDefaults(t *testing.T) {
	res := OptimizePrice(50, OptimizeParams{})

	assert.Equal(t, 75.0, res.BestPrice)
	assert.InDelta(t, 1788.85, res.BestProfit, 0.01)
}

func TestOptimizePriceMatchesBruteForce(t *testing.T) {
	const (
		cost       = 40.0
		current    = 55.0
		elasticity = -2.1
		base       = 120.0
		steps      = 100
	)

	bestPrice := 0.0
	bestProfit := math.Inf(-1)
	span := cost*1.5 - cost
	for i := 0; i < steps; i++ {
		price := cost + span*float64(i)/float64(steps-1)
		profit := (price - cost) * base * math.Pow(price/current, elasticity)
		if profit > bestProfit {
			bestPrice = price
			bestProfit = profit
		}
	}

	res := OptimizePrice(cost, OptimizeParams{
		CurrentPrice: current,
		Elasticity:   elasticity,
		BaseDemand:   base,
	})

	assert.InDelta(t, bestPrice, res.BestPrice, 0.01)
	assert.InDelta(t, bestProfit, res.BestProfit, 0.01)
}

func TestOptimizePriceDeterministic(t *testing.T) {
	params := OptimizeParams{CurrentPrice: 80, Elasticity: -1.8, BaseDemand: 250}

	first := OptimizePrice(60, params)
	second := OptimizePrice(60, params)

	assert.Equal(t, first, second)
}

func TestOptimizePriceZeroCost(t *testing.T) {
	// Zero cost degenerates the anchor price; the result falls back to cost.
	res := OptimizePrice(0, OptimizeParams{})

	assert.Equal(t, 0.0, res.BestPrice)
	assert.Equal(t, 0.0, res.BestProfit)
}

func TestOptimizePricePositiveElasticity(t *testing.T) {
	// A rising demand curve pushes the optimum to the top of the grid.
	res := OptimizePrice(50, OptimizeParams{CurrentPrice: 60, Elasticity: 1.0})

	assert.Equal(t, 75.0, res.BestPrice)
}

func TestConstantElasticityDemand(t *testing.T) {
	assert.Equal(t, 100.0, ConstantElasticityDemand(100, 60, 60, -1.5))
	assert.Less(t, ConstantElasticityDemand(100, 70, 60, -1.5), 100.0)
	assert.Greater(t, ConstantElasticityDemand(100, 50, 60, -1.5), 100.0)
	assert.True(t, math.IsNaN(ConstantElasticityDemand(100, 60, 0, -1.5)))
}
