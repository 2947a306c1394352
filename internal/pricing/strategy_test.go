package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optiprice/backend-go/internal/domain"
)

func TestStrategyNames(t *testing.T) {
	assert.Equal(t,
		[]string{"penetration", "skimming", "competitive", "cost_plus", "value_based"},
		StrategyNames())
}

func TestSimulateStrategyCostPlus(t *testing.T) {
	p := domain.Product{CostPrice: 50, SellingPrice: 60}

	outcome, err := SimulateStrategy(p, "cost_plus", -1.5, 100)
	require.NoError(t, err)

	// cost_plus prices at cost*1.2 = 60, which equals the current price, so
	// demand is unchanged.
	assert.Equal(t, 60.0, outcome.Price)
	assert.Equal(t, 100.0, outcome.Demand)
	assert.Equal(t, 6000.0, outcome.Revenue)
	assert.Equal(t, 1000.0, outcome.Profit)
	assert.Equal(t, 16.7, outcome.Margin)
	assert.Equal(t, 0.0, outcome.PriceChange)
}

func TestSimulateStrategyUnknown(t *testing.T) {
	_, err := SimulateStrategy(domain.Product{CostPrice: 50}, "loss_leader", -1.5, 100)
	assert.ErrorIs(t, err, domain.ErrUnknownStrategy)
}

func TestCompareStrategiesSortedByProfit(t *testing.T) {
	p := domain.Product{CostPrice: 50, SellingPrice: 60}

	outcomes := CompareStrategies(p, -1.5, 100)
	require.Len(t, outcomes, 5)

	for i := 1; i < len(outcomes); i++ {
		assert.GreaterOrEqual(t, outcomes[i-1].Profit, outcomes[i].Profit)
	}

	// With moderate elasticity the premium strategies win.
	assert.Equal(t, "skimming", outcomes[0].Strategy)
	assert.Equal(t, "cost_plus", outcomes[1].Strategy)
	assert.InDelta(t, 1330.28, outcomes[0].Profit, 0.02)

	// Selling below cost loses money.
	assert.Equal(t, "penetration", outcomes[4].Strategy)
	assert.Negative(t, outcomes[4].Profit)
}

func TestCompareStrategiesStableOnTies(t *testing.T) {
	// Zero cost collapses every strategy price to zero, so all profits tie and
	// the table order must be preserved.
	p := domain.Product{CostPrice: 0, SellingPrice: 10}

	outcomes := CompareStrategies(p, -1.5, 100)
	require.Len(t, outcomes, 5)

	assert.Equal(t, StrategyNames(), []string{
		outcomes[0].Strategy,
		outcomes[1].Strategy,
		outcomes[2].Strategy,
		outcomes[3].Strategy,
		outcomes[4].Strategy,
	})
}

func TestSimulateStrategyFallbacks(t *testing.T) {
	// No selling price: the anchor falls back to cost*1.2.
	p := domain.Product{CostPrice: 50}

	outcome, err := SimulateStrategy(p, "cost_plus", 0, 0)
	require.NoError(t, err)

	assert.Equal(t, 60.0, outcome.Price)
	assert.Equal(t, 100.0, outcome.Demand)
	assert.Equal(t, 0.0, outcome.PriceChange)
}
