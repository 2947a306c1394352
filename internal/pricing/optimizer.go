package pricing

import (
	"math"

	"github.com/optiprice/backend-go/internal/domain"
)

// Optimizer defaults, shared with the strategy simulator's demand model.
const (
	DefaultElasticity = -1.5
	defaultMarkup     = 1.2
	defaultMaxFactor  = 1.5
	defaultBaseDemand = 100.0
	defaultGridSteps  = 100
)

// OptimizeParams tunes the grid search. Zero values fall back to the
// documented defaults, so the zero struct is a valid input.
type OptimizeParams struct {
	// CurrentPrice anchors the demand curve; defaults to cost x 1.2.
	CurrentPrice float64
	// Elasticity is the constant-elasticity exponent; defaults to -1.5.
	// Sign is the caller's responsibility: a positive value produces a
	// demand curve that rises with price.
	Elasticity float64
	// MaxPriceFactor caps the grid at cost x factor; defaults to 1.5.
	MaxPriceFactor float64
	// BaseDemand is demand at the current price; defaults to 100.
	BaseDemand float64
	// Steps is the grid resolution, minimum 1; defaults to 100.
	Steps int
}

// OptimizePrice searches an evenly spaced price grid from cost to
// cost x maxFactor for the profit-maximizing point under a
// constant-elasticity demand curve. Deterministic: identical inputs always
// produce identical output. Non-finite profits are skipped; ties resolve to
// the lowest price.
func OptimizePrice(costPrice float64, params OptimizeParams) domain.OptimizationResult {
	currentPrice := params.CurrentPrice
	if currentPrice <= 0 {
		currentPrice = costPrice * defaultMarkup
	}
	elasticity := params.Elasticity
	if elasticity == 0 {
		elasticity = DefaultElasticity
	}
	maxFactor := params.MaxPriceFactor
	if maxFactor <= 0 {
		maxFactor = defaultMaxFactor
	}
	baseDemand := params.BaseDemand
	if baseDemand <= 0 {
		baseDemand = defaultBaseDemand
	}
	steps := params.Steps
	if steps < 1 {
		steps = defaultGridSteps
	}

	bestPrice := costPrice
	bestProfit := math.Inf(-1)
	found := false

	span := costPrice*maxFactor - costPrice
	for i := 0; i < steps; i++ {
		price := costPrice
		if steps > 1 {
			price = costPrice + span*float64(i)/float64(steps-1)
		}

		demand := ConstantElasticityDemand(baseDemand, price, currentPrice, elasticity)
		profit := (price - costPrice) * demand
		if math.IsNaN(profit) {
			continue
		}
		if !found || profit > bestProfit {
			bestPrice = price
			bestProfit = profit
			found = true
		}
	}

	if !found {
		// Every grid point degenerated (e.g. zero anchor price); anchor the
		// result to cost rather than failing.
		return domain.OptimizationResult{BestPrice: roundCurrency(costPrice), BestProfit: 0}
	}

	return domain.OptimizationResult{
		BestPrice:  roundCurrency(bestPrice),
		BestProfit: roundCurrency(bestProfit),
	}
}

// ConstantElasticityDemand models demand at price given demand baseDemand at
// anchorPrice: demand = base x (price/anchor)^elasticity.
func ConstantElasticityDemand(baseDemand, price, anchorPrice, elasticity float64) float64 {
	if anchorPrice == 0 {
		return math.NaN()
	}
	return baseDemand * math.Pow(price/anchorPrice, elasticity)
}
