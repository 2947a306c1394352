package pricing

import (
	"math"
	"sort"

	"github.com/optiprice/backend-go/internal/domain"
)

type strategyDef struct {
	Name        string
	PriceFactor float64
	Description string
}

// strategyTable is the fixed menu of named pricing strategies. Order matters:
// CompareStrategies keeps this order for equal profits.
var strategyTable = []strategyDef{
	{"penetration", 0.9, "Low price to gain market share"},
	{"skimming", 1.3, "High price for premium positioning"},
	{"competitive", 1.0, "Match competitor pricing"},
	{"cost_plus", 1.2, "Cost plus 20% margin"},
	{"value_based", 1.1, "Price based on perceived value"},
}

// StrategyNames lists the supported strategies in table order.
func StrategyNames() []string {
	names := make([]string, len(strategyTable))
	for i, s := range strategyTable {
		names[i] = s.Name
	}
	return names
}

// SimulateStrategy prices the product under one named strategy and runs it
// through the same constant-elasticity demand model the optimizer uses.
// currentDemand of zero or below falls back to the default assumption.
func SimulateStrategy(p domain.Product, name string, elasticity, currentDemand float64) (domain.StrategyOutcome, error) {
	for _, def := range strategyTable {
		if def.Name == name {
			return simulate(p, def, elasticity, currentDemand), nil
		}
	}
	return domain.StrategyOutcome{}, domain.ErrUnknownStrategy
}

// CompareStrategies simulates every strategy in the table and ranks the
// outcomes by profit, highest first. The sort is stable, so ties keep the
// table's definition order.
func CompareStrategies(p domain.Product, elasticity, currentDemand float64) []domain.StrategyOutcome {
	outcomes := make([]domain.StrategyOutcome, len(strategyTable))
	for i, def := range strategyTable {
		outcomes[i] = simulate(p, def, elasticity, currentDemand)
	}
	sort.SliceStable(outcomes, func(i, j int) bool {
		return outcomes[i].Profit > outcomes[j].Profit
	})
	return outcomes
}

func simulate(p domain.Product, def strategyDef, elasticity, currentDemand float64) domain.StrategyOutcome {
	if elasticity == 0 {
		elasticity = DefaultElasticity
	}
	if currentDemand <= 0 {
		currentDemand = DefaultDemandAssumption
	}
	currentPrice := p.SellingPrice
	if currentPrice <= 0 {
		currentPrice = p.CostPrice * defaultMarkup
	}

	strategyPrice := p.CostPrice * def.PriceFactor

	demandChange := 1.0
	if currentPrice > 0 {
		demandChange = math.Pow(strategyPrice/currentPrice, elasticity)
	}
	if math.IsNaN(demandChange) || math.IsInf(demandChange, 0) {
		demandChange = 1.0
	}
	newDemand := currentDemand * demandChange

	revenue := strategyPrice * newDemand
	profit := (strategyPrice - p.CostPrice) * newDemand

	margin := 0.0
	if strategyPrice > 0 {
		margin = (strategyPrice - p.CostPrice) / strategyPrice * 100
	}
	priceChange := 0.0
	if currentPrice > 0 {
		priceChange = (strategyPrice - currentPrice) / currentPrice * 100
	}

	return domain.StrategyOutcome{
		Strategy:    def.Name,
		Description: def.Description,
		Price:       roundCurrency(strategyPrice),
		Demand:      math.Round(newDemand),
		Revenue:     roundCurrency(revenue),
		Profit:      roundCurrency(profit),
		Margin:      round1(margin),
		PriceChange: round1(priceChange),
	}
}
