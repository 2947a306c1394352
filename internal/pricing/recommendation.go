package pricing

import (
	"fmt"

	"github.com/optiprice/backend-go/internal/domain"
)

// Heuristic fallback thresholds, in units of forecast demand.
const (
	scarceStockFraction  = 0.3
	surplusStockFraction = 1.5
)

const (
	heuristicConfidence     = 0.75
	justificationConfidence = 0.85
)

var factorDescriptions = map[string]string{
	"cost_based":        "Cost-based pricing ensures profitability",
	"demand_elasticity": "Price sensitivity affects optimal pricing",
	"inventory_levels":  "Stock levels influence pricing strategy",
	"competition":       "Market positioning relative to competitors",
	"seasonality":       "Seasonal demand patterns",
	"quality_rating":    "Product quality justifies premium pricing",
}

// Recommender composes the forecaster, elasticity table, inventory adjuster
// and strategy simulator into a single price recommendation with a
// human-readable justification. It holds no mutable state of its own and is
// safe for concurrent use once constructed.
type Recommender struct {
	forecaster *Forecaster
	predictor  Predictor
}

// NewRecommender builds a Recommender around the given predictor; nil means
// the closed-form RatioPredictor.
func NewRecommender(predictor Predictor) *Recommender {
	if predictor == nil {
		predictor = NewRatioPredictor()
	}
	return &Recommender{
		forecaster: NewForecaster(),
		predictor:  predictor,
	}
}

// Recommend produces a complete recommendation for one product. The catalog
// is context only: it trains the predictor for this call. Every sub-step has
// a fallback, so the result is always well-formed.
func (r *Recommender) Recommend(p domain.Product, catalog []domain.Product) domain.Recommendation {
	elasticity := ElasticityForCategory(p.Category)

	bundle := r.forecaster.Ensemble(p.HistoricalDemand)
	demand := float64(bundle.Ensemble)
	if demand <= 0 {
		demand = DefaultDemandAssumption
	}

	status := ClassifyInventory(float64(p.StockAvailable), demand)

	r.predictor.Fit(catalog)
	basePrice, confidence, ok := r.predictor.Predict(p)
	if !ok {
		basePrice = heuristicBasePrice(p, demand)
		confidence = heuristicConfidence
	}

	recommended := AdjustPriceForInventory(basePrice, status)
	strategies := CompareStrategies(p, elasticity, demand)

	return domain.Recommendation{
		RecommendedPrice: roundCurrency(recommended),
		CurrentPrice:     roundCurrency(p.SellingPrice),
		Elasticity:       elasticity,
		InventoryStatus:  status,
		ModelConfidence:  round3(confidence),
		Strategies:       strategies,
		Justification:    buildJustification(p, recommended, bundle.Ensemble),
	}
}

// heuristicBasePrice is the untrained fallback: nudge the current price by
// how far stock sits from forecast demand.
func heuristicBasePrice(p domain.Product, demand float64) float64 {
	stock := float64(p.StockAvailable)
	switch {
	case stock < demand*scarceStockFraction:
		return p.SellingPrice * 1.10
	case stock > demand*surplusStockFraction:
		return p.SellingPrice * 0.95
	default:
		return p.SellingPrice * 1.02
	}
}

func buildJustification(p domain.Product, recommended float64, demandForecast int) domain.Justification {
	changePercent := 0.0
	if p.SellingPrice > 0 {
		changePercent = (recommended - p.SellingPrice) / p.SellingPrice * 100
	}

	direction := "no_change"
	if changePercent > 0 {
		direction = "increase"
	} else if changePercent < 0 {
		direction = "decrease"
	}

	factors := []domain.JustificationFactor{
		{
			Name:        "cost_based",
			Description: factorDescriptions["cost_based"],
			Impact:      fmt.Sprintf("Cost price of $%.2f sets the baseline", p.CostPrice),
		},
		{
			Name:        "demand_elasticity",
			Description: factorDescriptions["demand_elasticity"],
			Impact:      fmt.Sprintf("Demand forecast of %d units indicates market response", demandForecast),
		},
		{
			Name:        "inventory_levels",
			Description: factorDescriptions["inventory_levels"],
			Impact:      fmt.Sprintf("Current stock of %d units affects pricing urgency", p.StockAvailable),
		},
	}
	if p.CustomerRating != nil {
		factors = append(factors, domain.JustificationFactor{
			Name:        "quality_rating",
			Description: factorDescriptions["quality_rating"],
			Impact:      fmt.Sprintf("Customer rating of %.1f/5 supports pricing level", *p.CustomerRating),
		})
	}

	j := domain.Justification{
		RecommendedPrice:     roundCurrency(recommended),
		CurrentPrice:         roundCurrency(p.SellingPrice),
		PriceChangePercent:   round1(changePercent),
		PriceChangeDirection: direction,
		Factors:              factors,
		Confidence:           justificationConfidence,
	}
	j.Summary = justificationSummary(j)
	return j
}

func justificationSummary(j domain.Justification) string {
	change := j.PriceChangePercent
	if change < 0 {
		change = -change
	}
	switch j.PriceChangeDirection {
	case "increase":
		return fmt.Sprintf("Recommended price increase of %.1f%% to $%.2f to optimize profitability.", change, j.RecommendedPrice)
	case "decrease":
		return fmt.Sprintf("Recommended price decrease of %.1f%% to $%.2f to improve market competitiveness.", change, j.RecommendedPrice)
	default:
		return fmt.Sprintf("Recommended price of $%.2f maintains current pricing strategy.", j.RecommendedPrice)
	}
}
