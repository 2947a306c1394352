package pricing

import (
	"gonum.org/v1/gonum/stat"

	"github.com/optiprice/backend-go/internal/domain"
)

// Predictor estimates a base recommended price for a product. It exists so a
// real predictive model can replace the shipped closed-form rule without
// touching the recommendation composer. Implementations must be
// deterministic; nothing is learned across calls beyond Fit.
type Predictor interface {
	// Fit prepares the predictor from the current catalog. It never fails;
	// with too little data the predictor simply reports itself untrained.
	Fit(catalog []domain.Product)
	// Predict returns a base price and confidence for the product. ok is
	// false when the predictor is untrained or the product is unusable, in
	// which case the caller falls back to its own heuristic.
	Predict(p domain.Product) (price, confidence float64, ok bool)
}

// minTrainingProducts is the catalog size below which the predictor stays
// untrained.
const minTrainingProducts = 10

// ratioPredictorConfidence is fixed: the closed-form rule carries no
// per-product uncertainty estimate.
const ratioPredictorConfidence = 0.8

// RatioPredictor is the deterministic closed-form stand-in for a trained
// model: it learns only the catalog's mean selling-to-cost ratio and prices a
// product at cost times that ratio.
type RatioPredictor struct {
	meanRatio float64
	trained   bool
}

func NewRatioPredictor() *RatioPredictor {
	return &RatioPredictor{}
}

func (r *RatioPredictor) Fit(catalog []domain.Product) {
	ratios := make([]float64, 0, len(catalog))
	for _, p := range catalog {
		if p.CostPrice > 0 && p.SellingPrice > 0 {
			ratios = append(ratios, p.SellingPrice/p.CostPrice)
		}
	}

	if len(ratios) < minTrainingProducts {
		r.trained = false
		r.meanRatio = 0
		return
	}

	r.meanRatio = stat.Mean(ratios, nil)
	r.trained = true
}

func (r *RatioPredictor) Trained() bool {
	return r.trained
}

func (r *RatioPredictor) Predict(p domain.Product) (float64, float64, bool) {
	if !r.trained || p.CostPrice <= 0 {
		return p.SellingPrice, 0, false
	}
	return p.CostPrice * r.meanRatio, ratioPredictorConfidence, true
}
