// Package pricing implements the forecasting and optimization engine behind
// price recommendations: multi-method demand forecasting, elasticity-driven
// grid-search optimization, inventory-aware adjustment and strategy
// simulation. Everything here is a pure function of its inputs; persistence
// and transport live with the callers.
package pricing

import (
	"math"

	"github.com/shopspring/decimal"
)

// roundCurrency rounds to 2 fractional digits, half up, the way money is
// quoted everywhere else in the system.
func roundCurrency(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

func round1(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v*1000) / 1000
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// popStdDev is the population standard deviation (N denominator), matching
// the coefficient-of-variation definition the confidence score uses.
func popStdDev(values []float64, mean float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)))
}
