package pricing

import "math"

// Inventory statuses derived from the stock-to-demand ratio.
const (
	InventoryLow      = "low"
	InventoryMedium   = "medium"
	InventoryAdequate = "adequate"
	InventoryHigh     = "high"
	InventoryUnknown  = "unknown"
)

// DefaultDemandAssumption substitutes for an absent or invalid demand figure.
const DefaultDemandAssumption = 100.0

// Ratio thresholds; each boundary belongs to the higher bucket.
const (
	lowStockRatio      = 0.2
	mediumStockRatio   = 0.5
	adequateStockRatio = 0.8
)

// inventoryMultipliers adjusts a base price per inventory status: scarce
// stock supports a higher price, surplus stock a lower one.
var inventoryMultipliers = map[string]float64{
	InventoryLow:      1.15,
	InventoryMedium:   1.05,
	InventoryAdequate: 1.0,
	InventoryHigh:     0.95,
	InventoryUnknown:  1.0,
}

// ClassifyInventory buckets the stock-to-demand ratio. A non-finite input is
// "unknown"; a demand figure of zero or below is treated as invalid and
// replaced by DefaultDemandAssumption.
func ClassifyInventory(stock, demandForecast float64) string {
	if math.IsNaN(stock) || math.IsInf(stock, 0) || math.IsNaN(demandForecast) || math.IsInf(demandForecast, 0) {
		return InventoryUnknown
	}
	if demandForecast <= 0 {
		demandForecast = DefaultDemandAssumption
	}

	ratio := stock / demandForecast
	switch {
	case ratio < lowStockRatio:
		return InventoryLow
	case ratio < mediumStockRatio:
		return InventoryMedium
	case ratio < adequateStockRatio:
		return InventoryAdequate
	default:
		return InventoryHigh
	}
}

// InventoryMultiplier returns the price multiplier for a status; unknown
// statuses leave the price unchanged.
func InventoryMultiplier(status string) float64 {
	if m, ok := inventoryMultipliers[status]; ok {
		return m
	}
	return 1.0
}

// AdjustPriceForInventory applies the status multiplier to a base price.
func AdjustPriceForInventory(basePrice float64, status string) float64 {
	return basePrice * InventoryMultiplier(status)
}
