package domain

import (
	"errors"
	"time"
)

var (
	// ErrProductNotFound is returned when a product id does not exist in the catalog.
	ErrProductNotFound = errors.New("product not found")
	// ErrUnknownStrategy is returned for a strategy name outside the fixed table.
	ErrUnknownStrategy = errors.New("unknown pricing strategy")
	// ErrUnknownMethod is returned for a forecast method selector outside the supported set.
	ErrUnknownMethod = errors.New("unknown forecast method")
	// ErrUnknownOptimizationType is returned for a batch optimization type outside ml/ab_testing/inventory.
	ErrUnknownOptimizationType = errors.New("unknown optimization type")
	// ErrInvalidProduct is returned when a product payload fails validation.
	ErrInvalidProduct = errors.New("invalid product")
)

// Product is a catalog item snapshot. HistoricalDemand maps year labels to
// observed demand; OptimizedPrice is the only field the pricing engine ever
// writes back.
type Product struct {
	ID               int64            `json:"id" db:"id"`
	Name             string           `json:"name" db:"name"`
	Category         string           `json:"category" db:"category"`
	Description      string           `json:"description" db:"description"`
	CostPrice        float64          `json:"cost_price" db:"cost_price"`
	SellingPrice     float64          `json:"selling_price" db:"selling_price"`
	StockAvailable   int              `json:"stock_available" db:"stock_available"`
	UnitsSold        int              `json:"units_sold" db:"units_sold"`
	CustomerRating   *float64         `json:"customer_rating,omitempty" db:"customer_rating"`
	HistoricalDemand HistoricalDemand `json:"historical_demand" db:"historical_demand"`
	OptimizedPrice   *float64         `json:"optimized_price,omitempty" db:"optimized_price"`
	CreatedAt        time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at" db:"updated_at"`
}

// ProductFilter narrows catalog listings.
type ProductFilter struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Limit    int    `json:"limit"`
	Offset   int    `json:"offset"`
}

// ForecastBundle is the full multi-method forecast for one series.
type ForecastBundle struct {
	Linear        int     `json:"linear"`
	Exponential   int     `json:"exponential"`
	MovingAverage int     `json:"moving_average"`
	Seasonal      int     `json:"seasonal"`
	Ensemble      int     `json:"ensemble"`
	Confidence    float64 `json:"confidence"`
}

// ProductForecast pairs a product with its forecast bundle plus the trend
// summary exposed by the advanced forecast endpoint.
type ProductForecast struct {
	ProductID     int64            `json:"product_id"`
	Name          string           `json:"name"`
	Category      string           `json:"category"`
	CurrentDemand int              `json:"current_demand"`
	Historical    HistoricalDemand `json:"historical_data"`
	Forecast      ForecastBundle   `json:"forecast"`
	GrowthRate    float64          `json:"growth_rate"`
	Volatility    float64          `json:"volatility"`
}

// OptimizationResult is the grid-search outcome for one product.
type OptimizationResult struct {
	BestPrice  float64 `json:"best_price"`
	BestProfit float64 `json:"best_profit"`
}

// ProductOptimization reports one product's write-back during a batch pass.
type ProductOptimization struct {
	ProductID       int64   `json:"product_id"`
	Name            string  `json:"name"`
	CurrentPrice    float64 `json:"current_price"`
	OptimizedPrice  float64 `json:"optimized_price"`
	OptimizedProfit float64 `json:"optimized_profit"`
	PriceChange     float64 `json:"price_change"`
}

// PriceUpdate is one pending optimized-price write-back.
type PriceUpdate struct {
	ProductID int64
	Price     float64
}

// StrategyOutcome is one simulated pricing strategy.
type StrategyOutcome struct {
	Strategy    string  `json:"strategy"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Demand      float64 `json:"demand"`
	Revenue     float64 `json:"revenue"`
	Profit      float64 `json:"profit"`
	Margin      float64 `json:"margin"`
	PriceChange float64 `json:"price_change"`
}

// HeatmapRow is one category's elasticity summary.
type HeatmapRow struct {
	Category     string  `json:"category"`
	Elasticity   float64 `json:"elasticity"`
	RangeIndex   int     `json:"range_index"`
	ProductCount int     `json:"product_count"`
	Insight      string  `json:"insight"`
}

// JustificationFactor is one templated explanation behind a recommendation.
type JustificationFactor struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Impact      string `json:"impact"`
}

// Justification explains a price recommendation in human-readable terms.
type Justification struct {
	RecommendedPrice     float64               `json:"recommended_price"`
	CurrentPrice         float64               `json:"current_price"`
	PriceChangePercent   float64               `json:"price_change_percent"`
	PriceChangeDirection string                `json:"price_change_direction"`
	Factors              []JustificationFactor `json:"factors"`
	Summary              string                `json:"summary"`
	Confidence           float64               `json:"confidence"`
}

// Recommendation is the composed pricing recommendation for one product.
// It is derived fresh per call and never persisted as a whole.
type Recommendation struct {
	RecommendedPrice float64           `json:"recommended_price"`
	CurrentPrice     float64           `json:"current_price"`
	Elasticity       float64           `json:"elasticity"`
	InventoryStatus  string            `json:"inventory_status"`
	ModelConfidence  float64           `json:"model_confidence"`
	Strategies       []StrategyOutcome `json:"ab_testing_results"`
	Justification    Justification     `json:"justification"`
}

// InventoryProduct is one product's stock position inside an inventory report.
type InventoryProduct struct {
	ProductID  int64   `json:"product_id"`
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	Stock      int     `json:"stock"`
	Demand     int     `json:"demand"`
	StockRatio float64 `json:"stock_ratio"`
}

// InventoryAdvice is an aggregate action suggestion for a status group.
type InventoryAdvice struct {
	Type     string             `json:"type"`
	Message  string             `json:"message"`
	Action   string             `json:"action"`
	Products []InventoryProduct `json:"products"`
}

// InventoryAnalysis summarizes stock status across the catalog.
type InventoryAnalysis struct {
	TotalProducts    int                           `json:"total_products"`
	StatusCounts     map[string]int                `json:"inventory_status"`
	ProductsByStatus map[string][]InventoryProduct `json:"products_by_status"`
	Recommendations  []InventoryAdvice             `json:"recommendations"`
}

// DashboardOverview carries the catalog-wide headline metrics.
type DashboardOverview struct {
	TotalProducts   int     `json:"total_products"`
	TotalRevenue    float64 `json:"total_revenue"`
	AverageMargin   float64 `json:"average_margin"`
	CategoriesCount int     `json:"categories_count"`
}

// CategorySummary is one category's slice of the dashboard.
type CategorySummary struct {
	Count     int     `json:"count"`
	Revenue   float64 `json:"revenue"`
	AvgMargin float64 `json:"avg_margin"`
}

// OptimizationOpportunities counts where the catalog has pricing headroom.
type OptimizationOpportunities struct {
	LowMarginProducts int `json:"low_margin_products"`
	HighStockProducts int `json:"high_stock_products"`
	LowStockProducts  int `json:"low_stock_products"`
	ElasticCategories int `json:"elastic_products"`
}

// Dashboard aggregates the optimization overview served to the frontend.
type Dashboard struct {
	Overview        DashboardOverview          `json:"overview"`
	Categories      map[string]CategorySummary `json:"categories"`
	Heatmap         []HeatmapRow               `json:"elasticity_heatmap"`
	InventoryStatus map[string]int             `json:"inventory_status"`
	Opportunities   OptimizationOpportunities  `json:"optimization_opportunities"`
}

// InventoryAdjustment is the inventory-driven price move for one product
// inside a batch pass.
type InventoryAdjustment struct {
	Status           string  `json:"inventory_status"`
	CurrentPrice     float64 `json:"current_price"`
	RecommendedPrice float64 `json:"recommended_price"`
	PriceChange      float64 `json:"price_change"`
}

// BatchOptimizeItem is one product's outcome in a batch pass; exactly one
// payload group is populated, matching the pass type.
type BatchOptimizeItem struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"product_name"`

	Optimization *Recommendation `json:"optimization,omitempty"`

	Strategies   []StrategyOutcome `json:"strategies,omitempty"`
	BestStrategy *StrategyOutcome  `json:"best_strategy,omitempty"`

	Inventory *InventoryAdjustment `json:"inventory,omitempty"`
}

// BatchOptimization reports an ids-scoped optimization pass.
type BatchOptimization struct {
	Type              string              `json:"optimization_type"`
	ProductsProcessed int                 `json:"products_processed"`
	Results           []BatchOptimizeItem `json:"results"`
}
