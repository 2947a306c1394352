// backend-go/internal/service/pricing_service.go
package service

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/optiprice/backend-go/internal/cache"
	"github.com/optiprice/backend-go/internal/domain"
	"github.com/optiprice/backend-go/internal/pricing"
	"github.com/optiprice/backend-go/internal/repository"
)

// maxOptimizeWorkers bounds the fan-out of a batch optimization pass; the
// database wrapper applies its own concurrency limit underneath.
const maxOptimizeWorkers = 8

// PricingService runs the optimization, simulation and recommendation flows
// on top of the catalog.
type PricingService struct {
	repo           repository.CatalogRepository
	forecaster     *pricing.Forecaster
	analyticsCache cache.AnalyticsCache
}

func NewPricingService(repo repository.CatalogRepository, analyticsCache cache.AnalyticsCache) *PricingService {
	if analyticsCache == nil {
		analyticsCache = cache.NewNoopAnalyticsCache()
	}
	return &PricingService{
		repo:           repo,
		forecaster:     pricing.NewForecaster(),
		analyticsCache: analyticsCache,
	}
}

// OptimizeAll runs the grid search for every product concurrently, then
// writes the whole pass back in one transaction so readers never see a
// half-optimized catalog.
func (s *PricingService) OptimizeAll(ctx context.Context) ([]domain.ProductOptimization, error) {
	products, err := s.repo.List(ctx, domain.ProductFilter{})
	if err != nil {
		return nil, err
	}

	results := make([]domain.ProductOptimization, len(products))

	g := new(errgroup.Group)
	g.SetLimit(maxOptimizeWorkers)

	for i, product := range products {
		g.Go(func() error {
			res := pricing.OptimizePrice(product.CostPrice, pricing.OptimizeParams{})
			results[i] = domain.ProductOptimization{
				ProductID:       product.ID,
				Name:            product.Name,
				CurrentPrice:    product.SellingPrice,
				OptimizedPrice:  res.BestPrice,
				OptimizedProfit: res.BestProfit,
				PriceChange:     res.BestPrice - product.SellingPrice,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	updates := make([]domain.PriceUpdate, len(results))
	for i, res := range results {
		updates[i] = domain.PriceUpdate{ProductID: res.ProductID, Price: res.OptimizedPrice}
	}
	if err := s.repo.UpdateOptimizedPrices(ctx, updates); err != nil {
		return nil, fmt.Errorf("write back optimization pass: %w", err)
	}

	return results, nil
}

// OptimizeProduct runs the grid search for a single product, anchored on its
// own price, demand history and category elasticity, and writes the result back.
func (s *PricingService) OptimizeProduct(ctx context.Context, id int64) (*domain.ProductOptimization, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	res := pricing.OptimizePrice(product.CostPrice, pricing.OptimizeParams{
		CurrentPrice: product.SellingPrice,
		Elasticity:   pricing.ElasticityForCategory(product.Category),
		BaseDemand:   s.demandForecast(product),
	})

	if err := s.repo.UpdateOptimizedPrice(ctx, product.ID, res.BestPrice); err != nil {
		return nil, fmt.Errorf("write back optimized price for product %d: %w", product.ID, err)
	}

	return &domain.ProductOptimization{
		ProductID:       product.ID,
		Name:            product.Name,
		CurrentPrice:    product.SellingPrice,
		OptimizedPrice:  res.BestPrice,
		OptimizedProfit: res.BestProfit,
		PriceChange:     res.BestPrice - product.SellingPrice,
	}, nil
}

// Recommend composes the full pricing recommendation for one product. The
// rest of the catalog serves as training context for the price predictor.
func (s *PricingService) Recommend(ctx context.Context, id int64) (*domain.Recommendation, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	catalog, err := s.repo.List(ctx, domain.ProductFilter{})
	if err != nil {
		return nil, err
	}

	training := make([]domain.Product, 0, len(catalog))
	for _, p := range catalog {
		training = append(training, *p)
	}

	rec := pricing.NewRecommender(nil).Recommend(*product, training)
	return &rec, nil
}

// SimulateStrategies simulates pricing strategies for one product. An empty
// strategy name simulates the whole table, sorted by profit; a named strategy
// yields a single outcome or domain.ErrUnknownStrategy.
func (s *PricingService) SimulateStrategies(ctx context.Context, id int64, strategy string) ([]domain.StrategyOutcome, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	elasticity := pricing.ElasticityForCategory(product.Category)
	demand := s.demandForecast(product)

	if strategy == "" {
		return pricing.CompareStrategies(*product, elasticity, demand), nil
	}

	outcome, err := pricing.SimulateStrategy(*product, strategy, elasticity, demand)
	if err != nil {
		return nil, err
	}
	return []domain.StrategyOutcome{outcome}, nil
}

// BatchOptimize runs one optimization flavor over an explicit set of product
// ids: "ml" composes full recommendations, "ab_testing" ranks the strategy
// table, "inventory" applies the stock-driven price adjustment. Ids that match
// nothing are skipped; an entirely unknown set is ErrProductNotFound.
func (s *PricingService) BatchOptimize(ctx context.Context, ids []int64, optimizationType string) (*domain.BatchOptimization, error) {
	if optimizationType == "" {
		optimizationType = "ml"
	}

	catalog, err := s.repo.List(ctx, domain.ProductFilter{})
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]*domain.Product, len(catalog))
	training := make([]domain.Product, 0, len(catalog))
	for _, p := range catalog {
		byID[p.ID] = p
		training = append(training, *p)
	}

	selected := make([]*domain.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			selected = append(selected, p)
		}
	}
	if len(selected) == 0 {
		return nil, domain.ErrProductNotFound
	}

	results := make([]domain.BatchOptimizeItem, 0, len(selected))

	switch optimizationType {
	case "ml":
		recommender := pricing.NewRecommender(nil)
		for _, p := range selected {
			rec := recommender.Recommend(*p, training)
			results = append(results, domain.BatchOptimizeItem{
				ProductID:    p.ID,
				Name:         p.Name,
				Optimization: &rec,
			})
		}

	case "ab_testing":
		for _, p := range selected {
			outcomes := pricing.CompareStrategies(*p, pricing.ElasticityForCategory(p.Category), s.demandForecast(p))
			item := domain.BatchOptimizeItem{
				ProductID:  p.ID,
				Name:       p.Name,
				Strategies: outcomes,
			}
			if len(outcomes) > 0 {
				item.BestStrategy = &outcomes[0]
			}
			results = append(results, item)
		}

	case "inventory":
		for _, p := range selected {
			status := pricing.ClassifyInventory(float64(p.StockAvailable), s.demandForecast(p))
			adjusted := pricing.AdjustPriceForInventory(p.SellingPrice, status)

			change := 0.0
			if p.SellingPrice > 0 {
				change = (adjusted - p.SellingPrice) / p.SellingPrice * 100
			}

			results = append(results, domain.BatchOptimizeItem{
				ProductID: p.ID,
				Name:      p.Name,
				Inventory: &domain.InventoryAdjustment{
					Status:           status,
					CurrentPrice:     p.SellingPrice,
					RecommendedPrice: round2(adjusted),
					PriceChange:      round1(change),
				},
			})
		}

	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownOptimizationType, optimizationType)
	}

	return &domain.BatchOptimization{
		Type:              optimizationType,
		ProductsProcessed: len(results),
		Results:           results,
	}, nil
}

// Dashboard aggregates the catalog-wide optimization overview: headline
// metrics, per-category revenue and margin, the elasticity heatmap, inventory
// status counts and the opportunity tallies derived from them.
func (s *PricingService) Dashboard(ctx context.Context) (*domain.Dashboard, error) {
	products, err := s.repo.List(ctx, domain.ProductFilter{})
	if err != nil {
		return nil, err
	}

	heatmap, err := s.ElasticityHeatmap(ctx)
	if err != nil {
		return nil, err
	}

	type categoryAccum struct {
		count     int
		revenue   float64
		marginSum float64
	}

	totalRevenue := 0.0
	marginSum := 0.0
	lowMargin := 0
	categories := make(map[string]*categoryAccum)
	inventoryStatus := map[string]int{
		pricing.InventoryLow:      0,
		pricing.InventoryMedium:   0,
		pricing.InventoryAdequate: 0,
		pricing.InventoryHigh:     0,
	}

	for _, p := range products {
		revenue := productRevenue(p)
		margin := profitMargin(p)

		totalRevenue += revenue
		marginSum += margin
		if margin < 20 {
			lowMargin++
		}

		acc := categories[p.Category]
		if acc == nil {
			acc = &categoryAccum{}
			categories[p.Category] = acc
		}
		acc.count++
		acc.revenue += revenue
		acc.marginSum += margin

		inventoryStatus[pricing.ClassifyInventory(float64(p.StockAvailable), s.demandForecast(p))]++
	}

	categorySummaries := make(map[string]domain.CategorySummary, len(categories))
	for name, acc := range categories {
		categorySummaries[name] = domain.CategorySummary{
			Count:     acc.count,
			Revenue:   round2(acc.revenue),
			AvgMargin: round2(acc.marginSum / float64(acc.count)),
		}
	}

	elastic := 0
	for _, row := range heatmap {
		if row.RangeIndex <= 1 {
			elastic++
		}
	}

	total := len(products)
	avgMargin := 0.0
	if total > 0 {
		avgMargin = marginSum / float64(total)
	}

	return &domain.Dashboard{
		Overview: domain.DashboardOverview{
			TotalProducts:   total,
			TotalRevenue:    round2(totalRevenue),
			AverageMargin:   round2(avgMargin),
			CategoriesCount: len(categories),
		},
		Categories:      categorySummaries,
		Heatmap:         heatmap,
		InventoryStatus: inventoryStatus,
		Opportunities: domain.OptimizationOpportunities{
			LowMarginProducts: lowMargin,
			HighStockProducts: inventoryStatus[pricing.InventoryHigh],
			LowStockProducts:  inventoryStatus[pricing.InventoryLow],
			ElasticCategories: elastic,
		},
	}, nil
}

// ElasticityHeatmap returns the category elasticity summary, cached until the
// catalog changes.
func (s *PricingService) ElasticityHeatmap(ctx context.Context) ([]domain.HeatmapRow, error) {
	if rows, ok, err := s.analyticsCache.GetHeatmap(ctx); err != nil {
		log.Warn().Err(err).Msg("heatmap cache read failed")
	} else if ok {
		return rows, nil
	}

	products, err := s.repo.List(ctx, domain.ProductFilter{})
	if err != nil {
		return nil, err
	}

	catalog := make([]domain.Product, 0, len(products))
	for _, p := range products {
		catalog = append(catalog, *p)
	}

	rows := pricing.ElasticityHeatmap(catalog)
	if err := s.analyticsCache.SetHeatmap(ctx, rows); err != nil {
		log.Warn().Err(err).Msg("heatmap cache write failed")
	}

	return rows, nil
}

// InventoryAnalysis groups every product by stock status and attaches
// aggregate restocking and clearance advice.
func (s *PricingService) InventoryAnalysis(ctx context.Context) (*domain.InventoryAnalysis, error) {
	if analysis, ok, err := s.analyticsCache.GetInventoryAnalysis(ctx); err != nil {
		log.Warn().Err(err).Msg("inventory analysis cache read failed")
	} else if ok {
		return analysis, nil
	}

	products, err := s.repo.List(ctx, domain.ProductFilter{})
	if err != nil {
		return nil, err
	}

	analysis := s.buildInventoryAnalysis(products)
	if err := s.analyticsCache.SetInventoryAnalysis(ctx, analysis); err != nil {
		log.Warn().Err(err).Msg("inventory analysis cache write failed")
	}

	return analysis, nil
}

func (s *PricingService) buildInventoryAnalysis(products []*domain.Product) *domain.InventoryAnalysis {
	statuses := []string{
		pricing.InventoryLow,
		pricing.InventoryMedium,
		pricing.InventoryAdequate,
		pricing.InventoryHigh,
		pricing.InventoryUnknown,
	}

	analysis := &domain.InventoryAnalysis{
		TotalProducts:    len(products),
		StatusCounts:     make(map[string]int, len(statuses)),
		ProductsByStatus: make(map[string][]domain.InventoryProduct, len(statuses)),
	}
	for _, status := range statuses {
		analysis.StatusCounts[status] = 0
		analysis.ProductsByStatus[status] = []domain.InventoryProduct{}
	}

	for _, product := range products {
		demand := s.demandForecast(product)
		stock := float64(product.StockAvailable)
		status := pricing.ClassifyInventory(stock, demand)

		analysis.StatusCounts[status]++
		analysis.ProductsByStatus[status] = append(analysis.ProductsByStatus[status], domain.InventoryProduct{
			ProductID:  product.ID,
			Name:       product.Name,
			Category:   product.Category,
			Stock:      product.StockAvailable,
			Demand:     int(demand),
			StockRatio: round2(stock / demand),
		})
	}

	if low := analysis.ProductsByStatus[pricing.InventoryLow]; len(low) > 0 {
		analysis.Recommendations = append(analysis.Recommendations, domain.InventoryAdvice{
			Type:     "low_stock",
			Message:  fmt.Sprintf("%d products have low stock levels", len(low)),
			Action:   "Consider increasing prices or restocking",
			Products: topProducts(low, 5),
		})
	}
	if high := analysis.ProductsByStatus[pricing.InventoryHigh]; len(high) > 0 {
		analysis.Recommendations = append(analysis.Recommendations, domain.InventoryAdvice{
			Type:     "high_stock",
			Message:  fmt.Sprintf("%d products have excess stock", len(high)),
			Action:   "Consider promotional pricing or bundling",
			Products: topProducts(high, 5),
		})
	}

	return analysis
}

// demandForecast is the demand figure analytics flows anchor on: the ensemble
// forecast, falling back to lifetime units sold, then to the default
// assumption for products with no signal at all.
func (s *PricingService) demandForecast(product *domain.Product) float64 {
	if v := s.forecaster.Ensemble(product.HistoricalDemand).Ensemble; v > 0 {
		return float64(v)
	}
	if product.UnitsSold > 0 {
		return float64(product.UnitsSold)
	}
	return pricing.DefaultDemandAssumption
}

func topProducts(products []domain.InventoryProduct, n int) []domain.InventoryProduct {
	if len(products) <= n {
		return products
	}
	return products[:n]
}

// profitMargin is the percentage margin a product earns at its current
// prices; zero when either price is unset.
func profitMargin(p *domain.Product) float64 {
	if p.SellingPrice == 0 || p.CostPrice == 0 {
		return 0
	}
	return round2((p.SellingPrice - p.CostPrice) / p.SellingPrice * 100)
}

// productRevenue is lifetime revenue at the current selling price.
func productRevenue(p *domain.Product) float64 {
	return p.SellingPrice * float64(p.UnitsSold)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
