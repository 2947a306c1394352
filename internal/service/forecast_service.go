// backend-go/internal/service/forecast_service.go
package service

import (
	"context"

	"github.com/optiprice/backend-go/internal/domain"
	"github.com/optiprice/backend-go/internal/pricing"
	"github.com/optiprice/backend-go/internal/repository"
)

// ForecastService runs demand forecasts over catalog products.
type ForecastService struct {
	repo       repository.CatalogRepository
	forecaster *pricing.Forecaster
}

func NewForecastService(repo repository.CatalogRepository) *ForecastService {
	return &ForecastService{
		repo:       repo,
		forecaster: pricing.NewForecaster(),
	}
}

// ForecastProduct returns the full multi-method forecast for one product.
func (s *ForecastService) ForecastProduct(ctx context.Context, id int64) (*domain.ProductForecast, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	forecast := s.buildForecast(product)
	return &forecast, nil
}

// ForecastMethod returns a single method's forecast value for one product.
// The method selector follows the same names as the ensemble components.
func (s *ForecastService) ForecastMethod(ctx context.Context, id int64, method string) (int, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	return s.forecaster.Forecast(product.HistoricalDemand, method)
}

// ForecastAll forecasts every product in the catalog.
func (s *ForecastService) ForecastAll(ctx context.Context) ([]domain.ProductForecast, error) {
	products, err := s.repo.List(ctx, domain.ProductFilter{})
	if err != nil {
		return nil, err
	}

	forecasts := make([]domain.ProductForecast, 0, len(products))
	for _, product := range products {
		forecasts = append(forecasts, s.buildForecast(product))
	}

	return forecasts, nil
}

func (s *ForecastService) buildForecast(product *domain.Product) domain.ProductForecast {
	return domain.ProductForecast{
		ProductID:     product.ID,
		Name:          product.Name,
		Category:      product.Category,
		CurrentDemand: int(product.HistoricalDemand.LastValue()),
		Historical:    product.HistoricalDemand,
		Forecast:      s.forecaster.Ensemble(product.HistoricalDemand),
		GrowthRate:    pricing.GrowthRate(product.HistoricalDemand),
		Volatility:    pricing.Volatility(product.HistoricalDemand),
	}
}
