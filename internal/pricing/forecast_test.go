package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/optiprice/backend-go/internal/domain"
)

func TestForecasterLinearTrendingSeries(t *testing.T) {
	f := NewForecaster()
	h := domain.HistoricalDemand{"2022": 100, "2023": 120, "2024": 140}

	// Perfectly linear series: +20 per year, forecast at 2025.
	assert.Equal(t, 160, f.Linear(h))
	assert.Equal(t, 160, f.Exponential(h))
	assert.Equal(t, 120, f.MovingAverage(h))

	// Fewer than four points falls back to the last observation.
	assert.Equal(t, 140, f.Seasonal(h))
}

func TestForecasterEnsembleWeights(t *testing.T) {
	f := NewForecaster()
	h := domain.HistoricalDemand{"2022": 100, "2023": 120, "2024": 140}

	bundle := f.Ensemble(h)

	// 0.25*160 + 0.35*160 + 0.25*120 + 0.15*140 = 147
	assert.Equal(t, 147, bundle.Ensemble)
	assert.Equal(t, 0.89, bundle.Confidence)
}

func TestForecasterShortSeriesFallbacks(t *testing.T) {
	f := NewForecaster()

	empty := domain.HistoricalDemand{}
	assert.Equal(t, 0, f.Linear(empty))
	assert.Equal(t, 0, f.Exponential(empty))
	assert.Equal(t, 0, f.MovingAverage(empty))
	assert.Equal(t, 0, f.Seasonal(empty))

	single := domain.HistoricalDemand{"2024": 50}
	assert.Equal(t, 50, f.Linear(single))
	assert.Equal(t, 50, f.Exponential(single))
	assert.Equal(t, 50, f.MovingAverage(single))
	assert.Equal(t, 50, f.Seasonal(single))

	bundle := f.Ensemble(single)
	assert.Equal(t, 50, bundle.Ensemble)
	// All methods agree exactly, so confidence sits at the cap.
	assert.Equal(t, 0.95, bundle.Confidence)
}

func TestForecasterEmptySeriesConfidence(t *testing.T) {
	bundle := NewForecaster().Ensemble(domain.HistoricalDemand{})

	assert.Equal(t, 0, bundle.Ensemble)
	assert.Equal(t, 0.5, bundle.Confidence)
}

func TestForecasterNeverNegative(t *testing.T) {
	f := NewForecaster()
	declining := domain.HistoricalDemand{"2020": 30, "2021": 20, "2022": 10}

	assert.Equal(t, 0, f.Linear(declining))
	assert.GreaterOrEqual(t, f.Exponential(declining), 0)
	assert.GreaterOrEqual(t, f.MovingAverage(declining), 0)
	assert.GreaterOrEqual(t, f.Ensemble(declining).Ensemble, 0)
}

func TestForecasterSeasonalLongSeries(t *testing.T) {
	f := NewForecaster()
	h := domain.HistoricalDemand{"2020": 100, "2021": 110, "2022": 120, "2023": 130}

	// Linear trend over indices with zero residuals: 100 + 10*4 = 140.
	assert.Equal(t, 140, f.Seasonal(h))
}

func TestForecastMethodSelector(t *testing.T) {
	f := NewForecaster()
	h := domain.HistoricalDemand{"2022": 100, "2023": 120, "2024": 140}

	for _, method := range []string{MethodLinear, MethodExponential, MethodMovingAverage, MethodSeasonal} {
		_, err := f.Forecast(h, method)
		require.NoError(t, err, "method %s", method)
	}

	_, err := f.Forecast(h, "prophet")
	assert.ErrorIs(t, err, domain.ErrUnknownMethod)
}

func TestGrowthRateAndVolatility(t *testing.T) {
	h := domain.HistoricalDemand{"2022": 100, "2023": 120, "2024": 140}

	assert.Equal(t, 40.0, GrowthRate(h))
	assert.Equal(t, 13.61, Volatility(h))

	assert.Equal(t, 0.0, GrowthRate(domain.HistoricalDemand{"2024": 100}))
	assert.Equal(t, 0.0, Volatility(domain.HistoricalDemand{}))
}
