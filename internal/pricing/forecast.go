package pricing

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/optiprice/backend-go/internal/domain"
)

const (
	// smoothingAlpha is the level-smoothing factor for Holt exponential smoothing.
	smoothingAlpha = 0.3
	// trendBeta weights the trend update in Holt smoothing.
	trendBeta = 0.2
	// defaultWindow is the moving-average window width.
	defaultWindow = 3
)

// Method names accepted by Forecaster.Forecast.
const (
	MethodLinear        = "linear"
	MethodExponential   = "exponential"
	MethodMovingAverage = "moving_average"
	MethodSeasonal      = "seasonal"
)

// ensembleWeights combines the four methods into the ensemble forecast.
var ensembleWeights = map[string]float64{
	MethodLinear:        0.25,
	MethodExponential:   0.35,
	MethodMovingAverage: 0.25,
	MethodSeasonal:      0.15,
}

// Forecaster produces next-period demand forecasts from a sparse yearly
// series. Methods degrade to the last known value (or zero) when the series
// is too short, and never return a negative forecast.
type Forecaster struct {
	// Window is the moving-average window width; zero means the default of 3.
	Window int
}

func NewForecaster() *Forecaster {
	return &Forecaster{Window: defaultWindow}
}

// Linear fits a first-degree least-squares polynomial of demand against the
// integer year and extrapolates one year past the latest observation.
func (f *Forecaster) Linear(h domain.HistoricalDemand) int {
	years, values := h.SortedSeries()
	if len(values) < 2 {
		return lastValueFallback(h)
	}

	xs := make([]float64, len(years))
	for i, y := range years {
		xs[i] = float64(y)
	}
	intercept, slope := stat.LinearRegression(xs, values, nil, false)
	forecast := intercept + slope*float64(years[len(years)-1]+1)
	return clampForecast(forecast)
}

// Exponential applies Holt-style exponential smoothing with a trend
// component and forecasts one period ahead.
func (f *Forecaster) Exponential(h domain.HistoricalDemand) int {
	_, values := h.SortedSeries()
	if len(values) < 2 {
		return lastValueFallback(h)
	}

	level := values[0]
	trend := values[1] - values[0]
	for i := 1; i < len(values); i++ {
		next := smoothingAlpha*values[i] + (1-smoothingAlpha)*(level+trend)
		trend = trendBeta*(next-level) + (1-trendBeta)*trend
		level = next
	}

	return clampForecast(level + trend)
}

// MovingAverage averages a sliding window over the series and projects the
// averaged trend one step forward.
func (f *Forecaster) MovingAverage(h domain.HistoricalDemand) int {
	window := f.Window
	if window <= 0 {
		window = defaultWindow
	}

	_, values := h.SortedSeries()
	if len(values) < window {
		return lastValueFallback(h)
	}

	averages := make([]float64, 0, len(values)-window+1)
	for i := window - 1; i < len(values); i++ {
		averages = append(averages, stat.Mean(values[i-window+1:i+1], nil))
	}

	if len(averages) < 2 {
		return clampForecast(averages[len(averages)-1])
	}

	trend := (averages[len(averages)-1] - averages[0]) / float64(len(averages))
	return clampForecast(averages[len(averages)-1] + trend)
}

// Seasonal fits a linear trend over index positions, treats the mean residual
// as a flat seasonal component, and forecasts trend plus seasonality at the
// next index.
func (f *Forecaster) Seasonal(h domain.HistoricalDemand) int {
	_, values := h.SortedSeries()
	if len(values) < 4 {
		return lastValueFallback(h)
	}

	xs := make([]float64, len(values))
	for i := range values {
		xs[i] = float64(i)
	}
	intercept, slope := stat.LinearRegression(xs, values, nil, false)

	var residuals float64
	for i, v := range values {
		residuals += v - (intercept + slope*float64(i))
	}
	seasonal := residuals / float64(len(values))

	next := intercept + slope*float64(len(values))
	return clampForecast(next + seasonal)
}

// Ensemble runs all four methods and combines them with fixed weights,
// attaching a confidence score derived from how much the methods agree.
func (f *Forecaster) Ensemble(h domain.HistoricalDemand) domain.ForecastBundle {
	bundle := domain.ForecastBundle{
		Linear:        f.Linear(h),
		Exponential:   f.Exponential(h),
		MovingAverage: f.MovingAverage(h),
		Seasonal:      f.Seasonal(h),
	}

	weighted := ensembleWeights[MethodLinear]*float64(bundle.Linear) +
		ensembleWeights[MethodExponential]*float64(bundle.Exponential) +
		ensembleWeights[MethodMovingAverage]*float64(bundle.MovingAverage) +
		ensembleWeights[MethodSeasonal]*float64(bundle.Seasonal)
	bundle.Ensemble = int(math.Max(0, weighted))

	bundle.Confidence = forecastConfidence([]float64{
		float64(bundle.Linear),
		float64(bundle.Exponential),
		float64(bundle.MovingAverage),
		float64(bundle.Seasonal),
	})

	return bundle
}

// Forecast runs a single named method. Unknown names are an invalid-argument
// condition for the caller to surface.
func (f *Forecaster) Forecast(h domain.HistoricalDemand, method string) (int, error) {
	switch method {
	case MethodLinear:
		return f.Linear(h), nil
	case MethodExponential:
		return f.Exponential(h), nil
	case MethodMovingAverage:
		return f.MovingAverage(h), nil
	case MethodSeasonal:
		return f.Seasonal(h), nil
	default:
		return 0, domain.ErrUnknownMethod
	}
}

// GrowthRate is the percent change from the first to the last observation.
func GrowthRate(h domain.HistoricalDemand) float64 {
	_, values := h.SortedSeries()
	if len(values) < 2 || values[0] <= 0 {
		return 0
	}
	return round2((values[len(values)-1] - values[0]) / values[0] * 100)
}

// Volatility is the coefficient of variation of the series, in percent.
func Volatility(h domain.HistoricalDemand) float64 {
	_, values := h.SortedSeries()
	if len(values) < 2 {
		return 0
	}
	mean := stat.Mean(values, nil)
	if mean <= 0 {
		return 0
	}
	return round2(popStdDev(values, mean) / mean * 100)
}

// forecastConfidence maps the coefficient of variation across method outputs
// to a score in [0.1, 0.95]; total disagreement scores low, agreement high.
func forecastConfidence(forecasts []float64) float64 {
	mean := stat.Mean(forecasts, nil)
	if mean == 0 {
		return 0.5
	}
	cv := popStdDev(forecasts, mean) / mean
	return round2(clamp(1-cv, 0.1, 0.95))
}

func lastValueFallback(h domain.HistoricalDemand) int {
	return clampForecast(h.LastValue())
}

func clampForecast(v float64) int {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	return int(v)
}
