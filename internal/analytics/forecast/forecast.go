// Package forecast produces horizon forecasts with confidence intervals over
// a prepared time series. The engine dispatches a closed set of model
// selectors to automatic fitting strategies (ARIMA, exponential smoothing,
// theta), runs a single fit over the entire series, and assembles the future
// points with per-level interval bands.
package forecast

import (
	"errors"
	"math"
	"strings"
	"time"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/auspexhq/auspex/internal/analytics"
)

// Model selects the fitting strategy for a forecast. The set is closed:
// selectors outside it resolve to the exponential-smoothing strategy.
type Model int

const (
	ModelAuto Model = iota
	ModelARIMA
	ModelETS
	ModelTheta
)

// ParseModel maps a selector string to a Model. Unrecognized selectors
// resolve to ModelETS with ok=false, so transport-level validation can
// reject them while the engine itself always has a usable default.
func ParseModel(s string) (Model, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto":
		return ModelAuto, true
	case "arima":
		return ModelARIMA, true
	case "ets":
		return ModelETS, true
	case "theta":
		return ModelTheta, true
	default:
		return ModelETS, false
	}
}

// String returns the selector name
func (m Model) String() string {
	switch m {
	case ModelAuto:
		return "auto"
	case ModelARIMA:
		return "arima"
	case ModelETS:
		return "ets"
	case ModelTheta:
		return "theta"
	default:
		return "ets"
	}
}

// strategy is a fitting strategy behind a model selector.
type strategy interface {
	Name() string
	Forecast(values []float64, seasonLength, horizon int) (*prediction, error)
}

// prediction is a strategy's raw output: point estimates and the per-step
// standard error used to construct prediction intervals.
type prediction struct {
	Mean  []float64
	Sigma []float64
}

// strategy maps the selector to its fitting strategy. Auto and ARIMA share
// the automatic ARIMA; everything unrecognized falls back to ETS.
func (m Model) strategy() strategy {
	switch m {
	case ModelAuto, ModelARIMA:
		return autoARIMA{}
	case ModelTheta:
		return autoTheta{}
	default:
		return autoETS{}
	}
}

// ForecastPoint is a single forecast step
type ForecastPoint struct {
	Time  time.Time
	Value float64
}

// Request describes one forecast invocation. SeasonLength must already be
// resolved by the caller (explicit value or frequency default).
type Request struct {
	Horizon      int
	Model        Model
	SeasonLength int
	Levels       []int
}

// Result contains the horizon forecast, the interval bands per requested
// confidence level, and the name of the strategy that produced them.
type Result struct {
	Points    []ForecastPoint
	Intervals *IntervalSet
	ModelUsed string
}

// Engine runs forecast requests. It is stateless and safe for concurrent
// use; construct one at startup and share it.
type Engine struct{}

// Forecast fits the selected model once over the whole series and extends it
// Horizon steps. For each requested confidence level a symmetric band is
// built from the fit's standard error; levels for which no finite critical
// value exists are omitted from the interval set rather than failing the
// forecast. Fitting failures return a *analytics.ComputationError.
func (Engine) Forecast(series *analytics.Series, req Request) (*Result, error) {
	if series == nil || series.Len() < 2 {
		return nil, analytics.NewDataError("forecast requires a prepared series with at least 2 points")
	}
	if req.Horizon < 1 {
		return nil, analytics.NewDataError("horizon must be positive, got %d", req.Horizon)
	}
	season := req.SeasonLength
	if season < 1 {
		season = 1
	}

	strat := req.Model.strategy()
	pred, err := strat.Forecast(series.Values(), season, req.Horizon)
	if err != nil {
		var compErr *analytics.ComputationError
		if errors.As(err, &compErr) {
			return nil, err
		}
		return nil, analytics.WrapComputationError(err, "%s fit failed", strat.Name())
	}
	for _, v := range pred.Mean {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, analytics.NewComputationError("%s produced a non-finite forecast", strat.Name())
		}
	}

	points := make([]ForecastPoint, req.Horizon)
	last := series.LastTime()
	for h := 0; h < req.Horizon; h++ {
		points[h] = ForecastPoint{
			Time:  series.Frequency.Advance(last, h+1),
			Value: pred.Mean[h],
		}
	}

	intervals := NewIntervalSet()
	for _, level := range req.Levels {
		z, ok := criticalValue(level)
		if !ok {
			continue
		}
		lower := make([]float64, req.Horizon)
		upper := make([]float64, req.Horizon)
		for h := 0; h < req.Horizon; h++ {
			margin := z * pred.Sigma[h]
			lower[h] = pred.Mean[h] - margin
			upper[h] = pred.Mean[h] + margin
		}
		intervals.Add(level, lower, upper)
	}

	return &Result{
		Points:    points,
		Intervals: intervals,
		ModelUsed: strat.Name(),
	}, nil
}

// criticalValue returns the two-sided standard-normal critical value for a
// percent confidence level. ok is false when the level admits no finite
// critical value.
func criticalValue(level int) (float64, bool) {
	if level <= 0 || level >= 100 {
		return 0, false
	}
	p := (1 + float64(level)/100) / 2
	z := distuv.Normal{Mu: 0, Sigma: 1}.Quantile(p)
	if math.IsNaN(z) || math.IsInf(z, 0) {
		return 0, false
	}
	return z, true
}

// aicc is the corrected Akaike information criterion for a least-squares fit
// with n residuals and k parameters. Returns +Inf when n leaves no degrees
// of freedom for the correction.
func aicc(n int, sse float64, k int) float64 {
	nf := float64(n)
	kf := float64(k)
	if nf-kf-1 <= 0 {
		return math.Inf(1)
	}
	if sse < 1e-12 {
		sse = 1e-12
	}
	return nf*math.Log(sse/nf) + 2*kf + (2*kf*(kf+1))/(nf-kf-1)
}

// mean calculates the mean of a slice
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// variance calculates the population variance of a slice
func variance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mu := mean(values)
	sumSq := 0.0
	for _, v := range values {
		diff := v - mu
		sumSq += diff * diff
	}
	return sumSq / float64(len(values))
}

// autocorrelations calculates the autocorrelation function up to lag k
func autocorrelations(values []float64, k int) []float64 {
	n := len(values)
	if n == 0 || k <= 0 {
		return nil
	}

	mu := mean(values)
	total := 0.0
	for _, v := range values {
		diff := v - mu
		total += diff * diff
	}
	if total == 0 {
		return make([]float64, k)
	}

	acf := make([]float64, k)
	for lag := 1; lag <= k; lag++ {
		cov := 0.0
		for t := lag; t < n; t++ {
			cov += (values[t] - mu) * (values[t-lag] - mu)
		}
		acf[lag-1] = cov / total
	}
	return acf
}

// isSeasonal reports whether the series shows strong autocorrelation at the
// seasonal lag (above 0.5). Used to decide seasonal differencing and
// deseasonalization.
func isSeasonal(values []float64, period int) bool {
	n := len(values)
	if period <= 1 || n < period*2 {
		return false
	}

	mu := mean(values)
	numerator := 0.0
	denominator := 0.0
	for i := period; i < n; i++ {
		a := values[i] - mu
		b := values[i-period] - mu
		numerator += a * b
		denominator += a * a
	}
	if denominator == 0 {
		return false
	}
	return numerator/denominator > 0.5
}
