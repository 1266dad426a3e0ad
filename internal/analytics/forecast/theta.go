package forecast

import (
	"math"

	"github.com/auspexhq/auspex/internal/analytics"
)

// autoTheta implements the standard two-line theta method: the forecast is
// the average of a fitted linear trend (theta = 0) and simple exponential
// smoothing applied to the theta = 2 line. Seasonal series are
// deseasonalized first with multiplicative indices and reseasonalized on the
// way out.
type autoTheta struct{}

func (autoTheta) Name() string { return "AutoTheta" }

func (autoTheta) Forecast(values []float64, seasonLength, horizon int) (*prediction, error) {
	n := len(values)
	if n < 3 {
		return nil, analytics.NewComputationError("series too short for theta")
	}

	var indices []float64
	if seasonLength > 1 && n >= 2*seasonLength && isSeasonal(values, seasonLength) {
		if idx, ok := seasonalIndices(values, seasonLength); ok {
			indices = idx
		}
	}

	work := make([]float64, n)
	for t, v := range values {
		if indices != nil {
			work[t] = v / indices[t%seasonLength]
		} else {
			work[t] = v
		}
	}

	intercept, slope := linearFit(work)

	// The theta = 2 line doubles the local curvature around the trend.
	theta2 := make([]float64, n)
	for t, v := range work {
		theta2[t] = 2*v - (intercept + slope*float64(t))
	}

	// SES over the theta = 2 line, alpha by one-step SSE.
	var (
		bestSSE    = math.Inf(1)
		bestFitted []float64
		bestLevel  float64
	)
	for _, alpha := range alphaGrid {
		fitted, level := sesCurve(theta2, alpha)
		sse := 0.0
		for i := 1; i < n; i++ {
			err := theta2[i] - fitted[i]
			sse += err * err
		}
		if sse < bestSSE {
			bestSSE = sse
			bestFitted = fitted
			bestLevel = level
		}
	}

	// In-sample residuals of the combined forecast on the original scale.
	residuals := make([]float64, 0, n-1)
	for t := 1; t < n; t++ {
		combined := 0.5*(intercept+slope*float64(t)) + 0.5*bestFitted[t]
		if indices != nil {
			combined *= indices[t%seasonLength]
		}
		residuals = append(residuals, values[t]-combined)
	}
	sigma0 := 0.0
	if len(residuals) >= 2 {
		mu := mean(residuals)
		sumSq := 0.0
		for _, r := range residuals {
			diff := r - mu
			sumSq += diff * diff
		}
		sigma0 = math.Sqrt(sumSq / float64(len(residuals)-1))
	}

	means := make([]float64, horizon)
	sigmas := make([]float64, horizon)
	for h := 1; h <= horizon; h++ {
		lineVal := intercept + slope*float64(n-1+h)
		combined := 0.5*lineVal + 0.5*bestLevel
		if indices != nil {
			combined *= indices[(n+h-1)%seasonLength]
		}
		means[h-1] = combined
		sigmas[h-1] = sigma0 * math.Sqrt(float64(h))
	}
	return &prediction{Mean: means, Sigma: sigmas}, nil
}

// seasonalIndices derives multiplicative seasonal indices from the ratio of
// the series to its centered moving average. It reports false when any
// seasonal phase has no usable ratio or an index comes out nonpositive, in
// which case the caller should treat the series as nonseasonal.
func seasonalIndices(values []float64, period int) ([]float64, bool) {
	cma, ok := centeredMovingAverage(values, period)

	sums := make([]float64, period)
	counts := make([]int, period)
	for t := range values {
		if !ok[t] || cma[t] == 0 {
			continue
		}
		sums[t%period] += values[t] / cma[t]
		counts[t%period]++
	}

	indices := make([]float64, period)
	for i := range indices {
		if counts[i] == 0 {
			return nil, false
		}
		indices[i] = sums[i] / float64(counts[i])
	}

	// Normalize to mean 1 so deseasonalizing preserves the series level.
	m := mean(indices)
	if m == 0 {
		return nil, false
	}
	for i := range indices {
		indices[i] /= m
		if indices[i] <= 0 || math.IsNaN(indices[i]) || math.IsInf(indices[i], 0) {
			return nil, false
		}
	}
	return indices, true
}

// centeredMovingAverage computes the centered moving average of the given
// window. Even windows use the usual two-step average of the two straddling
// windows. ok[t] reports whether the full window fits inside the series.
func centeredMovingAverage(values []float64, window int) ([]float64, []bool) {
	n := len(values)
	out := make([]float64, n)
	ok := make([]bool, n)

	half := window / 2
	for t := 0; t < n; t++ {
		if window%2 == 1 {
			lo, hi := t-half, t+half
			if lo < 0 || hi >= n {
				continue
			}
			out[t] = mean(values[lo : hi+1])
			ok[t] = true
			continue
		}
		lo, hi := t-half, t+half
		if lo < 0 || hi >= n {
			continue
		}
		first := mean(values[lo : lo+window])
		second := mean(values[lo+1 : lo+1+window])
		out[t] = (first + second) / 2
		ok[t] = true
	}
	return out, ok
}

// linearFit fits values against their index by least squares. A degenerate
// denominator falls back to a flat line at the mean.
func linearFit(values []float64) (intercept, slope float64) {
	n := float64(len(values))
	var sumX, sumY, sumXY, sumXX float64
	for i, v := range values {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumXX += x * x
	}
	den := n*sumXX - sumX*sumX
	if den == 0 {
		return sumY / n, 0
	}
	slope = (n*sumXY - sumX*sumY) / den
	intercept = (sumY - slope*sumX) / n
	return intercept, slope
}
