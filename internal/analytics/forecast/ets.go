package forecast

import (
	"math"

	"github.com/auspexhq/auspex/internal/analytics"
)

// Smoothing-parameter grids for the ETS candidate search.
var (
	alphaGrid = []float64{0.05, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 0.95}
	betaGrid  = []float64{0.05, 0.1, 0.3, 0.5, 0.7, 0.9}
	gammaGrid = []float64{0.05, 0.1, 0.3, 0.5}
)

// autoETS selects among simple, trended, and seasonal exponential smoothing.
// Each family is fit over a small smoothing-parameter grid and the candidate
// with the lowest corrected AIC on the one-step errors wins.
type autoETS struct{}

func (autoETS) Name() string { return "AutoETS" }

func (autoETS) Forecast(values []float64, seasonLength, horizon int) (*prediction, error) {
	best := fitSES(values)
	if best == nil {
		return nil, analytics.NewComputationError("series too short for exponential smoothing")
	}
	if c := fitHolt(values); c != nil && c.aicc < best.aicc {
		best = c
	}
	if c := fitHoltWinters(values, seasonLength); c != nil && c.aicc < best.aicc {
		best = c
	}

	means := make([]float64, horizon)
	sigmas := make([]float64, horizon)
	for h := 1; h <= horizon; h++ {
		means[h-1] = best.step(h)
		sigmas[h-1] = best.sigma * math.Sqrt(float64(h))
	}
	return &prediction{Mean: means, Sigma: sigmas}, nil
}

// etsCandidate is one fitted smoothing model. step produces the h-step-ahead
// point forecast from the final state.
type etsCandidate struct {
	name  string
	aicc  float64
	sigma float64
	step  func(h int) float64
}

// sesCurve runs simple exponential smoothing over the series. fitted[i] is
// the one-step prediction for values[i], and level is the state after the
// last observation.
func sesCurve(values []float64, alpha float64) (fitted []float64, level float64) {
	fitted = make([]float64, len(values))
	fitted[0] = values[0]
	for i := 1; i < len(values); i++ {
		fitted[i] = alpha*values[i-1] + (1-alpha)*fitted[i-1]
	}
	level = alpha*values[len(values)-1] + (1-alpha)*fitted[len(values)-1]
	return fitted, level
}

func fitSES(values []float64) *etsCandidate {
	n := len(values)
	if n < 2 {
		return nil
	}

	var best *etsCandidate
	for _, alpha := range alphaGrid {
		fitted, level := sesCurve(values, alpha)
		sse := 0.0
		for i := 1; i < n; i++ {
			err := values[i] - fitted[i]
			sse += err * err
		}
		count := n - 1

		score := aicc(count, sse, 2)
		if best != nil && score >= best.aicc {
			continue
		}
		sigma := 0.0
		if count > 1 {
			sigma = math.Sqrt(sse / float64(count-1))
		}
		final := level
		best = &etsCandidate{
			name:  "ses",
			aicc:  score,
			sigma: sigma,
			step:  func(h int) float64 { return final },
		}
	}
	return best
}

func fitHolt(values []float64) *etsCandidate {
	n := len(values)
	if n < 3 {
		return nil
	}

	var best *etsCandidate
	for _, alpha := range alphaGrid {
		for _, beta := range betaGrid {
			level := values[0]
			trend := values[1] - values[0]
			sse := 0.0
			for t := 1; t < n; t++ {
				pred := level + trend
				err := values[t] - pred
				sse += err * err

				newLevel := alpha*values[t] + (1-alpha)*(level+trend)
				trend = beta*(newLevel-level) + (1-beta)*trend
				level = newLevel
			}
			count := n - 1

			score := aicc(count, sse, 4)
			if best != nil && score >= best.aicc {
				continue
			}
			sigma := 0.0
			if count > 1 {
				sigma = math.Sqrt(sse / float64(count-1))
			}
			finalLevel, finalTrend := level, trend
			best = &etsCandidate{
				name:  "holt",
				aicc:  score,
				sigma: sigma,
				step:  func(h int) float64 { return finalLevel + float64(h)*finalTrend },
			}
		}
	}
	return best
}

// fitHoltWinters fits additive Holt-Winters. It needs two full seasons to
// initialize the seasonal profile and enough one-step errors to score the
// larger parameter count, otherwise it returns nil.
func fitHoltWinters(values []float64, period int) *etsCandidate {
	n := len(values)
	if period < 2 || n < 2*period {
		return nil
	}

	firstMean := mean(values[:period])
	secondMean := mean(values[period : 2*period])

	var best *etsCandidate
	for _, alpha := range alphaGrid {
		for _, beta := range betaGrid {
			for _, gamma := range gammaGrid {
				level := firstMean
				trend := (secondMean - firstMean) / float64(period)
				seasonal := make([]float64, period)
				for i := 0; i < period; i++ {
					seasonal[i] = values[i] - firstMean
				}

				sse := 0.0
				count := 0
				for t := period; t < n; t++ {
					idx := t % period
					pred := level + trend + seasonal[idx]
					err := values[t] - pred
					sse += err * err
					count++

					newLevel := alpha*(values[t]-seasonal[idx]) + (1-alpha)*(level+trend)
					trend = beta*(newLevel-level) + (1-beta)*trend
					seasonal[idx] = gamma*(values[t]-newLevel) + (1-gamma)*seasonal[idx]
					level = newLevel
				}
				if count <= period+4 {
					continue
				}

				score := aicc(count, sse, period+3)
				if best != nil && score >= best.aicc {
					continue
				}
				sigma := 0.0
				if count > 1 {
					sigma = math.Sqrt(sse / float64(count-1))
				}
				finalLevel, finalTrend := level, trend
				finalSeasonal := seasonal
				startIdx := n % period
				best = &etsCandidate{
					name:  "holt_winters",
					aicc:  score,
					sigma: sigma,
					step: func(h int) float64 {
						return finalLevel + float64(h)*finalTrend + finalSeasonal[(startIdx+h-1)%period]
					},
				}
			}
		}
	}
	return best
}
