package forecast

import (
	"math"

	"github.com/auspexhq/auspex/internal/analytics"
)

// Order caps for the automatic search. Small on purpose: the grid is fit
// exhaustively per request.
const (
	maxAROrder   = 3
	maxMAOrder   = 3
	maxDiffOrder = 2
)

// autoARIMA fits an automatic-order ARIMA model. One seasonal difference is
// applied when the series shows strong autocorrelation at the seasonal lag,
// the regular differencing order is chosen by a variance-reduction
// heuristic, and the AR/MA orders are selected by corrected AIC over a small
// grid. AR coefficients come from the Yule-Walker equations solved with the
// Levinson-Durbin recursion; MA coefficients are approximated from the
// residual autocorrelation with damping.
type autoARIMA struct{}

func (autoARIMA) Name() string { return "AutoARIMA" }

func (autoARIMA) Forecast(values []float64, seasonLength, horizon int) (*prediction, error) {
	work := values

	// Seasonal difference first so the order search sees a deseasonalized
	// series.
	seasonal := false
	if seasonLength > 1 && len(work) >= 2*seasonLength+2 && isSeasonal(work, seasonLength) {
		work = seasonalDifference(work, seasonLength)
		seasonal = true
	}

	ladder := differenceLadder(work)
	modeled := ladder[len(ladder)-1]
	if len(modeled) < 5 {
		return nil, analytics.NewComputationError("series too short for arima after differencing")
	}

	// The ARMA recursion assumes a zero-mean series; the mean re-enters as a
	// per-step drift when forecasting.
	drift := mean(modeled)
	centered := make([]float64, len(modeled))
	for i, v := range modeled {
		centered[i] = v - drift
	}

	best := searchOrder(centered)
	if best == nil {
		return nil, analytics.NewComputationError("arima order search found no candidate")
	}

	// Forecast recursively in the modeled space. Future shocks are zero.
	recent := append([]float64(nil), centered...)
	resid := append([]float64(nil), best.residuals...)
	diffForecasts := make([]float64, horizon)
	for h := 0; h < horizon; h++ {
		arPart := 0.0
		for i := 0; i < best.p && i < len(recent); i++ {
			arPart += best.ar[i] * recent[len(recent)-1-i]
		}
		maPart := 0.0
		for i := 0; i < best.q && i < len(resid); i++ {
			maPart += best.ma[i] * resid[len(resid)-1-i]
		}
		f := arPart + maPart
		recent = append(recent, f)
		resid = append(resid, 0)
		diffForecasts[h] = f + drift
	}

	// Integrate back through every differencing stage, innermost first.
	means := append([]float64(nil), diffForecasts...)
	for k := len(ladder) - 2; k >= 0; k-- {
		stage := ladder[k]
		prev := stage[len(stage)-1]
		for h := range means {
			prev += means[h]
			means[h] = prev
		}
	}

	// Undo the seasonal difference against the original scale.
	if seasonal {
		extended := append([]float64(nil), values...)
		for h := range means {
			means[h] += extended[len(extended)-seasonLength]
			extended = append(extended, means[h])
		}
	}

	sigma0 := residualStd(best.residuals, max(best.p, best.q))
	sigmas := make([]float64, horizon)
	for h := 0; h < horizon; h++ {
		sigmas[h] = sigma0 * math.Sqrt(float64(h+1))
	}

	return &prediction{Mean: means, Sigma: sigmas}, nil
}

// armaFit is one fitted (p,q) candidate from the order search.
type armaFit struct {
	p, q      int
	ar, ma    []float64
	residuals []float64
	aicc      float64
}

// searchOrder fits every (p,q) candidate up to the order caps and keeps the
// one with the lowest corrected AIC over the one-step residuals.
func searchOrder(centered []float64) *armaFit {
	n := len(centered)

	var best *armaFit
	for p := 0; p <= maxAROrder; p++ {
		for q := 0; q <= maxMAOrder; q++ {
			k := p + q + 1
			if n <= k+2 {
				continue
			}

			ar := estimateAR(centered, p)
			ma := estimateMA(centered, ar, q)
			_, residuals := armaFitted(centered, ar, ma)

			start := max(p, q)
			sse := 0.0
			count := 0
			for t := start; t < n; t++ {
				sse += residuals[t] * residuals[t]
				count++
			}
			if count <= k+1 {
				continue
			}

			score := aicc(count, sse, k)
			if best == nil || score < best.aicc {
				best = &armaFit{p: p, q: q, ar: ar, ma: ma, residuals: residuals, aicc: score}
			}
		}
	}
	return best
}

// differenceLadder applies successive differencing while the variance keeps
// dropping, up to maxDiffOrder times. Element 0 is the input series and the
// last element is the series to model.
func differenceLadder(values []float64) [][]float64 {
	ladder := [][]float64{values}
	current := values
	for len(ladder)-1 < maxDiffOrder {
		next := difference(current)
		if len(next) < 4 {
			break
		}
		if variance(next) >= variance(current)*0.9 {
			break
		}
		ladder = append(ladder, next)
		current = next
	}
	return ladder
}

// difference returns the first difference of the series
func difference(values []float64) []float64 {
	if len(values) < 2 {
		return nil
	}
	out := make([]float64, len(values)-1)
	for i := 1; i < len(values); i++ {
		out[i-1] = values[i] - values[i-1]
	}
	return out
}

// seasonalDifference returns x[t] - x[t-lag] for t >= lag
func seasonalDifference(values []float64, lag int) []float64 {
	if len(values) <= lag {
		return nil
	}
	out := make([]float64, len(values)-lag)
	for t := lag; t < len(values); t++ {
		out[t-lag] = values[t] - values[t-lag]
	}
	return out
}

// estimateAR estimates AR coefficients by solving the Yule-Walker equations
func estimateAR(values []float64, p int) []float64 {
	if p == 0 || len(values) < p+1 {
		return nil
	}
	acf := autocorrelations(values, p)
	return levinsonDurbin(acf, p)
}

// estimateMA approximates MA coefficients from the autocorrelation of the
// AR residuals. The damping keeps the recursion stable.
func estimateMA(values []float64, ar []float64, q int) []float64 {
	if q == 0 {
		return nil
	}

	p := len(ar)
	residuals := make([]float64, len(values))
	for t := p; t < len(values); t++ {
		predicted := 0.0
		for i := 0; i < p; i++ {
			predicted += ar[i] * values[t-1-i]
		}
		residuals[t] = values[t] - predicted
	}

	maCoeffs := make([]float64, q)
	acf := autocorrelations(residuals[p:], q)
	for i := 0; i < q && i < len(acf); i++ {
		maCoeffs[i] = acf[i] * 0.5
	}
	return maCoeffs
}

// levinsonDurbin solves the Yule-Walker equations
func levinsonDurbin(acf []float64, p int) []float64 {
	if len(acf) == 0 || p == 0 {
		return nil
	}
	if len(acf) < p {
		p = len(acf)
	}

	phi := make([][]float64, p+1)
	for i := range phi {
		phi[i] = make([]float64, p+1)
	}

	phi[1][1] = acf[0]
	v := 1 - acf[0]*acf[0]

	for k := 2; k <= p; k++ {
		num := acf[k-1]
		for j := 1; j < k; j++ {
			num -= phi[k-1][j] * acf[k-1-j]
		}

		if v == 0 {
			break
		}
		phi[k][k] = num / v

		for j := 1; j < k; j++ {
			phi[k][j] = phi[k-1][j] - phi[k][k]*phi[k-1][k-j]
		}
		v = v * (1 - phi[k][k]*phi[k][k])
	}

	result := make([]float64, p)
	for i := 1; i <= p; i++ {
		result[i-1] = phi[p][i]
	}
	return result
}

// armaFitted computes one-step in-sample fitted values and residuals. The
// first max(p,q) positions carry zero residuals since no prediction exists
// for them yet.
func armaFitted(values []float64, ar, ma []float64) (fitted, residuals []float64) {
	n := len(values)
	p := len(ar)
	q := len(ma)
	start := max(p, q)

	fitted = make([]float64, n)
	residuals = make([]float64, n)
	for t := start; t < n; t++ {
		pred := 0.0
		for i := 0; i < p; i++ {
			pred += ar[i] * values[t-1-i]
		}
		for i := 0; i < q && t-1-i >= 0; i++ {
			pred += ma[i] * residuals[t-1-i]
		}
		fitted[t] = pred
		residuals[t] = values[t] - fitted[t]
	}
	return fitted, residuals
}

// residualStd is the sample standard deviation of the residuals from
// position start onward. Returns 0 when too few residuals remain.
func residualStd(residuals []float64, start int) float64 {
	if start < 0 {
		start = 0
	}
	tail := residuals[min(start, len(residuals)):]
	if len(tail) < 2 {
		return 0
	}
	mu := mean(tail)
	sumSq := 0.0
	for _, r := range tail {
		diff := r - mu
		sumSq += diff * diff
	}
	return math.Sqrt(sumSq / float64(len(tail)-1))
}
