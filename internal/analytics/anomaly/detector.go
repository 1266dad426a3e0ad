// Package anomaly classifies historical points of a prepared time series by
// comparing each value against a confidence band built from its rolling
// neighborhood: a centered rolling mean plus/minus a normal critical value
// times the rolling standard deviation. Points strictly outside their band
// are anomalies, graded by how far outside they sit.
package anomaly

import (
	"math"
	"strings"
	"time"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/auspexhq/auspex/internal/analytics"
)

// Method names the detection algorithm in results.
const Method = "rolling_zscore"

// Sensitivity selects how aggressively points are flagged. Higher
// sensitivity widens the confidence level, narrowing what counts as normal
// spread before a point is flagged.
type Sensitivity int

const (
	SensitivityLow Sensitivity = iota
	SensitivityMedium
	SensitivityHigh
)

// ParseSensitivity maps a selector string to a Sensitivity. Unrecognized
// selectors resolve to SensitivityMedium with ok=false.
func ParseSensitivity(s string) (Sensitivity, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return SensitivityLow, true
	case "medium":
		return SensitivityMedium, true
	case "high":
		return SensitivityHigh, true
	default:
		return SensitivityMedium, false
	}
}

// String returns the selector name
func (s Sensitivity) String() string {
	switch s {
	case SensitivityLow:
		return "low"
	case SensitivityHigh:
		return "high"
	default:
		return "medium"
	}
}

// ConfidenceLevel returns the band confidence percentage for the sensitivity.
func (s Sensitivity) ConfidenceLevel() int {
	switch s {
	case SensitivityLow:
		return 90
	case SensitivityHigh:
		return 99
	default:
		return 95
	}
}

// severity grades a deviation on the sensitivity's own scale: wider bands
// flag less, so what they do flag is graded on looser thresholds.
func (s Sensitivity) severity(deviation float64) Severity {
	switch s {
	case SensitivityLow:
		if deviation > 3 {
			return SeverityHigh
		}
		if deviation > 2 {
			return SeverityMedium
		}
	case SensitivityHigh:
		if deviation > 1.5 {
			return SeverityHigh
		}
		if deviation > 1 {
			return SeverityMedium
		}
	default:
		if deviation > 2 {
			return SeverityHigh
		}
		if deviation > 1.5 {
			return SeverityMedium
		}
	}
	return SeverityLow
}

// Severity grades how far outside its band an anomaly sits.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Anomaly is one historical point flagged outside its expected band.
// Deviation is the distance from the band midpoint in units of the band's
// half-width.
type Anomaly struct {
	Index     int
	Time      time.Time
	Value     float64
	Expected  float64
	Lower     float64
	Upper     float64
	Deviation float64
	Severity  Severity
}

// Band is the expected range at one historical point.
type Band struct {
	Index    int
	Time     time.Time
	Expected float64
	Lower    float64
	Upper    float64
}

// Request describes one detection invocation. SeasonLength must already be
// resolved by the caller (explicit value or frequency default).
type Request struct {
	Sensitivity  Sensitivity
	SeasonLength int
}

// Result contains the flagged anomalies and the per-point expected bands.
// Points whose window leaves the standard deviation undefined appear in
// neither.
type Result struct {
	Anomalies    []Anomaly
	Bands        []Band
	TotalPoints  int
	AnomalyCount int
	AnomalyRate  float64
	Method       string
	Sensitivity  Sensitivity
}

// Detector classifies historical points. It is stateless and safe for
// concurrent use; construct one at startup and share it.
type Detector struct{}

// Detect runs the rolling z-score classification over the series. The
// window spans two seasons, clipped to the series length; degenerate windows
// fall back to the whole series. Identical input and parameters produce an
// identical result.
func (Detector) Detect(series *analytics.Series, req Request) (*Result, error) {
	if series == nil || series.Len() < 2 {
		return nil, analytics.NewDataError("anomaly detection requires a prepared series with at least 2 points")
	}

	n := series.Len()
	season := req.SeasonLength
	if season < 1 {
		season = 1
	}
	window := 2 * season
	if window > n {
		window = n
	}
	if window < 3 {
		window = n
	}

	values := series.Values()
	times := series.Times()
	stats := Window{Size: window, Centered: true, MinPeriods: 1}.Apply(values)

	level := req.Sensitivity.ConfidenceLevel()
	z := distuv.Normal{Mu: 0, Sigma: 1}.Quantile((1 + float64(level)/100) / 2)

	var anomalies []Anomaly
	bands := make([]Band, 0, n)
	for i, st := range stats {
		if !st.StdOK {
			continue
		}
		margin := z * st.Std
		lower := st.Mean - margin
		upper := st.Mean + margin
		bands = append(bands, Band{
			Index:    i,
			Time:     times[i],
			Expected: st.Mean,
			Lower:    lower,
			Upper:    upper,
		})

		if values[i] >= lower && values[i] <= upper {
			continue
		}
		deviation := 0.0
		if margin > 0 {
			deviation = math.Abs(values[i]-st.Mean) / margin
		}
		anomalies = append(anomalies, Anomaly{
			Index:     i,
			Time:      times[i],
			Value:     values[i],
			Expected:  st.Mean,
			Lower:     lower,
			Upper:     upper,
			Deviation: deviation,
			Severity:  req.Sensitivity.severity(deviation),
		})
	}

	return &Result{
		Anomalies:    anomalies,
		Bands:        bands,
		TotalPoints:  n,
		AnomalyCount: len(anomalies),
		AnomalyRate:  float64(len(anomalies)) / float64(n),
		Method:       Method,
		Sensitivity:  req.Sensitivity,
	}, nil
}
