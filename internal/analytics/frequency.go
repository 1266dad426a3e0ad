package analytics

import (
	"sort"
	"time"
)

// Frequency is a coarse classification of the median gap between consecutive
// observations. It is a heuristic over noisy real-world gaps, not a precise
// calendar unit: a series sampled every 6-8 days still classifies as weekly.
type Frequency int

const (
	FreqUnknown Frequency = iota
	FreqSubHourly
	FreqHourly
	FreqDaily
	FreqWeekly
	FreqMonthly
	FreqQuarterly
	FreqYearly
)

// String returns the frequency name
func (f Frequency) String() string {
	switch f {
	case FreqSubHourly:
		return "sub-hourly"
	case FreqHourly:
		return "hourly"
	case FreqDaily:
		return "daily"
	case FreqWeekly:
		return "weekly"
	case FreqMonthly:
		return "monthly"
	case FreqQuarterly:
		return "quarterly"
	case FreqYearly:
		return "yearly"
	default:
		return "unknown"
	}
}

// InferFrequency classifies the median gap between consecutive observation
// times. Classification is monotonic in the gap: a smaller median gap never
// yields a coarser frequency. Fewer than 2 times defaults to daily.
func InferFrequency(times []time.Time) Frequency {
	if len(times) < 2 {
		return FreqDaily
	}

	gaps := make([]time.Duration, len(times)-1)
	for i := 1; i < len(times); i++ {
		gaps[i-1] = times[i].Sub(times[i-1])
	}
	med := medianDuration(gaps)

	seconds := med.Seconds()
	days := int(med / (24 * time.Hour))

	switch {
	case seconds < 3600:
		return FreqSubHourly
	case seconds < 86400:
		return FreqHourly
	case days <= 1:
		return FreqDaily
	case days <= 8:
		return FreqWeekly
	case days <= 32:
		return FreqMonthly
	case days <= 100:
		return FreqQuarterly
	default:
		return FreqYearly
	}
}

// DefaultSeasonLength returns the seasonal cycle length assumed for the
// frequency when the caller supplies none: hourly data cycles daily (24),
// daily weekly (7), weekly yearly (52), monthly yearly (12), quarterly
// yearly (4). Yearly data has no sub-cycle (1). Sub-hourly series use the
// hourly default; anything unclassified falls back to 7.
func (f Frequency) DefaultSeasonLength() int {
	switch f {
	case FreqSubHourly, FreqHourly:
		return 24
	case FreqDaily:
		return 7
	case FreqWeekly:
		return 52
	case FreqMonthly:
		return 12
	case FreqQuarterly:
		return 4
	case FreqYearly:
		return 1
	default:
		return 7
	}
}

// Advance returns t moved forward by n periods of the frequency. Month-based
// frequencies use calendar arithmetic so forecast dates stay aligned with
// varying month lengths.
func (f Frequency) Advance(t time.Time, n int) time.Time {
	switch f {
	case FreqSubHourly:
		return t.Add(time.Duration(n) * time.Minute)
	case FreqHourly:
		return t.Add(time.Duration(n) * time.Hour)
	case FreqWeekly:
		return t.AddDate(0, 0, 7*n)
	case FreqMonthly:
		return t.AddDate(0, n, 0)
	case FreqQuarterly:
		return t.AddDate(0, 3*n, 0)
	case FreqYearly:
		return t.AddDate(n, 0, 0)
	default:
		return t.AddDate(0, 0, n)
	}
}

func medianDuration(gaps []time.Duration) time.Duration {
	sorted := make([]time.Duration, len(gaps))
	copy(sorted, gaps)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
