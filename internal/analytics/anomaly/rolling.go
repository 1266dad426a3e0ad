package anomaly

import (
	"gonum.org/v1/gonum/stat"
)

// Window describes a rolling window over a value sequence.
type Window struct {
	Size       int
	Centered   bool
	MinPeriods int
}

// Stat holds the moments of one window position. StdOK reports whether the
// sample standard deviation is defined, which needs at least two
// observations in the window.
type Stat struct {
	Count int
	Mean  float64
	Std   float64
	StdOK bool
}

// Apply computes rolling statistics for every position of the sequence.
// Windows are clipped at the array edges, so positions near the edges see
// fewer observations. A centered window of size w covers w-1-(w-1)/2 points
// to the left of the focal point and (w-1)/2 to the right: an even size
// reaches one further left. Positions with fewer than MinPeriods
// observations get a zeroed Stat with only Count set.
func (w Window) Apply(values []float64) []Stat {
	n := len(values)
	stats := make([]Stat, n)
	if n == 0 || w.Size < 1 {
		return stats
	}

	minPeriods := w.MinPeriods
	if minPeriods < 1 {
		minPeriods = 1
	}
	offset := 0
	if w.Centered {
		offset = (w.Size - 1) / 2
	}

	for i := range values {
		end := i + offset + 1
		start := end - w.Size
		if start < 0 {
			start = 0
		}
		if end > n {
			end = n
		}

		count := end - start
		stats[i].Count = count
		if count < minPeriods {
			continue
		}

		window := values[start:end]
		stats[i].Mean = stat.Mean(window, nil)

		if count < 2 {
			continue
		}
		stats[i].Std = stat.StdDev(window, nil)
		stats[i].StdOK = true
	}
	return stats
}
