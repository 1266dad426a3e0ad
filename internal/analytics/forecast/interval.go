package forecast

// Band is one confidence band: lower and upper bound sequences aligned by
// position with the forecast points.
type Band struct {
	Lower []float64
	Upper []float64
}

// IntervalSet is an ordered mapping from confidence level to its Band.
// Levels keep the order in which they were added and each level appears at
// most once. A requested level the engine could not compute is simply
// absent; callers detect that through the ok result of Band.
type IntervalSet struct {
	levels []int
	bands  map[int]Band
}

// NewIntervalSet creates an empty interval set
func NewIntervalSet() *IntervalSet {
	return &IntervalSet{bands: make(map[int]Band)}
}

// Add appends the band for a level. Adding a level twice is a no-op.
func (s *IntervalSet) Add(level int, lower, upper []float64) {
	if _, exists := s.bands[level]; exists {
		return
	}
	s.levels = append(s.levels, level)
	s.bands[level] = Band{Lower: lower, Upper: upper}
}

// Levels returns the levels in insertion order
func (s *IntervalSet) Levels() []int {
	out := make([]int, len(s.levels))
	copy(out, s.levels)
	return out
}

// Band returns the band for a level and whether it is present
func (s *IntervalSet) Band(level int) (Band, bool) {
	b, ok := s.bands[level]
	return b, ok
}

// Len returns the number of bands in the set
func (s *IntervalSet) Len() int {
	return len(s.levels)
}
