package weather

import (
	"math"
	"time"
)

// NearestIndex returns the index of the series element closest in absolute
// time to target. Ties resolve to the lowest index.
func NearestIndex(series []time.Time, target time.Time) (int, error) {
	if len(series) == 0 {
		return 0, ErrEmptySeries
	}

	best := 0
	bestDiff := absDuration(series[0].Sub(target))
	for i := 1; i < len(series); i++ {
		diff := absDuration(series[i].Sub(target))
		if diff < bestDiff {
			best = i
			bestDiff = diff
		}
	}
	return best, nil
}

// Sub saturates at the Duration bounds, so MinInt64 has no positive counterpart.
func absDuration(d time.Duration) time.Duration {
	if d >= 0 {
		return d
	}
	if d == math.MinInt64 {
		return math.MaxInt64
	}
	return -d
}
