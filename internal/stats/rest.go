package stats

import (
	"math"
	"sort"
	"time"

	"github.com/bkovacic/liftstats/internal/workouts"
)

// MaxRestIntervalMs caps what the corrected deriver accepts as a real
// rest between two sets. Anything longer is a stuck timer or a break
// in the session, not rest.
const MaxRestIntervalMs = 30 * 60 * 1000

// LegacyRestIntervalsMs orders the sets by their single observed
// timestamp and returns the successive differences in milliseconds.
// Negative and non-finite differences are discarded. Sets without any
// timestamp cannot be ordered and are skipped.
func LegacyRestIntervalsMs(sets []workouts.Set) []float64 {
	timestamps := make([]time.Time, 0, len(sets))
	for _, set := range sets {
		if observedAt := set.ObservedAt(); observedAt != nil {
			timestamps = append(timestamps, *observedAt)
		}
	}
	sort.Slice(timestamps, func(i, j int) bool {
		return timestamps[i].Before(timestamps[j])
	})

	intervals := make([]float64, 0, len(timestamps))
	for i := 1; i < len(timestamps); i++ {
		diffMs := float64(timestamps[i].Sub(timestamps[i-1]).Milliseconds())
		if diffMs < 0 || math.IsNaN(diffMs) || math.IsInf(diffMs, 0) {
			continue
		}
		intervals = append(intervals, diffMs)
	}
	return intervals
}

// CorrectedRestIntervalsMs orders the sets by completion time and for
// each adjacent pair derives rest as start(next) - complete(current).
// Intervals outside [0, MaxRestIntervalMs] are rejected as outliers.
// When either timestamp of a pair is missing, the following set's
// stored rest value is used if positive; otherwise the pair
// contributes no data point.
func CorrectedRestIntervalsMs(sets []workouts.Set) []float64 {
	ordered := make([]workouts.Set, len(sets))
	copy(ordered, sets)
	sort.Slice(ordered, func(i, j int) bool {
		return setOrderingTime(ordered[i]).Before(setOrderingTime(ordered[j]))
	})

	intervals := make([]float64, 0, len(ordered))
	for i := 1; i < len(ordered); i++ {
		previous, current := ordered[i-1], ordered[i]

		if previous.CompletedAt == nil || current.StartedAt == nil {
			if current.RestTimeSec != nil && *current.RestTimeSec > 0 {
				intervals = append(intervals, float64(*current.RestTimeSec)*1000)
			}
			continue
		}

		restMs := float64(current.StartedAt.Sub(*previous.CompletedAt).Milliseconds())
		if restMs < 0 || restMs > MaxRestIntervalMs {
			continue
		}
		intervals = append(intervals, restMs)
	}
	return intervals
}

func setOrderingTime(set workouts.Set) time.Time {
	if set.CompletedAt != nil {
		return *set.CompletedAt
	}
	if observedAt := set.ObservedAt(); observedAt != nil {
		return *observedAt
	}
	return time.Time{}
}

// RestIntervalsMs picks the deriver matching the day's timing
// quality. On the legacy path, when no timestamp stream exists at
// all, the stored per-set rest values stand in as the interval list
// so rest KPIs are still computable.
func (d *DayContext) RestIntervalsMs() []float64 {
	if d.TimingQuality() == workouts.TimingQualityActual {
		return CorrectedRestIntervalsMs(d.Sets)
	}

	intervals := LegacyRestIntervalsMs(d.Sets)
	if len(intervals) > 0 {
		return intervals
	}

	for _, set := range d.Sets {
		if set.RestTimeSec != nil && *set.RestTimeSec > 0 {
			intervals = append(intervals, float64(*set.RestTimeSec)*1000)
		}
	}
	return intervals
}
