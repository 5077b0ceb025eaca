package stats

import (
	"sort"
	"time"

	"github.com/bkovacic/liftstats/internal/workouts"
)

// ReportLocation is the fixed business timezone used for calendar-day
// bucketing. It is a product constant, not user-configurable: the
// whole history of a user must bucket the same way regardless of
// where the request comes from.
var ReportLocation = time.FixedZone("UTC+1", 60*60)

const dayFormat = "2006-01-02"

// DayKey converts a timestamp to its calendar-day string in the
// report timezone. A workout started 2024-01-01T23:30:00Z belongs to
// 2024-01-02.
func DayKey(t time.Time) string {
	return t.In(ReportLocation).Format(dayFormat)
}

// DayContext groups the sets of one calendar day. A set belongs to
// exactly one day, determined by its parent workout's start time in
// the report timezone.
type DayContext struct {
	Day  string
	Sets []workouts.Set
	// ActiveMinutes is accumulated from per-set work time, which is
	// only known for sets with actual timing.
	ActiveMinutes float64
	TotalWorkMs   float64
	// HasActualTiming is true only when every set of the day has the
	// corrected-timing timestamps. A single legacy set disqualifies
	// the day, so one aggregation window never mixes timing
	// qualities.
	HasActualTiming bool

	durations map[int]int // workout id -> declared duration
}

// BuildDayContexts buckets workouts and their sets into calendar
// days. Returned slice is sorted by day ascending.
func BuildDayContexts(workoutList []workouts.Workout, setsByWorkout map[int][]workouts.Set) []*DayContext {
	byDay := make(map[string]*DayContext)

	for _, workout := range workoutList {
		day := DayKey(workout.StartedAt)
		dayCtx, ok := byDay[day]
		if !ok {
			dayCtx = &DayContext{
				Day:             day,
				HasActualTiming: true,
				durations:       make(map[int]int),
			}
			byDay[day] = dayCtx
		}

		dayCtx.durations[workout.ID] = workout.DurationMin
		for _, set := range setsByWorkout[workout.ID] {
			dayCtx.Sets = append(dayCtx.Sets, set)
			dayCtx.TotalWorkMs += set.WorkMillis()
			if !set.HasActualTiming() {
				dayCtx.HasActualTiming = false
			}
		}
	}

	days := make([]*DayContext, 0, len(byDay))
	for _, dayCtx := range byDay {
		dayCtx.ActiveMinutes = dayCtx.TotalWorkMs / 60000
		days = append(days, dayCtx)
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Day < days[j].Day
	})
	return days
}

// TimingQuality of the whole day, per the all-or-nothing rule.
func (d *DayContext) TimingQuality() workouts.TimingQuality {
	if d.HasActualTiming && len(d.Sets) > 0 {
		return workouts.TimingQualityActual
	}
	return workouts.TimingQualityLegacy
}

// DurationMin sums the declared durations of the day's workouts.
func (d *DayContext) DurationMin() float64 {
	var total int
	for _, durationMin := range d.durations {
		total += durationMin
	}
	return float64(total)
}
