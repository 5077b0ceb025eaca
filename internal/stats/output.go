package stats

import (
	"time"

	"github.com/bkovacic/liftstats/internal/stats/series"
)

// SchemaVersion tags the ServiceOutput envelope shape.
const SchemaVersion = "v2"

// Units of every numeric field in the output: kilograms and minutes.
const Units = "kg/min"

// LowConfidenceCoveragePct is the rest coverage threshold below which
// rest-based KPIs are flagged as low confidence.
const LowConfidenceCoveragePct = 50.0

// Kpis are the derived indicators attached per workout and to the
// totals when KPI computation is enabled.
type Kpis struct {
	DensityKgPerMin float64 `json:"densityKgPerMin"`
	AvgRestSec      float64 `json:"avgRestSec"`
	// SetEfficiency is the ratio of average rest to the target rest
	// time; nil when no positive target is configured.
	SetEfficiency *float64 `json:"setEfficiency"`
	// ThroughputKgMin is volume over total (active + rest) minutes.
	ThroughputKgMin float64 `json:"throughputKgMin"`
}

// PerWorkoutMetrics is the summary of one workout session.
type PerWorkoutMetrics struct {
	WorkoutID     int     `json:"workoutId"`
	Date          string  `json:"date"`
	TotalVolumeKg float64 `json:"totalVolumeKg"`
	TotalSets     int     `json:"totalSets"`
	TotalReps     int     `json:"totalReps"`
	DurationMin   float64 `json:"durationMin"`
	ActiveMin     float64 `json:"activeMin"`
	RestMin       float64 `json:"restMin"`
	Kpis          *Kpis   `json:"kpis,omitempty"`
}

// Totals sums the per-workout metrics across the selected range. Kpis
// are recomputed from the summed values, not averaged from the
// per-workout ones (except the efficiency ratio, which is the mean of
// the non-null per-workout ratios).
type Totals struct {
	Workouts      int     `json:"workouts"`
	TotalVolumeKg float64 `json:"totalVolumeKg"`
	TotalSets     int     `json:"totalSets"`
	TotalReps     int     `json:"totalReps"`
	DurationMin   float64 `json:"durationMin"`
	ActiveMin     float64 `json:"activeMin"`
	RestMin       float64 `json:"restMin"`
	Kpis          *Kpis   `json:"kpis,omitempty"`
}

// PersonalRecord is the heaviest set of one exercise in the range.
type PersonalRecord struct {
	ExerciseID string  `json:"exerciseId"`
	WeightKg   float64 `json:"weightKg"`
	Reps       int     `json:"reps"`
	Date       string  `json:"date"`
}

// Quality reports how trustworthy the rest-based KPIs are.
type Quality struct {
	RestCoveragePct float64 `json:"restCoveragePct"`
	LowConfidence   bool    `json:"lowConfidence"`
}

type MetaInputs struct {
	Timezone string `json:"timezone"`
	Units    string `json:"units"`
}

type Meta struct {
	GeneratedAt time.Time  `json:"generatedAt"`
	Version     string     `json:"version"`
	Inputs      MetaInputs `json:"inputs"`
}

// ServiceOutput is the versioned stats envelope. Built fresh per
// request, never mutated after construction.
type ServiceOutput struct {
	Totals     Totals                                `json:"totals"`
	PerWorkout []PerWorkoutMetrics                   `json:"perWorkout"`
	Prs        []PersonalRecord                      `json:"prs"`
	Series     map[string][]series.TimeSeriesPoint   `json:"series"`
	Available  []series.Measure                      `json:"availableMeasures"`
	Quality    Quality                               `json:"quality"`
	Meta       Meta                                  `json:"meta"`
}
