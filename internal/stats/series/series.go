// Package series holds the chart vocabulary of the stats engine: the
// canonical measure identifiers, the alias table mapping historical
// key spellings onto them, and the adapter that normalizes raw series
// maps into that canonical shape.
package series

// Measure is a canonical series identifier. Everything the engine
// emits is keyed by one of these; historical spellings are accepted
// on input via the alias table only.
type Measure string

const (
	MeasureVolume   Measure = "volume"
	MeasureSets     Measure = "sets"
	MeasureReps     Measure = "reps"
	MeasureDuration Measure = "durationMin"
	MeasureDensity  Measure = "density"
	MeasureAvgRest  Measure = "avgRest"
	// MeasureSetEfficiency is the ratio of average rest to the target
	// rest time. MeasureThroughput is volume per total minute. Both
	// are called "set efficiency" in older clients but are different
	// numbers, so they stay separate measures.
	MeasureSetEfficiency Measure = "setEfficiency"
	MeasureThroughput    Measure = "throughputKgMin"
)

func (m Measure) String() string {
	return string(m)
}

// TimeSeriesPoint is one calendar-day value of a measure. Value is nil
// when the measure could not be computed for that day.
type TimeSeriesPoint struct {
	Date  string   `json:"date"`
	Value *float64 `json:"value"`
}

// aliases maps every recognized key spelling, historical ones
// included, to its canonical measure.
var aliases = map[string]Measure{
	"volume":       MeasureVolume,
	"Volume":       MeasureVolume,
	"tonnage":      MeasureVolume,
	"totalVolume":  MeasureVolume,
	"total_volume": MeasureVolume,
	"volumeKg":     MeasureVolume,
	"volume_kg":    MeasureVolume,

	"sets":      MeasureSets,
	"Sets":      MeasureSets,
	"setCount":  MeasureSets,
	"set_count": MeasureSets,

	"reps":      MeasureReps,
	"Reps":      MeasureReps,
	"repCount":  MeasureReps,
	"rep_count": MeasureReps,

	"duration":     MeasureDuration,
	"Duration":     MeasureDuration,
	"durationMin":  MeasureDuration,
	"duration_min": MeasureDuration,

	"density":       MeasureDensity,
	"Density":       MeasureDensity,
	"densityKgMin":  MeasureDensity,
	"density_kg_min": MeasureDensity,
	"kgPerMin":      MeasureDensity,
	"kg_per_min":    MeasureDensity,

	"avgRest":     MeasureAvgRest,
	"AvgRest":     MeasureAvgRest,
	"avg_rest":    MeasureAvgRest,
	"avgRestSec":  MeasureAvgRest,
	"avg_rest_sec": MeasureAvgRest,
	"averageRest": MeasureAvgRest,

	"setEfficiency":  MeasureSetEfficiency,
	"SetEfficiency":  MeasureSetEfficiency,
	"set_efficiency": MeasureSetEfficiency,
	"efficiency":     MeasureSetEfficiency,

	"throughputKgMin":    MeasureThroughput,
	"throughput_kg_min":  MeasureThroughput,
	"throughput":         MeasureThroughput,
	"setEfficiencyKgMin": MeasureThroughput,
}

// mirrors holds the alternate (snake_case) spelling emitted next to
// each canonical key, for consumers that never migrated to camelCase.
var mirrors = map[Measure]string{
	MeasureDuration:      "duration_min",
	MeasureAvgRest:       "avg_rest",
	MeasureSetEfficiency: "set_efficiency",
	MeasureThroughput:    "throughput_kg_min",
}

// Canonical resolves an arbitrary key spelling to its canonical
// measure. False when the key is not recognized at all.
func Canonical(key string) (Measure, bool) {
	m, ok := aliases[key]
	return m, ok
}

// MirrorKey returns the alternate spelling of a canonical measure, or
// "" when the measure has no distinct mirror.
func MirrorKey(m Measure) string {
	return mirrors[m]
}
