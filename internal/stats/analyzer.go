package stats

import (
	"context"
	"errors"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/bkovacic/liftstats/internal/instrumentation"
	"github.com/bkovacic/liftstats/internal/stats/series"
	"github.com/bkovacic/liftstats/internal/telemetry/tracing"
	"github.com/bkovacic/liftstats/internal/workouts"
	"github.com/bkovacic/liftstats/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=analyzer_mocks_test.go -package=stats_test

// ErrNoAuthenticatedUser is fatal: computing metrics without knowing
// whose they are would silently produce wrong numbers.
var ErrNoAuthenticatedUser = errors.New("no authenticated user")

type workoutsRepo interface {
	GetWorkouts(ctx context.Context, params workouts.WorkoutParams) ([]workouts.Workout, error)
	GetSets(ctx context.Context, params workouts.SetParams) ([]workouts.Set, error)
}

type bodyMassResolver interface {
	LatestBodyMassKg(ctx context.Context) (float64, bool, error)
}

// Options are the recognized feature switches of the engine.
type Options struct {
	// DerivedKpisEnabled gates whether kpis, totals kpis and derived
	// series appear in the output at all. Active/rest minutes are
	// computed either way.
	DerivedKpisEnabled bool
	// IncludeBodyweightLoads gates whether bodyweight sets contribute
	// imputed volume.
	IncludeBodyweightLoads bool
}

type Params struct {
	UserID     string
	From       *time.Time
	To         *time.Time
	ExerciseID string
}

// Analyzer turns raw workout and set records into the versioned stats
// envelope: per-workout metrics, range totals, personal records and
// calendar-day series.
type Analyzer struct {
	repo     workoutsRepo
	bodyMass bodyMassResolver
	adapter  *series.Adapter
	opts     Options
	instr    *instrumentation.Instrumentation
}

func NewAnalyzer(
	repo workoutsRepo,
	bodyMass bodyMassResolver,
	opts Options,
	instr *instrumentation.Instrumentation,
) *Analyzer {
	return &Analyzer{
		repo:     repo,
		bodyMass: bodyMass,
		adapter:  series.NewAdapter(instr),
		opts:     opts,
		instr:    instr,
	}
}

// WorkoutStats computes the full stats envelope for a user and date
// range. Repository failures degrade to an empty (but well-shaped)
// result; only a missing user is an error.
func (a *Analyzer) WorkoutStats(ctx context.Context, params Params) (_ *ServiceOutput, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.stats.workoutStats")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if params.UserID == "" {
		return nil, ErrNoAuthenticatedUser
	}
	span.SetAttributes(attribute.String("user_id", params.UserID))

	a.instr.CounterStatsRequests.Inc()
	computeStart := time.Now()
	defer func() {
		a.instr.HistStatsComputeDuration.Observe(time.Since(computeStart).Seconds())
	}()

	workoutList, err := a.repo.GetWorkouts(ctx, workouts.WorkoutParams{
		UserID: params.UserID,
		From:   params.From,
		To:     params.To,
	})
	if err != nil {
		log.Errorf("stats: get workouts for [%s]: %s, continuing with empty dataset", params.UserID, err)
		workoutList = nil
		err = nil
	}

	workoutIDs := make([]int, 0, len(workoutList))
	for _, workout := range workoutList {
		workoutIDs = append(workoutIDs, workout.ID)
	}

	sets, err := a.repo.GetSets(ctx, workouts.SetParams{
		UserID:     params.UserID,
		WorkoutIDs: workoutIDs,
		ExerciseID: params.ExerciseID,
	})
	if err != nil {
		log.Errorf("stats: get sets for [%s]: %s, continuing with empty dataset", params.UserID, err)
		sets = nil
		err = nil
	}

	if a.opts.IncludeBodyweightLoads {
		bodyMassKg, found, massErr := a.bodyMass.LatestBodyMassKg(ctx)
		if massErr != nil {
			log.Errorf("stats: resolve body mass: %s, skipping bodyweight loads", massErr)
		} else if found {
			sets = ImputeBodyweightLoads(sets, bodyMassKg)
		}
	}

	setsByWorkout := make(map[int][]workouts.Set, len(workoutList))
	for _, set := range sets {
		setsByWorkout[set.WorkoutID] = append(setsByWorkout[set.WorkoutID], set)
	}

	perWorkout := a.perWorkoutMetrics(workoutList, setsByWorkout)
	totals := a.totals(perWorkout)
	days := BuildDayContexts(workoutList, setsByWorkout)
	normalized := a.daySeries(days)

	output := &ServiceOutput{
		Totals:     totals,
		PerWorkout: perWorkout,
		Prs:        personalRecords(workoutList, setsByWorkout),
		Series:     normalized.Series,
		Available:  normalized.Available,
		Quality:    restQuality(setsByWorkout),
		Meta: Meta{
			GeneratedAt: time.Now(),
			Version:     SchemaVersion,
			Inputs: MetaInputs{
				Timezone: ReportLocation.String(),
				Units:    Units,
			},
		},
	}

	span.SetAttributes(attribute.Int("workouts", len(workoutList)))
	span.SetAttributes(attribute.Int("sets", len(sets)))
	return output, nil
}

func (a *Analyzer) perWorkoutMetrics(
	workoutList []workouts.Workout,
	setsByWorkout map[int][]workouts.Set,
) []PerWorkoutMetrics {
	perWorkout := make([]PerWorkoutMetrics, 0, len(workoutList))
	for _, workout := range workoutList {
		workoutSets := setsByWorkout[workout.ID]

		metrics := PerWorkoutMetrics{
			WorkoutID:   workout.ID,
			Date:        DayKey(workout.StartedAt),
			DurationMin: float64(workout.DurationMin),
			TotalSets:   len(workoutSets),
		}
		for _, set := range workoutSets {
			metrics.TotalVolumeKg += set.VolumeKg()
			metrics.TotalReps += set.Reps
		}

		restSec := workoutRestSeconds(workoutSets)
		metrics.RestMin = restSec / 60
		// active time never goes negative, bad rest data notwithstanding
		if metrics.RestMin > metrics.DurationMin {
			metrics.RestMin = metrics.DurationMin
		}
		metrics.ActiveMin = metrics.DurationMin - metrics.RestMin

		if a.opts.DerivedKpisEnabled {
			avgRest := AvgRestSecFromTotals(restSec, metrics.TotalSets)
			metrics.Kpis = &Kpis{
				DensityKgPerMin: Density(metrics.TotalVolumeKg, metrics.ActiveMin),
				AvgRestSec:      avgRest,
				SetEfficiency:   SetEfficiencyRatio(avgRest, series.DefaultTargetRestSeconds),
				ThroughputKgMin: ThroughputKgMin(metrics.TotalVolumeKg, metrics.ActiveMin, metrics.RestMin),
			}
		}

		perWorkout = append(perWorkout, metrics)
	}
	return perWorkout
}

// workoutRestSeconds sums the rest of one workout: from corrected
// intervals when every set has actual timing, otherwise from the
// stored per-set rest values.
func workoutRestSeconds(sets []workouts.Set) float64 {
	allActual := len(sets) > 0
	for _, set := range sets {
		if !set.HasActualTiming() {
			allActual = false
			break
		}
	}

	if allActual && len(sets) > 1 {
		var totalSec float64
		for _, intervalMs := range CorrectedRestIntervalsMs(sets) {
			totalSec += intervalMs / 1000
		}
		return totalSec
	}

	var totalSec float64
	for _, set := range sets {
		if set.RestTimeSec != nil && *set.RestTimeSec > 0 {
			totalSec += float64(*set.RestTimeSec)
		}
	}
	return totalSec
}

// totals recomputes the kpis from the summed values instead of
// averaging the per-workout kpis. The efficiency ratio is the one
// exception: the mean of non-null per-workout ratios.
func (a *Analyzer) totals(perWorkout []PerWorkoutMetrics) Totals {
	totals := Totals{
		Workouts: len(perWorkout),
	}
	var ratioSum float64
	var ratioCount int
	var totalRestSec float64
	for _, metrics := range perWorkout {
		totals.TotalVolumeKg += metrics.TotalVolumeKg
		totals.TotalSets += metrics.TotalSets
		totals.TotalReps += metrics.TotalReps
		totals.DurationMin += metrics.DurationMin
		totals.ActiveMin += metrics.ActiveMin
		totals.RestMin += metrics.RestMin
		totalRestSec += metrics.RestMin * 60
		if metrics.Kpis != nil && metrics.Kpis.SetEfficiency != nil {
			ratioSum += *metrics.Kpis.SetEfficiency
			ratioCount++
		}
	}

	if a.opts.DerivedKpisEnabled {
		kpis := &Kpis{
			DensityKgPerMin: Density(totals.TotalVolumeKg, totals.ActiveMin),
			AvgRestSec:      AvgRestSecFromTotals(totalRestSec, totals.TotalSets),
			ThroughputKgMin: ThroughputKgMin(totals.TotalVolumeKg, totals.ActiveMin, totals.RestMin),
		}
		if ratioCount > 0 {
			meanRatio := pkg.RoundTo2Decimals(ratioSum / float64(ratioCount))
			kpis.SetEfficiency = &meanRatio
		}
		totals.Kpis = kpis
	}

	return totals
}

// daySeries builds the calendar-day series and runs them through the
// adapter. Derived series are stripped again when kpis are disabled,
// so flag-off output carries only the raw measures.
func (a *Analyzer) daySeries(days []*DayContext) series.Normalized {
	volumePoints := make([]series.TimeSeriesPoint, 0, len(days))
	setsPoints := make([]series.TimeSeriesPoint, 0, len(days))
	repsPoints := make([]series.TimeSeriesPoint, 0, len(days))
	durationPoints := make([]series.TimeSeriesPoint, 0, len(days))
	densityPoints := make([]series.TimeSeriesPoint, 0, len(days))
	avgRestPoints := make([]series.TimeSeriesPoint, 0, len(days))
	efficiencyPoints := make([]series.TimeSeriesPoint, 0, len(days))
	throughputPoints := make([]series.TimeSeriesPoint, 0, len(days))

	for _, day := range days {
		var volume float64
		var reps float64
		for _, set := range day.Sets {
			volume += set.VolumeKg()
			reps += float64(set.Reps)
		}
		setCount := float64(len(day.Sets))
		duration := day.DurationMin()

		volumePoints = append(volumePoints, point(day.Day, volume))
		setsPoints = append(setsPoints, point(day.Day, setCount))
		repsPoints = append(repsPoints, point(day.Day, reps))
		durationPoints = append(durationPoints, point(day.Day, duration))

		// weighted daily density: total volume over total duration,
		// never an average of per-workout densities
		densityPoint := series.TimeSeriesPoint{Date: day.Day}
		throughputPoint := series.TimeSeriesPoint{Date: day.Day}
		if duration > 0 {
			density := pkg.RoundTo2Decimals(volume / duration)
			densityPoint.Value = &density
			throughput := pkg.RoundTo2Decimals(volume / duration)
			throughputPoint.Value = &throughput
		}
		densityPoints = append(densityPoints, densityPoint)
		throughputPoints = append(throughputPoints, throughputPoint)

		avgRestPoint := series.TimeSeriesPoint{Date: day.Day}
		efficiencyPoint := series.TimeSeriesPoint{Date: day.Day}
		if intervals := day.RestIntervalsMs(); len(intervals) > 0 {
			avgRest := AvgRestSec(intervals)
			avgRestPoint.Value = &avgRest
			if ratio := SetEfficiencyRatio(avgRest, series.DefaultTargetRestSeconds); ratio != nil {
				efficiencyPoint.Value = ratio
			}
		}
		avgRestPoints = append(avgRestPoints, avgRestPoint)
		efficiencyPoints = append(efficiencyPoints, efficiencyPoint)
	}

	raw := map[string][]series.TimeSeriesPoint{
		series.MeasureVolume.String():   volumePoints,
		series.MeasureSets.String():     setsPoints,
		series.MeasureReps.String():     repsPoints,
		series.MeasureDuration.String(): durationPoints,
	}
	if a.opts.DerivedKpisEnabled {
		raw[series.MeasureDensity.String()] = densityPoints
		raw[series.MeasureAvgRest.String()] = avgRestPoints
		raw[series.MeasureSetEfficiency.String()] = efficiencyPoints
		raw[series.MeasureThroughput.String()] = throughputPoints
	}

	normalized := a.adapter.Normalize(raw)
	if !a.opts.DerivedKpisEnabled {
		stripDerivedSeries(&normalized)
	}
	return normalized
}

var derivedMeasures = []series.Measure{
	series.MeasureDensity,
	series.MeasureAvgRest,
	series.MeasureSetEfficiency,
	series.MeasureThroughput,
}

func stripDerivedSeries(normalized *series.Normalized) {
	for _, measure := range derivedMeasures {
		delete(normalized.Series, measure.String())
		if mirror := series.MirrorKey(measure); mirror != "" {
			delete(normalized.Series, mirror)
		}
	}
	kept := normalized.Available[:0]
	for _, measure := range normalized.Available {
		derived := false
		for _, derivedMeasure := range derivedMeasures {
			if measure == derivedMeasure {
				derived = true
				break
			}
		}
		if !derived {
			kept = append(kept, measure)
		}
	}
	normalized.Available = kept
}

func personalRecords(
	workoutList []workouts.Workout,
	setsByWorkout map[int][]workouts.Set,
) []PersonalRecord {
	dayByWorkout := make(map[int]string, len(workoutList))
	for _, workout := range workoutList {
		dayByWorkout[workout.ID] = DayKey(workout.StartedAt)
	}

	best := make(map[string]PersonalRecord)
	for workoutID, workoutSets := range setsByWorkout {
		for _, set := range workoutSets {
			if set.WeightKg <= 0 {
				continue
			}
			record, exists := best[set.ExerciseID]
			if !exists ||
				set.WeightKg > record.WeightKg ||
				(set.WeightKg == record.WeightKg && set.Reps > record.Reps) {
				best[set.ExerciseID] = PersonalRecord{
					ExerciseID: set.ExerciseID,
					WeightKg:   set.WeightKg,
					Reps:       set.Reps,
					Date:       dayByWorkout[workoutID],
				}
			}
		}
	}

	records := make([]PersonalRecord, 0, len(best))
	for _, record := range best {
		records = append(records, record)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].ExerciseID < records[j].ExerciseID
	})
	return records
}

// restQuality relates the sets carrying an explicit rest value to the
// theoretically possible set-to-set gaps per workout.
func restQuality(setsByWorkout map[int][]workouts.Set) Quality {
	var observed, possibleGaps int
	for _, workoutSets := range setsByWorkout {
		if gaps := len(workoutSets) - 1; gaps > 0 {
			possibleGaps += gaps
		}
		for _, set := range workoutSets {
			if set.RestTimeSec != nil {
				observed++
			}
		}
	}

	coverage := RestCoveragePct(observed, possibleGaps)
	return Quality{
		RestCoveragePct: coverage,
		LowConfidence:   coverage < LowConfidenceCoveragePct,
	}
}

func point(day string, value float64) series.TimeSeriesPoint {
	return series.TimeSeriesPoint{Date: day, Value: &value}
}
