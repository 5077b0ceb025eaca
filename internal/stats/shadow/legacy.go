package shadow

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/bkovacic/liftstats/internal/stats"
	"github.com/bkovacic/liftstats/internal/stats/series"
	"github.com/bkovacic/liftstats/internal/telemetry/tracing"
	"github.com/bkovacic/liftstats/internal/workouts"
)

//go:generate mockgen -source=$GOFILE -destination=legacy_mocks_test.go -package=shadow_test

type legacyRepo interface {
	GetWorkouts(ctx context.Context, params workouts.WorkoutParams) ([]workouts.Workout, error)
	GetSets(ctx context.Context, params workouts.SetParams) ([]workouts.Set, error)
}

// LegacySummarizer reproduces the v1 summary: volume totals, PRs and a
// daily tonnage series. It keeps the old quirks on purpose, raw UTC day
// truncation included, so that parity diffs surface real engine
// differences and not drift in the baseline.
type LegacySummarizer struct {
	repo legacyRepo
}

func NewLegacySummarizer(repo legacyRepo) *LegacySummarizer {
	return &LegacySummarizer{repo: repo}
}

// Summary is a FetchV1Func.
func (s *LegacySummarizer) Summary(ctx context.Context, params stats.Params) (_ *V1Output, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "stats.legacy.summary")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	workoutList, err := s.repo.GetWorkouts(ctx, workouts.WorkoutParams{
		UserID: params.UserID,
		From:   params.From,
		To:     params.To,
	})
	if err != nil {
		return nil, fmt.Errorf("legacy summary, get workouts: %w", err)
	}

	workoutIDs := make([]int, 0, len(workoutList))
	workoutStarts := make(map[int]time.Time, len(workoutList))
	for _, workout := range workoutList {
		workoutIDs = append(workoutIDs, workout.ID)
		workoutStarts[workout.ID] = workout.StartedAt
	}

	sets, err := s.repo.GetSets(ctx, workouts.SetParams{
		UserID:     params.UserID,
		WorkoutIDs: workoutIDs,
		ExerciseID: params.ExerciseID,
	})
	if err != nil {
		return nil, fmt.Errorf("legacy summary, get sets: %w", err)
	}

	output := &V1Output{
		Series: map[string][]series.TimeSeriesPoint{},
	}

	volumePerDay := map[string]float64{}
	best := map[string]V1PersonalRecord{}
	for _, set := range sets {
		volume := set.VolumeKg()
		output.Totals.TotalVolumeKg += volume

		day := workoutStarts[set.WorkoutID]
		if observed := set.ObservedAt(); observed != nil {
			day = *observed
		}
		// v1 bucketed days in UTC, not in the reporting timezone
		volumePerDay[day.UTC().Format("2006-01-02")] += volume

		if set.WeightKg <= 0 {
			continue
		}
		if record, exists := best[set.ExerciseID]; !exists || set.WeightKg > record.WeightKg {
			best[set.ExerciseID] = V1PersonalRecord{
				ExerciseID: set.ExerciseID,
				WeightKg:   set.WeightKg,
			}
		}
	}

	for _, record := range best {
		output.Prs = append(output.Prs, record)
	}
	sort.Slice(output.Prs, func(i, j int) bool {
		return output.Prs[i].ExerciseID < output.Prs[j].ExerciseID
	})

	days := make([]string, 0, len(volumePerDay))
	for day := range volumePerDay {
		days = append(days, day)
	}
	sort.Strings(days)

	tonnage := make([]series.TimeSeriesPoint, 0, len(days))
	for _, day := range days {
		volume := volumePerDay[day]
		tonnage = append(tonnage, series.TimeSeriesPoint{Date: day, Value: &volume})
	}
	// v1 called the volume series "tonnage"
	output.Series["tonnage"] = tonnage

	return output, nil
}
