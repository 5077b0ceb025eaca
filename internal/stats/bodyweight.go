package stats

import (
	"strings"

	"github.com/bkovacic/liftstats/internal/workouts"
)

// bodyweightLoadFactors approximates the share of body mass actually
// moved in common bodyweight exercises. Unlisted exercises fall back
// to defaultLoadFactor.
var bodyweightLoadFactors = map[string]float64{
	"pull_up":  0.95,
	"chin_up":  0.95,
	"dip":      0.95,
	"push_up":  0.64,
	"inverted_row": 0.75,
	"pistol_squat": 0.85,
	"muscle_up":    1.0,
}

const defaultLoadFactor = 0.65

// BodyweightLoadFactor returns the fraction of body mass counted as
// load for the given exercise.
func BodyweightLoadFactor(exerciseID string) float64 {
	if factor, ok := bodyweightLoadFactors[strings.ToLower(exerciseID)]; ok {
		return factor
	}
	return defaultLoadFactor
}

// ImputeBodyweightLoads fills in WeightKg for bodyweight sets that
// carry none, from the resolved body mass and the per-exercise
// factor. Sets where the user already entered added weight keep it.
// No-op when body mass is unknown or not positive.
func ImputeBodyweightLoads(sets []workouts.Set, bodyMassKg float64) []workouts.Set {
	if bodyMassKg <= 0 {
		return sets
	}
	imputed := make([]workouts.Set, len(sets))
	copy(imputed, sets)
	for i := range imputed {
		if imputed[i].IsBodyweight && imputed[i].WeightKg == 0 {
			imputed[i].WeightKg = bodyMassKg * BodyweightLoadFactor(imputed[i].ExerciseID)
		}
	}
	return imputed
}
