package workouts

import "time"

// TimingQuality tells which rest-derivation path a set (or a whole day
// of sets) supports:
//   - actual: real start/completion timestamps are present
//   - legacy: only a stored rest duration or a single performed-at
//     timestamp is available
type TimingQuality string

const (
	TimingQualityActual TimingQuality = "actual"
	TimingQualityLegacy TimingQuality = "legacy"
)

func (tq TimingQuality) String() string {
	return string(tq)
}

// Workout is the DB-level workout session record. Immutable input to
// the stats engine once fetched.
type Workout struct {
	ID          int        `json:"id"`
	UserID      string     `json:"userId"`
	StartedAt   time.Time  `json:"startedAt"`
	DurationMin int        `json:"durationMin"`
	EndedAt     *time.Time `json:"endedAt,omitempty"`
}

// Set is one exercise set within a workout. RestTimeSec is the legacy,
// user-entered or device-estimated rest before this set. StartedAt and
// CompletedAt are the actual timestamps written by newer app versions;
// PerformedAt is the single timestamp older app versions wrote.
type Set struct {
	ID           int        `json:"id"`
	WorkoutID    int        `json:"workoutId"`
	ExerciseID   string     `json:"exerciseId"`
	ExerciseName string     `json:"exerciseName,omitempty"`
	WeightKg     float64    `json:"weightKg"`
	Reps         int        `json:"reps"`
	RestTimeSec  *int       `json:"restTimeSec,omitempty"`
	StartedAt    *time.Time `json:"startedAt,omitempty"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
	PerformedAt  *time.Time `json:"performedAt,omitempty"`
	IsBodyweight bool       `json:"isBodyweight"`
}

// HasActualTiming is true only when the timestamps needed for the
// corrected rest algorithm are present.
func (s Set) HasActualTiming() bool {
	return s.StartedAt != nil && s.CompletedAt != nil
}

func (s Set) TimingQuality() TimingQuality {
	if s.HasActualTiming() {
		return TimingQualityActual
	}
	return TimingQualityLegacy
}

// WorkMillis returns the work time of the set in milliseconds, 0 when
// the actual timestamps are not known.
func (s Set) WorkMillis() float64 {
	if !s.HasActualTiming() {
		return 0
	}
	millis := float64(s.CompletedAt.Sub(*s.StartedAt).Milliseconds())
	if millis < 0 {
		return 0
	}
	return millis
}

// ObservedAt is the single best timestamp for ordering sets within a
// day on the legacy path.
func (s Set) ObservedAt() *time.Time {
	if s.PerformedAt != nil {
		return s.PerformedAt
	}
	if s.CompletedAt != nil {
		return s.CompletedAt
	}
	return s.StartedAt
}

// VolumeKg is weight times reps. Bodyweight sets carry 0 here until the
// stats engine imputes a load for them.
func (s Set) VolumeKg() float64 {
	return s.WeightKg * float64(s.Reps)
}
