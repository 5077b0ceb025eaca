package workouts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bkovacic/liftstats/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrWorkoutNotFound = errors.New("workout not found")
	ErrSetNotFound     = errors.New("set not found")
)

type WorkoutParams struct {
	UserID string
	From   *time.Time
	To     *time.Time
}

type SetParams struct {
	UserID     string
	WorkoutIDs []int
	ExerciseID string
}

type Repo struct {
	db   *pgxpool.Pool
	caps *Capabilities
}

func NewRepo(db *pgxpool.Pool) *Repo {
	repo := &Repo{
		db: db,
	}
	repo.caps = NewCapabilities(repo)
	return repo
}

// Capabilities exposes the memoized schema probe, mostly so that the
// server can log the detected schema generation at startup.
func (r *Repo) Capabilities() *Capabilities {
	return r.caps
}

// ProbeActualTiming checks whether the workout_set table carries the
// started_at / completed_at columns written by newer app versions.
// Older deployments only have rest_time_sec and performed_at.
func (r *Repo) ProbeActualTiming(ctx context.Context) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.probeTiming")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`
			SELECT COUNT(*) FROM information_schema.columns
				WHERE table_name = 'workout_set'
				AND column_name IN ('started_at', 'completed_at');`,
	)
	if err != nil {
		return false, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return false, err
	}
	if !rows.Next() {
		return false, errors.New("unexpected error [no rows next]")
	}

	var count int
	if err := rows.Scan(&count); err != nil {
		return false, fmt.Errorf("rows scan: %w", err)
	}

	span.SetAttributes(attribute.Bool("timing_columns", count == 2))
	return count == 2, nil
}

func (r *Repo) AddWorkout(ctx context.Context, workout Workout) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO workout
				(user_id, started_at, duration_min, ended_at)
				VALUES ($1, $2, $3, $4)
			RETURNING id;`,
		workout.UserID, workout.StartedAt, workout.DurationMin, workout.EndedAt,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}
	if !rows.Next() {
		return nil, errors.New("unexpected error [no rows next]")
	}

	var id int
	if err := rows.Scan(&id); err != nil {
		return nil, fmt.Errorf("rows scan: %w", err)
	}

	span.SetAttributes(attribute.Int("workout.id", id))

	workout.ID = id
	return &workout, nil
}

func (r *Repo) GetWorkout(ctx context.Context, id int, userID string) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	rows, err := r.db.Query(
		ctx,
		`
			SELECT id, user_id, started_at, duration_min, ended_at
			FROM workout
			WHERE id = $1 AND user_id = $2;`,
		id, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	workouts, err := r.rows2workouts(rows)
	if err != nil {
		return nil, err
	}
	if len(workouts) != 1 {
		return nil, ErrWorkoutNotFound
	}

	return &workouts[0], nil
}

// GetWorkouts returns all workouts of a user in a date range, ordered
// by start time ascending.
func (r *Repo) GetWorkouts(ctx context.Context, params WorkoutParams) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", params.UserID))
	if params.From != nil {
		span.SetAttributes(attribute.String("from", params.From.String()))
	}
	if params.To != nil {
		span.SetAttributes(attribute.String("to", params.To.String()))
	}

	rows, err := r.db.Query(
		ctx,
		`
			SELECT id, user_id, started_at, duration_min, ended_at
			FROM workout
				WHERE user_id = $1
				AND ($2::timestamptz IS NULL OR started_at >= $2)
				AND ($3::timestamptz IS NULL OR started_at <= $3)
			ORDER BY started_at ASC;`,
		params.UserID, params.From, params.To,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	workouts, err := r.rows2workouts(rows)
	if err != nil {
		return nil, fmt.Errorf("rows2workouts: %w", err)
	}
	return workouts, nil
}

func (r *Repo) DeleteWorkout(ctx context.Context, id int, userID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM workout WHERE id = $1 AND user_id = $2;`,
		id, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrWorkoutNotFound
	}
	return nil
}

func (r *Repo) AddSet(ctx context.Context, set Set) (_ *Set, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.addSet")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO workout_set
				(workout_id, exercise_id, weight_kg, reps, rest_time_sec, started_at, completed_at, performed_at, is_bodyweight)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id;`,
		set.WorkoutID, set.ExerciseID, set.WeightKg, set.Reps,
		set.RestTimeSec, set.StartedAt, set.CompletedAt, set.PerformedAt, set.IsBodyweight,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}
	if !rows.Next() {
		return nil, errors.New("unexpected error [no rows next]")
	}

	var id int
	if err := rows.Scan(&id); err != nil {
		return nil, fmt.Errorf("rows scan: %w", err)
	}

	span.SetAttributes(attribute.Int("set.id", id))

	set.ID = id
	return &set, nil
}

func (r *Repo) UpdateSet(ctx context.Context, set *Set) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.updateSet")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", set.ID))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE workout_set
			SET exercise_id = $1, weight_kg = $2, reps = $3, rest_time_sec = $4,
				started_at = $5, completed_at = $6, performed_at = $7, is_bodyweight = $8
			WHERE id = $9;`,
		set.ExerciseID, set.WeightKg, set.Reps, set.RestTimeSec,
		set.StartedAt, set.CompletedAt, set.PerformedAt, set.IsBodyweight, set.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSetNotFound
	}
	return nil
}

func (r *Repo) DeleteSet(ctx context.Context, id int) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.deleteSet")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("id", id))

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM workout_set WHERE id = $1;`,
		id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSetNotFound
	}
	return nil
}

// GetSets returns the sets of the given workouts. It first tries the
// full query including the actual timing columns; when that fails
// (e.g. on an older schema) it retries a narrower query without them
// and marks the sets as legacy-timed. When even the narrow query
// fails, an empty slice is returned so callers can still produce a
// well-shaped result.
func (r *Repo) GetSets(ctx context.Context, params SetParams) (_ []Set, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.workouts.sets")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", params.UserID))
	span.SetAttributes(attribute.String("exercise_id", params.ExerciseID))
	span.SetAttributes(attribute.Int("workouts", len(params.WorkoutIDs)))

	if len(params.WorkoutIDs) == 0 {
		return []Set{}, nil
	}

	if r.caps.SupportsActualTiming(ctx) {
		sets, fullErr := r.getSetsFull(ctx, params)
		if fullErr == nil {
			return sets, nil
		}
		log.Warnf("get sets [full query]: %s, retrying without timing columns", fullErr)
		span.SetAttributes(attribute.Bool("fallback.narrow", true))
	} else {
		span.SetAttributes(attribute.Bool("fallback.narrow", true))
	}

	sets, narrowErr := r.getSetsNarrow(ctx, params)
	if narrowErr == nil {
		return sets, nil
	}
	log.Errorf("get sets [narrow query]: %s, returning empty set list", narrowErr)
	span.SetAttributes(attribute.Bool("fallback.empty", true))

	return []Set{}, nil
}

func (r *Repo) getSetsFull(ctx context.Context, params SetParams) ([]Set, error) {
	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				s.id, s.workout_id, s.exercise_id, et.name,
				s.weight_kg, s.reps, s.rest_time_sec,
				s.started_at, s.completed_at, s.performed_at, s.is_bodyweight
			FROM workout_set s
			JOIN workout w ON s.workout_id = w.id
			LEFT JOIN exercise_type et ON s.exercise_id = et.exercise_id
				WHERE w.user_id = $1
				AND s.workout_id = ANY($2)
				AND ($3::text = '' OR s.exercise_id = $3)
			ORDER BY s.workout_id, s.id;`,
		params.UserID, params.WorkoutIDs, params.ExerciseID,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	sets, err := r.rows2sets(rows)
	if err != nil {
		return nil, fmt.Errorf("rows2sets: %w", err)
	}
	return sets, nil
}

func (r *Repo) getSetsNarrow(ctx context.Context, params SetParams) ([]Set, error) {
	rows, err := r.db.Query(
		ctx,
		`
			SELECT
				s.id, s.workout_id, s.exercise_id, et.name,
				s.weight_kg, s.reps, s.rest_time_sec,
				s.performed_at, s.is_bodyweight
			FROM workout_set s
			JOIN workout w ON s.workout_id = w.id
			LEFT JOIN exercise_type et ON s.exercise_id = et.exercise_id
				WHERE w.user_id = $1
				AND s.workout_id = ANY($2)
				AND ($3::text = '' OR s.exercise_id = $3)
			ORDER BY s.workout_id, s.id;`,
		params.UserID, params.WorkoutIDs, params.ExerciseID,
	)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	var sets []Set
	for rows.Next() {
		var set Set
		var exerciseName *string
		if err := rows.Scan(
			&set.ID, &set.WorkoutID, &set.ExerciseID, &exerciseName,
			&set.WeightKg, &set.Reps, &set.RestTimeSec,
			&set.PerformedAt, &set.IsBodyweight,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		if exerciseName != nil {
			set.ExerciseName = *exerciseName
		}
		sets = append(sets, set)
	}
	return sets, nil
}

func (r *Repo) rows2workouts(rows pgx.Rows) ([]Workout, error) {
	var workouts []Workout
	for rows.Next() {
		var workout Workout
		if err := rows.Scan(
			&workout.ID, &workout.UserID, &workout.StartedAt,
			&workout.DurationMin, &workout.EndedAt,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		workouts = append(workouts, workout)
	}
	return workouts, nil
}

func (r *Repo) rows2sets(rows pgx.Rows) ([]Set, error) {
	var sets []Set
	for rows.Next() {
		var set Set
		var exerciseName *string
		if err := rows.Scan(
			&set.ID, &set.WorkoutID, &set.ExerciseID, &exerciseName,
			&set.WeightKg, &set.Reps, &set.RestTimeSec,
			&set.StartedAt, &set.CompletedAt, &set.PerformedAt, &set.IsBodyweight,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		if exerciseName != nil {
			set.ExerciseName = *exerciseName
		}
		sets = append(sets, set)
	}
	return sets, nil
}
