package models

import "time"

type SessionStatus string

const (
	SessionActive    SessionStatus = "active"
	SessionCompleted SessionStatus = "completed"
	SessionAbandoned SessionStatus = "abandoned"
)

func (s SessionStatus) IsValid() bool {
	switch s {
	case SessionActive, SessionCompleted, SessionAbandoned:
		return true
	}
	return false
}

// WorkoutSession is one logged workout. RoutineID is nil for free workouts,
// PlannedWorkoutID is nil for unplanned ones. EndedAt stays nil while the
// session is active.
type WorkoutSession struct {
	ID               string        `json:"id" toml:"id"`
	RoutineID        *string       `json:"routine_id,omitempty" toml:"routine_id"`
	PlannedWorkoutID *string       `json:"planned_workout_id,omitempty" toml:"planned_workout_id"`
	StartedAt        time.Time     `json:"started_at" toml:"started_at"`
	EndedAt          *time.Time    `json:"ended_at,omitempty" toml:"ended_at"`
	Status           SessionStatus `json:"status" toml:"status"`
	Notes            string        `json:"notes,omitempty" toml:"notes"`
}

// RepsSet is one strength set. Weight 0 means bodyweight.
type RepsSet struct {
	Reps   int     `json:"reps" toml:"reps"`
	Weight float64 `json:"weight" toml:"weight"`
}

// TimedSet is one timed hold, a plank for example.
type TimedSet struct {
	DurationSec int `json:"duration_sec" toml:"duration_sec"`
}

// CardioSet is one cardio stretch. Everything besides the duration is
// optional machine telemetry.
type CardioSet struct {
	DurationSec int      `json:"duration_sec" toml:"duration_sec"`
	Incline     *float64 `json:"incline,omitempty" toml:"incline"`
	Speed       *float64 `json:"speed,omitempty" toml:"speed"`
	Distance    *float64 `json:"distance,omitempty" toml:"distance"`
}

// SetEntry is one completed unit of work. Exactly one of Reps, Time and
// Cardio is non-nil, matching the type of the exercise it was logged
// against. Cardio entries always carry SetIndex 0.
type SetEntry struct {
	ID          string     `json:"id" toml:"id"`
	SessionID   string     `json:"session_id" toml:"session_id"`
	ExerciseID  string     `json:"exercise_id" toml:"exercise_id"`
	SetIndex    int        `json:"set_index" toml:"set_index"`
	Reps        *RepsSet   `json:"reps,omitempty" toml:"reps"`
	Time        *TimedSet  `json:"time,omitempty" toml:"time"`
	Cardio      *CardioSet `json:"cardio,omitempty" toml:"cardio"`
	RPE         *int       `json:"rpe,omitempty" toml:"rpe"`
	Notes       string     `json:"notes,omitempty" toml:"notes"`
	CompletedAt time.Time  `json:"completed_at" toml:"completed_at"`
}

// WorkoutExercise is one slot in the active workout's exercise list. Name
// and type are captured from the library when the slot is created so the
// session stays readable even if the exercise is later edited or deleted.
type WorkoutExercise struct {
	ExerciseID         string       `json:"exercise_id" toml:"exercise_id"`
	ExerciseName       string       `json:"exercise_name" toml:"exercise_name"`
	Type               ExerciseType `json:"type" toml:"type"`
	TargetSets         int          `json:"target_sets" toml:"target_sets"`
	TargetReps         *int         `json:"target_reps,omitempty" toml:"target_reps"`
	TargetDurationSec  *int         `json:"target_duration_sec,omitempty" toml:"target_duration_sec"`
	RestBetweenSetsSec int          `json:"rest_between_sets_sec" toml:"rest_between_sets_sec"`
	AddedDuringWorkout bool         `json:"added_during_workout" toml:"added_during_workout"`
}

// Phase is the position of the active workout in its lifecycle.
type Phase string

const (
	PhaseEmpty    Phase = "empty"
	PhaseExercise Phase = "exercise"
	PhaseCardio   Phase = "cardio"
	PhaseRest     Phase = "rest"
	PhaseComplete Phase = "complete"
)

func (p Phase) IsValid() bool {
	switch p {
	case PhaseEmpty, PhaseExercise, PhaseCardio, PhaseRest, PhaseComplete:
		return true
	}
	return false
}

// SetDefaults pre-populates the next set's entry form from the most recent
// logged set of the same exercise.
type SetDefaults struct {
	ExerciseID  string   `json:"exercise_id" toml:"exercise_id"`
	Reps        *int     `json:"reps,omitempty" toml:"reps"`
	Weight      *float64 `json:"weight,omitempty" toml:"weight"`
	DurationSec *int     `json:"duration_sec,omitempty" toml:"duration_sec"`
}

// ActiveWorkoutState is the single snapshot of the workout in progress. It
// is persisted whole after every mutation and reloaded before the next one.
type ActiveWorkoutState struct {
	Session          WorkoutSession    `json:"session" toml:"session"`
	Routine          *Routine          `json:"routine,omitempty" toml:"routine"`
	WorkoutExercises []WorkoutExercise `json:"workout_exercises" toml:"workout_exercises"`
	CurrentExercise  int               `json:"current_exercise" toml:"current_exercise"`
	CurrentSet       int               `json:"current_set" toml:"current_set"`
	CompletedSets    []SetEntry        `json:"completed_sets" toml:"completed_sets"`
	IsFreeWorkout    bool              `json:"is_free_workout" toml:"is_free_workout"`
	Phase            Phase             `json:"phase" toml:"phase"`
	RestEndsAt       *time.Time        `json:"rest_ends_at,omitempty" toml:"rest_ends_at"`
	RestTotalSec     int               `json:"rest_total_sec" toml:"rest_total_sec"`
	StopwatchStart   *time.Time        `json:"stopwatch_start,omitempty" toml:"stopwatch_start"`
	Prefill          *SetDefaults      `json:"prefill,omitempty" toml:"prefill"`
}

// CurrentWorkoutExercise returns the exercise the cursor points at, or nil
// when the workout has no exercises or is complete.
func (s *ActiveWorkoutState) CurrentWorkoutExercise() *WorkoutExercise {
	if s.CurrentExercise < 0 || s.CurrentExercise >= len(s.WorkoutExercises) {
		return nil
	}
	return &s.WorkoutExercises[s.CurrentExercise]
}
