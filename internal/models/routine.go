package models

import (
	"fmt"
	"time"
)

// Routine is a reusable workout template. Exercises are ordered and carry
// per-exercise set targets and rest durations.
type Routine struct {
	ID                      string            `json:"id" toml:"id"`
	Name                    string            `json:"name" toml:"name"`
	Notes                   string            `json:"notes,omitempty" toml:"notes"`
	RestBetweenExercisesSec int               `json:"rest_between_exercises_sec" toml:"rest_between_exercises_sec"`
	Exercises               []RoutineExercise `json:"exercises" toml:"exercises"`
	CreatedAt               time.Time         `json:"created_at" toml:"created_at"`
	UpdatedAt               time.Time         `json:"updated_at" toml:"updated_at"`
}

// RoutineExercise binds an exercise into a routine with its targets.
// Exactly one of TargetReps and TargetDurationSec is set for reps and timed
// exercises respectively; cardio entries carry neither.
type RoutineExercise struct {
	ExerciseID         string `json:"exercise_id" toml:"exercise_id"`
	TargetSets         int    `json:"target_sets" toml:"target_sets"`
	TargetReps         *int   `json:"target_reps,omitempty" toml:"target_reps"`
	TargetDurationSec  *int   `json:"target_duration_sec,omitempty" toml:"target_duration_sec"`
	RestBetweenSetsSec int    `json:"rest_between_sets_sec" toml:"rest_between_sets_sec"`
}

func (r *Routine) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("routine name cannot be empty")
	}
	if len(r.Exercises) == 0 {
		return fmt.Errorf("routine %q has no exercises", r.Name)
	}
	if r.RestBetweenExercisesSec < 0 {
		return fmt.Errorf("routine %q has a negative rest between exercises", r.Name)
	}
	for i, re := range r.Exercises {
		if re.ExerciseID == "" {
			return fmt.Errorf("exercise %d of routine %q has no exercise id", i+1, r.Name)
		}
		if re.TargetSets < 1 {
			return fmt.Errorf("exercise %d of routine %q must target at least one set", i+1, r.Name)
		}
		if re.RestBetweenSetsSec < 0 {
			return fmt.Errorf("exercise %d of routine %q has a negative rest between sets", i+1, r.Name)
		}
		if re.TargetReps != nil && re.TargetDurationSec != nil {
			return fmt.Errorf("exercise %d of routine %q sets both reps and duration targets", i+1, r.Name)
		}
	}
	return nil
}

// RoutineTOML is the authoring file shape for create-routine and
// update-routine. Exercises are referenced by name and resolved against the
// library when the routine is stored. Omitted rest values pick up the
// settings defaults at that point, an explicit 0 means no rest at all.
// For TOML parsing only.
type RoutineTOML struct {
	Name                 string                `toml:"name"`
	Notes                string                `toml:"notes"`
	RestBetweenExercises *int                  `toml:"rest_between_exercises"`
	Exercises            []RoutineExerciseTOML `toml:"exercise"`
}

type RoutineExerciseTOML struct {
	Name     string `toml:"name"`
	Sets     int    `toml:"sets"`
	Reps     *int   `toml:"reps"`
	Duration *int   `toml:"duration"`
	Rest     *int   `toml:"rest"`
}
