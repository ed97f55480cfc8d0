package models

import (
	"fmt"
	"time"
)

// ExerciseType determines which measurement a set of this exercise records.
type ExerciseType string

const (
	ExerciseReps   ExerciseType = "reps"
	ExerciseTime   ExerciseType = "time"
	ExerciseCardio ExerciseType = "cardio"
)

func (t ExerciseType) IsValid() bool {
	switch t {
	case ExerciseReps, ExerciseTime, ExerciseCardio:
		return true
	}
	return false
}

func (t ExerciseType) String() string {
	return string(t)
}

// MuscleTarget attributes a fraction of an exercise's training volume to one
// muscle. Weights across primary and secondary targets do not need to sum
// to 1.
type MuscleTarget struct {
	Muscle string  `json:"muscle" toml:"muscle"`
	Weight float64 `json:"weight" toml:"weight"`
}

type Exercise struct {
	ID               string         `json:"id" toml:"id"`
	Name             string         `json:"name" toml:"name"`
	Type             ExerciseType   `json:"type" toml:"type"`
	Equipment        string         `json:"equipment,omitempty" toml:"equipment"`
	PrimaryMuscles   []MuscleTarget `json:"primary_muscles,omitempty" toml:"primary_muscles"`
	SecondaryMuscles []MuscleTarget `json:"secondary_muscles,omitempty" toml:"secondary_muscles"`
	Patterns         []string       `json:"patterns,omitempty" toml:"patterns"`
	Notes            string         `json:"notes,omitempty" toml:"notes"`
	MediaRef         string         `json:"media_ref,omitempty" toml:"media_ref"`
	CreatedAt        time.Time      `json:"created_at" toml:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at" toml:"updated_at"`
}

func (e *Exercise) Validate() error {
	if e.Name == "" {
		return fmt.Errorf("exercise name cannot be empty")
	}
	if !e.Type.IsValid() {
		return fmt.Errorf("invalid exercise type %q (expected reps, time or cardio)", e.Type)
	}
	for _, m := range append(append([]MuscleTarget{}, e.PrimaryMuscles...), e.SecondaryMuscles...) {
		if m.Muscle == "" {
			return fmt.Errorf("muscle target of %q has an empty muscle name", e.Name)
		}
		if m.Weight <= 0 || m.Weight > 1 {
			return fmt.Errorf("muscle target %q of %q must have a weight in (0, 1]", m.Muscle, e.Name)
		}
	}
	return nil
}

// ExerciseTOML is the import file shape for batch-loading exercises.
// For TOML parsing only.
type ExerciseTOML struct {
	Name      string             `toml:"name"`
	Type      string             `toml:"type"`
	Equipment string             `toml:"equipment"`
	Primary   []MuscleTargetTOML `toml:"primary"`
	Secondary []MuscleTargetTOML `toml:"secondary"`
	Patterns  []string           `toml:"patterns"`
	Notes     string             `toml:"notes"`
	MediaRef  string             `toml:"media_ref"`
}

type MuscleTargetTOML struct {
	Muscle string  `toml:"muscle"`
	Weight float64 `toml:"weight"`
}

type ImportTOML struct {
	Exercises []ExerciseTOML `toml:"exercise"`
}
