package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExerciseValidate(t *testing.T) {
	valid := Exercise{
		Name: "Bench Press",
		Type: ExerciseReps,
		PrimaryMuscles: []MuscleTarget{
			{Muscle: "chest", Weight: 1.0},
		},
		SecondaryMuscles: []MuscleTarget{
			{Muscle: "triceps", Weight: 0.5},
		},
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Exercise)
	}{
		{"empty name", func(e *Exercise) { e.Name = "" }},
		{"unknown type", func(e *Exercise) { e.Type = "isometric" }},
		{"empty muscle name", func(e *Exercise) { e.PrimaryMuscles[0].Muscle = "" }},
		{"zero muscle weight", func(e *Exercise) { e.SecondaryMuscles[0].Weight = 0 }},
		{"negative muscle weight", func(e *Exercise) { e.PrimaryMuscles[0].Weight = -1 }},
		{"muscle weight above one", func(e *Exercise) { e.PrimaryMuscles[0].Weight = 5.0 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ex := valid
			ex.PrimaryMuscles = append([]MuscleTarget{}, valid.PrimaryMuscles...)
			ex.SecondaryMuscles = append([]MuscleTarget{}, valid.SecondaryMuscles...)
			tc.mutate(&ex)
			require.Error(t, ex.Validate())
		})
	}
}

func TestExerciseValidate_NoMusclesIsFine(t *testing.T) {
	ex := Exercise{Name: "Treadmill", Type: ExerciseCardio}
	require.NoError(t, ex.Validate())
}
