package session

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/misterclayt0n/ironlog/internal/models"
)

// SaveAsRoutine materializes the exercise list of a finished free workout
// into a reusable routine, skipped exercises and all. The session itself
// still has to be ended afterwards.
func (m *Manager) SaveAsRoutine(name, notes string) (*models.Routine, error) {
	state, err := m.loadState()
	if err != nil {
		return nil, err
	}

	if !state.IsFreeWorkout {
		return nil, &ValidationError{Field: "workout", Reason: "only free workouts can be saved as a routine"}
	}
	if state.Phase != models.PhaseComplete {
		return nil, &InvalidTransitionError{Phase: state.Phase, Op: "save the workout as a routine"}
	}
	if name == "" {
		return nil, &ValidationError{Field: "name", Reason: "cannot be empty"}
	}

	existing, err := m.store.GetRoutineByName(name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &ValidationError{Field: "name", Reason: fmt.Sprintf("routine %q already exists", name)}
	}

	settings, err := m.store.GetSettings()
	if err != nil {
		return nil, err
	}

	now := m.now().UTC()
	routine := &models.Routine{
		ID:                      uuid.New().String(),
		Name:                    name,
		Notes:                   notes,
		RestBetweenExercisesSec: settings.DefaultRestBetweenExercisesSec,
		CreatedAt:               now,
		UpdatedAt:               now,
	}
	for _, wx := range state.WorkoutExercises {
		routine.Exercises = append(routine.Exercises, models.RoutineExercise{
			ExerciseID:         wx.ExerciseID,
			TargetSets:         wx.TargetSets,
			TargetReps:         wx.TargetReps,
			TargetDurationSec:  wx.TargetDurationSec,
			RestBetweenSetsSec: wx.RestBetweenSetsSec,
		})
	}

	if err := m.store.CreateRoutine(*routine); err != nil {
		return nil, err
	}

	m.logger.Printf("session: saved free workout %s as routine %q", state.Session.ID, name)
	return routine, nil
}
