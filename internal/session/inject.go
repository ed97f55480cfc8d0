package session

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/misterclayt0n/ironlog/internal/models"
)

// Targets are the set scheme for an exercise added mid-workout.
type Targets struct {
	Sets        int
	Reps        *int
	DurationSec *int
	RestSec     int
}

// AddExercise appends a library exercise to the active workout. Exercises
// are only ever appended, never inserted before the cursor, so completed
// work keeps its positions. Adding the first exercise to an empty free
// workout moves it into its work phase.
func (m *Manager) AddExercise(exerciseID string, t Targets) (*models.ActiveWorkoutState, error) {
	state, err := m.loadState()
	if err != nil {
		return nil, err
	}

	if state.Phase == models.PhaseComplete {
		return nil, &InvalidTransitionError{Phase: state.Phase, Op: "add an exercise"}
	}

	ex, err := m.store.GetExerciseByID(exerciseID)
	if err != nil {
		return nil, err
	}
	if ex == nil {
		return nil, &ValidationError{Field: "exercise", Reason: "does not exist in the library"}
	}

	if err := validateTargets(ex, t); err != nil {
		return nil, err
	}

	sets := t.Sets
	if ex.Type == models.ExerciseCardio {
		sets = 1
	}

	state.WorkoutExercises = append(state.WorkoutExercises, models.WorkoutExercise{
		ExerciseID:         ex.ID,
		ExerciseName:       ex.Name,
		Type:               ex.Type,
		TargetSets:         sets,
		TargetReps:         t.Reps,
		TargetDurationSec:  t.DurationSec,
		RestBetweenSetsSec: t.RestSec,
		AddedDuringWorkout: true,
	})

	if state.Phase == models.PhaseEmpty {
		state.CurrentExercise = 0
		state.CurrentSet = 0
		state.Phase = entryPhaseFor(state.CurrentWorkoutExercise())
		m.refreshPrefill(state)
	}

	if err := m.repo.Save(state); err != nil {
		return nil, err
	}

	m.logger.Printf("session: added %s, %d exercises total", ex.Name, len(state.WorkoutExercises))
	return state, nil
}

// QuickCreateAndAdd registers a brand new exercise and appends it to the
// workout in one motion. Everything is validated before the library is
// touched, a typo must not leave a half-made exercise behind.
func (m *Manager) QuickCreateAndAdd(ex models.Exercise, t Targets) (*models.ActiveWorkoutState, error) {
	state, err := m.loadState()
	if err != nil {
		return nil, err
	}
	if state.Phase == models.PhaseComplete {
		return nil, &InvalidTransitionError{Phase: state.Phase, Op: "add an exercise"}
	}

	if err := ex.Validate(); err != nil {
		return nil, &ValidationError{Field: "exercise", Reason: err.Error()}
	}
	if err := validateTargets(&ex, t); err != nil {
		return nil, err
	}

	existing, err := m.store.GetExerciseByName(ex.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &ValidationError{Field: "exercise", Reason: fmt.Sprintf("%q already exists, add it directly", ex.Name)}
	}

	if ex.ID == "" {
		ex.ID = uuid.New().String()
	}
	now := m.now().UTC()
	if ex.CreatedAt.IsZero() {
		ex.CreatedAt = now
	}
	ex.UpdatedAt = now

	if err := m.store.CreateExercise(ex); err != nil {
		return nil, err
	}

	m.logger.Printf("session: quick-created exercise %s", ex.Name)
	return m.AddExercise(ex.ID, t)
}

func validateTargets(ex *models.Exercise, t Targets) error {
	if t.RestSec < 0 {
		return &ValidationError{Field: "rest", Reason: "cannot be negative"}
	}

	switch ex.Type {
	case models.ExerciseReps:
		if t.Sets < 1 {
			return &ValidationError{Field: "sets", Reason: "must be at least 1"}
		}
		if t.Reps == nil {
			return &ValidationError{Field: "reps", Reason: fmt.Sprintf("%s needs a reps target", ex.Name)}
		}
		if *t.Reps < 1 {
			return &ValidationError{Field: "reps", Reason: "must be at least 1"}
		}
		if t.DurationSec != nil {
			return &ValidationError{Field: "duration", Reason: fmt.Sprintf("%s takes reps, not a duration", ex.Name)}
		}
	case models.ExerciseTime:
		if t.Sets < 1 {
			return &ValidationError{Field: "sets", Reason: "must be at least 1"}
		}
		if t.DurationSec == nil {
			return &ValidationError{Field: "duration", Reason: fmt.Sprintf("%s needs a duration target", ex.Name)}
		}
		if *t.DurationSec < 1 {
			return &ValidationError{Field: "duration", Reason: "must be at least 1 second"}
		}
		if t.Reps != nil {
			return &ValidationError{Field: "reps", Reason: fmt.Sprintf("%s takes a duration, not reps", ex.Name)}
		}
	case models.ExerciseCardio:
		if t.Reps != nil || t.DurationSec != nil {
			return &ValidationError{Field: "targets", Reason: fmt.Sprintf("cardio exercise %s takes no set targets", ex.Name)}
		}
	default:
		return &ValidationError{Field: "exercise", Reason: fmt.Sprintf("unknown exercise type %q", ex.Type)}
	}
	return nil
}
