package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/misterclayt0n/ironlog/internal/models"
)

// SetInput carries the measurements for one completed set. Which fields
// matter depends on the type of the exercise under the cursor.
type SetInput struct {
	Reps        *int
	Weight      *float64
	DurationSec *int
	Incline     *float64
	Speed       *float64
	Distance    *float64
	RPE         *int
	Notes       string
}

// CompleteSet logs one set against the exercise under the cursor and
// advances the workout: into rest when more work remains, straight to the
// next exercise when the rest duration is zero, or to complete after the
// final set. Cardio exercises complete in a single entry regardless of
// targets.
func (m *Manager) CompleteSet(in SetInput) (*models.ActiveWorkoutState, error) {
	state, err := m.loadState()
	if err != nil {
		return nil, err
	}

	if state.Phase != models.PhaseExercise && state.Phase != models.PhaseCardio {
		return nil, &InvalidTransitionError{Phase: state.Phase, Op: "complete a set"}
	}

	wx := state.CurrentWorkoutExercise()
	entry, err := m.buildSetEntry(state, wx, in)
	if err != nil {
		return nil, err
	}

	state.CompletedSets = append(state.CompletedSets, *entry)
	state.StopwatchStart = nil

	completed := state.CurrentSet
	if err := m.advance(state, wx, true); err != nil {
		return nil, err
	}

	if err := m.repo.Save(state); err != nil {
		return nil, err
	}

	m.logger.Printf("session: completed set %d of %s, now in %s", completed+1, wx.ExerciseName, state.Phase)
	return state, nil
}

// SkipSet advances the cursor exactly like a completed set but records
// nothing and never enters rest.
func (m *Manager) SkipSet() (*models.ActiveWorkoutState, error) {
	state, err := m.loadState()
	if err != nil {
		return nil, err
	}

	if state.Phase != models.PhaseExercise {
		return nil, &InvalidTransitionError{Phase: state.Phase, Op: "skip a set"}
	}

	wx := state.CurrentWorkoutExercise()
	skipped := state.CurrentSet
	state.StopwatchStart = nil
	if err := m.advance(state, wx, false); err != nil {
		return nil, err
	}

	if err := m.repo.Save(state); err != nil {
		return nil, err
	}

	m.logger.Printf("session: skipped set %d of %s, now in %s", skipped+1, wx.ExerciseName, state.Phase)
	return state, nil
}

// SkipExercise abandons whatever remains of the exercise under the cursor.
// During rest the cursor already points at the upcoming exercise, so
// skipping there drops that one.
func (m *Manager) SkipExercise() (*models.ActiveWorkoutState, error) {
	state, err := m.loadState()
	if err != nil {
		return nil, err
	}

	switch state.Phase {
	case models.PhaseExercise, models.PhaseCardio, models.PhaseRest:
	default:
		return nil, &InvalidTransitionError{Phase: state.Phase, Op: "skip an exercise"}
	}

	skipped := state.CurrentWorkoutExercise().ExerciseName
	state.StopwatchStart = nil
	state.RestEndsAt = nil
	state.RestTotalSec = 0

	if state.CurrentExercise >= len(state.WorkoutExercises)-1 {
		state.Phase = models.PhaseComplete
		state.Prefill = nil
	} else {
		state.CurrentExercise++
		state.CurrentSet = 0
		state.Phase = entryPhaseFor(state.CurrentWorkoutExercise())
		m.refreshPrefill(state)
	}

	if err := m.repo.Save(state); err != nil {
		return nil, err
	}

	m.logger.Printf("session: skipped exercise %s, now in %s", skipped, state.Phase)
	return state, nil
}

// StartStopwatch begins timing the current work. Completing the set with
// no explicit duration then uses the elapsed time.
func (m *Manager) StartStopwatch() (*models.ActiveWorkoutState, error) {
	state, err := m.loadState()
	if err != nil {
		return nil, err
	}

	if state.Phase != models.PhaseExercise && state.Phase != models.PhaseCardio {
		return nil, &InvalidTransitionError{Phase: state.Phase, Op: "start the stopwatch"}
	}
	wx := state.CurrentWorkoutExercise()
	if wx.Type == models.ExerciseReps {
		return nil, &ValidationError{Field: "stopwatch", Reason: fmt.Sprintf("%s is not a timed exercise", wx.ExerciseName)}
	}

	started := m.now().UTC()
	state.StopwatchStart = &started

	if err := m.repo.Save(state); err != nil {
		return nil, err
	}

	m.logger.Printf("session: stopwatch started for %s", wx.ExerciseName)
	return state, nil
}

// StopStopwatch discards the running stopwatch and reports the elapsed
// seconds. To log the measured time instead, complete the set without a
// duration while the watch is running.
func (m *Manager) StopStopwatch() (int, error) {
	state, err := m.loadState()
	if err != nil {
		return 0, err
	}

	if state.StopwatchStart == nil {
		return 0, &ValidationError{Field: "stopwatch", Reason: "not running"}
	}

	elapsed := int(m.now().UTC().Sub(*state.StopwatchStart).Seconds())
	state.StopwatchStart = nil

	if err := m.repo.Save(state); err != nil {
		return 0, err
	}
	return elapsed, nil
}

// advance moves the cursor after a set was completed or skipped. Cardio
// always counts as the last set of its exercise.
func (m *Manager) advance(state *models.ActiveWorkoutState, wx *models.WorkoutExercise, withRest bool) error {
	lastSet := wx.Type == models.ExerciseCardio || state.CurrentSet >= wx.TargetSets-1
	lastExercise := state.CurrentExercise >= len(state.WorkoutExercises)-1

	switch {
	case lastSet && lastExercise:
		state.Phase = models.PhaseComplete
		state.RestEndsAt = nil
		state.RestTotalSec = 0
		state.Prefill = nil
	case lastSet:
		state.CurrentExercise++
		state.CurrentSet = 0
		m.refreshPrefill(state)
		if !withRest {
			state.Phase = entryPhaseFor(state.CurrentWorkoutExercise())
			return nil
		}
		rest, err := m.restBetweenExercises(state)
		if err != nil {
			return err
		}
		m.enterRestOrWork(state, rest)
	default:
		state.CurrentSet++
		if !withRest {
			state.Phase = entryPhaseFor(wx)
			return nil
		}
		m.enterRestOrWork(state, wx.RestBetweenSetsSec)
	}
	return nil
}

// enterRestOrWork starts a rest of the given length, or goes straight to
// the next work phase when there is no rest to take.
func (m *Manager) enterRestOrWork(state *models.ActiveWorkoutState, restSec int) {
	if restSec <= 0 {
		state.Phase = entryPhaseFor(state.CurrentWorkoutExercise())
		state.RestEndsAt = nil
		state.RestTotalSec = 0
		return
	}

	ends := m.now().UTC().Add(time.Duration(restSec) * time.Second)
	state.Phase = models.PhaseRest
	state.RestEndsAt = &ends
	state.RestTotalSec = restSec
}

func (m *Manager) restBetweenExercises(state *models.ActiveWorkoutState) (int, error) {
	if state.Routine != nil {
		return state.Routine.RestBetweenExercisesSec, nil
	}

	settings, err := m.store.GetSettings()
	if err != nil {
		return 0, err
	}
	return settings.DefaultRestBetweenExercisesSec, nil
}

func (m *Manager) buildSetEntry(state *models.ActiveWorkoutState, wx *models.WorkoutExercise, in SetInput) (*models.SetEntry, error) {
	if in.RPE != nil && (*in.RPE < 1 || *in.RPE > 10) {
		return nil, &ValidationError{Field: "rpe", Reason: "must be between 1 and 10"}
	}

	entry := &models.SetEntry{
		ID:          uuid.New().String(),
		SessionID:   state.Session.ID,
		ExerciseID:  wx.ExerciseID,
		SetIndex:    state.CurrentSet,
		RPE:         in.RPE,
		Notes:       in.Notes,
		CompletedAt: m.now().UTC(),
	}

	switch wx.Type {
	case models.ExerciseReps:
		if in.Reps == nil {
			return nil, &ValidationError{Field: "reps", Reason: fmt.Sprintf("%s takes a reps count", wx.ExerciseName)}
		}
		if *in.Reps < 1 {
			return nil, &ValidationError{Field: "reps", Reason: "must be at least 1"}
		}
		weight := 0.0
		if in.Weight != nil {
			weight = *in.Weight
		}
		if weight < 0 {
			return nil, &ValidationError{Field: "weight", Reason: "cannot be negative"}
		}
		entry.Reps = &models.RepsSet{Reps: *in.Reps, Weight: weight}
	case models.ExerciseTime:
		duration, err := m.resolveDuration(state, in)
		if err != nil {
			return nil, err
		}
		entry.Time = &models.TimedSet{DurationSec: duration}
	case models.ExerciseCardio:
		duration, err := m.resolveDuration(state, in)
		if err != nil {
			return nil, err
		}
		entry.SetIndex = 0
		entry.Cardio = &models.CardioSet{
			DurationSec: duration,
			Incline:     in.Incline,
			Speed:       in.Speed,
			Distance:    in.Distance,
		}
	default:
		return nil, &ValidationError{Field: "exercise", Reason: fmt.Sprintf("unknown exercise type %q", wx.Type)}
	}

	return entry, nil
}

func (m *Manager) resolveDuration(state *models.ActiveWorkoutState, in SetInput) (int, error) {
	if in.DurationSec != nil {
		if *in.DurationSec < 1 {
			return 0, &ValidationError{Field: "duration", Reason: "must be at least 1 second"}
		}
		return *in.DurationSec, nil
	}

	if state.StopwatchStart != nil {
		elapsed := int(m.now().UTC().Sub(*state.StopwatchStart).Seconds())
		if elapsed < 1 {
			elapsed = 1
		}
		return elapsed, nil
	}

	return 0, &ValidationError{Field: "duration", Reason: "provide a duration or start the stopwatch"}
}
