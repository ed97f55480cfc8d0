package session

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/misterclayt0n/ironlog/internal/models"
)

func TestStartFromRoutine_BindsRoutineExercises(t *testing.T) {
	m, store, _, _ := newTestManager(t)
	seedPushDay(store)

	state, err := m.StartFromRoutine("Push Day", "")
	require.NoError(t, err)

	require.Equal(t, models.PhaseExercise, state.Phase)
	require.False(t, state.IsFreeWorkout)
	require.Len(t, state.WorkoutExercises, 2)
	require.Equal(t, "Bench Press", state.WorkoutExercises[0].ExerciseName)
	require.Equal(t, models.ExerciseReps, state.WorkoutExercises[0].Type)
	require.Equal(t, "Plank", state.WorkoutExercises[1].ExerciseName)
	require.Equal(t, models.ExerciseTime, state.WorkoutExercises[1].Type)
	require.Equal(t, 0, state.CurrentExercise)
	require.Equal(t, 0, state.CurrentSet)

	// The session row is inserted immediately so a crash cannot lose the start.
	require.Len(t, store.insertedSessions, 1)
	require.Equal(t, models.SessionActive, store.insertedSessions[0].Status)
	require.NotNil(t, store.insertedSessions[0].RoutineID)
	require.Equal(t, "rt-push", *store.insertedSessions[0].RoutineID)

	// The snapshot is in place.
	loaded, err := m.Active()
	require.NoError(t, err)
	require.Equal(t, state.Session.ID, loaded.Session.ID)
}

func TestStartFromRoutine_UnknownRoutine(t *testing.T) {
	m, _, _, _ := newTestManager(t)

	_, err := m.StartFromRoutine("nope", "")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "routine", verr.Field)
}

func TestStartFromRoutine_EmptyRoutine(t *testing.T) {
	m, store, _, _ := newTestManager(t)
	store.routines["Hollow"] = &models.Routine{ID: "rt-hollow", Name: "Hollow"}

	_, err := m.StartFromRoutine("Hollow", "")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestStartFromRoutine_SecondStartRejected(t *testing.T) {
	m, store, _, _ := newTestManager(t)
	seedPushDay(store)

	first, err := m.StartFromRoutine("Push Day", "")
	require.NoError(t, err)

	_, err = m.StartFree()
	var exists *ActiveSessionExistsError
	require.ErrorAs(t, err, &exists)
	require.Equal(t, first.Session.ID, exists.SessionID)

	_, err = m.StartFromRoutine("Push Day", "")
	require.ErrorAs(t, err, &exists)
}

func TestStartFromRoutine_DeletedExerciseFallsBack(t *testing.T) {
	m, store, _, _ := newTestManager(t)
	store.routines["Ghost"] = &models.Routine{
		ID:   "rt-ghost",
		Name: "Ghost",
		Exercises: []models.RoutineExercise{
			{ExerciseID: "ex-gone", TargetSets: 3, TargetReps: intPtr(10)},
		},
	}

	state, err := m.StartFromRoutine("Ghost", "")
	require.NoError(t, err)
	require.Equal(t, "Unknown exercise", state.WorkoutExercises[0].ExerciseName)
	require.Equal(t, models.ExerciseReps, state.WorkoutExercises[0].Type)
}

func TestStartFromRoutine_RecordsPlannedWorkout(t *testing.T) {
	m, store, _, _ := newTestManager(t)
	seedPushDay(store)

	state, err := m.StartFromRoutine("Push Day", "plan-7")
	require.NoError(t, err)
	require.NotNil(t, state.Session.PlannedWorkoutID)
	require.Equal(t, "plan-7", *state.Session.PlannedWorkoutID)
}

func TestStartFromRoutine_CardioFirstEntersCardioPhase(t *testing.T) {
	m, store, _, _ := newTestManager(t)
	store.addExercise("ex-bike", "Bike", models.ExerciseCardio)
	store.routines["Cardio Day"] = &models.Routine{
		ID:   "rt-cardio",
		Name: "Cardio Day",
		Exercises: []models.RoutineExercise{
			{ExerciseID: "ex-bike", TargetSets: 1},
		},
	}

	state, err := m.StartFromRoutine("Cardio Day", "")
	require.NoError(t, err)
	require.Equal(t, models.PhaseCardio, state.Phase)
}

func TestStartFromRoutine_PrefillsFromHistory(t *testing.T) {
	m, store, _, _ := newTestManager(t)
	seedPushDay(store)
	store.lastSets["ex-bench"] = &models.SetEntry{
		ExerciseID: "ex-bench",
		Reps:       &models.RepsSet{Reps: 8, Weight: 60},
	}

	state, err := m.StartFromRoutine("Push Day", "")
	require.NoError(t, err)
	require.NotNil(t, state.Prefill)
	require.Equal(t, "ex-bench", state.Prefill.ExerciseID)
	require.Equal(t, 8, *state.Prefill.Reps)
	require.Equal(t, 60.0, *state.Prefill.Weight)
}

func TestStartFree_BeginsEmpty(t *testing.T) {
	m, store, _, _ := newTestManager(t)

	state, err := m.StartFree()
	require.NoError(t, err)
	require.True(t, state.IsFreeWorkout)
	require.Equal(t, models.PhaseEmpty, state.Phase)
	require.Empty(t, state.WorkoutExercises)
	require.Nil(t, state.Session.RoutineID)
	require.Len(t, store.insertedSessions, 1)
}

func TestStartFree_OrphanedRowBlocksStart(t *testing.T) {
	m, store, _, _ := newTestManager(t)
	// A crash between InsertSession and the first snapshot write leaves an
	// active row with no snapshot.
	store.activeSession = &models.WorkoutSession{ID: "orphan-1", Status: models.SessionActive}

	_, err := m.StartFree()
	var exists *ActiveSessionExistsError
	require.ErrorAs(t, err, &exists)
	require.Equal(t, "orphan-1", exists.SessionID)
}

func TestEnd_CommitsSessionAndSets(t *testing.T) {
	m, store, _, clock := newTestManager(t)
	seedPushDay(store)

	_, err := m.StartFromRoutine("Push Day", "")
	require.NoError(t, err)
	completeRepsSet(t, m, 8, 60)

	clock.Advance(45 * time.Minute)

	sess, count, err := m.End(models.SessionCompleted, "good session")
	require.NoError(t, err)
	require.Equal(t, 1, count)
	require.Equal(t, models.SessionCompleted, sess.Status)
	require.Equal(t, "good session", sess.Notes)
	require.NotNil(t, sess.EndedAt)
	require.True(t, sess.EndedAt.After(sess.StartedAt))

	require.Len(t, store.finishedSessions, 1)
	require.Len(t, store.finishedSets[0], 1)
	require.NotNil(t, store.finishedSets[0][0].Reps)

	_, err = m.Active()
	require.ErrorIs(t, err, ErrNoActiveSession)
}

func TestEnd_AbandonedStillCommitsSets(t *testing.T) {
	m, store, _, _ := newTestManager(t)
	seedPushDay(store)

	_, err := m.StartFromRoutine("Push Day", "")
	require.NoError(t, err)
	completeRepsSet(t, m, 8, 60)

	sess, count, err := m.End(models.SessionAbandoned, "")
	require.NoError(t, err)
	require.Equal(t, 1, count)
	require.Equal(t, models.SessionAbandoned, sess.Status)
	require.Len(t, store.finishedSets[0], 1)
}

func TestEnd_AbandonRejectedAtComplete(t *testing.T) {
	m, store, _, _ := newTestManager(t)
	seedPushDay(store)

	_, err := m.StartFromRoutine("Push Day", "")
	require.NoError(t, err)
	_, err = m.SkipExercise()
	require.NoError(t, err)
	state, err := m.SkipExercise()
	require.NoError(t, err)
	require.Equal(t, models.PhaseComplete, state.Phase)

	_, _, err = m.End(models.SessionAbandoned, "")
	var terr *InvalidTransitionError
	require.ErrorAs(t, err, &terr)
	require.Equal(t, models.PhaseComplete, terr.Phase)

	// The workout survives the rejection and still ends as completed.
	sess, _, err := m.End(models.SessionCompleted, "")
	require.NoError(t, err)
	require.Equal(t, models.SessionCompleted, sess.Status)
}

func TestEnd_CompletedValidInEveryPhase(t *testing.T) {
	m, store, _, _ := newTestManager(t)
	seedPushDay(store)

	// End during rest.
	_, err := m.StartFromRoutine("Push Day", "")
	require.NoError(t, err)
	state := completeRepsSet(t, m, 8, 60)
	require.Equal(t, models.PhaseRest, state.Phase)

	_, _, err = m.End(models.SessionCompleted, "")
	require.NoError(t, err)

	// End an empty free workout.
	_, err = m.StartFree()
	require.NoError(t, err)
	_, count, err := m.End(models.SessionCompleted, "")
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestEnd_RejectsBogusStatus(t *testing.T) {
	m, store, _, _ := newTestManager(t)
	seedPushDay(store)

	_, err := m.StartFromRoutine("Push Day", "")
	require.NoError(t, err)

	_, _, err = m.End(models.SessionActive, "")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	// The workout is still there.
	_, err = m.Active()
	require.NoError(t, err)
}

func TestEnd_NoActiveSession(t *testing.T) {
	m, _, _, _ := newTestManager(t)

	_, _, err := m.End(models.SessionCompleted, "")
	require.True(t, errors.Is(err, ErrNoActiveSession))
}

func TestEnd_FinalizesOrphanedRow(t *testing.T) {
	m, store, _, _ := newTestManager(t)
	store.activeSession = &models.WorkoutSession{ID: "orphan-2", Status: models.SessionActive}

	sess, count, err := m.End(models.SessionAbandoned, "")
	require.NoError(t, err)
	require.Equal(t, "orphan-2", sess.ID)
	require.Zero(t, count)
	require.Equal(t, models.SessionAbandoned, sess.Status)
	require.Len(t, store.finishedSessions, 1)
	require.Nil(t, store.finishedSets[0])
}
