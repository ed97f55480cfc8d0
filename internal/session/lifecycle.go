package session

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/misterclayt0n/ironlog/internal/models"
)

// StartFromRoutine begins a workout over a stored routine, binding every
// routine slot to a concrete exercise. plannedID links the session back to
// a planned workout and may be empty.
func (m *Manager) StartFromRoutine(routineName, plannedID string) (*models.ActiveWorkoutState, error) {
	if err := m.checkNoActive(); err != nil {
		return nil, err
	}

	routine, err := m.store.GetRoutineByName(routineName)
	if err != nil {
		return nil, err
	}
	if routine == nil {
		return nil, &ValidationError{Field: "routine", Reason: fmt.Sprintf("%q does not exist", routineName)}
	}
	if len(routine.Exercises) == 0 {
		return nil, &ValidationError{Field: "routine", Reason: fmt.Sprintf("%q has no exercises", routineName)}
	}

	workoutExercises := make([]models.WorkoutExercise, 0, len(routine.Exercises))
	for _, re := range routine.Exercises {
		// Name and type are pinned now so later library edits or deletions
		// cannot reshape a workout in progress.
		wx := models.WorkoutExercise{
			ExerciseID:         re.ExerciseID,
			ExerciseName:       "Unknown exercise",
			Type:               models.ExerciseReps,
			TargetSets:         re.TargetSets,
			TargetReps:         re.TargetReps,
			TargetDurationSec:  re.TargetDurationSec,
			RestBetweenSetsSec: re.RestBetweenSetsSec,
		}
		if ex, err := m.store.GetExerciseByID(re.ExerciseID); err == nil && ex != nil {
			wx.ExerciseName = ex.Name
			wx.Type = ex.Type
		}
		workoutExercises = append(workoutExercises, wx)
	}

	sess := models.WorkoutSession{
		ID:        uuid.New().String(),
		RoutineID: &routine.ID,
		StartedAt: m.now().UTC(),
		Status:    models.SessionActive,
	}
	if plannedID != "" {
		sess.PlannedWorkoutID = &plannedID
	}

	if err := m.store.InsertSession(sess); err != nil {
		return nil, err
	}

	state := &models.ActiveWorkoutState{
		Session:          sess,
		Routine:          routine,
		WorkoutExercises: workoutExercises,
		Phase:            entryPhaseFor(&workoutExercises[0]),
	}
	m.refreshPrefill(state)

	if err := m.repo.Save(state); err != nil {
		return nil, err
	}

	m.logger.Printf("session: started %s from routine %q with %d exercises", sess.ID, routine.Name, len(workoutExercises))
	return state, nil
}

// StartFree begins a workout with no exercises. The workout sits in the
// empty phase until the first exercise is added.
func (m *Manager) StartFree() (*models.ActiveWorkoutState, error) {
	if err := m.checkNoActive(); err != nil {
		return nil, err
	}

	sess := models.WorkoutSession{
		ID:        uuid.New().String(),
		StartedAt: m.now().UTC(),
		Status:    models.SessionActive,
	}

	if err := m.store.InsertSession(sess); err != nil {
		return nil, err
	}

	state := &models.ActiveWorkoutState{
		Session:       sess,
		IsFreeWorkout: true,
		Phase:         models.PhaseEmpty,
	}

	if err := m.repo.Save(state); err != nil {
		return nil, err
	}

	m.logger.Printf("session: started free workout %s", sess.ID)
	return state, nil
}

// End finalizes the active workout as completed or abandoned. Both commit
// the session and every logged set to the database, an abandoned workout
// is history too. A workout that already reached the complete phase can
// only end as completed.
func (m *Manager) End(status models.SessionStatus, notes string) (*models.WorkoutSession, int, error) {
	if status != models.SessionCompleted && status != models.SessionAbandoned {
		return nil, 0, &ValidationError{Field: "status", Reason: fmt.Sprintf("cannot end a session as %q", status)}
	}

	state, err := m.repo.Load()
	if err != nil {
		return nil, 0, err
	}
	if state == nil {
		return m.endOrphaned(status, notes)
	}

	if status == models.SessionAbandoned && state.Phase == models.PhaseComplete {
		return nil, 0, &InvalidTransitionError{Phase: state.Phase, Op: "abandon"}
	}

	sess := state.Session
	ended := m.now().UTC()
	sess.EndedAt = &ended
	sess.Status = status
	if notes != "" {
		sess.Notes = notes
	}

	if err := m.store.FinishSession(sess, state.CompletedSets); err != nil {
		return nil, 0, err
	}
	if err := m.repo.Clear(); err != nil {
		return nil, 0, err
	}

	m.logger.Printf("session: ended %s as %s with %d sets", sess.ID, status, len(state.CompletedSets))
	return &sess, len(state.CompletedSets), nil
}

// endOrphaned settles a session row left active by a crash between the
// database insert and the first snapshot write. There are no sets to
// commit, the snapshot never existed.
func (m *Manager) endOrphaned(status models.SessionStatus, notes string) (*models.WorkoutSession, int, error) {
	sess, err := m.store.GetActiveSession()
	if err != nil {
		return nil, 0, err
	}
	if sess == nil {
		return nil, 0, ErrNoActiveSession
	}

	ended := m.now().UTC()
	sess.EndedAt = &ended
	sess.Status = status
	if notes != "" {
		sess.Notes = notes
	}

	if err := m.store.FinishSession(*sess, nil); err != nil {
		return nil, 0, err
	}

	m.logger.Printf("session: finalized orphaned session %s as %s", sess.ID, status)
	return sess, 0, nil
}

func (m *Manager) checkNoActive() error {
	state, err := m.repo.Load()
	if err != nil {
		return err
	}
	if state != nil {
		return &ActiveSessionExistsError{SessionID: state.Session.ID}
	}

	sess, err := m.store.GetActiveSession()
	if err != nil {
		return err
	}
	if sess != nil {
		return &ActiveSessionExistsError{SessionID: sess.ID}
	}
	return nil
}
