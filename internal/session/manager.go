package session

import (
	"log"
	"time"

	"github.com/misterclayt0n/ironlog/internal/models"
)

// Store is the slice of the database the engine needs. *storage.Storage
// satisfies it.
type Store interface {
	GetExerciseByID(id string) (*models.Exercise, error)
	GetExerciseByName(name string) (*models.Exercise, error)
	CreateExercise(ex models.Exercise) error
	GetRoutineByName(name string) (*models.Routine, error)
	CreateRoutine(routine models.Routine) error
	LastSetForExercise(exerciseID string) (*models.SetEntry, error)
	GetActiveSession() (*models.WorkoutSession, error)
	InsertSession(sess models.WorkoutSession) error
	FinishSession(sess models.WorkoutSession, sets []models.SetEntry) error
	GetSettings() (models.Settings, error)
}

// Notifier is told when an automatic rest-to-work transition happens. It is
// never called for manual skips.
type Notifier interface {
	RestComplete()
}

// Manager drives the active workout. Every operation follows the same
// discipline: load the snapshot, compute the next state, persist it, only
// then report success. Nothing is mutated in place between operations, so
// two commands racing at worst lose one update instead of corrupting the
// snapshot.
type Manager struct {
	repo     Repository
	store    Store
	notifier Notifier
	logger   *log.Logger

	now  func() time.Time
	tick time.Duration
}

func NewManager(repo Repository, store Store, notifier Notifier, logger *log.Logger) *Manager {
	return &Manager{
		repo:     repo,
		store:    store,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
		tick:     time.Second,
	}
}

// Active returns the current workout state, or ErrNoActiveSession. An
// elapsed rest is resolved before the state is returned.
func (m *Manager) Active() (*models.ActiveWorkoutState, error) {
	return m.loadState()
}

// loadState reads the snapshot and settles any rest whose deadline has
// already passed. The automatic transition fires the notifier, a command
// running after the deadline is the only place left to observe it.
func (m *Manager) loadState() (*models.ActiveWorkoutState, error) {
	state, err := m.repo.Load()
	if err != nil {
		return nil, err
	}
	if state == nil {
		return nil, ErrNoActiveSession
	}

	if state.Phase == models.PhaseRest && state.RestEndsAt != nil && !m.now().Before(*state.RestEndsAt) {
		m.finishRest(state)
		if err := m.repo.Save(state); err != nil {
			return nil, err
		}
		m.logger.Printf("session: rest elapsed, moving to %s", state.Phase)
		m.notifier.RestComplete()
	}

	return state, nil
}

func entryPhaseFor(wx *models.WorkoutExercise) models.Phase {
	if wx != nil && wx.Type == models.ExerciseCardio {
		return models.PhaseCardio
	}
	return models.PhaseExercise
}

// refreshPrefill fetches the most recent logged set of the exercise under
// the cursor. Prefill is best effort, a lookup failure just means an empty
// entry form.
func (m *Manager) refreshPrefill(state *models.ActiveWorkoutState) {
	state.Prefill = nil

	wx := state.CurrentWorkoutExercise()
	if wx == nil {
		return
	}

	last, err := m.store.LastSetForExercise(wx.ExerciseID)
	if err != nil {
		m.logger.Printf("session: prefill lookup for %s failed: %v", wx.ExerciseName, err)
		return
	}
	if last == nil {
		return
	}

	defaults := &models.SetDefaults{ExerciseID: wx.ExerciseID}
	switch {
	case last.Reps != nil:
		reps := last.Reps.Reps
		weight := last.Reps.Weight
		defaults.Reps = &reps
		defaults.Weight = &weight
	case last.Time != nil:
		duration := last.Time.DurationSec
		defaults.DurationSec = &duration
	case last.Cardio != nil:
		duration := last.Cardio.DurationSec
		defaults.DurationSec = &duration
	}
	state.Prefill = defaults
}
