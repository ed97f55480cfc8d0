package session

import (
	"io"
	"log"
	"sync"
	"testing"
	"time"

	"pgregory.net/rapid"

	"github.com/misterclayt0n/ironlog/internal/models"
)

// fakeClock is a hand-cranked clock wired into Manager.now.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// fakeNotifier counts rest notifications.
type fakeNotifier struct {
	mu    sync.Mutex
	fired int
}

func (n *fakeNotifier) RestComplete() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.fired++
}

func (n *fakeNotifier) Fired() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.fired
}

// fakeStore is an in-memory Store that records every write.
type fakeStore struct {
	exercises map[string]*models.Exercise // by id
	routines  map[string]*models.Routine  // by name
	lastSets  map[string]*models.SetEntry // by exercise id
	settings  models.Settings

	activeSession *models.WorkoutSession

	insertedSessions []models.WorkoutSession
	finishedSessions []models.WorkoutSession
	finishedSets     [][]models.SetEntry
	createdExercises []models.Exercise
	createdRoutines  []models.Routine
	lastSetCalls     map[string]int // prefill lookups by exercise id
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		exercises:    make(map[string]*models.Exercise),
		routines:     make(map[string]*models.Routine),
		lastSets:     make(map[string]*models.SetEntry),
		settings:     models.DefaultSettings(),
		lastSetCalls: make(map[string]int),
	}
}

func (s *fakeStore) GetExerciseByID(id string) (*models.Exercise, error) {
	return s.exercises[id], nil
}

func (s *fakeStore) GetExerciseByName(name string) (*models.Exercise, error) {
	for _, ex := range s.exercises {
		if ex.Name == name {
			return ex, nil
		}
	}
	return nil, nil
}

func (s *fakeStore) CreateExercise(ex models.Exercise) error {
	copied := ex
	s.exercises[ex.ID] = &copied
	s.createdExercises = append(s.createdExercises, ex)
	return nil
}

func (s *fakeStore) GetRoutineByName(name string) (*models.Routine, error) {
	return s.routines[name], nil
}

func (s *fakeStore) CreateRoutine(routine models.Routine) error {
	copied := routine
	s.routines[routine.Name] = &copied
	s.createdRoutines = append(s.createdRoutines, routine)
	return nil
}

func (s *fakeStore) LastSetForExercise(exerciseID string) (*models.SetEntry, error) {
	s.lastSetCalls[exerciseID]++
	return s.lastSets[exerciseID], nil
}

func (s *fakeStore) GetActiveSession() (*models.WorkoutSession, error) {
	return s.activeSession, nil
}

func (s *fakeStore) InsertSession(sess models.WorkoutSession) error {
	s.insertedSessions = append(s.insertedSessions, sess)
	return nil
}

func (s *fakeStore) FinishSession(sess models.WorkoutSession, sets []models.SetEntry) error {
	s.finishedSessions = append(s.finishedSessions, sess)
	s.finishedSets = append(s.finishedSets, sets)
	return nil
}

func (s *fakeStore) GetSettings() (models.Settings, error) {
	return s.settings, nil
}

func (s *fakeStore) addExercise(id, name string, typ models.ExerciseType) *models.Exercise {
	ex := &models.Exercise{ID: id, Name: name, Type: typ}
	s.exercises[id] = ex
	return ex
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

// newTestManager wires a Manager to in-memory fakes and a fixed clock.
// rapid.TB is the overlap of *testing.T and *rapid.T, so property tests
// can share the fixture.
func newTestManager(t rapid.TB) (*Manager, *fakeStore, *fakeNotifier, *fakeClock) {
	t.Helper()
	store := newFakeStore()
	notifier := &fakeNotifier{}
	clock := newFakeClock()

	m := NewManager(NewMemoryRepository(), store, notifier, log.New(io.Discard, "", 0))
	m.now = clock.Now
	m.tick = time.Millisecond
	return m, store, notifier, clock
}

// seedPushDay registers three exercises and a two slot routine: bench
// press (3x8, 90s rest) then plank (2x60s, 60s rest), 120s between
// exercises. The treadmill stays outside the routine for injection tests.
func seedPushDay(store *fakeStore) {
	store.addExercise("ex-bench", "Bench Press", models.ExerciseReps)
	store.addExercise("ex-plank", "Plank", models.ExerciseTime)
	store.addExercise("ex-tread", "Treadmill", models.ExerciseCardio)

	store.routines["Push Day"] = &models.Routine{
		ID:                      "rt-push",
		Name:                    "Push Day",
		RestBetweenExercisesSec: 120,
		Exercises: []models.RoutineExercise{
			{ExerciseID: "ex-bench", TargetSets: 3, TargetReps: intPtr(8), RestBetweenSetsSec: 90},
			{ExerciseID: "ex-plank", TargetSets: 2, TargetDurationSec: intPtr(60), RestBetweenSetsSec: 60},
		},
	}
}

// seedNoRestDay registers a routine whose sets flow back to back.
func seedNoRestDay(store *fakeStore) {
	store.addExercise("ex-squat", "Squat", models.ExerciseReps)
	store.addExercise("ex-row", "Barbell Row", models.ExerciseReps)

	store.routines["No Rest Day"] = &models.Routine{
		ID:                      "rt-norest",
		Name:                    "No Rest Day",
		RestBetweenExercisesSec: 0,
		Exercises: []models.RoutineExercise{
			{ExerciseID: "ex-squat", TargetSets: 2, TargetReps: intPtr(5), RestBetweenSetsSec: 0},
			{ExerciseID: "ex-row", TargetSets: 1, TargetReps: intPtr(10), RestBetweenSetsSec: 0},
		},
	}
}

// completeRepsSet logs a plain working set and fails the test on error.
func completeRepsSet(t *testing.T, m *Manager, reps int, weight float64) *models.ActiveWorkoutState {
	t.Helper()
	state, err := m.CompleteSet(SetInput{Reps: intPtr(reps), Weight: floatPtr(weight)})
	if err != nil {
		t.Fatalf("completing %dx%.1f: %v", reps, weight, err)
	}
	return state
}

// drainRest fails unless the workout is resting, then skips the rest.
func drainRest(t *testing.T, m *Manager) *models.ActiveWorkoutState {
	t.Helper()
	state, err := m.SkipRest()
	if err != nil {
		t.Fatalf("skipping rest: %v", err)
	}
	return state
}
