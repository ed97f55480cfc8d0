package session

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/misterclayt0n/ironlog/internal/models"
)

func newFileRepo(t *testing.T) *FileRepository {
	t.Helper()
	path := filepath.Join(t.TempDir(), "active_workout.toml")
	return NewFileRepository(path, log.New(io.Discard, "", 0))
}

func sampleState() *models.ActiveWorkoutState {
	started := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	restEnds := started.Add(42 * time.Minute)
	return &models.ActiveWorkoutState{
		Session: models.WorkoutSession{
			ID:        "sess-1",
			StartedAt: started,
			Status:    models.SessionActive,
		},
		WorkoutExercises: []models.WorkoutExercise{
			{ExerciseID: "ex-bench", ExerciseName: "Bench Press", Type: models.ExerciseReps, TargetSets: 3, TargetReps: intPtr(8), RestBetweenSetsSec: 90},
			{ExerciseID: "ex-tread", ExerciseName: "Treadmill", Type: models.ExerciseCardio, TargetSets: 1, AddedDuringWorkout: true},
		},
		CurrentExercise: 1,
		CurrentSet:      0,
		CompletedSets: []models.SetEntry{
			{
				ID:          "set-1",
				SessionID:   "sess-1",
				ExerciseID:  "ex-bench",
				SetIndex:    0,
				Reps:        &models.RepsSet{Reps: 8, Weight: 62.5},
				RPE:         intPtr(8),
				Notes:       "solid",
				CompletedAt: started.Add(3 * time.Minute),
			},
		},
		IsFreeWorkout: true,
		Phase:         models.PhaseRest,
		RestEndsAt:    &restEnds,
		RestTotalSec:  120,
		Prefill: &models.SetDefaults{
			ExerciseID: "ex-tread",
		},
	}
}

func TestFileRepository_SaveLoadRoundTrip(t *testing.T) {
	repo := newFileRepo(t)
	state := sampleState()

	require.NoError(t, repo.Save(state))

	loaded, err := repo.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.Equal(t, state, loaded)
}

func TestFileRepository_LoadWithoutSnapshot(t *testing.T) {
	repo := newFileRepo(t)

	state, err := repo.Load()
	require.NoError(t, err)
	require.Nil(t, state)
}

func TestFileRepository_SaveOverwrites(t *testing.T) {
	repo := newFileRepo(t)
	state := sampleState()
	require.NoError(t, repo.Save(state))

	state.CurrentSet = 2
	state.Phase = models.PhaseCardio
	state.RestEndsAt = nil
	state.RestTotalSec = 0
	require.NoError(t, repo.Save(state))

	loaded, err := repo.Load()
	require.NoError(t, err)
	require.Equal(t, 2, loaded.CurrentSet)
	require.Equal(t, models.PhaseCardio, loaded.Phase)
	require.Nil(t, loaded.RestEndsAt)
}

func TestFileRepository_CorruptSnapshotSelfHeals(t *testing.T) {
	repo := newFileRepo(t)
	require.NoError(t, os.WriteFile(repo.path, []byte("[[[ this is not toml"), 0644))

	state, err := repo.Load()
	require.NoError(t, err)
	require.Nil(t, state)

	// The broken file was removed, the next workout starts clean.
	_, statErr := os.Stat(repo.path)
	require.True(t, os.IsNotExist(statErr))
}

func TestFileRepository_InvalidSnapshotSelfHeals(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(s *models.ActiveWorkoutState)
	}{
		{"no session id", func(s *models.ActiveWorkoutState) { s.Session.ID = "" }},
		{"unknown phase", func(s *models.ActiveWorkoutState) { s.Phase = "warpdrive" }},
		{"rest without deadline", func(s *models.ActiveWorkoutState) { s.RestEndsAt = nil }},
		{"cursor out of range", func(s *models.ActiveWorkoutState) { s.CurrentExercise = 9 }},
		{"negative set cursor", func(s *models.ActiveWorkoutState) { s.CurrentSet = -1 }},
		{"exercises in empty phase", func(s *models.ActiveWorkoutState) {
			s.Phase = models.PhaseEmpty
			s.RestEndsAt = nil
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newFileRepo(t)
			state := sampleState()
			tc.mutate(state)
			require.NoError(t, repo.Save(state))

			loaded, err := repo.Load()
			require.NoError(t, err)
			require.Nil(t, loaded)

			_, statErr := os.Stat(repo.path)
			require.True(t, os.IsNotExist(statErr))
		})
	}
}

func TestFileRepository_SaveLeavesNoTempFiles(t *testing.T) {
	repo := newFileRepo(t)
	require.NoError(t, repo.Save(sampleState()))

	entries, err := os.ReadDir(filepath.Dir(repo.path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, filepath.Base(repo.path), entries[0].Name())
}

func TestFileRepository_SaveCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "active_workout.toml")
	repo := NewFileRepository(path, log.New(io.Discard, "", 0))

	require.NoError(t, repo.Save(sampleState()))

	loaded, err := repo.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
}

func TestFileRepository_ClearIsIdempotent(t *testing.T) {
	repo := newFileRepo(t)
	require.NoError(t, repo.Save(sampleState()))

	require.NoError(t, repo.Clear())
	require.NoError(t, repo.Clear())

	state, err := repo.Load()
	require.NoError(t, err)
	require.Nil(t, state)
}

func TestMemoryRepository_IsolatesCallers(t *testing.T) {
	repo := NewMemoryRepository()
	require.NoError(t, repo.Save(sampleState()))

	first, err := repo.Load()
	require.NoError(t, err)
	first.Phase = models.PhaseComplete
	first.CurrentSet = 99

	second, err := repo.Load()
	require.NoError(t, err)
	require.Equal(t, models.PhaseRest, second.Phase)
	require.Equal(t, 0, second.CurrentSet)
}

func TestMemoryRepository_ClearDropsState(t *testing.T) {
	repo := NewMemoryRepository()
	require.NoError(t, repo.Save(sampleState()))
	require.NoError(t, repo.Clear())

	state, err := repo.Load()
	require.NoError(t, err)
	require.Nil(t, state)
}
