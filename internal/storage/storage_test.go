package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/misterclayt0n/ironlog/internal/models"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

var testTime = time.Date(2025, 5, 20, 9, 30, 0, 0, time.UTC)

func benchPress() models.Exercise {
	return models.Exercise{
		ID:        "ex-bench",
		Name:      "Bench Press",
		Type:      models.ExerciseReps,
		Equipment: "barbell",
		PrimaryMuscles: []models.MuscleTarget{
			{Muscle: "chest", Weight: 1.0},
		},
		SecondaryMuscles: []models.MuscleTarget{
			{Muscle: "triceps", Weight: 0.6},
			{Muscle: "front delts", Weight: 0.4},
		},
		Patterns:  []string{"push", "press"},
		Notes:     "pause on the chest",
		CreatedAt: testTime,
		UpdatedAt: testTime,
	}
}

func repsEntry(id, sessionID, exerciseID string, index, reps int, weight float64, at time.Time) models.SetEntry {
	return models.SetEntry{
		ID:          id,
		SessionID:   sessionID,
		ExerciseID:  exerciseID,
		SetIndex:    index,
		Reps:        &models.RepsSet{Reps: reps, Weight: weight},
		CompletedAt: at,
	}
}

func TestOpen_CreatesSchema(t *testing.T) {
	st := newTestStorage(t)

	rows, err := st.DB.Query("SELECT name FROM sqlite_master WHERE type = 'table' ORDER BY name")
	require.NoError(t, err)
	defer rows.Close()

	tables := map[string]bool{}
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		tables[name] = true
	}
	require.NoError(t, rows.Err())

	for _, want := range []string{
		"exercises", "exercise_muscles", "routines", "routine_exercises",
		"sessions", "set_entries", "planned_workouts", "settings",
	} {
		require.True(t, tables[want], "missing table %s", want)
	}
}

func TestOpen_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "test.db")

	st, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, st.CreateExercise(benchPress()))
	require.NoError(t, st.Close())

	st, err = Open(path)
	require.NoError(t, err)
	defer st.Close()

	got, err := st.GetExerciseByName("Bench Press")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "ex-bench", got.ID)
}

func TestCreateExercise_RoundTrip(t *testing.T) {
	st := newTestStorage(t)
	require.NoError(t, st.CreateExercise(benchPress()))

	got, err := st.GetExerciseByID("ex-bench")
	require.NoError(t, err)
	require.NotNil(t, got)

	require.Equal(t, "Bench Press", got.Name)
	require.Equal(t, models.ExerciseReps, got.Type)
	require.Equal(t, "barbell", got.Equipment)
	require.Equal(t, []string{"push", "press"}, got.Patterns)
	require.Equal(t, "pause on the chest", got.Notes)
	require.Equal(t, testTime, got.CreatedAt)

	require.Equal(t, []models.MuscleTarget{{Muscle: "chest", Weight: 1.0}}, got.PrimaryMuscles)
	require.Equal(t, []models.MuscleTarget{
		{Muscle: "triceps", Weight: 0.6},
		{Muscle: "front delts", Weight: 0.4},
	}, got.SecondaryMuscles)
}

func TestCreateExercise_UpsertByNameKeepsID(t *testing.T) {
	st := newTestStorage(t)
	require.NoError(t, st.CreateExercise(benchPress()))

	again := benchPress()
	again.ID = "ex-other"
	again.Equipment = "dumbbells"
	again.SecondaryMuscles = nil
	require.NoError(t, st.CreateExercise(again))

	got, err := st.GetExerciseByName("Bench Press")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "ex-bench", got.ID, "upsert must keep the original id")
	require.Equal(t, "dumbbells", got.Equipment)
	require.Empty(t, got.SecondaryMuscles)

	other, err := st.GetExerciseByID("ex-other")
	require.NoError(t, err)
	require.Nil(t, other)
}

func TestGetExercise_MissingIsNil(t *testing.T) {
	st := newTestStorage(t)

	byID, err := st.GetExerciseByID("nope")
	require.NoError(t, err)
	require.Nil(t, byID)

	byName, err := st.GetExerciseByName("nope")
	require.NoError(t, err)
	require.Nil(t, byName)
}

func TestUpdateExercise_MissingErrors(t *testing.T) {
	st := newTestStorage(t)

	ghost := benchPress()
	ghost.ID = "ex-ghost"
	require.Error(t, st.UpdateExercise(ghost))
}

func TestListExercises_SortedByName(t *testing.T) {
	st := newTestStorage(t)

	squat := benchPress()
	squat.ID = "ex-squat"
	squat.Name = "Squat"
	require.NoError(t, st.CreateExercise(squat))
	require.NoError(t, st.CreateExercise(benchPress()))

	list, err := st.ListExercises()
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "Bench Press", list[0].Name)
	require.Equal(t, "Squat", list[1].Name)
	require.NotEmpty(t, list[0].PrimaryMuscles)
}

func TestDeleteExercise_KeepsLoggedSets(t *testing.T) {
	st := newTestStorage(t)
	require.NoError(t, st.CreateExercise(benchPress()))

	sess := models.WorkoutSession{ID: "sess-1", StartedAt: testTime, Status: models.SessionCompleted}
	entry := repsEntry("set-1", "sess-1", "ex-bench", 0, 8, 60, testTime.Add(5*time.Minute))
	require.NoError(t, st.FinishSession(sess, []models.SetEntry{entry}))

	require.NoError(t, st.DeleteExercise("ex-bench"))

	gone, err := st.GetExerciseByID("ex-bench")
	require.NoError(t, err)
	require.Nil(t, gone)

	sets, err := st.SetEntriesBySession("sess-1")
	require.NoError(t, err)
	require.Len(t, sets, 1)
	require.Equal(t, "ex-bench", sets[0].ExerciseID)

	require.Error(t, st.DeleteExercise("ex-bench"))
}

func seedRoutineLibrary(t *testing.T, st *Storage) {
	t.Helper()
	for _, ex := range []models.Exercise{
		{ID: "ex-bench", Name: "Bench Press", Type: models.ExerciseReps, CreatedAt: testTime, UpdatedAt: testTime},
		{ID: "ex-plank", Name: "Plank", Type: models.ExerciseTime, CreatedAt: testTime, UpdatedAt: testTime},
		{ID: "ex-tread", Name: "Treadmill", Type: models.ExerciseCardio, CreatedAt: testTime, UpdatedAt: testTime},
	} {
		require.NoError(t, st.CreateExercise(ex))
	}
}

func TestCreateRoutineFromTOML_ResolvesDefaults(t *testing.T) {
	st := newTestStorage(t)
	seedRoutineLibrary(t, st)

	reps := 8
	duration := 60
	zero := 0
	rt := &models.RoutineTOML{
		Name: "Push Day",
		Exercises: []models.RoutineExerciseTOML{
			{Name: "Bench Press", Sets: 3, Reps: &reps},
			{Name: "Plank", Sets: 2, Duration: &duration, Rest: &zero},
			{Name: "Treadmill"},
		},
	}

	created, err := st.CreateRoutineFromTOML(rt)
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := st.GetRoutineByName("Push Day")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, created.ID, got.ID)
	require.Equal(t, 180, got.RestBetweenExercisesSec, "omitted routine rest picks up the settings default")
	require.Len(t, got.Exercises, 3)

	bench := got.Exercises[0]
	require.Equal(t, "ex-bench", bench.ExerciseID)
	require.Equal(t, 3, bench.TargetSets)
	require.Equal(t, 8, *bench.TargetReps)
	require.Nil(t, bench.TargetDurationSec)
	require.Equal(t, 90, bench.RestBetweenSetsSec, "omitted set rest picks up the settings default")

	plank := got.Exercises[1]
	require.Equal(t, 60, *plank.TargetDurationSec)
	require.Equal(t, 0, plank.RestBetweenSetsSec, "explicit zero rest survives")

	tread := got.Exercises[2]
	require.Equal(t, "ex-tread", tread.ExerciseID)
	require.Equal(t, 1, tread.TargetSets, "cardio defaults to a single set")
	require.Nil(t, tread.TargetReps)
	require.Nil(t, tread.TargetDurationSec)
}

func TestCreateRoutineFromTOML_RejectsBadTargets(t *testing.T) {
	st := newTestStorage(t)
	seedRoutineLibrary(t, st)

	reps := 8
	tests := []struct {
		name string
		rt   models.RoutineTOML
	}{
		{"unknown exercise", models.RoutineTOML{Name: "R", Exercises: []models.RoutineExerciseTOML{{Name: "Curls", Sets: 3, Reps: &reps}}}},
		{"reps exercise without reps", models.RoutineTOML{Name: "R", Exercises: []models.RoutineExerciseTOML{{Name: "Bench Press", Sets: 3}}}},
		{"timed exercise with reps", models.RoutineTOML{Name: "R", Exercises: []models.RoutineExerciseTOML{{Name: "Plank", Sets: 2, Reps: &reps}}}},
		{"cardio with reps", models.RoutineTOML{Name: "R", Exercises: []models.RoutineExerciseTOML{{Name: "Treadmill", Reps: &reps}}}},
		{"empty name", models.RoutineTOML{Exercises: []models.RoutineExerciseTOML{{Name: "Bench Press", Sets: 3, Reps: &reps}}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rt := tc.rt
			_, err := st.CreateRoutineFromTOML(&rt)
			require.Error(t, err)
		})
	}
}

func TestUpdateRoutineFromTOML_KeepsIDAndReplacesExercises(t *testing.T) {
	st := newTestStorage(t)
	seedRoutineLibrary(t, st)

	reps := 8
	created, err := st.CreateRoutineFromTOML(&models.RoutineTOML{
		Name:      "Push Day",
		Exercises: []models.RoutineExerciseTOML{{Name: "Bench Press", Sets: 3, Reps: &reps}},
	})
	require.NoError(t, err)

	duration := 45
	rest := 240
	updated, err := st.UpdateRoutineFromTOML("Push Day", &models.RoutineTOML{
		Name:                 "Push Day",
		RestBetweenExercises: &rest,
		Exercises:            []models.RoutineExerciseTOML{{Name: "Plank", Sets: 2, Duration: &duration}},
	})
	require.NoError(t, err)
	require.Equal(t, created.ID, updated.ID)

	got, err := st.GetRoutineByName("Push Day")
	require.NoError(t, err)
	require.Equal(t, 240, got.RestBetweenExercisesSec)
	require.Len(t, got.Exercises, 1)
	require.Equal(t, "ex-plank", got.Exercises[0].ExerciseID)
}

func TestDeleteRoutine(t *testing.T) {
	st := newTestStorage(t)
	seedRoutineLibrary(t, st)

	reps := 8
	_, err := st.CreateRoutineFromTOML(&models.RoutineTOML{
		Name:      "Push Day",
		Exercises: []models.RoutineExerciseTOML{{Name: "Bench Press", Sets: 3, Reps: &reps}},
	})
	require.NoError(t, err)

	require.NoError(t, st.DeleteRoutine("Push Day"))

	got, err := st.GetRoutineByName("Push Day")
	require.NoError(t, err)
	require.Nil(t, got)

	require.Error(t, st.DeleteRoutine("Push Day"))
}

func TestSessions_StartFinishRoundTrip(t *testing.T) {
	st := newTestStorage(t)

	routineID := "rt-1"
	start := models.WorkoutSession{
		ID:        "sess-1",
		RoutineID: &routineID,
		StartedAt: testTime,
		Status:    models.SessionActive,
	}
	require.NoError(t, st.InsertSession(start))

	active, err := st.GetActiveSession()
	require.NoError(t, err)
	require.NotNil(t, active)
	require.Equal(t, "sess-1", active.ID)
	require.Equal(t, routineID, *active.RoutineID)
	require.Nil(t, active.EndedAt)

	ended := testTime.Add(50 * time.Minute)
	final := start
	final.EndedAt = &ended
	final.Status = models.SessionCompleted
	final.Notes = "good one"

	incline := 1.5
	speed := 9.0
	rpe := 8
	sets := []models.SetEntry{
		repsEntry("set-1", "sess-1", "ex-bench", 0, 8, 62.5, testTime.Add(3*time.Minute)),
		{
			ID:          "set-2",
			SessionID:   "sess-1",
			ExerciseID:  "ex-tread",
			SetIndex:    0,
			Cardio:      &models.CardioSet{DurationSec: 900, Incline: &incline, Speed: &speed},
			RPE:         &rpe,
			Notes:       "easy pace",
			CompletedAt: testTime.Add(40 * time.Minute),
		},
	}
	require.NoError(t, st.FinishSession(final, sets))

	active, err = st.GetActiveSession()
	require.NoError(t, err)
	require.Nil(t, active)

	got, err := st.GetSessionByID("sess-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, models.SessionCompleted, got.Status)
	require.Equal(t, ended, *got.EndedAt)
	require.Equal(t, "good one", got.Notes)

	entries, err := st.SetEntriesBySession("sess-1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "set-1", entries[0].ID)
	require.Equal(t, 8, entries[0].Reps.Reps)
	require.Equal(t, 62.5, entries[0].Reps.Weight)

	cardio := entries[1]
	require.NotNil(t, cardio.Cardio)
	require.Equal(t, 900, cardio.Cardio.DurationSec)
	require.Equal(t, 1.5, *cardio.Cardio.Incline)
	require.Equal(t, 9.0, *cardio.Cardio.Speed)
	require.Nil(t, cardio.Cardio.Distance)
	require.Equal(t, 8, *cardio.RPE)
	require.Equal(t, "easy pace", cardio.Notes)
}

func TestFinishSession_InsertsWhenStartRowIsMissing(t *testing.T) {
	st := newTestStorage(t)

	ended := testTime.Add(time.Hour)
	sess := models.WorkoutSession{
		ID:        "sess-crash",
		StartedAt: testTime,
		EndedAt:   &ended,
		Status:    models.SessionAbandoned,
	}
	require.NoError(t, st.FinishSession(sess, nil))

	got, err := st.GetSessionByID("sess-crash")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, models.SessionAbandoned, got.Status)
}

func TestFinishSession_RepeatDoesNotDuplicateSets(t *testing.T) {
	st := newTestStorage(t)

	ended := testTime.Add(time.Hour)
	sess := models.WorkoutSession{ID: "sess-1", StartedAt: testTime, EndedAt: &ended, Status: models.SessionCompleted}
	sets := []models.SetEntry{
		repsEntry("set-1", "sess-1", "ex-bench", 0, 8, 60, testTime.Add(time.Minute)),
		repsEntry("set-2", "sess-1", "ex-bench", 1, 8, 60, testTime.Add(2*time.Minute)),
	}

	require.NoError(t, st.FinishSession(sess, sets))
	require.NoError(t, st.FinishSession(sess, sets))

	entries, err := st.SetEntriesBySession("sess-1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
}

func TestListSessionsBetween_WindowAndOrder(t *testing.T) {
	st := newTestStorage(t)

	for i, started := range []time.Time{
		testTime,
		testTime.Add(24 * time.Hour),
		testTime.Add(48 * time.Hour),
	} {
		require.NoError(t, st.InsertSession(models.WorkoutSession{
			ID:        string(rune('a' + i)),
			StartedAt: started,
			Status:    models.SessionCompleted,
		}))
	}

	got, err := st.ListSessionsBetween(testTime, testTime.Add(48*time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 2, "the window end is exclusive")
	require.Equal(t, "b", got[0].ID, "newest first")
	require.Equal(t, "a", got[1].ID)
}

func TestGetSessionsByDate_LocalDay(t *testing.T) {
	st := newTestStorage(t)

	day := time.Date(2025, 6, 2, 0, 0, 0, 0, time.Local)
	for id, started := range map[string]time.Time{
		"morning":  day.Add(8 * time.Hour),
		"evening":  day.Add(23 * time.Hour),
		"next-day": day.AddDate(0, 0, 1).Add(time.Hour),
	} {
		require.NoError(t, st.InsertSession(models.WorkoutSession{
			ID:        id,
			StartedAt: started,
			Status:    models.SessionCompleted,
		}))
	}

	got, err := st.GetSessionsByDate(day.Add(15 * time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "evening", got[0].ID)
	require.Equal(t, "morning", got[1].ID)
}

func TestLastSetForExercise(t *testing.T) {
	st := newTestStorage(t)

	ended := testTime.Add(time.Hour)
	sess := models.WorkoutSession{ID: "sess-1", StartedAt: testTime, EndedAt: &ended, Status: models.SessionCompleted}
	require.NoError(t, st.FinishSession(sess, []models.SetEntry{
		repsEntry("set-1", "sess-1", "ex-bench", 0, 8, 60, testTime.Add(time.Minute)),
		repsEntry("set-2", "sess-1", "ex-bench", 1, 6, 70, testTime.Add(10*time.Minute)),
	}))

	last, err := st.LastSetForExercise("ex-bench")
	require.NoError(t, err)
	require.NotNil(t, last)
	require.Equal(t, "set-2", last.ID)
	require.Equal(t, 70.0, last.Reps.Weight)

	none, err := st.LastSetForExercise("ex-ghost")
	require.NoError(t, err)
	require.Nil(t, none)
}

func TestSetEntriesBetween_WindowAndOrder(t *testing.T) {
	st := newTestStorage(t)

	ended := testTime.Add(time.Hour)
	sess := models.WorkoutSession{ID: "sess-1", StartedAt: testTime, EndedAt: &ended, Status: models.SessionCompleted}
	require.NoError(t, st.FinishSession(sess, []models.SetEntry{
		repsEntry("set-1", "sess-1", "ex-bench", 0, 8, 60, testTime),
		repsEntry("set-2", "sess-1", "ex-bench", 1, 8, 60, testTime.Add(5*time.Minute)),
		repsEntry("set-3", "sess-1", "ex-bench", 2, 8, 60, testTime.Add(10*time.Minute)),
	}))

	got, err := st.SetEntriesBetween(testTime, testTime.Add(10*time.Minute))
	require.NoError(t, err)
	require.Len(t, got, 2, "the window end is exclusive")
	require.Equal(t, "set-1", got[0].ID, "oldest first")
	require.Equal(t, "set-2", got[1].ID)

	all, err := st.AllSetEntries()
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "set-3", all[2].ID)
}

func TestGetExerciseStats(t *testing.T) {
	st := newTestStorage(t)

	ended := testTime.Add(time.Hour)
	sess := models.WorkoutSession{ID: "sess-1", StartedAt: testTime, EndedAt: &ended, Status: models.SessionCompleted}
	require.NoError(t, st.FinishSession(sess, []models.SetEntry{
		repsEntry("set-1", "sess-1", "ex-bench", 0, 10, 80, testTime.Add(time.Minute)),
		repsEntry("set-2", "sess-1", "ex-bench", 1, 5, 100, testTime.Add(5*time.Minute)),
	}))

	stats, err := st.GetExerciseStats("ex-bench")
	require.NoError(t, err)
	require.Equal(t, 2, stats.TotalSets)
	require.NotNil(t, stats.LastPerformed)
	require.Equal(t, testTime.Add(5*time.Minute), *stats.LastPerformed)

	require.NotNil(t, stats.BestSet)
	require.Equal(t, 100.0, stats.BestSet.Weight, "5x100 beats 10x80 on estimated 1RM")
	require.Equal(t, 5, stats.BestSet.Reps)
	require.InDelta(t, 116.67, stats.EstimatedOneRM, 0.01)

	empty, err := st.GetExerciseStats("ex-ghost")
	require.NoError(t, err)
	require.Equal(t, 0, empty.TotalSets)
	require.Nil(t, empty.BestSet)
	require.Nil(t, empty.LastPerformed)
}

func TestSettings_DefaultsOnFreshDatabase(t *testing.T) {
	st := newTestStorage(t)

	settings, err := st.GetSettings()
	require.NoError(t, err)
	require.Equal(t, models.DefaultSettings(), settings)
}

func TestSetSetting_RoundTrip(t *testing.T) {
	st := newTestStorage(t)

	require.NoError(t, st.SetSetting("default_rest_between_sets", "120"))
	require.NoError(t, st.SetSetting("weight_unit", "lbs"))

	settings, err := st.GetSettings()
	require.NoError(t, err)
	require.Equal(t, 120, settings.DefaultRestBetweenSetsSec)
	require.Equal(t, "lbs", settings.WeightUnit)
	require.Equal(t, 180, settings.DefaultRestBetweenExercisesSec, "untouched keys keep their defaults")

	require.Error(t, st.SetSetting("default_rest_between_sets", "soon"))
	require.Error(t, st.SetSetting("favorite_color", "red"))
}

func TestGetSettings_SkipsUnknownKeys(t *testing.T) {
	st := newTestStorage(t)

	_, err := st.DB.Exec("INSERT INTO settings (key, value) VALUES ('from_the_future', '42')")
	require.NoError(t, err)

	settings, err := st.GetSettings()
	require.NoError(t, err)
	require.Equal(t, models.DefaultSettings(), settings)
}

func TestSaveSettings_PersistsEverything(t *testing.T) {
	st := newTestStorage(t)

	custom := models.DefaultSettings()
	custom.DefaultRestBetweenExercisesSec = 240
	custom.SoundEnabled = false
	custom.DistanceUnit = "miles"
	require.NoError(t, st.SaveSettings(custom))

	got, err := st.GetSettings()
	require.NoError(t, err)
	require.Equal(t, custom, got)
}

func TestPlannedWorkouts_RoundTrip(t *testing.T) {
	st := newTestStorage(t)

	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	plan := models.PlannedWorkout{
		ID:        "plan-1",
		RoutineID: "rt-1",
		Date:      date,
		Status:    models.PlanPending,
		CreatedAt: testTime,
	}
	require.NoError(t, st.CreatePlannedWorkout(plan))

	got, err := st.GetPlannedWorkoutByID("plan-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, models.PlanPending, got.Status)
	require.Equal(t, date, got.Date)
	require.Nil(t, got.SessionID)

	plans, err := st.ListPlannedBetween(date.AddDate(0, 0, -1), date.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, plans, 1)

	outside, err := st.ListPlannedBetween(date.AddDate(0, 0, 1), date.AddDate(0, 0, 2))
	require.NoError(t, err)
	require.Empty(t, outside)

	sessionID := "sess-9"
	require.NoError(t, st.UpdatePlannedStatus("plan-1", models.PlanCompleted, &sessionID))

	got, err = st.GetPlannedWorkoutByID("plan-1")
	require.NoError(t, err)
	require.Equal(t, models.PlanCompleted, got.Status)
	require.Equal(t, "sess-9", *got.SessionID)

	require.Error(t, st.UpdatePlannedStatus("plan-ghost", models.PlanSkipped, nil))
}

func TestGetPlannedWorkout_MissingIsNil(t *testing.T) {
	st := newTestStorage(t)

	got, err := st.GetPlannedWorkoutByID("nope")
	require.NoError(t, err)
	require.Nil(t, got)
}
