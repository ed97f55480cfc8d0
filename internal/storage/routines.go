package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/misterclayt0n/ironlog/internal/models"
)

// CreateRoutineFromTOML resolves an authored routine file against the
// exercise library and stores it. Every referenced exercise must already
// exist so the slot type can be pinned.
func (s *Storage) CreateRoutineFromTOML(rt *models.RoutineTOML) (*models.Routine, error) {
	routine, err := s.resolveRoutineTOML(rt)
	if err != nil {
		return nil, err
	}

	routine.ID = uuid.New().String()
	routine.CreatedAt = time.Now().UTC()
	routine.UpdatedAt = routine.CreatedAt

	if err := s.CreateRoutine(*routine); err != nil {
		return nil, err
	}
	return routine, nil
}

func (s *Storage) CreateRoutine(routine models.Routine) error {
	if err := routine.Validate(); err != nil {
		return err
	}

	ctx := context.Background()
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("Failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO routines (id, name, notes, rest_between_exercises, created_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?)`,
		routine.ID,
		routine.Name,
		routine.Notes,
		routine.RestBetweenExercisesSec,
		formatTime(routine.CreatedAt),
		formatTime(routine.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("Failed to create routine: %w", err)
	}

	if err := insertRoutineExercisesTx(ctx, tx, routine.ID, routine.Exercises); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("Failed to commit transaction: %w", err)
	}
	return nil
}

// UpdateRoutineFromTOML replaces the exercises and metadata of an existing
// routine in place, keeping its id stable so plans stay attached.
func (s *Storage) UpdateRoutineFromTOML(name string, rt *models.RoutineTOML) (*models.Routine, error) {
	existing, err := s.GetRoutineByName(name)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("Routine %q does not exist", name)
	}

	routine, err := s.resolveRoutineTOML(rt)
	if err != nil {
		return nil, err
	}
	routine.ID = existing.ID
	routine.CreatedAt = existing.CreatedAt
	routine.UpdatedAt = time.Now().UTC()

	ctx := context.Background()
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("Failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"UPDATE routines SET name = ?, notes = ?, rest_between_exercises = ?, updated_at = ? WHERE id = ?",
		routine.Name,
		routine.Notes,
		routine.RestBetweenExercisesSec,
		formatTime(routine.UpdatedAt),
		routine.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("Failed to update routine: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM routine_exercises WHERE routine_id = ?", routine.ID,
	); err != nil {
		return nil, fmt.Errorf("Failed to clear routine exercises: %w", err)
	}

	if err := insertRoutineExercisesTx(ctx, tx, routine.ID, routine.Exercises); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("Failed to commit transaction: %w", err)
	}
	return routine, nil
}

func (s *Storage) resolveRoutineTOML(rt *models.RoutineTOML) (*models.Routine, error) {
	if rt.Name == "" {
		return nil, fmt.Errorf("Routine name cannot be empty")
	}

	settings, err := s.GetSettings()
	if err != nil {
		return nil, err
	}

	routine := &models.Routine{
		Name:                    rt.Name,
		Notes:                   rt.Notes,
		RestBetweenExercisesSec: settings.DefaultRestBetweenExercisesSec,
	}
	if rt.RestBetweenExercises != nil {
		routine.RestBetweenExercisesSec = *rt.RestBetweenExercises
	}

	for _, entry := range rt.Exercises {
		ex, err := s.GetExerciseByName(entry.Name)
		if err != nil {
			return nil, err
		}
		if ex == nil {
			return nil, fmt.Errorf("Exercise %q does not exist, add it to the library first", entry.Name)
		}

		switch ex.Type {
		case models.ExerciseReps:
			if entry.Reps == nil {
				return nil, fmt.Errorf("Exercise %q needs a reps target", entry.Name)
			}
			if entry.Duration != nil {
				return nil, fmt.Errorf("Exercise %q takes reps, not a duration", entry.Name)
			}
		case models.ExerciseTime:
			if entry.Duration == nil {
				return nil, fmt.Errorf("Exercise %q needs a duration target", entry.Name)
			}
			if entry.Reps != nil {
				return nil, fmt.Errorf("Exercise %q takes a duration, not reps", entry.Name)
			}
		case models.ExerciseCardio:
			if entry.Reps != nil || entry.Duration != nil {
				return nil, fmt.Errorf("Cardio exercise %q takes no set targets", entry.Name)
			}
		}

		sets := entry.Sets
		if sets == 0 && ex.Type == models.ExerciseCardio {
			sets = 1
		}

		rest := settings.DefaultRestBetweenSetsSec
		if entry.Rest != nil {
			rest = *entry.Rest
		}

		routine.Exercises = append(routine.Exercises, models.RoutineExercise{
			ExerciseID:         ex.ID,
			TargetSets:         sets,
			TargetReps:         entry.Reps,
			TargetDurationSec:  entry.Duration,
			RestBetweenSetsSec: rest,
		})
	}

	return routine, nil
}

func insertRoutineExercisesTx(ctx context.Context, tx *sql.Tx, routineID string, exercises []models.RoutineExercise) error {
	for i, re := range exercises {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO routine_exercises
                (id, routine_id, exercise_id, position, target_sets, target_reps, target_duration, rest_between_sets)
                VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			uuid.New().String(),
			routineID,
			re.ExerciseID,
			i,
			re.TargetSets,
			re.TargetReps,
			re.TargetDurationSec,
			re.RestBetweenSetsSec,
		)
		if err != nil {
			return fmt.Errorf("Failed to insert routine exercise: %w", err)
		}
	}
	return nil
}

func (s *Storage) GetRoutineByName(name string) (*models.Routine, error) {
	return s.getRoutine("SELECT id, name, notes, rest_between_exercises, created_at, updated_at FROM routines WHERE name = ?", name)
}

func (s *Storage) GetRoutineByID(id string) (*models.Routine, error) {
	return s.getRoutine("SELECT id, name, notes, rest_between_exercises, created_at, updated_at FROM routines WHERE id = ?", id)
}

func (s *Storage) getRoutine(query, arg string) (*models.Routine, error) {
	var (
		routine              models.Routine
		createdAt, updatedAt string
	)

	err := s.DB.QueryRow(query, arg).Scan(
		&routine.ID,
		&routine.Name,
		&routine.Notes,
		&routine.RestBetweenExercisesSec,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Failed to query routine: %w", err)
	}

	routine.CreatedAt = parseTime(createdAt)
	routine.UpdatedAt = parseTime(updatedAt)

	if err := s.loadRoutineExercises(&routine); err != nil {
		return nil, err
	}
	return &routine, nil
}

func (s *Storage) loadRoutineExercises(routine *models.Routine) error {
	rows, err := s.DB.Query(`
        SELECT exercise_id, target_sets, target_reps, target_duration, rest_between_sets
        FROM routine_exercises
        WHERE routine_id = ?
        ORDER BY position`,
		routine.ID,
	)
	if err != nil {
		return fmt.Errorf("Failed to query routine exercises: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			re       models.RoutineExercise
			reps     sql.NullInt64
			duration sql.NullInt64
		)
		if err := rows.Scan(&re.ExerciseID, &re.TargetSets, &reps, &duration, &re.RestBetweenSetsSec); err != nil {
			return fmt.Errorf("Failed to scan routine exercise: %w", err)
		}
		if reps.Valid {
			n := int(reps.Int64)
			re.TargetReps = &n
		}
		if duration.Valid {
			n := int(duration.Int64)
			re.TargetDurationSec = &n
		}
		routine.Exercises = append(routine.Exercises, re)
	}
	return rows.Err()
}

func (s *Storage) ListRoutines() ([]models.Routine, error) {
	rows, err := s.DB.Query(`
        SELECT id, name, notes, rest_between_exercises, created_at, updated_at
        FROM routines
        ORDER BY name
    `)
	if err != nil {
		return nil, fmt.Errorf("Failed to query routines: %w", err)
	}
	defer rows.Close()

	var routines []models.Routine
	for rows.Next() {
		var (
			routine              models.Routine
			createdAt, updatedAt string
		)
		if err := rows.Scan(
			&routine.ID, &routine.Name, &routine.Notes,
			&routine.RestBetweenExercisesSec, &createdAt, &updatedAt,
		); err != nil {
			return nil, fmt.Errorf("Failed to scan routine: %w", err)
		}
		routine.CreatedAt = parseTime(createdAt)
		routine.UpdatedAt = parseTime(updatedAt)
		routines = append(routines, routine)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range routines {
		if err := s.loadRoutineExercises(&routines[i]); err != nil {
			return nil, err
		}
	}
	return routines, nil
}

func (s *Storage) DeleteRoutine(name string) error {
	res, err := s.DB.Exec("DELETE FROM routines WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("Failed to delete routine: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Routine %q does not exist", name)
	}
	return nil
}
