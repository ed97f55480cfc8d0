package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/misterclayt0n/ironlog/internal/models"
	"github.com/misterclayt0n/ironlog/internal/utils"
)

func (s *Storage) CreateExercise(ex models.Exercise) error {
	ctx := context.Background()
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("Failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO exercises
            (id, name, type, equipment, patterns, notes, media_ref, created_at, updated_at)
            VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
            ON CONFLICT(name) DO UPDATE SET
                type = excluded.type,
                equipment = excluded.equipment,
                patterns = excluded.patterns,
                notes = excluded.notes,
                media_ref = excluded.media_ref,
                updated_at = excluded.updated_at`,
		ex.ID,
		ex.Name,
		string(ex.Type),
		ex.Equipment,
		strings.Join(ex.Patterns, ","),
		ex.Notes,
		ex.MediaRef,
		formatTime(ex.CreatedAt),
		formatTime(ex.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("Failed to create exercise: %w", err)
	}

	// The upsert may have kept an older row id, resolve it before touching
	// the muscle rows.
	var id string
	if err := tx.QueryRowContext(ctx,
		"SELECT id FROM exercises WHERE name = ?", ex.Name,
	).Scan(&id); err != nil {
		return fmt.Errorf("Failed to resolve exercise id: %w", err)
	}

	if err := replaceMusclesTx(ctx, tx, id, ex.PrimaryMuscles, ex.SecondaryMuscles); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("Failed to commit transaction: %w", err)
	}
	return nil
}

func (s *Storage) UpdateExercise(ex models.Exercise) error {
	ctx := context.Background()
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("Failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE exercises SET
            name = ?, type = ?, equipment = ?, patterns = ?, notes = ?,
            media_ref = ?, updated_at = ?
        WHERE id = ?`,
		ex.Name,
		string(ex.Type),
		ex.Equipment,
		strings.Join(ex.Patterns, ","),
		ex.Notes,
		ex.MediaRef,
		formatTime(ex.UpdatedAt),
		ex.ID,
	)
	if err != nil {
		return fmt.Errorf("Failed to update exercise: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Exercise %q does not exist", ex.Name)
	}

	if err := replaceMusclesTx(ctx, tx, ex.ID, ex.PrimaryMuscles, ex.SecondaryMuscles); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("Failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteExercise drops the exercise and its muscle map. Routine slots and
// set entries that point at it are kept as-is.
func (s *Storage) DeleteExercise(id string) error {
	res, err := s.DB.Exec("DELETE FROM exercises WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("Failed to delete exercise: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Exercise does not exist")
	}
	return nil
}

func (s *Storage) GetExerciseByName(name string) (*models.Exercise, error) {
	return s.getExercise("SELECT id, name, type, equipment, patterns, notes, media_ref, created_at, updated_at FROM exercises WHERE name = ?", name)
}

func (s *Storage) GetExerciseByID(id string) (*models.Exercise, error) {
	return s.getExercise("SELECT id, name, type, equipment, patterns, notes, media_ref, created_at, updated_at FROM exercises WHERE id = ?", id)
}

func (s *Storage) getExercise(query, arg string) (*models.Exercise, error) {
	var (
		ex                   models.Exercise
		patterns             string
		createdAt, updatedAt string
	)

	err := s.DB.QueryRow(query, arg).Scan(
		&ex.ID,
		&ex.Name,
		&ex.Type,
		&ex.Equipment,
		&patterns,
		&ex.Notes,
		&ex.MediaRef,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Failed to query exercise: %w", err)
	}

	if patterns != "" {
		ex.Patterns = strings.Split(patterns, ",")
	}
	ex.CreatedAt = parseTime(createdAt)
	ex.UpdatedAt = parseTime(updatedAt)

	if err := s.loadMuscles(&ex); err != nil {
		return nil, err
	}
	return &ex, nil
}

func (s *Storage) ListExercises() ([]models.Exercise, error) {
	rows, err := s.DB.Query(`
        SELECT id, name, type, equipment, patterns, notes, media_ref, created_at, updated_at
        FROM exercises
        ORDER BY name
    `)
	if err != nil {
		return nil, fmt.Errorf("Failed to query exercises: %w", err)
	}
	defer rows.Close()

	var exercises []models.Exercise
	for rows.Next() {
		var (
			ex                   models.Exercise
			patterns             string
			createdAt, updatedAt string
		)
		if err := rows.Scan(
			&ex.ID, &ex.Name, &ex.Type, &ex.Equipment, &patterns,
			&ex.Notes, &ex.MediaRef, &createdAt, &updatedAt,
		); err != nil {
			return nil, fmt.Errorf("Failed to scan exercise: %w", err)
		}
		if patterns != "" {
			ex.Patterns = strings.Split(patterns, ",")
		}
		ex.CreatedAt = parseTime(createdAt)
		ex.UpdatedAt = parseTime(updatedAt)
		exercises = append(exercises, ex)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range exercises {
		if err := s.loadMuscles(&exercises[i]); err != nil {
			return nil, err
		}
	}
	return exercises, nil
}

func (s *Storage) loadMuscles(ex *models.Exercise) error {
	rows, err := s.DB.Query(
		"SELECT muscle, role, weight FROM exercise_muscles WHERE exercise_id = ? ORDER BY weight DESC, muscle",
		ex.ID,
	)
	if err != nil {
		return fmt.Errorf("Failed to query muscles: %w", err)
	}
	defer rows.Close()

	ex.PrimaryMuscles = nil
	ex.SecondaryMuscles = nil
	for rows.Next() {
		var (
			target models.MuscleTarget
			role   string
		)
		if err := rows.Scan(&target.Muscle, &role, &target.Weight); err != nil {
			return fmt.Errorf("Failed to scan muscle: %w", err)
		}
		if role == "primary" {
			ex.PrimaryMuscles = append(ex.PrimaryMuscles, target)
		} else {
			ex.SecondaryMuscles = append(ex.SecondaryMuscles, target)
		}
	}
	return rows.Err()
}

func replaceMusclesTx(ctx context.Context, tx *sql.Tx, exerciseID string, primary, secondary []models.MuscleTarget) error {
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM exercise_muscles WHERE exercise_id = ?", exerciseID,
	); err != nil {
		return fmt.Errorf("Failed to clear muscles: %w", err)
	}

	insert := func(role string, targets []models.MuscleTarget) error {
		for _, t := range targets {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO exercise_muscles (exercise_id, muscle, role, weight) VALUES (?, ?, ?, ?)",
				exerciseID, t.Muscle, role, t.Weight,
			); err != nil {
				return fmt.Errorf("Failed to insert muscle %q: %w", t.Muscle, err)
			}
		}
		return nil
	}

	if err := insert("primary", primary); err != nil {
		return err
	}
	return insert("secondary", secondary)
}

// ExerciseStats is derived from logged sets at query time.
type ExerciseStats struct {
	LastPerformed  *time.Time
	BestSet        *models.RepsSet
	EstimatedOneRM float64
	TotalSets      int
}

func (s *Storage) GetExerciseStats(exerciseID string) (*ExerciseStats, error) {
	var stats ExerciseStats

	err := s.DB.QueryRow(
		"SELECT COUNT(*) FROM set_entries WHERE exercise_id = ?",
		exerciseID,
	).Scan(&stats.TotalSets)
	if err != nil {
		return nil, fmt.Errorf("Failed to count sets: %w", err)
	}

	var lastPerformed sql.NullString
	err = s.DB.QueryRow(
		"SELECT MAX(completed_at) FROM set_entries WHERE exercise_id = ?",
		exerciseID,
	).Scan(&lastPerformed)
	if err == nil && lastPerformed.Valid {
		t := parseTime(lastPerformed.String)
		stats.LastPerformed = &t
	}

	var best models.RepsSet
	err = s.DB.QueryRow(`
        SELECT weight, reps
        FROM set_entries
        WHERE exercise_id = ? AND entry_type = 'reps'
        ORDER BY (weight * (1 + reps/30.0)) DESC
        LIMIT 1`,
		exerciseID,
	).Scan(&best.Weight, &best.Reps)
	if err == nil {
		stats.BestSet = &best
		stats.EstimatedOneRM = utils.CalculateEpley1RM(best.Weight, best.Reps)
	}

	return &stats, nil
}
