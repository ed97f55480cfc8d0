package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/misterclayt0n/ironlog/internal/models"
)

func entryType(entry models.SetEntry) (string, error) {
	switch {
	case entry.Reps != nil:
		return "reps", nil
	case entry.Time != nil:
		return "time", nil
	case entry.Cardio != nil:
		return "cardio", nil
	}
	return "", fmt.Errorf("Set entry %s carries no measurement", entry.ID)
}

func insertSetEntryTx(ctx context.Context, tx *sql.Tx, entry models.SetEntry) error {
	kind, err := entryType(entry)
	if err != nil {
		return err
	}

	var (
		reps                     *int
		weight                   *float64
		duration                 *int
		incline, speed, distance *float64
	)
	switch kind {
	case "reps":
		reps = &entry.Reps.Reps
		weight = &entry.Reps.Weight
	case "time":
		duration = &entry.Time.DurationSec
	case "cardio":
		duration = &entry.Cardio.DurationSec
		incline = entry.Cardio.Incline
		speed = entry.Cardio.Speed
		distance = entry.Cardio.Distance
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO set_entries
            (id, session_id, exercise_id, set_index, entry_type,
             reps, weight, duration, incline, speed, distance, rpe, notes, completed_at)
            VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
            ON CONFLICT(id) DO NOTHING`,
		entry.ID,
		entry.SessionID,
		entry.ExerciseID,
		entry.SetIndex,
		kind,
		reps,
		weight,
		duration,
		incline,
		speed,
		distance,
		entry.RPE,
		entry.Notes,
		formatTime(entry.CompletedAt),
	)
	if err != nil {
		return fmt.Errorf("Failed to insert set entry: %w", err)
	}
	return nil
}

func scanSetEntry(rows interface{ Scan(...any) error }) (models.SetEntry, error) {
	var (
		entry                    models.SetEntry
		kind                     string
		reps                     sql.NullInt64
		weight                   sql.NullFloat64
		duration                 sql.NullInt64
		incline, speed, distance sql.NullFloat64
		rpe                      sql.NullInt64
		completedAt              string
	)

	err := rows.Scan(
		&entry.ID,
		&entry.SessionID,
		&entry.ExerciseID,
		&entry.SetIndex,
		&kind,
		&reps,
		&weight,
		&duration,
		&incline,
		&speed,
		&distance,
		&rpe,
		&entry.Notes,
		&completedAt,
	)
	if err != nil {
		return entry, err
	}

	switch kind {
	case "reps":
		entry.Reps = &models.RepsSet{Reps: int(reps.Int64), Weight: weight.Float64}
	case "time":
		entry.Time = &models.TimedSet{DurationSec: int(duration.Int64)}
	case "cardio":
		cardio := &models.CardioSet{DurationSec: int(duration.Int64)}
		if incline.Valid {
			cardio.Incline = &incline.Float64
		}
		if speed.Valid {
			cardio.Speed = &speed.Float64
		}
		if distance.Valid {
			cardio.Distance = &distance.Float64
		}
		entry.Cardio = cardio
	}
	if rpe.Valid {
		n := int(rpe.Int64)
		entry.RPE = &n
	}
	entry.CompletedAt = parseTime(completedAt)
	return entry, nil
}

const setEntryColumns = "id, session_id, exercise_id, set_index, entry_type, reps, weight, duration, incline, speed, distance, rpe, notes, completed_at"

func (s *Storage) SetEntriesBySession(sessionID string) ([]models.SetEntry, error) {
	rows, err := s.DB.Query(
		"SELECT "+setEntryColumns+" FROM set_entries WHERE session_id = ? ORDER BY completed_at",
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("Failed to query set entries: %w", err)
	}
	defer rows.Close()

	var entries []models.SetEntry
	for rows.Next() {
		entry, err := scanSetEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("Failed to scan set entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// LastSetForExercise returns the most recently logged set of the exercise
// across all sessions, or nil when it was never performed.
func (s *Storage) LastSetForExercise(exerciseID string) (*models.SetEntry, error) {
	row := s.DB.QueryRow(
		"SELECT "+setEntryColumns+" FROM set_entries WHERE exercise_id = ? ORDER BY completed_at DESC LIMIT 1",
		exerciseID,
	)

	entry, err := scanSetEntry(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Failed to query last set: %w", err)
	}
	return &entry, nil
}

// SetEntriesBetween returns sets completed in [from, to), oldest first.
func (s *Storage) SetEntriesBetween(from, to time.Time) ([]models.SetEntry, error) {
	rows, err := s.DB.Query(
		"SELECT "+setEntryColumns+" FROM set_entries WHERE completed_at >= ? AND completed_at < ? ORDER BY completed_at",
		formatTime(from),
		formatTime(to),
	)
	if err != nil {
		return nil, fmt.Errorf("Failed to query set entries: %w", err)
	}
	defer rows.Close()

	var entries []models.SetEntry
	for rows.Next() {
		entry, err := scanSetEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("Failed to scan set entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// AllSetEntries returns every logged set, oldest first.
func (s *Storage) AllSetEntries() ([]models.SetEntry, error) {
	rows, err := s.DB.Query("SELECT " + setEntryColumns + " FROM set_entries ORDER BY completed_at")
	if err != nil {
		return nil, fmt.Errorf("Failed to query set entries: %w", err)
	}
	defer rows.Close()

	var entries []models.SetEntry
	for rows.Next() {
		entry, err := scanSetEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("Failed to scan set entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
