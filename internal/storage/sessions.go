package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/misterclayt0n/ironlog/internal/models"
	"github.com/misterclayt0n/ironlog/internal/utils"
)

func (s *Storage) InsertSession(sess models.WorkoutSession) error {
	var endedAt *string
	if sess.EndedAt != nil {
		formatted := formatTime(*sess.EndedAt)
		endedAt = &formatted
	}

	_, err := s.DB.Exec(
		`INSERT INTO sessions (id, routine_id, planned_workout_id, started_at, ended_at, status, notes)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sess.ID,
		sess.RoutineID,
		sess.PlannedWorkoutID,
		formatTime(sess.StartedAt),
		endedAt,
		string(sess.Status),
		sess.Notes,
	)
	if err != nil {
		return fmt.Errorf("Failed to insert session: %w", err)
	}
	return nil
}

// FinishSession commits the final session row and its set entries in one
// transaction. The session row is upserted so a crash between starting a
// workout and finishing it cannot strand the log.
func (s *Storage) FinishSession(sess models.WorkoutSession, sets []models.SetEntry) error {
	ctx := context.Background()
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("Failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var endedAt *string
	if sess.EndedAt != nil {
		formatted := formatTime(*sess.EndedAt)
		endedAt = &formatted
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO sessions (id, routine_id, planned_workout_id, started_at, ended_at, status, notes)
         VALUES (?, ?, ?, ?, ?, ?, ?)
         ON CONFLICT(id) DO UPDATE SET
            ended_at = excluded.ended_at,
            status = excluded.status,
            notes = excluded.notes`,
		sess.ID,
		sess.RoutineID,
		sess.PlannedWorkoutID,
		formatTime(sess.StartedAt),
		endedAt,
		string(sess.Status),
		sess.Notes,
	)
	if err != nil {
		return fmt.Errorf("Failed to finalize session: %w", err)
	}

	for _, entry := range sets {
		if err := insertSetEntryTx(ctx, tx, entry); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("Failed to commit transaction: %w", err)
	}
	return nil
}

func (s *Storage) GetSessionByID(id string) (*models.WorkoutSession, error) {
	return s.getSession("SELECT id, routine_id, planned_workout_id, started_at, ended_at, status, notes FROM sessions WHERE id = ?", id)
}

// GetActiveSession returns the session stuck in the active status, if any.
// Normally the active workout lives in the snapshot file, a row here with
// no snapshot means a crash mid-start.
func (s *Storage) GetActiveSession() (*models.WorkoutSession, error) {
	return s.getSession("SELECT id, routine_id, planned_workout_id, started_at, ended_at, status, notes FROM sessions WHERE status = 'active' ORDER BY started_at DESC LIMIT 1")
}

func (s *Storage) getSession(query string, args ...any) (*models.WorkoutSession, error) {
	var (
		sess      models.WorkoutSession
		routineID sql.NullString
		plannedID sql.NullString
		startedAt string
		endedAt   sql.NullString
	)

	err := s.DB.QueryRow(query, args...).Scan(
		&sess.ID,
		&routineID,
		&plannedID,
		&startedAt,
		&endedAt,
		&sess.Status,
		&sess.Notes,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Failed to query session: %w", err)
	}

	if routineID.Valid {
		sess.RoutineID = &routineID.String
	}
	if plannedID.Valid {
		sess.PlannedWorkoutID = &plannedID.String
	}
	sess.StartedAt = parseTime(startedAt)
	if endedAt.Valid {
		t := parseTime(endedAt.String)
		sess.EndedAt = &t
	}
	return &sess, nil
}

// ListSessionsBetween returns sessions whose start falls in [from, to),
// newest first.
func (s *Storage) ListSessionsBetween(from, to time.Time) ([]models.WorkoutSession, error) {
	rows, err := s.DB.Query(`
        SELECT id, routine_id, planned_workout_id, started_at, ended_at, status, notes
        FROM sessions
        WHERE started_at >= ? AND started_at < ?
        ORDER BY started_at DESC`,
		formatTime(from),
		formatTime(to),
	)
	if err != nil {
		return nil, fmt.Errorf("Failed to query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []models.WorkoutSession
	for rows.Next() {
		var (
			sess      models.WorkoutSession
			routineID sql.NullString
			plannedID sql.NullString
			startedAt string
			endedAt   sql.NullString
		)
		if err := rows.Scan(
			&sess.ID, &routineID, &plannedID, &startedAt, &endedAt, &sess.Status, &sess.Notes,
		); err != nil {
			return nil, fmt.Errorf("Failed to scan session: %w", err)
		}
		if routineID.Valid {
			sess.RoutineID = &routineID.String
		}
		if plannedID.Valid {
			sess.PlannedWorkoutID = &plannedID.String
		}
		sess.StartedAt = parseTime(startedAt)
		if endedAt.Valid {
			t := parseTime(endedAt.String)
			sess.EndedAt = &t
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// GetSessionsByDate returns the sessions started on the given local day.
func (s *Storage) GetSessionsByDate(day time.Time) ([]models.WorkoutSession, error) {
	from, to := utils.DayBounds(day)
	return s.ListSessionsBetween(from, to)
}
