package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/misterclayt0n/ironlog/internal/models"
)

func (s *Storage) CreatePlannedWorkout(p models.PlannedWorkout) error {
	_, err := s.DB.Exec(
		`INSERT INTO planned_workouts (id, routine_id, date, status, session_id, created_at)
         VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID,
		p.RoutineID,
		formatTime(p.Date),
		string(p.Status),
		p.SessionID,
		formatTime(p.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("Failed to insert planned workout: %w", err)
	}
	return nil
}

func (s *Storage) GetPlannedWorkoutByID(id string) (*models.PlannedWorkout, error) {
	var (
		p         models.PlannedWorkout
		date      string
		sessionID sql.NullString
		createdAt string
	)

	err := s.DB.QueryRow(
		"SELECT id, routine_id, date, status, session_id, created_at FROM planned_workouts WHERE id = ?",
		id,
	).Scan(&p.ID, &p.RoutineID, &date, &p.Status, &sessionID, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Failed to query planned workout: %w", err)
	}

	p.Date = parseTime(date)
	if sessionID.Valid {
		p.SessionID = &sessionID.String
	}
	p.CreatedAt = parseTime(createdAt)
	return &p, nil
}

// ListPlannedBetween returns plans dated in [from, to), oldest first.
func (s *Storage) ListPlannedBetween(from, to time.Time) ([]models.PlannedWorkout, error) {
	rows, err := s.DB.Query(
		"SELECT id, routine_id, date, status, session_id, created_at FROM planned_workouts WHERE date >= ? AND date < ? ORDER BY date",
		formatTime(from),
		formatTime(to),
	)
	if err != nil {
		return nil, fmt.Errorf("Failed to query planned workouts: %w", err)
	}
	defer rows.Close()

	var plans []models.PlannedWorkout
	for rows.Next() {
		var (
			p         models.PlannedWorkout
			date      string
			sessionID sql.NullString
			createdAt string
		)
		if err := rows.Scan(&p.ID, &p.RoutineID, &date, &p.Status, &sessionID, &createdAt); err != nil {
			return nil, fmt.Errorf("Failed to scan planned workout: %w", err)
		}
		p.Date = parseTime(date)
		if sessionID.Valid {
			p.SessionID = &sessionID.String
		}
		p.CreatedAt = parseTime(createdAt)
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

func (s *Storage) UpdatePlannedStatus(id string, status models.PlanStatus, sessionID *string) error {
	res, err := s.DB.Exec(
		"UPDATE planned_workouts SET status = ?, session_id = ? WHERE id = ?",
		string(status),
		sessionID,
		id,
	)
	if err != nil {
		return fmt.Errorf("Failed to update planned workout: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Planned workout does not exist")
	}
	return nil
}
