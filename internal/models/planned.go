package models

import "time"

type PlanStatus string

const (
	PlanPending   PlanStatus = "pending"
	PlanCompleted PlanStatus = "completed"
	PlanSkipped   PlanStatus = "skipped"
)

func (s PlanStatus) IsValid() bool {
	switch s {
	case PlanPending, PlanCompleted, PlanSkipped:
		return true
	}
	return false
}

// PlannedWorkout pins a routine to a calendar day. SessionID is filled in
// once a session started from the plan completes.
type PlannedWorkout struct {
	ID        string     `json:"id" toml:"id"`
	RoutineID string     `json:"routine_id" toml:"routine_id"`
	Date      time.Time  `json:"date" toml:"date"`
	Status    PlanStatus `json:"status" toml:"status"`
	SessionID *string    `json:"session_id,omitempty" toml:"session_id"`
	CreatedAt time.Time  `json:"created_at" toml:"created_at"`
}
