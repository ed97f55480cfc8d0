package session

import (
	"errors"
	"fmt"

	"github.com/misterclayt0n/ironlog/internal/models"
)

// ErrNoActiveSession is returned by every operation that needs a workout in
// progress when there is none.
var ErrNoActiveSession = errors.New("no active workout session")

// ActiveSessionExistsError rejects starting a workout while another one is
// still active. The caller decides whether to resume or end the old one.
type ActiveSessionExistsError struct {
	SessionID string
}

func (e *ActiveSessionExistsError) Error() string {
	return fmt.Sprintf("a workout session is already active (%s)", e.SessionID)
}

// InvalidTransitionError rejects an operation the current phase does not
// allow, completing a set mid-rest for example.
type InvalidTransitionError struct {
	Phase models.Phase
	Op    string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s while the workout is in the %s phase", e.Op, e.Phase)
}

// ValidationError rejects malformed input before any state changes.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
