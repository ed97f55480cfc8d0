package session

import (
	"context"
	"time"

	"github.com/misterclayt0n/ironlog/internal/models"
)

// Each extension pushes the rest deadline out by this much.
const extendStep = 30 * time.Second

// SkipRest ends the rest early and moves straight into the next work
// phase. No notification fires, the skip was the user's own doing.
func (m *Manager) SkipRest() (*models.ActiveWorkoutState, error) {
	state, err := m.loadState()
	if err != nil {
		return nil, err
	}

	if state.Phase != models.PhaseRest {
		return nil, &InvalidTransitionError{Phase: state.Phase, Op: "skip rest"}
	}

	m.finishRest(state)

	if err := m.repo.Save(state); err != nil {
		return nil, err
	}

	m.logger.Printf("session: rest skipped, moving to %s", state.Phase)
	return state, nil
}

// ExtendRest pushes the rest deadline out by 30 seconds per call.
func (m *Manager) ExtendRest() (*models.ActiveWorkoutState, error) {
	state, err := m.loadState()
	if err != nil {
		return nil, err
	}

	if state.Phase != models.PhaseRest {
		return nil, &InvalidTransitionError{Phase: state.Phase, Op: "extend rest"}
	}

	ends := state.RestEndsAt.Add(extendStep)
	state.RestEndsAt = &ends
	state.RestTotalSec += int(extendStep / time.Second)

	if err := m.repo.Save(state); err != nil {
		return nil, err
	}

	m.logger.Printf("session: rest extended, %ds total", state.RestTotalSec)
	return state, nil
}

// finishRest moves the workout out of rest into the work phase of the
// exercise under the cursor.
func (m *Manager) finishRest(state *models.ActiveWorkoutState) {
	state.Phase = entryPhaseFor(state.CurrentWorkoutExercise())
	state.RestEndsAt = nil
	state.RestTotalSec = 0
}

// AwaitRest blocks until the current rest ends, reporting the remaining
// seconds through onTick about once a second. When the deadline passes the
// workout advances and the notifier fires. It returns right away when no
// rest is running. The snapshot is re-read every tick, so extensions and
// skips made from another terminal are honored.
func (m *Manager) AwaitRest(ctx context.Context, onTick func(remaining int)) error {
	timer := newRestTimer(m.tick)

	return timer.Run(ctx, func() (bool, error) {
		state, err := m.repo.Load()
		if err != nil {
			return false, err
		}
		if state == nil {
			return false, ErrNoActiveSession
		}
		if state.Phase != models.PhaseRest || state.RestEndsAt == nil {
			return false, nil
		}

		remaining := int(state.RestEndsAt.Sub(m.now()).Seconds())
		if remaining > 0 {
			if onTick != nil {
				onTick(remaining)
			}
			return true, nil
		}

		m.finishRest(state)
		if err := m.repo.Save(state); err != nil {
			return false, err
		}
		if onTick != nil {
			onTick(0)
		}

		m.logger.Printf("session: rest finished, moving to %s", state.Phase)
		m.notifier.RestComplete()
		return false, nil
	})
}
