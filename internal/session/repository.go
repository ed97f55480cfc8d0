package session

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/misterclayt0n/ironlog/internal/models"
)

// Repository persists the single active workout snapshot. Load returns
// (nil, nil) when no workout is in progress.
type Repository interface {
	Load() (*models.ActiveWorkoutState, error)
	Save(state *models.ActiveWorkoutState) error
	Clear() error
}

// FileRepository keeps the snapshot in one TOML file. A snapshot that
// cannot be decoded or fails the sanity check is discarded so a bad write
// can never wedge the app, losing the in-flight workout is the lesser evil.
type FileRepository struct {
	path   string
	logger *log.Logger
}

var _ Repository = (*FileRepository)(nil)

func NewFileRepository(path string, logger *log.Logger) *FileRepository {
	return &FileRepository{path: path, logger: logger}
}

func (r *FileRepository) Load() (*models.ActiveWorkoutState, error) {
	if _, err := os.Stat(r.path); os.IsNotExist(err) {
		return nil, nil
	}

	var state models.ActiveWorkoutState
	if _, err := toml.DecodeFile(r.path, &state); err != nil {
		r.logger.Printf("session: discarding unreadable snapshot %s: %v", r.path, err)
		_ = os.Remove(r.path)
		return nil, nil
	}

	if err := checkState(&state); err != nil {
		r.logger.Printf("session: discarding invalid snapshot %s: %v", r.path, err)
		_ = os.Remove(r.path)
		return nil, nil
	}

	return &state, nil
}

// Save writes the whole snapshot through a temp file and a rename so a
// crash mid-write leaves the previous snapshot intact.
func (r *FileRepository) Save(state *models.ActiveWorkoutState) error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), ".active_workout-*.toml")
	if err != nil {
		return fmt.Errorf("failed to create snapshot temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := toml.NewEncoder(tmp).Encode(state); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close snapshot temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}

func (r *FileRepository) Clear() error {
	if err := os.Remove(r.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear snapshot: %w", err)
	}
	return nil
}

// checkState rejects snapshots that no engine build could have written.
func checkState(state *models.ActiveWorkoutState) error {
	if state.Session.ID == "" {
		return fmt.Errorf("snapshot has no session id")
	}
	if !state.Phase.IsValid() {
		return fmt.Errorf("unknown phase %q", state.Phase)
	}
	if state.Phase == models.PhaseEmpty && len(state.WorkoutExercises) > 0 {
		return fmt.Errorf("empty phase with %d exercises", len(state.WorkoutExercises))
	}
	switch state.Phase {
	case models.PhaseExercise, models.PhaseCardio, models.PhaseRest, models.PhaseComplete:
		if len(state.WorkoutExercises) == 0 {
			return fmt.Errorf("%s phase with no exercises", state.Phase)
		}
		if state.CurrentExercise < 0 || state.CurrentExercise >= len(state.WorkoutExercises) {
			return fmt.Errorf("exercise cursor %d out of range", state.CurrentExercise)
		}
		if state.CurrentSet < 0 {
			return fmt.Errorf("set cursor %d out of range", state.CurrentSet)
		}
	}
	if state.Phase == models.PhaseRest && state.RestEndsAt == nil {
		return fmt.Errorf("rest phase with no deadline")
	}
	return nil
}

// MemoryRepository holds the snapshot in memory.
type MemoryRepository struct {
	mu    sync.Mutex
	state *models.ActiveWorkoutState
}

var _ Repository = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Load() (*models.ActiveWorkoutState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == nil {
		return nil, nil
	}
	copied := *r.state
	return &copied, nil
}

func (r *MemoryRepository) Save(state *models.ActiveWorkoutState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *state
	r.state = &copied
	return nil
}

func (r *MemoryRepository) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = nil
	return nil
}
