package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	"github.com/misterclayt0n/ironlog/internal/config"
)

type Storage struct {
	DB *sql.DB
}

// NewStorage opens the database named by the config, creating and migrating
// it on first use. A .env file may override config values through the
// environment, its absence is fine.
func NewStorage() (*Storage, error) {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("Failed to load config: %w", err)
	}

	return Open(cfg.Database.Path)
}

func Open(path string) (*Storage, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("Failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("Failed to open db %s: %w", path, err)
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("Failed to apply %q: %w", pragma, err)
		}
	}

	if err := initializeDB(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("Failed to initialize database: %w", err)
	}

	return &Storage{DB: db}, nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

// Exercise and routine references in set_entries and routine_exercises carry
// no foreign keys on purpose. Deleting a library exercise must not touch
// history, dangling ids render as "Unknown exercise".
func initializeDB(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS exercises (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL UNIQUE,
            type TEXT NOT NULL,
            equipment TEXT,
            patterns TEXT,
            notes TEXT,
            media_ref TEXT,
            created_at TEXT NOT NULL,
            updated_at TEXT NOT NULL
        );

        CREATE TABLE IF NOT EXISTS exercise_muscles (
            exercise_id TEXT NOT NULL,
            muscle TEXT NOT NULL,
            role TEXT NOT NULL,
            weight REAL NOT NULL,
            PRIMARY KEY (exercise_id, muscle, role),
            FOREIGN KEY (exercise_id) REFERENCES exercises(id) ON DELETE CASCADE
        );

        CREATE TABLE IF NOT EXISTS routines (
            id TEXT PRIMARY KEY,
            name TEXT NOT NULL UNIQUE,
            notes TEXT,
            rest_between_exercises INTEGER NOT NULL DEFAULT 0,
            created_at TEXT NOT NULL,
            updated_at TEXT NOT NULL
        );

        CREATE TABLE IF NOT EXISTS routine_exercises (
            id TEXT PRIMARY KEY,
            routine_id TEXT NOT NULL,
            exercise_id TEXT NOT NULL,
            position INTEGER NOT NULL,
            target_sets INTEGER NOT NULL,
            target_reps INTEGER,
            target_duration INTEGER,
            rest_between_sets INTEGER NOT NULL DEFAULT 0,
            FOREIGN KEY (routine_id) REFERENCES routines(id) ON DELETE CASCADE
        );

        CREATE TABLE IF NOT EXISTS sessions (
            id TEXT PRIMARY KEY,
            routine_id TEXT,
            planned_workout_id TEXT,
            started_at TEXT NOT NULL,
            ended_at TEXT,
            status TEXT NOT NULL,
            notes TEXT
        );

        CREATE TABLE IF NOT EXISTS set_entries (
            id TEXT PRIMARY KEY,
            session_id TEXT NOT NULL,
            exercise_id TEXT NOT NULL,
            set_index INTEGER NOT NULL,
            entry_type TEXT NOT NULL,
            reps INTEGER,
            weight REAL,
            duration INTEGER,
            incline REAL,
            speed REAL,
            distance REAL,
            rpe INTEGER,
            notes TEXT,
            completed_at TEXT NOT NULL,
            FOREIGN KEY (session_id) REFERENCES sessions(id) ON DELETE CASCADE
        );

        CREATE TABLE IF NOT EXISTS planned_workouts (
            id TEXT PRIMARY KEY,
            routine_id TEXT NOT NULL,
            date TEXT NOT NULL,
            status TEXT NOT NULL,
            session_id TEXT,
            created_at TEXT NOT NULL
        );

        CREATE TABLE IF NOT EXISTS settings (
            key TEXT PRIMARY KEY,
            value TEXT NOT NULL
        );

        CREATE INDEX IF NOT EXISTS idx_set_entries_exercise
            ON set_entries(exercise_id, completed_at);
        CREATE INDEX IF NOT EXISTS idx_sessions_started
            ON sessions(started_at);
    `)
	return err
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}
