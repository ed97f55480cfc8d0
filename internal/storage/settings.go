package storage

import (
	"fmt"

	"github.com/misterclayt0n/ironlog/internal/models"
)

// GetSettings loads the stored preferences on top of the defaults. Rows
// written by newer builds with keys this one does not know are skipped.
func (s *Storage) GetSettings() (models.Settings, error) {
	settings := models.DefaultSettings()

	rows, err := s.DB.Query("SELECT key, value FROM settings")
	if err != nil {
		return settings, fmt.Errorf("Failed to query settings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return settings, fmt.Errorf("Failed to scan setting: %w", err)
		}
		_ = settings.Apply(key, value)
	}
	return settings, rows.Err()
}

func (s *Storage) SaveSettings(settings models.Settings) error {
	for key, value := range settings.Map() {
		if err := s.upsertSetting(key, value); err != nil {
			return err
		}
	}
	return nil
}

// SetSetting validates and stores a single preference.
func (s *Storage) SetSetting(key, value string) error {
	current, err := s.GetSettings()
	if err != nil {
		return err
	}
	if err := current.Apply(key, value); err != nil {
		return err
	}
	return s.upsertSetting(key, current.Map()[key])
}

func (s *Storage) upsertSetting(key, value string) error {
	_, err := s.DB.Exec(
		"INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	if err != nil {
		return fmt.Errorf("Failed to store setting %s: %w", key, err)
	}
	return nil
}
