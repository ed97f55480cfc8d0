package models

import (
	"fmt"
	"sort"
	"strconv"
)

// Settings are the user preferences that shape new workouts. They are
// stored as key/value pairs so unknown keys from older builds are ignored
// rather than rejected.
type Settings struct {
	DefaultRestBetweenSetsSec      int
	DefaultRestBetweenExercisesSec int
	WeightUnit                     string
	DistanceUnit                   string
	SoundEnabled                   bool
	NotificationsEnabled           bool
	VibrationEnabled               bool
}

func DefaultSettings() Settings {
	return Settings{
		DefaultRestBetweenSetsSec:      90,
		DefaultRestBetweenExercisesSec: 180,
		WeightUnit:                     "kgs",
		DistanceUnit:                   "km",
		SoundEnabled:                   true,
		NotificationsEnabled:           true,
		VibrationEnabled:               true,
	}
}

// SettingKeys lists every recognized settings key in display order.
func SettingKeys() []string {
	keys := []string{
		"default_rest_between_sets",
		"default_rest_between_exercises",
		"weight_unit",
		"distance_unit",
		"sound_enabled",
		"notifications_enabled",
		"vibration_enabled",
	}
	sort.Strings(keys)
	return keys
}

// Apply parses and applies one key/value pair onto the settings.
func (s *Settings) Apply(key, value string) error {
	switch key {
	case "default_rest_between_sets":
		secs, err := parseNonNegativeSeconds(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %w", key, err)
		}
		s.DefaultRestBetweenSetsSec = secs
	case "default_rest_between_exercises":
		secs, err := parseNonNegativeSeconds(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %w", key, err)
		}
		s.DefaultRestBetweenExercisesSec = secs
	case "weight_unit":
		if value != "kgs" && value != "lbs" {
			return fmt.Errorf("invalid value for %s: expected kgs or lbs", key)
		}
		s.WeightUnit = value
	case "distance_unit":
		if value != "km" && value != "miles" {
			return fmt.Errorf("invalid value for %s: expected km or miles", key)
		}
		s.DistanceUnit = value
	case "sound_enabled", "notifications_enabled", "vibration_enabled":
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: expected true or false", key)
		}
		switch key {
		case "sound_enabled":
			s.SoundEnabled = enabled
		case "notifications_enabled":
			s.NotificationsEnabled = enabled
		case "vibration_enabled":
			s.VibrationEnabled = enabled
		}
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return nil
}

// Map flattens the settings into the key/value form they are stored in.
func (s Settings) Map() map[string]string {
	return map[string]string{
		"default_rest_between_sets":      strconv.Itoa(s.DefaultRestBetweenSetsSec),
		"default_rest_between_exercises": strconv.Itoa(s.DefaultRestBetweenExercisesSec),
		"weight_unit":                    s.WeightUnit,
		"distance_unit":                  s.DistanceUnit,
		"sound_enabled":                  strconv.FormatBool(s.SoundEnabled),
		"notifications_enabled":          strconv.FormatBool(s.NotificationsEnabled),
		"vibration_enabled":              strconv.FormatBool(s.VibrationEnabled),
	}
}

func parseNonNegativeSeconds(value string) (int, error) {
	secs, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("expected a number of seconds")
	}
	if secs < 0 {
		return 0, fmt.Errorf("seconds cannot be negative")
	}
	return secs, nil
}
