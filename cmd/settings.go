package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/misterclayt0n/ironlog/internal/models"
	"github.com/misterclayt0n/ironlog/internal/storage"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Display all settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		settings, err := st.GetSettings()
		if err != nil {
			return fmt.Errorf("Failed to retrieve settings: %w", err)
		}

		cyan := color.New(color.FgCyan).SprintFunc()
		values := settings.Map()
		for _, key := range models.SettingKeys() {
			fmt.Printf("%s %s\n", cyan(fmt.Sprintf("%-32s", key)), values[key])
		}
		return nil
	},
}

// displaySettings returns the stored preferences, or the defaults when the
// lookup fails. Output code never errors over a missing preference row.
func displaySettings(st *storage.Storage) models.Settings {
	settings, err := st.GetSettings()
	if err != nil {
		return models.DefaultSettings()
	}
	return settings
}

// weightLabel returns the display label for the configured weight unit.
func weightLabel(s models.Settings) string {
	if s.WeightUnit == "lbs" {
		return "lbs"
	}
	return "kg"
}

// distanceLabel returns the display label for the configured distance unit.
func distanceLabel(s models.Settings) string {
	if s.DistanceUnit == "miles" {
		return "mi"
	}
	return "km"
}

// speedLabel returns the display label for speeds, following the distance unit.
func speedLabel(s models.Settings) string {
	if s.DistanceUnit == "miles" {
		return "mph"
	}
	return "km/h"
}

func init() {
	rootCmd.AddCommand(settingsCmd)
}
