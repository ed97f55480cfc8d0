package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/misterclayt0n/ironlog/internal/models"
)

var exportOut string

// exportFile is the on-disk shape of a full data dump.
type exportFile struct {
	ExportedAt      time.Time               `json:"exported_at"`
	Exercises       []models.Exercise       `json:"exercises"`
	Routines        []models.Routine        `json:"routines"`
	Sessions        []models.WorkoutSession `json:"sessions"`
	Sets            []models.SetEntry       `json:"sets"`
	PlannedWorkouts []models.PlannedWorkout `json:"planned_workouts"`
	Settings        map[string]string       `json:"settings"`
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all data to a JSON file",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		dump := exportFile{ExportedAt: time.Now().UTC()}

		if dump.Exercises, err = st.ListExercises(); err != nil {
			return fmt.Errorf("Failed to export exercises: %w", err)
		}
		if dump.Routines, err = st.ListRoutines(); err != nil {
			return fmt.Errorf("Failed to export routines: %w", err)
		}
		if dump.Sessions, err = st.ListSessionsBetween(time.Unix(0, 0), time.Now().Add(24*time.Hour)); err != nil {
			return fmt.Errorf("Failed to export sessions: %w", err)
		}
		if dump.Sets, err = st.AllSetEntries(); err != nil {
			return fmt.Errorf("Failed to export sets: %w", err)
		}
		if dump.PlannedWorkouts, err = st.ListPlannedBetween(time.Unix(0, 0), time.Now().AddDate(100, 0, 0)); err != nil {
			return fmt.Errorf("Failed to export planned workouts: %w", err)
		}
		settings, err := st.GetSettings()
		if err != nil {
			return fmt.Errorf("Failed to export settings: %w", err)
		}
		dump.Settings = settings.Map()

		data, err := json.MarshalIndent(dump, "", "  ")
		if err != nil {
			return fmt.Errorf("Failed to encode export: %w", err)
		}

		outputPath, err := filepath.Abs(exportOut)
		if err != nil {
			return err
		}
		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			return fmt.Errorf("Failed to write export file: %w", err)
		}

		fmt.Printf("✅ Data exported successfully to %s\n", outputPath)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "ironlog_dump.json", "Output file")
	rootCmd.AddCommand(exportCmd)
}
