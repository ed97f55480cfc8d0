package cmd

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/misterclayt0n/ironlog/internal/models"
	"github.com/misterclayt0n/ironlog/internal/utils"
)

var importExercisesCmd = &cobra.Command{
	Use:   "import-exercises [file.toml]",
	Short: "Batch-load exercises from a TOML file, updating ones that already exist",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		imp, err := utils.ParseImportFromTOML(args[0])
		if err != nil {
			return fmt.Errorf("Failed to parse %s: %w", args[0], err)
		}

		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		now := time.Now().UTC()
		count := 0
		for _, entry := range imp.Exercises {
			ex := models.Exercise{
				ID:               uuid.New().String(),
				Name:             entry.Name,
				Type:             models.ExerciseType(entry.Type),
				Equipment:        entry.Equipment,
				Patterns:         entry.Patterns,
				Notes:            entry.Notes,
				MediaRef:         entry.MediaRef,
				CreatedAt:        now,
				UpdatedAt:        now,
			}
			for _, m := range entry.Primary {
				ex.PrimaryMuscles = append(ex.PrimaryMuscles, models.MuscleTarget{Muscle: m.Muscle, Weight: m.Weight})
			}
			for _, m := range entry.Secondary {
				ex.SecondaryMuscles = append(ex.SecondaryMuscles, models.MuscleTarget{Muscle: m.Muscle, Weight: m.Weight})
			}

			if err := ex.Validate(); err != nil {
				return fmt.Errorf("Entry %q: %w", entry.Name, err)
			}
			if err := st.CreateExercise(ex); err != nil {
				return fmt.Errorf("Failed to import %q: %w", entry.Name, err)
			}
			count++
		}

		fmt.Printf("✅ Imported %d exercises from %s\n", count, args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importExercisesCmd)
}
