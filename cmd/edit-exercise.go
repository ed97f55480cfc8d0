package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/misterclayt0n/ironlog/internal/models"
)

var (
	editExName      string
	editExType      string
	editExEquipment string
	editExPrimary   string
	editExSecondary string
	editExPatterns  string
	editExNotes     string
	editExMedia     string
)

// Edits apply to the library only. A workout in progress keeps the name
// and type it captured when the exercise was bound.
var editExerciseCmd = &cobra.Command{
	Use:   "edit-exercise [name]",
	Short: "Edit fields of a library exercise",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		ex, err := st.GetExerciseByName(args[0])
		if err != nil {
			return err
		}
		if ex == nil {
			return fmt.Errorf("Exercise %q does not exist", args[0])
		}

		if cmd.Flags().Changed("name") {
			ex.Name = editExName
		}
		if cmd.Flags().Changed("type") {
			ex.Type = models.ExerciseType(editExType)
		}
		if cmd.Flags().Changed("equipment") {
			ex.Equipment = editExEquipment
		}
		if cmd.Flags().Changed("primary") {
			targets, err := parseMuscleSpec(editExPrimary)
			if err != nil {
				return err
			}
			ex.PrimaryMuscles = targets
		}
		if cmd.Flags().Changed("secondary") {
			targets, err := parseMuscleSpec(editExSecondary)
			if err != nil {
				return err
			}
			ex.SecondaryMuscles = targets
		}
		if cmd.Flags().Changed("patterns") {
			ex.Patterns = splitList(editExPatterns)
		}
		if cmd.Flags().Changed("notes") {
			ex.Notes = editExNotes
		}
		if cmd.Flags().Changed("media") {
			ex.MediaRef = editExMedia
		}
		ex.UpdatedAt = time.Now().UTC()

		if err := ex.Validate(); err != nil {
			return err
		}
		if err := st.UpdateExercise(*ex); err != nil {
			return fmt.Errorf("Failed to update exercise: %w", err)
		}

		fmt.Printf("✅ Updated exercise '%s'\n", ex.Name)
		return nil
	},
}

func init() {
	editExerciseCmd.Flags().StringVar(&editExName, "name", "", "New name")
	editExerciseCmd.Flags().StringVarP(&editExType, "type", "t", "", "New type: reps, time or cardio")
	editExerciseCmd.Flags().StringVarP(&editExEquipment, "equipment", "e", "", "New equipment")
	editExerciseCmd.Flags().StringVarP(&editExPrimary, "primary", "p", "", "Replace primary muscles")
	editExerciseCmd.Flags().StringVarP(&editExSecondary, "secondary", "s", "", "Replace secondary muscles")
	editExerciseCmd.Flags().StringVar(&editExPatterns, "patterns", "", "Replace movement patterns")
	editExerciseCmd.Flags().StringVarP(&editExNotes, "notes", "n", "", "Replace notes")
	editExerciseCmd.Flags().StringVar(&editExMedia, "media", "", "Replace media reference")
	rootCmd.AddCommand(editExerciseCmd)
}
