package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/misterclayt0n/ironlog/internal/models"
	"github.com/misterclayt0n/ironlog/internal/session"
)

var (
	addSets      int
	addReps      int
	addDuration  int
	addRest      int
	addCreate    bool
	addType      string
	addEquipment string
	addPrimary   string
	addSecondary string
)

var addToSessionCmd = &cobra.Command{
	Use:   "add-to-session [name]",
	Short: "Append an exercise to the active workout, --create registers a new one on the fly",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		mgr, err := newManager(st)
		if err != nil {
			return err
		}

		settings, err := st.GetSettings()
		if err != nil {
			return fmt.Errorf("Failed to load settings: %w", err)
		}

		targets := session.Targets{
			Sets:    addSets,
			RestSec: settings.DefaultRestBetweenSetsSec,
		}
		if cmd.Flags().Changed("reps") {
			targets.Reps = &addReps
		}
		if cmd.Flags().Changed("duration") {
			targets.DurationSec = &addDuration
		}
		if cmd.Flags().Changed("rest") {
			targets.RestSec = addRest
		}

		name := args[0]
		var state *models.ActiveWorkoutState

		if addCreate {
			primary, err := parseMuscleSpec(addPrimary)
			if err != nil {
				return err
			}
			secondary, err := parseMuscleSpec(addSecondary)
			if err != nil {
				return err
			}

			ex := models.Exercise{
				Name:             name,
				Type:             models.ExerciseType(addType),
				Equipment:        addEquipment,
				PrimaryMuscles:   primary,
				SecondaryMuscles: secondary,
			}
			state, err = mgr.QuickCreateAndAdd(ex, targets)
			if err != nil {
				return fmt.Errorf("Failed to add exercise: %w", err)
			}
		} else {
			ex, err := st.GetExerciseByName(name)
			if err != nil {
				return err
			}
			if ex == nil {
				return fmt.Errorf("Exercise %q is not in the library, pass --create to register it", name)
			}
			state, err = mgr.AddExercise(ex.ID, targets)
			if err != nil {
				return fmt.Errorf("Failed to add exercise: %w", err)
			}
		}

		fmt.Printf("✅ Added '%s' to the workout (position %d)\n", name, len(state.WorkoutExercises))
		return nil
	},
}

func init() {
	addToSessionCmd.Flags().IntVarP(&addSets, "sets", "s", 3, "Target sets")
	addToSessionCmd.Flags().IntVarP(&addReps, "reps", "r", 0, "Target reps per set, for reps exercises")
	addToSessionCmd.Flags().IntVarP(&addDuration, "duration", "d", 0, "Target seconds per set, for timed exercises")
	addToSessionCmd.Flags().IntVar(&addRest, "rest", 0, "Rest seconds between sets, defaults to the settings value")
	addToSessionCmd.Flags().BoolVar(&addCreate, "create", false, "Register the exercise in the library first")
	addToSessionCmd.Flags().StringVarP(&addType, "type", "t", "reps", "Type for --create: reps, time or cardio")
	addToSessionCmd.Flags().StringVarP(&addEquipment, "equipment", "e", "", "Equipment for --create")
	addToSessionCmd.Flags().StringVarP(&addPrimary, "primary", "p", "", "Primary muscles for --create")
	addToSessionCmd.Flags().StringVar(&addSecondary, "secondary", "", "Secondary muscles for --create")
	rootCmd.AddCommand(addToSessionCmd)
}
