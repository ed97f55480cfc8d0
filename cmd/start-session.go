package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	startRoutine string
	startFree    bool
	startPlanID  string
)

var startSessionCmd = &cobra.Command{
	Use:   "start-session",
	Short: "Start a workout from a routine or as a free session",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		if startFree && startPlanID != "" {
			return fmt.Errorf("A free workout cannot be linked to a plan")
		}

		// Starting straight from a plan picks up its routine.
		if startPlanID != "" {
			plan, err := st.GetPlannedWorkoutByID(startPlanID)
			if err != nil {
				return err
			}
			if plan == nil {
				return fmt.Errorf("Planned workout %q does not exist", startPlanID)
			}
			if startRoutine == "" {
				routine, err := st.GetRoutineByID(plan.RoutineID)
				if err != nil {
					return err
				}
				if routine == nil {
					return fmt.Errorf("The plan's routine no longer exists")
				}
				startRoutine = routine.Name
			}
		}

		if (startRoutine != "") == startFree {
			return fmt.Errorf("Provide either --routine or --free")
		}

		mgr, err := newManager(st)
		if err != nil {
			return err
		}

		if startFree {
			if _, err := mgr.StartFree(); err != nil {
				return fmt.Errorf("Failed to start session: %w", err)
			}
			fmt.Println("✅ Started free workout. Add an exercise with 'ironlog add-to-session'.")
			return nil
		}

		state, err := mgr.StartFromRoutine(startRoutine, startPlanID)
		if err != nil {
			return fmt.Errorf("Failed to start session: %w", err)
		}

		first := state.WorkoutExercises[0]
		fmt.Printf("✅ Started '%s', first up: %s (%s)\n", startRoutine, first.ExerciseName, describeTargets(first))
		return nil
	},
}

func init() {
	startSessionCmd.Flags().StringVarP(&startRoutine, "routine", "r", "", "Routine name")
	startSessionCmd.Flags().BoolVarP(&startFree, "free", "f", false, "Start with no routine")
	startSessionCmd.Flags().StringVar(&startPlanID, "plan", "", "Planned workout id this session fulfills")
	rootCmd.AddCommand(startSessionCmd)
}
