package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/misterclayt0n/ironlog/internal/utils"
)

var showRoutineCmd = &cobra.Command{
	Use:   "show-routine [name]",
	Short: "Show a routine's exercises and targets",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		routine, err := st.GetRoutineByName(args[0])
		if err != nil {
			return err
		}
		if routine == nil {
			return fmt.Errorf("Routine %q does not exist", args[0])
		}

		cyan := color.New(color.FgCyan).SprintFunc()
		green := color.New(color.FgGreen).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()

		fmt.Printf("%s\n", green(routine.Name))
		if routine.Notes != "" {
			fmt.Printf("%s %s\n", cyan("Notes:"), routine.Notes)
		}
		fmt.Printf("%s %s between exercises\n\n", cyan("Rest:"), utils.FormatClock(routine.RestBetweenExercisesSec))

		for i, re := range routine.Exercises {
			name := "Unknown exercise"
			if ex, err := st.GetExerciseByID(re.ExerciseID); err == nil && ex != nil {
				name = ex.Name
			}

			target := ""
			switch {
			case re.TargetReps != nil:
				target = fmt.Sprintf("%d × %d reps", re.TargetSets, *re.TargetReps)
			case re.TargetDurationSec != nil:
				target = fmt.Sprintf("%d × %s", re.TargetSets, utils.FormatClock(*re.TargetDurationSec))
			default:
				target = "cardio"
			}

			fmt.Printf("%s %s\n", cyan(fmt.Sprintf("%d.", i+1)), yellow(name))
			fmt.Printf("   %s, %s rest between sets\n", target, utils.FormatClock(re.RestBetweenSetsSec))
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(showRoutineCmd)
}
