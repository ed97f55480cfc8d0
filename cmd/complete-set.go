package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/misterclayt0n/ironlog/internal/models"
	"github.com/misterclayt0n/ironlog/internal/session"
	"github.com/misterclayt0n/ironlog/internal/utils"
)

var (
	setReps     int
	setWeight   float64
	setBW       bool
	setDuration int
	setIncline  float64
	setSpeed    float64
	setDistance float64
	setRPE      int
	setNotes    string
)

var completeSetCmd = &cobra.Command{
	Use:   "complete-set",
	Short: "Log the current set and advance the workout",
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

		in := session.SetInput{Notes: setNotes}
		if cmd.Flags().Changed("reps") {
			in.Reps = &setReps
		}
		if cmd.Flags().Changed("weight") {
			in.Weight = &setWeight
		}
		if setBW {
			zero := 0.0
			in.Weight = &zero
		}
		if cmd.Flags().Changed("duration") {
			in.DurationSec = &setDuration
		}
		if cmd.Flags().Changed("incline") {
			in.Incline = &setIncline
		}
		if cmd.Flags().Changed("speed") {
			in.Speed = &setSpeed
		}
		if cmd.Flags().Changed("distance") {
			in.Distance = &setDistance
		}
		if cmd.Flags().Changed("rpe") {
			in.RPE = &setRPE
		}

		state, err := mgr.CompleteSet(in)
		if err != nil {
			return fmt.Errorf("Failed to complete set: %w", err)
		}

		fmt.Printf("✅ Set logged (%d total)\n", len(state.CompletedSets))
		printNextUp(state, displaySettings(st))
		return nil
	},
}

// printNextUp tells the user where the workout moved after an advance.
func printNextUp(state *models.ActiveWorkoutState, settings models.Settings) {
	switch state.Phase {
	case models.PhaseRest:
		fmt.Printf("Resting %s. Wait with 'ironlog rest --wait' or skip with 'ironlog skip-rest'.\n",
			utils.FormatClock(state.RestTotalSec))
	case models.PhaseExercise:
		wx := state.CurrentWorkoutExercise()
		fmt.Printf("Next: %s, set %d of %d\n", wx.ExerciseName, state.CurrentSet+1, wx.TargetSets)
		printPrefill(state, settings)
	case models.PhaseCardio:
		wx := state.CurrentWorkoutExercise()
		fmt.Printf("Next: %s, one entry finishes it\n", wx.ExerciseName)
	case models.PhaseComplete:
		fmt.Println("Workout complete! Finish with 'ironlog end-session'.")
	}
}

func init() {
	completeSetCmd.Flags().IntVarP(&setReps, "reps", "r", 0, "Reps performed")
	completeSetCmd.Flags().Float64VarP(&setWeight, "weight", "w", 0, "Weight used")
	completeSetCmd.Flags().BoolVarP(&setBW, "bodyweight", "b", false, "Mark the set as bodyweight (weight 0)")
	completeSetCmd.Flags().IntVarP(&setDuration, "duration", "d", 0, "Seconds of work, omit to use the running stopwatch")
	completeSetCmd.Flags().Float64Var(&setIncline, "incline", 0, "Cardio incline")
	completeSetCmd.Flags().Float64Var(&setSpeed, "speed", 0, "Cardio speed")
	completeSetCmd.Flags().Float64Var(&setDistance, "distance", 0, "Cardio distance")
	completeSetCmd.Flags().IntVar(&setRPE, "rpe", 0, "Perceived exertion, 1 to 10")
	completeSetCmd.Flags().StringVarP(&setNotes, "notes", "n", "", "Notes for this set")
	rootCmd.AddCommand(completeSetCmd)
}
