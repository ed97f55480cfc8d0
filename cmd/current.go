package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/misterclayt0n/ironlog/internal/models"
	"github.com/misterclayt0n/ironlog/internal/session"
	"github.com/misterclayt0n/ironlog/internal/utils"
)

var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the workout in progress",
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

		state, err := mgr.Active()
		if errors.Is(err, session.ErrNoActiveSession) {
			return fmt.Errorf("No active session. Start one with 'ironlog start-session'")
		}
		if err != nil {
			return fmt.Errorf("Failed to load session: %w", err)
		}

		printActiveState(state, displaySettings(st))
		return nil
	},
}

func printActiveState(state *models.ActiveWorkoutState, settings models.Settings) {
	cyan := color.New(color.FgCyan).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	title := "Free workout"
	if state.Routine != nil {
		title = state.Routine.Name
	}
	fmt.Printf("%s\n", green(title))
	fmt.Printf("%s %s\n", cyan("Session:"), state.Session.ID)
	fmt.Printf("%s %s\n", cyan("Duration:"), utils.FormatDuration(state.Session.StartedAt, time.Now()))
	fmt.Printf("%s %s\n\n", red("Phase:"), describePhase(state))

	if len(state.WorkoutExercises) == 0 {
		fmt.Println("No exercises yet. Add one with 'ironlog add-to-session'.")
		return
	}

	// Completed sets are attributed to slots in order so the same exercise
	// appearing twice fills the earlier slot first.
	remaining := make(map[string]int)
	for _, entry := range state.CompletedSets {
		remaining[entry.ExerciseID]++
	}

	for i, wx := range state.WorkoutExercises {
		done := remaining[wx.ExerciseID]
		if done > wx.TargetSets {
			done = wx.TargetSets
		}
		remaining[wx.ExerciseID] -= done

		marker := "  "
		if i == state.CurrentExercise && state.Phase != models.PhaseComplete {
			marker = yellow("> ")
		}

		progress := fmt.Sprintf("%d/%d", done, wx.TargetSets)
		extra := ""
		if wx.AddedDuringWorkout {
			extra = cyan(" +")
		}
		fmt.Printf("%s%s %s  [%s]%s\n",
			marker,
			cyan(fmt.Sprintf("%d.", i+1)),
			yellow(wx.ExerciseName),
			progress,
			extra,
		)
		fmt.Printf("     %s\n", describeTargets(wx))
	}
	fmt.Println()

	switch state.Phase {
	case models.PhaseRest:
		left := int(time.Until(*state.RestEndsAt).Seconds())
		fmt.Printf("Resting: %s of %s left. Wait with 'ironlog rest --wait'.\n",
			utils.FormatClock(left), utils.FormatClock(state.RestTotalSec))
	case models.PhaseExercise:
		wx := state.CurrentWorkoutExercise()
		fmt.Printf("Current: %s, set %d of %d\n", wx.ExerciseName, state.CurrentSet+1, wx.TargetSets)
		printPrefill(state, settings)
	case models.PhaseCardio:
		wx := state.CurrentWorkoutExercise()
		fmt.Printf("Current: %s, one entry finishes it\n", wx.ExerciseName)
	case models.PhaseComplete:
		fmt.Println("All exercises done. Finish with 'ironlog end-session'.")
	}

	if state.StopwatchStart != nil {
		elapsed := int(time.Since(*state.StopwatchStart).Seconds())
		fmt.Printf("Stopwatch: %s running\n", utils.FormatClock(elapsed))
	}
}

func describePhase(state *models.ActiveWorkoutState) string {
	switch state.Phase {
	case models.PhaseRest:
		return fmt.Sprintf("rest (%s total)", utils.FormatClock(state.RestTotalSec))
	default:
		return string(state.Phase)
	}
}

func describeTargets(wx models.WorkoutExercise) string {
	rest := utils.FormatClock(wx.RestBetweenSetsSec)
	switch {
	case wx.TargetReps != nil:
		return fmt.Sprintf("%d × %d reps, %s rest", wx.TargetSets, *wx.TargetReps, rest)
	case wx.TargetDurationSec != nil:
		return fmt.Sprintf("%d × %s, %s rest", wx.TargetSets, utils.FormatClock(*wx.TargetDurationSec), rest)
	case wx.Type == models.ExerciseCardio:
		return "cardio, single entry"
	default:
		return fmt.Sprintf("%d sets, %s rest", wx.TargetSets, rest)
	}
}

func printPrefill(state *models.ActiveWorkoutState, settings models.Settings) {
	p := state.Prefill
	if p == nil {
		return
	}

	var parts []string
	if p.Weight != nil && p.Reps != nil {
		parts = append(parts, fmt.Sprintf("%.1f%s × %d", *p.Weight, weightLabel(settings), *p.Reps))
	} else if p.Reps != nil {
		parts = append(parts, fmt.Sprintf("%d reps", *p.Reps))
	}
	if p.DurationSec != nil {
		parts = append(parts, utils.FormatClock(*p.DurationSec))
	}
	if len(parts) > 0 {
		fmt.Printf("Last time: %s\n", strings.Join(parts, ", "))
	}
}

func init() {
	rootCmd.AddCommand(currentCmd)
}
