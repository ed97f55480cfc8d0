package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/misterclayt0n/ironlog/internal/models"
	"github.com/misterclayt0n/ironlog/internal/utils"
)

var (
	endNotes  string
	endSaveAs string
)

var endSessionCmd = &cobra.Command{
	Use:   "end-session",
	Short: "Finish the workout and commit it to history",
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

		if endSaveAs != "" {
			routine, err := mgr.SaveAsRoutine(endSaveAs, "")
			if err != nil {
				return fmt.Errorf("Failed to save routine: %w", err)
			}
			fmt.Printf("✅ Saved workout as routine '%s'\n", routine.Name)
		}

		sess, setCount, err := mgr.End(models.SessionCompleted, endNotes)
		if err != nil {
			return fmt.Errorf("Failed to end session: %w", err)
		}

		if sess.PlannedWorkoutID != nil {
			if err := st.UpdatePlannedStatus(*sess.PlannedWorkoutID, models.PlanCompleted, &sess.ID); err != nil {
				fmt.Printf("⚠️  Could not mark the plan done: %v\n", err)
			}
		}

		fmt.Printf("✅ Workout complete: %d sets in %s\n",
			setCount, utils.FormatDuration(sess.StartedAt, *sess.EndedAt))
		return nil
	},
}

func init() {
	endSessionCmd.Flags().StringVarP(&endNotes, "notes", "n", "", "Session notes")
	endSessionCmd.Flags().StringVar(&endSaveAs, "save-as-routine", "", "Save a free workout's exercises as a routine first")
	rootCmd.AddCommand(endSessionCmd)
}
