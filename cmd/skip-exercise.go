package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var skipExerciseCmd = &cobra.Command{
	Use:   "skip-exercise",
	Short: "Skip the rest of the current exercise",
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

		state, err := mgr.SkipExercise()
		if err != nil {
			return fmt.Errorf("Failed to skip exercise: %w", err)
		}

		fmt.Println("✅ Exercise skipped")
		printNextUp(state, displaySettings(st))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(skipExerciseCmd)
}
