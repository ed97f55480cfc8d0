package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteExerciseCmd = &cobra.Command{
	Use:   "delete-exercise [name]",
	Short: "Remove an exercise from the library, logged history stays",
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

		if err := st.DeleteExercise(ex.ID); err != nil {
			return fmt.Errorf("Failed to delete exercise: %w", err)
		}

		fmt.Printf("✅ Deleted exercise '%s'\n", ex.Name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteExerciseCmd)
}
