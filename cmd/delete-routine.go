package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteRoutineCmd = &cobra.Command{
	Use:   "delete-routine [name]",
	Short: "Delete a routine, sessions logged from it stay",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.DeleteRoutine(args[0]); err != nil {
			return fmt.Errorf("Failed to delete routine: %w", err)
		}

		fmt.Printf("✅ Deleted routine '%s'\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteRoutineCmd)
}
