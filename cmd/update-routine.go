package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/misterclayt0n/ironlog/internal/utils"
)

var updateRoutineCmd = &cobra.Command{
	Use:   "update-routine [name] [file.toml]",
	Short: "Replace a routine's exercises and metadata from a TOML file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := utils.ParseRoutineFromTOML(args[1])
		if err != nil {
			return fmt.Errorf("Failed to parse %s: %w", args[1], err)
		}

		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		routine, err := st.UpdateRoutineFromTOML(args[0], rt)
		if err != nil {
			return fmt.Errorf("Failed to update routine: %w", err)
		}

		fmt.Printf("✅ Updated routine '%s', now %d exercises\n", routine.Name, len(routine.Exercises))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(updateRoutineCmd)
}
