package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/misterclayt0n/ironlog/internal/utils"
)

var createRoutineCmd = &cobra.Command{
	Use:   "create-routine [file.toml]",
	Short: "Create a routine from a TOML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := utils.ParseRoutineFromTOML(args[0])
		if err != nil {
			return fmt.Errorf("Failed to parse %s: %w", args[0], err)
		}

		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		routine, err := st.CreateRoutineFromTOML(rt)
		if err != nil {
			return fmt.Errorf("Failed to create routine: %w", err)
		}

		fmt.Printf("✅ Created routine '%s' with %d exercises\n", routine.Name, len(routine.Exercises))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(createRoutineCmd)
}
