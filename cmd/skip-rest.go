package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var skipRestCmd = &cobra.Command{
	Use:   "skip-rest",
	Short: "Cut the rest short and get back to work",
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

		state, err := mgr.SkipRest()
		if err != nil {
			return fmt.Errorf("Failed to skip rest: %w", err)
		}

		fmt.Println("✅ Rest skipped")
		printNextUp(state, displaySettings(st))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(skipRestCmd)
}
