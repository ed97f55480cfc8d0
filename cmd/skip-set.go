package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var skipSetCmd = &cobra.Command{
	Use:   "skip-set",
	Short: "Skip the current set without logging anything",
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

		state, err := mgr.SkipSet()
		if err != nil {
			return fmt.Errorf("Failed to skip set: %w", err)
		}

		fmt.Println("✅ Set skipped")
		printNextUp(state, displaySettings(st))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(skipSetCmd)
}
