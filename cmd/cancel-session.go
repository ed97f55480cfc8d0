package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/misterclayt0n/ironlog/internal/models"
)

var cancelNotes string

// Abandoning still commits every set logged so far.
var cancelSessionCmd = &cobra.Command{
	Use:   "cancel-session",
	Short: "Abandon the workout, keeping the sets logged so far",
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

		_, setCount, err := mgr.End(models.SessionAbandoned, cancelNotes)
		if err != nil {
			return fmt.Errorf("Failed to cancel session: %w", err)
		}

		fmt.Printf("✅ Session abandoned, %d sets kept in history\n", setCount)
		return nil
	},
}

func init() {
	cancelSessionCmd.Flags().StringVarP(&cancelNotes, "notes", "n", "", "Why the workout was cut short")
	rootCmd.AddCommand(cancelSessionCmd)
}
