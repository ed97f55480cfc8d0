package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/misterclayt0n/ironlog/internal/models"
)

var skipPlanCmd = &cobra.Command{
	Use:   "skip-plan [plan-id]",
	Short: "Mark a planned workout as skipped",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		plan, err := st.GetPlannedWorkoutByID(args[0])
		if err != nil {
			return fmt.Errorf("Failed to retrieve planned workout: %w", err)
		}
		if plan == nil {
			return fmt.Errorf("No planned workout with id '%s'", args[0])
		}
		if plan.Status != models.PlanPending {
			return fmt.Errorf("Planned workout is already %s", plan.Status)
		}

		if err := st.UpdatePlannedStatus(plan.ID, models.PlanSkipped, nil); err != nil {
			return err
		}

		fmt.Println("✅ Planned workout skipped.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(skipPlanCmd)
}
