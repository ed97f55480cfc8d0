package cmd

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/misterclayt0n/ironlog/internal/models"
	"github.com/misterclayt0n/ironlog/internal/utils"
)

var (
	planRoutine string
	planDate    string
)

var planWorkoutCmd = &cobra.Command{
	Use:   "plan-workout",
	Short: "Schedule a routine for a future day",
	RunE: func(cmd *cobra.Command, args []string) error {
		if planRoutine == "" {
			return fmt.Errorf("Provide a routine with --routine")
		}
		if planDate == "" {
			return fmt.Errorf("Provide a date with --date")
		}

		day, err := utils.ParseDay(planDate)
		if err != nil {
			return fmt.Errorf("Failed to parse date: %w", err)
		}

		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		routine, err := st.GetRoutineByName(planRoutine)
		if err != nil {
			return fmt.Errorf("Failed to retrieve routine: %w", err)
		}
		if routine == nil {
			return fmt.Errorf("Routine '%s' does not exist", planRoutine)
		}

		plan := models.PlannedWorkout{
			ID:        uuid.New().String(),
			RoutineID: routine.ID,
			Date:      day,
			Status:    models.PlanPending,
			CreatedAt: time.Now().UTC(),
		}
		if err := st.CreatePlannedWorkout(plan); err != nil {
			return err
		}

		fmt.Printf("✅ Planned '%s' for %s\n", routine.Name, day.Format("Mon, 02 Jan 2006"))
		fmt.Printf("Plan id: %s\n", plan.ID)
		return nil
	},
}

func init() {
	planWorkoutCmd.Flags().StringVarP(&planRoutine, "routine", "r", "", "Routine to schedule")
	planWorkoutCmd.Flags().StringVarP(&planDate, "date", "d", "", "Day to schedule it on (DD/MM/YY)")
	rootCmd.AddCommand(planWorkoutCmd)
}
