package cmd

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/misterclayt0n/ironlog/internal/models"
)

var listPlansDays int

var listPlansCmd = &cobra.Command{
	Use:   "list-plans",
	Short: "List upcoming planned workouts",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		now := time.Now()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
		plans, err := st.ListPlannedBetween(today, today.AddDate(0, 0, listPlansDays))
		if err != nil {
			return fmt.Errorf("Failed to retrieve planned workouts: %w", err)
		}

		if len(plans) == 0 {
			fmt.Println("Nothing planned.")
			return nil
		}

		green := color.New(color.FgGreen).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()

		for _, plan := range plans {
			name := "Unknown routine"
			if routine, err := st.GetRoutineByID(plan.RoutineID); err == nil && routine != nil {
				name = routine.Name
			}

			status := string(plan.Status)
			switch plan.Status {
			case models.PlanCompleted:
				status = green(status)
			case models.PlanSkipped:
				status = red(status)
			default:
				status = yellow(status)
			}

			fmt.Printf("%s | %s | %s | %s\n",
				plan.Date.In(time.Local).Format("Mon, 02 Jan"),
				name,
				status,
				plan.ID,
			)
		}
		return nil
	},
}

func init() {
	listPlansCmd.Flags().IntVarP(&listPlansDays, "days", "d", 14, "How many days ahead to show")
	rootCmd.AddCommand(listPlansCmd)
}
