package cmd

import (
	"fmt"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/misterclayt0n/ironlog/internal/models"
	"github.com/misterclayt0n/ironlog/internal/storage"
	"github.com/misterclayt0n/ironlog/internal/utils"
)

var (
	historyDays    int
	historyRoutine string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Display recent sessions grouped by day",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		now := time.Now()
		sessions, err := st.ListSessionsBetween(now.AddDate(0, 0, -historyDays), now.Add(24*time.Hour))
		if err != nil {
			return fmt.Errorf("Failed to retrieve sessions: %w", err)
		}

		// Filter to finished sessions, optionally by routine name.
		var shown []models.WorkoutSession
		for _, s := range sessions {
			if s.Status == models.SessionActive {
				continue
			}
			if historyRoutine != "" && routineLabel(st, s) != historyRoutine {
				continue
			}
			shown = append(shown, s)
		}

		if len(shown) == 0 {
			fmt.Println("No sessions in this window.")
			return nil
		}

		// Group by day.
		grouped := make(map[string][]models.WorkoutSession)
		for _, s := range shown {
			day := s.StartedAt.In(time.Local).Format("2006-01-02")
			grouped[day] = append(grouped[day], s)
		}
		var days []string
		for d := range grouped {
			days = append(days, d)
		}
		sort.Sort(sort.Reverse(sort.StringSlice(days)))

		green := color.New(color.FgGreen).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()

		for _, day := range days {
			fmt.Printf("%s\n", green(day))
			list := grouped[day]
			sort.Slice(list, func(i, j int) bool {
				return list[i].StartedAt.Before(list[j].StartedAt)
			})
			for _, s := range list {
				duration := "?"
				if s.EndedAt != nil {
					duration = utils.FormatDuration(s.StartedAt, *s.EndedAt)
				}

				sets, err := st.SetEntriesBySession(s.ID)
				if err != nil {
					sets = nil
				}

				label := routineLabel(st, s)
				status := ""
				if s.Status == models.SessionAbandoned {
					status = red(" (abandoned)")
				}
				fmt.Printf("  %s | %s | %d sets | %s%s\n",
					s.StartedAt.In(time.Local).Format("15:04"),
					label,
					len(sets),
					duration,
					status,
				)
			}
			fmt.Println()
		}

		return nil
	},
}

// routineLabel names the routine a session ran, or "Free workout".
func routineLabel(st *storage.Storage, s models.WorkoutSession) string {
	if s.RoutineID == nil {
		return "Free workout"
	}
	routine, err := st.GetRoutineByID(*s.RoutineID)
	if err != nil || routine == nil {
		return "Unknown routine"
	}
	return routine.Name
}

func init() {
	historyCmd.Flags().IntVarP(&historyDays, "days", "d", 30, "How many days back to show")
	historyCmd.Flags().StringVarP(&historyRoutine, "routine", "r", "", "Only show sessions of this routine")
	rootCmd.AddCommand(historyCmd)
}
