package cmd

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/misterclayt0n/ironlog/internal/models"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show meta data: total volume, session count, gym hours, week streak, and sets per muscle (current week)",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		sessions, err := st.ListSessionsBetween(time.Unix(0, 0), time.Now().Add(24*time.Hour))
		if err != nil {
			return fmt.Errorf("failed to retrieve sessions: %w", err)
		}
		settings := displaySettings(st)

		var totalVolume float64
		var totalSessions int
		var totalDuration time.Duration
		now := time.Now()

		// Aggregate data from each session.
		for _, s := range sessions {
			if s.Status == models.SessionActive {
				continue
			}
			totalSessions++
			if s.EndedAt != nil {
				totalDuration += s.EndedAt.Sub(s.StartedAt)
			}

			sets, err := st.SetEntriesBySession(s.ID)
			if err != nil {
				continue // skip sessions that fail to load
			}

			// Sum up the total volume (weight x reps) from every reps set.
			for _, entry := range sets {
				if entry.Reps != nil && entry.Reps.Weight > 0 && entry.Reps.Reps > 0 {
					totalVolume += entry.Reps.Weight * float64(entry.Reps.Reps)
				}
			}
		}

		// Tally weighted sets per muscle for the current ISO week, attributed
		// by each set's own completion time.
		weekStart := now
		for weekStart.Weekday() != time.Monday {
			weekStart = weekStart.AddDate(0, 0, -1)
		}
		weekStart = time.Date(weekStart.Year(), weekStart.Month(), weekStart.Day(), 0, 0, 0, 0, time.Local)
		weekSets, err := st.SetEntriesBetween(weekStart, now.Add(24*time.Hour))
		if err != nil {
			return fmt.Errorf("failed to retrieve sets: %w", err)
		}

		muscleSetsThisWeek := make(map[string]float64)
		exerciseCache := make(map[string]*models.Exercise)
		for _, entry := range weekSets {
			ex, ok := exerciseCache[entry.ExerciseID]
			if !ok {
				ex, _ = st.GetExerciseByID(entry.ExerciseID)
				exerciseCache[entry.ExerciseID] = ex
			}
			if ex == nil {
				continue
			}
			for _, target := range ex.PrimaryMuscles {
				muscleSetsThisWeek[target.Muscle] += target.Weight
			}
			for _, target := range ex.SecondaryMuscles {
				muscleSetsThisWeek[target.Muscle] += target.Weight * 0.5
			}
		}

		// Compute the week streak.
		weekStreak := computeWeekStreak(sessions)

		// Print a stylish header.
		printBoxedHeader("STATS")

		// Print metrics using a helper.
		printMetric("Total volume", fmt.Sprintf("%.1f %s", totalVolume, weightLabel(settings)))
		printMetric("Total sessions", totalSessions)
		printMetric("Total time at gym", totalDuration.Round(time.Minute))
		printMetric("Week streak", fmt.Sprintf("%d weeks", weekStreak))
		fmt.Println()

		// Print the weighted sets per muscle (for the current week) in a stylish list.
		header := color.New(color.FgGreen, color.Bold).Sprintf("Sets per muscle (current week):")
		fmt.Println(header)
		var muscles []string
		for m := range muscleSetsThisWeek {
			muscles = append(muscles, m)
		}
		sort.Strings(muscles)
		for _, m := range muscles {
			// Each muscle name in bold magenta with a bullet.
			fmt.Printf("  • %s: %.1f sets\n", color.New(color.FgMagenta, color.Bold).Sprint(m), muscleSetsThisWeek[m])
		}
		fmt.Println()

		return nil
	},
}

// printBoxedHeader prints the title in a Unicode box with a fixed width.
func printBoxedHeader(title string) {
	width := 40
	cyanBold := color.New(color.FgCyan, color.Bold).SprintFunc()
	border := strings.Repeat("═", width)
	fmt.Println(cyanBold("╔" + border + "╗"))
	fmt.Println(cyanBold("║" + centerPad(title, width) + "║"))
	fmt.Println(cyanBold("╚" + border + "╝"))
}

func centerPad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	padding := (width - len(s)) / 2
	return strings.Repeat(" ", padding) + s + strings.Repeat(" ", width-len(s)-padding)
}

// printMetric prints a label and value using bold yellow for the label.
func printMetric(label string, value interface{}) {
	yellowBold := color.New(color.FgYellow, color.Bold).SprintFunc()
	fmt.Printf("  %s: %v\n", yellowBold(label), value)
}

// computeWeekStreak computes how many consecutive ISO weeks (ending with the current week)
// have at least one session.
func computeWeekStreak(sessions []models.WorkoutSession) int {
	weekSet := make(map[string]bool)
	for _, s := range sessions {
		if s.Status == models.SessionActive {
			continue
		}
		year, week := s.StartedAt.ISOWeek()
		key := fmt.Sprintf("%d-%02d", year, week)
		weekSet[key] = true
	}

	streak := 0
	now := time.Now()
	year, week := now.ISOWeek()
	for {
		key := fmt.Sprintf("%d-%02d", year, week)
		if weekSet[key] {
			streak++
		} else {
			break
		}
		now = now.AddDate(0, 0, -7)
		year, week = now.ISOWeek()
	}
	return streak
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
