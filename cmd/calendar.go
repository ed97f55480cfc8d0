package cmd

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/misterclayt0n/ironlog/internal/models"
	"github.com/misterclayt0n/ironlog/internal/utils"
)

var calendarDetails bool

// calendarCmd renders a month grid. Workout days are colored by routine with
// a legend below, planned days carry a cyan marker, and --details appends a
// per-day session listing.
var calendarCmd = &cobra.Command{
	Use:   "calendar [month] [year]",
	Short: "Display a calendar of workout days with a legend mapping colors to routines",
	Args:  cobra.RangeArgs(0, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		now := time.Now()
		month, year := now.Month(), now.Year()
		if len(args) >= 1 {
			m, err := strconv.Atoi(args[0])
			if err != nil || m < 1 || m > 12 {
				return fmt.Errorf("Invalid month: %s", args[0])
			}
			month = time.Month(m)
		}
		if len(args) == 2 {
			y, err := strconv.Atoi(args[1])
			if err != nil || y < 1 {
				return fmt.Errorf("Invalid year: %s", args[1])
			}
			year = y
		}

		firstOfMonth := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
		daysInMonth := firstOfMonth.AddDate(0, 1, -1).Day()

		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		sessions, err := st.ListSessionsBetween(firstOfMonth, firstOfMonth.AddDate(0, 1, 0))
		if err != nil {
			return fmt.Errorf("Failed to get sessions: %w", err)
		}

		// Group finished sessions by day of the month.
		sessionsByDay := make(map[int][]models.WorkoutSession)
		routineSet := make(map[string]bool)
		for _, s := range sessions {
			if s.Status == models.SessionActive {
				continue
			}
			day := s.StartedAt.In(time.Local).Day()
			sessionsByDay[day] = append(sessionsByDay[day], s)
			routineSet[routineLabel(st, s)] = true
		}

		// Pending plans overlay days that have no session yet.
		plans, err := st.ListPlannedBetween(firstOfMonth, firstOfMonth.AddDate(0, 1, 0))
		if err != nil {
			return fmt.Errorf("Failed to get planned workouts: %w", err)
		}
		plannedByDay := make(map[int]bool)
		for _, p := range plans {
			if p.Status == models.PlanPending {
				plannedByDay[p.Date.In(time.Local).Day()] = true
			}
		}

		// Assign each routine a color, sorted so reruns stay stable.
		palette := []color.Attribute{
			color.FgRed, color.FgGreen, color.FgYellow,
			color.FgBlue, color.FgMagenta, color.FgCyan,
		}
		var labels []string
		for label := range routineSet {
			labels = append(labels, label)
		}
		sort.Strings(labels)
		routineColors := make(map[string]func(a ...interface{}) string)
		for i, label := range labels {
			routineColors[label] = color.New(palette[i%len(palette)]).SprintFunc()
		}

		fmt.Println(centerText(fmt.Sprintf("%s %d", month, year), 20))
		fmt.Println("Su Mo Tu We Th Fr Sa")

		weekday := int(firstOfMonth.Weekday())
		fmt.Print(strings.Repeat("   ", weekday))
		for day := 1; day <= daysInMonth; day++ {
			cell := fmt.Sprintf("%2d", day)
			switch {
			case len(sessionsByDay[day]) > 0:
				// The first session's routine picks the color for the day.
				paint, ok := routineColors[routineLabel(st, sessionsByDay[day][0])]
				if !ok {
					paint = color.New(color.FgWhite).SprintFunc()
				}
				cell = paint(cell + "*")
			case plannedByDay[day]:
				cell = color.New(color.FgCyan).Sprint(cell + "+")
			}
			fmt.Printf("%s ", cell)
			if weekday = (weekday + 1) % 7; weekday == 0 {
				fmt.Println()
			}
		}
		if weekday != 0 {
			fmt.Println()
		}
		fmt.Println()

		fmt.Println("Legend:")
		for _, label := range labels {
			fmt.Printf("  %s: %s\n", routineColors[label]("██"), label)
		}
		if len(plannedByDay) > 0 {
			fmt.Printf("  %s: planned workout\n", color.New(color.FgCyan).Sprint("+"))
		}

		if calendarDetails {
			fmt.Println("\nSession Details:")
			var days []int
			for d := range sessionsByDay {
				days = append(days, d)
			}
			sort.Ints(days)
			for _, day := range days {
				dayDate := time.Date(year, month, day, 0, 0, 0, 0, time.Local)
				fmt.Printf("\n%s:\n", dayDate.Format("Mon, 02 Jan 2006"))
				for _, sess := range sessionsByDay[day] {
					fmt.Printf("  Session %s (%s) at %s", sess.ID, routineLabel(st, sess), sess.StartedAt.In(time.Local).Format("15:04"))
					if sess.EndedAt != nil {
						fmt.Printf(" - %s (%s)", sess.EndedAt.In(time.Local).Format("15:04"), utils.FormatDuration(sess.StartedAt, *sess.EndedAt))
					}
					fmt.Println()
				}
			}
		}

		return nil
	},
}

// centerText pads s on the left so it sits roughly centered in width runes.
func centerText(s string, width int) string {
	if pad := (width - len(s)) / 2; pad > 0 {
		return strings.Repeat(" ", pad) + s
	}
	return s
}

func init() {
	rootCmd.AddCommand(calendarCmd)
	calendarCmd.Flags().BoolVarP(&calendarDetails, "details", "d", false, "Print additional session details")
}
