package cmd

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/misterclayt0n/ironlog/internal/models"
	"github.com/misterclayt0n/ironlog/internal/storage"
	"github.com/misterclayt0n/ironlog/internal/utils"
)

var showSessionDate string

var showSessionCmd = &cobra.Command{
	Use:   "show-session [session-id]",
	Short: "Display one session with all of its sets",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		sess, err := pickSession(st, args)
		if err != nil {
			return err
		}
		if sess == nil {
			fmt.Println("No session found.")
			return nil
		}

		sets, err := st.SetEntriesBySession(sess.ID)
		if err != nil {
			return fmt.Errorf("Failed to retrieve sets: %w", err)
		}
		settings := displaySettings(st)

		cyan := color.New(color.FgCyan).SprintFunc()
		yellow := color.New(color.FgYellow).SprintFunc()

		fmt.Printf("%s %s\n", cyan("Session:"), routineLabel(st, *sess))
		fmt.Printf("%s %s\n", cyan("Started:"), utils.FormatLocal(sess.StartedAt))
		if sess.EndedAt != nil {
			fmt.Printf("%s %s (%s)\n", cyan("Ended:"), utils.FormatLocal(*sess.EndedAt), utils.FormatDuration(sess.StartedAt, *sess.EndedAt))
		}
		fmt.Printf("%s %s\n", cyan("Status:"), string(sess.Status))
		if sess.Notes != "" {
			fmt.Printf("%s %s\n", cyan("Notes:"), sess.Notes)
		}
		fmt.Println()

		if len(sets) == 0 {
			fmt.Println("No sets recorded.")
			return nil
		}

		// Group sets by exercise, preserving first-seen order.
		var order []string
		byExercise := make(map[string][]models.SetEntry)
		for _, entry := range sets {
			if _, ok := byExercise[entry.ExerciseID]; !ok {
				order = append(order, entry.ExerciseID)
			}
			byExercise[entry.ExerciseID] = append(byExercise[entry.ExerciseID], entry)
		}

		for _, exID := range order {
			name := "Unknown exercise"
			if ex, err := st.GetExerciseByID(exID); err == nil && ex != nil {
				name = ex.Name
			}
			fmt.Printf("%s\n", yellow(name))
			for i, entry := range byExercise[exID] {
				fmt.Printf("  %d. %s\n", i+1, describeSetEntry(entry, settings))
			}
			fmt.Println()
		}

		return nil
	},
}

// pickSession resolves the session to display: explicit id, a --date day,
// or the most recent finished one.
func pickSession(st *storage.Storage, args []string) (*models.WorkoutSession, error) {
	if len(args) == 1 {
		sess, err := st.GetSessionByID(args[0])
		if err != nil {
			return nil, fmt.Errorf("Failed to retrieve session: %w", err)
		}
		if sess == nil {
			return nil, fmt.Errorf("No session with id '%s'", args[0])
		}
		return sess, nil
	}

	if showSessionDate != "" {
		day, err := utils.ParseDay(showSessionDate)
		if err != nil {
			return nil, fmt.Errorf("Failed to parse date: %w", err)
		}
		sessions, err := st.GetSessionsByDate(day)
		if err != nil {
			return nil, fmt.Errorf("Failed to retrieve sessions: %w", err)
		}
		for _, s := range sessions {
			if s.Status != models.SessionActive {
				return &s, nil
			}
		}
		return nil, nil
	}

	now := time.Now()
	sessions, err := st.ListSessionsBetween(now.AddDate(0, 0, -90), now.Add(24*time.Hour))
	if err != nil {
		return nil, fmt.Errorf("Failed to retrieve sessions: %w", err)
	}
	for _, s := range sessions {
		if s.Status != models.SessionActive {
			return &s, nil
		}
	}
	return nil, nil
}

// describeSetEntry renders one set's measurements using the configured units.
func describeSetEntry(entry models.SetEntry, settings models.Settings) string {
	var body string
	switch {
	case entry.Reps != nil:
		body = fmt.Sprintf("%d reps x %.1f %s", entry.Reps.Reps, entry.Reps.Weight, weightLabel(settings))
	case entry.Time != nil:
		body = utils.FormatClock(entry.Time.DurationSec)
	case entry.Cardio != nil:
		body = utils.FormatClock(entry.Cardio.DurationSec)
		if entry.Cardio.Distance != nil {
			body += fmt.Sprintf(", %.2f %s", *entry.Cardio.Distance, distanceLabel(settings))
		}
		if entry.Cardio.Speed != nil {
			body += fmt.Sprintf(", %.1f %s", *entry.Cardio.Speed, speedLabel(settings))
		}
		if entry.Cardio.Incline != nil {
			body += fmt.Sprintf(", %.1f%% incline", *entry.Cardio.Incline)
		}
	default:
		body = "empty set"
	}

	if entry.RPE != nil {
		body += fmt.Sprintf(" @ RPE %d", *entry.RPE)
	}
	if entry.Notes != "" {
		body += fmt.Sprintf(" (%s)", entry.Notes)
	}
	return body
}

func init() {
	showSessionCmd.Flags().StringVarP(&showSessionDate, "date", "d", "", "Show the session of this day (DD/MM/YY)")
	rootCmd.AddCommand(showSessionCmd)
}
