package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/misterclayt0n/ironlog/internal/models"
)

var showExCmd = &cobra.Command{
	Use:   "show-ex [name]",
	Short: "Show one exercise with its muscle map and personal records",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		ex, err := st.GetExerciseByName(args[0])
		if err != nil {
			return err
		}
		if ex == nil {
			return fmt.Errorf("Exercise %q does not exist", args[0])
		}

		cyan := color.New(color.FgCyan).SprintFunc()
		green := color.New(color.FgGreen).SprintFunc()

		fmt.Printf("%s (%s)\n", green(ex.Name), ex.Type)
		if ex.Equipment != "" {
			fmt.Printf("%s %s\n", cyan("Equipment:"), ex.Equipment)
		}
		if len(ex.Patterns) > 0 {
			fmt.Printf("%s %s\n", cyan("Patterns:"), strings.Join(ex.Patterns, ", "))
		}
		printMuscleTargets("Primary", ex.PrimaryMuscles)
		printMuscleTargets("Secondary", ex.SecondaryMuscles)
		if ex.Notes != "" {
			fmt.Printf("%s %s\n", cyan("Notes:"), ex.Notes)
		}
		if ex.MediaRef != "" {
			fmt.Printf("%s %s\n", cyan("Media:"), ex.MediaRef)
		}

		stats, err := st.GetExerciseStats(ex.ID)
		if err != nil {
			return fmt.Errorf("Failed to load stats: %w", err)
		}

		fmt.Println()
		if stats.LastPerformed != nil {
			fmt.Printf("%s %s\n", cyan("Last performed:"), stats.LastPerformed.Format("2006-01-02"))
		}
		if stats.BestSet != nil {
			unit := weightLabel(displaySettings(st))
			fmt.Printf("%s %.1f%s × %d (1RM: %.1f%s)\n",
				cyan("All-time PR:"),
				stats.BestSet.Weight,
				unit,
				stats.BestSet.Reps,
				stats.EstimatedOneRM,
				unit)
		}
		fmt.Printf("%s %d\n", cyan("Total sets logged:"), stats.TotalSets)

		return nil
	},
}

func printMuscleTargets(label string, targets []models.MuscleTarget) {
	if len(targets) == 0 {
		return
	}
	cyan := color.New(color.FgCyan).SprintFunc()
	var parts []string
	for _, t := range targets {
		parts = append(parts, fmt.Sprintf("%s (%.2g)", t.Muscle, t.Weight))
	}
	fmt.Printf("%s %s\n", cyan(label+":"), strings.Join(parts, ", "))
}

func init() {
	rootCmd.AddCommand(showExCmd)
}
