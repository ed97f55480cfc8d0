package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/misterclayt0n/ironlog/internal/models"
)

var filterType string

var listExercisesCmd = &cobra.Command{
	Use:   "list-exercises",
	Short: "List the exercise library",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		exercises, err := st.ListExercises()
		if err != nil {
			return fmt.Errorf("Failed to list exercises: %w", err)
		}

		if filterType != "" {
			var filtered []models.Exercise
			for _, ex := range exercises {
				if string(ex.Type) == filterType {
					filtered = append(filtered, ex)
				}
			}
			exercises = filtered
		}

		if len(exercises) == 0 {
			fmt.Println("No exercises yet. Add one with 'ironlog add-exercise'.")
			return nil
		}

		yellow := color.New(color.FgYellow).SprintFunc()
		fmt.Printf("%-30s | %-6s | %-12s | %s\n", "Name", "Type", "Equipment", "Primary muscles")
		fmt.Println(strings.Repeat("─", 78))
		for _, ex := range exercises {
			var muscles []string
			for _, m := range ex.PrimaryMuscles {
				muscles = append(muscles, m.Muscle)
			}
			fmt.Printf("%s | %-6s | %-12s | %s\n",
				yellow(fmt.Sprintf("%-30s", ex.Name)),
				ex.Type,
				ex.Equipment,
				strings.Join(muscles, ", "),
			)
		}

		return nil
	},
}

func init() {
	listExercisesCmd.Flags().StringVarP(&filterType, "type", "t", "", "Only show exercises of this type")
	rootCmd.AddCommand(listExercisesCmd)
}
