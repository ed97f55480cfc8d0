package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var listRoutinesCmd = &cobra.Command{
	Use:   "list-routines",
	Short: "List stored routines",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		routines, err := st.ListRoutines()
		if err != nil {
			return fmt.Errorf("Failed to list routines: %w", err)
		}

		if len(routines) == 0 {
			fmt.Println("No routines yet. Create one with 'ironlog create-routine'.")
			return nil
		}

		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%-25s | %-9s | %s\n", "Name", "Exercises", "Notes")
		fmt.Println(strings.Repeat("─", 60))
		for _, r := range routines {
			fmt.Printf("%s | %-9d | %s\n",
				green(fmt.Sprintf("%-25s", r.Name)),
				len(r.Exercises),
				r.Notes,
			)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(listRoutinesCmd)
}
