package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/misterclayt0n/ironlog/internal/utils"
)

var stopwatchCmd = &cobra.Command{
	Use:   "stopwatch [start|stop]",
	Short: "Time the current set of a timed or cardio exercise",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		mgr, err := newManager(st)
		if err != nil {
			return err
		}

		switch args[0] {
		case "start":
			if _, err := mgr.StartStopwatch(); err != nil {
				return fmt.Errorf("Failed to start stopwatch: %w", err)
			}
			fmt.Println("✅ Stopwatch running. 'ironlog complete-set' with no duration will use it.")
		case "stop":
			elapsed, err := mgr.StopStopwatch()
			if err != nil {
				return fmt.Errorf("Failed to stop stopwatch: %w", err)
			}
			fmt.Printf("✅ Stopwatch stopped at %s, nothing logged\n", utils.FormatClock(elapsed))
		default:
			return fmt.Errorf("Unknown stopwatch action %q, use start or stop", args[0])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(stopwatchCmd)
}
