package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/misterclayt0n/ironlog/internal/utils"
)

var extendRestCmd = &cobra.Command{
	Use:   "extend-rest",
	Short: "Add 30 seconds to the current rest",
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

		state, err := mgr.ExtendRest()
		if err != nil {
			return fmt.Errorf("Failed to extend rest: %w", err)
		}

		left := int(time.Until(*state.RestEndsAt).Seconds())
		fmt.Printf("✅ Rest extended, %s left\n", utils.FormatClock(left))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(extendRestCmd)
}
