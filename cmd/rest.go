package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/misterclayt0n/ironlog/internal/models"
	"github.com/misterclayt0n/ironlog/internal/session"
	"github.com/misterclayt0n/ironlog/internal/utils"
)

var restWait bool

var restCmd = &cobra.Command{
	Use:   "rest",
	Short: "Show the rest countdown, --wait blocks until it finishes",
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

		state, err := mgr.Active()
		if errors.Is(err, session.ErrNoActiveSession) {
			return fmt.Errorf("No active session")
		}
		if err != nil {
			return err
		}

		if state.Phase != models.PhaseRest {
			fmt.Printf("Not resting, the workout is in the %s phase.\n", state.Phase)
			return nil
		}

		if !restWait {
			left := int(time.Until(*state.RestEndsAt).Seconds())
			fmt.Printf("⏳ %s of %s left\n", utils.FormatClock(left), utils.FormatClock(state.RestTotalSec))
			return nil
		}

		err = mgr.AwaitRest(context.Background(), func(remaining int) {
			fmt.Printf("\r⏳ %s remaining   ", utils.FormatClock(remaining))
		})
		if err != nil {
			return fmt.Errorf("Failed while waiting for rest: %w", err)
		}
		fmt.Println()

		after, err := mgr.Active()
		if err != nil {
			return err
		}
		fmt.Println("✅ Rest over")
		printNextUp(after, displaySettings(st))
		return nil
	},
}

func init() {
	restCmd.Flags().BoolVarP(&restWait, "wait", "w", false, "Block and count the rest down live")
	rootCmd.AddCommand(restCmd)
}
