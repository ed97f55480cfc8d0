package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var setSettingCmd = &cobra.Command{
	Use:   "set-setting [key] [value]",
	Short: "Change one setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.SetSetting(args[0], args[1]); err != nil {
			return err
		}

		fmt.Printf("✅ %s set to %s\n", args[0], args[1])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(setSettingCmd)
}
