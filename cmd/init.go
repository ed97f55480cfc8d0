package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/misterclayt0n/ironlog/internal/config"
)

var initSetupCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the config file and the database",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.WriteDefault()
		if err != nil {
			return fmt.Errorf("Failed to write config: %w", err)
		}

		// Opening the storage creates and migrates the database.
		st, err := openStorage()
		if err != nil {
			return err
		}
		defer st.Close()

		// Seed the settings table so `settings` shows editable rows right
		// away. Values a previous init stored win over the defaults.
		current, err := st.GetSettings()
		if err != nil {
			return err
		}
		if err := st.SaveSettings(current); err != nil {
			return fmt.Errorf("Failed to seed settings: %w", err)
		}

		fmt.Printf("✅ Config at %s, database ready\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initSetupCmd)
}
