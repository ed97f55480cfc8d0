package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/misterclayt0n/ironlog/internal/config"
	"github.com/misterclayt0n/ironlog/internal/notify"
	"github.com/misterclayt0n/ironlog/internal/session"
	"github.com/misterclayt0n/ironlog/internal/storage"
	"github.com/misterclayt0n/ironlog/internal/utils"
)

var rootCmd = &cobra.Command{
	Use:   "ironlog",
	Short: "CLI workout tracker built around the live session flow",
}

func Execute() error {
	return rootCmd.Execute()
}

func openStorage() (*storage.Storage, error) {
	st, err := storage.NewStorage()
	if err != nil {
		return nil, fmt.Errorf("Failed to open storage: %w", err)
	}
	return st, nil
}

// newManager wires the session engine for commands that drive a workout.
func newManager(st *storage.Storage) (*session.Manager, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("Failed to load config: %w", err)
	}

	statePath, err := config.StatePath()
	if err != nil {
		return nil, err
	}

	settings, err := st.GetSettings()
	if err != nil {
		return nil, fmt.Errorf("Failed to load settings: %w", err)
	}

	logger := utils.NewLogger(cfg)
	repo := session.NewFileRepository(statePath, logger)
	notifier := notify.NewConsoleNotifier(settings, os.Stdout, logger)

	return session.NewManager(repo, st, notifier, logger), nil
}
