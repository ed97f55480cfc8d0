package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Database DBConfig  `toml:"database"`
	Log      LogConfig `toml:"log"`
}

type DBConfig struct {
	Path string `toml:"path"` // Path to the SQLite database file.
}

type LogConfig struct {
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
}

// ConfigDir returns the directory holding the config file, the database and
// the active workout snapshot. IRONLOG_DATA_DIR overrides it.
func ConfigDir() (string, error) {
	if dir := os.Getenv("IRONLOG_DATA_DIR"); dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".config", "ironlog"), nil
}

// Returns the path to the config file.
func GetConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, "config.toml"), nil
}

// StatePath returns the path of the active workout snapshot.
func StatePath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, "active_workout.toml"), nil
}

func Default() (*Config, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}

	return &Config{
		Database: DBConfig{Path: filepath.Join(dir, "ironlog.db")},
		Log: LogConfig{
			File:       filepath.Join(dir, "ironlog.log"),
			MaxSizeMB:  5,
			MaxBackups: 2,
		},
	}, nil
}

// Reads the configuration from the config file. A missing file is not an
// error, the defaults apply until `ironlog init` writes one.
func LoadConfig() (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}

	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, err
		}
	}

	// Check for a DB path override in the environment.
	if dbPath := os.Getenv("IRONLOG_DB_PATH"); dbPath != "" {
		cfg.Database.Path = dbPath
	}
	if os.Getenv("DEV_MODE") == "true" {
		cfg.Database.Path = "./local.db"
	}

	return cfg, nil
}

// WriteDefault writes the default config file, creating the config
// directory if needed. Existing files are left alone.
func WriteDefault() (string, error) {
	path, err := GetConfigPath()
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", err
	}

	cfg, err := Default()
	if err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return "", err
	}

	return path, nil
}
