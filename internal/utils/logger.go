package utils

import (
	"io"
	"log"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/misterclayt0n/ironlog/internal/config"
)

// NewLogger returns a logger writing to the rotated log file from the
// config. Commands stay quiet on stdout, diagnostics go to the file.
func NewLogger(cfg *config.Config) *log.Logger {
	var out io.Writer = &lumberjack.Logger{
		Filename:   cfg.Log.File,
		MaxSize:    cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	}
	if cfg.Log.File == "" {
		out = io.Discard
	}

	return log.New(out, "", log.LstdFlags)
}
