// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging configures the application-wide structured logger.
//
// The TUI owns stdout and stderr, so all diagnostics go to a log file under
// the config directory. Persistence failures, backend errors, and discarded
// snapshots are recorded here rather than painted over the chat view.
package logging

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/phuslu/log"
)

// DefaultFileName is the log file name inside the config directory.
const DefaultFileName = "compass.log"

// Setup configures the process-wide default logger to write JSON lines to
// the given file. An empty path disables output entirely (used in tests).
func Setup(path string, level string) {
	if path == "" {
		log.DefaultLogger = log.Logger{
			Level:  log.ErrorLevel,
			Writer: log.IOWriter{Writer: os.Stderr},
		}
		return
	}

	log.DefaultLogger = log.Logger{
		Level:      parseLevel(level),
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
		Writer: &log.FileWriter{
			Filename:   path,
			MaxSize:    10 * 1024 * 1024,
			MaxBackups: 2,
			LocalTime:  true,
		},
	}
}

// DefaultPath returns the log file path inside dir.
func DefaultPath(dir string) string {
	return filepath.Join(dir, DefaultFileName)
}

// parseLevel maps a config string to a log level, defaulting to info.
func parseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
