// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging configures the structured log output for the tutor client.
//
// The TUI owns the terminal, so logs go to a file rather than stderr.
// Events are written through the global zerolog logger:
//
//	log.Info().Str("conversation", id).Msg("history loaded")
package logging

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup opens the log file at path and installs it as the global log sink.
// The returned closer flushes and closes the file; call it on shutdown.
// An unrecognized level falls back to info.
func Setup(path, level string) (func() error, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, err
	}

	log.Logger = zerolog.New(f).With().Timestamp().Logger().Level(parseLevel(level))
	return f.Close, nil
}

// Disable routes all log events to a discard writer. Used in tests and when
// logging is turned off in config.
func Disable() {
	log.Logger = zerolog.Nop()
}

// parseLevel maps a config level string onto a zerolog level.
func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}
