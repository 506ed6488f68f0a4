// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package logging holds the process-wide logrus logger.
package logging

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// LogFormat is the output format of log entries.
type LogFormat string

const (
	LogFormatText LogFormat = "text"
	LogFormatJSON LogFormat = "json"

	// DefaultLogFormat is the format used until SetLogFormat is called.
	DefaultLogFormat = LogFormatText

	// DefaultLogLevel is the level used until SetLogLevel is called.
	DefaultLogLevel = logrus.InfoLevel
)

// DefaultLogger is the logger all packages derive their entries from. It
// writes to stderr so that stdout stays free for diagnostics.
var DefaultLogger = initializeDefaultLogger()

func initializeDefaultLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(newFormatter(DefaultLogFormat))
	logger.SetLevel(DefaultLogLevel)
	return logger
}

func newFormatter(format LogFormat) logrus.Formatter {
	switch format {
	case LogFormatJSON:
		return &logrus.JSONFormatter{DisableTimestamp: true}
	default:
		return &logrus.TextFormatter{DisableTimestamp: true}
	}
}

// SetLogLevel updates the level of DefaultLogger.
func SetLogLevel(level logrus.Level) {
	DefaultLogger.SetLevel(level)
}

// SetLogLevelToDebug enables debug output on DefaultLogger.
func SetLogLevelToDebug() {
	DefaultLogger.SetLevel(logrus.DebugLevel)
}

// SetLogFormat updates the formatter of DefaultLogger. Unknown formats fall
// back to DefaultLogFormat; case is ignored.
func SetLogFormat(format string) {
	DefaultLogger.SetFormatter(newFormatter(LogFormat(strings.ToLower(format))))
}
