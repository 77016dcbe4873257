// Package output provides logging, styling, and console rendering for
// analysis results.
package output

import (
	"os"

	"github.com/charmbracelet/log"
)

// Logger is the global logger instance. Logs go to stderr so stdout stays
// clean for JSON and DOT output.
var Logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: false,
	ReportCaller:    false,
})

// SetupLogging configures the logger from the configured level and verbosity.
func SetupLogging(level string, verbose bool) {
	parsed, err := log.ParseLevel(level)
	if err != nil || level == "" {
		parsed = log.InfoLevel
	}
	if verbose {
		parsed = log.DebugLevel
	}

	Logger = log.NewWithOptions(os.Stderr, log.Options{
		Level:           parsed,
		ReportTimestamp: verbose,
		ReportCaller:    false,
	})
}

// Debug logs a debug message.
func Debug(msg string, keyvals ...interface{}) {
	Logger.Debug(msg, keyvals...)
}

// Info logs an info message.
func Info(msg string, keyvals ...interface{}) {
	Logger.Info(msg, keyvals...)
}

// Warn logs a warning message.
func Warn(msg string, keyvals ...interface{}) {
	Logger.Warn(msg, keyvals...)
}

// Error logs an error message.
func Error(msg string, keyvals ...interface{}) {
	Logger.Error(msg, keyvals...)
}
