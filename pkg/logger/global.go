package logger

import (
	"os"
	"sync/atomic"

	charm "github.com/charmbracelet/log"
)

// defaultLogger is the global default HarnessLogger instance stored atomically.
var defaultLogger atomic.Value

func init() {
	defaultLogger.Store(NewHarnessLogger(charm.Default()))
}

// Default returns the global default HarnessLogger instance.
func Default() *HarnessLogger {
	return defaultLogger.Load().(*HarnessLogger)
}

// SetDefault sets a new global default HarnessLogger instance.
func SetDefault(logger *HarnessLogger) {
	if logger != nil {
		defaultLogger.Store(logger)
	}
}

// New creates a new HarnessLogger writing to stderr.
func New() *HarnessLogger {
	return NewHarnessLogger(charm.New(os.Stderr))
}

// Trace logs a trace message using the default logger.
func Trace(msg any, keyvals ...any) {
	Default().Trace(msg, keyvals...)
}

// Debug logs a debug message using the default logger.
func Debug(msg any, keyvals ...any) {
	Default().Debug(msg, keyvals...)
}

// Info logs an info message using the default logger.
func Info(msg any, keyvals ...any) {
	Default().Info(msg, keyvals...)
}

// Warn logs a warning message using the default logger.
func Warn(msg any, keyvals ...any) {
	Default().Warn(msg, keyvals...)
}

// Error logs an error message using the default logger.
func Error(msg any, keyvals ...any) {
	Default().Error(msg, keyvals...)
}
