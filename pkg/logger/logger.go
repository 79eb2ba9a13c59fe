package logger

import (
	"fmt"
	"io"

	charm "github.com/charmbracelet/log"

	"github.com/cockroachdb/errors"
)

// ErrInvalidLogLevel is returned when a log level string is not recognized.
var ErrInvalidLogLevel = errors.New("invalid log level")

// LogLevel is the string form of a logging level as it appears in configuration.
type LogLevel string

const (
	LogLevelOff     LogLevel = "Off"
	LogLevelTrace   LogLevel = "Trace"
	LogLevelDebug   LogLevel = "Debug"
	LogLevelInfo    LogLevel = "Info"
	LogLevelWarning LogLevel = "Warning"
)

// Charm log levels, extended with a trace level below debug and an off level
// above everything charm emits.
const (
	TraceLevel = charm.DebugLevel - 1
	DebugLevel = charm.DebugLevel
	InfoLevel  = charm.InfoLevel
	WarnLevel  = charm.WarnLevel
	ErrorLevel = charm.ErrorLevel
	OffLevel   = charm.FatalLevel + 1
)

// HarnessLogger wraps a charm logger with trace support and level parsing.
type HarnessLogger struct {
	*charm.Logger
}

// NewHarnessLogger wraps an existing charm logger.
func NewHarnessLogger(l *charm.Logger) *HarnessLogger {
	if l == nil {
		l = charm.Default()
	}
	return &HarnessLogger{Logger: l}
}

// Trace logs a message below debug level.
func (l *HarnessLogger) Trace(msg any, keyvals ...any) {
	l.Logger.Log(TraceLevel, msg, keyvals...)
}

// GetLevelString returns the current level as a lowercase string.
func (l *HarnessLogger) GetLevelString() string {
	switch l.GetLevel() {
	case TraceLevel:
		return "trace"
	case OffLevel:
		return "off"
	default:
		return l.GetLevel().String()
	}
}

// SetOutput sets the output destination.
func (l *HarnessLogger) SetOutput(w io.Writer) {
	l.Logger.SetOutput(w)
}

// ParseLogLevel converts a configuration string into a LogLevel.
// An empty string defaults to Info.
func ParseLogLevel(logLevel string) (LogLevel, error) {
	if logLevel == "" {
		return LogLevelInfo, nil
	}

	switch LogLevel(logLevel) {
	case LogLevelTrace, LogLevelDebug, LogLevelInfo, LogLevelWarning, LogLevelOff:
		return LogLevel(logLevel), nil
	default:
		return "", fmt.Errorf("%w: '%s' (supported: Trace, Debug, Info, Warning, Off)", ErrInvalidLogLevel, logLevel)
	}
}

// CharmLevel maps a LogLevel to the underlying charm level.
func CharmLevel(level LogLevel) charm.Level {
	switch level {
	case LogLevelTrace:
		return TraceLevel
	case LogLevelDebug:
		return DebugLevel
	case LogLevelWarning:
		return WarnLevel
	case LogLevelOff:
		return OffLevel
	default:
		return InfoLevel
	}
}
