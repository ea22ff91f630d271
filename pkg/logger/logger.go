package logger

import (
	"fmt"
	"io"
	"os"

	charm "github.com/charmbracelet/log"

	errUtils "github.com/cloudposse/cluster-testkit/errors"
	"github.com/cloudposse/cluster-testkit/pkg/schema"
)

// Level is a charmbracelet/log level extended with Trace and Off.
type Level = charm.Level

const (
	// TraceLevel is one step more verbose than Debug.
	TraceLevel = charm.DebugLevel - 1
	DebugLevel = charm.DebugLevel
	InfoLevel  = charm.InfoLevel
	WarnLevel  = charm.WarnLevel
	ErrorLevel = charm.ErrorLevel
	FatalLevel = charm.FatalLevel
	// OffLevel suppresses all output.
	OffLevel = charm.FatalLevel + 1
)

// LogLevel is the user-facing name of a level as written in config, flags and env.
type LogLevel string

const (
	LogLevelOff     LogLevel = "Off"
	LogLevelTrace   LogLevel = "Trace"
	LogLevelDebug   LogLevel = "Debug"
	LogLevelInfo    LogLevel = "Info"
	LogLevelWarning LogLevel = "Warning"
)

// ParseLogLevel validates a level name. An empty string means Info.
func ParseLogLevel(logLevel string) (LogLevel, error) {
	if logLevel == "" {
		return LogLevelInfo, nil
	}

	switch LogLevel(logLevel) {
	case LogLevelTrace, LogLevelDebug, LogLevelInfo, LogLevelWarning, LogLevelOff:
		return LogLevel(logLevel), nil
	default:
		return "", fmt.Errorf("%w '%s'. Supported log levels are Trace, Debug, Info, Warning, Off", errUtils.ErrInvalidLogLevel, logLevel)
	}
}

// Level converts the name to a charmbracelet/log level.
func (l LogLevel) Level() Level {
	switch l {
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

// Logger wraps a charmbracelet logger and adds the Trace level.
type Logger struct {
	*charm.Logger
}

// NewLogger returns a Logger writing to w at the given level.
func NewLogger(w io.Writer, level Level) *Logger {
	l := charm.NewWithOptions(w, charm.Options{
		Level:           level,
		ReportTimestamp: false,
	})
	l.SetStyles(getLogStyles())
	return &Logger{Logger: l}
}

// NewLoggerFromConfig builds a Logger from the logs section of the configuration.
// The returned closer releases the log file and is never nil.
func NewLoggerFromConfig(cfg schema.Logs) (*Logger, io.Closer, error) {
	name, err := ParseLogLevel(cfg.Level)
	if err != nil {
		return nil, nopCloser{}, err
	}

	w, closer, err := openLogFile(cfg.File)
	if err != nil {
		return nil, nopCloser{}, err
	}

	return NewLogger(w, name.Level()), closer, nil
}

func openLogFile(file string) (io.Writer, io.Closer, error) {
	switch file {
	case "", "/dev/stderr":
		return os.Stderr, nopCloser{}, nil
	case "/dev/stdout":
		return os.Stdout, nopCloser{}, nil
	case "/dev/null":
		return io.Discard, nopCloser{}, nil
	}

	f, err := os.OpenFile(file, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file %s: %w", file, err)
	}
	return f, f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Trace logs at TraceLevel.
func (l *Logger) Trace(msg interface{}, keyvals ...interface{}) {
	l.Log(TraceLevel, msg, keyvals...)
}

// Tracef logs a formatted message at TraceLevel.
func (l *Logger) Tracef(format string, args ...interface{}) {
	l.Logf(TraceLevel, format, args...)
}

// GetLevelString returns the lower-case name of the current level.
func (l *Logger) GetLevelString() string {
	switch level := l.GetLevel(); level {
	case TraceLevel:
		return "trace"
	case OffLevel:
		return "off"
	default:
		return level.String()
	}
}
