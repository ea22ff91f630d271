package logger

import (
	"io"
	"os"
	"sync/atomic"
)

// defaultLogger holds the process-wide *Logger.
var defaultLogger atomic.Value

func init() {
	defaultLogger.Store(NewLogger(os.Stderr, InfoLevel))
}

// Default returns the global default Logger.
func Default() *Logger {
	return defaultLogger.Load().(*Logger)
}

// SetDefault replaces the global default Logger. Nil is ignored.
func SetDefault(logger *Logger) {
	if logger != nil {
		defaultLogger.Store(logger)
	}
}

// New returns a Logger on stderr at Info level.
func New() *Logger {
	return NewLogger(os.Stderr, InfoLevel)
}

func SetOutput(w io.Writer) { Default().SetOutput(w) }

func SetLevel(level Level) { Default().SetLevel(level) }

func GetLevel() Level { return Default().GetLevel() }

func Trace(msg interface{}, keyvals ...interface{}) { Default().Trace(msg, keyvals...) }

func Tracef(format string, args ...interface{}) { Default().Tracef(format, args...) }

func Debug(msg interface{}, keyvals ...interface{}) { Default().Debug(msg, keyvals...) }

func Info(msg interface{}, keyvals ...interface{}) { Default().Info(msg, keyvals...) }

func Warn(msg interface{}, keyvals ...interface{}) { Default().Warn(msg, keyvals...) }

func Error(msg interface{}, keyvals ...interface{}) { Default().Error(msg, keyvals...) }
