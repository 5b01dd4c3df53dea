package log

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Emojis for different log types
const (
	infoEmoji    = "ℹ️ "
	successEmoji = "✅ "
	errorEmoji   = "❌ "
	warnEmoji    = "⚠️ "
	stepEmoji    = "👉 "
	debugEmoji   = "🔍 "
)

// Logger wraps a logrus entry with the emoji-prefixed helpers used across the service
type Logger struct {
	entry *logrus.Entry
	debug bool
}

// New creates a new logger instance
func New(debug bool) *Logger {
	base := logrus.New()
	base.SetOutput(os.Stdout)
	base.SetFormatter(&logrus.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	if debug {
		base.SetLevel(logrus.DebugLevel)
	}
	return &Logger{entry: logrus.NewEntry(base), debug: debug}
}

// WithField returns a derived logger carrying the given field on every line
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{entry: l.entry.WithField(key, value), debug: l.debug}
}

// SetOutput redirects the underlying logger, mostly useful in tests
func (l *Logger) SetOutput(w io.Writer) {
	l.entry.Logger.SetOutput(w)
	l.entry.Logger.SetFormatter(&logrus.TextFormatter{DisableColors: true, DisableTimestamp: true})
}

// formatMessage collapses multi-line messages so a single entry stays on one line
func formatMessage(prefix, format string, args ...interface{}) string {
	msg := fmt.Sprintf(format, args...)
	return prefix + strings.Join(strings.Fields(strings.ReplaceAll(msg, "\n", " ")), " ")
}

// Info prints an info message
func (l *Logger) Info(format string, args ...interface{}) {
	l.entry.Info(formatMessage(infoEmoji, format, args...))
}

// Success prints a success message
func (l *Logger) Success(format string, args ...interface{}) {
	l.entry.WithField("status", "ok").Info(formatMessage(successEmoji, format, args...))
}

// Error prints an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.entry.Error(formatMessage(errorEmoji, format, args...))
}

// Warning prints a warning message
func (l *Logger) Warning(format string, args ...interface{}) {
	l.entry.Warn(formatMessage(warnEmoji, format, args...))
}

// Step prints a step message
func (l *Logger) Step(format string, args ...interface{}) {
	l.entry.Info(formatMessage(stepEmoji, format, args...))
}

// Debug prints a debug message if debug is enabled
func (l *Logger) Debug(format string, args ...interface{}) {
	if !l.debug {
		return
	}
	l.entry.Debug(formatMessage(debugEmoji, format, args...))
}

// IsDebug returns whether debug logging is enabled
func (l *Logger) IsDebug() bool {
	return l.debug
}

// Discard returns a logger that drops everything
func Discard() *Logger {
	l := New(false)
	l.entry.Logger.SetOutput(io.Discard)
	return l
}
