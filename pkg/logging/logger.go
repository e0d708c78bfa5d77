// Package logging provides the structured logger used across go-rsphrase
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Logger wraps a slog text logger with a debug switch
type Logger struct {
	logger *slog.Logger
	debug  bool
}

// NewLogger creates a logger writing to stderr
func NewLogger(debug bool) *Logger {
	return NewLoggerWithWriter(os.Stderr, debug)
}

// NewLoggerWithWriter creates a logger writing to w
func NewLoggerWithWriter(w io.Writer, debug bool) *Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return &Logger{
		logger: slog.New(handler),
		debug:  debug,
	}
}

// Discard returns a logger that drops everything
func Discard() *Logger {
	return NewLoggerWithWriter(io.Discard, false)
}

// With returns a logger that adds args to every record
func (l *Logger) With(args ...any) *Logger {
	return &Logger{logger: l.logger.With(args...), debug: l.debug}
}

// IsDebug reports whether debug records are emitted
func (l *Logger) IsDebug() bool {
	return l.debug
}

// Info logs an informational message
func (l *Logger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

// Infof logs a formatted informational message
func (l *Logger) Infof(format string, args ...any) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, args ...any) {
	if l.debug {
		l.logger.Debug(msg, args...)
	}
}

// Debugf logs a formatted debug message
func (l *Logger) Debugf(format string, args ...any) {
	if l.debug {
		l.logger.Debug(fmt.Sprintf(format, args...))
	}
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

// Error logs an error
func (l *Logger) Error(err error) {
	l.logger.Error(err.Error())
}

// Errorf logs a formatted error message
func (l *Logger) Errorf(format string, args ...any) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

// MaybeError logs an error if it's not nil
func (l *Logger) MaybeError(err error) {
	if err != nil {
		l.logger.Error(err.Error())
	}
}

// DefaultLogger returns a default logger instance with debug=false
func DefaultLogger() *Logger {
	return NewLogger(false)
}
