package logging

import "github.com/vvka-141/as6mig/pkg/as6mig"

// NullLogger is a no-op logger that discards all log messages.
// Safe for concurrent use by multiple goroutines.
// Useful for testing and when logging is not desired.
type NullLogger struct{}

// NewNullLogger creates a new NullLogger.
func NewNullLogger() *NullLogger {
	return &NullLogger{}
}

func (l *NullLogger) Verbose(format string, args ...interface{})   {}
func (l *NullLogger) Print(format string, args ...interface{})     {}
func (l *NullLogger) Info(format string, args ...interface{})      {}
func (l *NullLogger) Warning(format string, args ...interface{})   {}
func (l *NullLogger) Mandatory(format string, args ...interface{}) {}
func (l *NullLogger) Error(format string, args ...interface{})     {}

// WithStage returns the same logger.
func (l *NullLogger) WithStage(string) as6mig.Logger { return l }

var _ as6mig.Logger = (*NullLogger)(nil)
