package logging

import "github.com/dexhamter/tabload/pkg/tabload"

// MultiLogger fans every message out to all wrapped loggers. Used to keep the
// console output and the audit log file in sync during imports.
type MultiLogger struct {
	loggers []tabload.Logger
}

// NewMultiLogger creates a logger that forwards to each of the given loggers
// in order. Nil entries are skipped.
func NewMultiLogger(loggers ...tabload.Logger) *MultiLogger {
	out := make([]tabload.Logger, 0, len(loggers))
	for _, l := range loggers {
		if l != nil {
			out = append(out, l)
		}
	}
	return &MultiLogger{loggers: out}
}

// Verbose logs detailed diagnostic information.
func (l *MultiLogger) Verbose(format string, args ...interface{}) {
	for _, lg := range l.loggers {
		lg.Verbose(format, args...)
	}
}

// Info logs informational messages.
func (l *MultiLogger) Info(format string, args ...interface{}) {
	for _, lg := range l.loggers {
		lg.Info(format, args...)
	}
}

// Warn logs recoverable problems.
func (l *MultiLogger) Warn(format string, args ...interface{}) {
	for _, lg := range l.loggers {
		lg.Warn(format, args...)
	}
}

// Error logs error messages.
func (l *MultiLogger) Error(format string, args ...interface{}) {
	for _, lg := range l.loggers {
		lg.Error(format, args...)
	}
}
