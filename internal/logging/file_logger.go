package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileLogger appends timestamped audit lines to a log file. Every message is
// written regardless of level; verbosity filtering is a console concern, the
// audit trail wants everything.
// Safe for concurrent use by multiple goroutines.
type FileLogger struct {
	w  io.WriteCloser
	mu sync.Mutex
}

// NewFileLogger opens (or creates) the log file in append mode, creating
// parent directories as needed.
func NewFileLogger(path string) (*FileLogger, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return &FileLogger{w: f}, nil
}

// Verbose logs detailed diagnostic information.
func (l *FileLogger) Verbose(format string, args ...interface{}) {
	l.write("VERBOSE", format, args...)
}

// Info logs informational messages.
func (l *FileLogger) Info(format string, args ...interface{}) {
	l.write("INFO", format, args...)
}

// Warn logs recoverable problems.
func (l *FileLogger) Warn(format string, args ...interface{}) {
	l.write("WARNING", format, args...)
}

// Error logs error messages.
func (l *FileLogger) Error(format string, args ...interface{}) {
	l.write("ERROR", format, args...)
}

// Close flushes and closes the underlying file.
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Close()
}

func (l *FileLogger) write(level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	fmt.Fprintf(l.w, "%s - %s - %s\n", time.Now().Format("2006-01-02 15:04:05"), level, msg)
}
