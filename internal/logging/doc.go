// Package logging provides concrete implementations of the tabload.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: Writes formatted messages to stderr with verbosity filtering
//   - FileLogger: Appends timestamped audit lines to a log file
//   - MultiLogger: Fans messages out to several loggers at once
//   - NullLogger: Discards all messages (useful for testing)
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
