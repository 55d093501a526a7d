// Package logging provides concrete implementations of the as6mig.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: Writes severity-tagged lines, colored on terminals, with an optional plain mirror
//   - NullLogger: Discards all messages (useful for testing)
//
// OpenLogFile creates the plain mirror used by --log-file.
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
