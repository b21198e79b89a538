// Package logging provides concrete implementations of the blogsmith.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: zerolog-backed, human-readable lines on stderr by default,
//     or JSON lines when Options.Format is "json"
//   - NullLogger: discards all messages (useful for testing)
//
// Verbose messages are written at debug level and are dropped unless the
// logger was created with verbose output enabled.
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
