// Package log defines the logging interface used across bulone.
//
// Overview:
//   - Responsibility: Stable structured logging contract for the generation core
//   - Key Types: Logger interface, key-value helpers, Nop logger
//   - Concurrency Model: Logger implementations must be safe for concurrent use
//   - Error Semantics: Error method accepts error as first parameter
//   - Performance Notes: Key-value helpers allocate a two-element slice each
//
// Usage:
//
//	logger.Info("module generated", log.Str("module", "Login"), log.Int("files", 6))
package log

import "time"

// Logger defines a structured logging interface compatible with slog concepts.
type Logger interface {
	// With returns a Logger with the given key-value pairs attached.
	With(kv ...any) Logger

	// Debug logs a debug message with optional key-value pairs.
	Debug(msg string, kv ...any)

	// Info logs an informational message with optional key-value pairs.
	Info(msg string, kv ...any)

	// Warn logs a warning message with optional key-value pairs.
	Warn(msg string, kv ...any)

	// Error logs an error message with the error and optional key-value pairs.
	Error(err error, msg string, kv ...any)
}

// Str creates a string key-value pair.
func Str(k, v string) any {
	return []any{k, v}
}

// Int creates an integer key-value pair.
func Int(k string, v int) any {
	return []any{k, v}
}

// Dur creates a duration key-value pair.
func Dur(k string, v time.Duration) any {
	return []any{k, v}
}

// Part creates the "part" key-value pair for a catalog part identifier.
func Part(identifier string) any {
	return []any{"part", identifier}
}

// Path creates the "path" key-value pair.
func Path(p string) any {
	return []any{"path", p}
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return nopLogger{}
}

type nopLogger struct{}

func (n nopLogger) With(kv ...any) Logger                { return n }
func (nopLogger) Debug(msg string, kv ...any)            {}
func (nopLogger) Info(msg string, kv ...any)             {}
func (nopLogger) Warn(msg string, kv ...any)             {}
func (nopLogger) Error(err error, msg string, kv ...any) {}
