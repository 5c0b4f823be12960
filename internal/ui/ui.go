// Package ui provides unified output formatting for the bulone CLI.
//
// Overview:
//   - Responsibility: Standardized status messages, step listings and confirmations
//   - Key Types: Message, OutputLevel
//   - Concurrency Model: Thread-safe output operations
//   - Error Semantics: Output failures are reported on stderr and otherwise ignored
//   - Performance Notes: Unbuffered writes, one line per message
//
// Usage:
//
//	ui.Success("Module %s generated", name)
//	ui.Error("Generation failed: %v", err)
package ui

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

var (
	verbose        bool
	nonInteractive bool
	jsonOutput     bool
	stdout         io.Writer = os.Stdout
	stderr         io.Writer = os.Stderr
	stdin          io.Reader = os.Stdin
	mu             sync.RWMutex
)

// OutputLevel represents the severity level of a message.
type OutputLevel string

const (
	LevelDebug   OutputLevel = "debug"
	LevelInfo    OutputLevel = "info"
	LevelWarning OutputLevel = "warning"
	LevelError   OutputLevel = "error"
	LevelSuccess OutputLevel = "success"
)

// Message represents a structured output message.
//
// Parameters:
//   - Level: Message severity level
//   - Text: Human-readable message content
//   - Data: Optional structured data for JSON output
//   - Timestamp: When the message was created
type Message struct {
	Level     OutputLevel `json:"level"`
	Text      string      `json:"text"`
	Data      any         `json:"data,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// SetVerbose enables or disables debug messages.
func SetVerbose(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = enabled
}

// SetNonInteractive disables interactive prompts.
func SetNonInteractive(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	nonInteractive = enabled
}

// NonInteractive reports whether prompts are disabled.
func NonInteractive() bool {
	mu.RLock()
	defer mu.RUnlock()
	return nonInteractive
}

// SetJSONOutput enables JSON-formatted output.
func SetJSONOutput(enabled bool) {
	mu.Lock()
	defer mu.Unlock()
	jsonOutput = enabled
}

// JSONOutput reports whether JSON output is enabled.
func JSONOutput() bool {
	mu.RLock()
	defer mu.RUnlock()
	return jsonOutput
}

// SetOutput redirects standard output, error output and prompt input.
// Nil arguments leave the current stream in place.
func SetOutput(out, errOut io.Writer, in io.Reader) {
	mu.Lock()
	defer mu.Unlock()
	if out != nil {
		stdout = out
	}
	if errOut != nil {
		stderr = errOut
	}
	if in != nil {
		stdin = in
	}
}

// Writer returns the current standard output stream.
func Writer() io.Writer {
	mu.RLock()
	defer mu.RUnlock()
	return stdout
}

// output writes a message to the appropriate output stream.
//
// Parameters:
//   - level: Message severity level
//   - data: Structured payload, JSON mode only
//   - format: Printf-style format string
//   - args: Format arguments
//
// Concurrency:
//   - Thread-safe
func output(level OutputLevel, data any, format string, args ...any) {
	mu.RLock()
	useJSON := jsonOutput
	useVerbose := verbose
	out, errOut := stdout, stderr
	mu.RUnlock()

	if level == LevelDebug && !useVerbose {
		return
	}

	text := fmt.Sprintf(format, args...)

	if useJSON {
		message := Message{
			Level:     level,
			Text:      text,
			Data:      data,
			Timestamp: time.Now(),
		}
		if err := json.NewEncoder(out).Encode(message); err != nil {
			fmt.Fprintf(errOut, "Failed to encode JSON output: %v\n", err)
		}
		return
	}

	writer := out
	if level == LevelError {
		writer = errOut
	}

	var prefix string
	switch level {
	case LevelDebug:
		prefix = "🔍 DEBUG:"
	case LevelInfo:
		prefix = "ℹ️  INFO:"
	case LevelWarning:
		prefix = "⚠️  WARN:"
	case LevelError:
		prefix = "❌ ERROR:"
	case LevelSuccess:
		prefix = "✅ SUCCESS:"
	}

	fmt.Fprintf(writer, "%s %s\n", prefix, text)
}

// Debug outputs a debug message, shown only in verbose mode.
func Debug(format string, args ...any) {
	output(LevelDebug, nil, format, args...)
}

// Info outputs an informational message.
func Info(format string, args ...any) {
	output(LevelInfo, nil, format, args...)
}

// Warning outputs a warning message.
func Warning(format string, args ...any) {
	output(LevelWarning, nil, format, args...)
}

// Error outputs an error message to stderr.
func Error(format string, args ...any) {
	output(LevelError, nil, format, args...)
}

// Success outputs a success message.
func Success(format string, args ...any) {
	output(LevelSuccess, nil, format, args...)
}

// Result outputs a success message carrying structured data. In text mode the
// data is omitted.
func Result(data any, format string, args ...any) {
	output(LevelSuccess, data, format, args...)
}

// Step outputs a step indicator with message.
//
// Parameters:
//   - step: Step number
//   - total: Total number of steps
//   - format: Printf-style format string
//   - args: Format arguments
func Step(step, total int, format string, args ...any) {
	if JSONOutput() {
		Info(format, args...)
		return
	}

	text := fmt.Sprintf(format, args...)
	fmt.Fprintf(Writer(), "  [%d/%d] %s\n", step, total, text)
}

// Confirm prompts the user for confirmation.
//
// Returns:
//   - bool: True if the user confirmed; always true in non-interactive mode
//
// Concurrency:
//   - Single-threaded (blocks on user input)
func Confirm(format string, args ...any) bool {
	mu.RLock()
	nonInt := nonInteractive
	out, in := stdout, stdin
	mu.RUnlock()

	if nonInt {
		return true
	}

	text := fmt.Sprintf(format, args...)
	fmt.Fprintf(out, "❓ %s [y/N]: ", text)

	response, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.TrimSpace(response) {
	case "y", "Y", "yes":
		return true
	default:
		return false
	}
}

// Reset restores the default streams and flags.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	verbose, nonInteractive, jsonOutput = false, false, false
	stdout, stderr, stdin = os.Stdout, os.Stderr, os.Stdin
}
