// Package testingx provides testing utilities for bulone packages.
//
// Overview:
//   - Responsibility: Testing helpers, mocks, and filesystem fixtures
//   - Key Types: MockLogger, FixedClock, filesystem helpers
//   - Concurrency Model: MockLogger is thread-safe
//   - Error Semantics: Test failures via testing.T
//   - Performance Notes: In-memory filesystems only
//
// Usage:
//
//	logger := testingx.NewMockLogger(t)
//	fs := testingx.NewMemFS(t, map[string]string{"tpl/header.mustache": "// {{ filename }}"})
//	tree := testingx.ReadTree(t, fs, "/out/Login")
package testingx

import (
	"os"
	"path"
	"sync"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"

	"go.eggybyte.com/bulone/core/errors"
	"go.eggybyte.com/bulone/core/log"
)

// MockLogger records log calls for assertions.
type MockLogger struct {
	t      *testing.T
	shared *entryLog
	fields []any
}

type entryLog struct {
	mu      sync.Mutex
	entries []LogEntry
}

// LogEntry represents a single log entry.
type LogEntry struct {
	Level   string
	Message string
	Fields  []any
	Error   error
}

// Field returns the value logged under key, flattening two-element pair
// slices as produced by the core/log helpers.
func (e LogEntry) Field(key string) (any, bool) {
	flat := make([]any, 0, len(e.Fields))
	for _, f := range e.Fields {
		if pair, ok := f.([]any); ok && len(pair) == 2 {
			flat = append(flat, pair...)
			continue
		}
		flat = append(flat, f)
	}
	for i := 0; i+1 < len(flat); i += 2 {
		if k, ok := flat[i].(string); ok && k == key {
			return flat[i+1], true
		}
	}
	return nil, false
}

// NewMockLogger creates a new mock logger.
func NewMockLogger(t *testing.T) *MockLogger {
	return &MockLogger{
		t:      t,
		shared: &entryLog{},
	}
}

// With returns a logger that records into the same log with kv prepended to
// every entry.
func (m *MockLogger) With(kv ...any) log.Logger {
	fields := append(append([]any(nil), m.fields...), kv...)
	return &MockLogger{t: m.t, shared: m.shared, fields: fields}
}

// Debug logs a debug message.
func (m *MockLogger) Debug(msg string, kv ...any) {
	m.log("DEBUG", msg, nil, kv)
}

// Info logs an info message.
func (m *MockLogger) Info(msg string, kv ...any) {
	m.log("INFO", msg, nil, kv)
}

// Warn logs a warning message.
func (m *MockLogger) Warn(msg string, kv ...any) {
	m.log("WARN", msg, nil, kv)
}

// Error logs an error message.
func (m *MockLogger) Error(err error, msg string, kv ...any) {
	m.log("ERROR", msg, err, kv)
}

// log stores a log entry.
func (m *MockLogger) log(level, msg string, err error, kv []any) {
	m.shared.mu.Lock()
	defer m.shared.mu.Unlock()
	m.shared.entries = append(m.shared.entries, LogEntry{
		Level:   level,
		Message: msg,
		Fields:  append(append([]any(nil), m.fields...), kv...),
		Error:   err,
	})
}

// Entries returns all log entries.
func (m *MockLogger) Entries() []LogEntry {
	m.shared.mu.Lock()
	defer m.shared.mu.Unlock()
	entries := make([]LogEntry, len(m.shared.entries))
	copy(entries, m.shared.entries)
	return entries
}

// Count returns the number of entries logged at level with message msg.
func (m *MockLogger) Count(level, msg string) int {
	n := 0
	for _, entry := range m.Entries() {
		if entry.Level == level && entry.Message == msg {
			n++
		}
	}
	return n
}

// AssertLogged asserts that a message was logged.
func (m *MockLogger) AssertLogged(level, msg string) {
	m.t.Helper()
	if m.Count(level, msg) == 0 {
		m.t.Errorf("Expected log message not found: level=%s msg=%q", level, msg)
	}
}

// Clear clears all log entries.
func (m *MockLogger) Clear() {
	m.shared.mu.Lock()
	defer m.shared.mu.Unlock()
	m.shared.entries = nil
}

// FixedClock returns a clock that always reports ts.
func FixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

// NewMemFS creates an in-memory filesystem seeded with files (path to content).
func NewMemFS(t *testing.T, files map[string]string) billy.Filesystem {
	t.Helper()
	fs := memfs.New()
	for name, content := range files {
		if err := util.WriteFile(fs, name, []byte(content), 0o644); err != nil {
			t.Fatalf("seed %s: %v", name, err)
		}
	}
	return fs
}

// ReadTree returns every regular file below root keyed by its slash-separated
// path relative to root. A missing root yields an empty map.
func ReadTree(t *testing.T, fs billy.Filesystem, root string) map[string]string {
	t.Helper()
	tree := make(map[string]string)
	readTree(t, fs, root, "", tree)
	return tree
}

func readTree(t *testing.T, fs billy.Filesystem, dir, rel string, tree map[string]string) {
	t.Helper()
	entries, err := fs.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return
		}
		t.Fatalf("read dir %s: %v", dir, err)
	}

	for _, entry := range entries {
		name := fs.Join(dir, entry.Name())
		entryRel := path.Join(rel, entry.Name())
		if entry.IsDir() {
			readTree(t, fs, name, entryRel, tree)
			continue
		}
		content, err := util.ReadFile(fs, name)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		tree[entryRel] = string(content)
	}
}

// AssertCode asserts that an error has the expected code.
func AssertCode(t *testing.T, err error, expectedCode errors.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("Expected error with code %s, got nil", expectedCode)
	}

	code := errors.CodeOf(err)
	if code != expectedCode {
		t.Errorf("Expected error code %s, got %s (%v)", expectedCode, code, err)
	}
}

// AssertNoError asserts that no error occurred.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
}
