// Package settings persists the form values a user wants remembered between
// runs: project name, author and copyright.
//
// Overview:
//   - Responsibility: Small key-value preferences store
//   - Key Types: Store interface, FileStore (YAML), MemoryStore, Preferences
//   - Concurrency Model: Stores are guarded by a mutex
//   - Error Semantics: Read failures on a missing file are not errors; write failures are
//   - Performance Notes: FileStore re-reads the file on every call
//
// Only the CLI layer touches a Store; the generator never sees it.
package settings

import (
	"maps"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"gopkg.in/yaml.v3"

	"go.eggybyte.com/bulone/core/errors"
)

// Preference keys.
const (
	KeyProject   = "project"
	KeyAuthor    = "author"
	KeyCopyright = "copyright"
)

// Keys returns every preference key in display order.
func Keys() []string {
	return []string{KeyProject, KeyAuthor, KeyCopyright}
}

// IsKey reports whether key is a known preference.
func IsKey(key string) bool {
	return slices.Contains(Keys(), key)
}

// Store is a get/set preferences capability.
type Store interface {
	// Get returns the stored value, or "" when unset.
	Get(key string) (string, error)
	// Set stores value under key.
	Set(key, value string) error
}

// Preferences is the typed view of the three remembered fields.
type Preferences struct {
	Project   string `yaml:"project" json:"project"`
	Author    string `yaml:"author" json:"author"`
	Copyright string `yaml:"copyright" json:"copyright"`
}

// Load reads all preferences from store.
func Load(store Store) (Preferences, error) {
	var p Preferences
	var err error
	if p.Project, err = store.Get(KeyProject); err != nil {
		return p, err
	}
	if p.Author, err = store.Get(KeyAuthor); err != nil {
		return p, err
	}
	if p.Copyright, err = store.Get(KeyCopyright); err != nil {
		return p, err
	}
	return p, nil
}

// Save writes all preferences to store.
func Save(store Store, p Preferences) error {
	for _, kv := range [][2]string{
		{KeyProject, p.Project},
		{KeyAuthor, p.Author},
		{KeyCopyright, p.Copyright},
	} {
		if err := store.Set(kv[0], kv[1]); err != nil {
			return err
		}
	}
	return nil
}

// DefaultPath returns <user config dir>/bulone/preferences.yaml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(errors.CodeInternal, "settings.DefaultPath", err)
	}
	return filepath.Join(dir, "bulone", "preferences.yaml"), nil
}

// FileStore keeps preferences in a flat YAML mapping.
type FileStore struct {
	fs   billy.Filesystem
	path string
	mu   sync.Mutex
}

// NewFileStore creates a store backed by the YAML file at path on fs.
func NewFileStore(fs billy.Filesystem, path string) *FileStore {
	return &FileStore{fs: fs, path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Get implements Store.
func (s *FileStore) Get(key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return "", err
	}
	return values[key], nil
}

// Set implements Store. The file and its directory are created on demand.
func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.read()
	if err != nil {
		return err
	}
	values[key] = value

	data, err := yaml.Marshal(values)
	if err != nil {
		return errors.Wrap(errors.CodeInternal, "settings.Set", err)
	}
	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return errors.Build(errors.CodeDirectoryCreationFailed).
			WithOp("settings.Set").
			WithPath(filepath.Dir(s.path)).
			WithErr(err).
			Err()
	}
	if err := util.WriteFile(s.fs, s.path, data, 0o644); err != nil {
		return errors.Build(errors.CodeFileWriteFailed).
			WithOp("settings.Set").
			WithPath(s.path).
			WithErr(err).
			Err()
	}
	return nil
}

// All returns a copy of every stored value.
func (s *FileStore) All() (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

func (s *FileStore) read() (map[string]string, error) {
	values := make(map[string]string)

	data, err := util.ReadFile(s.fs, s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return values, nil
		}
		return nil, errors.Wrapf(errors.CodeInternal, "settings.read", err, "failed to read %s", s.path)
	}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, errors.Wrapf(errors.CodeInvalidArgument, "settings.read", err, "malformed preferences file %s", s.path)
	}
	if values == nil {
		values = make(map[string]string)
	}
	return values, nil
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemoryStore creates a store seeded with values.
func NewMemoryStore(values map[string]string) *MemoryStore {
	m := make(map[string]string, len(values))
	maps.Copy(m, values)
	return &MemoryStore{values: m}
}

// Get implements Store.
func (m *MemoryStore) Get(key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[key], nil
}

// Set implements Store.
func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
