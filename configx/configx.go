// Package configx loads bulone configuration from layered sources.
//
// Overview:
//   - Responsibility: Merge YAML file and environment sources, bind into structs, validate
//   - Key Types: Source interface, Manager, Options
//   - Concurrency Model: Load once at startup; Manager is read-only afterwards
//   - Error Semantics: Load, bind and validation failures are returned as errors
//   - Performance Notes: Each source is read exactly once
//
// Usage:
//
//	mgr, err := configx.NewManager(ctx, configx.Options{
//		Sources: []configx.Source{
//			configx.NewFileSource(path, configx.FileOptions{KeyPrefix: "BULONE_", Optional: true}),
//			configx.NewEnvSource(configx.EnvOptions{Prefix: "BULONE_"}),
//		},
//	})
//	var cfg Config
//	err = mgr.Bind(&cfg)
package configx

import (
	"context"
	"fmt"

	"go.eggybyte.com/bulone/configx/internal"
	"go.eggybyte.com/bulone/core/log"
)

// Source describes a configuration source.
type Source interface {
	// Load reads the current configuration snapshot as flat key-value pairs.
	Load(ctx context.Context) (map[string]string, error)
}

// Options holds configuration for the manager.
type Options struct {
	Logger  log.Logger // Logger for configuration operations (default: no-op)
	Sources []Source   // Configuration sources (later sources override earlier ones)
}

// EnvOptions configures the environment source.
type EnvOptions struct {
	Prefix  string          // Only variables with this prefix are read
	Environ func() []string // Environment provider (default: os.Environ)
}

// FileOptions configures the YAML file source.
type FileOptions struct {
	KeyPrefix string // Prepended to upper-cased YAML keys
	Optional  bool   // Treat a missing file as empty
}

// Manager exposes the merged configuration.
type Manager struct {
	impl *internal.ManagerImpl
}

// NewManager creates a manager and loads every source.
//
// Parameters:
//   - ctx: context for source loading
//   - opts: manager configuration options
//
// Returns:
//   - *Manager: loaded manager
//   - error: a source failed to load
func NewManager(ctx context.Context, opts Options) (*Manager, error) {
	sources := make([]internal.Source, len(opts.Sources))
	for i, src := range opts.Sources {
		sources[i] = src
	}

	impl, err := internal.NewManager(opts.Logger, sources)
	if err != nil {
		return nil, err
	}
	if err := impl.Load(ctx); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	return &Manager{impl: impl}, nil
}

// Snapshot returns a copy of the merged configuration.
func (m *Manager) Snapshot() map[string]string {
	return m.impl.Snapshot()
}

// Value returns the value for a key and whether it exists.
func (m *Manager) Value(key string) (string, bool) {
	return m.impl.Value(key)
}

// Bind decodes the configuration into a struct using `env` and `default`
// tags, then validates it with `validate` tags.
func (m *Manager) Bind(target any) error {
	if target == nil {
		return fmt.Errorf("target cannot be nil")
	}
	if err := m.impl.Bind(target); err != nil {
		return err
	}
	return ValidateStruct(nil, target)
}

// NewEnvSource creates an environment variable configuration source.
func NewEnvSource(opts EnvOptions) Source {
	return internal.NewEnvSource(internal.EnvOptions{
		Prefix:  opts.Prefix,
		Environ: opts.Environ,
	})
}

// NewFileSource creates a YAML file configuration source.
func NewFileSource(path string, opts FileOptions) Source {
	return internal.NewFileSource(path, internal.FileOptions{
		KeyPrefix: opts.KeyPrefix,
		Optional:  opts.Optional,
	})
}

// MapSource is a fixed snapshot, handy for flags and tests.
type MapSource map[string]string

// Load returns a copy of the map.
func (s MapSource) Load(ctx context.Context) (map[string]string, error) {
	out := make(map[string]string, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out, nil
}
