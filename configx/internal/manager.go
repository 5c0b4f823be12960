package internal

import (
	"context"
	"fmt"
	"maps"

	"go.eggybyte.com/bulone/core/log"
)

// ManagerImpl holds the merged snapshot of all sources.
type ManagerImpl struct {
	logger   log.Logger
	sources  []Source
	snapshot map[string]string
}

// NewManager creates a new configuration manager.
func NewManager(logger log.Logger, sources []Source) (*ManagerImpl, error) {
	if logger == nil {
		logger = log.Nop()
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("at least one source is required")
	}

	return &ManagerImpl{
		logger:   logger,
		sources:  sources,
		snapshot: make(map[string]string),
	}, nil
}

// Load reads every source in order; later sources override earlier ones.
func (m *ManagerImpl) Load(ctx context.Context) error {
	merged := make(map[string]string)

	for i, source := range m.sources {
		snapshot, err := source.Load(ctx)
		if err != nil {
			return fmt.Errorf("source %d load failed: %w", i, err)
		}
		for k, v := range snapshot {
			merged[k] = v
		}
		m.logger.Debug("config source loaded", log.Int("source", i), log.Int("keys", len(snapshot)))
	}

	m.snapshot = merged
	return nil
}

// Snapshot returns a copy of the merged configuration.
func (m *ManagerImpl) Snapshot() map[string]string {
	return maps.Clone(m.snapshot)
}

// Value returns the value for a key and whether it exists.
func (m *ManagerImpl) Value(key string) (string, bool) {
	v, ok := m.snapshot[key]
	return v, ok
}

// Bind binds the merged snapshot into target.
func (m *ManagerImpl) Bind(target any) error {
	return BindToStruct(m.snapshot, target)
}
