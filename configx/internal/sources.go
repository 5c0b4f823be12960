// Package internal provides internal implementation details for configx.
//
// Overview:
//   - Responsibility: Environment and YAML file configuration sources
//   - Key Types: EnvSource, FileSource
//   - Concurrency Model: Sources are read once per Load, no watching
//   - Error Semantics: Missing optional files yield an empty snapshot
//   - Performance Notes: One read per Load call
package internal

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Source loads a flat key-value configuration snapshot.
type Source interface {
	Load(ctx context.Context) (map[string]string, error)
}

// EnvOptions configures environment variable source behavior.
type EnvOptions struct {
	Prefix  string          // Only variables starting with Prefix are read (e.g., "BULONE_")
	Environ func() []string // Environment provider (default: os.Environ)
}

// EnvSource loads configuration from environment variables.
// Keys keep their prefix so they line up with `env` struct tags.
type EnvSource struct {
	prefix  string
	environ func() []string
}

// NewEnvSource creates a new environment variable source.
func NewEnvSource(opts EnvOptions) *EnvSource {
	environ := opts.Environ
	if environ == nil {
		environ = os.Environ
	}
	return &EnvSource{
		prefix:  opts.Prefix,
		environ: environ,
	}
}

// Load reads configuration from environment variables.
func (s *EnvSource) Load(ctx context.Context) (map[string]string, error) {
	config := make(map[string]string)

	for _, env := range s.environ() {
		key, value, ok := strings.Cut(env, "=")
		if !ok {
			continue
		}
		if s.prefix != "" && !strings.HasPrefix(key, s.prefix) {
			continue
		}
		config[key] = value
	}

	return config, nil
}

// FileOptions configures file source behavior.
type FileOptions struct {
	KeyPrefix string // Prepended to upper-cased YAML keys (e.g., "BULONE_")
	Optional  bool   // A missing file yields an empty snapshot instead of an error
}

// FileSource loads configuration from a flat YAML mapping.
//
// A key like `template_dir` becomes KeyPrefix + "TEMPLATE_DIR" so file values
// bind through the same `env` tags as environment variables. Nested mappings
// are joined with "_".
type FileSource struct {
	path      string
	keyPrefix string
	optional  bool
}

// NewFileSource creates a new YAML file source.
func NewFileSource(path string, opts FileOptions) *FileSource {
	return &FileSource{
		path:      path,
		keyPrefix: opts.KeyPrefix,
		optional:  opts.Optional,
	}
}

// Load reads and flattens the YAML file.
func (s *FileSource) Load(ctx context.Context) (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) && s.optional {
			return make(map[string]string), nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", s.path, err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", s.path, err)
	}

	config := make(map[string]string)
	flatten(config, s.keyPrefix, raw)
	return config, nil
}

func flatten(out map[string]string, prefix string, in map[string]any) {
	for k, v := range in {
		key := prefix + strings.ToUpper(strings.ReplaceAll(k, "-", "_"))
		switch val := v.(type) {
		case map[string]any:
			flatten(out, key+"_", val)
		case nil:
			out[key] = ""
		case []any:
			parts := make([]string, 0, len(val))
			for _, item := range val {
				parts = append(parts, fmt.Sprintf("%v", item))
			}
			out[key] = strings.Join(parts, ",")
		default:
			out[key] = fmt.Sprintf("%v", val)
		}
	}
}
