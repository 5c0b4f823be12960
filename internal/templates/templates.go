// Package templates resolves template keys to raw template text.
//
// Overview:
//   - Responsibility: Look up header and part templates by key
//   - Key Types: Store interface, EmbeddedStore, DirStore, MapStore, Layered
//   - Concurrency Model: Stores are read-only and safe for concurrent use
//   - Error Semantics: CodeTemplateNotFound is the only lookup failure
//   - Performance Notes: No caching; templates are read on every Load
//
// Keys are matched case-insensitively. Template files use the ".mustache"
// extension and are addressed by their base name, so "presenter.mustache"
// answers to the key "presenter".
//
// Usage:
//
//	store := templates.NewLayered(dirStore, templates.Embedded())
//	text, err := store.Load("header")
package templates

import (
	"embed"
	"io/fs"
	"path"
	"slices"
	"strings"

	"go.eggybyte.com/bulone/core/errors"
	"go.eggybyte.com/bulone/internal/catalog"
)

// Extension is the file extension of template resources.
const Extension = ".mustache"

//go:embed templates/*.mustache
var templateFS embed.FS

// Store resolves a template key to its text.
type Store interface {
	// Load returns the raw text of the template named key.
	// It fails with CodeTemplateNotFound when no template matches.
	Load(key string) (string, error)

	// Keys lists the available template keys, lower-cased and sorted.
	Keys() ([]string, error)
}

// Required returns the keys a complete template set must provide:
// the header followed by every catalog part in generation order.
func Required() []string {
	keys := []string{catalog.HeaderKey}
	for _, p := range catalog.All() {
		keys = append(keys, p.TemplateKey())
	}
	return keys
}

// NotFound builds the CodeTemplateNotFound error for key.
func NotFound(key string, cause error) error {
	return errors.Build(errors.CodeTemplateNotFound).
		WithOp("templates.Load").
		WithTemplate(key).
		WithMsg("template not found").
		WithErr(cause).
		Err()
}

// normalizeKey lower-cases a key and strips an optional template extension.
func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSuffix(strings.TrimSpace(key), Extension))
}

// EmbeddedStore serves the template set compiled into the binary.
type EmbeddedStore struct {
	fsys fs.FS
	dir  string
}

// Embedded returns the store of built-in templates.
func Embedded() *EmbeddedStore {
	return &EmbeddedStore{fsys: templateFS, dir: "templates"}
}

// Load implements Store.
func (s *EmbeddedStore) Load(key string) (string, error) {
	name := normalizeKey(key)
	if name == "" || strings.ContainsAny(name, `/\`) {
		return "", NotFound(key, nil)
	}

	content, err := fs.ReadFile(s.fsys, path.Join(s.dir, name+Extension))
	if err != nil {
		return "", NotFound(key, err)
	}
	return string(content), nil
}

// Keys implements Store.
func (s *EmbeddedStore) Keys() ([]string, error) {
	entries, err := fs.ReadDir(s.fsys, s.dir)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, "templates.Keys", err)
	}

	var keys []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), Extension) {
			continue
		}
		keys = append(keys, normalizeKey(entry.Name()))
	}
	slices.Sort(keys)
	return keys, nil
}

// MapStore is a compiled-in key to text table.
type MapStore map[string]string

// Load implements Store.
func (m MapStore) Load(key string) (string, error) {
	want := normalizeKey(key)
	if text, ok := m[want]; ok {
		return text, nil
	}
	for k, text := range m {
		if normalizeKey(k) == want {
			return text, nil
		}
	}
	return "", NotFound(key, nil)
}

// Keys implements Store.
func (m MapStore) Keys() ([]string, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, normalizeKey(k))
	}
	slices.Sort(keys)
	return slices.Compact(keys), nil
}

// Layered consults its stores in order; the first store holding a key wins.
type Layered struct {
	stores []Store
}

// NewLayered creates a layered store. Nil stores are skipped.
func NewLayered(stores ...Store) *Layered {
	l := &Layered{}
	for _, s := range stores {
		if s != nil {
			l.stores = append(l.stores, s)
		}
	}
	return l
}

// Load implements Store. Errors other than CodeTemplateNotFound stop the
// search immediately.
func (l *Layered) Load(key string) (string, error) {
	for _, s := range l.stores {
		text, err := s.Load(key)
		if err == nil {
			return text, nil
		}
		if !errors.IsCode(err, errors.CodeTemplateNotFound) {
			return "", err
		}
	}
	return "", NotFound(key, nil)
}

// Keys implements Store, returning the union of every layer.
func (l *Layered) Keys() ([]string, error) {
	var keys []string
	for _, s := range l.stores {
		k, err := s.Keys()
		if err != nil {
			return nil, err
		}
		keys = append(keys, k...)
	}
	slices.Sort(keys)
	return slices.Compact(keys), nil
}

// Check verifies that every key in keys resolves in store. When keys is empty
// the Required set is checked. The error names the first missing key and
// lists all of them in its message.
func Check(store Store, keys ...string) error {
	if len(keys) == 0 {
		keys = Required()
	}

	var missing []string
	for _, key := range keys {
		if _, err := store.Load(key); err != nil {
			if !errors.IsCode(err, errors.CodeTemplateNotFound) {
				return err
			}
			missing = append(missing, key)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	return errors.Build(errors.CodeTemplateNotFound).
		WithOp("templates.Check").
		WithTemplate(missing[0]).
		WithMsgf("missing templates: %s", strings.Join(missing, ", ")).
		Err()
}
