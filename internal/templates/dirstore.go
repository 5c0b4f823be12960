package templates

import (
	"os"
	"path"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"go.eggybyte.com/bulone/core/errors"
)

// DefaultPattern selects template files anywhere below a DirStore root.
const DefaultPattern = "**/*" + Extension

// DirStore serves templates from a directory tree on a billy filesystem.
//
// Files are selected by a doublestar pattern matched against their
// slash-separated path relative to the root. When two files share a base
// name, the one visited first in lexical walk order wins.
type DirStore struct {
	fs      billy.Filesystem
	root    string
	pattern string
}

// DirOption configures a DirStore.
type DirOption func(*DirStore)

// WithPattern overrides DefaultPattern.
func WithPattern(pattern string) DirOption {
	return func(s *DirStore) {
		s.pattern = pattern
	}
}

// NewDirStore creates a store rooted at root on fs.
// The pattern is validated eagerly.
func NewDirStore(fs billy.Filesystem, root string, opts ...DirOption) (*DirStore, error) {
	s := &DirStore{fs: fs, root: root, pattern: DefaultPattern}
	for _, opt := range opts {
		opt(s)
	}

	if !doublestar.ValidatePattern(s.pattern) {
		return nil, errors.Build(errors.CodeInvalidArgument).
			WithOp("templates.NewDirStore").
			WithMsgf("invalid template pattern %q", s.pattern).
			Err()
	}
	if fi, err := fs.Stat(root); err != nil || !fi.IsDir() {
		return nil, errors.Build(errors.CodeInvalidArgument).
			WithOp("templates.NewDirStore").
			WithPath(root).
			WithMsg("template directory not found").
			WithErr(err).
			Err()
	}
	return s, nil
}

// Root returns the directory the store reads from.
func (s *DirStore) Root() string {
	return s.root
}

// Load implements Store.
func (s *DirStore) Load(key string) (string, error) {
	want := normalizeKey(key)

	var found string
	err := s.walk(func(name, rel string) bool {
		if keyOf(rel) == want {
			found = name
			return false
		}
		return true
	})
	if err != nil {
		return "", errors.Build(errors.CodeTemplateNotFound).
			WithOp("templates.Load").
			WithTemplate(key).
			WithPath(s.root).
			WithErr(err).
			Err()
	}
	if found == "" {
		return "", NotFound(key, nil)
	}

	content, err := util.ReadFile(s.fs, found)
	if err != nil {
		return "", errors.Build(errors.CodeTemplateNotFound).
			WithOp("templates.Load").
			WithTemplate(key).
			WithPath(found).
			WithErr(err).
			Err()
	}
	return string(content), nil
}

// Keys implements Store.
func (s *DirStore) Keys() ([]string, error) {
	var keys []string
	err := s.walk(func(_, rel string) bool {
		keys = append(keys, keyOf(rel))
		return true
	})
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, "templates.Keys", err)
	}
	slices.Sort(keys)
	return slices.Compact(keys), nil
}

// keyOf derives the template key from a file path: its lower-cased base name
// without extension.
func keyOf(rel string) string {
	base := path.Base(rel)
	return strings.ToLower(strings.TrimSuffix(base, path.Ext(base)))
}

// walk visits every regular file matching the pattern in lexical order,
// passing its filesystem name and its slash-separated path relative to the
// root. Returning false from fn stops the walk.
func (s *DirStore) walk(fn func(name, rel string) bool) error {
	_, err := s.walkDir(s.root, "", fn)
	return err
}

func (s *DirStore) walkDir(dir, rel string, fn func(name, rel string) bool) (bool, error) {
	entries, err := s.fs.ReadDir(dir)
	if err != nil {
		return false, err
	}
	slices.SortFunc(entries, func(a, b os.FileInfo) int {
		return strings.Compare(a.Name(), b.Name())
	})

	for _, entry := range entries {
		name := s.fs.Join(dir, entry.Name())
		entryRel := path.Join(rel, entry.Name())

		if entry.IsDir() {
			more, err := s.walkDir(name, entryRel, fn)
			if err != nil || !more {
				return more, err
			}
			continue
		}
		if !entry.Mode().IsRegular() {
			continue
		}
		if ok, _ := doublestar.Match(s.pattern, entryRel); !ok {
			continue
		}
		if !fn(name, entryRel) {
			return false, nil
		}
	}
	return true, nil
}
