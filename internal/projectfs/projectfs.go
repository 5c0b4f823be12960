// Package projectfs provides the filesystem operations used to write a module.
//
// Overview:
//   - Responsibility: Create module directories and write generated files
//   - Key Types: ProjectFS rooted at the module output directory
//   - Concurrency Model: Sequential operations; no locking
//   - Error Semantics: CodeDirectoryCreationFailed and CodeFileWriteFailed with path context
//   - Performance Notes: Idempotent directory creation, whole-file writes
//
// ProjectFS writes through a go-billy filesystem, so production code uses the
// OS filesystem while tests run against memfs. Writes truncate and overwrite;
// they are not atomic and nothing is rolled back on failure.
//
// Usage:
//
//	pfs := projectfs.New(osfs.New("/"), "/tmp/out/Login")
//	err := pfs.CreateDirectory("DataManager/Local")
//	err = pfs.WriteFile("DataManager/Local/LoginDataManager.swift", content, 0o644)
package projectfs

import (
	"os"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"go.eggybyte.com/bulone/core/errors"
	"go.eggybyte.com/bulone/core/log"
)

// Default permissions for created entries.
const (
	DirMode  os.FileMode = 0o755
	FileMode os.FileMode = 0o644
)

// ProjectFS provides file system operations rooted at one module directory.
//
// Parameters:
//   - fs: Underlying billy filesystem
//   - root: Module directory; relative paths are joined onto it
//   - logger: Receives one debug line per operation
//
// Concurrency:
//   - Not safe for concurrent writers to the same tree
type ProjectFS struct {
	fs     billy.Filesystem
	root   string
	logger log.Logger
}

// New creates a ProjectFS rooted at root on fs.
func New(fs billy.Filesystem, root string) *ProjectFS {
	return &ProjectFS{
		fs:     fs,
		root:   root,
		logger: log.Nop(),
	}
}

// WithLogger sets the logger used for debug output and returns p.
func (p *ProjectFS) WithLogger(logger log.Logger) *ProjectFS {
	if logger != nil {
		p.logger = logger
	}
	return p
}

// Root returns the module directory.
func (p *ProjectFS) Root() string {
	return p.root
}

// Path returns the full filesystem path of a path relative to the root.
func (p *ProjectFS) Path(rel string) string {
	if rel == "" {
		return p.root
	}
	return p.fs.Join(p.root, rel)
}

// CreateDirectory creates a directory and all missing parents.
//
// Parameters:
//   - rel: Directory path relative to root
//
// Returns:
//   - error: CodeDirectoryCreationFailed if the directory cannot be created
//
// Concurrency:
//   - Single-threaded per directory
//
// Performance:
//   - One Stat when the directory already exists
func (p *ProjectFS) CreateDirectory(rel string) error {
	full := p.Path(rel)

	if info, err := p.fs.Stat(full); err == nil && info.IsDir() {
		p.logger.Debug("directory exists", log.Path(full))
		return nil
	}

	if err := p.fs.MkdirAll(full, DirMode); err != nil {
		return errors.Build(errors.CodeDirectoryCreationFailed).
			WithOp("projectfs.CreateDirectory").
			WithPath(full).
			WithMsg("failed to create directory").
			WithErr(err).
			Err()
	}

	p.logger.Debug("directory created", log.Path(full))
	return nil
}

// WriteFile writes content to a file, replacing any existing content.
// The parent directory must already exist.
//
// Parameters:
//   - rel: File path relative to root
//   - content: File content
//   - mode: File permissions for newly created files
//
// Returns:
//   - error: CodeFileWriteFailed if the file cannot be written
//
// Concurrency:
//   - Single-threaded per file
//
// Performance:
//   - Single truncating write
func (p *ProjectFS) WriteFile(rel, content string, mode os.FileMode) error {
	full := p.Path(rel)

	if err := util.WriteFile(p.fs, full, []byte(content), mode); err != nil {
		return errors.Build(errors.CodeFileWriteFailed).
			WithOp("projectfs.WriteFile").
			WithPath(full).
			WithMsg("failed to write file").
			WithErr(err).
			Err()
	}

	p.logger.Debug("file written", log.Path(full), log.Int("bytes", len(content)))
	return nil
}

// ReadFile reads a file relative to root.
func (p *ProjectFS) ReadFile(rel string) (string, error) {
	content, err := util.ReadFile(p.fs, p.Path(rel))
	if err != nil {
		return "", errors.Wrapf(errors.CodeInternal, "projectfs.ReadFile", err, "failed to read %s", rel)
	}
	return string(content), nil
}

// FileExists reports whether a regular file exists at rel.
func (p *ProjectFS) FileExists(rel string) (bool, error) {
	info, err := p.fs.Stat(p.Path(rel))
	if err == nil {
		return !info.IsDir(), nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// DirectoryExists reports whether a directory exists at rel.
func (p *ProjectFS) DirectoryExists(rel string) (bool, error) {
	info, err := p.fs.Stat(p.Path(rel))
	if err == nil {
		return info.IsDir(), nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
