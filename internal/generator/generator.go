// Package generator materializes a module from templates.
//
// Overview:
//   - Responsibility: Render every catalog part and write it under outputPath/moduleName
//   - Key Types: Generator, Spec, File, Result
//   - Concurrency Model: One sequential pass on the calling goroutine
//   - Error Semantics: Fail-fast, attributed to the part; no rollback
//   - Performance Notes: Templates are loaded per part; directories created once per part
//
// A run computes the shared tokens once, then for each part in catalog order
// loads the header and body templates, renders both with the part's filename
// token, creates the part directory and writes the file. The first failure
// aborts the run. Files written for earlier parts stay on disk.
//
// Usage:
//
//	gen := generator.New(templates.Embedded())
//	res, err := gen.Generate(spec)
package generator

import (
	"path"
	"strings"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"

	"go.eggybyte.com/bulone/core/errors"
	"go.eggybyte.com/bulone/core/log"
	"go.eggybyte.com/bulone/internal/catalog"
	"go.eggybyte.com/bulone/internal/projectfs"
	"go.eggybyte.com/bulone/internal/render"
	"go.eggybyte.com/bulone/internal/templates"
)

// Defaults.
const (
	DefaultExtension  = "swift"
	DefaultDateLayout = "1/2/06"
	yearLayout        = "2006"
	separator         = "\n"
)

// Generator renders and writes modules.
//
// Parameters:
//   - store: Template source for header and part bodies
//   - fs: Output filesystem
//   - now: Clock used for the date and year tokens
//
// Concurrency:
//   - Holds no per-run state; concurrent runs must target different trees
type Generator struct {
	store      templates.Store
	fs         billy.Filesystem
	now        func() time.Time
	ext        string
	dateLayout string
	renderer   *render.Renderer
	logger     log.Logger
	parts      []catalog.Part
}

// Option configures a Generator.
type Option func(*Generator)

// WithFilesystem sets the output filesystem. The default is the OS filesystem.
func WithFilesystem(fs billy.Filesystem) Option {
	return func(g *Generator) {
		if fs != nil {
			g.fs = fs
		}
	}
}

// WithClock sets the clock used for the date and year tokens.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// WithExtension sets the extension of generated files, with or without the
// leading dot.
func WithExtension(ext string) Option {
	return func(g *Generator) {
		if ext = strings.TrimPrefix(strings.TrimSpace(ext), "."); ext != "" {
			g.ext = ext
		}
	}
}

// WithDateLayout sets the time layout of the date token.
func WithDateLayout(layout string) Option {
	return func(g *Generator) {
		if layout != "" {
			g.dateLayout = layout
		}
	}
}

// WithStrict makes unresolved placeholders fail the run.
func WithStrict(strict bool) Option {
	return func(g *Generator) {
		g.renderer = render.NewRenderer(render.WithStrict(strict))
	}
}

// WithLogger sets the logger.
func WithLogger(logger log.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithParts restricts generation to a subset of the catalog. Order is kept as
// given.
func WithParts(parts []catalog.Part) Option {
	return func(g *Generator) {
		if len(parts) > 0 {
			g.parts = append([]catalog.Part(nil), parts...)
		}
	}
}

// New creates a Generator reading templates from store.
func New(store templates.Store, opts ...Option) *Generator {
	g := &Generator{
		store:      store,
		fs:         osfs.New("/"),
		now:        time.Now,
		ext:        DefaultExtension,
		dateLayout: DefaultDateLayout,
		renderer:   render.NewRenderer(),
		logger:     log.Nop(),
		parts:      catalog.All(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Extension returns the extension of generated files, without the dot.
func (g *Generator) Extension() string {
	return g.ext
}

// Tokens computes the token values shared by every part of a run.
//
// Parameters:
//   - spec: Module specification
//
// Returns:
//   - render.Tokens: project, author, date, year, copyright and module
func (g *Generator) Tokens(spec Spec) render.Tokens {
	now := g.now()
	return render.Tokens{
		render.TokenProject:   spec.ProjectName,
		render.TokenAuthor:    spec.Author,
		render.TokenDate:      now.Format(g.dateLayout),
		render.TokenYear:      now.Format(yearLayout),
		render.TokenCopyright: spec.Copyright,
		render.TokenModule:    spec.ModuleName,
	}
}

// Plan renders every part without touching the output filesystem.
//
// Parameters:
//   - spec: Module specification
//
// Returns:
//   - []File: Rendered files in generation order
//   - error: First template or render failure, attributed to its part
func (g *Generator) Plan(spec Spec) ([]File, error) {
	if err := g.checkParts(); err != nil {
		return nil, err
	}

	root := g.fs.Join(spec.OutputPath, spec.ModuleName)
	shared := g.Tokens(spec)

	files := make([]File, 0, len(g.parts))
	for _, part := range g.parts {
		file, err := g.renderPart(part, spec, shared, root)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	return files, nil
}

// Generate renders and writes every part.
//
// Parameters:
//   - spec: Module specification
//
// Returns:
//   - *Result: Written files, on success only
//   - error: CodeTemplateNotFound, CodeUnresolvedToken,
//     CodeDirectoryCreationFailed or CodeFileWriteFailed, attributed to the
//     part that failed
//
// Concurrency:
//   - Blocking; runs on the calling goroutine
//
// Performance:
//   - One header load, one body load and one write per part
func (g *Generator) Generate(spec Spec) (*Result, error) {
	if err := g.checkParts(); err != nil {
		return nil, err
	}

	start := g.now()
	root := g.fs.Join(spec.OutputPath, spec.ModuleName)
	shared := g.Tokens(spec)
	pfs := projectfs.New(g.fs, root).WithLogger(g.logger)
	logger := g.logger.With(log.Str("module", spec.ModuleName))

	logger.Info("generating module", log.Path(root), log.Int("parts", len(g.parts)))

	res := &Result{Module: spec.ModuleName, Root: root}
	for _, part := range g.parts {
		file, err := g.renderPart(part, spec, shared, root)
		if err != nil {
			logger.Error(err, "render failed", log.Part(part.Identifier()))
			return nil, err
		}

		if err := pfs.CreateDirectory(part.Directory()); err != nil {
			err = errors.Attribute(err, part.Identifier())
			logger.Error(err, "create directory failed", log.Part(part.Identifier()))
			return nil, err
		}
		if err := pfs.WriteFile(file.Path, file.Content, projectfs.FileMode); err != nil {
			err = errors.Attribute(err, part.Identifier())
			logger.Error(err, "write failed", log.Part(part.Identifier()))
			return nil, err
		}

		logger.Debug("part generated", log.Part(part.Identifier()), log.Path(file.AbsPath))
		res.Files = append(res.Files, file)
	}

	logger.Info("module generated", log.Int("files", len(res.Files)), log.Dur("elapsed", g.now().Sub(start)))
	return res, nil
}

// renderPart loads and renders the header and body of one part.
func (g *Generator) renderPart(part catalog.Part, spec Spec, shared render.Tokens, root string) (File, error) {
	filename := part.FileStem(spec.ModuleName)
	tokens := shared.With(render.TokenFilename, filename)

	header, err := g.load(part, catalog.HeaderKey, tokens)
	if err != nil {
		return File{}, err
	}
	body, err := g.load(part, part.TemplateKey(), tokens)
	if err != nil {
		return File{}, err
	}

	rel := path.Join(part.Directory(), filename+"."+g.ext)
	return File{
		Part:    part,
		Path:    rel,
		AbsPath: g.fs.Join(root, rel),
		Content: header + separator + body,
	}, nil
}

// load fetches and renders one template on behalf of part.
func (g *Generator) load(part catalog.Part, key string, tokens render.Tokens) (string, error) {
	text, err := g.store.Load(key)
	if err != nil {
		return "", errors.Attribute(err, part.Identifier())
	}

	out, err := g.renderer.Render(text, tokens)
	if err != nil {
		var e *errors.E
		if errors.As(err, &e) && e.Template == "" {
			cp := *e
			cp.Template = key
			err = &cp
		}
		return "", errors.Attribute(err, part.Identifier())
	}
	return out, nil
}

// checkParts rejects invalid or repeated parts, which would break the
// one-file-per-part layout.
func (g *Generator) checkParts() error {
	seen := make(map[catalog.Part]bool, len(g.parts))
	for _, p := range g.parts {
		if !p.Valid() || seen[p] {
			return errors.Build(errors.CodeInvalidArgument).
				WithOp("generator.checkParts").
				WithPart(p.String()).
				WithMsg("invalid or duplicate part").
				Err()
		}
		seen[p] = true
	}
	return nil
}
