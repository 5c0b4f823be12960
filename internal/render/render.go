// Package render provides literal token substitution for module templates.
//
// Overview:
//   - Responsibility: Replace {{ name }} placeholders with token values
//   - Key Types: Renderer, Tokens
//   - Concurrency Model: Renderer is immutable and safe for concurrent use
//   - Error Semantics: Passthrough by default, CodeUnresolvedToken in strict mode
//   - Performance Notes: One regex scan per template, values are never re-scanned
//
// Template format:
//
// A placeholder is "{{", optional blanks, a token name matching
// [A-Za-z_][A-Za-z0-9_]*, optional blanks, "}}". Shipped templates use the
// canonical "{{ name }}" form. There is no escaping: a value that itself
// contains "{{ x }}" is inserted verbatim and is not expanded again.
//
// Usage:
//
//	r := render.NewRenderer()
//	out, err := r.Render("// {{ filename }}.swift", render.Tokens{"filename": "LoginView"})
package render

import (
	"regexp"
	"slices"
	"strings"

	"go.eggybyte.com/bulone/core/errors"
)

// Recognized token names.
const (
	TokenProject   = "project"
	TokenAuthor    = "author"
	TokenDate      = "date"
	TokenYear      = "year"
	TokenCopyright = "copyright"
	TokenModule    = "module"
	TokenFilename  = "filename"
)

// Known returns every recognized token name in a stable order.
func Known() []string {
	return []string{
		TokenProject,
		TokenAuthor,
		TokenDate,
		TokenYear,
		TokenCopyright,
		TokenModule,
		TokenFilename,
	}
}

// IsKnown reports whether name is a recognized token.
func IsKnown(name string) bool {
	return slices.Contains(Known(), name)
}

// Tokens maps token names to replacement values.
type Tokens map[string]string

// With returns a copy of t with key set to value.
func (t Tokens) With(key, value string) Tokens {
	out := make(Tokens, len(t)+1)
	for k, v := range t {
		out[k] = v
	}
	out[key] = value
	return out
}

var placeholderRegex = regexp.MustCompile(`\{\{[ \t]*([A-Za-z_][A-Za-z0-9_]*)[ \t]*\}\}`)

// Renderer substitutes tokens into template text.
//
// Parameters:
//   - strict: Fail on placeholders with no token value
//
// Concurrency:
//   - Safe for concurrent use
type Renderer struct {
	strict bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithStrict makes unresolved placeholders an error instead of passing them
// through unchanged.
func WithStrict(strict bool) Option {
	return func(r *Renderer) {
		r.strict = strict
	}
}

// NewRenderer creates a renderer.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Strict reports whether the renderer rejects unresolved placeholders.
func (r *Renderer) Strict() bool {
	return r.strict
}

// Render replaces every placeholder in tmpl whose name has a value in tokens.
//
// Parameters:
//   - tmpl: Template text
//   - tokens: Token values
//
// Returns:
//   - string: Rendered text
//   - error: CodeUnresolvedToken in strict mode when placeholders remain
//
// Performance:
//   - Single pass; replacement values are copied, never scanned
func (r *Renderer) Render(tmpl string, tokens Tokens) (string, error) {
	var missing []string
	out := placeholderRegex.ReplaceAllStringFunc(tmpl, func(match string) string {
		name := placeholderRegex.FindStringSubmatch(match)[1]
		if v, ok := tokens[name]; ok {
			return v
		}
		if !slices.Contains(missing, name) {
			missing = append(missing, name)
		}
		return match
	})

	if r.strict && len(missing) > 0 {
		return "", errors.Build(errors.CodeUnresolvedToken).
			WithOp("render.Render").
			WithMsgf("unresolved placeholders: %s", strings.Join(missing, ", ")).
			Err()
	}
	return out, nil
}

// Placeholders returns the distinct placeholder names in tmpl in order of
// first appearance.
func Placeholders(tmpl string) []string {
	var names []string
	for _, m := range placeholderRegex.FindAllStringSubmatch(tmpl, -1) {
		if !slices.Contains(names, m[1]) {
			names = append(names, m[1])
		}
	}
	return names
}

// Unresolved returns the placeholder names in tmpl that tokens does not cover.
func Unresolved(tmpl string, tokens Tokens) []string {
	var names []string
	for _, name := range Placeholders(tmpl) {
		if _, ok := tokens[name]; !ok {
			names = append(names, name)
		}
	}
	return names
}
