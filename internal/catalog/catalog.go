// Package catalog defines the fixed, ordered set of parts a module is made of.
//
// Overview:
//   - Responsibility: Enumerate module parts and map each to its template key and directory
//   - Key Types: Part enum
//   - Concurrency Model: Immutable tables, safe for concurrent use
//   - Error Semantics: No runtime errors; table completeness is checked at compile time
//   - Performance Notes: Array lookups only
//
// Usage:
//
//	for _, part := range catalog.All() {
//		dir := part.Directory()
//		stem := part.FileStem("Login") // "LoginPresenter"
//	}
package catalog

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Part is one architectural layer of a generated module.
type Part int

// Parts in generation order. partCount must stay last.
const (
	DataManager Part = iota
	Interactor
	Presenter
	View
	Wireframe
	Protocols
	partCount
)

// HeaderKey is the template prepended to every generated file.
const HeaderKey = "header"

// Positional tables indexed by Part. Their lengths are pinned to partCount
// below, so adding a Part without a row fails to compile.
var (
	identifiers = [...]string{
		"dataManager",
		"interactor",
		"presenter",
		"view",
		"wireframe",
		"protocols",
	}

	directories = [...]string{
		"DataManager/Local",
		"Interactor",
		"Presenter",
		"View",
		"Wireframe",
		"Protocols",
	}
)

var (
	_ = [1]struct{}{}[len(identifiers)-int(partCount)]
	_ = [1]struct{}{}[len(directories)-int(partCount)]
)

// All returns every part in generation order. The returned slice is a copy.
func All() []Part {
	parts := make([]Part, 0, partCount)
	for p := Part(0); p < partCount; p++ {
		parts = append(parts, p)
	}
	return parts
}

// Len returns the number of parts in the catalog.
func Len() int {
	return int(partCount)
}

// Valid reports whether p is a catalog member.
func (p Part) Valid() bool {
	return p >= 0 && p < partCount
}

// Identifier returns the stable tag of the part, e.g. "dataManager".
func (p Part) Identifier() string {
	if !p.Valid() {
		return ""
	}
	return identifiers[p]
}

// String implements fmt.Stringer.
func (p Part) String() string {
	if !p.Valid() {
		return "Part(" + strconv.Itoa(int(p)) + ")"
	}
	return identifiers[p]
}

// TemplateKey returns the template lookup key for the part body.
func (p Part) TemplateKey() string {
	return strings.ToLower(p.Identifier())
}

// Directory returns the output sub-path of the part, relative to the module
// directory, using forward slashes.
func (p Part) Directory() string {
	if !p.Valid() {
		return ""
	}
	return directories[p]
}

// Name returns the capitalized identifier, e.g. "DataManager".
func (p Part) Name() string {
	return Capitalize(p.Identifier())
}

// FileStem returns the generated file name without extension:
// module + capitalized identifier, e.g. "LoginDataManager".
func (p Part) FileStem(module string) string {
	return module + p.Name()
}

// Parse resolves an identifier or template key (case-insensitive) to a Part.
func Parse(s string) (Part, bool) {
	for p := Part(0); p < partCount; p++ {
		if strings.EqualFold(identifiers[p], s) {
			return p, true
		}
	}
	return 0, false
}

// Capitalize upper-cases the first letter of s and leaves the rest unchanged.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	caser := cases.Title(language.Und, cases.NoLower)
	return caser.String(s)
}
