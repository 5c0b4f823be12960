// Package errors provides structured error handling for module generation.
//
// Overview:
//   - Responsibility: Define generation error codes and attributable error values
//   - Key Types: Code type for error classification, E struct for structured errors
//   - Concurrency Model: All functions are safe for concurrent use
//   - Error Semantics: Compatible with standard library error wrapping
//   - Performance Notes: Errors are built once per failed run, no pooling
//
// Usage:
//
//	err := errors.Build(errors.CodeTemplateNotFound).WithTemplate("header").Err()
//	code := errors.CodeOf(err)
//	part := errors.PartOf(err)
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code represents an error classification code.
type Code string

// Generation error codes.
const (
	CodeTemplateNotFound        Code = "TEMPLATE_NOT_FOUND"
	CodeDirectoryCreationFailed Code = "DIRECTORY_CREATION_FAILED"
	CodeFileWriteFailed         Code = "FILE_WRITE_FAILED"
	CodeUnresolvedToken         Code = "UNRESOLVED_TOKEN"
	CodeInvalidArgument         Code = "INVALID_ARGUMENT"
	CodeInternal                Code = "INTERNAL"
)

// E represents a structured error attributed to a part, template or path.
type E struct {
	Code     Code   // Error classification code
	Op       string // Operation that failed
	Part     string // Catalog part identifier, if any
	Template string // Template key, if any
	Path     string // Filesystem path, if any
	Msg      string // Human-readable message
	Err      error  // Underlying error (may be nil)
}

// Error implements the error interface.
//
// The format is "CODE: [part P: ][template "T": ][path: ]msg[: cause]".
func (e *E) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Code))
	b.WriteString(":")
	if e.Part != "" {
		fmt.Fprintf(&b, " part %s:", e.Part)
	}
	if e.Template != "" {
		fmt.Fprintf(&b, " template %q:", e.Template)
	}
	if e.Path != "" {
		fmt.Fprintf(&b, " %s:", e.Path)
	}
	if e.Msg != "" {
		b.WriteString(" ")
		b.WriteString(e.Msg)
	}
	if e.Err != nil {
		if e.Msg != "" {
			b.WriteString(":")
		}
		fmt.Fprintf(&b, " %v", e.Err)
	}
	return strings.TrimSuffix(b.String(), ":")
}

// Unwrap returns the underlying error for error unwrapping.
func (e *E) Unwrap() error {
	return e.Err
}

// New creates a new structured error with the given code and message.
func New(code Code, msg string) error {
	return &E{
		Code: code,
		Msg:  msg,
	}
}

// Wrap creates a new structured error wrapping an existing error.
// The operation name helps identify where the error occurred.
func Wrap(code Code, op string, err error) error {
	return &E{
		Code: code,
		Op:   op,
		Err:  err,
	}
}

// Wrapf creates a new structured error wrapping an existing error with formatted message.
func Wrapf(code Code, op string, err error, format string, args ...any) error {
	return &E{
		Code: code,
		Op:   op,
		Err:  err,
		Msg:  fmt.Sprintf(format, args...),
	}
}

// CodeOf extracts the error code from an error.
// Returns empty string if the error doesn't have a code.
func CodeOf(err error) Code {
	var e *E
	if err != nil && errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// PartOf returns the part identifier the error is attributed to, or "".
func PartOf(err error) string {
	var e *E
	if err != nil && errors.As(err, &e) {
		return e.Part
	}
	return ""
}

// IsCode checks if an error has a specific code.
func IsCode(err error, code Code) bool {
	return CodeOf(err) == code
}

// As is a convenience wrapper around the standard library's errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// Is is a convenience wrapper around the standard library's errors.Is.
func Is(err error, target error) bool {
	return errors.Is(err, target)
}

// Attribute returns a copy of err annotated with the given part.
// Errors outside the taxonomy are wrapped as CodeInternal.
func Attribute(err error, part string) error {
	if err == nil {
		return nil
	}
	var e *E
	if !errors.As(err, &e) {
		return &E{Code: CodeInternal, Part: part, Err: err}
	}
	cp := *e
	if cp.Part == "" {
		cp.Part = part
	}
	return &cp
}

// Builder provides a fluent interface for constructing errors.
type Builder struct {
	e E
}

// Build constructs a new error builder for the given code.
func Build(code Code) *Builder {
	return &Builder{e: E{Code: code}}
}

// WithOp sets the operation that failed.
func (b *Builder) WithOp(op string) *Builder {
	b.e.Op = op
	return b
}

// WithPart attributes the error to a catalog part.
func (b *Builder) WithPart(part string) *Builder {
	b.e.Part = part
	return b
}

// WithTemplate attributes the error to a template key.
func (b *Builder) WithTemplate(key string) *Builder {
	b.e.Template = key
	return b
}

// WithPath attributes the error to a filesystem path.
func (b *Builder) WithPath(path string) *Builder {
	b.e.Path = path
	return b
}

// WithErr wraps an underlying error.
func (b *Builder) WithErr(err error) *Builder {
	b.e.Err = err
	return b
}

// WithMsg sets a human-readable message.
func (b *Builder) WithMsg(msg string) *Builder {
	b.e.Msg = msg
	return b
}

// WithMsgf sets a formatted human-readable message.
func (b *Builder) WithMsgf(format string, args ...any) *Builder {
	b.e.Msg = fmt.Sprintf(format, args...)
	return b
}

// Err builds and returns the error.
func (b *Builder) Err() error {
	e := b.e
	return &e
}
