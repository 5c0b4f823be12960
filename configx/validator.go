package configx

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidatorOption configures the validator.
type ValidatorOption func(*validator.Validate)

// NewValidator creates a new validator instance.
func NewValidator(opts ...ValidatorOption) *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// ValidateStruct validates a struct using validator tags.
// Field errors are flattened into one message ("Field: rule" pairs).
func ValidateStruct(v *validator.Validate, target any) error {
	if v == nil {
		v = NewValidator()
	}

	err := v.Struct(target)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("validation failed: %w", err)
	}
	return &ValidationError{Fields: fieldErrs}
}

// ValidationError lists every failed field.
type ValidationError struct {
	Fields validator.ValidationErrors
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, fe := range e.Fields {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s: %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
		}
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Unwrap returns the underlying validator errors.
func (e *ValidationError) Unwrap() error {
	return e.Fields
}

// Failed reports whether the named struct field failed validation.
func (e *ValidationError) Failed(field string) bool {
	for _, fe := range e.Fields {
		if fe.Field() == field {
			return true
		}
	}
	return false
}
