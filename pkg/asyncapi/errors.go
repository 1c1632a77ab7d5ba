// Package asyncapi holds the entities shared by the AsyncAPI 2.x and 3.x document
// models, the reference token helpers and the error taxonomy used by the builders,
// the example synthesizer and the code-first generator.
package asyncapi

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidArgument is returned when a required input is nil or empty.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrConfiguration is returned when a type lacks its declarative marker or
	// declares something the generator cannot honor.
	ErrConfiguration = errors.New("configuration error")

	// ErrDocumentValidation wraps the aggregate of every validator failure of an entity.
	ErrDocumentValidation = errors.New("document validation failed")

	// ErrUnsupportedProtocol is returned when a binding has no matching slot.
	ErrUnsupportedProtocol = errors.New("unsupported protocol")

	// ErrNotFound is returned when a reference or a lookup cannot be satisfied.
	ErrNotFound = errors.New("not found")

	// ErrBuilderSealed is returned when a builder is used after Build.
	ErrBuilderSealed = errors.New("builder already built")
)

// Violation is a single validation failure.
type Violation struct {
	// Path locates the offending field, e.g. "info.title" or "channels.light/measured".
	Path    string
	Message string
}

func (v Violation) String() string {
	if v.Path == "" {
		return v.Message
	}
	return v.Path + ": " + v.Message
}

// ValidationError aggregates every violation reported for one entity.
type ValidationError struct {
	Entity     string
	Violations []Violation
}

// NewValidationError creates a ValidationError for the given entity kind.
func NewValidationError(entity string, violations []Violation) *ValidationError {
	return &ValidationError{
		Entity:     entity,
		Violations: violations,
	}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.String())
	}
	return fmt.Sprintf("%s: %s: %d violation(s): %s",
		e.Entity, ErrDocumentValidation, len(e.Violations), strings.Join(parts, "; "))
}

// Unwrap makes errors.Is(err, ErrDocumentValidation) hold.
func (e *ValidationError) Unwrap() error {
	return ErrDocumentValidation
}

// Violationf builds a violation with a formatted message.
func Violationf(path, format string, args ...interface{}) Violation {
	return Violation{
		Path:    path,
		Message: fmt.Sprintf(format, args...),
	}
}
