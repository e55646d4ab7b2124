package store

import (
	"errors"
	"fmt"
)

// Errors returned by store operations.
var (
	// ErrInvalidShape indicates the layer's top-level layout is not
	// scope tables of option tables.
	ErrInvalidShape = errors.New("invalid configuration shape")

	// ErrTypeMismatch indicates an option's value does not match the
	// shape the caller requested.
	ErrTypeMismatch = errors.New("type mismatch")
)

// ShapeError describes a structurally invalid layer: a non-table root,
// or a top-level entry whose value is not a table. Construction fails;
// there is no partially valid store.
type ShapeError struct {
	// Source identifies the input, usually a file path.
	Source string
	// Scope is the offending top-level key, empty when the root itself
	// is at fault.
	Scope string
	// Expected describes the required shape.
	Expected string
	// Actual is the kind that was found.
	Actual string
	// Value is the offending value in its native textual form.
	Value string
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	if e.Scope == "" {
		return fmt.Sprintf("expected the config file %s to contain %s but contained a %s: %s",
			e.Source, e.Expected, e.Actual, e.Value)
	}
	return fmt.Sprintf("expected the config file %s to contain tables per scope, but scope %s contained a %s: %s",
		e.Source, e.Scope, e.Actual, e.Value)
}

// Is implements error matching against ErrInvalidShape.
func (e *ShapeError) Is(target error) bool {
	return target == ErrInvalidShape
}

// TypeMismatchError reports a present option whose raw value has the
// wrong shape for the accessor that was called. The message names the
// option, the expected shape, and the actual value so a user can fix
// the configuration without reading source code.
//
// A mismatch is terminal for that single lookup only; it does not
// poison the store or affect other options.
type TypeMismatchError struct {
	// Option is the display form of the option, or a qualified
	// sub-option name such as "plugins.add".
	Option string
	// Expected describes the requested shape.
	Expected string
	// Actual is the actual value, rendered in native textual form and
	// prefixed with its kind where that adds information.
	Actual string
}

// Error implements the error interface.
func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("expected %s to be %s but given %s", e.Option, e.Expected, e.Actual)
}

// Is implements error matching against ErrTypeMismatch.
func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}

// ListSyntaxError wraps a list-edit parse failure with the owning
// option's display name.
type ListSyntaxError struct {
	// Option is the display form of the option.
	Option string
	// Err is the underlying parse error.
	Err error
}

// Error implements the error interface.
func (e *ListSyntaxError) Error() string {
	type renderer interface {
		Render(optionName string) string
	}
	if r, ok := e.Err.(renderer); ok {
		return r.Render(e.Option)
	}
	return fmt.Sprintf("problem parsing %s list value: %v", e.Option, e.Err)
}

// Unwrap returns the underlying parse error.
func (e *ListSyntaxError) Unwrap() error {
	return e.Err
}
