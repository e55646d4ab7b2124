package loader

import (
	"errors"
	"fmt"
)

// Errors returned by loading operations.
var (
	// ErrRead indicates the underlying input could not be read.
	ErrRead = errors.New("config read failed")

	// ErrParse indicates the input text is not valid in its format.
	ErrParse = errors.New("config parse failed")
)

// ReadError represents a failure to read a configuration source.
type ReadError struct {
	// Path is the source that could not be read.
	Path string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read config file %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ReadError) Unwrap() error {
	return e.Err
}

// Is implements error matching against ErrRead.
func (e *ReadError) Is(target error) bool {
	return target == ErrRead
}

// ParseError represents an error while parsing a configuration source.
type ParseError struct {
	// Path is the source that failed to parse.
	Path string
	// Line is the line number where the error occurred (if available).
	Line int
	// Column is the column number where the error occurred (if available).
	Column int
	// Message describes the parse error.
	Message string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("parse error in %s at line %d, column %d: %s", e.Path, e.Line, e.Column, e.Message)
	}
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is implements error matching against ErrParse.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}
