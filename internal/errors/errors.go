// Package errors provides the structured error type used across helpdocs,
// with category classification and the two sentinel conditions the tool
// distinguishes: missing things (commands, modules, directories) and help
// text that cannot be read at all.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Category classifies an error by the subsystem that produced it.
type Category string

const (
	CategoryConfig     Category = "config"
	CategoryHost       Category = "host"
	CategoryBundle     Category = "bundle"
	CategoryExtract    Category = "extract"
	CategoryRender     Category = "render"
	CategoryFileSystem Category = "filesystem"
	CategoryWatch      Category = "watch"
)

// Sentinels for errors.Is matching. Both are always wrapped inside an
// *Error carrying category and message.
var (
	// ErrNotFound marks a missing directory, command or module. Fatal to
	// the invocation that raised it; never retried.
	ErrNotFound = stderrors.New("not found")

	// ErrMalformedInput marks help text that could not be decoded. Fatal
	// to a single command's page, not to a whole-module batch.
	ErrMalformedInput = stderrors.New("malformed input")
)

// Error is a categorized error with an optional cause.
type Error struct {
	Category Category
	Message  string
	Cause    error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Category, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Category, e.Message)
}

// Unwrap exposes the cause for errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.Cause }

// New creates a categorized error without a cause.
func New(category Category, message string) *Error {
	return &Error{Category: category, Message: message}
}

// Wrap creates a categorized error wrapping err.
func Wrap(err error, category Category, message string) *Error {
	return &Error{Category: category, Message: message, Cause: err}
}

// NotFound reports a missing entity. kind names what is missing
// ("command", "module", "directory").
func NotFound(category Category, kind, name string) *Error {
	return &Error{
		Category: category,
		Message:  fmt.Sprintf("%s %q", kind, name),
		Cause:    ErrNotFound,
	}
}

// MalformedInput reports help text that could not be read as text.
func MalformedInput(category Category, message string) *Error {
	return &Error{Category: category, Message: message, Cause: ErrMalformedInput}
}

// IsNotFound reports whether err is, or wraps, ErrNotFound.
func IsNotFound(err error) bool { return stderrors.Is(err, ErrNotFound) }

// IsMalformedInput reports whether err is, or wraps, ErrMalformedInput.
func IsMalformedInput(err error) bool { return stderrors.Is(err, ErrMalformedInput) }
