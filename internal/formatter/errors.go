package formatter

import (
	"errors"
	"fmt"
)

// Sentinel kinds carried by FormatError.
var (
	ErrParse   = errors.New("template parse error")
	ErrVersion = errors.New("version format error")
)

// FormatError describes a template or version string that could not be handled.
type FormatError struct {
	Kind   error
	Input  string
	Offset int
	Reason string
}

// Error implements the error interface.
func (e *FormatError) Error() string {
	if e.Kind == ErrParse {
		return fmt.Sprintf("%v at offset %d in %q: %s", e.Kind, e.Offset, e.Input, e.Reason)
	}
	return fmt.Sprintf("%v for %q: %s", e.Kind, e.Input, e.Reason)
}

// Unwrap exposes the kind so callers can use errors.Is.
func (e *FormatError) Unwrap() error {
	return e.Kind
}

func parseError(input string, offset int, format string, args ...any) *FormatError {
	return &FormatError{Kind: ErrParse, Input: input, Offset: offset, Reason: fmt.Sprintf(format, args...)}
}

func versionError(input, format string, args ...any) *FormatError {
	return &FormatError{Kind: ErrVersion, Input: input, Reason: fmt.Sprintf(format, args...)}
}
