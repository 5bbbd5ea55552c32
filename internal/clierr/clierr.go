// Package clierr defines structured error types for malt commands.
// Errors carry a machine-readable code, a human-readable message,
// and optional details for scripted front ends.
package clierr

import (
	"errors"
	"fmt"
	"strconv"
)

// Error code constants. Uppercase and underscore-separated; scripts match on them.
const (
	// Malformed commands.
	EmptyCommand        = "EMPTY_COMMAND"
	UnrecognizedCommand = "UNRECOGNIZED_COMMAND"
	MissingArgument     = "MISSING_ARGUMENT"
	MissingFlagValue    = "MISSING_FLAG_VALUE"

	// Index problems for mark, unmark and delete.
	InvalidIndex     = "INVALID_INDEX"
	IndexOutOfRange  = "INDEX_OUT_OF_RANGE"
	InvalidDate      = "INVALID_DATE"
	CorruptedLine    = "CORRUPTED_LINE"
	StorageError     = "STORAGE_ERROR"
	InvalidInput     = "INVALID_INPUT"
	StoreNotFound    = "STORE_NOT_FOUND"
	StoreExists      = "STORE_ALREADY_EXISTS"
	InvalidConfigKey = "INVALID_CONFIG_KEY"
	InternalError    = "INTERNAL_ERROR"
)

// Error represents a structured error with a machine-readable code.
type Error struct {
	Code    string
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string { return e.Message }

// New creates an Error with the given code and message.
func New(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an Error with a formatted message.
func Newf(code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// WithDetails returns the error with the given details map attached.
func (e *Error) WithDetails(details map[string]any) *Error {
	e.Details = details
	return e
}

// ExitCode returns 2 for InternalError, 1 for all others.
func (e *Error) ExitCode() int {
	if e.Code == InternalError {
		return 2 //nolint:mnd // exit code 2 for internal errors
	}
	return 1
}

// CodeOf returns the code of the first *Error in err's chain, or
// InternalError when err carries no code. A nil err yields "".
func CodeOf(err error) string {
	if err == nil {
		return ""
	}
	var cliErr *Error
	if errors.As(err, &cliErr) {
		return cliErr.Code
	}
	return InternalError
}

// Is reports whether err carries the given code.
func Is(err error, code string) bool {
	return err != nil && CodeOf(err) == code
}

// SilentError signals an exit code without additional output.
// Used when the response has already been written to stdout.
type SilentError struct {
	Code int
}

// Error implements the error interface.
func (e *SilentError) Error() string { return "exit " + strconv.Itoa(e.Code) }
