package types

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unified error code across the library.
type ErrorCode string

// Load/write error codes
const (
	ErrUnknownFormat  ErrorCode = "UNKNOWN_FORMAT"
	ErrParse          ErrorCode = "PARSE_ERROR"
	ErrFilesystem     ErrorCode = "FILESYSTEM"
	ErrEmptyDirectory ErrorCode = "EMPTY_DIRECTORY"
	ErrShapeMismatch  ErrorCode = "SHAPE_MISMATCH"
)

// Helper error codes
const (
	ErrKeyNotFound     ErrorCode = "KEY_NOT_FOUND"
	ErrInvalidArgument ErrorCode = "INVALID_ARGUMENT"
)

// Error represents a structured error with code, message, and the path it concerns.
type Error struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Path    string    `json:"path,omitempty"`
	Cause   error     `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("[%s] %s", e.Code, e.Message)
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Path)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new Error with the given code and message.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WithCause adds a cause to the error.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithPath sets the path the error refers to.
func (e *Error) WithPath(path string) *Error {
	e.Path = path
	return e
}

// GetErrorCode extracts the error code from an error chain.
func GetErrorCode(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// IsErrorCode reports whether any *Error in err's chain carries code.
func IsErrorCode(err error, code ErrorCode) bool {
	var e *Error
	for err != nil {
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// NewUnknownFormatError reports a path whose extension matches no known format.
func NewUnknownFormatError(path string) *Error {
	return NewError(ErrUnknownFormat, "unknown file type").WithPath(path)
}

// NewParseError wraps a decoder failure for path.
func NewParseError(path string, cause error) *Error {
	return NewError(ErrParse, "parse failed").WithPath(path).WithCause(cause)
}

// NewFilesystemError wraps an I/O failure for path.
func NewFilesystemError(path string, cause error) *Error {
	return NewError(ErrFilesystem, "filesystem error").WithPath(path).WithCause(cause)
}
