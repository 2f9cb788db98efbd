package boo

import (
	"errors"
	"fmt"
)

// ErrorCode classifies a failure.
type ErrorCode string

const (
	// CodeInvalidVersion marks a malformed or non-positive version value.
	CodeInvalidVersion ErrorCode = "INVALID_VERSION"
	// CodeSearchNotFound marks content without a version declaration, or a
	// plugin directory without a recognizable main file.
	CodeSearchNotFound ErrorCode = "SEARCH_NOT_FOUND"
	// CodeIO marks a read or write failure on a main file.
	CodeIO ErrorCode = "IO_FAILURE"
	// CodeInvalidDirectory marks a path that was expected to be a directory.
	CodeInvalidDirectory ErrorCode = "INVALID_DIRECTORY"
	// CodeCommand marks a failed external command (git, zip).
	CodeCommand ErrorCode = "COMMAND_FAILED"
)

// Sentinels for errors.Is. They match any *Error carrying the same code.
var (
	ErrInvalidVersion   = &Error{Code: CodeInvalidVersion}
	ErrSearchNotFound   = &Error{Code: CodeSearchNotFound}
	ErrIO               = &Error{Code: CodeIO}
	ErrInvalidDirectory = &Error{Code: CodeInvalidDirectory}
	ErrCommand          = &Error{Code: CodeCommand}
)

// Error is the single user-facing error type of boo. Plugin is empty for
// failures that are not tied to a plugin (codec, locator, directory
// listing).
type Error struct {
	Code    ErrorCode
	Plugin  string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Code)
	}
	if e.Plugin != "" {
		msg = fmt.Sprintf("%s: %s", e.Plugin, msg)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

func newError(code ErrorCode, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func wrapError(code ErrorCode, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// CodeOf returns the code of the first *Error in err's chain, or "" when
// there is none.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// pluginError re-signals err as an *Error bound to plugin. The code of an
// underlying *Error is kept; anything else is classified as fallback.
func pluginError(plugin string, fallback ErrorCode, err error, format string, args ...any) *Error {
	code := CodeOf(err)
	if code == "" {
		code = fallback
	}
	return &Error{
		Code:    code,
		Plugin:  plugin,
		Message: fmt.Sprintf(format, args...),
		Cause:   err,
	}
}
