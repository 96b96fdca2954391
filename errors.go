package termsift

import (
	"errors"
	"fmt"
)

// Application error codes. These map domain failures onto a small, stable
// vocabulary so callers (CLI, services) can branch without string matching.
const (
	ECONFLICT = "conflict"  // action conflicts with existing state
	EINTERNAL = "internal"  // unexpected internal failure
	EINVALID  = "invalid"   // validation failed
	ENOTFOUND = "not_found" // entity does not exist
)

// Error is the application error type. Code classifies the failure for
// machine handling; Message is human-readable.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("termsift error: code=%s message=%s", e.Code, e.Message)
}

// Errorf constructs an *Error with the given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps err and returns its code, EINTERNAL for non-application
// errors, or the empty string for nil.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps err and returns its message, a generic message for
// non-application errors, or the empty string for nil.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}
