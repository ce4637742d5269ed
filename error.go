package cardsnap

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EINTERNAL = "internal"
	EINVALID  = "invalid"
	ENOTFOUND = "not_found"

	// ETOOMANYFILES is returned when a batch exceeds MaxSources.
	ETOOMANYFILES = "too_many_files"
	// EEMPTYRESULT is returned when no card elements were found.
	EEMPTYRESULT = "empty_result"
	// ESANDBOX is returned when the rendering surface is unavailable.
	ESANDBOX = "sandbox_unavailable"
	// ECAPTURE is returned when a single card could not be rendered or captured.
	ECAPTURE = "capture_failure"
	// EEMPTYBUNDLE is returned when no captured images exist to archive.
	EEMPTYBUNDLE = "empty_bundle"
)

// Error represents an application-specific error. Its Message is meant to be
// shown to the user as-is.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("cardsnap error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error.".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
