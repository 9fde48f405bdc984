// Package errors provides a structured error type with wrapping and metadata
package errors

// Always import the project errors package as perr (platform/errors)

import (
	stderrs "errors"
	"fmt"
	"net/http"
)

// ErrorCode defines supported error codes used across the extractor
// Values are stable for wire compatibility; add sparingly
type ErrorCode uint16

const (
	// ErrorCodeUnknown is for unclassified errors
	ErrorCodeUnknown ErrorCode = iota

	// ErrorCodePanic is for panics recovered by middleware
	ErrorCodePanic

	// ErrorCodeInvalidArgument is for bad command line or query parameters
	ErrorCodeInvalidArgument

	// ErrorCodeValidation is for validation failures (input data)
	ErrorCodeValidation

	// ErrorCodeJSON is for JSON request parsing errors
	ErrorCodeJSON

	// ErrorCodeTooManyRequests is for rate limiting
	ErrorCodeTooManyRequests

	// ErrorCodeFile is for unreadable inputs and unwritable outputs
	ErrorCodeFile

	// ErrorCodeMalformedArchive is for inputs that are not a usable archive:
	// not a zip, corrupted, missing a member, or a member that does not decode
	ErrorCodeMalformedArchive

	// ErrorCodeMissingField is for records lacking a field we cannot do without
	ErrorCodeMissingField

	// ErrorCodeUnsupportedMode is for extraction modes we do not recognize
	ErrorCodeUnsupportedMode

	// ErrorCodeInterrupted is for runs cancelled before they finished
	ErrorCodeInterrupted
)

// String returns a short stable label, used for metrics and logs
func (c ErrorCode) String() string {
	switch c {
	case ErrorCodePanic:
		return "panic"
	case ErrorCodeInvalidArgument:
		return "invalid_argument"
	case ErrorCodeValidation:
		return "validation"
	case ErrorCodeJSON:
		return "json"
	case ErrorCodeTooManyRequests:
		return "too_many_requests"
	case ErrorCodeFile:
		return "file"
	case ErrorCodeMalformedArchive:
		return "malformed_archive"
	case ErrorCodeMissingField:
		return "missing_field"
	case ErrorCodeUnsupportedMode:
		return "unsupported_mode"
	case ErrorCodeInterrupted:
		return "interrupted"
	default:
		return "unknown"
	}
}

// HTTPStatusCode turns an ErrorCode into an http status code
func HTTPStatusCode(c ErrorCode) int {
	switch c {
	case ErrorCodeInvalidArgument, ErrorCodeUnsupportedMode,
		ErrorCodeMalformedArchive, ErrorCodeMissingField:
		return http.StatusUnprocessableEntity
	case ErrorCodeValidation, ErrorCodeJSON:
		return http.StatusBadRequest
	case ErrorCodeTooManyRequests:
		return http.StatusTooManyRequests
	case ErrorCodeInterrupted:
		return http.StatusServiceUnavailable
	case ErrorCodeFile, ErrorCodePanic, ErrorCodeUnknown:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// Process exit codes reported by the command line tool
const (
	ExitSuccess       = 0
	ExitUserInterrupt = 1
	ExitBadArg        = 2
	ExitFileError     = 3
	ExitException     = 4
)

// ExitCodeFor turns an ErrorCode into a process exit code
func ExitCodeFor(c ErrorCode) int {
	switch c {
	case ErrorCodeInterrupted:
		return ExitUserInterrupt
	case ErrorCodeInvalidArgument, ErrorCodeUnsupportedMode, ErrorCodeValidation:
		return ExitBadArg
	case ErrorCodeFile, ErrorCodeMalformedArchive:
		return ExitFileError
	default:
		return ExitException
	}
}

// Error is the structured error type with wrapping and metadata
// msg is human/developer facing; code is machine facing
// field is optional (record or flag name); op is optional operation tag
// orig is the wrapped cause
type Error struct {
	orig  error
	msg   string
	code  ErrorCode
	field string
	op    string
}

// Wire is the JSON-serializable form returned by the API
type Wire struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.orig != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.orig)
	}
	return e.msg
}

// Unwrap returns the wrapped error, if any
func (e *Error) Unwrap() error { return e.orig }

// Code returns the error code
func (e *Error) Code() ErrorCode { return e.code }

// Field returns the offending field, if any
func (e *Error) Field() string { return e.field }

// Op returns the operation label, if set
func (e *Error) Op() string { return e.op }

// ToWire converts an *Error to a Wire payload
func (e *Error) ToWire() Wire { return Wire{Code: e.code, Message: e.msg, Field: e.field} }

// WireFrom converts any error into a Wire payload with best-effort mapping
// If err is nil, returns the zero-value Wire (no error)
func WireFrom(err error) Wire {
	if err == nil {
		return Wire{}
	}
	if e, ok := As(err); ok {
		return e.ToWire()
	}
	return Wire{Code: ErrorCodeUnknown, Message: err.Error()}
}

// Root returns the deepest wrapped cause
func Root(err error) error {
	for err != nil {
		u := stderrs.Unwrap(err)
		if u == nil {
			return err
		}
		err = u
	}
	return nil
}

// CodeOf extracts an ErrorCode from any error, defaulting to Unknown
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// IsCode reports whether err has the given code
func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// HTTPStatus returns the mapped HTTP status for any error
func HTTPStatus(err error) int { return HTTPStatusCode(CodeOf(err)) }

// ExitCode returns the process exit code for any error; nil means success
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	return ExitCodeFor(CodeOf(err))
}

// As unwraps and returns (*Error, true) if err is one of ours
func As(err error) (*Error, bool) {
	var e *Error
	if stderrs.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Mutators (copy-on-write)

// WithField attaches a field to an *Error (copy-on-write). If err isn't *Error, returns err unchanged
func WithField(err error, field string) error {
	if e, ok := As(err); ok {
		c := *e
		c.field = field
		return &c
	}
	return err
}

// WithOp attaches an operation label to an *Error (copy-on-write). If err isn't *Error, returns err unchanged
func WithOp(err error, op string) error {
	if e, ok := As(err); ok {
		c := *e
		c.op = op
		return &c
	}
	return err
}

// Constructors

// New returns a new *Error with the given code and message
func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

// Newf returns a new *Error with code and formatted message
func Newf(code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...)}
}

// Wrap returns a new *Error that wraps orig with code and message
func Wrap(orig error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, orig: orig}
}

// Wrapf returns a new *Error that wraps orig with code and formatted message
func Wrapf(orig error, code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...), orig: orig}
}

// Sugar

// InvalidArgf returns an invalid argument error
func InvalidArgf(format string, a ...any) error { return Newf(ErrorCodeInvalidArgument, format, a...) }

// JSONErrf returns a JSON error
func JSONErrf(format string, a ...any) error { return Newf(ErrorCodeJSON, format, a...) }

// PanicErrf returns a panic error
func PanicErrf(format string, a ...any) error { return Newf(ErrorCodePanic, format, a...) }

// TooManyRequestsf returns a rate limit error
func TooManyRequestsf(format string, a ...any) error {
	return Newf(ErrorCodeTooManyRequests, format, a...)
}

// Filef returns a file error
func Filef(format string, a ...any) error { return Newf(ErrorCodeFile, format, a...) }

// Malformedf returns a malformed archive error
func Malformedf(format string, a ...any) error { return Newf(ErrorCodeMalformedArchive, format, a...) }

// MissingField returns a missing field error with the field attached
func MissingField(field, format string, a ...any) error {
	return &Error{code: ErrorCodeMissingField, msg: fmt.Sprintf(format, a...), field: field}
}

// UnsupportedModef returns an unsupported mode error
func UnsupportedModef(format string, a ...any) error {
	return Newf(ErrorCodeUnsupportedMode, format, a...)
}

// Interrupted wraps a context cancellation cause
func Interrupted(cause error) error {
	return &Error{code: ErrorCodeInterrupted, msg: "interrupted", orig: cause}
}

// Internalf returns a generic internal error
func Internalf(format string, a ...any) error { return Newf(ErrorCodeUnknown, format, a...) }

// HTTP bundles status + wire in one shot (nice for handlers)
func HTTP(err error) (int, Wire) {
	if err == nil {
		return http.StatusOK, Wire{}
	}
	return HTTPStatus(err), WireFrom(err)
}
