// Package errors is the project error type: a wire code, a client message,
// and optionally the offending field, an operation label and the cause
//
// import it as perr
package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
)

// ErrorCode is the machine facing class of an error
// values go over the wire, append only
type ErrorCode uint16

const (
	ErrorCodeUnknown ErrorCode = iota
	ErrorCodePanic
	ErrorCodeUnavailable // dependency down or still starting, a retry may succeed
	ErrorCodeTooManyRequests
	ErrorCodeConflict
	ErrorCodeUnauthorized // missing or rejected bearer token
	ErrorCodeForbidden
	ErrorCodeInvalidArgument // well formed input the operation cannot accept
	ErrorCodeValidation      // missing or malformed request data
	ErrorCodeJSON
	ErrorCodeNotFound
	ErrorCodeDuplicateKey
	ErrorCodeDB
	ErrorCodePayloadTooLarge
	ErrorCodeUnsupportedMedia // bytes that are not a decodable image
)

var codeInfo = [...]struct {
	name   string
	status int
}{
	ErrorCodeUnknown:          {"unknown", http.StatusInternalServerError},
	ErrorCodePanic:            {"panic", http.StatusInternalServerError},
	ErrorCodeUnavailable:      {"unavailable", http.StatusServiceUnavailable},
	ErrorCodeTooManyRequests:  {"too_many_requests", http.StatusTooManyRequests},
	ErrorCodeConflict:         {"conflict", http.StatusConflict},
	ErrorCodeUnauthorized:     {"unauthorized", http.StatusUnauthorized},
	ErrorCodeForbidden:        {"forbidden", http.StatusForbidden},
	ErrorCodeInvalidArgument:  {"invalid_argument", http.StatusUnprocessableEntity},
	ErrorCodeValidation:       {"validation", http.StatusBadRequest},
	ErrorCodeJSON:             {"json", http.StatusBadRequest},
	ErrorCodeNotFound:         {"not_found", http.StatusNotFound},
	ErrorCodeDuplicateKey:     {"duplicate_key", http.StatusConflict},
	ErrorCodeDB:               {"db", http.StatusInternalServerError},
	ErrorCodePayloadTooLarge:  {"payload_too_large", http.StatusRequestEntityTooLarge},
	ErrorCodeUnsupportedMedia: {"unsupported_media", http.StatusUnsupportedMediaType},
}

// String names the code for logs
func (c ErrorCode) String() string {
	if int(c) < len(codeInfo) {
		return codeInfo[c].name
	}
	return fmt.Sprintf("code(%d)", uint16(c))
}

// HTTPStatusCode maps an ErrorCode to the status the api answers with, unknown codes are 500
func HTTPStatusCode(c ErrorCode) int {
	if int(c) < len(codeInfo) {
		return codeInfo[c].status
	}
	return http.StatusInternalServerError
}

// ErrNotFound is returned by single row helpers on an empty result
var ErrNotFound = New(ErrorCodeNotFound, "not found")

// Error is the concrete project error, build it with New, Newf, Wrap or Wrapf
type Error struct {
	code  ErrorCode
	msg   string
	field string
	op    string
	cause error
}

// Wire is the error payload inside a response envelope
// cause and op stay server side
type Wire struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	s := e.msg
	if e.op != "" {
		s = e.op + ": " + s
	}
	if e.cause != nil {
		s += ": " + e.cause.Error()
	}
	return s
}

func (e *Error) Unwrap() error { return e.cause }

// Code is the classification
func (e *Error) Code() ErrorCode { return e.code }

// Field names the request field at fault, empty when none
func (e *Error) Field() string { return e.field }

// Op is the failing operation, e.g. nutrition.upsert
func (e *Error) Op() string { return e.op }

// As returns the outermost *Error in the chain
func As(err error) (*Error, bool) {
	var e *Error
	if stderrs.As(err, &e) {
		return e, true
	}
	return nil, false
}

// WireFrom converts any error into a Wire payload, foreign errors become Unknown and nil the zero Wire
func WireFrom(err error) Wire {
	if err == nil {
		return Wire{}
	}
	if e, ok := As(err); ok {
		return Wire{Code: e.code, Message: e.msg, Field: e.field}
	}
	return Wire{Code: ErrorCodeUnknown, Message: err.Error()}
}

// CodeOf extracts the code from any error, foreign and nil errors are Unknown
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// IsCode compares the code found anywhere in err's chain
func IsCode(err error, code ErrorCode) bool { return CodeOf(err) == code }

// HTTPStatus is the status an error maps to, 500 for foreign errors
func HTTPStatus(err error) int { return HTTPStatusCode(CodeOf(err)) }

// with returns a modified copy of the outermost *Error, foreign errors pass through unchanged
func with(err error, set func(*Error)) error {
	e, ok := As(err)
	if !ok {
		return err
	}
	c := *e
	set(&c)
	return &c
}

// WithField names the offending request field
func WithField(err error, field string) error {
	return with(err, func(e *Error) { e.field = field })
}

// WithOp labels err with the operation that failed
func WithOp(err error, op string) error {
	return with(err, func(e *Error) { e.op = op })
}

// New returns an *Error with code and message
func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

// Newf is New with a formatted message
func Newf(code ErrorCode, format string, a ...any) error { return New(code, fmt.Sprintf(format, a...)) }

// Wrap returns an *Error with code and message whose cause is orig
func Wrap(orig error, code ErrorCode, msg string) error {
	return &Error{code: code, msg: msg, cause: orig}
}

// Wrapf is Wrap with a formatted message
func Wrapf(orig error, code ErrorCode, format string, a ...any) error {
	return Wrap(orig, code, fmt.Sprintf(format, a...))
}

// shorthand constructors for the codes services raise directly

func NotFoundf(format string, a ...any) error     { return Newf(ErrorCodeNotFound, format, a...) }
func InvalidArgf(format string, a ...any) error   { return Newf(ErrorCodeInvalidArgument, format, a...) }
func JSONErrf(format string, a ...any) error      { return Newf(ErrorCodeJSON, format, a...) }
func PanicErrf(format string, a ...any) error     { return Newf(ErrorCodePanic, format, a...) }
func Unauthorizedf(format string, a ...any) error { return Newf(ErrorCodeUnauthorized, format, a...) }
func Unavailablef(format string, a ...any) error  { return Newf(ErrorCodeUnavailable, format, a...) }
func TooLargef(format string, a ...any) error     { return Newf(ErrorCodePayloadTooLarge, format, a...) }

func UnsupportedMediaf(format string, a ...any) error {
	return Newf(ErrorCodeUnsupportedMedia, format, a...)
}
