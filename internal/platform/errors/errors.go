// Package errors carries a coded error type the http layer can turn into
// a status and a wire payload
package errors

// Import as perr to keep the stdlib errors package free

import (
	stderrs "errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies an error for callers and the wire
type ErrorCode uint16

const (
	// ErrorCodeUnknown is anything we did not classify
	ErrorCodeUnknown ErrorCode = iota

	// ErrorCodePanic marks a panic recovered by middleware
	ErrorCodePanic

	// ErrorCodeUnavailable is a disabled or unreachable backend; retry may help
	ErrorCodeUnavailable

	// ErrorCodeTooManyRequests is an upstream or local rate limit
	ErrorCodeTooManyRequests

	// ErrorCodeInvalidArgument is well formed input we cannot act on
	ErrorCodeInvalidArgument

	// ErrorCodeValidation is input that failed struct validation
	ErrorCodeValidation

	// ErrorCodeJSON is a body that did not decode
	ErrorCodeJSON

	// ErrorCodeNotFound is a missing resource
	ErrorCodeNotFound

	// ErrorCodeUpstream is a collaborator (translator, corpus site)
	// that answered with garbage or an error status
	ErrorCodeUpstream

	// ErrorCodeTimeout is a collaborator that did not answer in time
	ErrorCodeTimeout
)

var statusByCode = map[ErrorCode]int{
	ErrorCodeUnavailable:     http.StatusServiceUnavailable,
	ErrorCodeTooManyRequests: http.StatusTooManyRequests,
	ErrorCodeInvalidArgument: http.StatusUnprocessableEntity,
	ErrorCodeValidation:      http.StatusBadRequest,
	ErrorCodeJSON:            http.StatusBadRequest,
	ErrorCodeNotFound:        http.StatusNotFound,
	ErrorCodeUpstream:        http.StatusBadGateway,
	ErrorCodeTimeout:         http.StatusGatewayTimeout,
}

// Status maps a code to its http status; unmapped codes are 500
func (c ErrorCode) Status() int {
	if s, ok := statusByCode[c]; ok {
		return s
	}
	return http.StatusInternalServerError
}

// Error is a coded error with an optional field name and cause
type Error struct {
	code  ErrorCode
	msg   string
	field string
	cause error
}

// Wire is what the api writes for an error
type Wire struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Field   string    `json:"field,omitempty"`
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.cause == nil {
		return e.msg
	}
	return e.msg + ": " + e.cause.Error()
}

func (e *Error) Unwrap() error { return e.cause }

// Code returns the classification
func (e *Error) Code() ErrorCode { return e.code }

// Field returns the offending input field, if any
func (e *Error) Field() string { return e.field }

// As returns the outermost *Error in err's chain
func As(err error) (*Error, bool) {
	var e *Error
	if stderrs.As(err, &e) {
		return e, true
	}
	return nil, false
}

// CodeOf returns err's code, or ErrorCodeUnknown for foreign errors
func CodeOf(err error) ErrorCode {
	if e, ok := As(err); ok {
		return e.code
	}
	return ErrorCodeUnknown
}

// HTTPStatus is CodeOf(err).Status()
func HTTPStatus(err error) int { return CodeOf(err).Status() }

// WireFrom builds the wire payload; foreign errors keep their message
// under ErrorCodeUnknown and nil gives the zero Wire
func WireFrom(err error) Wire {
	if err == nil {
		return Wire{}
	}
	if e, ok := As(err); ok {
		return Wire{Code: e.code, Message: e.msg, Field: e.field}
	}
	return Wire{Code: ErrorCodeUnknown, Message: err.Error()}
}

// Root follows Unwrap to the innermost cause
func Root(err error) error {
	for err != nil {
		next := stderrs.Unwrap(err)
		if next == nil {
			break
		}
		err = next
	}
	return err
}

// WithField returns a copy of err naming the offending field. Foreign
// errors pass through untouched
func WithField(err error, field string) error {
	e, ok := As(err)
	if !ok {
		return err
	}
	cp := *e
	cp.field = field
	return &cp
}

// New returns a coded error
func New(code ErrorCode, msg string) error { return &Error{code: code, msg: msg} }

// Newf is New with a format
func Newf(code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...)}
}

// Wrapf returns a coded error around cause
func Wrapf(cause error, code ErrorCode, format string, a ...any) error {
	return &Error{code: code, msg: fmt.Sprintf(format, a...), cause: cause}
}

// InvalidArgf is Newf(ErrorCodeInvalidArgument, ...)
func InvalidArgf(format string, a ...any) error { return Newf(ErrorCodeInvalidArgument, format, a...) }

// JSONErrf is Newf(ErrorCodeJSON, ...)
func JSONErrf(format string, a ...any) error { return Newf(ErrorCodeJSON, format, a...) }

// PanicErrf is Newf(ErrorCodePanic, ...)
func PanicErrf(format string, a ...any) error { return Newf(ErrorCodePanic, format, a...) }

// Unavailablef is Newf(ErrorCodeUnavailable, ...)
func Unavailablef(format string, a ...any) error { return Newf(ErrorCodeUnavailable, format, a...) }

// Upstreamf is Newf(ErrorCodeUpstream, ...)
func Upstreamf(format string, a ...any) error { return Newf(ErrorCodeUpstream, format, a...) }
