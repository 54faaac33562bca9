package apierrors

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
)

// Kind is the closed set of error kinds surfaced to API clients
type Kind string

const (
	KindInvalidRequest     Kind = "InvalidRequest"
	KindTransport          Kind = "TransportError"
	KindContractResolution Kind = "ContractResolutionError"
	KindMethod             Kind = "MethodError"
	KindUpstream           Kind = "UpstreamError"
	// KindUnauthorized is only produced by the bearer auth middleware
	KindUnauthorized Kind = "Unauthorized"
)

// StatusCode returns the HTTP status associated with the kind
func (k Kind) StatusCode() int {
	switch k {
	case KindInvalidRequest:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Error is a classified failure. Err keeps the underlying cause for logging.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so errors.Is(err, ErrMethod) works
// on wrapped errors.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Message == "" && t.Err == nil
}

// Sentinels for errors.Is checks
var (
	ErrInvalidRequest     = &Error{Kind: KindInvalidRequest}
	ErrTransport          = &Error{Kind: KindTransport}
	ErrContractResolution = &Error{Kind: KindContractResolution}
	ErrMethod             = &Error{Kind: KindMethod}
	ErrUpstream           = &Error{Kind: KindUpstream}
)

func newError(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// InvalidRequest reports a malformed or incomplete request
func InvalidRequest(err error, format string, args ...any) *Error {
	return newError(KindInvalidRequest, err, format, args...)
}

// Transport reports that the RPC transport could not be constructed or reached
func Transport(err error, format string, args ...any) *Error {
	return newError(KindTransport, err, format, args...)
}

// ContractResolution reports a contract with no known deployment on the active network
func ContractResolution(err error, format string, args ...any) *Error {
	return newError(KindContractResolution, err, format, args...)
}

// Method reports a call rejected by the node, including reverts
func Method(err error, format string, args ...any) *Error {
	return newError(KindMethod, err, format, args...)
}

// Upstream reports a failed indexing API request
func Upstream(err error, format string, args ...any) *Error {
	return newError(KindUpstream, err, format, args...)
}

// Unauthorized reports a missing or rejected bearer token
func Unauthorized(format string, args ...any) *Error {
	return newError(KindUnauthorized, nil, format, args...)
}

// Classify maps any error to a classified *Error. Already classified errors
// keep their kind; anything else came out of a contract call and is a method error.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}

	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return Method(err, "Contract method failed")
}

// Response is the JSON body returned for a failed request
type Response struct {
	Code    int    `json:"code"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

var (
	// infura style urls carry the project id as the last path segment
	rpcURLPattern  = regexp.MustCompile(`[a-zA-Z][a-zA-Z0-9+.-]*://[^\s"']+`)
	hexKeyPattern  = regexp.MustCompile(`(0x)?[0-9a-fA-F]{64}`)
	redactedMarker = "[redacted]"
)

// Scrub removes URLs and 32-byte hex strings (private keys) from a message.
// Transaction hashes are 32 bytes as well; they are only ever reported in
// successful responses, never in error text.
func Scrub(message string) string {
	message = rpcURLPattern.ReplaceAllString(message, redactedMarker)
	return hexKeyPattern.ReplaceAllString(message, redactedMarker)
}

// ToResponse builds the client facing payload for err
func ToResponse(err error) Response {
	classified := Classify(err)
	return Response{
		Code:    classified.Kind.StatusCode(),
		Error:   string(classified.Kind),
		Message: Scrub(classified.Error()),
	}
}

// StatusResponse renders a router level failure (unknown route, wrong method,
// oversized body) that never reached a handler. Client errors keep their
// status as InvalidRequest; anything else is classified like a handler error.
func StatusResponse(code int, message string) Response {
	if code >= http.StatusBadRequest && code < http.StatusInternalServerError {
		return Response{Code: code, Error: string(KindInvalidRequest), Message: Scrub(message)}
	}
	return ToResponse(errors.New(message))
}
