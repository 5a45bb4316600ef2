package rickmorty

import (
	"fmt"
	"net/http"
)

// ErrorKind classifies a client failure
type ErrorKind int

const (
	// KindInvalidURL indicates the request URL could not be built
	KindInvalidURL ErrorKind = iota + 1
	// KindInvalidResponse indicates no usable HTTP response was received
	KindInvalidResponse
	// KindDecoding indicates the response body could not be decoded
	KindDecoding
	// KindServer indicates a non-2xx status code
	KindServer
	// KindData indicates an empty payload
	KindData
)

// String returns the name of the kind
func (k ErrorKind) String() string {
	switch k {
	case KindInvalidURL:
		return "invalid_url"
	case KindInvalidResponse:
		return "invalid_response"
	case KindDecoding:
		return "decoding_error"
	case KindServer:
		return "server_error"
	case KindData:
		return "data_error"
	default:
		return "unknown"
	}
}

// Error is the failure type returned by every Client call.
// Error() yields the display text for the kind; the cause is kept for Unwrap.
type Error struct {
	Kind       ErrorKind
	StatusCode int
	Err        error
}

// Sentinels for use with errors.Is. They match any *Error of the same kind.
var (
	ErrInvalidURL      = &Error{Kind: KindInvalidURL}
	ErrInvalidResponse = &Error{Kind: KindInvalidResponse}
	ErrDecoding        = &Error{Kind: KindDecoding}
	ErrServer          = &Error{Kind: KindServer}
	ErrData            = &Error{Kind: KindData}
)

// Error implements the error interface
func (e *Error) Error() string {
	switch e.Kind {
	case KindInvalidURL:
		return "Invalid URL"
	case KindInvalidResponse:
		return "Invalid response from server"
	case KindDecoding:
		return "Failed to decode data"
	case KindServer:
		return fmt.Sprintf("Server error: %d", e.StatusCode)
	case KindData:
		return "No data received"
	default:
		return "Unknown error"
	}
}

// Unwrap returns the underlying cause, if any
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind.
// A target with a non-zero StatusCode also requires the codes to match.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.StatusCode == 0 || t.StatusCode == e.StatusCode
}

// IsNotFound checks if the error is a 404 response
func (e *Error) IsNotFound() bool {
	return e.Kind == KindServer && e.StatusCode == http.StatusNotFound
}

// ServerError creates a server error for the given status code
func ServerError(statusCode int) *Error {
	return &Error{Kind: KindServer, StatusCode: statusCode}
}

func newError(kind ErrorKind, cause error) *Error {
	return &Error{Kind: kind, Err: cause}
}
