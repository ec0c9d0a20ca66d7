package domain

import (
	"errors"
	"fmt"
)

// APIErrorKind classifies a failed call to the remote API.
type APIErrorKind string

const (
	// KindNetwork means no response was received.
	KindNetwork APIErrorKind = "network"
	// KindHTTP means the server answered with a non-2xx status.
	KindHTTP APIErrorKind = "http"
	// KindUnauthorized is a 401; the token has already been cleared when it is returned.
	KindUnauthorized APIErrorKind = "unauthorized"
	// KindRejected is a 2xx answer whose envelope reported success=false.
	KindRejected APIErrorKind = "rejected"
)

// APIError is the single failure shape returned by the API client.
type APIError struct {
	Kind       APIErrorKind
	StatusCode int
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *APIError) Unwrap() error { return e.Err }

// AsAPIError extracts an *APIError from err, if any.
func AsAPIError(err error) (*APIError, bool) {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// IsUnauthorized reports whether err is a 401 from the API.
func IsUnauthorized(err error) bool {
	ae, ok := AsAPIError(err)
	return ok && ae.Kind == KindUnauthorized
}

// StatusCodeOf returns the HTTP status carried by err, or 0.
func StatusCodeOf(err error) int {
	if ae, ok := AsAPIError(err); ok {
		return ae.StatusCode
	}
	return 0
}
