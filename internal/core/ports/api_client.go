package ports

import (
	"context"
	"encoding/json"
)

// RequestOptions describes a single call to the remote API.
type RequestOptions struct {
	Method  string            // defaults to GET
	Headers map[string]string // merged over the default JSON content type
	Body    any               // JSON-encoded when non-nil
	Query   map[string]any    // nil values are omitted
}

// APIResponse is a successful (2xx) API answer with the data envelope unwrapped.
type APIResponse struct {
	StatusCode int
	Data       json.RawMessage
}

// APIClient issues requests against the remote API. Failures are always
// returned as *domain.APIError.
type APIClient interface {
	Do(ctx context.Context, endpoint string, opts RequestOptions) (*APIResponse, error)
	// OnUnauthorized registers fn to run after every 401. The returned
	// function removes the registration.
	OnUnauthorized(fn func()) (unsubscribe func())
}
