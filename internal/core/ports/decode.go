package ports

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/prepwise/interview-portal/internal/core/domain"
)

// Decode unmarshals the payload of resp into T. A malformed payload is
// reported as a rejected call so callers keep a single failure branch.
func Decode[T any](resp *APIResponse) (T, error) {
	var out T
	if resp == nil || len(resp.Data) == 0 || string(resp.Data) == "null" {
		return out, &domain.APIError{Kind: domain.KindRejected, Message: "empty response payload"}
	}
	if err := json.Unmarshal(resp.Data, &out); err != nil {
		return out, &domain.APIError{
			Kind:       domain.KindRejected,
			StatusCode: resp.StatusCode,
			Message:    "malformed response payload",
			Err:        fmt.Errorf("decode payload: %w", err),
		}
	}
	return out, nil
}

// Call issues a request through client and decodes the payload into T.
func Call[T any](ctx context.Context, client APIClient, endpoint string, opts RequestOptions) (T, error) {
	resp, err := client.Do(ctx, endpoint, opts)
	if err != nil {
		var zero T
		return zero, err
	}
	return Decode[T](resp)
}
