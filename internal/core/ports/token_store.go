package ports

import "context"

// TokenStore persists the bearer token between runs.
// Get returns domain.ErrNoToken when nothing is stored.
type TokenStore interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}
