// Package apiclient is the portal's only door to the remote interview-prep
// API. It attaches the stored bearer token, normalises every outcome into
// either an unwrapped payload or a *domain.APIError, and turns a 401 into a
// cleared token plus a notification to every registered listener.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/prepwise/interview-portal/internal/core/domain"
	"github.com/prepwise/interview-portal/internal/core/ports"
	"github.com/prepwise/interview-portal/internal/pkg/metrics"
)

const (
	defaultTimeout = 15 * time.Second
	networkError   = "network error"
)

// Config captures the settings needed to reach the API.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// HTTPClient overrides the underlying transport. Optional.
	HTTPClient *http.Client
}

// Client implements ports.APIClient.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  ports.TokenStore
	log     zerolog.Logger

	mu        sync.Mutex
	nextID    int
	listeners map[int]func()
}

// New builds a Client reading and clearing tokens through tokens.
func New(cfg Config, tokens ports.TokenStore, log zerolog.Logger) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		http:      hc,
		tokens:    tokens,
		log:       log,
		listeners: make(map[int]func()),
	}
}

// OnUnauthorized registers fn to be called synchronously after each 401.
func (c *Client) OnUnauthorized(fn func()) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string { return c.baseURL }

// Do issues a request against endpoint. It never panics on transport or
// decoding problems; every failure comes back as *domain.APIError.
func (c *Client) Do(ctx context.Context, endpoint string, opts ports.RequestOptions) (*ports.APIResponse, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	target, err := buildURL(c.baseURL, endpoint, opts.Query)
	if err != nil {
		return nil, c.fail(method, endpoint, &domain.APIError{Kind: domain.KindNetwork, Message: networkError, Err: err})
	}

	var body io.Reader
	if opts.Body != nil {
		raw, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, c.fail(method, endpoint, &domain.APIError{Kind: domain.KindNetwork, Message: networkError, Err: fmt.Errorf("encode body: %w", err)})
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, c.fail(method, endpoint, &domain.APIError{Kind: domain.KindNetwork, Message: networkError, Err: err})
	}

	req.Header.Set("Content-Type", "application/json")
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}
	c.attachToken(ctx, req)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.fail(method, endpoint, &domain.APIError{Kind: domain.KindNetwork, Message: networkError, Err: err})
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.fail(method, endpoint, &domain.APIError{Kind: domain.KindNetwork, StatusCode: resp.StatusCode, Message: networkError, Err: err})
	}

	c.log.Debug().
		Str("method", method).
		Str("endpoint", endpoint).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("api request")

	if resp.StatusCode == http.StatusUnauthorized {
		c.handleUnauthorized(ctx)
		return nil, c.fail(method, endpoint, &domain.APIError{
			Kind:       domain.KindUnauthorized,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(raw, resp.StatusCode),
		})
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.fail(method, endpoint, &domain.APIError{
			Kind:       domain.KindHTTP,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(raw, resp.StatusCode),
		})
	}

	data, rejected := unwrap(raw)
	if rejected {
		return nil, c.fail(method, endpoint, &domain.APIError{
			Kind:       domain.KindRejected,
			StatusCode: resp.StatusCode,
			Message:    errorMessage(raw, resp.StatusCode),
		})
	}

	metrics.APIRequestsTotal.WithLabelValues(method, "success").Inc()
	return &ports.APIResponse{StatusCode: resp.StatusCode, Data: data}, nil
}

func (c *Client) attachToken(ctx context.Context, req *http.Request) {
	token, err := c.tokens.Get(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrNoToken) {
			c.log.Warn().Err(err).Msg("token store read failed, sending request without credentials")
		}
		return
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// handleUnauthorized clears the stored token, then notifies listeners in
// registration order. It runs before the failure is returned to the caller.
func (c *Client) handleUnauthorized(ctx context.Context) {
	if err := c.tokens.Clear(ctx); err != nil {
		c.log.Warn().Err(err).Msg("failed to clear token after 401")
	}

	c.mu.Lock()
	ids := slices.Sorted(maps.Keys(c.listeners))
	fns := make([]func(), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, c.listeners[id])
	}
	c.mu.Unlock()

	metrics.UnauthorizedSignalsTotal.Inc()
	for _, fn := range fns {
		fn()
	}
}

func (c *Client) fail(method, endpoint string, apiErr *domain.APIError) error {
	metrics.APIRequestsTotal.WithLabelValues(method, string(apiErr.Kind)).Inc()

	ev := c.log.Warn()
	if apiErr.Kind == domain.KindNetwork {
		ev = c.log.Error()
	}
	ev.Err(apiErr.Err).
		Str("method", method).
		Str("endpoint", endpoint).
		Str("kind", string(apiErr.Kind)).
		Int("status", apiErr.StatusCode).
		Msg(apiErr.Message)
	return apiErr
}
