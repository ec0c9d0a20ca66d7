// Package metrics defines and registers all custom Prometheus metrics for the
// interview portal. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on import via
// promauto; /metrics exposes them alongside the echo request metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// ── API client metrics ────────────────────────────────────────────────────────

// APIRequestsTotal counts calls made to the remote API.
// Labels:
//   - method: HTTP method (e.g. "GET")
//   - outcome: "success", "network", "http", "unauthorized" or "rejected"
var APIRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "api_requests_total",
		Help:      "Total number of remote API calls, by method and outcome.",
	},
	[]string{"method", "outcome"},
)

// UnauthorizedSignalsTotal counts 401 responses that invalidated the session.
var UnauthorizedSignalsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "unauthorized_signals_total",
		Help:      "Total number of unauthorized signals broadcast after a 401.",
	},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionTransitionsTotal counts session state changes.
// Labels:
//   - to: the new state ("unauthenticated", "bootstrapping", "authenticated")
//   - cause: what triggered it (e.g. "login", "logout", "unauthorized")
var SessionTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_transitions_total",
		Help:      "Total number of session state transitions, by target state and cause.",
	},
	[]string{"to", "cause"},
)

// ── Route guard metrics ───────────────────────────────────────────────────────

// RouteRedirectsTotal counts navigations the route guard redirected.
// Label:
//   - reason: "unauthenticated" or "wrong_role"
var RouteRedirectsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "route_redirects_total",
		Help:      "Total number of guarded navigations redirected, by reason.",
	},
	[]string{"reason"},
)
