package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/prepwise/interview-portal/internal/core/domain"
	"github.com/prepwise/interview-portal/internal/core/ports"
	"github.com/prepwise/interview-portal/internal/pkg/metrics"
)

// Guard protects a route with rule. Disallowed navigations are redirected
// with 302 Found and never reach the handler.
func Guard(session ports.SessionReader, rule domain.RouteRule) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			d := domain.Decide(rule, session.CurrentUser())
			if d.Allow {
				return next(c)
			}
			metrics.RouteRedirectsTotal.WithLabelValues(d.Reason).Inc()
			return c.Redirect(http.StatusFound, d.RedirectTo)
		}
	}
}

// RequireAuth is Guard for routes open to any signed-in role.
func RequireAuth(session ports.SessionReader) echo.MiddlewareFunc {
	return Guard(session, domain.RouteRule{RequiresAuth: true})
}

// RequireRoles is Guard for routes restricted to roles.
func RequireRoles(session ports.SessionReader, roles ...domain.Role) echo.MiddlewareFunc {
	return Guard(session, domain.RouteRule{RequiresAuth: true, AllowedRoles: roles})
}
