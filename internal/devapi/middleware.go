package devapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/prepwise/interview-portal/internal/core/domain"
)

const (
	ctxClaims = "claims"
	ctxToken  = "token"
)

// Auth validates the bearer JWT and injects its claims into the context.
func Auth(auth *AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return fail(c, http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				return fail(c, http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := auth.Verify(parts[1])
			if err != nil {
				return fail(c, http.StatusUnauthorized, "invalid token")
			}

			c.Set(ctxClaims, claims)
			c.Set(ctxToken, parts[1])
			return next(c)
		}
	}
}

// RequireRole rejects callers whose token role is not one of roles.
func RequireRole(roles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get(ctxClaims).(*Claims)
			if !ok {
				return fail(c, http.StatusUnauthorized, "missing authentication claims")
			}
			if _, ok := allowed[claims.Role]; !ok {
				return fail(c, http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}

func claimsFrom(c echo.Context) *Claims {
	claims, _ := c.Get(ctxClaims).(*Claims)
	return claims
}
