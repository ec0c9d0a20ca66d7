package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/prepwise/interview-portal/internal/core/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

// Resolve maps an error to an HTTP status and a client-safe message. ok is
// false for errors with no known mapping.
func Resolve(err error) (status int, msg string, ok bool) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message), true
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return http.StatusUnprocessableEntity, ve.Message, true
	}

	switch {
	case errors.Is(err, domain.ErrJobNotFound):
		return http.StatusNotFound, "job position not found", true
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden", true
	case errors.Is(err, domain.ErrInvalidRole):
		return http.StatusBadRequest, err.Error(), true
	}

	if ae, isAPI := domain.AsAPIError(err); isAPI {
		credentials := errors.Is(err, domain.ErrLoginFailed) || errors.Is(err, domain.ErrRegisterFailed)
		switch ae.Kind {
		case domain.KindUnauthorized:
			// A 401 on sign-in is a credential failure, not an expired session.
			if credentials {
				return http.StatusUnauthorized, ae.Message, true
			}
			return http.StatusUnauthorized, "session expired, please sign in again", true
		case domain.KindNetwork:
			return http.StatusBadGateway, ae.Message, true
		case domain.KindRejected:
			return http.StatusUnprocessableEntity, ae.Message, true
		case domain.KindHTTP:
			if ae.StatusCode >= 400 && ae.StatusCode < 500 {
				return ae.StatusCode, ae.Message, true
			}
			return http.StatusBadGateway, ae.Message, true
		}
	}

	switch {
	case errors.Is(err, domain.ErrLoginFailed):
		return http.StatusUnauthorized, "login failed", true
	case errors.Is(err, domain.ErrRegisterFailed):
		return http.StatusBadRequest, "registration failed", true
	case errors.Is(err, domain.ErrSessionInvalid), errors.Is(err, domain.ErrNotAuthenticated):
		return http.StatusUnauthorized, "not authenticated", true
	}
	return http.StatusInternalServerError, "internal server error", false
}

// respondError renders known errors. Unknown ones are returned to echo's
// error handler, which logs them.
func respondError(c echo.Context, err error) error {
	status, msg, ok := Resolve(err)
	if !ok {
		return err
	}
	return c.JSON(status, errorResponse{Error: msg})
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return c.Validate(req)
}
