package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/prepwise/interview-portal/internal/core/domain"
	"github.com/prepwise/interview-portal/internal/core/ports"
)

// SessionHandler exposes the process-wide session over HTTP.
type SessionHandler struct {
	session ports.SessionService
}

func NewSessionHandler(session ports.SessionService) *SessionHandler {
	return &SessionHandler{session: session}
}

// Get returns the current session.
//
// @Summary      Current session
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /session [get]
func (h *SessionHandler) Get(c echo.Context) error {
	return c.JSON(http.StatusOK, h.snapshot(""))
}

// Login signs in and returns the user with their landing route.
//
// @Summary      Sign in
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /session/login [post]
func (h *SessionHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}

	user, err := h.session.Login(c.Request().Context(), req.Email, req.Password, req.Role)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, sessionResponse{
		State:      domain.StateAuthenticated,
		User:       user,
		RedirectTo: domain.LandingRoute(user.Role),
	})
}

// Register creates an account and signs in.
//
// @Summary      Create an account
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  sessionResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /session/register [post]
func (h *SessionHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}

	user, err := h.session.Register(c.Request().Context(), req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, sessionResponse{
		State:      domain.StateAuthenticated,
		User:       user,
		RedirectTo: domain.LandingRoute(user.Role),
	})
}

// Logout always succeeds locally.
//
// @Summary      Sign out
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /session/logout [post]
func (h *SessionHandler) Logout(c echo.Context) error {
	h.session.Logout(c.Request().Context())
	return c.JSON(http.StatusOK, h.snapshot(domain.LoginRoute))
}

// Refresh reloads the user from the API. A failure signs the session out.
//
// @Summary      Reload the signed-in user
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Failure      401  {object}  errorResponse
// @Router       /session/refresh [post]
func (h *SessionHandler) Refresh(c echo.Context) error {
	if h.session.CurrentUser() == nil {
		return respondError(c, domain.ErrNotAuthenticated)
	}
	if _, err := h.session.Refresh(c.Request().Context()); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, h.snapshot(""))
}

func (h *SessionHandler) snapshot(redirect string) sessionResponse {
	return sessionResponse{
		State:      h.session.State(),
		User:       h.session.CurrentUser(),
		RedirectTo: redirect,
	}
}
