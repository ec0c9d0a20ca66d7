package devapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/prepwise/interview-portal/internal/core/domain"
	"github.com/prepwise/interview-portal/internal/core/ports"
)

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func ok(c echo.Context, status int, data any) error {
	return c.JSON(status, envelope{Success: true, Data: data})
}

func fail(c echo.Context, status int, msg string) error {
	return c.JSON(status, envelope{Success: false, Error: msg})
}

type credentialsRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     domain.Role `json:"role"`
}

type tokenResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user,omitempty"`
}

type applyRequest struct {
	JobID      string `json:"jobId"`
	ResumeName string `json:"resumeName"`
}

type handlers struct {
	auth     *AuthService
	accounts ports.AccountRepository
	board    *Board
	log      zerolog.Logger
}

func (h *handlers) register(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid payload")
	}

	token, account, err := h.auth.Register(c.Request().Context(), req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserExists):
			return fail(c, http.StatusConflict, err.Error())
		case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrInvalidRole):
			return fail(c, http.StatusBadRequest, err.Error())
		}
		h.log.Error().Err(err).Msg("register failed")
		return fail(c, http.StatusInternalServerError, "internal error")
	}
	return ok(c, http.StatusCreated, tokenResponse{Token: token, User: &account.User})
}

func (h *handlers) login(c echo.Context) error {
	var req credentialsRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid payload")
	}

	token, account, err := h.auth.Login(c.Request().Context(), req.Email, req.Password, req.Role)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			// 400 rather than 401: a failed sign-in must not look like an expired session.
			return fail(c, http.StatusBadRequest, "invalid email or password")
		}
		h.log.Error().Err(err).Msg("login failed")
		return fail(c, http.StatusInternalServerError, "internal error")
	}
	return ok(c, http.StatusOK, tokenResponse{Token: token, User: &account.User})
}

func (h *handlers) logout(c echo.Context) error {
	h.auth.Revoke(claimsFrom(c))
	return ok(c, http.StatusOK, map[string]string{"message": "logged out"})
}

func (h *handlers) me(c echo.Context) error {
	account, err := h.accounts.FindByID(c.Request().Context(), claimsFrom(c).Subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return fail(c, http.StatusUnauthorized, "account no longer exists")
		}
		return fail(c, http.StatusInternalServerError, "internal error")
	}
	return ok(c, http.StatusOK, account.User)
}

func (h *handlers) updateProfile(c echo.Context) error {
	var req domain.ProfileUpdate
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid payload")
	}
	account, err := h.accounts.UpdateProfile(c.Request().Context(), claimsFrom(c).Subject, req)
	if err != nil {
		return fail(c, http.StatusNotFound, err.Error())
	}
	return ok(c, http.StatusOK, account.User)
}

func (h *handlers) listJobs(c echo.Context) error {
	filter := ports.JobFilter{
		Status:     c.QueryParam("status"),
		Department: c.QueryParam("department"),
		Search:     c.QueryParam("search"),
	}
	// Candidates only ever see open positions.
	if claimsFrom(c).Role == domain.RoleCandidate {
		filter.Status = string(domain.JobOpen)
	}
	return ok(c, http.StatusOK, h.board.ListJobs(filter))
}

func (h *handlers) getJob(c echo.Context) error {
	job, err := h.board.GetJob(c.Param("id"))
	if err != nil {
		return fail(c, http.StatusNotFound, err.Error())
	}
	return ok(c, http.StatusOK, job)
}

func (h *handlers) createJob(c echo.Context) error {
	var req ports.JobPositionInput
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid payload")
	}
	if req.Title == "" {
		return fail(c, http.StatusUnprocessableEntity, "title is required")
	}
	return ok(c, http.StatusCreated, h.board.CreateJob(req))
}

func (h *handlers) updateJob(c echo.Context) error {
	var req ports.JobPositionInput
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid payload")
	}
	job, err := h.board.UpdateJob(c.Param("id"), req)
	if err != nil {
		return fail(c, http.StatusNotFound, err.Error())
	}
	return ok(c, http.StatusOK, job)
}

func (h *handlers) deleteJob(c echo.Context) error {
	if err := h.board.DeleteJob(c.Param("id")); err != nil {
		return fail(c, http.StatusNotFound, err.Error())
	}
	return ok(c, http.StatusOK, map[string]string{"message": "deleted"})
}

func (h *handlers) listApplications(c echo.Context) error {
	claims := claimsFrom(c)
	scope := ""
	if claims.Role == domain.RoleCandidate {
		scope = claims.Subject
	}
	return ok(c, http.StatusOK, h.board.Applications(scope))
}

func (h *handlers) apply(c echo.Context) error {
	var req applyRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid payload")
	}
	app, err := h.board.Apply(claimsFrom(c).Subject, req.JobID, req.ResumeName)
	if err != nil {
		return fail(c, http.StatusNotFound, err.Error())
	}
	return ok(c, http.StatusCreated, app)
}

func (h *handlers) metrics(c echo.Context) error {
	claims := claimsFrom(c)
	return ok(c, http.StatusOK, h.board.Metrics(domain.User{ID: claims.Subject, Role: claims.Role}))
}
