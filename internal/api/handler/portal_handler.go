package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/prepwise/interview-portal/internal/core/domain"
	"github.com/prepwise/interview-portal/internal/core/ports"
)

const portalName = "PrepWise"

// PortalHandler serves the dashboard, job and profile views. Route access is
// enforced by the guard middleware before these handlers run.
type PortalHandler struct {
	session ports.SessionReader
	portal  ports.PortalService
}

func NewPortalHandler(session ports.SessionReader, portal ports.PortalService) *PortalHandler {
	return &PortalHandler{session: session, portal: portal}
}

// Landing is the public home view.
//
// @Summary      Landing view
// @Tags         views
// @Produce      json
// @Success      200  {object}  landingResponse
// @Router       / [get]
func (h *PortalHandler) Landing(c echo.Context) error {
	resp := landingResponse{Name: portalName}
	if user := h.session.CurrentUser(); user != nil {
		resp.SignedIn = true
		resp.User = user
		resp.Dashboard = domain.LandingRoute(user.Role)
	}
	return c.JSON(http.StatusOK, resp)
}

// LoginView sends signed-in users to their dashboard.
//
// @Summary      Login view
// @Tags         views
// @Produce      json
// @Success      200  {object}  loginViewResponse
// @Router       /login [get]
func (h *PortalHandler) LoginView(c echo.Context) error {
	if user := h.session.CurrentUser(); user != nil {
		return c.Redirect(http.StatusFound, domain.LandingRoute(user.Role))
	}
	return c.JSON(http.StatusOK, loginViewResponse{
		Roles: []domain.Role{domain.RoleCandidate, domain.RoleHR},
	})
}

// CandidateDashboard shows the candidate's metrics and applications.
//
// @Summary      Candidate dashboard
// @Tags         candidate
// @Produce      json
// @Success      200  {object}  candidateDashboardResponse
// @Failure      502  {object}  errorResponse
// @Router       /candidate/dashboard [get]
func (h *PortalHandler) CandidateDashboard(c echo.Context) error {
	ctx := c.Request().Context()

	metrics, err := h.portal.DashboardMetrics(ctx)
	if err != nil {
		return respondError(c, err)
	}
	apps, err := h.portal.ListApplications(ctx)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, candidateDashboardResponse{
		User:         h.session.CurrentUser(),
		Metrics:      metrics,
		Applications: apps,
	})
}

// HRDashboard shows hiring metrics and the current job positions.
//
// @Summary      HR dashboard
// @Tags         hr
// @Produce      json
// @Success      200  {object}  hrDashboardResponse
// @Failure      502  {object}  errorResponse
// @Router       /hr/dashboard [get]
func (h *PortalHandler) HRDashboard(c echo.Context) error {
	ctx := c.Request().Context()

	metrics, err := h.portal.DashboardMetrics(ctx)
	if err != nil {
		return respondError(c, err)
	}
	jobs, err := h.portal.ListJobPositions(ctx, ports.JobFilter{})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, hrDashboardResponse{
		User:    h.session.CurrentUser(),
		Metrics: metrics,
		Jobs:    jobs,
	})
}

// CandidateJobs lists open positions.
//
// @Summary      Browse open positions
// @Tags         candidate
// @Produce      json
// @Param        department  query     string  false  "Department"
// @Param        search      query     string  false  "Free-text search"
// @Success      200         {array}   domain.JobPosition
// @Router       /candidate/jobs [get]
func (h *PortalHandler) CandidateJobs(c echo.Context) error {
	jobs, err := h.portal.ListJobPositions(c.Request().Context(), ports.JobFilter{
		Status:     string(domain.JobOpen),
		Department: c.QueryParam("department"),
		Search:     c.QueryParam("search"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, jobs)
}

// ListApplications returns the candidate's applications.
//
// @Summary      My applications
// @Tags         candidate
// @Produce      json
// @Success      200  {array}  domain.Application
// @Router       /candidate/applications [get]
func (h *PortalHandler) ListApplications(c echo.Context) error {
	apps, err := h.portal.ListApplications(c.Request().Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, apps)
}

// Apply submits an application for an open position.
//
// @Summary      Apply to a position
// @Tags         candidate
// @Accept       json
// @Produce      json
// @Param        body  body      applyRequest  true  "Application"
// @Success      201   {object}  domain.Application
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /candidate/applications [post]
func (h *PortalHandler) Apply(c echo.Context) error {
	var req applyRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}

	app, err := h.portal.Apply(c.Request().Context(), req.JobID, req.ResumeName)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, app)
}

// ListJobs lists job positions for HR.
//
// @Summary      List job positions
// @Tags         hr
// @Produce      json
// @Param        status      query     string  false  "open, closed or draft"
// @Param        department  query     string  false  "Department"
// @Param        search      query     string  false  "Free-text search"
// @Success      200         {array}   domain.JobPosition
// @Router       /hr/jobs [get]
func (h *PortalHandler) ListJobs(c echo.Context) error {
	jobs, err := h.portal.ListJobPositions(c.Request().Context(), ports.JobFilter{
		Status:     c.QueryParam("status"),
		Department: c.QueryParam("department"),
		Search:     c.QueryParam("search"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, jobs)
}

// GetJob returns one job position.
//
// @Summary      Get a job position
// @Tags         hr
// @Produce      json
// @Param        id   path      string  true  "Job position ID"
// @Success      200  {object}  domain.JobPosition
// @Failure      404  {object}  errorResponse
// @Router       /hr/jobs/{id} [get]
func (h *PortalHandler) GetJob(c echo.Context) error {
	job, err := h.portal.GetJobPosition(c.Request().Context(), c.Param("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, job)
}

// CreateJob creates a job position. Status defaults to draft.
//
// @Summary      Create a job position
// @Tags         hr
// @Accept       json
// @Produce      json
// @Param        body  body      jobPositionRequest  true  "Job position"
// @Success      201   {object}  domain.JobPosition
// @Failure      422   {object}  errorResponse
// @Router       /hr/jobs [post]
func (h *PortalHandler) CreateJob(c echo.Context) error {
	var req jobPositionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}

	job, err := h.portal.CreateJobPosition(c.Request().Context(), req.toInput())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, job)
}

// UpdateJob replaces the editable fields of a job position.
//
// @Summary      Update a job position
// @Tags         hr
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "Job position ID"
// @Param        body  body      jobPositionRequest  true  "Job position"
// @Success      200   {object}  domain.JobPosition
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /hr/jobs/{id} [put]
func (h *PortalHandler) UpdateJob(c echo.Context) error {
	var req jobPositionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}

	job, err := h.portal.UpdateJobPosition(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, job)
}

// DeleteJob removes a job position.
//
// @Summary      Delete a job position
// @Tags         hr
// @Produce      json
// @Param        id   path      string  true  "Job position ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /hr/jobs/{id} [delete]
func (h *PortalHandler) DeleteJob(c echo.Context) error {
	if err := h.portal.DeleteJobPosition(c.Request().Context(), c.Param("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "job position deleted"})
}

// Profile returns the signed-in user.
//
// @Summary      My profile
// @Tags         profile
// @Produce      json
// @Success      200  {object}  domain.User
// @Router       /profile [get]
func (h *PortalHandler) Profile(c echo.Context) error {
	user := h.session.CurrentUser()
	if user == nil {
		return respondError(c, domain.ErrNotAuthenticated)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile saves profile fields and returns the refreshed user.
//
// @Summary      Update my profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body      profileRequest  true  "Fields to change"
// @Success      200   {object}  domain.User
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /profile [put]
func (h *PortalHandler) UpdateProfile(c echo.Context) error {
	var req profileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}

	user, err := h.portal.UpdateProfile(c.Request().Context(), domain.ProfileUpdate{
		Name:   req.Name,
		Phone:  req.Phone,
		Bio:    req.Bio,
		Avatar: req.Avatar,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}
