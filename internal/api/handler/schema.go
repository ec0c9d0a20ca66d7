package handler

import (
	"github.com/prepwise/interview-portal/internal/core/domain"
	"github.com/prepwise/interview-portal/internal/core/ports"
)

// --- Session ---

type loginRequest struct {
	Email    string      `json:"email"    validate:"required,email"`
	Password string      `json:"password" validate:"required,min=6"`
	Role     domain.Role `json:"role"     validate:"omitempty,oneof=candidate hr admin"`
}

type registerRequest struct {
	Name     string      `json:"name"     validate:"required,max=100"`
	Email    string      `json:"email"    validate:"required,email"`
	Password string      `json:"password" validate:"required,min=6"`
	Role     domain.Role `json:"role"     validate:"required,oneof=candidate hr"`
}

type sessionResponse struct {
	State      domain.SessionState `json:"state"`
	User       *domain.User        `json:"user,omitempty"`
	RedirectTo string              `json:"redirectTo,omitempty"`
}

// --- Views ---

type landingResponse struct {
	Name      string       `json:"name"`
	SignedIn  bool         `json:"signedIn"`
	User      *domain.User `json:"user,omitempty"`
	Dashboard string       `json:"dashboard,omitempty"`
}

type loginViewResponse struct {
	Roles []domain.Role `json:"roles"`
}

type candidateDashboardResponse struct {
	User         *domain.User             `json:"user"`
	Metrics      *domain.DashboardMetrics `json:"metrics"`
	Applications []domain.Application     `json:"applications"`
}

type hrDashboardResponse struct {
	User    *domain.User             `json:"user"`
	Metrics *domain.DashboardMetrics `json:"metrics"`
	Jobs    []domain.JobPosition     `json:"jobs"`
}

// --- Jobs & applications ---

type jobPositionRequest struct {
	Title          string           `json:"title"          validate:"required,max=200"`
	Department     string           `json:"department"     validate:"required"`
	Location       string           `json:"location"`
	EmploymentType string           `json:"employmentType" validate:"omitempty,oneof=full-time part-time contract internship"`
	Description    string           `json:"description"`
	Requirements   []string         `json:"requirements"`
	Status         domain.JobStatus `json:"status"         validate:"omitempty,oneof=open closed draft"`
}

func (r jobPositionRequest) toInput() ports.JobPositionInput {
	return ports.JobPositionInput{
		Title:          r.Title,
		Department:     r.Department,
		Location:       r.Location,
		EmploymentType: r.EmploymentType,
		Description:    r.Description,
		Requirements:   r.Requirements,
		Status:         r.Status,
	}
}

type applyRequest struct {
	JobID      string `json:"jobId"      validate:"required"`
	ResumeName string `json:"resumeName" validate:"required,max=255"`
}

type profileRequest struct {
	Name   *string `json:"name"   validate:"omitempty,min=1,max=100"`
	Phone  *string `json:"phone"  validate:"omitempty,max=32"`
	Bio    *string `json:"bio"    validate:"omitempty,max=1000"`
	Avatar *string `json:"avatar" validate:"omitempty,url"`
}

type messageResponse struct {
	Message string `json:"message"`
}
