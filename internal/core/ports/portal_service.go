package ports

import (
	"context"

	"github.com/prepwise/interview-portal/internal/core/domain"
)

// JobFilter narrows a job position listing. Empty fields are not sent.
type JobFilter struct {
	Status     string
	Department string
	Search     string
}

// JobPositionInput carries the editable fields of a job position.
type JobPositionInput struct {
	Title          string           `json:"title"`
	Department     string           `json:"department"`
	Location       string           `json:"location"`
	EmploymentType string           `json:"employmentType"`
	Description    string           `json:"description"`
	Requirements   []string         `json:"requirements"`
	Status         domain.JobStatus `json:"status"`
}

// PortalService wraps the API calls behind the dashboards and job pages.
type PortalService interface {
	ListJobPositions(ctx context.Context, filter JobFilter) ([]domain.JobPosition, error)
	GetJobPosition(ctx context.Context, id string) (*domain.JobPosition, error)
	CreateJobPosition(ctx context.Context, in JobPositionInput) (*domain.JobPosition, error)
	UpdateJobPosition(ctx context.Context, id string, in JobPositionInput) (*domain.JobPosition, error)
	DeleteJobPosition(ctx context.Context, id string) error
	ListApplications(ctx context.Context) ([]domain.Application, error)
	Apply(ctx context.Context, jobID, resumeName string) (*domain.Application, error)
	DashboardMetrics(ctx context.Context) (*domain.DashboardMetrics, error)
	UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*domain.User, error)
}
