package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/prepwise/interview-portal/internal/core/domain"
	"github.com/prepwise/interview-portal/internal/core/ports"
)

const (
	EndpointJobs         = "/jobs"
	EndpointApplications = "/applications"
	EndpointMetrics      = "/dashboard/metrics"
	EndpointProfile      = "/users/profile"
)

// ProfileRefresher reloads the session user after a profile change.
type ProfileRefresher interface {
	Refresh(ctx context.Context) (*domain.User, error)
}

// PortalService backs the dashboards, job pages and profile page.
type PortalService struct {
	api     ports.APIClient
	session ProfileRefresher
	logger  zerolog.Logger
}

func NewPortalService(api ports.APIClient, session ProfileRefresher, logger zerolog.Logger) *PortalService {
	return &PortalService{api: api, session: session, logger: logger}
}

func (s *PortalService) ListJobPositions(ctx context.Context, filter ports.JobFilter) ([]domain.JobPosition, error) {
	jobs, err := ports.Call[[]domain.JobPosition](ctx, s.api, EndpointJobs, ports.RequestOptions{
		Query: map[string]any{
			"status":     optional(filter.Status),
			"department": optional(filter.Department),
			"search":     optional(filter.Search),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("list job positions: %w", err)
	}
	return jobs, nil
}

func (s *PortalService) GetJobPosition(ctx context.Context, id string) (*domain.JobPosition, error) {
	job, err := ports.Call[domain.JobPosition](ctx, s.api, jobPath(id), ports.RequestOptions{})
	if err != nil {
		return nil, fmt.Errorf("get job position: %w", notFoundAs(err, domain.ErrJobNotFound))
	}
	return &job, nil
}

func (s *PortalService) CreateJobPosition(ctx context.Context, in ports.JobPositionInput) (*domain.JobPosition, error) {
	if in.Status == "" {
		in.Status = domain.JobDraft
	}
	job, err := ports.Call[domain.JobPosition](ctx, s.api, EndpointJobs, ports.RequestOptions{
		Method: http.MethodPost,
		Body:   in,
	})
	if err != nil {
		return nil, fmt.Errorf("create job position: %w", err)
	}
	s.logger.Info().Str("job_id", job.ID).Str("title", job.Title).Msg("job position created")
	return &job, nil
}

func (s *PortalService) UpdateJobPosition(ctx context.Context, id string, in ports.JobPositionInput) (*domain.JobPosition, error) {
	job, err := ports.Call[domain.JobPosition](ctx, s.api, jobPath(id), ports.RequestOptions{
		Method: http.MethodPut,
		Body:   in,
	})
	if err != nil {
		return nil, fmt.Errorf("update job position: %w", notFoundAs(err, domain.ErrJobNotFound))
	}
	s.logger.Info().Str("job_id", id).Msg("job position updated")
	return &job, nil
}

func (s *PortalService) DeleteJobPosition(ctx context.Context, id string) error {
	if _, err := s.api.Do(ctx, jobPath(id), ports.RequestOptions{Method: http.MethodDelete}); err != nil {
		return fmt.Errorf("delete job position: %w", notFoundAs(err, domain.ErrJobNotFound))
	}
	s.logger.Info().Str("job_id", id).Msg("job position deleted")
	return nil
}

func (s *PortalService) ListApplications(ctx context.Context) ([]domain.Application, error) {
	apps, err := ports.Call[[]domain.Application](ctx, s.api, EndpointApplications, ports.RequestOptions{})
	if err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	return apps, nil
}

func (s *PortalService) Apply(ctx context.Context, jobID, resumeName string) (*domain.Application, error) {
	app, err := ports.Call[domain.Application](ctx, s.api, EndpointApplications, ports.RequestOptions{
		Method: http.MethodPost,
		Body: map[string]string{
			"jobId":      jobID,
			"resumeName": resumeName,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("apply: %w", notFoundAs(err, domain.ErrJobNotFound))
	}
	return &app, nil
}

func (s *PortalService) DashboardMetrics(ctx context.Context) (*domain.DashboardMetrics, error) {
	m, err := ports.Call[domain.DashboardMetrics](ctx, s.api, EndpointMetrics, ports.RequestOptions{})
	if err != nil {
		return nil, fmt.Errorf("dashboard metrics: %w", err)
	}
	return &m, nil
}

// UpdateProfile saves the changes and reloads the session user so it reflects
// what the server stored.
func (s *PortalService) UpdateProfile(ctx context.Context, update domain.ProfileUpdate) (*domain.User, error) {
	if _, err := s.api.Do(ctx, EndpointProfile, ports.RequestOptions{
		Method: http.MethodPut,
		Body:   update,
	}); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return s.session.Refresh(ctx)
}

func jobPath(id string) string {
	return EndpointJobs + "/" + url.PathEscape(id)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// notFoundAs joins target onto a 404 so callers can match it with errors.Is.
func notFoundAs(err, target error) error {
	if domain.StatusCodeOf(err) == http.StatusNotFound {
		return fmt.Errorf("%w: %w", target, err)
	}
	return err
}
