package handler

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/prepwise/interview-portal/internal/core/domain"
	"github.com/prepwise/interview-portal/internal/core/ports"
)

type stubSessionService struct {
	user  *domain.User
	state domain.SessionState

	loginFn    func(ctx context.Context, email, password string, role domain.Role) (*domain.User, error)
	registerFn func(ctx context.Context, name, email, password string, role domain.Role) (*domain.User, error)
	refreshFn  func(ctx context.Context) (*domain.User, error)
	logouts    int
}

func (s *stubSessionService) CurrentUser() *domain.User { return s.user }

func (s *stubSessionService) State() domain.SessionState {
	if s.state == "" {
		return domain.StateUnauthenticated
	}
	return s.state
}

func (s *stubSessionService) Bootstrap(context.Context) {}

func (s *stubSessionService) Login(ctx context.Context, email, password string, role domain.Role) (*domain.User, error) {
	return s.loginFn(ctx, email, password, role)
}

func (s *stubSessionService) Register(ctx context.Context, name, email, password string, role domain.Role) (*domain.User, error) {
	return s.registerFn(ctx, name, email, password, role)
}

func (s *stubSessionService) Logout(context.Context) {
	s.logouts++
	s.user = nil
	s.state = domain.StateUnauthenticated
}

func (s *stubSessionService) Refresh(ctx context.Context) (*domain.User, error) {
	return s.refreshFn(ctx)
}

type stubPortalService struct {
	listJobsFn      func(ctx context.Context, f ports.JobFilter) ([]domain.JobPosition, error)
	getJobFn        func(ctx context.Context, id string) (*domain.JobPosition, error)
	createJobFn     func(ctx context.Context, in ports.JobPositionInput) (*domain.JobPosition, error)
	updateJobFn     func(ctx context.Context, id string, in ports.JobPositionInput) (*domain.JobPosition, error)
	deleteJobFn     func(ctx context.Context, id string) error
	listAppsFn      func(ctx context.Context) ([]domain.Application, error)
	applyFn         func(ctx context.Context, jobID, resumeName string) (*domain.Application, error)
	metricsFn       func(ctx context.Context) (*domain.DashboardMetrics, error)
	updateProfileFn func(ctx context.Context, u domain.ProfileUpdate) (*domain.User, error)
}

func (s *stubPortalService) ListJobPositions(ctx context.Context, f ports.JobFilter) ([]domain.JobPosition, error) {
	return s.listJobsFn(ctx, f)
}

func (s *stubPortalService) GetJobPosition(ctx context.Context, id string) (*domain.JobPosition, error) {
	return s.getJobFn(ctx, id)
}

func (s *stubPortalService) CreateJobPosition(ctx context.Context, in ports.JobPositionInput) (*domain.JobPosition, error) {
	return s.createJobFn(ctx, in)
}

func (s *stubPortalService) UpdateJobPosition(ctx context.Context, id string, in ports.JobPositionInput) (*domain.JobPosition, error) {
	return s.updateJobFn(ctx, id, in)
}

func (s *stubPortalService) DeleteJobPosition(ctx context.Context, id string) error {
	return s.deleteJobFn(ctx, id)
}

func (s *stubPortalService) ListApplications(ctx context.Context) ([]domain.Application, error) {
	return s.listAppsFn(ctx)
}

func (s *stubPortalService) Apply(ctx context.Context, jobID, resumeName string) (*domain.Application, error) {
	return s.applyFn(ctx, jobID, resumeName)
}

func (s *stubPortalService) DashboardMetrics(ctx context.Context) (*domain.DashboardMetrics, error) {
	return s.metricsFn(ctx)
}

func (s *stubPortalService) UpdateProfile(ctx context.Context, u domain.ProfileUpdate) (*domain.User, error) {
	return s.updateProfileFn(ctx, u)
}

func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	return resp
}
