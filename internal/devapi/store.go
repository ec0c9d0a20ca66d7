package devapi

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/prepwise/interview-portal/internal/core/domain"
	"github.com/prepwise/interview-portal/internal/core/ports"
)

// MemoryAccounts is an in-process ports.AccountRepository.
type MemoryAccounts struct {
	mu      sync.RWMutex
	byID    map[string]*domain.Account
	byEmail map[string]string
}

func NewMemoryAccounts() *MemoryAccounts {
	return &MemoryAccounts{
		byID:    make(map[string]*domain.Account),
		byEmail: make(map[string]string),
	}
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	c := *a
	return &c
}

func (r *MemoryAccounts) Create(_ context.Context, account *domain.Account) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[account.Email]; exists {
		return nil, domain.ErrUserExists
	}
	c := cloneAccount(account)
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	r.byID[c.ID] = c
	r.byEmail[c.Email] = c.ID
	return cloneAccount(c), nil
}

func (r *MemoryAccounts) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneAccount(r.byID[id]), nil
}

func (r *MemoryAccounts) FindByID(_ context.Context, id string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneAccount(a), nil
}

func (r *MemoryAccounts) UpdateProfile(_ context.Context, id string, update domain.ProfileUpdate) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	applyProfile(&a.User, update)
	return cloneAccount(a), nil
}

func applyProfile(u *domain.User, update domain.ProfileUpdate) {
	if update.Name != nil {
		u.Name = *update.Name
	}
	if update.Phone != nil {
		u.Phone = *update.Phone
	}
	if update.Bio != nil {
		u.Bio = *update.Bio
	}
	if update.Avatar != nil {
		u.Avatar = *update.Avatar
	}
}

var _ ports.AccountRepository = (*MemoryAccounts)(nil)

// Board holds job positions and applications.
type Board struct {
	mu   sync.RWMutex
	jobs map[string]*domain.JobPosition
	apps map[string]*domain.Application
}

func NewBoard() *Board {
	return &Board{
		jobs: make(map[string]*domain.JobPosition),
		apps: make(map[string]*domain.Application),
	}
}

func (b *Board) ListJobs(filter ports.JobFilter) []domain.JobPosition {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]domain.JobPosition, 0, len(b.jobs))
	for _, j := range b.jobs {
		if !matchesJob(*j, filter) {
			continue
		}
		out = append(out, *j)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].CreatedAt.After(out[k].CreatedAt) })
	return out
}

func (b *Board) GetJob(id string) (domain.JobPosition, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	j, ok := b.jobs[id]
	if !ok {
		return domain.JobPosition{}, domain.ErrJobNotFound
	}
	return *j, nil
}

func (b *Board) CreateJob(in ports.JobPositionInput) domain.JobPosition {
	now := time.Now().UTC()
	j := &domain.JobPosition{ID: uuid.NewString(), CreatedAt: now}
	applyJob(j, in, now)

	b.mu.Lock()
	b.jobs[j.ID] = j
	b.mu.Unlock()
	return *j
}

func (b *Board) UpdateJob(id string, in ports.JobPositionInput) (domain.JobPosition, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	j, ok := b.jobs[id]
	if !ok {
		return domain.JobPosition{}, domain.ErrJobNotFound
	}
	applyJob(j, in, time.Now().UTC())
	return *j, nil
}

func (b *Board) DeleteJob(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.jobs[id]; !ok {
		return domain.ErrJobNotFound
	}
	delete(b.jobs, id)
	return nil
}

func (b *Board) Apply(candidateID, jobID, resumeName string) (domain.Application, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	j, ok := b.jobs[jobID]
	if !ok || j.Status != domain.JobOpen {
		return domain.Application{}, domain.ErrJobNotFound
	}
	a := &domain.Application{
		ID:          uuid.NewString(),
		JobID:       jobID,
		JobTitle:    j.Title,
		CandidateID: candidateID,
		Status:      domain.ApplicationApplied,
		ResumeName:  resumeName,
		AppliedAt:   time.Now().UTC(),
	}
	b.apps[a.ID] = a
	return *a, nil
}

// Applications returns the candidate's applications, or every application
// when candidateID is empty.
func (b *Board) Applications(candidateID string) []domain.Application {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]domain.Application, 0)
	for _, a := range b.apps {
		if candidateID != "" && a.CandidateID != candidateID {
			continue
		}
		out = append(out, *a)
	}
	sort.Slice(out, func(i, k int) bool { return out[i].AppliedAt.After(out[k].AppliedAt) })
	return out
}

// Metrics computes dashboard counters as seen by the given user.
func (b *Board) Metrics(user domain.User) domain.DashboardMetrics {
	scope := ""
	if user.Role == domain.RoleCandidate {
		scope = user.ID
	}
	apps := b.Applications(scope)

	b.mu.RLock()
	open := 0
	for _, j := range b.jobs {
		if j.Status == domain.JobOpen {
			open++
		}
	}
	b.mu.RUnlock()

	m := domain.DashboardMetrics{OpenPositions: open, TotalApplications: len(apps)}
	for _, a := range apps {
		switch a.Status {
		case domain.ApplicationInterview:
			m.TotalInterviews++
		case domain.ApplicationOffer, domain.ApplicationRejected:
			m.TotalInterviews++
			m.CompletedInterviews++
		case domain.ApplicationApplied, domain.ApplicationScreening:
			m.PendingReviews++
		}
	}
	return m
}

func applyJob(j *domain.JobPosition, in ports.JobPositionInput, now time.Time) {
	j.Title = in.Title
	j.Department = in.Department
	j.Location = in.Location
	j.EmploymentType = in.EmploymentType
	j.Description = in.Description
	j.Requirements = append([]string(nil), in.Requirements...)
	j.Status = in.Status
	if j.Status == "" {
		j.Status = domain.JobDraft
	}
	j.UpdatedAt = now
}

func matchesJob(j domain.JobPosition, f ports.JobFilter) bool {
	if f.Status != "" && string(j.Status) != f.Status {
		return false
	}
	if f.Department != "" && !strings.EqualFold(j.Department, f.Department) {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(j.Title), q) && !strings.Contains(strings.ToLower(j.Description), q) {
			return false
		}
	}
	return true
}
