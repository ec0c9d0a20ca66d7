package domain

import (
	"errors"
	"time"
)

// JobStatus is the publication state of a job position.
type JobStatus string

const (
	JobOpen   JobStatus = "open"
	JobClosed JobStatus = "closed"
	JobDraft  JobStatus = "draft"
)

// ApplicationStatus tracks a candidate through the hiring pipeline.
type ApplicationStatus string

const (
	ApplicationApplied   ApplicationStatus = "applied"
	ApplicationScreening ApplicationStatus = "screening"
	ApplicationInterview ApplicationStatus = "interview"
	ApplicationOffer     ApplicationStatus = "offer"
	ApplicationRejected  ApplicationStatus = "rejected"
)

var (
	ErrJobNotFound = errors.New("job position not found")
	ErrForbidden   = errors.New("access forbidden")
)

// JobPosition is an opening published by HR.
type JobPosition struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Department     string    `json:"department"`
	Location       string    `json:"location"`
	EmploymentType string    `json:"employmentType"`
	Description    string    `json:"description"`
	Requirements   []string  `json:"requirements"`
	Status         JobStatus `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Application is a candidate's application to a job position.
type Application struct {
	ID          string            `json:"id"`
	JobID       string            `json:"jobId"`
	JobTitle    string            `json:"jobTitle"`
	CandidateID string            `json:"candidateId"`
	Status      ApplicationStatus `json:"status"`
	ResumeName  string            `json:"resumeName,omitempty"`
	AppliedAt   time.Time         `json:"appliedAt"`
}

// DashboardMetrics are the role-scoped counters shown on dashboards.
type DashboardMetrics struct {
	TotalInterviews     int     `json:"totalInterviews"`
	CompletedInterviews int     `json:"completedInterviews"`
	AverageScore        float64 `json:"averageScore"`
	OpenPositions       int     `json:"openPositions"`
	TotalApplications   int     `json:"totalApplications"`
	PendingReviews      int     `json:"pendingReviews"`
}
