package domain

import (
	"context"
	"errors"
	"strings"
	"time"
)

// Common domain errors
var (
	ErrNotFound             = errors.New("resource not found")
	ErrDuplicateApplication = errors.New("application already exists for this job and candidate")
)

// Job status values. "paused" appeared in legacy data but is not part of
// the canonical enum; it is rejected on write and treated as not-open on read.
const (
	JobStatusDraft  = "draft"
	JobStatusOpen   = "open"
	JobStatusClosed = "closed"
)

// Supplemental question types
const (
	QuestionTypeText     = "text"
	QuestionTypeTextarea = "textarea"
	QuestionTypeSelect   = "select"
)

// ValidJobStatus reports whether s is one of the canonical job statuses.
func ValidJobStatus(s string) bool {
	switch s {
	case JobStatusDraft, JobStatusOpen, JobStatusClosed:
		return true
	}
	return false
}

// SupplementalQuestion is a recruiter-defined extra form field attached to
// a job posting, answered per application.
type SupplementalQuestion struct {
	ID       string   `json:"id" validate:"required,max=100"`
	Question string   `json:"question" validate:"required,max=500"`
	Type     string   `json:"type" validate:"required,oneof=text textarea select"`
	Options  []string `json:"options,omitempty" validate:"dive,max=200"`
	Required bool     `json:"required"`
}

// Requirements is the free-form requirements payload stored on a job.
// It embeds the supplemental questions candidates answer when applying.
type Requirements struct {
	Summary   string                 `json:"summary,omitempty"`
	Questions []SupplementalQuestion `json:"questions,omitempty"`
}

// RequiredQuestionIDs returns ids of questions that must be answered.
func (r Requirements) RequiredQuestionIDs() []string {
	var ids []string
	for _, q := range r.Questions {
		if q.Required {
			ids = append(ids, q.ID)
		}
	}
	return ids
}

// Job is a recruiter-owned posting. EmployerID is nullable: legacy rows
// have no owner and any recruiter may act on them.
type Job struct {
	ID           int64        `json:"id"`
	EmployerID   *string      `json:"employer_id,omitempty"`
	Title        string       `json:"title" validate:"required,max=200"`
	Company      string       `json:"company" validate:"required,max=200"`
	Location     string       `json:"location" validate:"max=200"`
	Description  string       `json:"description"`
	SalaryMin    float64      `json:"salary_min"`
	SalaryMax    float64      `json:"salary_max"`
	Requirements Requirements `json:"requirements"`
	Status       string       `json:"status"`
	Deadline     *time.Time   `json:"deadline,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// AcceptsApplications reports whether a job may receive new applications.
// An empty status is legacy data and is allowed through; any non-empty
// status other than "open" refuses applications.
func (j *Job) AcceptsApplications() bool {
	status := strings.TrimSpace(j.Status)
	return status == "" || status == JobStatusOpen
}

// OwnedBy reports whether the given recruiter may act on this job.
// Jobs without an employer are legacy rows: any recruiter may act.
func (j *Job) OwnedBy(userID string) bool {
	if j.EmployerID == nil || *j.EmployerID == "" {
		return true
	}
	return *j.EmployerID == userID
}

// JobRepository defines data access methods for jobs
type JobRepository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id int64) (*Job, error)
	FetchOpen(ctx context.Context, limit, offset int) ([]Job, int64, error)
	FetchByEmployer(ctx context.Context, employerID string, limit, offset int) ([]Job, int64, error)
	Update(ctx context.Context, job *Job) error
	UpdateStatus(ctx context.Context, id int64, status string) error
}

// JobUsecase defines business logic for jobs
type JobUsecase interface {
	CreateJob(ctx context.Context, userID string, job *Job) error
	GetJob(ctx context.Context, id int64) (*Job, error)
	ListOpenJobs(ctx context.Context, page, pageSize int) ([]Job, int64, error)
	ListMyJobs(ctx context.Context, userID string, page, pageSize int) ([]Job, int64, error)
	UpdateJob(ctx context.Context, userID string, job *Job) error
	CloseJob(ctx context.Context, userID string, id int64) error
}
