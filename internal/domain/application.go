package domain

import (
	"context"
	"encoding/json"
	"time"
)

// Internal application status values
const (
	ApplicationStatusApplied     = "applied"
	ApplicationStatusUnderReview = "under_review"
	ApplicationStatusInterview   = "interview"
	ApplicationStatusOffer       = "offer"
	ApplicationStatusHired       = "hired"
	ApplicationStatusRejected    = "rejected"
)

// statusToExternal maps internal status values to the display vocabulary.
var statusToExternal = map[string]string{
	ApplicationStatusApplied:     "Applied",
	ApplicationStatusUnderReview: "Under Review",
	ApplicationStatusInterview:   "Interview",
	ApplicationStatusOffer:       "Offer",
	ApplicationStatusHired:       "Hired",
	ApplicationStatusRejected:    "Rejected",
}

var statusToInternal = func() map[string]string {
	m := make(map[string]string, len(statusToExternal))
	for internal, external := range statusToExternal {
		m[external] = internal
	}
	return m
}()

// ExternalStatus converts an internal status to its display form.
// Unknown values are returned as-is so legacy rows still render.
func ExternalStatus(internal string) string {
	if ext, ok := statusToExternal[internal]; ok {
		return ext
	}
	return internal
}

// InternalStatus converts a display status ("Under Review") to the stored
// form ("under_review"). The second return is false for anything outside
// the fixed six-value vocabulary.
func InternalStatus(external string) (string, bool) {
	internal, ok := statusToInternal[external]
	return internal, ok
}

// ExternalStatuses returns the full display vocabulary.
func ExternalStatuses() []string {
	return []string{"Applied", "Under Review", "Interview", "Offer", "Hired", "Rejected"}
}

// AnswerSet maps supplemental question ids to the candidate's answers.
// The wire shape is loose: clients historically sent either a flat map
// {"q1": "answer"} or an array [{"question_id": "q1", "answer": "..."}].
// Both decode into the same map; the rest of the code only sees this shape.
type AnswerSet map[string]string

func (a *AnswerSet) UnmarshalJSON(data []byte) error {
	var flat map[string]string
	if err := json.Unmarshal(data, &flat); err == nil {
		*a = flat
		return nil
	}

	var entries []struct {
		QuestionID string `json:"question_id"`
		Answer     string `json:"answer"`
	}
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	m := make(AnswerSet, len(entries))
	for _, e := range entries {
		m[e.QuestionID] = e.Answer
	}
	*a = m
	return nil
}

// Application represents a candidate's application to a job.
// At most one application exists per (job, candidate) pair.
type Application struct {
	ID          int64     `json:"id"`
	JobID       int64     `json:"job_id"`
	CandidateID string    `json:"candidate_id"`
	Status      string    `json:"status"` // internal value; handlers emit ExternalStatus
	ResumeURL   string    `json:"resume_url,omitempty"`
	CoverLetter *string   `json:"cover_letter,omitempty"`
	Answers     AnswerSet `json:"supplemental_answers,omitempty"`
	AppliedAt   time.Time `json:"applied_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Joined data for list responses
	CandidateName *string `json:"candidate_name,omitempty"`
	JobTitle      *string `json:"job_title,omitempty"`
	JobCompany    *string `json:"job_company,omitempty"`
}

// ApplicationRepository defines data access methods for applications
type ApplicationRepository interface {
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id int64) (*Application, error)
	GetByJobID(ctx context.Context, jobID int64) ([]Application, error)
	GetByCandidateID(ctx context.Context, candidateID string) ([]Application, error)
	CheckExists(ctx context.Context, jobID int64, candidateID string) (bool, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
}

// ApplicationUsecase defines business logic for applications
type ApplicationUsecase interface {
	// Candidate operations
	Apply(ctx context.Context, candidateID string, jobID int64, input ApplyInput) (*Application, error)
	ListMine(ctx context.Context, candidateID string) ([]Application, error)

	// Recruiter operations
	ListForJob(ctx context.Context, userID string, jobID int64) ([]Application, error)
	GetDetail(ctx context.Context, userID string, applicationID int64) (*Application, error)

	// Either side, authorization resolved inside
	UpdateStatus(ctx context.Context, userID, role string, applicationID int64, externalStatus string) (*Application, error)
}

// ApplyInput carries the candidate-supplied parts of a new application.
type ApplyInput struct {
	ResumeURL   string    `json:"resume_url"`
	CoverLetter string    `json:"cover_letter"`
	Answers     AnswerSet `json:"supplemental_answers"`
}
