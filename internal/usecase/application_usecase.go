package usecase

import (
	"context"
	"strings"

	"go-applytrack-backend/internal/domain"
	"go-applytrack-backend/pkg/apperror"
	"go-applytrack-backend/pkg/audit"
	"go-applytrack-backend/pkg/normalize"
)

type applicationUsecase struct {
	appRepo domain.ApplicationRepository
	jobRepo domain.JobRepository
	audit   *audit.Logger
}

func NewApplicationUsecase(appRepo domain.ApplicationRepository, jobRepo domain.JobRepository, auditLog *audit.Logger) domain.ApplicationUsecase {
	return &applicationUsecase{
		appRepo: appRepo,
		jobRepo: jobRepo,
		audit:   auditLog,
	}
}

// Apply creates an application for the calling candidate. The insert runs
// against the (job_id, candidate_id) unique constraint, so two concurrent
// applies resolve to one row and one Conflict.
func (u *applicationUsecase) Apply(ctx context.Context, candidateID string, jobID int64, input domain.ApplyInput) (*domain.Application, error) {
	job, err := u.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, err
	}

	if !job.AcceptsApplications() {
		return nil, apperror.Forbidden("This job is not accepting applications (status: " + job.Status + ")")
	}

	answers := trimAnswers(input.Answers)
	if missing := missingRequiredAnswers(job.Requirements, answers); len(missing) > 0 {
		return nil, apperror.BadRequest("Missing required answers for questions: " + strings.Join(missing, ", "))
	}

	// Friendly pre-check; the constraint still decides under races.
	exists, err := u.appRepo.CheckExists(ctx, jobID, candidateID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.Conflict("You have already applied to this job")
	}

	app := &domain.Application{
		JobID:       jobID,
		CandidateID: candidateID,
		Status:      domain.ApplicationStatusApplied,
		ResumeURL:   normalize.URL(input.ResumeURL),
		Answers:     answers,
	}
	if cover := strings.TrimSpace(input.CoverLetter); cover != "" {
		app.CoverLetter = &cover
	}

	if err := u.appRepo.Create(ctx, app); err != nil {
		if err == domain.ErrDuplicateApplication {
			return nil, apperror.Conflict("You have already applied to this job")
		}
		return nil, err
	}

	u.audit.ApplicationCreated(ctx, candidateID, jobID, app.ID)
	return app, nil
}

func (u *applicationUsecase) ListMine(ctx context.Context, candidateID string) ([]domain.Application, error) {
	ctxUserID, ok := ctx.Value(domain.KeyUserID).(string)
	if !ok || ctxUserID == "" {
		return nil, apperror.Unauthorized("User not authenticated")
	}
	if ctxUserID != candidateID {
		return nil, apperror.Forbidden("You can only view your own applications")
	}
	return u.appRepo.GetByCandidateID(ctx, candidateID)
}

func (u *applicationUsecase) ListForJob(ctx context.Context, userID string, jobID int64) ([]domain.Application, error) {
	if err := requireRecruiter(ctx); err != nil {
		return nil, err
	}

	job, err := u.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, err
	}
	if !job.OwnedBy(userID) {
		return nil, apperror.Forbidden("You can only view applications for your own job postings")
	}

	return u.appRepo.GetByJobID(ctx, jobID)
}

func (u *applicationUsecase) GetDetail(ctx context.Context, userID string, applicationID int64) (*domain.Application, error) {
	app, err := u.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, apperror.NotFound("Application not found")
		}
		return nil, err
	}

	if app.CandidateID == userID {
		return app, nil
	}

	role, _ := ctx.Value(domain.KeyUserRole).(string)
	if strings.EqualFold(role, domain.RoleRecruiter) {
		job, err := u.jobRepo.GetByID(ctx, app.JobID)
		if err != nil {
			return nil, err
		}
		if job.OwnedBy(userID) {
			return app, nil
		}
	}

	return nil, apperror.Forbidden("You are not allowed to view this application")
}

// UpdateStatus moves an application to a new status. The candidate who
// owns the application and the recruiter who owns the job may both act;
// everyone else gets a 403.
func (u *applicationUsecase) UpdateStatus(ctx context.Context, userID, role string, applicationID int64, externalStatus string) (*domain.Application, error) {
	internal, ok := domain.InternalStatus(externalStatus)
	if !ok {
		return nil, apperror.BadRequest("Invalid status: must be one of " + strings.Join(domain.ExternalStatuses(), ", "))
	}

	app, err := u.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, apperror.NotFound("Application not found")
		}
		return nil, err
	}

	allowed := app.CandidateID == userID
	if !allowed && strings.EqualFold(role, domain.RoleRecruiter) {
		job, err := u.jobRepo.GetByID(ctx, app.JobID)
		if err != nil {
			return nil, err
		}
		allowed = job.OwnedBy(userID)
	}
	if !allowed {
		return nil, apperror.Forbidden("You are not allowed to update this application")
	}

	if app.Status == internal {
		return app, nil
	}

	if err := u.appRepo.UpdateStatus(ctx, applicationID, internal); err != nil {
		return nil, err
	}

	u.audit.StatusChanged(ctx, userID, applicationID, app.Status, internal)
	app.Status = internal
	return app, nil
}

// trimAnswers strips whitespace and drops blank entries so a
// spaces-only answer can't satisfy a required question.
func trimAnswers(in domain.AnswerSet) domain.AnswerSet {
	if len(in) == 0 {
		return nil
	}
	out := make(domain.AnswerSet, len(in))
	for id, answer := range in {
		if trimmed := strings.TrimSpace(answer); trimmed != "" {
			out[id] = trimmed
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func missingRequiredAnswers(req domain.Requirements, answers domain.AnswerSet) []string {
	var missing []string
	for _, id := range req.RequiredQuestionIDs() {
		if _, ok := answers[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}
