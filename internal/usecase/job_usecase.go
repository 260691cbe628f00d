package usecase

import (
	"context"
	"strings"

	"go-applytrack-backend/internal/domain"
	"go-applytrack-backend/pkg/apperror"
	"go-applytrack-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type jobUsecase struct {
	repo     domain.JobRepository
	validate *validator.Validate
}

func NewJobUsecase(repo domain.JobRepository, validate *validator.Validate) domain.JobUsecase {
	return &jobUsecase{
		repo:     repo,
		validate: validate,
	}
}

func (u *jobUsecase) CreateJob(ctx context.Context, userID string, job *domain.Job) error {
	if err := requireRecruiter(ctx); err != nil {
		return err
	}

	job.EmployerID = &userID
	if job.Status == "" {
		job.Status = domain.JobStatusDraft
	}

	if err := u.checkJob(job); err != nil {
		return err
	}
	return u.repo.Create(ctx, job)
}

func (u *jobUsecase) GetJob(ctx context.Context, id int64) (*domain.Job, error) {
	job, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if err == domain.ErrNotFound {
			return nil, apperror.NotFound("Job not found")
		}
		return nil, err
	}
	return job, nil
}

func (u *jobUsecase) ListOpenJobs(ctx context.Context, page, pageSize int) ([]domain.Job, int64, error) {
	limit, offset := pageBounds(page, pageSize)
	return u.repo.FetchOpen(ctx, limit, offset)
}

func (u *jobUsecase) ListMyJobs(ctx context.Context, userID string, page, pageSize int) ([]domain.Job, int64, error) {
	if err := requireRecruiter(ctx); err != nil {
		return nil, 0, err
	}
	limit, offset := pageBounds(page, pageSize)
	return u.repo.FetchByEmployer(ctx, userID, limit, offset)
}

func (u *jobUsecase) UpdateJob(ctx context.Context, userID string, job *domain.Job) error {
	if err := requireRecruiter(ctx); err != nil {
		return err
	}

	existing, err := u.repo.GetByID(ctx, job.ID)
	if err != nil {
		if err == domain.ErrNotFound {
			return apperror.NotFound("Job not found")
		}
		return err
	}
	if !existing.OwnedBy(userID) {
		return apperror.Forbidden("You can only edit your own job postings")
	}

	// Ownership never changes on update
	job.EmployerID = existing.EmployerID
	if job.Status == "" {
		job.Status = existing.Status
	}

	if err := u.checkJob(job); err != nil {
		return err
	}
	return u.repo.Update(ctx, job)
}

func (u *jobUsecase) CloseJob(ctx context.Context, userID string, id int64) error {
	if err := requireRecruiter(ctx); err != nil {
		return err
	}

	existing, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if err == domain.ErrNotFound {
			return apperror.NotFound("Job not found")
		}
		return err
	}
	if !existing.OwnedBy(userID) {
		return apperror.Forbidden("You can only close your own job postings")
	}

	return u.repo.UpdateStatus(ctx, id, domain.JobStatusClosed)
}

// checkJob runs struct validation plus the rules the tags can't express.
func (u *jobUsecase) checkJob(job *domain.Job) error {
	if err := u.validate.Struct(job); err != nil {
		return apperror.Validation("Job validation failed", validation.Collect(err))
	}

	if !domain.ValidJobStatus(job.Status) {
		return apperror.BadRequest("Invalid job status: must be draft, open or closed")
	}
	if job.SalaryMin < 0 || job.SalaryMax < 0 {
		return apperror.BadRequest("Salary must not be negative")
	}
	if job.SalaryMax > 0 && job.SalaryMin > job.SalaryMax {
		return apperror.BadRequest("Minimum salary must not exceed maximum salary")
	}

	seen := make(map[string]bool, len(job.Requirements.Questions))
	for _, q := range job.Requirements.Questions {
		if seen[q.ID] {
			return apperror.BadRequest("Duplicate supplemental question id: " + q.ID)
		}
		seen[q.ID] = true
		if q.Type == domain.QuestionTypeSelect && len(q.Options) == 0 {
			return apperror.BadRequest("Select question " + q.ID + " must define options")
		}
	}
	return nil
}

func requireRecruiter(ctx context.Context) error {
	ctxUserID, ok := ctx.Value(domain.KeyUserID).(string)
	if !ok || ctxUserID == "" {
		return apperror.Unauthorized("User not authenticated")
	}
	role, _ := ctx.Value(domain.KeyUserRole).(string)
	if !strings.EqualFold(role, domain.RoleRecruiter) {
		return apperror.Forbidden("Recruiter role required")
	}
	return nil
}

func pageBounds(page, pageSize int) (limit, offset int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return pageSize, (page - 1) * pageSize
}
