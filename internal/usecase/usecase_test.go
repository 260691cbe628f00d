package usecase_test

import (
	"context"
	"testing"

	"go-applytrack-backend/internal/domain"
	"go-applytrack-backend/internal/usecase"
	"go-applytrack-backend/pkg/apperror"
	"go-applytrack-backend/pkg/audit"
	"go-applytrack-backend/pkg/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Mock Repositories
type MockProfileRepo struct {
	mock.Mock
}

func (m *MockProfileRepo) GetByUserID(ctx context.Context, userID string) (*domain.CandidateProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CandidateProfile), args.Error(1)
}

func (m *MockProfileRepo) Upsert(ctx context.Context, profile *domain.CandidateProfile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *MockProfileRepo) UpdateResumeURL(ctx context.Context, userID, resumeURL string) error {
	return m.Called(ctx, userID, resumeURL).Error(0)
}

type MockJobRepo struct {
	mock.Mock
}

func (m *MockJobRepo) Create(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}
func (m *MockJobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}
func (m *MockJobRepo) FetchOpen(ctx context.Context, limit, offset int) ([]domain.Job, int64, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]domain.Job), args.Get(1).(int64), args.Error(2)
}
func (m *MockJobRepo) FetchByEmployer(ctx context.Context, employerID string, limit, offset int) ([]domain.Job, int64, error) {
	args := m.Called(ctx, employerID, limit, offset)
	return args.Get(0).([]domain.Job), args.Get(1).(int64), args.Error(2)
}
func (m *MockJobRepo) Update(ctx context.Context, job *domain.Job) error {
	return m.Called(ctx, job).Error(0)
}
func (m *MockJobRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

type MockApplicationRepo struct {
	mock.Mock
}

func (m *MockApplicationRepo) Create(ctx context.Context, app *domain.Application) error {
	return m.Called(ctx, app).Error(0)
}
func (m *MockApplicationRepo) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) GetByJobID(ctx context.Context, jobID int64) ([]domain.Application, error) {
	args := m.Called(ctx, jobID)
	return args.Get(0).([]domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) GetByCandidateID(ctx context.Context, candidateID string) ([]domain.Application, error) {
	args := m.Called(ctx, candidateID)
	return args.Get(0).([]domain.Application), args.Error(1)
}
func (m *MockApplicationRepo) CheckExists(ctx context.Context, jobID int64, candidateID string) (bool, error) {
	args := m.Called(ctx, jobID, candidateID)
	return args.Bool(0), args.Error(1)
}
func (m *MockApplicationRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

func candidateCtx(userID string) context.Context {
	ctx := context.WithValue(context.Background(), domain.KeyUserID, userID)
	return context.WithValue(ctx, domain.KeyUserRole, domain.RoleCandidate)
}

func recruiterCtx(userID string) context.Context {
	ctx := context.WithValue(context.Background(), domain.KeyUserID, userID)
	return context.WithValue(ctx, domain.KeyUserRole, domain.RoleRecruiter)
}

func strptr(s string) *string { return &s }

func TestProfileOwnership(t *testing.T) {
	mockRepo := new(MockProfileRepo)
	uc := usecase.NewProfileUsecase(mockRepo, validation.New(), audit.Nop())

	t.Run("Should fail when context user does not match argument user", func(t *testing.T) {
		_, err := uc.GetProfile(candidateCtx("user1"), "user2")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "only view your own profile")
	})

	t.Run("Should fail safely when context has no identity", func(t *testing.T) {
		_, err := uc.GetProfile(context.Background(), "user1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "User not authenticated")
	})

	t.Run("Should return 404 when no profile exists", func(t *testing.T) {
		mockRepo.On("GetByUserID", mock.Anything, "user1").Return(nil, nil).Once()
		_, err := uc.GetProfile(candidateCtx("user1"), "user1")
		assert.Error(t, err)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.Code)
	})
}

func TestSaveProfileValidationAndNormalization(t *testing.T) {
	const userID = "3f1d6d54-9b7a-4f82-9a2f-6a11c6f0d101"

	t.Run("Should reject profile missing required fields", func(t *testing.T) {
		mockRepo := new(MockProfileRepo)
		uc := usecase.NewProfileUsecase(mockRepo, validation.New(), audit.Nop())

		_, err := uc.SaveProfile(candidateCtx(userID), userID, &domain.CandidateProfile{})
		assert.Error(t, err)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 422, appErr.Code)
		assert.Contains(t, appErr.Fields, "name")
		assert.Contains(t, appErr.Fields, "email")
	})

	t.Run("Should normalize before persisting", func(t *testing.T) {
		mockRepo := new(MockProfileRepo)
		uc := usecase.NewProfileUsecase(mockRepo, validation.New(), audit.Nop())
		mockRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil).Once()

		profile := &domain.CandidateProfile{
			UserID:      "ignored-by-server",
			Name:        "john doe",
			Email:       "John@Example.COM",
			Phone:       "1234567890",
			Skills:      []string{"Go", "go", "GO", "SQL"},
			LinkedinURL: "linkedin.com/in/johndoe",
		}
		saved, err := uc.SaveProfile(candidateCtx(userID), userID, profile)
		assert.NoError(t, err)
		assert.Equal(t, userID, saved.UserID)
		assert.Equal(t, "John Doe", saved.Name)
		assert.Equal(t, "john@example.com", saved.Email)
		assert.Equal(t, "(123) 456-7890", saved.Phone)
		assert.Equal(t, []string{"go", "sql"}, saved.Skills)
		assert.Equal(t, "https://linkedin.com/in/johndoe", saved.LinkedinURL)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Should clear EEO details when prefer-not-to-say is set", func(t *testing.T) {
		mockRepo := new(MockProfileRepo)
		uc := usecase.NewProfileUsecase(mockRepo, validation.New(), audit.Nop())
		mockRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil).Once()

		preferNot := true
		profile := &domain.CandidateProfile{
			Name:              "Jane Roe",
			Email:             "jane@example.com",
			EEOGender:         "female",
			EEORace:           "asian",
			EEOPreferNotToSay: domain.FlexBool{Value: &preferNot},
		}
		saved, err := uc.SaveProfile(candidateCtx(userID), userID, profile)
		assert.NoError(t, err)
		assert.Empty(t, saved.EEOGender)
		assert.Empty(t, saved.EEORace)
		assert.True(t, saved.EEOPreferNotToSay.Bool())
	})
}

func TestUpdateProfilePartial(t *testing.T) {
	const userID = "3f1d6d54-9b7a-4f82-9a2f-6a11c6f0d101"

	t.Run("Should keep stored values for fields absent from the patch", func(t *testing.T) {
		mockRepo := new(MockProfileRepo)
		uc := usecase.NewProfileUsecase(mockRepo, validation.New(), audit.Nop())

		existing := &domain.CandidateProfile{
			UserID: userID,
			Name:   "John Doe",
			Email:  "john@example.com",
			Phone:  "(123) 456-7890",
		}
		mockRepo.On("GetByUserID", mock.Anything, userID).Return(existing, nil).Once()
		mockRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil).Once()

		patch := &domain.ProfileUpdate{Name: strptr("jane doe")}
		updated, err := uc.UpdateProfile(candidateCtx(userID), userID, patch)
		assert.NoError(t, err)
		assert.Equal(t, "Jane Doe", updated.Name)
		assert.Equal(t, "john@example.com", updated.Email)
		assert.Equal(t, "(123) 456-7890", updated.Phone)
	})

	t.Run("Should 404 when patching a profile that does not exist", func(t *testing.T) {
		mockRepo := new(MockProfileRepo)
		uc := usecase.NewProfileUsecase(mockRepo, validation.New(), audit.Nop())
		mockRepo.On("GetByUserID", mock.Anything, userID).Return(nil, nil).Once()

		_, err := uc.UpdateProfile(candidateCtx(userID), userID, &domain.ProfileUpdate{Name: strptr("X")})
		assert.Error(t, err)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.Code)
	})

	t.Run("Should reject invalid patch fields with field-keyed errors", func(t *testing.T) {
		mockRepo := new(MockProfileRepo)
		uc := usecase.NewProfileUsecase(mockRepo, validation.New(), audit.Nop())

		patch := &domain.ProfileUpdate{Email: strptr("not-an-email")}
		_, err := uc.UpdateProfile(candidateCtx(userID), userID, patch)
		assert.Error(t, err)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 422, appErr.Code)
		assert.Contains(t, appErr.Fields, "email")
	})
}

func TestCreateJob(t *testing.T) {
	t.Run("Should require the recruiter role", func(t *testing.T) {
		uc := usecase.NewJobUsecase(new(MockJobRepo), validation.New())
		err := uc.CreateJob(candidateCtx("user1"), "user1", &domain.Job{Title: "Engineer", Company: "Acme"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Recruiter role required")
	})

	t.Run("Should default status to draft and stamp ownership", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(mockRepo, validation.New())
		mockRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

		job := &domain.Job{Title: "Engineer", Company: "Acme"}
		err := uc.CreateJob(recruiterCtx("rec1"), "rec1", job)
		assert.NoError(t, err)
		assert.Equal(t, domain.JobStatusDraft, job.Status)
		if assert.NotNil(t, job.EmployerID) {
			assert.Equal(t, "rec1", *job.EmployerID)
		}
	})

	t.Run("Should reject statuses outside the canonical enum", func(t *testing.T) {
		uc := usecase.NewJobUsecase(new(MockJobRepo), validation.New())
		job := &domain.Job{Title: "Engineer", Company: "Acme", Status: "paused"}
		err := uc.CreateJob(recruiterCtx("rec1"), "rec1", job)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid job status")
	})

	t.Run("Should reject inverted salary range", func(t *testing.T) {
		uc := usecase.NewJobUsecase(new(MockJobRepo), validation.New())
		job := &domain.Job{Title: "Engineer", Company: "Acme", SalaryMin: 200000, SalaryMax: 100000}
		err := uc.CreateJob(recruiterCtx("rec1"), "rec1", job)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Minimum salary")
	})

	t.Run("Should reject select questions without options", func(t *testing.T) {
		uc := usecase.NewJobUsecase(new(MockJobRepo), validation.New())
		job := &domain.Job{
			Title:   "Engineer",
			Company: "Acme",
			Requirements: domain.Requirements{
				Questions: []domain.SupplementalQuestion{
					{ID: "q1", Question: "Visa status?", Type: domain.QuestionTypeSelect},
				},
			},
		}
		err := uc.CreateJob(recruiterCtx("rec1"), "rec1", job)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "must define options")
	})
}

func TestJobOwnership(t *testing.T) {
	t.Run("Should refuse closing another recruiter's job", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(mockRepo, validation.New())
		mockRepo.On("GetByID", mock.Anything, int64(7)).
			Return(&domain.Job{ID: 7, EmployerID: strptr("other")}, nil).Once()

		err := uc.CloseJob(recruiterCtx("rec1"), "rec1", 7)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "own job postings")
	})

	t.Run("Should let any recruiter act on legacy jobs without an owner", func(t *testing.T) {
		mockRepo := new(MockJobRepo)
		uc := usecase.NewJobUsecase(mockRepo, validation.New())
		mockRepo.On("GetByID", mock.Anything, int64(7)).
			Return(&domain.Job{ID: 7}, nil).Once()
		mockRepo.On("UpdateStatus", mock.Anything, int64(7), domain.JobStatusClosed).Return(nil).Once()

		err := uc.CloseJob(recruiterCtx("rec1"), "rec1", 7)
		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})
}

func TestApply(t *testing.T) {
	const candidate = "cand1"

	openJob := func() *domain.Job {
		return &domain.Job{ID: 1, Title: "Engineer", Company: "Acme", Status: domain.JobStatusOpen}
	}

	t.Run("Should 404 on unknown job", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		appRepo := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(appRepo, jobRepo, audit.Nop())
		jobRepo.On("GetByID", mock.Anything, int64(99)).Return(nil, domain.ErrNotFound).Once()

		_, err := uc.Apply(candidateCtx(candidate), candidate, 99, domain.ApplyInput{})
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.Code)
	})

	t.Run("Should refuse closed jobs and name the actual status", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		appRepo := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(appRepo, jobRepo, audit.Nop())
		jobRepo.On("GetByID", mock.Anything, int64(1)).
			Return(&domain.Job{ID: 1, Status: domain.JobStatusClosed}, nil).Once()

		_, err := uc.Apply(candidateCtx(candidate), candidate, 1, domain.ApplyInput{})
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 403, appErr.Code)
		assert.Contains(t, appErr.Message, "closed")
	})

	t.Run("Should accept legacy jobs with an empty status", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		appRepo := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(appRepo, jobRepo, audit.Nop())
		jobRepo.On("GetByID", mock.Anything, int64(1)).Return(&domain.Job{ID: 1}, nil).Once()
		appRepo.On("CheckExists", mock.Anything, int64(1), candidate).Return(false, nil).Once()
		appRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

		app, err := uc.Apply(candidateCtx(candidate), candidate, 1, domain.ApplyInput{})
		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusApplied, app.Status)
	})

	t.Run("Should list missing required answers", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		appRepo := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(appRepo, jobRepo, audit.Nop())
		job := openJob()
		job.Requirements.Questions = []domain.SupplementalQuestion{
			{ID: "visa", Question: "Visa status?", Type: domain.QuestionTypeText, Required: true},
			{ID: "start", Question: "Start date?", Type: domain.QuestionTypeText, Required: true},
			{ID: "extra", Question: "Anything else?", Type: domain.QuestionTypeTextarea},
		}
		jobRepo.On("GetByID", mock.Anything, int64(1)).Return(job, nil).Once()

		input := domain.ApplyInput{Answers: domain.AnswerSet{"visa": "   "}}
		_, err := uc.Apply(candidateCtx(candidate), candidate, 1, input)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Code)
		assert.Contains(t, appErr.Message, "visa")
		assert.Contains(t, appErr.Message, "start")
		assert.NotContains(t, appErr.Message, "extra")
	})

	t.Run("Should 409 when an application already exists", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		appRepo := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(appRepo, jobRepo, audit.Nop())
		jobRepo.On("GetByID", mock.Anything, int64(1)).Return(openJob(), nil).Once()
		appRepo.On("CheckExists", mock.Anything, int64(1), candidate).Return(true, nil).Once()

		_, err := uc.Apply(candidateCtx(candidate), candidate, 1, domain.ApplyInput{})
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 409, appErr.Code)
	})

	t.Run("Should 409 when the unique constraint catches a race", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		appRepo := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(appRepo, jobRepo, audit.Nop())
		jobRepo.On("GetByID", mock.Anything, int64(1)).Return(openJob(), nil).Once()
		appRepo.On("CheckExists", mock.Anything, int64(1), candidate).Return(false, nil).Once()
		appRepo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicateApplication).Once()

		_, err := uc.Apply(candidateCtx(candidate), candidate, 1, domain.ApplyInput{})
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 409, appErr.Code)
	})
}

func TestUpdateApplicationStatus(t *testing.T) {
	application := func() *domain.Application {
		return &domain.Application{ID: 5, JobID: 1, CandidateID: "cand1", Status: domain.ApplicationStatusApplied}
	}

	t.Run("Should reject statuses outside the display vocabulary", func(t *testing.T) {
		uc := usecase.NewApplicationUsecase(new(MockApplicationRepo), new(MockJobRepo), audit.Nop())
		_, err := uc.UpdateStatus(candidateCtx("cand1"), "cand1", domain.RoleCandidate, 5, "Ghosted")
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 400, appErr.Code)
	})

	t.Run("Should let the owning candidate move their application", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(appRepo, new(MockJobRepo), audit.Nop())
		appRepo.On("GetByID", mock.Anything, int64(5)).Return(application(), nil).Once()
		appRepo.On("UpdateStatus", mock.Anything, int64(5), domain.ApplicationStatusRejected).Return(nil).Once()

		app, err := uc.UpdateStatus(candidateCtx("cand1"), "cand1", domain.RoleCandidate, 5, "Rejected")
		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusRejected, app.Status)
		appRepo.AssertExpectations(t)
	})

	t.Run("Should let the job's recruiter move the application", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(appRepo, jobRepo, audit.Nop())
		appRepo.On("GetByID", mock.Anything, int64(5)).Return(application(), nil).Once()
		jobRepo.On("GetByID", mock.Anything, int64(1)).
			Return(&domain.Job{ID: 1, EmployerID: strptr("rec1")}, nil).Once()
		appRepo.On("UpdateStatus", mock.Anything, int64(5), domain.ApplicationStatusInterview).Return(nil).Once()

		app, err := uc.UpdateStatus(recruiterCtx("rec1"), "rec1", domain.RoleRecruiter, 5, "Interview")
		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusInterview, app.Status)
	})

	t.Run("Should refuse a recruiter who does not own the job", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		jobRepo := new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(appRepo, jobRepo, audit.Nop())
		appRepo.On("GetByID", mock.Anything, int64(5)).Return(application(), nil).Once()
		jobRepo.On("GetByID", mock.Anything, int64(1)).
			Return(&domain.Job{ID: 1, EmployerID: strptr("other")}, nil).Once()

		_, err := uc.UpdateStatus(recruiterCtx("rec1"), "rec1", domain.RoleRecruiter, 5, "Interview")
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 403, appErr.Code)
	})

	t.Run("Should refuse an unrelated candidate", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(appRepo, new(MockJobRepo), audit.Nop())
		appRepo.On("GetByID", mock.Anything, int64(5)).Return(application(), nil).Once()

		_, err := uc.UpdateStatus(candidateCtx("cand2"), "cand2", domain.RoleCandidate, 5, "Hired")
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 403, appErr.Code)
	})

	t.Run("Should be a no-op when the status does not change", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		uc := usecase.NewApplicationUsecase(appRepo, new(MockJobRepo), audit.Nop())
		appRepo.On("GetByID", mock.Anything, int64(5)).Return(application(), nil).Once()

		app, err := uc.UpdateStatus(candidateCtx("cand1"), "cand1", domain.RoleCandidate, 5, "Applied")
		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationStatusApplied, app.Status)
		appRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestListForJob(t *testing.T) {
	t.Run("Should require recruiter role", func(t *testing.T) {
		uc := usecase.NewApplicationUsecase(new(MockApplicationRepo), new(MockJobRepo), audit.Nop())
		_, err := uc.ListForJob(candidateCtx("cand1"), "cand1", 1)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Recruiter role required")
	})

	t.Run("Should scope listings to the job owner", func(t *testing.T) {
		jobRepo := new(MockJobRepo)
		uc := usecase.NewApplicationUsecase(new(MockApplicationRepo), jobRepo, audit.Nop())
		jobRepo.On("GetByID", mock.Anything, int64(1)).
			Return(&domain.Job{ID: 1, EmployerID: strptr("other")}, nil).Once()

		_, err := uc.ListForJob(recruiterCtx("rec1"), "rec1", 1)
		var appErr *apperror.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 403, appErr.Code)
	})
}
