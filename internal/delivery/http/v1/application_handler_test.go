package v1_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-applytrack-backend/internal/delivery/http/middleware"
	v1 "go-applytrack-backend/internal/delivery/http/v1"
	"go-applytrack-backend/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockApplicationUC struct {
	mock.Mock
}

func (m *MockApplicationUC) Apply(ctx context.Context, candidateID string, jobID int64, input domain.ApplyInput) (*domain.Application, error) {
	args := m.Called(ctx, candidateID, jobID, input)
	if app := args.Get(0); app != nil {
		return app.(*domain.Application), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockApplicationUC) ListMine(ctx context.Context, candidateID string) ([]domain.Application, error) {
	args := m.Called(ctx, candidateID)
	if apps := args.Get(0); apps != nil {
		return apps.([]domain.Application), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockApplicationUC) ListForJob(ctx context.Context, userID string, jobID int64) ([]domain.Application, error) {
	args := m.Called(ctx, userID, jobID)
	if apps := args.Get(0); apps != nil {
		return apps.([]domain.Application), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockApplicationUC) GetDetail(ctx context.Context, userID string, applicationID int64) (*domain.Application, error) {
	args := m.Called(ctx, userID, applicationID)
	if app := args.Get(0); app != nil {
		return app.(*domain.Application), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockApplicationUC) UpdateStatus(ctx context.Context, userID, role string, applicationID int64, externalStatus string) (*domain.Application, error) {
	args := m.Called(ctx, userID, role, applicationID, externalStatus)
	if app := args.Get(0); app != nil {
		return app.(*domain.Application), args.Error(1)
	}
	return nil, args.Error(1)
}

func newApplicationRouter(uc domain.ApplicationUsecase, userID, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.Use(func(c *gin.Context) {
		c.Set(string(domain.KeyUserID), userID)
		c.Set(string(domain.KeyUserRole), role)
	})
	v1.NewApplicationHandler(r.Group(""), uc)
	return r
}

func postApply(r *gin.Engine, jobID string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/candidates/jobs/"+jobID+"/apply", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestApplyRoleGate(t *testing.T) {
	t.Run("accepts candidate role regardless of claim casing", func(t *testing.T) {
		uc := new(MockApplicationUC)
		uc.On("Apply", mock.Anything, "cand-1", int64(7), mock.Anything).
			Return(&domain.Application{
				ID:          1,
				JobID:       7,
				CandidateID: "cand-1",
				Status:      domain.ApplicationStatusApplied,
			}, nil)

		r := newApplicationRouter(uc, "cand-1", "Candidate")
		w := postApply(r, "7")

		assert.Equal(t, http.StatusCreated, w.Code)
		uc.AssertExpectations(t)
	})

	t.Run("rejects recruiters", func(t *testing.T) {
		uc := new(MockApplicationUC)

		r := newApplicationRouter(uc, "rec-1", domain.RoleRecruiter)
		w := postApply(r, "7")

		assert.Equal(t, http.StatusForbidden, w.Code)
		uc.AssertNotCalled(t, "Apply", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
