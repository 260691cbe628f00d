package v1

import (
	"net/http"
	"strconv"
	"strings"

	"go-applytrack-backend/internal/delivery/http/response"
	"go-applytrack-backend/internal/domain"
	"go-applytrack-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
}

// NewApplicationHandler registers application routes
func NewApplicationHandler(r *gin.RouterGroup, applicationUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{applicationUC: applicationUC}

	// Candidate routes
	candidates := r.Group("/candidates")
	{
		candidates.POST("/jobs/:jobId/apply", handler.ApplyToJob)
		candidates.GET("/applications", handler.GetMyApplications)
	}

	// Employer routes
	employers := r.Group("/employers")
	{
		employers.GET("/jobs/:jobId/applications", handler.ListJobApplications)
	}

	// Shared routes, authorization resolved per application
	applications := r.Group("/applications")
	{
		applications.GET("/:id", handler.GetApplicationDetail)
		applications.PATCH("/:id", handler.UpdateApplicationStatus)
	}
}

// present swaps the stored status for its display form on the way out.
func present(app domain.Application) domain.Application {
	app.Status = domain.ExternalStatus(app.Status)
	return app
}

func presentAll(apps []domain.Application) []domain.Application {
	out := make([]domain.Application, len(apps))
	for i, app := range apps {
		out[i] = present(app)
	}
	return out
}

// ApplyToJob godoc
// @Summary      Apply to a job
// @Description  Submit an application for a job (Candidate only, one per job)
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        jobId  path      int                true  "Job ID"
// @Param        body   body      domain.ApplyInput  true  "Application data"
// @Success      201    {object}  response.Response{data=domain.Application}
// @Failure      400    {object}  response.Response
// @Failure      403    {object}  response.Response
// @Failure      409    {object}  response.Response
// @Router       /candidates/jobs/{jobId}/apply [post]
// @Security     BearerAuth
func (h *ApplicationHandler) ApplyToJob(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	role := c.GetString(string(domain.KeyUserRole))

	if !strings.EqualFold(role, domain.RoleCandidate) {
		c.Error(apperror.Forbidden("Only candidates can apply to jobs"))
		return
	}

	jobID, err := strconv.ParseInt(c.Param("jobId"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid job ID"))
		return
	}

	var input domain.ApplyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(apperror.BadRequest("Invalid request body: " + err.Error()))
		return
	}

	app, err := h.applicationUC.Apply(c, userID, jobID, input)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Application submitted successfully", present(*app))
}

// GetMyApplications godoc
// @Summary      Get my applications
// @Description  Get all applications submitted by the current candidate
// @Tags         applications
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.Application}
// @Failure      401  {object}  response.Response
// @Router       /candidates/applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) GetMyApplications(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	applications, err := h.applicationUC.ListMine(c, userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Applications retrieved", presentAll(applications))
}

// ListJobApplications godoc
// @Summary      List applications for a job
// @Description  Get all applications for a specific job (Recruiter only, own jobs)
// @Tags         applications
// @Produce      json
// @Param        jobId  path      int  true  "Job ID"
// @Success      200    {object}  response.Response{data=[]domain.Application}
// @Failure      403    {object}  response.Response
// @Failure      404    {object}  response.Response
// @Router       /employers/jobs/{jobId}/applications [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListJobApplications(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	jobID, err := strconv.ParseInt(c.Param("jobId"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid job ID"))
		return
	}

	applications, err := h.applicationUC.ListForJob(c, userID, jobID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Applications retrieved", presentAll(applications))
}

// GetApplicationDetail godoc
// @Summary      Get application detail
// @Description  Get a single application; visible to its candidate and the job's recruiter
// @Tags         applications
// @Produce      json
// @Param        id  path      int  true  "Application ID"
// @Success      200 {object}  response.Response{data=domain.Application}
// @Failure      403 {object}  response.Response
// @Failure      404 {object}  response.Response
// @Router       /applications/{id} [get]
// @Security     BearerAuth
func (h *ApplicationHandler) GetApplicationDetail(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid application ID"))
		return
	}

	app, err := h.applicationUC.GetDetail(c, userID, id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application detail retrieved", present(*app))
}

// UpdateStatusRequest is the request payload for updating application status
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateApplicationStatus godoc
// @Summary      Update application status
// @Description  Move an application to a new status (candidate who owns it or recruiter who owns the job)
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id    path      int                  true  "Application ID"
// @Param        body  body      UpdateStatusRequest  true  "Status update"
// @Success      200   {object}  response.Response{data=domain.Application}
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /applications/{id} [patch]
// @Security     BearerAuth
func (h *ApplicationHandler) UpdateApplicationStatus(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	role := c.GetString(string(domain.KeyUserRole))

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid application ID"))
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body: " + err.Error()))
		return
	}

	app, err := h.applicationUC.UpdateStatus(c, userID, role, id, req.Status)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Application status updated", present(*app))
}
