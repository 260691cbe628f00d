package v1

import (
	"net/http"
	"strconv"
	"time"

	"go-applytrack-backend/internal/delivery/http/response"
	"go-applytrack-backend/internal/domain"
	"go-applytrack-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	jobUC domain.JobUsecase
}

func NewJobHandler(public *gin.RouterGroup, protected *gin.RouterGroup, jobUC domain.JobUsecase) {
	handler := &JobHandler{jobUC: jobUC}

	// PUBLIC routes - open postings only, no authentication required
	publicJobs := public.Group("/jobs")
	{
		publicJobs.GET("", handler.ListOpen)
		publicJobs.GET("/:id", handler.GetDetails)
	}

	// PROTECTED recruiter routes
	protectedJobs := protected.Group("/jobs")
	{
		protectedJobs.POST("", handler.Create)
		protectedJobs.PUT("/:id", handler.Update)
		protectedJobs.POST("/:id/close", handler.Close)
	}

	employers := protected.Group("/employers")
	{
		employers.GET("/jobs", handler.ListMine)
	}
}

// JobRequest is the payload for creating or updating a job posting.
type JobRequest struct {
	Title        string              `json:"title" binding:"required"`
	Company      string              `json:"company" binding:"required"`
	Location     string              `json:"location"`
	Description  string              `json:"description"`
	SalaryMin    float64             `json:"salary_min"`
	SalaryMax    float64             `json:"salary_max"`
	Requirements domain.Requirements `json:"requirements"`
	Status       string              `json:"status"`
	Deadline     *time.Time          `json:"deadline"`
}

func (r JobRequest) toDomain() *domain.Job {
	return &domain.Job{
		Title:        r.Title,
		Company:      r.Company,
		Location:     r.Location,
		Description:  r.Description,
		SalaryMin:    r.SalaryMin,
		SalaryMax:    r.SalaryMax,
		Requirements: r.Requirements,
		Status:       r.Status,
		Deadline:     r.Deadline,
	}
}

// ListOpen godoc
// @Summary      List open jobs
// @Description  Get open job postings, newest first
// @Tags         jobs
// @Produce      json
// @Param        page       query     int  false  "Page number"
// @Param        page_size  query     int  false  "Page size (max 100)"
// @Success      200  {object}  response.Response{data=[]domain.Job}
// @Router       /jobs [get]
func (h *JobHandler) ListOpen(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	jobs, total, err := h.jobUC.ListOpenJobs(c, page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Jobs retrieved", gin.H{
		"jobs":  jobs,
		"total": total,
		"page":  page,
	})
}

// GetDetails godoc
// @Summary      Get job details
// @Tags         jobs
// @Produce      json
// @Param        id  path      int  true  "Job ID"
// @Success      200  {object}  response.Response{data=domain.Job}
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id} [get]
func (h *JobHandler) GetDetails(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid job ID"))
		return
	}

	job, err := h.jobUC.GetJob(c, id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job retrieved", job)
}

// Create godoc
// @Summary      Create a job posting
// @Description  Create a new job posting (Recruiter only)
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        body  body      JobRequest  true  "Job data"
// @Success      201   {object}  response.Response{data=domain.Job}
// @Failure      403   {object}  response.Response
// @Failure      422   {object}  response.Response
// @Router       /jobs [post]
// @Security     BearerAuth
func (h *JobHandler) Create(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var req JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body: " + err.Error()))
		return
	}

	job := req.toDomain()
	if err := h.jobUC.CreateJob(c, userID, job); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Job created", job)
}

// Update godoc
// @Summary      Update a job posting
// @Description  Replace a job posting's fields (Recruiter only, own jobs)
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id    path      int         true  "Job ID"
// @Param        body  body      JobRequest  true  "Job data"
// @Success      200   {object}  response.Response{data=domain.Job}
// @Failure      403   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /jobs/{id} [put]
// @Security     BearerAuth
func (h *JobHandler) Update(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid job ID"))
		return
	}

	var req JobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest("Invalid request body: " + err.Error()))
		return
	}

	job := req.toDomain()
	job.ID = id
	if err := h.jobUC.UpdateJob(c, userID, job); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job updated", job)
}

// Close godoc
// @Summary      Close a job posting
// @Description  Stop accepting applications for a job (Recruiter only, own jobs)
// @Tags         jobs
// @Produce      json
// @Param        id  path      int  true  "Job ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /jobs/{id}/close [post]
// @Security     BearerAuth
func (h *JobHandler) Close(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("Invalid job ID"))
		return
	}

	if err := h.jobUC.CloseJob(c, userID, id); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Job closed", nil)
}

// ListMine godoc
// @Summary      List my job postings
// @Description  Get the authenticated recruiter's own postings
// @Tags         jobs
// @Produce      json
// @Param        page       query     int  false  "Page number"
// @Param        page_size  query     int  false  "Page size (max 100)"
// @Success      200  {object}  response.Response{data=[]domain.Job}
// @Failure      403  {object}  response.Response
// @Router       /employers/jobs [get]
// @Security     BearerAuth
func (h *JobHandler) ListMine(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	jobs, total, err := h.jobUC.ListMyJobs(c, userID, page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Jobs retrieved", gin.H{
		"jobs":  jobs,
		"total": total,
		"page":  page,
	})
}
