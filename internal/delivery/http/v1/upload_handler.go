package v1

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"

	"go-applytrack-backend/internal/delivery/http/response"
	"go-applytrack-backend/internal/domain"
	"go-applytrack-backend/pkg/apperror"
	"go-applytrack-backend/pkg/audit"
	"go-applytrack-backend/pkg/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UploadHandler struct {
	store     *storage.Store
	profileUC domain.ProfileUsecase
	audit     *audit.Logger
}

// NewUploadHandler registers the resume upload route. The store may be
// nil when object storage is not configured; the route then returns 503.
func NewUploadHandler(r *gin.RouterGroup, store *storage.Store, profileUC domain.ProfileUsecase, auditLog *audit.Logger) {
	handler := &UploadHandler{store: store, profileUC: profileUC, audit: auditLog}

	r.POST("/candidates/resume", handler.UploadResume)
}

// UploadResume godoc
// @Summary      Upload resume
// @Description  Upload a resume file (pdf, doc, docx or txt, max 5 MB) and attach it to the profile
// @Tags         profile
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Resume file"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Failure      413   {object}  response.Response
// @Router       /candidates/resume [post]
// @Security     BearerAuth
func (h *UploadHandler) UploadResume(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	if h.store == nil {
		c.Error(apperror.New(http.StatusServiceUnavailable, "File storage is not configured", nil))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.Error(apperror.BadRequest("Missing file upload"))
		return
	}
	if fileHeader.Size > storage.MaxResumeSize {
		c.Error(apperror.New(http.StatusRequestEntityTooLarge, "File exceeds the 5 MB limit", nil))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.BadRequest("Cannot read uploaded file"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, storage.MaxResumeSize+1))
	if err != nil {
		c.Error(err)
		return
	}
	if len(data) > storage.MaxResumeSize {
		c.Error(apperror.New(http.StatusRequestEntityTooLarge, "File exceeds the 5 MB limit", nil))
		return
	}

	result := storage.ValidateResume(fileHeader.Filename, data, fileHeader.Header.Get("Content-Type"))
	if !result.Valid {
		c.Error(apperror.BadRequest("Invalid resume file: " + result.Error))
		return
	}

	key := fmt.Sprintf("resumes/%s/%s%s", userID, uuid.NewString(), filepath.Ext(fileHeader.Filename))

	url, err := h.store.Put(c.Request.Context(), key, result.DetectedMIME, data)
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.profileUC.AttachResume(c, userID, url); err != nil {
		c.Error(err)
		return
	}

	h.audit.ResumeUploaded(c.Request.Context(), userID, key, len(data))
	response.Success(c, http.StatusOK, "Resume uploaded", gin.H{"resume_url": url})
}
