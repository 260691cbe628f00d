package v1

import (
	"net/http"

	"go-applytrack-backend/internal/delivery/http/response"
	"go-applytrack-backend/internal/domain"
	"go-applytrack-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileUC domain.ProfileUsecase
}

// NewProfileHandler registers candidate profile routes
func NewProfileHandler(r *gin.RouterGroup, profileUC domain.ProfileUsecase) {
	handler := &ProfileHandler{profileUC: profileUC}

	candidates := r.Group("/candidates")
	{
		candidates.GET("/profile", handler.GetProfile)
		candidates.PUT("/profile", handler.SaveProfile)
		candidates.PATCH("/profile", handler.UpdateProfile)
	}
}

// GetProfile godoc
// @Summary      Get my profile
// @Description  Get the current candidate's profile
// @Tags         profile
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.CandidateProfile}
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /candidates/profile [get]
// @Security     BearerAuth
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	profile, err := h.profileUC.GetProfile(c, userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile retrieved", profile)
}

// SaveProfile godoc
// @Summary      Save my profile
// @Description  Create or fully replace the current candidate's profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body      domain.CandidateProfile  true  "Profile data"
// @Success      200  {object}  response.Response{data=domain.CandidateProfile}
// @Failure      401  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Router       /candidates/profile [put]
// @Security     BearerAuth
func (h *ProfileHandler) SaveProfile(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var profile domain.CandidateProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.Error(apperror.BadRequest("Invalid request body: " + err.Error()))
		return
	}

	saved, err := h.profileUC.SaveProfile(c, userID, &profile)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile saved", saved)
}

// UpdateProfile godoc
// @Summary      Update my profile
// @Description  Apply a partial update to the current candidate's profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        body  body      domain.ProfileUpdate  true  "Fields to update"
// @Success      200  {object}  response.Response{data=domain.CandidateProfile}
// @Failure      401  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Router       /candidates/profile [patch]
// @Security     BearerAuth
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	var patch domain.ProfileUpdate
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.Error(apperror.BadRequest("Invalid request body: " + err.Error()))
		return
	}

	updated, err := h.profileUC.UpdateProfile(c, userID, &patch)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile updated", updated)
}
