package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rideshare/internal/domain"
	"rideshare/internal/middleware"
	"rideshare/internal/service"
)

// ProfileHandler handles HTTP requests for caller profiles.
type ProfileHandler struct {
	profileService *service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// GetSelf handles GET /v1/profiles/self
func (h *ProfileHandler) GetSelf(c *gin.Context) {
	profile, err := h.profileService.GetSelf(c.Request.Context(), middleware.Caller(c))
	respondFound(c, profile, err)
}

// Get handles GET /v1/profiles?name=
func (h *ProfileHandler) Get(c *gin.Context) {
	name, ok := requiredQuery(c, "name")
	if !ok {
		return
	}
	profile, err := h.profileService.Get(c.Request.Context(), name)
	respondFound(c, profile, err)
}

// Update handles PUT /v1/profiles
func (h *ProfileHandler) Update(c *gin.Context) {
	var profile domain.Profile
	if err := c.ShouldBindJSON(&profile); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	if err := h.profileService.Update(c.Request.Context(), middleware.Caller(c), profile); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, profile)
}
